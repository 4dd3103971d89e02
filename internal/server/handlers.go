package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/shared"
)

// Storage is the read side of the playlist store used by [PlaylistHandler].
//
// GetPlaylist must return an error wrapping [shared.ErrPlaylistNotFound] for a missing row.
type Storage interface {
	GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error)
	GetPlaylistSongs(ctx context.Context, playlistID int64) ([]models.Song, error)
}

const (
	playlistRoute = "/api/playlists/{id}"
	songsRoute    = "/api/playlists/{id}/songs"
)

// PlaylistHandler serves the playlist and song list endpoints.
type PlaylistHandler struct {
	storage Storage
	logger  *log.Logger
}

// NewPlaylistHandler creates a PlaylistHandler reading from storage.
func NewPlaylistHandler(storage Storage, logger *log.Logger) *PlaylistHandler {
	return &PlaylistHandler{storage: storage, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{playlistRoute, songsRoute}
}

// ServeHTTP dispatches on the matched route pattern.
func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(r.Method, http.MethodGet) {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	if strings.HasSuffix(r.Pattern, "/songs") {
		h.getSongs(w, r)
		return
	}
	h.getPlaylist(w, r)
}

func (h *PlaylistHandler) getPlaylist(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, msgInvalidID)
		return
	}

	playlist, err := h.storage.GetPlaylist(r.Context(), id)
	if errors.Is(err, shared.ErrPlaylistNotFound) {
		writeError(w, http.StatusNotFound, msgPlaylistNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load playlist", "id", id, "error", err, "request_id", RequestIDFrom(r.Context()))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

func (h *PlaylistHandler) getSongs(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, msgInvalidID)
		return
	}

	songs, err := h.storage.GetPlaylistSongs(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load songs", "playlist_id", id, "error", err, "request_id", RequestIDFrom(r.Context()))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if songs == nil {
		songs = []models.Song{}
	}

	writeJSON(w, http.StatusOK, songs)
}

// parseID accepts base-10 integers only; "12abc", "1.5" and "" are rejected.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, shared.ErrInvalidID
	}
	return id, nil
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /healthz.
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler creates a HealthHandler. A nil pinger always reports ok.
func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/healthz"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(r.Method, http.MethodGet) {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
