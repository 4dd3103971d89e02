// Package client fetches the playlist and its songs from a running vibes server.
//
// [Client.GetPlaylist] maps a 404 to a nil playlist and [Client.GetPlaylistSongs] maps a 404 to an empty list,
// so callers only see errors for transport failures and unexpected statuses, which wrap [shared.ErrAPIRequest].
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/shared"
)

const defaultBaseURL = "http://127.0.0.1:5000"

// Client talks to the playlist API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for baseURL. A nil httpClient uses one with a 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// BaseURL returns the server root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetPlaylist fetches a playlist. A missing playlist yields (nil, nil).
func (c *Client) GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error) {
	var playlist models.Playlist
	found, err := c.get(ctx, "/api/playlists/"+strconv.FormatInt(id, 10), &playlist)
	if err != nil || !found {
		return nil, err
	}
	return &playlist, nil
}

// GetPlaylistSongs fetches the songs of a playlist. A 404 yields an empty list.
func (c *Client) GetPlaylistSongs(ctx context.Context, id int64) ([]models.Song, error) {
	songs := []models.Song{}
	found, err := c.get(ctx, "/api/playlists/"+strconv.FormatInt(id, 10)+"/songs", &songs)
	if err != nil {
		return nil, err
	}
	if !found || songs == nil {
		return []models.Song{}, nil
	}
	return songs, nil
}

// get decodes a 2xx JSON body into v and reports false for a 404.
func (c *Client) get(ctx context.Context, path string, v any) (bool, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return false, fmt.Errorf("%w: invalid base url %q: %v", shared.ErrInvalidConfig, c.baseURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return false, fmt.Errorf("%w: GET %s: %d %s", shared.ErrAPIRequest, path, resp.StatusCode, message(body))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return false, fmt.Errorf("%w: failed to decode %s: %v", shared.ErrAPIRequest, path, err)
	}
	return true, nil
}

// message extracts {"message": ...} from an error body, falling back to the raw text.
func message(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}
