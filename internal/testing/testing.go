// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/shared"
)

// SamplePlaylist returns a playlist with id 1 for tests.
func SamplePlaylist() *models.Playlist {
	return &models.Playlist{
		ID:          1,
		Name:        "Late Night Vibes",
		Description: models.StringPtr("Chill beats to study and relax to."),
		Author:      "Spotify",
		CoverURL:    "https://example.com/cover.jpg",
		Likes:       12345,
	}
}

// SampleSongs returns three songs of playlist 1 with the given durations.
// Missing durations default to "3:36".
func SampleSongs(durations ...string) []models.Song {
	titles := []string{"Midnight City", "Instant Crush", "Team"}
	artists := []string{"M83", "Daft Punk", "Lorde"}
	songs := make([]models.Song, len(titles))
	for i := range titles {
		d := "3:36"
		if i < len(durations) {
			d = durations[i]
		}
		songs[i] = models.Song{
			ID:         int64(i + 1),
			PlaylistID: 1,
			Title:      titles[i],
			Artist:     artists[i],
			Album:      fmt.Sprintf("Album %d", i+1),
			CoverURL:   fmt.Sprintf("https://example.com/%d.jpg", i+1),
			Duration:   d,
			Meaning:    models.StringPtr(fmt.Sprintf("Meaning of %s.", titles[i])),
		}
	}
	return songs
}

// MockStorage is an in-memory test double for the playlist read store.
type MockStorage struct {
	mu        sync.Mutex
	Playlists map[int64]*models.Playlist
	Songs     map[int64][]models.Song
	Err       error // returned by every call when set
	PingErr   error
	Calls     int
}

// NewMockStorage creates a MockStorage holding playlist and its songs.
func NewMockStorage(playlist *models.Playlist, songs []models.Song) *MockStorage {
	m := &MockStorage{Playlists: map[int64]*models.Playlist{}, Songs: map[int64][]models.Song{}}
	if playlist != nil {
		m.Playlists[playlist.ID] = playlist
		m.Songs[playlist.ID] = songs
	}
	return m
}

func (m *MockStorage) GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Playlists[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrPlaylistNotFound, id)
	}
	return p, nil
}

func (m *MockStorage) GetPlaylistSongs(ctx context.Context, playlistID int64) ([]models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	songs, ok := m.Songs[playlistID]
	if !ok {
		return []models.Song{}, nil
	}
	return songs, nil
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.PingErr
}

// MockFetcher is a test double for the HTTP client used by the TUI and CLI.
// A nil Playlist mimics a 404.
type MockFetcher struct {
	Playlist *models.Playlist
	Songs    []models.Song
	Err      error
	SongsErr error
}

func (m *MockFetcher) GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Playlist, nil
}

func (m *MockFetcher) GetPlaylistSongs(ctx context.Context, id int64) ([]models.Song, error) {
	if m.SongsErr != nil {
		return nil, m.SongsErr
	}
	if m.Songs == nil {
		return []models.Song{}, nil
	}
	return m.Songs, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
