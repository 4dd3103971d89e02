package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidLikes    = errors.New("likes must be non-negative")
	ErrInvalidPlaylist = errors.New("song must reference a playlist")
)

// Model is implemented by entities that can check their own invariants before being persisted.
type Model interface {
	Validate() error
}

var (
	_ Model = (*Playlist)(nil)
	_ Model = (*Song)(nil)
)

// Playlist is the single playlist browsed by the application.
type Playlist struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Author      string  `json:"author"`
	CoverURL    string  `json:"coverUrl"`
	Likes       int     `json:"likes"`
}

// Validate checks required fields and the likes counter.
func (p *Playlist) Validate() error {
	if err := required(map[string]string{"name": p.Name, "author": p.Author, "coverUrl": p.CoverURL}); err != nil {
		return fmt.Errorf("playlist: %w", err)
	}
	if p.Likes < 0 {
		return fmt.Errorf("playlist %q: %w", p.Name, ErrInvalidLikes)
	}
	return nil
}

// DescriptionText returns the description or an empty string when unset.
func (p *Playlist) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// Song is a track entry belonging to exactly one playlist.
type Song struct {
	ID         int64   `json:"id"`
	PlaylistID int64   `json:"playlistId"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Album      string  `json:"album"`
	CoverURL   string  `json:"coverUrl"`
	Duration   string  `json:"duration"`
	Meaning    *string `json:"meaning"`
}

// Validate checks required fields, the playlist reference and the duration format.
func (s *Song) Validate() error {
	if err := required(map[string]string{
		"title":    s.Title,
		"artist":   s.Artist,
		"album":    s.Album,
		"coverUrl": s.CoverURL,
	}); err != nil {
		return fmt.Errorf("song: %w", err)
	}
	if s.PlaylistID <= 0 {
		return fmt.Errorf("song %q: %w", s.Title, ErrInvalidPlaylist)
	}
	if _, err := ParseDuration(s.Duration); err != nil {
		return fmt.Errorf("song %q: %w", s.Title, err)
	}
	return nil
}

// Seconds returns the parsed duration of the song.
func (s *Song) Seconds() (int, error) {
	return ParseDuration(s.Duration)
}

// MeaningText returns the meaning annotation or an empty string when unset.
func (s *Song) MeaningText() string {
	if s.Meaning == nil {
		return ""
	}
	return *s.Meaning
}

// StringPtr returns a pointer to s, or nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func required(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
}
