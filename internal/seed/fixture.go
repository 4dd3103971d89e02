package seed

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/desertthunder/vibes/internal/models"
)

// ErrInvalidFixture is returned when fixture data fails to parse or validate.
var ErrInvalidFixture = errors.New("invalid fixture")

//go:embed fixtures/late_night_vibes.yaml
var lateNightVibes []byte

// Fixture is a versioned playlist with its songs in display order.
type Fixture struct {
	Name     string
	Version  int
	Playlist models.Playlist
	Songs    []models.Song
}

type fixtureFile struct {
	Name     string          `yaml:"name"`
	Version  int             `yaml:"version"`
	Playlist fixturePlaylist `yaml:"playlist"`
	Songs    []fixtureSong   `yaml:"songs"`
}

type fixturePlaylist struct {
	ID          int64  `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	CoverURL    string `yaml:"coverUrl"`
	Likes       int    `yaml:"likes"`
}

type fixtureSong struct {
	Title    string `yaml:"title"`
	Artist   string `yaml:"artist"`
	Album    string `yaml:"album"`
	CoverURL string `yaml:"coverUrl"`
	Duration string `yaml:"duration"`
	Meaning  string `yaml:"meaning"`
}

// Default returns the embedded "Late Night Vibes" fixture.
func Default() (*Fixture, error) {
	return Load(lateNightVibes)
}

// Load parses and validates a YAML fixture.
func Load(data []byte) (*Fixture, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	f := &Fixture{
		Name:    file.Name,
		Version: file.Version,
		Playlist: models.Playlist{
			ID:          file.Playlist.ID,
			Name:        file.Playlist.Name,
			Description: models.StringPtr(file.Playlist.Description),
			Author:      file.Playlist.Author,
			CoverURL:    file.Playlist.CoverURL,
			Likes:       file.Playlist.Likes,
		},
		Songs: make([]models.Song, 0, len(file.Songs)),
	}
	for _, s := range file.Songs {
		f.Songs = append(f.Songs, models.Song{
			PlaylistID: file.Playlist.ID,
			Title:      s.Title,
			Artist:     s.Artist,
			Album:      s.Album,
			CoverURL:   s.CoverURL,
			Duration:   s.Duration,
			Meaning:    models.StringPtr(s.Meaning),
		})
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the fixture header, the playlist and every song.
func (f *Fixture) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidFixture)
	}
	if f.Version <= 0 {
		return fmt.Errorf("%w: version must be positive", ErrInvalidFixture)
	}
	if f.Playlist.ID <= 0 {
		return fmt.Errorf("%w: playlist id must be positive", ErrInvalidFixture)
	}
	if err := f.Playlist.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}
	for i := range f.Songs {
		if f.Songs[i].PlaylistID != f.Playlist.ID {
			return fmt.Errorf("%w: song %d does not belong to playlist %d", ErrInvalidFixture, i+1, f.Playlist.ID)
		}
		if err := f.Songs[i].Validate(); err != nil {
			return fmt.Errorf("%w: song %d: %w", ErrInvalidFixture, i+1, err)
		}
	}
	return nil
}

// songs returns a fresh copy of the fixture songs so inserts can assign IDs without mutating the fixture.
func (f *Fixture) songs() []models.Song {
	out := make([]models.Song, len(f.Songs))
	copy(out, f.Songs)
	return out
}
