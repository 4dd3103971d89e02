package seed

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vibes/internal/repositories"
	"github.com/desertthunder/vibes/internal/shared"
)

// Mode selects whether a run rewrites fixture rows unconditionally or only once per fixture version.
type Mode string

const (
	ModeAlways Mode = "always"
	ModeOnce   Mode = "once"
)

// ParseMode maps a config or flag value to a [Mode]. The empty string is [ModeAlways].
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAlways:
		return ModeAlways, nil
	case ModeOnce:
		return ModeOnce, nil
	default:
		return "", fmt.Errorf("%w: seed mode %q", shared.ErrInvalidFlag, s)
	}
}

// Result describes what a seed run did.
type Result struct {
	PlaylistID int64
	Songs      int
	Version    int
	Skipped    bool
}

// Seeder writes a [Fixture] into a [repositories.Store].
type Seeder struct {
	store   *repositories.Store
	fixture *Fixture
	mode    Mode
	logger  *log.Logger
}

// NewSeeder creates a Seeder. A nil logger discards output.
func NewSeeder(store *repositories.Store, fixture *Fixture, mode Mode, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Seeder{store: store, fixture: fixture, mode: mode, logger: logger}
}

// Run seeds the fixture. Validation happens before any write; the playlist upsert, song replacement and
// version record share one transaction.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	if err := s.fixture.Validate(); err != nil {
		return nil, err
	}

	result := &Result{PlaylistID: s.fixture.Playlist.ID, Version: s.fixture.Version}

	if s.mode == ModeOnce {
		applied, ok, err := s.store.SeedVersions.Get(ctx, s.fixture.Name)
		if err != nil {
			return nil, err
		}
		if ok && applied >= s.fixture.Version {
			s.logger.Info("seed already applied", "fixture", s.fixture.Name, "version", applied)
			result.Skipped = true
			return result, nil
		}
	}

	playlist := s.fixture.Playlist
	songs := s.fixture.songs()

	err := s.store.WithTx(ctx, func(tx *repositories.Store) error {
		if err := tx.Playlists.Upsert(ctx, &playlist); err != nil {
			return err
		}
		if err := tx.ClearPlaylistSongs(ctx, playlist.ID); err != nil {
			return err
		}
		for i := range songs {
			if err := tx.CreateSong(ctx, &songs[i]); err != nil {
				return fmt.Errorf("song %d: %w", i+1, err)
			}
		}
		return tx.SeedVersions.Set(ctx, s.fixture.Name, s.fixture.Version)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed %s: %w", s.fixture.Name, err)
	}

	result.Songs = len(songs)
	s.logger.Info("seeded playlist",
		"fixture", s.fixture.Name,
		"version", s.fixture.Version,
		"playlist", playlist.Name,
		"songs", result.Songs,
		"mode", string(s.mode),
	)
	return result, nil
}
