package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/shared"
)

// Store is the storage handle for the application. It is constructed once at startup and passed to the
// HTTP handlers and the seed routine.
type Store struct {
	db           *sql.DB
	dialect      shared.Dialect
	Playlists    *PlaylistRepository
	Songs        *SongRepository
	SeedVersions *SeedVersionRepository
}

// NewStore builds a Store over an open database.
func NewStore(db *sql.DB, dialect shared.Dialect) *Store {
	return newStore(db, db, dialect)
}

func newStore(db *sql.DB, q Querier, dialect shared.Dialect) *Store {
	return &Store{
		db:           db,
		dialect:      dialect,
		Playlists:    NewPlaylistRepository(q, dialect),
		Songs:        NewSongRepository(q, dialect),
		SeedVersions: NewSeedVersionRepository(q, dialect),
	}
}

// Dialect reports the SQL dialect of the underlying database.
func (s *Store) Dialect() shared.Dialect {
	return s.dialect
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetPlaylist returns the playlist with the given id or an error wrapping [shared.ErrPlaylistNotFound].
func (s *Store) GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error) {
	return s.Playlists.Get(ctx, id)
}

// GetPlaylistSongs returns the songs of a playlist, possibly empty.
func (s *Store) GetPlaylistSongs(ctx context.Context, playlistID int64) ([]models.Song, error) {
	return s.Songs.ListByPlaylist(ctx, playlistID)
}

// CreatePlaylist inserts a playlist.
func (s *Store) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	return s.Playlists.Create(ctx, playlist)
}

// UpdatePlaylist overwrites an existing playlist.
func (s *Store) UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	return s.Playlists.Update(ctx, playlist)
}

// CreateSong inserts a song.
func (s *Store) CreateSong(ctx context.Context, song *models.Song) error {
	return s.Songs.Create(ctx, song)
}

// ClearPlaylistSongs deletes every song of a playlist.
func (s *Store) ClearPlaylistSongs(ctx context.Context, playlistID int64) error {
	_, err := s.Songs.DeleteByPlaylist(ctx, playlistID)
	return err
}

// ReplacePlaylistSongs deletes the songs of a playlist and inserts songs in order, atomically.
// Each song's PlaylistID is set to playlistID and its ID to the assigned value.
func (s *Store) ReplacePlaylistSongs(ctx context.Context, playlistID int64, songs []models.Song) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if err := tx.ClearPlaylistSongs(ctx, playlistID); err != nil {
			return err
		}
		for i := range songs {
			songs[i].PlaylistID = playlistID
			if err := tx.CreateSong(ctx, &songs[i]); err != nil {
				return fmt.Errorf("song %d: %w", i+1, err)
			}
		}
		return nil
	})
}

// WithTx runs fn with a Store bound to a single transaction, committing when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newStore(s.db, tx, s.dialect)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
