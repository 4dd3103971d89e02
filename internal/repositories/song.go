package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/shared"
)

// SongRepository handles song persistence. Songs are returned in insertion (id) order.
type SongRepository struct {
	base
}

// NewSongRepository creates a new SongRepository with the given connection and dialect
func NewSongRepository(q Querier, dialect shared.Dialect) *SongRepository {
	return &SongRepository{base{q: q, dialect: dialect}}
}

const songColumns = "id, playlist_id, title, artist, album, cover_url, duration, meaning"

// Get retrieves a song by ID.
func (r *SongRepository) Get(ctx context.Context, id int64) (*models.Song, error) {
	query := r.rebind(`SELECT ` + songColumns + ` FROM songs WHERE id = ?`)

	song, err := r.scan(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrSongNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return song, nil
}

// ListByPlaylist returns the songs of a playlist. The result is empty, never nil, when there are none.
func (r *SongRepository) ListByPlaylist(ctx context.Context, playlistID int64) ([]models.Song, error) {
	query := r.rebind(`SELECT ` + songColumns + ` FROM songs WHERE playlist_id = ? ORDER BY id ASC`)

	rows, err := r.q.QueryContext(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		song, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, *song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// Create inserts a song and sets its system-assigned ID.
func (r *SongRepository) Create(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := r.rebind(`
		INSERT INTO songs (playlist_id, title, artist, album, cover_url, duration, meaning)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.q.QueryRowContext(ctx, query,
		song.PlaylistID,
		song.Title,
		song.Artist,
		song.Album,
		song.CoverURL,
		song.Duration,
		nullString(song.Meaning),
	).Scan(&song.ID)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// DeleteByPlaylist removes every song of a playlist and reports how many rows were deleted.
func (r *SongRepository) DeleteByPlaylist(ctx context.Context, playlistID int64) (int64, error) {
	result, err := r.q.ExecContext(ctx, r.rebind(`DELETE FROM songs WHERE playlist_id = ?`), playlistID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete songs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scan reads one song from a [sql.Row] or [sql.Rows]. [sql.ErrNoRows] is returned unwrapped.
func (r *SongRepository) scan(s scanner) (*models.Song, error) {
	var (
		song    models.Song
		meaning sql.NullString
	)

	err := s.Scan(&song.ID, &song.PlaylistID, &song.Title, &song.Artist, &song.Album, &song.CoverURL, &song.Duration, &meaning)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	song.Meaning = stringPtr(meaning)
	return &song, nil
}
