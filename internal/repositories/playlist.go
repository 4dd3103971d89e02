package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/shared"
)

// PlaylistRepository handles playlist persistence.
type PlaylistRepository struct {
	base
}

// NewPlaylistRepository creates a new PlaylistRepository with the given connection and dialect
func NewPlaylistRepository(q Querier, dialect shared.Dialect) *PlaylistRepository {
	return &PlaylistRepository{base{q: q, dialect: dialect}}
}

const playlistColumns = "id, name, description, author, cover_url, likes"

// Get retrieves a playlist by ID. Returns [shared.ErrPlaylistNotFound] when no row matches.
func (r *PlaylistRepository) Get(ctx context.Context, id int64) (*models.Playlist, error) {
	query := r.rebind(`SELECT ` + playlistColumns + ` FROM playlists WHERE id = ?`)
	return r.scanOne(r.q.QueryRowContext(ctx, query, id), id)
}

// List retrieves all playlists ordered by ID.
func (r *PlaylistRepository) List(ctx context.Context) ([]models.Playlist, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+playlistColumns+` FROM playlists ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := []models.Playlist{}
	for rows.Next() {
		var (
			p           models.Playlist
			description sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &description, &p.Author, &p.CoverURL, &p.Likes); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		p.Description = stringPtr(description)
		playlists = append(playlists, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// Create inserts a new playlist and sets its system-assigned ID.
func (r *PlaylistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := r.rebind(`
		INSERT INTO playlists (name, description, author, cover_url, likes)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.q.QueryRowContext(ctx, query,
		playlist.Name,
		nullString(playlist.Description),
		playlist.Author,
		playlist.CoverURL,
		playlist.Likes,
	).Scan(&playlist.ID)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// Update modifies an existing playlist in place.
func (r *PlaylistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := r.rebind(`
		UPDATE playlists
		SET name = ?, description = ?, author = ?, cover_url = ?, likes = ?
		WHERE id = ?
	`)

	result, err := r.q.ExecContext(ctx, query,
		playlist.Name,
		nullString(playlist.Description),
		playlist.Author,
		playlist.CoverURL,
		playlist.Likes,
		playlist.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", shared.ErrPlaylistNotFound, playlist.ID)
	}

	return nil
}

// Upsert writes the playlist under its own ID, inserting the row or overwriting every column.
func (r *PlaylistRepository) Upsert(ctx context.Context, playlist *models.Playlist) error {
	if playlist.ID <= 0 {
		return fmt.Errorf("%w: upsert requires an explicit id", shared.ErrInvalidID)
	}
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := r.rebind(`
		INSERT INTO playlists (id, name, description, author, cover_url, likes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			author = excluded.author,
			cover_url = excluded.cover_url,
			likes = excluded.likes
	`)

	_, err := r.q.ExecContext(ctx, query,
		playlist.ID,
		playlist.Name,
		nullString(playlist.Description),
		playlist.Author,
		playlist.CoverURL,
		playlist.Likes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert playlist: %w", err)
	}

	// explicit ids do not advance a SERIAL sequence
	if r.dialect == shared.Postgres {
		_, err := r.q.ExecContext(ctx,
			`SELECT setval(pg_get_serial_sequence('playlists', 'id'), (SELECT MAX(id) FROM playlists))`)
		if err != nil {
			return fmt.Errorf("failed to sync playlist sequence: %w", err)
		}
	}

	return nil
}

// scanOne scans a single row into a [models.Playlist]
func (r *PlaylistRepository) scanOne(row *sql.Row, id int64) (*models.Playlist, error) {
	var (
		p           models.Playlist
		description sql.NullString
	)

	err := row.Scan(&p.ID, &p.Name, &description, &p.Author, &p.CoverURL, &p.Likes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	p.Description = stringPtr(description)
	return &p, nil
}
