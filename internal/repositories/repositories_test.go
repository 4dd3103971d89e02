package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(shared.SQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db, shared.SQLite); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func testPlaylist() *models.Playlist {
	return &models.Playlist{
		Name:        "Late Night Vibes",
		Description: models.StringPtr("Chill beats to study and relax to."),
		Author:      "Spotify",
		CoverURL:    "https://example.com/cover.jpg",
		Likes:       12345,
	}
}

func testSong(playlistID int64, title, duration string) models.Song {
	return models.Song{
		PlaylistID: playlistID,
		Title:      title,
		Artist:     "Artist",
		Album:      "Album",
		CoverURL:   "https://example.com/song.jpg",
		Duration:   duration,
	}
}

func TestPlaylistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)
		playlist := testPlaylist()

		if err := repo.Create(ctx, playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		if playlist.ID != 1 {
			t.Errorf("expected ID 1, got %d", playlist.ID)
		}
	})

	t.Run("Create rejects invalid playlist", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)
		playlist := testPlaylist()
		playlist.Likes = -1

		err := repo.Create(ctx, playlist)
		if !errors.Is(err, models.ErrInvalidLikes) {
			t.Errorf("expected ErrInvalidLikes, got %v", err)
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)
		playlist := testPlaylist()
		if err := repo.Create(ctx, playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		got, err := repo.Get(ctx, playlist.ID)
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}

		if got.Name != playlist.Name {
			t.Errorf("expected name %q, got %q", playlist.Name, got.Name)
		}
		if got.DescriptionText() != "Chill beats to study and relax to." {
			t.Errorf("unexpected description %q", got.DescriptionText())
		}
		if got.Likes != 12345 {
			t.Errorf("expected 12345 likes, got %d", got.Likes)
		}
	})

	t.Run("Get keeps null description", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)
		playlist := testPlaylist()
		playlist.Description = nil
		if err := repo.Create(ctx, playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		got, err := repo.Get(ctx, playlist.ID)
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}
		if got.Description != nil {
			t.Errorf("expected nil description, got %q", *got.Description)
		}
	})

	t.Run("Get not found", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)

		_, err := repo.Get(ctx, 999)
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)

		empty, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if empty == nil || len(empty) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", empty)
		}

		for range 2 {
			if err := repo.Create(ctx, testPlaylist()); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
		}

		playlists, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}
		if len(playlists) != 2 {
			t.Fatalf("expected 2 playlists, got %d", len(playlists))
		}
		if playlists[0].ID >= playlists[1].ID {
			t.Errorf("expected playlists ordered by id, got %d then %d", playlists[0].ID, playlists[1].ID)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)
		playlist := testPlaylist()
		if err := repo.Create(ctx, playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		playlist.Name = "Early Morning Vibes"
		playlist.Likes = 1
		if err := repo.Update(ctx, playlist); err != nil {
			t.Fatalf("failed to update playlist: %v", err)
		}

		got, _ := repo.Get(ctx, playlist.ID)
		if got.Name != "Early Morning Vibes" || got.Likes != 1 {
			t.Errorf("update not persisted: %+v", got)
		}
	})

	t.Run("Update not found", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)
		playlist := testPlaylist()
		playlist.ID = 42

		err := repo.Update(ctx, playlist)
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("Upsert inserts then overwrites", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)
		playlist := testPlaylist()
		playlist.ID = 1

		if err := repo.Upsert(ctx, playlist); err != nil {
			t.Fatalf("failed to insert via upsert: %v", err)
		}

		playlist.Likes = 7
		playlist.Description = nil
		if err := repo.Upsert(ctx, playlist); err != nil {
			t.Fatalf("failed to overwrite via upsert: %v", err)
		}

		playlists, _ := repo.List(ctx)
		if len(playlists) != 1 {
			t.Fatalf("expected 1 playlist after two upserts, got %d", len(playlists))
		}
		if playlists[0].Likes != 7 || playlists[0].Description != nil {
			t.Errorf("upsert did not overwrite columns: %+v", playlists[0])
		}
	})

	t.Run("Upsert requires id", func(t *testing.T) {
		repo := NewPlaylistRepository(setupTestDB(t), shared.SQLite)

		err := repo.Upsert(ctx, testPlaylist())
		if !errors.Is(err, shared.ErrInvalidID) {
			t.Errorf("expected ErrInvalidID, got %v", err)
		}
	})
}

func TestSongRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create and Get", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t), shared.SQLite)
		song := testSong(1, "Midnight City", "4:03")
		song.Meaning = models.StringPtr("A drive through the city at night.")

		if err := repo.Create(ctx, &song); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}
		if song.ID == 0 {
			t.Fatal("song ID should be set after creation")
		}

		got, err := repo.Get(ctx, song.ID)
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}
		if got.Title != "Midnight City" || got.Duration != "4:03" || got.PlaylistID != 1 {
			t.Errorf("unexpected song: %+v", got)
		}
		if got.MeaningText() != "A drive through the city at night." {
			t.Errorf("unexpected meaning %q", got.MeaningText())
		}
	})

	t.Run("Get not found", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t), shared.SQLite)

		_, err := repo.Get(ctx, 5)
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})

	t.Run("Create rejects malformed duration", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t), shared.SQLite)
		song := testSong(1, "Broken", "3:6")

		err := repo.Create(ctx, &song)
		if !errors.Is(err, models.ErrInvalidDuration) {
			t.Errorf("expected ErrInvalidDuration, got %v", err)
		}
	})

	t.Run("ListByPlaylist", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t), shared.SQLite)
		titles := []string{"Team", "Electric Feel", "Breezeblocks"}
		for _, title := range titles {
			song := testSong(1, title, "3:13")
			if err := repo.Create(ctx, &song); err != nil {
				t.Fatalf("failed to create song: %v", err)
			}
		}
		other := testSong(2, "Elsewhere", "1:00")
		if err := repo.Create(ctx, &other); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}

		songs, err := repo.ListByPlaylist(ctx, 1)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != len(titles) {
			t.Fatalf("expected %d songs, got %d", len(titles), len(songs))
		}
		for i, title := range titles {
			if songs[i].Title != title {
				t.Errorf("position %d: expected %q, got %q", i, title, songs[i].Title)
			}
		}
	})

	t.Run("ListByPlaylist empty", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t), shared.SQLite)

		songs, err := repo.ListByPlaylist(ctx, 99)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if songs == nil {
			t.Error("expected empty slice, got nil")
		}
		if len(songs) != 0 {
			t.Errorf("expected 0 songs, got %d", len(songs))
		}
	})

	t.Run("DeleteByPlaylist", func(t *testing.T) {
		repo := NewSongRepository(setupTestDB(t), shared.SQLite)
		for _, title := range []string{"A", "B"} {
			song := testSong(1, title, "2:00")
			if err := repo.Create(ctx, &song); err != nil {
				t.Fatalf("failed to create song: %v", err)
			}
		}

		n, err := repo.DeleteByPlaylist(ctx, 1)
		if err != nil {
			t.Fatalf("failed to delete songs: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 deleted rows, got %d", n)
		}

		songs, _ := repo.ListByPlaylist(ctx, 1)
		if len(songs) != 0 {
			t.Errorf("expected no songs left, got %d", len(songs))
		}
	})
}

func TestSeedVersionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSeedVersionRepository(setupTestDB(t), shared.SQLite)

	_, ok, err := repo.Get(ctx, "late_night_vibes")
	if err != nil {
		t.Fatalf("failed to read seed version: %v", err)
	}
	if ok {
		t.Fatal("expected no recorded version")
	}

	if err := repo.Set(ctx, "late_night_vibes", 1); err != nil {
		t.Fatalf("failed to record version: %v", err)
	}
	if err := repo.Set(ctx, "late_night_vibes", 2); err != nil {
		t.Fatalf("failed to overwrite version: %v", err)
	}

	version, ok, err := repo.Get(ctx, "late_night_vibes")
	if err != nil {
		t.Fatalf("failed to read seed version: %v", err)
	}
	if !ok || version != 2 {
		t.Errorf("expected version 2, got %d (recorded=%v)", version, ok)
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("ReplacePlaylistSongs", func(t *testing.T) {
		store := NewStore(setupTestDB(t), shared.SQLite)
		playlist := testPlaylist()
		if err := store.CreatePlaylist(ctx, playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		first := []models.Song{testSong(0, "One", "1:00"), testSong(0, "Two", "2:00")}
		if err := store.ReplacePlaylistSongs(ctx, playlist.ID, first); err != nil {
			t.Fatalf("failed to replace songs: %v", err)
		}
		if first[0].PlaylistID != playlist.ID || first[0].ID == 0 {
			t.Errorf("expected ids to be assigned, got %+v", first[0])
		}

		second := []models.Song{testSong(0, "Three", "3:00")}
		if err := store.ReplacePlaylistSongs(ctx, playlist.ID, second); err != nil {
			t.Fatalf("failed to replace songs: %v", err)
		}

		songs, err := store.GetPlaylistSongs(ctx, playlist.ID)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 1 || songs[0].Title != "Three" {
			t.Errorf("expected only the replacement song, got %+v", songs)
		}
	})

	t.Run("ReplacePlaylistSongs rolls back on invalid song", func(t *testing.T) {
		store := NewStore(setupTestDB(t), shared.SQLite)
		initial := []models.Song{testSong(0, "Keep", "1:00")}
		if err := store.ReplacePlaylistSongs(ctx, 1, initial); err != nil {
			t.Fatalf("failed to seed songs: %v", err)
		}

		bad := []models.Song{testSong(0, "Fine", "1:00"), testSong(0, "Bad", "x:yz")}
		err := store.ReplacePlaylistSongs(ctx, 1, bad)
		if !errors.Is(err, models.ErrInvalidDuration) {
			t.Fatalf("expected ErrInvalidDuration, got %v", err)
		}

		songs, _ := store.GetPlaylistSongs(ctx, 1)
		if len(songs) != 1 || songs[0].Title != "Keep" {
			t.Errorf("expected original songs after rollback, got %+v", songs)
		}
	})

	t.Run("GetPlaylist not found", func(t *testing.T) {
		store := NewStore(setupTestDB(t), shared.SQLite)

		_, err := store.GetPlaylist(ctx, 1)
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		store := NewStore(setupTestDB(t), shared.SQLite)
		if err := store.Ping(ctx); err != nil {
			t.Errorf("expected ping to succeed, got %v", err)
		}
		if store.Dialect() != shared.SQLite {
			t.Errorf("expected sqlite dialect, got %q", store.Dialect())
		}
	})
}
