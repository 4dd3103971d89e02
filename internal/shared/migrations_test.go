package shared

import (
	"errors"
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		for _, dialect := range []Dialect{SQLite, Postgres} {
			migrations, err := loadMigrations(dialect)
			if err != nil {
				t.Fatalf("failed to load %s migrations: %v", dialect, err)
			}

			if len(migrations) != 3 {
				t.Fatalf("expected 3 %s migrations, got %d", dialect, len(migrations))
			}

			for i := 1; i < len(migrations); i++ {
				if migrations[i].Version <= migrations[i-1].Version {
					t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
				}
			}

			for _, m := range migrations {
				if m.Up == "" {
					t.Errorf("migration version %d missing up SQL", m.Version)
				}
				if m.Down == "" {
					t.Errorf("migration version %d missing down SQL", m.Version)
				}
			}

			if migrations[1].Name != "0001_add_song_meaning" {
				t.Errorf("unexpected migration name %q", migrations[1].Name)
			}
		}
	})

	t.Run("loadMigrations unsupported dialect", func(t *testing.T) {
		if _, err := loadMigrations(Dialect("mysql")); !errors.Is(err, ErrUnsupportedDialect) {
			t.Errorf("expected ErrUnsupportedDialect, got %v", err)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(SQLite, ":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db, SQLite); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 migrations to be applied, got %d", count)
		}

		for _, table := range []string{"playlists", "songs", "seed_versions"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after migrations: %v", table, err)
			}
		}

		if _, err := db.Exec("SELECT meaning FROM songs LIMIT 1"); err != nil {
			t.Errorf("songs.meaning should exist after migrations: %v", err)
		}

		if err := RollbackMigration(db, SQLite); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		var newCount int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&newCount); err != nil {
			t.Fatalf("failed to query schema_migrations after rollback: %v", err)
		}
		if newCount != count-1 {
			t.Errorf("expected %d migrations after rollback, got %d", count-1, newCount)
		}

		if _, err := db.Exec("SELECT 1 FROM seed_versions LIMIT 1"); err == nil {
			t.Error("seed_versions should be dropped after rollback")
		}
	})

	t.Run("records names and rejects empty rollback", func(t *testing.T) {
		db, err := NewDatabase(SQLite, ":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db, SQLite); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var name string
		if err := db.QueryRow("SELECT name FROM schema_migrations WHERE version = 0").Scan(&name); err != nil {
			t.Fatalf("failed to query migration name: %v", err)
		}
		if name != "0000_create_tables" {
			t.Errorf("expected name 0000_create_tables, got %q", name)
		}

		for range 3 {
			if err := RollbackMigration(db, SQLite); err != nil {
				t.Fatalf("failed to rollback: %v", err)
			}
		}
		if err := RollbackMigration(db, SQLite); err == nil {
			t.Error("expected error when nothing is left to roll back")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db, err := NewDatabase(SQLite, ":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db, SQLite); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		if err := RunMigrations(db, SQLite); err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations(SQLite)
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})
}

func TestRemoveComments(t *testing.T) {
	got := removeComments("-- header\nCREATE TABLE t (\n  id INTEGER -- pk\n)")
	want := "CREATE TABLE t (\nid INTEGER\n)"
	if got != want {
		t.Errorf("removeComments() = %q, want %q", got, want)
	}
}
