package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/vibes/internal/player"
	tu "github.com/desertthunder/vibes/internal/testing"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadedModel returns a model that has received its fetch result and a window size.
func loadedModel(t *testing.T, fetcher *tu.MockFetcher) *Model {
	t.Helper()
	m := NewModel(context.Background(), fetcher, 1)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(m.fetchPlaylist()())
	return m
}

func TestModelLoading(t *testing.T) {
	t.Run("initial view is loading", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockFetcher{}, 1)
		if m.view != LoadingView {
			t.Errorf("expected LoadingView, got %v", m.view)
		}
		if !strings.Contains(m.View(), "Loading playlist") {
			t.Errorf("unexpected view %q", m.View())
		}
		if m.Init() == nil {
			t.Error("expected Init to return a command")
		}
	})

	t.Run("playlist loaded", func(t *testing.T) {
		m := loadedModel(t, &tu.MockFetcher{Playlist: tu.SamplePlaylist(), Songs: tu.SampleSongs()})
		if m.view != PlaylistView {
			t.Fatalf("expected PlaylistView, got %v", m.view)
		}
		if len(m.player.Queue()) != 3 {
			t.Errorf("expected queue of 3, got %d", len(m.player.Queue()))
		}

		view := m.View()
		for _, want := range []string{"Late Night Vibes", "Chill beats", "12,345 likes", "3 songs", "Midnight City", "Nothing playing"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q", want)
			}
		}
	})

	t.Run("not found", func(t *testing.T) {
		m := loadedModel(t, &tu.MockFetcher{})
		if m.view != NotFoundView {
			t.Fatalf("expected NotFoundView, got %v", m.view)
		}
		if !strings.Contains(m.View(), "Playlist Not Found") {
			t.Errorf("unexpected view %q", m.View())
		}
	})

	t.Run("retry from not found", func(t *testing.T) {
		fetcher := &tu.MockFetcher{}
		m := loadedModel(t, fetcher)

		fetcher.Playlist = tu.SamplePlaylist()
		_, cmd := m.Update(runes("r"))
		if cmd == nil || m.view != LoadingView {
			t.Fatal("expected retry to start loading")
		}
		m.Update(m.fetchPlaylist()())
		if m.view != PlaylistView {
			t.Errorf("expected PlaylistView after retry, got %v", m.view)
		}
	})

	t.Run("fetch error quits", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockFetcher{Err: errors.New("connection refused")}, 1)
		_, cmd := m.Update(m.fetchPlaylist()())
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
		if m.Err() == nil {
			t.Error("expected error to be kept")
		}
	})
}

func TestModelPlayback(t *testing.T) {
	newModel := func(t *testing.T) *Model {
		return loadedModel(t, &tu.MockFetcher{Playlist: tu.SamplePlaylist(), Songs: tu.SampleSongs("0:02", "3:36", "1:00")})
	}

	t.Run("enter plays the selected song", func(t *testing.T) {
		m := newModel(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected a tick command")
		}

		status := m.player.Status()
		if status.State != player.Playing || status.Song.Title != "Midnight City" {
			t.Errorf("unexpected status %+v", status)
		}
		if !strings.Contains(m.View(), "0:00") {
			t.Error("expected position in playback bar")
		}
	})

	t.Run("ticks advance through the queue", func(t *testing.T) {
		m := newModel(t)
		m.Update(runes("p"))

		for range 2 {
			m.Update(tickMsg(m.player.Generation()))
		}

		status := m.player.Status()
		if status.Song == nil || status.Song.Title != "Instant Crush" {
			t.Fatalf("expected second song after two ticks, got %+v", status)
		}
		if status.Elapsed != 0 {
			t.Errorf("expected elapsed reset, got %d", status.Elapsed)
		}
	})

	t.Run("stale tick does not reschedule", func(t *testing.T) {
		m := newModel(t)
		m.Update(runes("p"))
		stale := m.player.Generation()
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		_, cmd := m.Update(tickMsg(stale))
		if cmd != nil {
			t.Error("stale tick must not schedule another")
		}
		if m.player.Status().Elapsed != 0 {
			t.Error("stale tick must not advance")
		}
	})

	t.Run("space toggles and seek moves", func(t *testing.T) {
		m := newModel(t)
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if m.player.Status().Song.Title != "Instant Crush" {
			t.Fatalf("expected second song, got %s", m.player.Status().Song.Title)
		}

		m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
		if got := m.player.Status().Elapsed; got != 10 {
			t.Errorf("expected elapsed 10, got %d", got)
		}
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
		if got := m.player.Status().Elapsed; got != 0 {
			t.Errorf("expected elapsed clamped to 0, got %d", got)
		}

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
		if m.player.State() != player.Paused || cmd != nil {
			t.Errorf("expected paused with no tick, got %v", m.player.State())
		}
		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace})
		if m.player.State() != player.Playing || cmd == nil {
			t.Errorf("expected playing with a new tick, got %v", m.player.State())
		}
	})

	t.Run("stop and next", func(t *testing.T) {
		m := newModel(t)
		m.Update(runes("p"))
		m.Update(runes("n"))
		if m.player.Status().Song.Title != "Instant Crush" {
			t.Errorf("expected next song, got %s", m.player.Status().Song.Title)
		}
		m.Update(runes("s"))
		if m.player.State() != player.Idle {
			t.Errorf("expected idle after stop, got %v", m.player.State())
		}
	})

	t.Run("invalid duration shows status", func(t *testing.T) {
		m := loadedModel(t, &tu.MockFetcher{Playlist: tu.SamplePlaylist(), Songs: tu.SampleSongs("bad")})
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Error("expected no tick for an unplayable song")
		}
		if m.player.State() != player.Idle {
			t.Errorf("expected idle, got %v", m.player.State())
		}
		if !strings.Contains(m.View(), "invalid duration") {
			t.Error("expected invalid duration status")
		}
	})

	t.Run("q quits", func(t *testing.T) {
		m := newModel(t)
		_, cmd := m.Update(runes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestModelMeaning(t *testing.T) {
	m := loadedModel(t, &tu.MockFetcher{Playlist: tu.SamplePlaylist(), Songs: tu.SampleSongs()})

	m.Update(runes("m"))
	if m.view != MeaningView {
		t.Fatalf("expected MeaningView, got %v", m.view)
	}
	view := m.View()
	if !strings.Contains(view, "Meaning of Midnight City.") || !strings.Contains(view, "M83") {
		t.Errorf("meaning view missing content: %q", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != PlaylistView {
		t.Errorf("expected PlaylistView after esc, got %v", m.view)
	}
}

func TestModelOpenCover(t *testing.T) {
	m := loadedModel(t, &tu.MockFetcher{Playlist: tu.SamplePlaylist(), Songs: tu.SampleSongs()})

	var opened string
	m.openURL = func(link string) error {
		opened = link
		return errors.New("no browser")
	}

	_, cmd := m.Update(runes("o"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())

	if opened != "https://example.com/1.jpg" {
		t.Errorf("unexpected url %q", opened)
	}
	if !strings.Contains(m.status, "no browser") {
		t.Errorf("expected failure in status, got %q", m.status)
	}
}

func TestWrap(t *testing.T) {
	got := wrap("one two three four", 9)
	if got != "one two\nthree\nfour" {
		t.Errorf("unexpected wrap %q", got)
	}
	if wrap("keep as is", 0) != "keep as is" {
		t.Error("expected unchanged text for zero width")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Hurry Up, We're Dreaming", 10); got != "Hurry Up,…" {
		t.Errorf("unexpected truncate %q", got)
	}
	if got := truncate("AM", 10); got != "AM" {
		t.Errorf("unexpected truncate %q", got)
	}
}
