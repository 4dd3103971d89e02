package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/player"
)

var (
	_ list.Item         = songItem{}
	_ list.DefaultItem  = songItem{}
	_ list.ItemDelegate = songDelegate{}
)

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	index int
	song  models.Song
}

func (i songItem) FilterValue() string { return i.song.Title + " " + i.song.Artist + " " + i.song.Album }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string { return fmt.Sprintf("%s • %s", i.song.Artist, i.song.Album) }

func songItems(songs []models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{index: i + 1, song: s}
	}
	return items
}

// songDelegate renders one row per song: number or playback marker, title, artist, album and duration.
type songDelegate struct {
	player *player.Player
}

func (d songDelegate) Height() int                             { return 1 }
func (d songDelegate) Spacing() int                            { return 0 }
func (d songDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d songDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(songItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.row(it, index == m.Index(), m.Width()))
}

func (d songDelegate) row(it songItem, selected bool, width int) string {
	marker := fmt.Sprintf("%2d", it.index)
	current := d.player != nil && d.player.IsCurrent(it.song)
	if current {
		switch d.player.State() {
		case player.Playing:
			marker = " ▶"
		case player.Paused:
			marker = "❚❚"
		}
	}

	cols := []string{
		marker,
		truncate(it.song.Title, 28),
		truncate(it.song.Artist, 20),
		truncate(it.song.Album, 28),
	}
	line := fmt.Sprintf("%s  %-28s  %-20s  %-28s  %5s", cols[0], cols[1], cols[2], cols[3], it.song.Duration)
	if width > 0 && lipgloss.Width(line) > width {
		line = truncate(line, width)
	}

	switch {
	case selected:
		return styles.selected.Render(line)
	case current:
		return styles.playing.Render(line)
	default:
		return line
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
