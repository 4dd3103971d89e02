package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/vibes/internal/formatter"
	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/player"
)

const (
	headerHeight = 4
	barHeight    = 3
)

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoadingView:
		return fmt.Sprintf("\n %s Loading playlist...\n", m.spinner.View())
	case NotFoundView:
		return m.renderNotFound()
	case PlaylistView:
		return m.renderPlaylist()
	case MeaningView:
		return m.renderMeaning()
	default:
		return ""
	}
}

func (m *Model) renderNotFound() string {
	title := styles.err.Render("Playlist Not Found")
	body := fmt.Sprintf("No playlist with id %d exists on the server.", m.playlistID)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.retry, m.keys.quit})
	return fmt.Sprintf("\n%s\n\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderPlaylist() string {
	sections := []string{
		m.renderHeader(),
		m.renderColumns(),
		m.songList.View(),
		m.renderBar(),
	}
	if m.status != "" {
		sections = append(sections, styles.warn.Render(m.status))
	}
	sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	p := m.playlist
	lines := []string{
		styles.help.Render("PLAYLIST"),
		styles.title.Render(p.Name),
	}
	if d := p.DescriptionText(); d != "" {
		lines = append(lines, styles.subtitle.Render(d))
	}
	lines = append(lines, formatter.Summary(*p, m.songs))
	return strings.Join(lines, "\n")
}

func (m *Model) renderColumns() string {
	line := fmt.Sprintf("%2s  %-28s  %-20s  %-28s  %5s", "#", "TITLE", "ARTIST", "ALBUM", "TIME")
	return styles.help.Render(line)
}

// renderBar draws the playback bar: state icon, song, position and progress.
func (m *Model) renderBar() string {
	status := m.player.Status()
	if status.State == player.Idle || status.Song == nil {
		return styles.bar.Render(styles.help.Render("Nothing playing. Press enter to play the selected song or p to play all."))
	}

	icon := "▶"
	if status.State == player.Paused {
		icon = "❚❚"
	}

	song := fmt.Sprintf("%s %s • %s", icon, styles.ok.Render(status.Song.Title), status.Song.Artist)
	position := fmt.Sprintf("%s %s %s",
		models.FormatDuration(status.Elapsed),
		m.progress.ViewAs(status.Progress()),
		models.FormatDuration(status.Total),
	)
	return styles.bar.Render(song + "\n" + position)
}

func (m *Model) renderMeaning() string {
	song := m.reading
	if song == nil {
		return ""
	}
	title := styles.title.Render(song.Title)
	artist := styles.subtitle.Render(song.Artist + " • " + song.Album)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.close, m.keys.quit})
	return lipgloss.JoinVertical(lipgloss.Left, title, artist, "", m.meaning.View(), "", m.renderBar(), helpView)
}

// wrap breaks text on spaces so no line exceeds width. A non-positive width returns text unchanged.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		w := lipgloss.Width(word)
		if lineLen > 0 && lineLen+1+w > width {
			b.WriteByte('\n')
			lineLen = 0
		}
		if lineLen > 0 {
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(word)
		lineLen += w
	}
	return b.String()
}
