package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/vibes/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPlaylistLoaded MsgKind = iota
	MsgTick
	MsgCoverOpened
)

type playlistLoaded struct {
	playlist *models.Playlist
	songs    []models.Song
	err      error
}

// playlistLoadedMsg is the constructor for [MsgPlaylistLoaded]. A nil playlist without an error means not found.
func playlistLoadedMsg(playlist *models.Playlist, songs []models.Song, err error) Msg {
	return Msg{kind: MsgPlaylistLoaded, data: playlistLoaded{playlist, songs, err}}
}

// tickMsg is the constructor for [MsgTick]
func tickMsg(generation uint64) Msg {
	return Msg{kind: MsgTick, data: generation}
}

// coverOpenedMsg is the constructor for [MsgCoverOpened]
func coverOpenedMsg(err error) Msg {
	return Msg{kind: MsgCoverOpened, data: err}
}

// tickEvery is the playback clock period.
const tickEvery = time.Second

// tickCmd schedules one tick tagged with generation.
func tickCmd(generation uint64) tea.Cmd {
	return tea.Tick(tickEvery, func(time.Time) tea.Msg {
		return tickMsg(generation)
	})
}
