package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/player"
	"github.com/desertthunder/vibes/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	NotFoundView
	PlaylistView
	MeaningView
)

// seekStep is how far left/right move the playback position, in seconds.
const seekStep = 5

// Fetcher loads the playlist and its songs. A missing playlist is (nil, nil).
type Fetcher interface {
	GetPlaylist(ctx context.Context, id int64) (*models.Playlist, error)
	GetPlaylistSongs(ctx context.Context, id int64) ([]models.Song, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	fetcher    Fetcher
	playlistID int64
	openURL    func(string) error

	view     ViewState
	width    int
	height   int
	playlist *models.Playlist
	songs    []models.Song
	songList list.Model
	player   *player.Player
	meaning  viewport.Model
	reading  *models.Song
	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     keyMap
	status   string
	err      error
}

// NewModel creates a new TUI model that shows playlist id fetched through fetcher.
func NewModel(ctx context.Context, fetcher Fetcher, id int64) *Model {
	p := player.New(nil)
	songList := list.New(nil, songDelegate{player: p}, 0, 0)
	songList.SetShowTitle(false)
	songList.SetShowHelp(false)
	songList.SetShowStatusBar(false)
	songList.KeyMap.Quit.SetEnabled(false)

	return &Model{
		ctx:        ctx,
		fetcher:    fetcher,
		playlistID: id,
		openURL:    shared.OpenURL,
		view:       LoadingView,
		songList:   songList,
		player:     p,
		meaning:    viewport.New(0, 0),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.ok)),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Err returns the error that ended the session, if any.
func (m *Model) Err() error {
	return m.err
}

// Player exposes the playback state machine.
func (m *Model) Player() *player.Player {
	return m.player
}

// Init starts the spinner and fetches the playlist.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchPlaylist())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.view != LoadingView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		switch m.view {
		case LoadingView, NotFoundView:
			return m.handleIdleKeys(msg)
		case PlaylistView:
			return m.handlePlaylistKeys(msg)
		case MeaningView:
			return m.handleMeaningKeys(msg)
		}
	}

	if m.view == PlaylistView {
		var cmd tea.Cmd
		m.songList, cmd = m.songList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPlaylistLoaded:
		data := msg.data.(playlistLoaded)
		if data.err != nil {
			m.err = data.err
			return m, tea.Quit
		}
		if data.playlist == nil {
			m.view = NotFoundView
			return m, nil
		}
		m.playlist = data.playlist
		m.songs = data.songs
		m.player.SetQueue(data.songs)
		m.view = PlaylistView
		return m, m.songList.SetItems(songItems(data.songs))

	case MsgTick:
		generation := msg.data.(uint64)
		if generation != m.player.Generation() {
			return m, nil
		}
		m.player.Tick(generation)
		return m, m.clock()

	case MsgCoverOpened:
		if err, _ := msg.data.(error); err != nil {
			m.status = fmt.Sprintf("could not open cover: %v", err)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleIdleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case m.view == NotFoundView && key.Matches(msg, m.keys.retry):
		m.view = LoadingView
		return m, tea.Batch(m.spinner.Tick, m.fetchPlaylist())
	}
	return m, nil
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.songList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.songList, cmd = m.songList.Update(msg)
		return m, cmd
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.play):
		if song, ok := m.selected(); ok {
			return m, m.transport(m.player.Play(song))
		}
		return m, nil
	case key.Matches(msg, m.keys.playFirst):
		return m, m.transport(m.player.PlayFirst())
	case key.Matches(msg, m.keys.toggle):
		m.player.Toggle()
		return m, m.clock()
	case key.Matches(msg, m.keys.stop):
		m.player.Stop()
		return m, nil
	case key.Matches(msg, m.keys.next):
		m.player.Next()
		return m, m.clock()
	case key.Matches(msg, m.keys.back5):
		m.seek(-seekStep)
		return m, nil
	case key.Matches(msg, m.keys.fwd5):
		m.seek(seekStep)
		return m, nil
	case key.Matches(msg, m.keys.meaning):
		if song, ok := m.selected(); ok {
			m.openMeaning(song)
		}
		return m, nil
	case key.Matches(msg, m.keys.cover):
		if song, ok := m.selected(); ok {
			return m, m.openCover(song.CoverURL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleMeaningKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.close), key.Matches(msg, m.keys.meaning):
		m.view = PlaylistView
		m.reading = nil
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		m.player.Toggle()
		return m, m.clock()
	}

	var cmd tea.Cmd
	m.meaning, cmd = m.meaning.Update(msg)
	return m, cmd
}

// transport reports a failed transition in the status line and restarts the clock otherwise.
func (m *Model) transport(err error) tea.Cmd {
	switch {
	case errors.Is(err, models.ErrInvalidDuration):
		m.status = "cannot play: song has an invalid duration"
		return nil
	case err != nil:
		m.status = err.Error()
		return nil
	}
	return m.clock()
}

// clock schedules the next tick under the current generation while playing.
func (m *Model) clock() tea.Cmd {
	if m.player.State() != player.Playing {
		return nil
	}
	return tickCmd(m.player.Generation())
}

// seek moves the position by delta seconds, clamped at zero.
func (m *Model) seek(delta int) {
	status := m.player.Status()
	if status.State == player.Idle {
		return
	}
	m.player.Seek(max(0, status.Elapsed+delta))
}

func (m *Model) selected() (models.Song, bool) {
	item, ok := m.songList.SelectedItem().(songItem)
	if !ok {
		return models.Song{}, false
	}
	return item.song, true
}

func (m *Model) openMeaning(song models.Song) {
	m.reading = &song
	text := song.MeaningText()
	if text == "" {
		text = "No meaning has been written for this song yet."
	}
	m.meaning.SetContent(wrap(text, m.meaning.Width))
	m.meaning.GotoTop()
	m.view = MeaningView
}

func (m *Model) openCover(link string) tea.Cmd {
	open := m.openURL
	return func() tea.Msg {
		return coverOpenedMsg(open(link))
	}
}

func (m *Model) fetchPlaylist() tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.fetcher.GetPlaylist(m.ctx, m.playlistID)
		if err != nil || playlist == nil {
			return playlistLoadedMsg(nil, nil, err)
		}
		songs, err := m.fetcher.GetPlaylistSongs(m.ctx, m.playlistID)
		return playlistLoadedMsg(playlist, songs, err)
	}
}

// resize lays out the list between the header and the playback bar.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	listHeight := height - headerHeight - barHeight - 2
	if listHeight < 3 {
		listHeight = 3
	}
	m.songList.SetSize(width, listHeight)

	m.progress.Width = max(10, width-24)
	m.meaning.Width = max(20, width-4)
	m.meaning.Height = max(3, height-8)
	if m.reading != nil {
		m.meaning.SetContent(wrap(m.reading.MeaningText(), m.meaning.Width))
	}
}
