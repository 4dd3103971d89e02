package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	play      key.Binding
	playFirst key.Binding
	toggle    key.Binding
	stop      key.Binding
	next      key.Binding
	back5     key.Binding
	fwd5      key.Binding
	meaning   key.Binding
	cover     key.Binding
	close     key.Binding
	retry     key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		play:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		playFirst: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play all")),
		toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		stop:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		back5:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "-5s")),
		fwd5:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "+5s")),
		meaning:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "meaning")),
		cover:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open cover")),
		close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.play, k.toggle, k.next, k.meaning, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.play, k.playFirst},
		{k.toggle, k.stop, k.next, k.back5, k.fwd5},
		{k.meaning, k.cover, k.close, k.quit},
	}
}
