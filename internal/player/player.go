package player

import (
	"errors"
	"fmt"
	"sync"

	"github.com/desertthunder/vibes/internal/models"
)

// ErrEmptyQueue is returned when playback is requested from an empty queue.
var ErrEmptyQueue = errors.New("queue is empty")

// Status is a point-in-time copy of the player.
type Status struct {
	State      State
	Song       *models.Song
	Elapsed    int
	Total      int
	Generation uint64
}

// Progress returns elapsed/total clamped to [0, 1].
func (s Status) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	p := float64(s.Elapsed) / float64(s.Total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Player is the playback state machine. It is safe for concurrent use.
type Player struct {
	mu         sync.Mutex
	queue      []models.Song
	current    *models.Song
	state      State
	elapsed    int
	total      int
	generation uint64
}

// New creates an idle Player over queue.
func New(queue []models.Song) *Player {
	p := &Player{}
	p.SetQueue(queue)
	return p
}

// SetQueue replaces the song list. The current song, if any, keeps playing.
func (p *Player) SetQueue(queue []models.Song) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append([]models.Song(nil), queue...)
}

// Queue returns a copy of the song list.
func (p *Player) Queue() []models.Song {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Song(nil), p.queue...)
}

// Play loads song from the start and begins playing, replacing whatever was loaded.
// A malformed duration returns [models.ErrInvalidDuration] and leaves the player unchanged.
func (p *Player) Play(song models.Song) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.play(song)
}

// PlayFirst plays the first song of the queue.
func (p *Player) PlayFirst() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return ErrEmptyQueue
	}
	return p.play(p.queue[0])
}

// Toggle switches between playing and paused. It does nothing when idle.
func (p *Player) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case Playing:
		p.state = Paused
	case Paused:
		p.state = Playing
	default:
		return
	}
	p.generation++
}

// Stop unloads the current song and goes idle.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stop()
}

// Next skips to the song after the current one, or stops after the last. It does nothing when idle.
func (p *Player) Next() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return
	}
	p.advance()
}

// Seek sets the elapsed time. The value is not checked against the song length;
// the next tick past the end advances the queue.
func (p *Player) Seek(seconds int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Idle {
		return
	}
	p.elapsed = seconds
}

// Tick advances a playing song by one second. Ticks from an older generation, or while not playing, are
// ignored. It reports whether the current song changed.
func (p *Player) Tick(generation uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if generation != p.generation || p.state != Playing {
		return false
	}

	p.elapsed++
	if p.elapsed < p.total {
		return false
	}
	p.advance()
	return true
}

// Status returns a snapshot of the player.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Status{State: p.state, Elapsed: p.elapsed, Total: p.total, Generation: p.generation}
	if p.current != nil {
		song := *p.current
		s.Song = &song
	}
	return s
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Generation returns the value ticks must carry to be applied.
func (p *Player) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// IsCurrent reports whether song is the loaded song.
func (p *Player) IsCurrent(song models.Song) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && p.current.ID == song.ID
}

func (p *Player) play(song models.Song) error {
	total, err := models.ParseDuration(song.Duration)
	if err != nil {
		return fmt.Errorf("cannot play %q: %w", song.Title, err)
	}

	p.current = &song
	p.state = Playing
	p.elapsed = 0
	p.total = total
	p.generation++
	return nil
}

func (p *Player) stop() {
	if p.state == Idle {
		return
	}
	p.current = nil
	p.state = Idle
	p.elapsed = 0
	p.total = 0
	p.generation++
}

// advance plays the first playable song after the current one, or stops when none is left.
// A current song missing from the queue restarts from the top.
func (p *Player) advance() {
	start := 0
	if p.current != nil {
		start = p.indexOf(p.current.ID) + 1
	}
	for i := start; i < len(p.queue); i++ {
		if err := p.play(p.queue[i]); err == nil {
			return
		}
	}
	p.stop()
}

func (p *Player) indexOf(id int64) int {
	for i := range p.queue {
		if p.queue[i].ID == id {
			return i
		}
	}
	return -1
}
