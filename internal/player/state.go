// Package player simulates playback of a song list without audio.
//
// A [Player] moves between [Idle], [Playing] and [Paused]. Progress advances one second per [Player.Tick];
// when the elapsed time reaches the song's duration the player moves to the next song in its queue, or goes
// idle after the last one.
//
// Every transition that starts, restarts or ends playback bumps [Player.Generation]. The owner of the clock
// tags each scheduled tick with the generation it was scheduled under, and ticks carrying an older generation
// are ignored, so at most one clock ever advances a song.
package player

// State represents the playback state.
type State int

const (
	Idle    State = iota // No song loaded
	Playing              // Song is advancing
	Paused               // Song is loaded but not advancing
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}
