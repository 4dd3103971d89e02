// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI shows a single playlist:
//  1. [LoadingView] : spinner while the playlist and its songs are fetched
//  2. [NotFoundView] : "Playlist Not Found" when the server has no such playlist
//  3. [PlaylistView] : header, scrollable song list and the playback bar
//  4. [MeaningView] : scrollable meaning text for one song
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Playback is driven by a [player.Player]; each one-second tick is a [tea.Tick] command tagged with the player
// generation, and a tick whose generation is no longer current is dropped without scheduling a successor.
//
// Key bindings are listed in [keyMap] with contextual help displayed via charmbracelet/bubbles/help.
package ui
