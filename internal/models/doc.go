// Package models defines the domain entities served by the vibes playlist service.
//
// There are two entities:
//   - [Playlist] : a named collection of songs with descriptive metadata and a like count
//   - [Song] : a single track with display metadata, a textual "m:ss" duration and an optional meaning
//
// Durations are stored as text. [ParseDuration] converts them to seconds and rejects malformed
// values with [ErrInvalidDuration]; [FormatDuration] goes the other way.
//
// JSON field names match the wire format consumed by the front end (camelCase, nullable optional text).
package models
