// Package repositories implements SQL persistence for playlists and songs.
//
// Key Implementations:
//   - [PlaylistRepository] : playlist lookups, inserts, updates and the id-keyed upsert used by the seed routine
//   - [SongRepository] : songs of a playlist in insertion order, inserts and bulk deletes
//   - [SeedVersionRepository] : fixture versions recorded by the seed routine
//   - [Store] : the storage handle composed from the repositories and handed to HTTP handlers
//
// Repositories run against a [Querier], which both [*sql.DB] and [*sql.Tx] satisfy, so the same code runs inside
// [Store.WithTx]. Queries are written with "?" placeholders and passed through [shared.Rebind] for the configured
// dialect (SQLite or Postgres).
package repositories
