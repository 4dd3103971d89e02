// Package seed loads the sample playlist into storage.
//
// The fixture is an embedded YAML document (fixtures/late_night_vibes.yaml) describing one playlist and its
// ordered songs. [Seeder.Run] validates the whole fixture before touching the database, then upserts the
// playlist and replaces its songs inside a single transaction, so repeated runs converge on the same rows.
//
// Two modes are supported:
//   - [ModeAlways] rewrites the fixture rows on every run
//   - [ModeOnce] records the fixture version in seed_versions and skips runs whose version is already applied
package seed
