// Package store manages SQLite persistence for saved videos and users.
//
// The database lives in the configured data directory and is migrated on open
// via embedded SQL files tracked in a schema_migrations table. Duplicate
// prevention relies on the (owner_id, video_id) unique constraint rather than
// application-level locks: concurrent inserts race and the loser receives a
// conflict error it can recover from with a re-read.
package store
