// Package catalog persists the music library index in SQLite.
//
// The Store owns a single database file holding two tables: tracks, keyed by
// absolute file path, and playlists, keyed by playlist path. Inserts never
// overwrite an existing row; the first observation of a path is authoritative
// until the path disappears from disk and a prune removes it.
//
// Every mutation and query is available on both Store and Tx so a scan or
// reconciliation pass can run inside one transaction and roll back cleanly
// on failure. An exclusive lock file beside the database keeps two processes
// from mutating the catalog at once.
//
// Schema changes bump schemaVersion; users delete the database to adopt them.
package catalog
