// Package scanner synchronizes the catalog with the music directory.
//
// A pass prunes tracks whose files vanished, walks the library for audio
// files, optionally relocates each file to the path the naming pattern
// dictates, and inserts tracks not yet indexed. The whole pass runs in one
// catalog transaction.
package scanner
