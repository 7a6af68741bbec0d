// Package playlist repairs broken references in m3u playlists.
//
// A reconciliation pass indexes the playlist files under a directory, then
// checks every reference line against the filesystem. A reference whose
// target is gone is matched by song name against the catalog: a candidate
// scoring at or above the threshold replaces it automatically, otherwise the
// operator picks a candidate, removes the line or skips it.
//
// Rewrites touch only the first matching line and keep every other byte of
// the file, line endings included.
package playlist
