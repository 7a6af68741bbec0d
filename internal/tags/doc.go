// Package tags reads audio metadata and durations.
//
// Reader implementations wrap one tagging library each; Chain tries them in
// order and keeps the first result carrying any value. Prober measures track
// length for the statistics back-fill.
package tags
