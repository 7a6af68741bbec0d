// Package textutil provides the string helpers behind catalog matching.
//
// The primary use cases are:
//   - Scoring how closely a broken playlist reference matches a catalog title
//   - Deriving a song name from "<artist> - <title>" shaped file names
//   - Normalizing tag values before they become grouping keys
//   - Sanitizing values substituted into naming patterns
//
// Similarity scores are Jaro similarities in [0,1] rounded to four decimal
// places so threshold comparisons behave the same on every platform.
package textutil
