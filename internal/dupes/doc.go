// Package dupes finds songs stored more than once in the catalog.
//
// Two passes share one grouping by (artist, title). The exact pass lists
// every group and, in fix mode, asks which file to keep and deletes the
// rest. The quality pass ranks group members by container format and
// reports groups whose best copy strictly outranks the runner-up.
package dupes
