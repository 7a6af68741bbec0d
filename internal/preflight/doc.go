// Package preflight provides readiness checks for the filesystem paths and
// catalog lock that apollo depends on.
//
// The CLI "apollo status" command runs RunAll and renders each Result.
// Checks never modify the library; the lock probe releases the catalog
// lock immediately after acquiring it.
package preflight
