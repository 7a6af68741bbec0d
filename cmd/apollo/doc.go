// Package main hosts the apollo CLI entrypoint and command graph.
//
// Each command loads configuration once, opens the catalog, runs one
// internal component against it and renders the outcome on stdout. Logs go
// to stderr so command output stays pipeable.
package main
