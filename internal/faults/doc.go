// Package faults defines the error taxonomy shared by the catalog, scanner,
// duplicate detector, and playlist reconciler.
//
// Errors are tagged with one of the exported sentinel markers via Wrap so
// callers can classify them with errors.Is. Only ErrStorage is fatal to a
// pass; every other marker describes a condition that is logged and skipped.
package faults
