// Package logging assembles structured slog loggers and formatting helpers used
// across apollo commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes component and run helpers so scanner, duplicate, and
// playlist code tag log lines consistently. Every recoverable failure in a pass
// (unreadable tags, failed moves, unresolved playlist references) is reported
// through WarnWithContext so the line carries its cause, impact, and next step.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
