// Package prompt asks the operator to pick one option from a list.
//
// Components depend on the Chooser interface so interactive terminals,
// headless runs and tests share the same resolution path. Cancellation is
// reported as faults.ErrCancelled and is a normal outcome for callers.
package prompt
