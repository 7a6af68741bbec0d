package faults

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStorage    = errors.New("storage error")
	ErrExtraction = errors.New("extraction failure")
	ErrFilesystem = errors.New("filesystem failure")
	ErrUnresolved = errors.New("reference unresolved")
	ErrCancelled  = errors.New("cancelled")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must abort the whole invocation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrStorage) || errors.Is(err, context.Canceled)
}

// IsCancelled reports whether err records an explicit skip or an unanswered prompt.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
