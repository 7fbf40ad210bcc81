package services

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable stops a report: the order sheet could not be
	// fetched or came back without rows.
	ErrSourceUnavailable = errors.New("order source unavailable")
	// ErrTimedOut is returned when fetching and aggregating exceed the
	// report timeout.
	ErrTimedOut = errors.New("report generation timed out")
)

// RenderError reports a document that failed to render. Other documents of
// the same report are unaffected.
type RenderError struct {
	Document DocumentKind
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Document, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
