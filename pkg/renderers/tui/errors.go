package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNotSubmitted is returned when the form was still invalid after the
	// configured number of submit attempts.
	ErrNotSubmitted = errors.New("tui: form not submitted")
)
