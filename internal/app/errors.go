package app

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure so callers can branch on it without
// parsing message text.
type Kind int

const (
	// KindValidation rejects the input URL before any network call.
	KindValidation Kind = iota + 1
	// KindFetch covers network, transport, and non-success HTTP status
	// failures retrieving the page.
	KindFetch
	// KindScrape covers any other failure while parsing or walking the page.
	KindScrape
	// KindLLM covers failures from the chat-completion backend.
	KindLLM
)

// Error is a kinded pipeline error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the kind of a pipeline error, or zero for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// validationMsg is shown verbatim for rejected input; it intentionally has
// no ERROR prefix since nothing failed downstream.
const validationMsg = "Please enter a valid URL starting with http or https."

// Render converts a pipeline failure into the user-visible chat message. The
// UI boundary branches on the ERROR: prefix, so the historical message shapes
// are kept stable here while the rest of the code works with typed errors.
func Render(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("ERROR: An unexpected error occurred during scraping: %v", err)
	}
	switch e.Kind {
	case KindValidation:
		return validationMsg
	case KindFetch:
		return fmt.Sprintf("ERROR: Failed to scrape the page: %v", e.Err)
	case KindLLM:
		return fmt.Sprintf("ERROR: LLM processing failed: %v", e.Err)
	default:
		return fmt.Sprintf("ERROR: An unexpected error occurred during scraping: %v", e.Err)
	}
}
