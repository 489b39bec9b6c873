package ner

import "errors"

var (
	// ErrNoData is returned when the search API responds with an empty body.
	ErrNoData = errors.New("program search returned no data")

	// ErrProgramAmbiguous is returned when a search does not match exactly
	// one program. Callers must treat this as fatal.
	ErrProgramAmbiguous = errors.New("program search did not match exactly one program")

	// ErrMalformedPage is returned when the program page lacks the
	// preloaded state element.
	ErrMalformedPage = errors.New("program page has no preloaded state element")

	// ErrDecode is returned when the repaired state blob does not decode
	// into a structured value.
	ErrDecode = errors.New("failed to decode preloaded state")

	// ErrNotYetPublished signals that a show entry exists but its recording
	// has not been published. Retriable for today, a terminal skip for past
	// dates.
	ErrNotYetPublished = errors.New("audio is not yet published")
)
