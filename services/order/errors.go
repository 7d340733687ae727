package order

import "errors"

var (
	// ErrDraftNotSubmittable means validation has not passed; field errors
	// or the workflow message on the session say why.
	ErrDraftNotSubmittable = errors.New("order draft is not submittable")

	// ErrSubmitFailed is the generic retry message for transport-level
	// submission failures. Structured backend errors are surfaced verbatim
	// instead.
	ErrSubmitFailed = errors.New("An unexpected error occurred. Please try again later.")
)
