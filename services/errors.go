package services

import "errors"

// Error kinds the bot front end maps to user-facing guidance. Wrap with
// fmt.Errorf("%w: ...", kind) so callers can errors.Is on the kind.
var (
	// ErrAnalysis covers network failures, non-2xx responses and unparsable
	// model output. Callers ask the user to retry; never fatal.
	ErrAnalysis = errors.New("analysis failed")

	// ErrStore covers disk or permission failures in the diary store.
	ErrStore = errors.New("store failure")

	// ErrValidation covers bad input handled locally with a guidance message.
	ErrValidation = errors.New("invalid input")
)
