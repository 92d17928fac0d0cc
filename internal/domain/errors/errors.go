package errors

import "errors"

// Business-rule errors. Non-retryable: the request was rejected and nothing
// was persisted.
var (
	ErrNotFound             = errors.New("not found")
	ErrNotAcceptingEntries  = errors.New("giveaway is not accepting entries")
	ErrCapacityExceeded     = errors.New("giveaway entry capacity exceeded")
	ErrFreeEntryAlreadyUsed = errors.New("free entry already used")
	ErrFreeEntryRequired    = errors.New("free entry must be claimed before purchasing entries")
	ErrInsufficientBalance  = errors.New("insufficient points balance")
	ErrGiveawayNotActive    = errors.New("giveaway is not active")
	ErrGiveawayNotEnded     = errors.New("giveaway has not ended yet")
	ErrNoEntries            = errors.New("giveaway has no entries")
	ErrWinnersAlreadyDrawn  = errors.New("winners already drawn")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

// Validation errors for malformed input, rejected before touching storage.
var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidGiveaway = errors.New("invalid giveaway definition")
)

// ErrConcurrencyExhausted signals the entry numbering retry loop gave up
// under contention. The request had no effect and the caller may retry.
var ErrConcurrencyExhausted = errors.New("entry numbering retries exhausted")
