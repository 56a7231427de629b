package usecase

import "time"

const (
	// DefaultRetryAttempts is the total submit attempts per transfer,
	// including the first one.
	DefaultRetryAttempts = 3

	// DefaultRetryBaseDelay is the delay before the second attempt;
	// subsequent delays double.
	DefaultRetryBaseDelay = 1000 * time.Millisecond

	// DefaultRetryMaxDelay caps the backoff growth.
	DefaultRetryMaxDelay = 10000 * time.Millisecond

	// DefaultHistoryPageSize bounds history listings when no limit is given.
	DefaultHistoryPageSize = 20

	// MaxHistoryPageSize is the hard cap on a single history page.
	MaxHistoryPageSize = 100
)
