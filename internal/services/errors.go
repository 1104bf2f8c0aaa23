package services

import "errors"

// User-correctable failures: the request was rejected, nothing changed.
var (
	ErrInvalidBet          = errors.New("bet amount is out of bounds")
	ErrInvalidCellCount    = errors.New("cell count is out of bounds")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Protocol violations: the caller is out of sync with the session state.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotPlaying      = errors.New("game is not in playing state")
	ErrActiveRound     = errors.New("another round is already in progress")
	ErrNoStepsTaken    = errors.New("cannot cashout without making any steps")
	ErrMaxStepsReached = errors.New("maximum number of steps reached")
	ErrCellRequired    = errors.New("cell index is required for this game")
	ErrInvalidCell     = errors.New("cell index is out of range")
	ErrGameInProgress  = errors.New("cannot verify while game is in progress")
)
