package auction

import "errors"

// ErrBatchNotFound is returned when the targeted batch does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// ErrBatchFilled is returned when the targeted batch already has a fill.
var ErrBatchFilled = errors.New("batch already filled")

// ErrAgentNotFound is returned when the submitting agent is not registered.
var ErrAgentNotFound = errors.New("agent not found")

// ErrNoSolutions is returned when a batch is closed with no solutions to
// choose from.
var ErrNoSolutions = errors.New("no solutions submitted for batch")
