package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// TransportError wraps a network failure or a non-success HTTP status
// from the recipe gateway or the image proxy. Status is zero when the
// request never produced a response.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BatchError reports a concurrent page fill in which every item failed.
// Partial failures are not errors: failed items are dropped and the
// reveal window still advances.
type BatchError struct {
	Attempted int
	Failed    int
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("all %d of %d batch fetches failed", e.Failed, e.Attempted)
}
