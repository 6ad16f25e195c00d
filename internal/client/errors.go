package client

import "errors"

// ErrRunFailed is matched by every error returned from Client.Run.
var ErrRunFailed = errors.New("client: run failed")

const genericFailure = "API request failed"

// RunFailedError carries the user-facing message of a failed run.
type RunFailedError struct {
	// Status is the HTTP status code, or 0 when no response arrived.
	Status  int
	Message string
	Err     error
}

func (e *RunFailedError) Error() string {
	return e.Message
}

func (e *RunFailedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRunFailed}
	}
	return []error{ErrRunFailed, e.Err}
}
