package classify

import (
	"errors"
	"fmt"
)

// ErrBusy rejects a prediction while another one is in flight.
var ErrBusy = errors.New("a prediction is already in progress")

// NetworkError is a transport failure before any response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx answer. Its message is the response body, or the
// status line when the body is empty.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Status
}

// ResponseShapeError is a successful answer without a usable prediction.
type ResponseShapeError struct {
	Reason string
}

func (e *ResponseShapeError) Error() string {
	if e.Reason == "" {
		return "no prediction returned from classifier"
	}
	return "no prediction returned from classifier: " + e.Reason
}
