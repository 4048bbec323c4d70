package proxy

import (
	"errors"

	"github.com/profootballhighlights/pfh-scoreboard/internal/upstream"
)

// ValidationError rejects a request before any outbound call is made.
// Fields are echoed back in the error payload.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// ErrInvalidJSON marks an upstream 2xx whose body is not JSON.
var ErrInvalidJSON = errors.New("upstream returned invalid JSON")

func asStatus(err error) (int, bool) {
	if statusErr, ok := upstream.AsStatusError(err); ok {
		return statusErr.StatusCode, true
	}
	return 0, false
}
