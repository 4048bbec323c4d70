package upstream

import (
	"errors"
	"fmt"
)

// MaxErrorBody is the number of characters of an upstream error body kept for diagnostics.
const MaxErrorBody = 500

// ErrNoContent marks a successful response that carried no usable payload.
var ErrNoContent = errors.New("upstream returned no content")

// StatusError captures a non-success status from an upstream API.
type StatusError struct {
	Upstream   string
	StatusCode int
	Body       string // truncated to MaxErrorBody characters
}

func (e *StatusError) Error() string {
	name := e.Upstream
	if name == "" {
		name = "upstream"
	}
	return fmt.Sprintf("%s HTTP %d", name, e.StatusCode)
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
