package llm

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// RequestTimeout bounds one backend invocation end to end. The session
// treats it as the total budget for an in-flight query, so providers must
// not retry past it.
const RequestTimeout = 25 * time.Second

// Backend produces a single non-streamed completion for a system/user
// prompt pair and returns the raw completion content.
type Backend interface {
	Chat(ctx context.Context, systemPrompt, userQuery string) (string, error)
}

// CriticalError marks a transport-layer backend failure: unreachable
// server, request timeout, or a non-2xx status. Anything else that goes
// wrong with a completion is an ordinary error.
type CriticalError struct {
	Err error
}

func (e *CriticalError) Error() string {
	return "API Connection Failed: " + e.Err.Error()
}

func (e *CriticalError) Unwrap() error { return e.Err }

func IsCritical(err error) bool {
	var ce *CriticalError
	return errors.As(err, &ce)
}

func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: RequestTimeout}
}
