package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUpstreamStatus      = errors.New("upstream returned non-success status")
	ErrUpstreamDecode      = errors.New("upstream body is not a JSON array of strings")
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
)

// StatusError carrega o status HTTP não-2xx devolvido pelo upstream.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
}

func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }

// Outcome classifica um erro de busca para métricas e logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrUpstreamStatus):
		return OutcomeStatus
	case errors.Is(err, ErrUpstreamDecode):
		return OutcomeDecode
	default:
		return OutcomeUnreachable
	}
}
