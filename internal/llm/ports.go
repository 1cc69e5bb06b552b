// Package llm defines the outbound port for the structured-generation
// capability. Adapters live in subpackages; the core depends only on the
// Generator interface and never learns which vendor sits behind it.
package llm

import (
	"context"
	"errors"
	"fmt"
)

type Generator interface {
	// GenerateStructured asks for a reply constrained to the given JSON
	// schema and returns the inner JSON text. Callers re-parse and validate
	// that text before use.
	GenerateStructured(ctx context.Context, credential, system, prompt string, schema *Schema) (string, error)

	// GenerateText asks for a plain, unconstrained reply.
	GenerateText(ctx context.Context, credential, prompt string) (string, error)
}

var (
	// ErrMissingCredential means no credential was supplied; no network
	// call is attempted.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrMalformedResponse means the capability replied with a body that
	// is not valid JSON or does not match the expected shape.
	ErrMalformedResponse = errors.New("malformed model response")
)

// TransportError reports a failed exchange with the capability: either a
// non-success HTTP status or a connection-level failure (StatusCode 0).
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return "transport failure: " + e.Message
	}
	return fmt.Sprintf("transport failure: status %d: %s", e.StatusCode, e.Message)
}
