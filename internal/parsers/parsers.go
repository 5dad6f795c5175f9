// Package parsers turns inbound requests into validated operation inputs.
// Everything rejected here is the caller's fault and maps to a bad request,
// the store below never sees malformed parameters.
package parsers

import (
	"net/http"
)

type Parser[T any] interface {
	Parse(r *http.Request) (T, error)
}
