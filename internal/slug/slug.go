// Package slug generates paste identifiers. The store treats identifiers as
// opaque strings, so the format is a deployment choice: short URL friendly
// nanoids or full uuids.
package slug

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/vanishbin/vanishbin/internal/services"
)

const defaultNanoIDLength = 12

// NanoIDGenerator produces short URL safe identifiers.
type NanoIDGenerator struct {
	length int
}

// NewNanoID returns a NanoIDGenerator. A length <= 0 falls back to the
// default.
func NewNanoID(length int) *NanoIDGenerator {
	if length <= 0 {
		length = defaultNanoIDLength
	}
	return &NanoIDGenerator{length: length}
}

func (g *NanoIDGenerator) NewID() (string, error) {
	return gonanoid.New(g.length)
}

// UUIDGenerator produces uuid v4 identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() (string, error) {
	return uuid.New().String(), nil
}

// New returns a generator for the given format, "nanoid" or "uuid".
func New(format string, nanoidLength int) (services.IDGenerator, error) {
	switch format {
	case "nanoid":
		return NewNanoID(nanoidLength), nil
	case "uuid":
		return UUIDGenerator{}, nil
	default:
		return nil, fmt.Errorf("unknown id format %q", format)
	}
}
