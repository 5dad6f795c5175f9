package parsers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetPasteRequestData identifies the paste addressed by a read, stats or
// delete request. The id is opaque, no shape is enforced beyond presence.
type GetPasteRequestData struct {
	ID string
}

// GetPasteParser extracts the paste id from the route.
type GetPasteParser struct{}

func NewGetPasteParser() GetPasteParser {
	return GetPasteParser{}
}

func (GetPasteParser) Parse(r *http.Request) (*GetPasteRequestData, error) {
	id := chi.URLParam(r, "id")
	if id == "" {
		return nil, ErrInvalidID
	}

	return &GetPasteRequestData{ID: id}, nil
}
