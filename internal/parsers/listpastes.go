package parsers

import (
	"net/http"
	"strconv"
)

const defaultListLimit = 100

// ListPastesRequestData carries the validated list cap.
type ListPastesRequestData struct {
	Limit int
}

// ListPastesParser validates the optional limit query parameter.
type ListPastesParser struct {
	maxLimit int
}

// NewListPastesParser creates a parser capping limits at maxLimit. A cap of 0
// means unbounded.
func NewListPastesParser(maxLimit int) ListPastesParser {
	return ListPastesParser{maxLimit: maxLimit}
}

func (l ListPastesParser) Parse(r *http.Request) (*ListPastesRequestData, error) {
	val := r.URL.Query().Get("limit")
	if val == "" {
		return &ListPastesRequestData{Limit: defaultListLimit}, nil
	}

	limit, err := strconv.Atoi(val)
	if err != nil {
		return nil, ErrInvalidLimit
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if l.maxLimit > 0 && limit > l.maxLimit {
		limit = l.maxLimit
	}

	return &ListPastesRequestData{Limit: limit}, nil
}
