package parsers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// CreatePasteParser validates paste creation requests.
type CreatePasteParser struct {
	maxTTLSeconds int64
	maxViewsCap   int64
}

// CreatePasteRequestData is the validated input of a create operation. TTL
// and MaxViews stay nil when the caller did not constrain the paste.
type CreatePasteRequestData struct {
	Content  []byte
	TTL      *time.Duration
	MaxViews *int64
}

type createPasteBody struct {
	Content    string `json:"content"`
	TTLSeconds *int64 `json:"ttl_seconds"`
	MaxViews   *int64 `json:"max_views"`
}

// NewCreatePasteParser creates a parser enforcing the given caps. A cap of 0
// means unbounded.
func NewCreatePasteParser(maxTTLSeconds, maxViewsCap int64) CreatePasteParser {
	return CreatePasteParser{
		maxTTLSeconds: maxTTLSeconds,
		maxViewsCap:   maxViewsCap,
	}
}

func (c CreatePasteParser) Parse(r *http.Request) (*CreatePasteRequestData, error) {
	var body createPasteBody
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		return nil, errors.Join(ErrRequestParse, err)
	}

	if strings.TrimSpace(body.Content) == "" {
		return nil, ErrInvalidContent
	}

	data := &CreatePasteRequestData{
		Content: []byte(body.Content),
	}

	if body.TTLSeconds != nil {
		seconds := *body.TTLSeconds
		if seconds <= 0 {
			return nil, ErrInvalidTTL
		}
		if c.maxTTLSeconds > 0 && seconds > c.maxTTLSeconds {
			return nil, ErrInvalidTTL
		}
		ttl := time.Duration(seconds) * time.Second
		data.TTL = &ttl
	}

	if body.MaxViews != nil {
		views := *body.MaxViews
		if views <= 0 {
			return nil, ErrInvalidMaxViews
		}
		if c.maxViewsCap > 0 && views > c.maxViewsCap {
			return nil, ErrInvalidMaxViews
		}
		data.MaxViews = &views
	}

	return data, nil
}
