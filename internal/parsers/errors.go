package parsers

import (
	"errors"
)

// ErrInvalidContent happens when the paste content is empty or whitespace only
var ErrInvalidContent = errors.New("invalid content")

// ErrInvalidTTL happens when ttl_seconds is present but not a positive
// integer, or exceeds the configured maximum
var ErrInvalidTTL = errors.New("invalid ttl")

// ErrInvalidMaxViews happens when max_views is present but not a positive
// integer, or exceeds the configured maximum
var ErrInvalidMaxViews = errors.New("invalid max views")

// ErrInvalidID happens when the paste id path segment is missing
var ErrInvalidID = errors.New("invalid paste id")

// ErrInvalidLimit happens when the list limit is present but not a positive
// integer
var ErrInvalidLimit = errors.New("invalid limit")

// ErrRequestParse happens when the request body can not be decoded at all
var ErrRequestParse = errors.New("request parse error")
