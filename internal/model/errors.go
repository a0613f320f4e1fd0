package model

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable means neither the primary nor the fallback classifier
// could produce a verdict. The pipeline never fabricates a label in its place.
var ErrModelUnavailable = errors.New("no classification model available")

// ResolutionError means the request's URL could not be reduced to analyzable
// text: unreachable, bad status, or no extractable body.
type ResolutionError struct {
	URL string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.URL, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
