package types

import (
	"errors"
	"fmt"
)

var ErrLoad = errors.New("audio could not be loaded")
var ErrUnsupportedFormat = errors.New("unsupported audio format")
var ErrInvalidOptions = errors.New("invalid options")
var ErrDegenerateInput = errors.New("chromagram has no energy")
var ErrMalformedChroma = errors.New("malformed chromagram")
var ErrEmptyPlaylist = errors.New("playlist has no tracks")

// LoadError reports a file that could not be opened or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
