package app

import "errors"

// ErrInvalidRequest reports malformed operation input.
var ErrInvalidRequest = errors.New("invalid request")
