package lightbox

import "github.com/pkg/errors"

var (
	// ErrInvalidFrame reports a source frame with no pixels.
	ErrInvalidFrame = errors.New("lightbox: zero-area frame")

	// ErrEmptySource reports a source that decoded to no frames at all.
	ErrEmptySource = errors.New("lightbox: no frames in source")
)
