package vxl

import "github.com/pkg/errors"

// Sentinel errors returned by New and the decoder. Callers test for
// these with errors.Is, the same way the teacher codec's callers test
// for its own sentinel chunk-not-found error.
var (
	// ErrTruncated is returned when the input buffer ends before a
	// span header or its color words are fully present.
	ErrTruncated = errors.New("vxl: truncated input")

	// ErrMalformed is returned when a span's fields are internally
	// inconsistent (z values outside [0, D), or a
	// color_start/color_end/air_start ordering that cannot occur from a
	// legal encoder). A span whose length implies bytes past the end of
	// the buffer is reported as ErrTruncated.
	ErrMalformed = errors.New("vxl: malformed span")

	// ErrOutOfRange is returned by New for non-positive or
	// out-of-bound dimensions (D must be in (0, 256]).
	ErrOutOfRange = errors.New("vxl: dimension out of range")

	// ErrStreaming is returned by NewStream when a Stream is already
	// open on the map.
	ErrStreaming = errors.New("vxl: map is already streaming")
)
