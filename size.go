package vxl

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
)

// DetectSize implements the libvxl_size heuristic: it scans the span
// stream from the start, counting columns (one per length==0
// terminator span) and tracking the maximum z seen across every span,
// without needing to know w, h, or d in advance. It assumes a square
// map (w == h, as the reference heuristic does) and rounds d up to the
// next power of two at least maxZ+1. This is documented as approximate
// for d; callers that know the true dimensions should prefer passing
// them to New directly.
func DetectSize(data []byte) (w, h, d int, err error) {
	pos := 0
	columns := 0
	maxZ := 0
	for pos < len(data) {
		if pos+spanHeaderSize > len(data) {
			return 0, 0, 0, errors.WithMessage(ErrTruncated, "span header")
		}
		length := int(data[pos])
		colorStart := int(data[pos+1])
		colorEnd := int(data[pos+2])
		airStart := int(data[pos+3])
		n := colorEnd - colorStart + 1
		if n < 0 {
			return 0, 0, 0, errors.WithMessage(ErrMalformed, "span color range")
		}
		if colorEnd > maxZ {
			maxZ = colorEnd
		}

		if length == 0 {
			if airStart-1 > maxZ {
				maxZ = airStart - 1
			}
			pos += spanHeaderSize + 4*n
			columns++
			continue
		}

		k := length - 1 - n
		if k < 0 {
			return 0, 0, 0, errors.WithMessage(ErrMalformed, "span bottom colors")
		}
		if airStart+k-1 > maxZ {
			maxZ = airStart + k - 1
		}
		pos += 4 * length
	}
	if columns == 0 {
		return 0, 0, 0, errors.WithMessage(ErrMalformed, "no columns found")
	}

	side := int(math.Sqrt(float64(columns)))
	for side*side < columns {
		side++
	}
	depth := 1 << bits.Len(uint(maxZ))
	return side, side, depth, nil
}
