package vxl

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// spanHeaderSize is the fixed 4-byte header: length, color_start,
// color_end, air_start.
const spanHeaderSize = 4

// decodeColumn consumes span records for column (x, y) from data
// starting at pos, marking voxels solid in geo and inserting color
// entries into colors, until it reads the terminating length==0
// span. It returns the offset just past the consumed bytes.
//
// Keys are produced in strictly ascending order (z increasing within
// a column, columns themselves visited in ascending (y, x) order by
// the caller), so colors.appendSorted is used instead of insert: this
// is the bulk-append fast path of spec section 4.B.
func decodeColumn(data []byte, pos int, geo *bitmap, colors *colorStore, x, y, d int) (int, error) {
	for {
		if pos+spanHeaderSize > len(data) {
			return 0, errors.WithMessage(ErrTruncated, "span header")
		}
		length := int(data[pos])
		colorStart := int(data[pos+1])
		colorEnd := int(data[pos+2])
		airStart := int(data[pos+3])

		n := colorEnd - colorStart + 1
		if n < 0 || colorStart < 0 || colorStart > d || colorEnd >= d {
			return 0, errors.WithMessage(ErrMalformed, "span color range")
		}
		if pos+spanHeaderSize+4*n > len(data) {
			return 0, errors.WithMessage(ErrTruncated, "span top colors")
		}
		for i := 0; i < n; i++ {
			z := colorStart + i
			color := binary.LittleEndian.Uint32(data[pos+spanHeaderSize+4*i:]) & 0x00FFFFFF
			geo.setSolid(x, y, z, true)
			colors.appendSorted(packKey(x, y, z), color)
		}

		if length == 0 {
			if airStart < colorEnd+1 || airStart > d {
				return 0, errors.WithMessage(ErrMalformed, "terminal air_start")
			}
			for z := colorEnd + 1; z < airStart; z++ {
				geo.setSolid(x, y, z, true)
			}
			return pos + spanHeaderSize + 4*n, nil
		}

		k := length - 1 - n
		if k < 0 || airStart < colorEnd+1 || airStart+k > d {
			return 0, errors.WithMessage(ErrMalformed, "span bottom colors")
		}
		end := pos + 4*length
		if end > len(data) {
			return 0, errors.WithMessage(ErrTruncated, "span record")
		}
		for z := colorEnd + 1; z < airStart; z++ {
			geo.setSolid(x, y, z, true)
		}
		for i := 0; i < k; i++ {
			z := airStart + i
			color := binary.LittleEndian.Uint32(data[pos+spanHeaderSize+4*n+4*i:]) & 0x00FFFFFF
			geo.setSolid(x, y, z, true)
			colors.appendSorted(packKey(x, y, z), color)
		}
		pos = end
	}
}

// span is one fully-resolved record ready to be serialized: the
// final span of a column always has no bottomColors and is written
// with a length field of 0.
type span struct {
	final                bool
	colorStart, colorEnd int
	airStart             int
	topColors            []uint32
	bottomColors         []uint32
}

func (s *span) size() int {
	return spanHeaderSize + 4*(len(s.topColors)+len(s.bottomColors))
}

func (s *span) encode(out []byte) int {
	length := 0
	if !s.final {
		length = 1 + len(s.topColors) + len(s.bottomColors)
	}
	out[0] = byte(length)
	out[1] = byte(s.colorStart)
	out[2] = byte(s.colorEnd)
	out[3] = byte(s.airStart)
	off := spanHeaderSize
	for _, c := range s.topColors {
		binary.LittleEndian.PutUint32(out[off:], c&0x00FFFFFF)
		off += 4
	}
	for _, c := range s.bottomColors {
		binary.LittleEndian.PutUint32(out[off:], c&0x00FFFFFF)
		off += 4
	}
	return off
}

// findRuns returns the maximal contiguous solid z-runs of column
// (x, y) as [top, bottom] inclusive pairs, in ascending z order.
func findRuns(geo *bitmap, x, y, d int) [][2]int {
	var runs [][2]int
	z := 0
	for z < d {
		if !geo.isSolid(x, y, z) {
			z++
			continue
		}
		top := z
		for z < d && geo.isSolid(x, y, z) {
			z++
		}
		runs = append(runs, [2]int{top, z - 1})
	}
	return runs
}

// lookupColor returns the stored color for (x, y, z), substituting
// DefaultColor if the surface-exposed voxel has no entry (should not
// occur if invariants hold).
func lookupColor(colors *colorStore, x, y, z int) uint32 {
	if c, ok := colors.find(packKey(x, y, z)); ok {
		return c
	}
	return DefaultColor
}

// columnSpans derives the sequence of wire spans for column (x, y)
// from the current geometry and color store. Every run contributes a
// span carrying its top surface-exposed prefix and (unless it is the
// last run and reaches the map floor) its bottom surface-exposed
// suffix; only those two contiguous sub-ranges of a run can carry
// color on the wire, which is why a run with more than two disjoint
// exposed sub-ranges cannot round-trip every color losslessly.
func columnSpans(geo *bitmap, colors *colorStore, x, y, d int) []span {
	runs := findRuns(geo, x, y, d)
	if len(runs) == 0 {
		return []span{{final: true, colorStart: d, colorEnd: d - 1, airStart: d}}
	}

	spans := make([]span, 0, len(runs)+1)
	for i, run := range runs {
		top, bottom := run[0], run[1]
		runLen := bottom - top + 1
		isLast := i == len(runs)-1
		touchesFloor := bottom == d-1
		final := isLast && touchesFloor

		topCount := 0
		for topCount < runLen && exposed(geo, x, y, top+topCount) {
			topCount++
		}
		bottomCount := 0
		if !final {
			maxAvail := runLen - topCount
			for bottomCount < maxAvail && exposed(geo, x, y, bottom-bottomCount) {
				bottomCount++
			}
		}

		colorStart := top
		colorEnd := top + topCount - 1
		airStart := bottom - bottomCount + 1

		topColors := make([]uint32, topCount)
		for i := range topColors {
			topColors[i] = lookupColor(colors, x, y, colorStart+i)
		}
		var bottomColors []uint32
		if bottomCount > 0 {
			bottomColors = make([]uint32, bottomCount)
			for i := range bottomColors {
				bottomColors[i] = lookupColor(colors, x, y, airStart+i)
			}
		}

		if final {
			spans = append(spans, span{final: true, colorStart: colorStart, colorEnd: colorEnd, airStart: d, topColors: topColors})
		} else {
			spans = append(spans, span{colorStart: colorStart, colorEnd: colorEnd, airStart: airStart, topColors: topColors, bottomColors: bottomColors})
		}
	}
	if !spans[len(spans)-1].final {
		spans = append(spans, span{final: true, colorStart: d, colorEnd: d - 1, airStart: d})
	}
	return spans
}

func columnSize(geo *bitmap, colors *colorStore, x, y, d int) int {
	total := 0
	for _, s := range columnSpans(geo, colors, x, y, d) {
		total += s.size()
	}
	return total
}

// encodeColumn writes the wire spans for column (x, y) into out,
// which must be at least columnSize(geo, colors, x, y, d) bytes, and
// returns the number of bytes written.
func encodeColumn(out []byte, geo *bitmap, colors *colorStore, x, y, d int) int {
	off := 0
	for _, s := range columnSpans(geo, colors, x, y, d) {
		off += s.encode(out[off:])
	}
	return off
}
