package vxl

import (
	"io"
	"sort"

	"github.com/pkg/errors"
)

// Stream emits the encoded bytes of a Map in caller-bounded reads. It
// implements io.Reader and io.Closer so it composes with io.Copy,
// bufio.Writer, and net.Conn the way any Go streaming type does; this
// is the Go-native shape of the reference library's
// stream_begin/stream_read/stream_free trio.
//
// Concatenating everything read from a Stream is always byte-identical
// to Map.Write's one-shot output, for any sequence of buffer sizes
// passed to Read.
type Stream struct {
	m         *Map
	chunkSize int

	// offsets[i] is the cumulative encoded byte count of the columns
	// before column i (in (y, x) ascending order), so offsets[i+1] is
	// the count through column i; offsets[0] == 0 and
	// offsets[len(offsets)-1] == total size.
	offsets []int
	pos     int

	scratch      []byte
	scratchCol   int
	scratchValid bool
}

// NewStream opens a Stream over m. It locks m against mutation (Set
// and SetAir become no-ops until Close) and walks every column once to
// build the cumulative offset table, an O(w*h) operation. chunkSize
// only sizes the internal scratch buffer; Read honors the length of
// the slice passed to it, not chunkSize.
func NewStream(m *Map, chunkSize int) (*Stream, error) {
	if chunkSize <= 0 {
		return nil, errors.New("vxl: chunkSize must be positive")
	}
	if m.streaming {
		return nil, errors.WithStack(ErrStreaming)
	}
	m.streaming = true

	offsets := make([]int, m.w*m.h+1)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			idx := y*m.w + x
			offsets[idx+1] = offsets[idx] + columnSize(m.geometry, m.colors, x, y, m.d)
		}
	}
	return &Stream{
		m:          m,
		chunkSize:  chunkSize,
		offsets:    offsets,
		scratch:    make([]byte, 0, chunkSize),
		scratchCol: -1,
	}, nil
}

func (s *Stream) total() int { return s.offsets[len(s.offsets)-1] }

// columnIndexForPos returns the index of the column containing byte
// offset pos, via binary search over the offset table.
func (s *Stream) columnIndexForPos(pos int) int {
	return sort.Search(len(s.offsets)-1, func(i int) bool {
		return s.offsets[i+1] > pos
	})
}

func (s *Stream) encodeColumnInto(colIdx int) {
	if s.scratchValid && s.scratchCol == colIdx {
		return
	}
	x, y := colIdx%s.m.w, colIdx/s.m.w
	size := s.offsets[colIdx+1] - s.offsets[colIdx]
	if cap(s.scratch) < size {
		s.scratch = make([]byte, size)
	} else {
		s.scratch = s.scratch[:size]
	}
	encodeColumn(s.scratch, s.m.geometry, s.m.colors, x, y, s.m.d)
	s.scratchCol = colIdx
	s.scratchValid = true
}

// Read implements io.Reader. It returns (0, io.EOF) once every encoded
// byte has been read, matching the reference library's idempotent
// "read past end returns 0" contract via Go's standard end-of-stream
// signal.
func (s *Stream) Read(p []byte) (int, error) {
	if s.pos >= s.total() {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) && s.pos < s.total() {
		colIdx := s.columnIndexForPos(s.pos)
		s.encodeColumnInto(colIdx)
		offInCol := s.pos - s.offsets[colIdx]
		take := len(s.scratch) - offInCol
		if want := len(p) - n; take > want {
			take = want
		}
		copy(p[n:n+take], s.scratch[offInCol:offInCol+take])
		n += take
		s.pos += take
	}
	return n, nil
}

// Close releases the offset table and scratch buffer and clears the
// map's streaming flag. No partial state leaks into the map: Close is
// safe to call at any point, including before the stream is drained.
func (s *Stream) Close() error {
	s.m.streaming = false
	s.offsets = nil
	s.scratch = nil
	s.scratchValid = false
	return nil
}
