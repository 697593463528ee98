package vxl

import "github.com/pkg/errors"

// Map owns the geometry bitmap and chunked color store for a single
// w x h x d voxel volume and exposes point queries, point mutations,
// top-column queries, and bulk (de)serialization.
//
// A Map is not safe for concurrent use. Independent Maps need no
// coordination.
type Map struct {
	w, h, d   int
	geometry  *bitmap
	colors    *colorStore
	streaming bool
}

// New builds a Map of the given dimensions. If data is non-nil, it is
// decoded as a VXL byte stream (y outer, x inner, both ascending,
// matching the wire column order); a malformed or truncated stream
// returns a non-nil error and no Map. If data is nil, the map is
// initialized with the lower half (z >= d/2) solid at DefaultColor and
// the upper half air, matching the reference library's from-scratch
// map.
func New(w, h, d int, data []byte) (*Map, error) {
	if w <= 0 || h <= 0 || d <= 0 || d > 256 {
		return nil, errors.WithStack(ErrOutOfRange)
	}
	m := &Map{
		w: w, h: h, d: d,
		geometry: newBitmap(w, h, d),
		colors:   newColorStore(w, h),
	}
	if data == nil {
		m.fillDefault()
		return m, nil
	}
	if err := m.decode(data); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Map) fillDefault() {
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			for z := m.d / 2; z < m.d; z++ {
				m.geometry.setSolid(x, y, z, true)
			}
			m.colors.appendSorted(packKey(x, y, m.d/2), DefaultColor)
		}
	}
}

func (m *Map) decode(data []byte) error {
	pos := 0
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			next, err := decodeColumn(data, pos, m.geometry, m.colors, x, y, m.d)
			if err != nil {
				return errors.Wrapf(err, "column (%d,%d)", x, y)
			}
			pos = next
		}
	}
	return nil
}

// IsSolid reports whether (x, y, z) is solid. Out-of-bounds
// coordinates are reported as not solid.
func (m *Map) IsSolid(x, y, z int) bool {
	return m.geometry.isSolid(x, y, z)
}

// OnSurface reports whether (x, y, z) is solid and has at least one
// air neighbor among its six face-neighbors, under the boundary rule
// of spec section 4.A (see geometry.go's neighborSolid).
func (m *Map) OnSurface(x, y, z int) bool {
	if !m.geometry.isSolid(x, y, z) {
		return false
	}
	return exposed(m.geometry, x, y, z)
}

// Get returns the color of (x, y, z): the stored color if one exists,
// DefaultColor if the voxel is solid but uncolored (interior), or 0 if
// the voxel is air or out of bounds.
func (m *Map) Get(x, y, z int) uint32 {
	if !m.geometry.inBounds(x, y, z) {
		return 0
	}
	if c, ok := m.colors.find(packKey(x, y, z)); ok {
		return c
	}
	if m.geometry.isSolid(x, y, z) {
		return DefaultColor
	}
	return 0
}

// GetTop scans upward from z=0 for the first solid voxel in column
// (x, y) and returns its color and z. ok is false if the column is
// entirely air or (x, y) is out of bounds.
func (m *Map) GetTop(x, y int) (color uint32, z int, ok bool) {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return 0, 0, false
	}
	for z := 0; z < m.d; z++ {
		if m.geometry.isSolid(x, y, z) {
			return m.Get(x, y, z), z, true
		}
	}
	return 0, 0, false
}

// Set marks (x, y, z) solid with the given color (masked to 24-bit
// RGB) and restores the stored-color discipline for the voxel and its
// six neighbors. A no-op on out-of-bounds coordinates or while a
// Stream is open on the map.
func (m *Map) Set(x, y, z int, color uint32) {
	if !m.geometry.inBounds(x, y, z) || m.streaming {
		return
	}
	m.geometry.setSolid(x, y, z, true)
	m.colors.replaceOrInsert(packKey(x, y, z), color&0x00FFFFFF)
	m.reconcileNeighborhood(x, y, z)
}

// SetAir marks (x, y, z) air, removes any stored color for it, and
// ensures any newly exposed solid neighbor gains a stored color entry.
// A no-op on out-of-bounds coordinates or while a Stream is open.
func (m *Map) SetAir(x, y, z int) {
	if !m.geometry.inBounds(x, y, z) || m.streaming {
		return
	}
	m.geometry.setSolid(x, y, z, false)
	m.colors.erase(packKey(x, y, z))
	m.reconcileNeighborhood(x, y, z)
}

// reconcileNeighborhood restores invariant 1 (stored-color discipline)
// for (x, y, z) and its six face-neighbors after a mutation at
// (x, y, z): every solid, surface-exposed voxel among them gains a
// color entry (DefaultColor if none is known), and every solid,
// non-exposed voxel loses its entry.
func (m *Map) reconcileNeighborhood(x, y, z int) {
	offsets := [7][3]int{
		{0, 0, 0},
		{-1, 0, 0}, {1, 0, 0},
		{0, -1, 0}, {0, 1, 0},
		{0, 0, -1}, {0, 0, 1},
	}
	for _, o := range offsets {
		nx, ny, nz := x+o[0], y+o[1], z+o[2]
		if !m.geometry.inBounds(nx, ny, nz) {
			continue
		}
		key := packKey(nx, ny, nz)
		if !m.geometry.isSolid(nx, ny, nz) {
			continue
		}
		if exposed(m.geometry, nx, ny, nz) {
			if _, ok := m.colors.find(key); !ok {
				m.colors.insert(key, DefaultColor)
			}
		} else {
			m.colors.erase(key)
		}
	}
}

// EncodedSize returns the exact number of bytes Write would emit for
// the map's current state.
func (m *Map) EncodedSize() int {
	total := 0
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			total += columnSize(m.geometry, m.colors, x, y, m.d)
		}
	}
	return total
}

// Write encodes the whole map into out, which must be at least
// EncodedSize() bytes, and returns the number of bytes written.
func (m *Map) Write(out []byte) (int, error) {
	need := m.EncodedSize()
	if len(out) < need {
		return 0, errors.Errorf("vxl: output buffer too small: have %d, need %d", len(out), need)
	}
	off := 0
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			off += encodeColumn(out[off:], m.geometry, m.colors, x, y, m.d)
		}
	}
	return off, nil
}
