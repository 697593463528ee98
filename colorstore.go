package vxl

import "sort"

// colorEntry is one stored color, keyed by packed voxel coordinate.
type colorEntry struct {
	key   uint32
	color uint32
}

// chunk owns the sorted color entries for one 16x16 (x,y) tile. The
// backing array is grown explicitly in chunkGrowth-sized steps rather
// than left to Go's default slice growth, mirroring the reference
// library's explicit capacity/count bookkeeping.
type chunk struct {
	entries []colorEntry
}

func (c *chunk) grow() {
	next := make([]colorEntry, len(c.entries), cap(c.entries)+chunkGrowth)
	copy(next, c.entries)
	c.entries = next
}

func (c *chunk) search(key uint32) (int, bool) {
	i := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].key >= key
	})
	if i < len(c.entries) && c.entries[i].key == key {
		return i, true
	}
	return i, false
}

func (c *chunk) find(key uint32) (uint32, bool) {
	if i, ok := c.search(key); ok {
		return c.entries[i].color, true
	}
	return 0, false
}

func (c *chunk) insert(key, color uint32) {
	i, ok := c.search(key)
	if ok {
		c.entries[i].color = color
		return
	}
	if len(c.entries) == cap(c.entries) {
		c.grow()
	}
	c.entries = append(c.entries, colorEntry{})
	copy(c.entries[i+1:], c.entries[i:])
	c.entries[i] = colorEntry{key: key, color: color}
}

func (c *chunk) replaceOrInsert(key, color uint32) {
	c.insert(key, color)
}

func (c *chunk) erase(key uint32) {
	i, ok := c.search(key)
	if !ok {
		return
	}
	copy(c.entries[i:], c.entries[i+1:])
	c.entries = c.entries[:len(c.entries)-1]
}

// appendSorted appends a new highest-key entry directly, skipping the
// search/shift insert does. It is the bulk-decode fast path: the
// decoder produces keys in strictly ascending order already, so every
// append lands at the end of the sorted array.
func (c *chunk) appendSorted(key, color uint32) {
	if len(c.entries) == cap(c.entries) {
		c.grow()
	}
	c.entries = append(c.entries, colorEntry{key: key, color: color})
}

// colorStore tiles the (x,y) plane into chunkSize x chunkSize chunks,
// each owning a sorted array of stored color entries.
type colorStore struct {
	w, h                       int
	chunksPerRow, chunksPerCol int
	chunks                     []chunk
}

func newColorStore(w, h int) *colorStore {
	cpr := (w + chunkSize - 1) / chunkSize
	cpc := (h + chunkSize - 1) / chunkSize
	return &colorStore{
		w: w, h: h,
		chunksPerRow: cpr,
		chunksPerCol: cpc,
		chunks:       make([]chunk, cpr*cpc),
	}
}

func (s *colorStore) chunkAt(x, y int) *chunk {
	cx, cy := x/chunkSize, y/chunkSize
	return &s.chunks[cy*s.chunksPerRow+cx]
}

func (s *colorStore) find(key uint32) (uint32, bool) {
	x, y, _ := unpackKey(key)
	return s.chunkAt(x, y).find(key)
}

func (s *colorStore) insert(key, color uint32) {
	x, y, _ := unpackKey(key)
	s.chunkAt(x, y).insert(key, color)
}

func (s *colorStore) replaceOrInsert(key, color uint32) {
	x, y, _ := unpackKey(key)
	s.chunkAt(x, y).replaceOrInsert(key, color)
}

func (s *colorStore) erase(key uint32) {
	x, y, _ := unpackKey(key)
	s.chunkAt(x, y).erase(key)
}

func (s *colorStore) appendSorted(key, color uint32) {
	x, y, _ := unpackKey(key)
	s.chunkAt(x, y).appendSorted(key, color)
}

// iterateColumn calls fn for every stored color entry belonging to
// column (x, y), in ascending z order.
func (s *colorStore) iterateColumn(x, y int, fn func(z int, color uint32)) {
	c := s.chunkAt(x, y)
	lo, hi := columnKeyRange(x, y)
	start := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].key >= lo })
	for i := start; i < len(c.entries) && c.entries[i].key < hi; i++ {
		_, _, z := unpackKey(c.entries[i].key)
		fn(z, c.entries[i].color)
	}
}
