package vxl

// packKey encodes a voxel coordinate into the 32-bit key used to order
// and address stored color entries: 12 bits y, 12 bits x, 8 bits z.
// Comparing keys as plain uint32s yields ascending (y, x, z) order,
// which is the order columns are traversed in the encoded stream.
func packKey(x, y, z int) uint32 {
	return uint32(y)<<20 | uint32(x)<<8 | uint32(z)
}

// unpackKey reverses packKey.
func unpackKey(key uint32) (x, y, z int) {
	x = int((key >> 8) & 0xFFF)
	y = int((key >> 20) & 0xFFF)
	z = int(key & 0xFF)
	return
}

// columnKeyRange returns the half-open [lo, hi) key range that
// contains every z for the given (x, y) column.
func columnKeyRange(x, y int) (lo, hi uint32) {
	lo = packKey(x, y, 0)
	hi = lo + 256
	return
}
