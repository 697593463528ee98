// Package vxl reads, mutates, writes, and streams VXL-format voxel
// maps, the compressed column-span format used by the Ace of Spades /
// Voxlap family of games.
//
// A map is a W x H x D grid of voxels, each either solid (carrying an
// RGB color) or air. The on-disk format stores, for every (x, y)
// column, a sequence of spans describing the solid runs in that column
// and the colors of the voxels on the boundary between solid and air.
// Interior solid voxels (fully surrounded by other solid voxels) carry
// no color on disk; this package reconstructs and maintains that
// surface-exposed-only invariant as the map is mutated in memory.
package vxl

// Coordinate-system conventions. These exist purely for documentation:
// the codec always treats z as top-down with z=0 at the top of the
// map. Remapping to a different engine's axis convention is the
// caller's responsibility.
const (
	CoordsDefault = iota
	CoordsVoxlap
)

// DefaultColor is substituted for any exposed voxel that has no known
// stored color (a formerly interior voxel uncovered by SetAir, or the
// lower half of a map created from scratch), and is what Get reports
// for a solid interior voxel.
const DefaultColor uint32 = 0x674028

// chunkSize is the edge length, in voxels, of one (x,y) color-store
// chunk tile.
const chunkSize = 16

// chunkGrowth is the number of entry slots a chunk's backing array
// grows by whenever it is full.
const chunkGrowth = 512
