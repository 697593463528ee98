package vxl

import "testing"

func TestNewDefaultMapFillsLowerHalf(t *testing.T) {
	m, err := New(4, 4, 8, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			for z := 0; z < 4; z++ {
				if m.IsSolid(x, y, z) {
					t.Fatalf("(%d,%d,%d) should be air in the default map", x, y, z)
				}
			}
			for z := 4; z < 8; z++ {
				if !m.IsSolid(x, y, z) {
					t.Fatalf("(%d,%d,%d) should be solid in the default map", x, y, z)
				}
			}
		}
	}
	color, z, ok := m.GetTop(0, 0)
	if !ok || z != 4 || color != DefaultColor {
		t.Fatalf("GetTop(0,0) = %x, %d, %v, want DefaultColor, 4, true", color, z, ok)
	}
}

func TestNewRejectsBadDimensions(t *testing.T) {
	cases := [][3]int{{0, 4, 4}, {4, 0, 4}, {4, 4, 0}, {4, 4, 257}}
	for _, c := range cases {
		if _, err := New(c[0], c[1], c[2], nil); err == nil {
			t.Fatalf("New(%d,%d,%d,nil) should fail", c[0], c[1], c[2])
		}
	}
}

func TestGetOutOfBoundsAndAirReturnZero(t *testing.T) {
	m, err := New(4, 4, 8, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c := m.Get(-1, 0, 0); c != 0 {
		t.Fatalf("Get out of bounds = %x, want 0", c)
	}
	if c := m.Get(0, 0, 0); c != 0 {
		t.Fatalf("Get on an air voxel = %x, want 0", c)
	}
	if _, _, ok := m.GetTop(-1, 0); ok {
		t.Fatal("GetTop out of bounds should report ok=false")
	}
}

func TestSetCreatesIsolatedSurfaceRun(t *testing.T) {
	// A single 1x1x8 all-air column, encoded as its terminator span.
	data := []byte{0, 8, 7, 8}
	m, err := New(1, 1, 8, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Set(0, 0, 3, 0x123456)
	if !m.IsSolid(0, 0, 3) {
		t.Fatal("expected (0,0,3) solid after Set")
	}
	if !m.OnSurface(0, 0, 3) {
		t.Fatal("an isolated run in open air should be on the surface")
	}
	if c := m.Get(0, 0, 3); c != 0x123456 {
		t.Fatalf("Get(0,0,3) = %x, want 0x123456", c)
	}
	if m.IsSolid(0, 0, 2) || m.IsSolid(0, 0, 4) {
		t.Fatal("Set should not affect neighboring z values")
	}
}

func TestSetAirUncoversNeighborAndClearsColor(t *testing.T) {
	m, err := New(1, 1, 8, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// default map: solid z=4..7, colored only at z=4.
	m.SetAir(0, 0, 4)
	if m.IsSolid(0, 0, 4) {
		t.Fatal("expected (0,0,4) air after SetAir")
	}
	if c := m.Get(0, 0, 4); c != 0 {
		t.Fatalf("Get on the cleared voxel = %x, want 0", c)
	}
	if c := m.Get(0, 0, 5); c != DefaultColor {
		t.Fatalf("newly exposed (0,0,5) = %x, want DefaultColor", c)
	}
}

func TestSetAndSetAirNoOpWhileStreaming(t *testing.T) {
	m, err := New(2, 2, 8, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := NewStream(m, 64)
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	defer s.Close()

	before := m.IsSolid(0, 0, 5)
	m.SetAir(0, 0, 5)
	if m.IsSolid(0, 0, 5) != before {
		t.Fatal("SetAir should be a no-op while a Stream is open")
	}
	m.Set(0, 0, 0, 0xABCDEF)
	if m.IsSolid(0, 0, 0) {
		t.Fatal("Set should be a no-op while a Stream is open")
	}
}

func TestWriteThenDecodeRoundTrip(t *testing.T) {
	m, err := New(3, 2, 16, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Set(1, 1, 2, 0x0A0B0C)
	m.SetAir(1, 1, 8)

	size := m.EncodedSize()
	buf := make([]byte, size)
	n, err := m.Write(buf)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != size {
		t.Fatalf("Write returned %d, EncodedSize said %d", n, size)
	}

	m2, err := New(3, 2, 16, buf)
	if err != nil {
		t.Fatalf("New (decode): %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			for z := 0; z < 16; z++ {
				if m.IsSolid(x, y, z) != m2.IsSolid(x, y, z) {
					t.Fatalf("geometry mismatch at (%d,%d,%d)", x, y, z)
				}
				if m.Get(x, y, z) != m2.Get(x, y, z) {
					t.Fatalf("color mismatch at (%d,%d,%d): %x vs %x", x, y, z, m.Get(x, y, z), m2.Get(x, y, z))
				}
			}
		}
	}
}

func TestWriteRejectsUndersizedBuffer(t *testing.T) {
	m, err := New(2, 2, 8, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = m.Write(make([]byte, 1))
	if err == nil {
		t.Fatal("expected an error writing into a too-small buffer")
	}
}
