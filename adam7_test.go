package png

import "testing"

// TestAdam7PassDims8x8 checks adam7PassDims against the well-known 8x8
// Adam7 pass dimension table from the PNG spec, spec §4.5.
func TestAdam7PassDims8x8(t *testing.T) {
	h := Header{Width: 8, Height: 8}
	want := [7][2]int{{1, 1}, {1, 1}, {2, 1}, {2, 2}, {4, 2}, {4, 4}, {8, 4}}
	total := 0
	for i, p := range adam7Passes {
		w, ht := adam7PassDims(h, p)
		if w != want[i][0] || ht != want[i][1] {
			t.Errorf("pass %d: got (%d,%d), want (%d,%d)", i+1, w, ht, want[i][0], want[i][1])
		}
		total += w * ht
	}
	if total != 64 {
		t.Errorf("pass pixel totals sum to %d, want 64", total)
	}
}

// TestDeinterlaceAdam7 hand-assembles the 3 non-empty Adam7 passes for a
// 2x2 grayscale8 image and checks the scatter lands pixels at the
// documented (xStart+col*xStride, yStart+row*yStride) positions, spec §4.5.
func TestDeinterlaceAdam7(t *testing.T) {
	h := Header{Width: 2, Height: 2, BitDepth: 8, ColorType: ColorGrayscale}

	// pass1: 1x1 at (0,0), value 0xAA
	// pass6: 1x1 at (1,0), value 0xBB
	// pass7: 2x1 (one row) at y=1, values 0xCC, 0xDD
	raw := []byte{
		0x00, 0xAA, // pass1: filter None, sample
		0x00, 0xBB, // pass6: filter None, sample
		0x00, 0xCC, 0xDD, // pass7: filter None, 2 samples
	}

	out, err := deinterlaceAdam7(raw, h)
	if err != nil {
		t.Fatalf("%+v", err)
	}

	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	for i, v := range want {
		if out[i] != v {
			t.Errorf("out[%d] = %#x, want %#x", i, out[i], v)
		}
	}
}
