package irgen

import "testing"

func TestDefaultTarget(t *testing.T) {
	if DefaultTarget.PointerSize != 4 || DefaultTarget.PointerAlign != 4 {
		t.Errorf("DefaultTarget = %+v, want 4-byte pointers", DefaultTarget)
	}
	DefaultTarget.Validate()
}

func TestValidatePanics(t *testing.T) {
	tests := []struct {
		name   string
		target Target
	}{
		{"zero_size", Target{PointerSize: 0, PointerAlign: 4}},
		{"zero_align", Target{PointerSize: 4, PointerAlign: 0}},
		{"odd_size", Target{PointerSize: 3, PointerAlign: 4}},
		{"odd_align", Target{PointerSize: 4, PointerAlign: 6}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %+v", tc.target)
				}
			}()
			tc.target.Validate()
		})
	}
}

func TestHeapHeaderGeometry(t *testing.T) {
	tests := []struct {
		name      string
		target    Target
		wantSize  uint32
		wantAlign uint32
	}{
		{"wasm32", Target{PointerSize: 4, PointerAlign: 4}, 8, 4},
		{"wasm64", Target{PointerSize: 8, PointerAlign: 8}, 16, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.target.HeapHeaderSize(); got != tc.wantSize {
				t.Errorf("HeapHeaderSize() = %d, want %d", got, tc.wantSize)
			}
			if got := tc.target.HeapHeaderAlign(); got != tc.wantAlign {
				t.Errorf("HeapHeaderAlign() = %d, want %d", got, tc.wantAlign)
			}
		})
	}
}
