package vision

import (
	"image"
	"testing"
)

func TestQuadMeasurements(t *testing.T) {
	tests := []struct {
		name       string
		quad       Quad
		wantLT     Point
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "axis aligned",
			quad:       Quad{{10, 10}, {40, 10}, {40, 30}, {10, 30}},
			wantLT:     Point{40, 10},
			wantWidth:  -30,
			wantHeight: 20,
		},
		{
			name:       "vertex 3 down and right of vertex 1",
			quad:       Quad{{0, 0}, {5, 5}, {0, 0}, {25, 45}},
			wantLT:     Point{5, 5},
			wantWidth:  20,
			wantHeight: 40,
		},
		{
			name:       "ENGINE polygon",
			quad:       Quad{{1222, 1771}, {1944, 1834}, {1930, 1992}, {1208, 1928}},
			wantLT:     Point{1944, 1834},
			wantWidth:  -736,
			wantHeight: 94,
		},
		{
			name:       "degenerate point",
			quad:       Quad{{7, 7}, {7, 7}, {7, 7}, {7, 7}},
			wantLT:     Point{7, 7},
			wantWidth:  0,
			wantHeight: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quad.LeftTop(); got != tt.wantLT {
				t.Errorf("LeftTop() = %v, want %v", got, tt.wantLT)
			}
			if got := tt.quad.Width(); got != tt.wantWidth {
				t.Errorf("Width() = %d, want %d", got, tt.wantWidth)
			}
			if got := tt.quad.Height(); got != tt.wantHeight {
				t.Errorf("Height() = %d, want %d", got, tt.wantHeight)
			}
		})
	}
}

func TestQuadNonNegativeWhenOrdered(t *testing.T) {
	for x1 := -3; x1 <= 3; x1++ {
		for y1 := -3; y1 <= 3; y1++ {
			for dx := 0; dx <= 4; dx++ {
				for dy := 0; dy <= 4; dy++ {
					q := Quad{{}, {x1, y1}, {}, {x1 + dx, y1 + dy}}
					if q.Width() < 0 || q.Height() < 0 {
						t.Fatalf("negative size for %v", q)
					}
					if q.LeftTop() != q[1] {
						t.Fatalf("LeftTop() = %v, want %v", q.LeftTop(), q[1])
					}
				}
			}
		}
	}
}

func TestQuadBounds(t *testing.T) {
	q := Quad{{1222, 1771}, {1944, 1834}, {1930, 1992}, {1208, 1928}}
	want := image.Rect(1208, 1771, 1944, 1992)
	if got := q.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}
