package core

import "testing"

func TestVec2Arithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, -2)

	if got := a.Add(b); got != V(4, 2) {
		t.Errorf("Add() = %v, expected (4, 2)", got)
	}
	if got := a.Sub(b); got != V(2, 6) {
		t.Errorf("Sub() = %v, expected (2, 6)", got)
	}
	if got := a.Scale(0.5); got != V(1.5, 2) {
		t.Errorf("Scale() = %v, expected (1.5, 2)", got)
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		name  string
		size  Size
		half  float64
		empty bool
	}{
		{"regular", Size{W: 640, H: 480}, 320, false},
		{"zero width", Size{W: 0, H: 480}, 0, true},
		{"negative height", Size{W: 640, H: -1}, 320, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.size.HalfW(); got != tc.half {
				t.Errorf("HalfW() = %v, expected %v", got, tc.half)
			}
			if got := tc.size.Empty(); got != tc.empty {
				t.Errorf("Empty() = %v, expected %v", got, tc.empty)
			}
		})
	}
}
