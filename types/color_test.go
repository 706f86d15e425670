package types

import "testing"

func TestColorArithmetic(t *testing.T) {
	c := RGB(0.5, 0.25, 1)
	if got := c.Add(RGB(0.1, 0.1, 0.1)); !Vec3(got).ApproxEqual(Vec3{0.6, 0.35, 1.1}, 1e-12) {
		t.Fatalf("expected (0.6, 0.35, 1.1); got %v", got)
	}
	if got := c.Mul(2); got != RGB(1, 0.5, 2) {
		t.Fatalf("expected (1, 0.5, 2); got %v", got)
	}
	if got := c.MulColor(RGB(0.5, 2, 0)); got != RGB(0.25, 0.5, 0) {
		t.Fatalf("expected (0.25, 0.5, 0); got %v", got)
	}
}

func TestColorQuantize(t *testing.T) {
	type spec struct {
		in  Color
		exp [3]uint8
	}
	specs := []spec{
		{RGB(0, 0, 0), [3]uint8{0, 0, 0}},
		{RGB(1, 1, 1), [3]uint8{255, 255, 255}},
		// clamping
		{RGB(-0.5, 2, 1.0001), [3]uint8{0, 255, 255}},
		// truncation, not rounding: 0.999*255 = 254.745
		{RGB(0.999, 0.5, 0.1), [3]uint8{254, 127, 25}},
	}

	for index, s := range specs {
		if got := s.in.Quantize(); got != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestColorUnitRange(t *testing.T) {
	if !RGB(0, 0.5, 1).InUnitRange() {
		t.Fatal("expected color to be in unit range")
	}
	if RGB(0, 1.5, 1).InUnitRange() {
		t.Fatal("expected color to be out of unit range")
	}
}
