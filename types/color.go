package types

import "golang.org/x/image/math/f64"

// An RGB color. Channels are not bounded while shading; they are clamped
// once when the final frame is quantized.
type Color f64.Vec3

// Define a color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Add a color.
func (c Color) Add(c2 Color) Color {
	return Color{c[0] + c2[0], c[1] + c2[1], c[2] + c2[2]}
}

// Scale color by a scalar.
func (c Color) Mul(s float64) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// Multiply color components.
func (c Color) MulColor(c2 Color) Color {
	return Color{c[0] * c2[0], c[1] * c2[1], c[2] * c2[2]}
}

// Clamp each channel to [0, 1].
func (c Color) Clamp() Color {
	out := c
	for i := range out {
		if out[i] < 0 {
			out[i] = 0
		} else if out[i] > 1 {
			out[i] = 1
		}
	}
	return out
}

// Convert to 8-bit channels. Channels are clamped and then scaled by 255 and
// truncated; no rounding or gamma correction is applied.
func (c Color) Quantize() [3]uint8 {
	cl := c.Clamp()
	return [3]uint8{uint8(cl[0] * 255), uint8(cl[1] * 255), uint8(cl[2] * 255)}
}

// Returns true if all channels lie in [0, 1].
func (c Color) InUnitRange() bool {
	return c[0] >= 0 && c[0] <= 1 && c[1] >= 0 && c[1] <= 1 && c[2] >= 0 && c[2] <= 1
}
