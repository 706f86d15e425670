package frame

import (
	"image"
	"image/color"

	"github.com/yashsriram/yart/types"
)

// A Buffer holds the unclamped colors produced by the tracers. Rows are stored
// top to bottom. Tracers write disjoint row ranges so no locking is needed.
type Buffer struct {
	Width  uint32
	Height uint32

	Pixels []types.Color
}

// Allocate a new frame buffer.
func New(width, height uint32) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pixels: make([]types.Color, int(width)*int(height)),
	}
}

// Set the color of pixel (x, y).
func (b *Buffer) Set(x, y uint32, c types.Color) {
	b.Pixels[b.index(x, y)] = c
}

// Get the color of pixel (x, y).
func (b *Buffer) At(x, y uint32) types.Color {
	return b.Pixels[b.index(x, y)]
}

func (b *Buffer) index(x, y uint32) int {
	return int(y)*int(b.Width) + int(x)
}

// Quantize the frame into an 8-bit RGBA image. Channels are clamped to [0, 1]
// and truncated.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(b.Width), int(b.Height)))
	for y := uint32(0); y < b.Height; y++ {
		for x := uint32(0); x < b.Width; x++ {
			q := b.At(x, y).Quantize()
			img.SetNRGBA(int(x), int(y), color.NRGBA{R: q[0], G: q[1], B: q[2], A: 255})
		}
	}
	return img
}
