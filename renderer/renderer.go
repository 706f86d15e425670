package renderer

import (
	"context"

	"github.com/yashsriram/yart/frame"
)

type Renderer interface {
	// Render frame. Cancelling the context aborts the render with
	// ErrInterrupted.
	Render(ctx context.Context) (*frame.Buffer, error)

	// Get the last rendered frame.
	Frame() *frame.Buffer

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}
