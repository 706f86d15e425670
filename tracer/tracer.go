package tracer

import (
	"time"

	"github.com/yashsriram/yart/frame"
)

type UpdateType uint8

const (
	UpdateScene UpdateType = iota
)

// A unit of work that is processed by a tracer.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// The frame buffer to write traced colors to. Each tracer only writes
	// to the rows of its block.
	Frame *frame.Buffer

	// Maximum number of reflection/refraction bounces.
	MaxDepth uint32

	// Number of jittered rays per pixel and the jitter magnitude.
	PixelSamples uint32
	PixelJitter  float64

	// Number of jittered shadow rays per light and the jitter magnitude.
	ShadowSamples uint32
	ShadowJitter  float64

	// A seed value for the per-pixel random number generators.
	Seed int64

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics.
type Stats struct {
	// The rendered block height.
	BlockH uint32

	// The time for rendering the block.
	RenderTime time.Duration

	// The time for applying pending updates.
	UpdateTime time.Duration

	// Number of camera, secondary (reflection and refraction) and shadow
	// rays traced for the last block.
	PrimaryRays   uint64
	SecondaryRays uint64
	ShadowRays    uint64
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Get the tracer's relative computation speed.
	Speed() uint32

	// Start the tracer worker.
	Init() error

	// Shutdown and cleanup tracer.
	Close()

	// Enqueue block request.
	Enqueue(BlockRequest)

	// Queue an update; pending updates are applied before the next block
	// is rendered.
	Update(UpdateType, interface{})

	// Retrieve last frame statistics.
	Stats() *Stats
}
