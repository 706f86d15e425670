package renderer

import "runtime"

// Default number of reflection/refraction bounces.
const DefaultMaxDepth = 5

type Options struct {
	// Number of reflection/refraction bounces.
	MaxDepth uint32

	// Jittered shadow rays per light and the light position jitter radius.
	ShadowSamples uint32
	ShadowJitter  float64

	// Jittered camera rays per pixel and the ray origin jitter radius.
	PixelSamples uint32
	PixelJitter  float64

	// Seed for the per-pixel random number generators.
	Seed int64

	// Number of cpu tracers; 0 selects one per logical cpu.
	NumTracers int
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		MaxDepth:      DefaultMaxDepth,
		ShadowSamples: 1,
		PixelSamples:  1,
		NumTracers:    runtime.NumCPU(),
	}
}
