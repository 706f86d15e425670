package renderer

import "time"

type TracerStat struct {
	// The tracer id.
	Id string

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block
	RenderTime time.Duration

	// Rays traced for the assigned block.
	PrimaryRays   uint64
	SecondaryRays uint64
	ShadowRays    uint64
}

type FrameStats struct {
	// Individual tracer stats.
	Tracers []TracerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}

// Total number of rays traced for the frame.
func (fs FrameStats) TotalRays() uint64 {
	var total uint64
	for _, stat := range fs.Tracers {
		total += stat.PrimaryRays + stat.SecondaryRays + stat.ShadowRays
	}
	return total
}
