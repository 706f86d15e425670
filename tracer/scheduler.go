package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign them to the pool
	// of tracers. Returns the block height assignment for each tracer in the
	// input list; assignments always add up to frameH.
	Schedule(tracers []Tracer, frameH uint32) []uint32
}

// The naive scheduler splits the frame proportionally to each tracer's
// speed estimate.
type naiveScheduler struct{}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return &naiveScheduler{}
}

func (sch *naiveScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	weights := make([]float64, len(tracers))
	for idx, tr := range tracers {
		weights[idx] = float64(tr.Speed())
	}
	return distributeRows(weights, frameH)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance.
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// When previous frame information is available the scheduler uses the
// following formula for estimating the workload for tracer w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	// If this is the first time we try to schedule or the number of tracers
	// has changed we need to fall back to the speed estimates
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = NaiveScheduler().Schedule(tracers, frameH)
		return sch.blockAssignment
	}

	weights := make([]float64, len(tracers))
	for idx, tr := range tracers {
		stats := tr.Stats()
		if stats.RenderTime <= 0 || stats.BlockH == 0 {
			sch.blockAssignment = NaiveScheduler().Schedule(tracers, frameH)
			return sch.blockAssignment
		}
		weights[idx] = float64(stats.BlockH) / float64(stats.RenderTime)
	}

	sch.blockAssignment = distributeRows(weights, frameH)
	return sch.blockAssignment
}

// Split frameH rows proportionally to the supplied weights. Every tracer gets
// at least one row as long as there are enough rows to go around; rows lost
// to rounding are appended to the first tracer.
func distributeRows(weights []float64, frameH uint32) []uint32 {
	assignment := make([]uint32, len(weights))
	if len(weights) == 0 {
		return assignment
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		for idx := range weights {
			weights[idx] = 1
		}
		total = float64(len(weights))
	}

	minRows := 0.0
	if int(frameH) >= len(weights) {
		minRows = 1.0
	}

	scaler := float64(frameH) / total
	var scheduledRows uint32
	for idx, w := range weights {
		assignment[idx] = uint32(math.Max(minRows, math.Floor(w*scaler)))
		scheduledRows += assignment[idx]
	}

	// The minimum row guarantee may overshoot; take the excess from the
	// largest blocks
	for scheduledRows > frameH {
		largest := 0
		for idx := range assignment {
			if assignment[idx] > assignment[largest] {
				largest = idx
			}
		}
		assignment[largest]--
		scheduledRows--
	}

	assignment[0] += frameH - scheduledRows
	return assignment
}
