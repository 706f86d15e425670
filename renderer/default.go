package renderer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/yashsriram/yart/frame"
	"github.com/yashsriram/yart/log"
	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/tracer"
	"github.com/yashsriram/yart/tracer/cpu"
)

// A batch renderer that splits each frame across a pool of cpu tracers.
type defaultRenderer struct {
	logger log.Logger

	// The scene to render.
	sc *scene.Scene

	// Render options.
	options Options

	// Attached tracers and the scheduler that splits frames among them.
	tracers          []tracer.Tracer
	scheduler        tracer.BlockScheduler
	blockAssignments []uint32

	// The frame buffer shared by all tracers.
	frame *frame.Buffer

	// Stats for the last rendered frame.
	stats FrameStats
}

// Create a new default renderer using the specified block scheduler.
func NewDefault(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := sc.Camera.Validate(); err != nil {
		return nil, err
	}

	if opts.NumTracers <= 0 {
		opts.NumTracers = runtime.NumCPU()
	}

	r := &defaultRenderer{
		logger:    log.New("renderer"),
		sc:        sc,
		options:   opts,
		scheduler: scheduler,
		frame:     frame.New(sc.Camera.Width, sc.Camera.Height),
	}

	for i := 0; i < opts.NumTracers; i++ {
		tr := cpu.NewTracer(fmt.Sprintf("cpu-%d", i))
		if err := tr.Init(); err != nil {
			r.logger.Warningf("skipping tracer %s due to init error: %s", tr.Id(), err.Error())
			continue
		}
		tr.Update(tracer.UpdateScene, sc)
		r.tracers = append(r.tracers, tr)
	}

	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}
	r.logger.Infof("attached %d cpu tracers", len(r.tracers))

	return r, nil
}

// Shutdown renderer and any attached tracer.
func (r *defaultRenderer) Close() {
	for _, tr := range r.tracers {
		tr.Close()
	}
	r.tracers = nil
}

// Render a frame.
func (r *defaultRenderer) Render(ctx context.Context) (*frame.Buffer, error) {
	if len(r.tracers) == 0 {
		return nil, ErrNoTracers
	}

	start := time.Now()
	err := r.renderFrame(ctx)
	if err != nil {
		return nil, err
	}
	r.updateStats(time.Since(start))
	return r.frame, nil
}

// Get the last rendered frame.
func (r *defaultRenderer) Frame() *frame.Buffer {
	return r.frame
}

// Get render statistics.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Render the frame by splitting it into row blocks and waiting for every
// tracer to complete its block.
func (r *defaultRenderer) renderFrame(ctx context.Context) error {
	frameH := r.frame.Height
	r.blockAssignments = r.scheduler.Schedule(r.tracers, frameH)

	// Channels are buffered so tracers never block when we bail out early
	doneChan := make(chan uint32, len(r.tracers))
	errChan := make(chan error, len(r.tracers))

	var blockY uint32
	pending := 0
	for idx, tr := range r.tracers {
		blockH := r.blockAssignments[idx]
		if blockH == 0 {
			continue
		}

		tr.Enqueue(tracer.BlockRequest{
			BlockY:        blockY,
			BlockH:        blockH,
			Frame:         r.frame,
			MaxDepth:      r.options.MaxDepth,
			PixelSamples:  r.options.PixelSamples,
			PixelJitter:   r.options.PixelJitter,
			ShadowSamples: r.options.ShadowSamples,
			ShadowJitter:  r.options.ShadowJitter,
			Seed:          r.options.Seed,
			DoneChan:      doneChan,
			ErrChan:       errChan,
		})
		blockY += blockH
		pending++
	}

	for pendingRows := frameH; pending > 0; pending-- {
		select {
		case rows := <-doneChan:
			pendingRows -= rows
			r.logger.Debugf("block done; %d rows pending", pendingRows)
		case err := <-errChan:
			return err
		case <-ctx.Done():
			return ErrInterrupted
		}
	}

	return nil
}

// Collect tracer stats for the last rendered frame.
func (r *defaultRenderer) updateStats(renderTime time.Duration) {
	r.stats = FrameStats{
		Tracers:    make([]TracerStat, len(r.tracers)),
		RenderTime: renderTime,
	}

	for idx, tr := range r.tracers {
		stat := TracerStat{
			Id:           tr.Id(),
			BlockH:       r.blockAssignments[idx],
			FramePercent: 100.0 * float32(r.blockAssignments[idx]) / float32(r.frame.Height),
		}

		// Idle tracers still report stats from an earlier frame
		if stat.BlockH > 0 {
			trStats := tr.Stats()
			stat.RenderTime = trStats.RenderTime
			stat.PrimaryRays = trStats.PrimaryRays
			stat.SecondaryRays = trStats.SecondaryRays
			stat.ShadowRays = trStats.ShadowRays
		}
		r.stats.Tracers[idx] = stat
	}
}
