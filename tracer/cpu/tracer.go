package cpu

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/yashsriram/yart/log"
	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/tracer"
	"github.com/yashsriram/yart/types"
)

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// Guards the update buffer which is written by the renderer and
	// drained by the worker.
	updateMu sync.Mutex

	// The tracer id.
	id string

	// A buffer for queuing updates. Updates are grouped by type and
	// latest updates always overwrite the previous ones.
	updateBuffer map[tracer.UpdateType]interface{}

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for last rendered block.
	stats *tracer.Stats

	// The scene being rendered.
	sceneData *scene.Scene
}

// Create a new cpu tracer.
func NewTracer(id string) tracer.Tracer {
	return &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		blockReqChan: make(chan tracer.BlockRequest, 1),
		updateBuffer: make(map[tracer.UpdateType]interface{}, 0),
		stats:        &tracer.Stats{},
	}
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// All cpu tracers run on identical cores.
func (tr *cpuTracer) Speed() uint32 {
	return 1
}

// Initialize tracer and start its worker.
func (tr *cpuTracer) Init() error {
	tr.Lock()
	defer tr.Unlock()

	tr.startWorker()
	return nil
}

// Shutdown and cleanup tracer.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	// If the worker is running shut it down
	if tr.closeChan != nil {
		tr.closeChan <- struct{}{}

		// wait for worker to ack close
		<-tr.closeChan
		tr.wg.Wait()
		close(tr.closeChan)
		tr.closeChan = nil
	}

	tr.sceneData = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq tracer.BlockRequest) {
	select {
	case tr.blockReqChan <- blockReq:
	default:
		// drop the request if the worker already has a pending one
		tr.logger.Error("request processor did not receive block request")
		blockReq.ErrChan <- fmt.Errorf("cpu tracer (%s): busy", tr.id)
	}
}

// Append a change to the tracer's update buffer.
func (tr *cpuTracer) Update(updateType tracer.UpdateType, data interface{}) {
	tr.updateMu.Lock()
	defer tr.updateMu.Unlock()
	tr.updateBuffer[updateType] = data
}

// Retrieve last block statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Commit queued changes.
func (tr *cpuTracer) commitUpdates() error {
	tr.updateMu.Lock()
	defer tr.updateMu.Unlock()

	for updateType, data := range tr.updateBuffer {
		switch updateType {
		case tracer.UpdateScene:
			sc, ok := data.(*scene.Scene)
			if !ok || sc == nil {
				return ErrNoSceneData
			}
			if sc.Camera == nil {
				return ErrNoCamera
			}
			tr.sceneData = sc
		default:
			return fmt.Errorf("cpu tracer: unsupported update type %d", updateType)
		}
	}

	tr.updateBuffer = make(map[tracer.UpdateType]interface{}, 0)
	return nil
}

// Spawn a go-routine to process block render requests.
func (tr *cpuTracer) startWorker() {
	// Worker already running
	if tr.closeChan != nil {
		return
	}
	tr.closeChan = make(chan struct{})
	closeChan := tr.closeChan

	readyChan := make(chan struct{}, 0)
	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		var blockReq tracer.BlockRequest
		var startTime time.Time
		var err error
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:
				startTime = time.Now()

				// Apply any pending changes
				err = tr.commitUpdates()
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}
				tr.stats.UpdateTime = time.Since(startTime)

				// Render block and reply with our completion status
				startTime = time.Now()
				err = tr.renderBlock(&blockReq)
				if err != nil {
					blockReq.ErrChan <- err
					continue
				}

				// Update stats
				tr.stats.BlockH = blockReq.BlockH
				tr.stats.RenderTime = time.Since(startTime)

				blockReq.DoneChan <- blockReq.BlockH
			case <-closeChan:
				// Ack close
				closeChan <- struct{}{}
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Render the rows of a block into the request's frame buffer.
func (tr *cpuTracer) renderBlock(blockReq *tracer.BlockRequest) error {
	sc := tr.sceneData
	if sc == nil {
		return ErrNoSceneData
	}

	fb := blockReq.Frame
	switch {
	case fb == nil:
		return ErrNoFrameBuffer
	case fb.Width != sc.Camera.Width || fb.Height != sc.Camera.Height:
		return ErrFrameSizeMismatch
	case blockReq.BlockY+blockReq.BlockH > fb.Height:
		return ErrBlockOutOfBounds
	}

	plane := newImagePlane(sc.Camera)
	rng := rand.New(rand.NewSource(blockReq.Seed))
	in := newIntegrator(sc, blockReq.ShadowSamples, blockReq.ShadowJitter, rng)

	// Reseeding is only needed when something actually draws random numbers
	randomized := blockReq.PixelJitter > 0 || blockReq.ShadowJitter > 0
	samples := blockReq.PixelSamples
	if samples == 0 {
		samples = 1
	}
	invSamples := 1 / float64(samples)

	for y := blockReq.BlockY; y < blockReq.BlockY+blockReq.BlockH; y++ {
		for x := uint32(0); x < fb.Width; x++ {
			if randomized {
				rng.Seed(pixelSeed(blockReq.Seed, x, y))
			}

			var c types.Color
			for s := uint32(0); s < samples; s++ {
				ray := plane.PrimaryRay(x, y, blockReq.PixelJitter, rng)
				c = c.Add(in.Trace(ray, blockReq.MaxDepth))
			}
			fb.Set(x, y, c.Mul(invSamples))
		}
	}

	tr.stats.PrimaryRays = in.primaryRays
	tr.stats.SecondaryRays = in.secondaryRays
	tr.stats.ShadowRays = in.shadowRays
	return nil
}

// Derive the random seed of a pixel so that output does not depend on which
// tracer renders it.
func pixelSeed(seed int64, x, y uint32) int64 {
	z := uint64(seed) ^ (uint64(y)<<32 | uint64(x))
	// splitmix64 finalizer
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
