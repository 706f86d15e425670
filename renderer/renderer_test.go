package renderer

import (
	"context"
	"testing"

	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/tracer"
	"github.com/yashsriram/yart/types"
)

func testScene() *scene.Scene {
	sc := scene.NewScene()
	sc.SetCamera(scene.NewCamera(60, 16, 12))
	sc.BgColor = types.RGB(0.1, 0.1, 0.3)

	red := scene.NewMaterial(types.RGB(1, 0, 0), types.RGB(1, 1, 1), 0.1, 0.6, 0.3, 30)
	glass := scene.NewMaterial(types.RGB(0.9, 0.9, 1), types.RGB(1, 1, 1), 0.05, 0.1, 0.5, 60)
	glass.Opacity = 0.2
	glass.IOR = 1.5
	sc.AddMaterial(red)
	sc.AddMaterial(glass)

	sc.AddPrimitive(scene.NewSphere(types.XYZ(0, 0, -6), 1.5, red))
	sc.AddPrimitive(scene.NewSphere(types.XYZ(0.5, 0.3, -3.5), 0.5, glass))
	sc.AddPrimitive(scene.NewTriangle([3]types.Vec3{
		types.XYZ(-10, -2, 0),
		types.XYZ(10, -2, 0),
		types.XYZ(0, -2, -20),
	}, red))
	sc.AddLight(scene.Light{Type: scene.PositionalLight, Vector: types.XYZ(3, 5, 0), Color: types.RGB(1, 1, 1)})
	sc.AddLight(scene.Light{Type: scene.DirectionalLight, Vector: types.XYZ(-1, -1, -1), Color: types.RGB(0.3, 0.3, 0.3)})
	return sc
}

func TestNewDefaultErrors(t *testing.T) {
	if _, err := NewDefault(nil, tracer.NaiveScheduler(), DefaultOptions()); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}

	if _, err := NewDefault(scene.NewScene(), tracer.NaiveScheduler(), DefaultOptions()); err != ErrCameraNotDefined {
		t.Fatalf("expected ErrCameraNotDefined; got %v", err)
	}

	sc := testScene()
	sc.Camera.VFov = 180
	if _, err := NewDefault(sc, tracer.NaiveScheduler(), DefaultOptions()); err == nil {
		t.Fatal("expected invalid camera to be rejected")
	}
}

func TestRenderFrame(t *testing.T) {
	sc := testScene()
	opts := DefaultOptions()
	opts.NumTracers = 3

	r, err := NewDefault(sc, tracer.NaiveScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	fb, err := r.Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if fb != r.Frame() {
		t.Fatal("expected Render to return the renderer frame buffer")
	}
	if fb.Width != 16 || fb.Height != 12 {
		t.Fatalf("expected a 16x12 frame; got %dx%d", fb.Width, fb.Height)
	}

	stats := r.Stats()
	if len(stats.Tracers) != 3 {
		t.Fatalf("expected stats for 3 tracers; got %d", len(stats.Tracers))
	}
	var rows uint32
	var primary uint64
	var percent float32
	for _, stat := range stats.Tracers {
		rows += stat.BlockH
		primary += stat.PrimaryRays
		percent += stat.FramePercent
	}
	if rows != 12 {
		t.Fatalf("expected tracers to cover 12 rows; got %d", rows)
	}
	if primary != 16*12 {
		t.Fatalf("expected %d primary rays; got %d", 16*12, primary)
	}
	if percent < 99.9 || percent > 100.1 {
		t.Fatalf("expected frame percentages to add up to 100; got %f", percent)
	}
	if stats.TotalRays() <= primary {
		t.Fatal("expected secondary and shadow rays to be counted")
	}
}

func TestRenderIsIndependentOfTracerCount(t *testing.T) {
	sc := testScene()
	opts := Options{
		MaxDepth:      4,
		ShadowSamples: 3,
		ShadowJitter:  0.3,
		PixelSamples:  2,
		PixelJitter:   0.005,
		Seed:          99,
	}

	var frames [][]types.Color
	for _, numTracers := range []int{1, 4, 7} {
		opts.NumTracers = numTracers
		r, err := NewDefault(sc, tracer.PerfectScheduler(), opts)
		if err != nil {
			t.Fatal(err)
		}

		// Render twice so the perfect scheduler rebalances the blocks
		for pass := 0; pass < 2; pass++ {
			fb, err := r.Render(context.Background())
			if err != nil {
				r.Close()
				t.Fatal(err)
			}
			frames = append(frames, append([]types.Color(nil), fb.Pixels...))
		}
		r.Close()
	}

	for f := 1; f < len(frames); f++ {
		for i := range frames[0] {
			if frames[f][i] != frames[0][i] {
				t.Fatalf("expected frame %d pixel %d to be %v; got %v", f, i, frames[0][i], frames[f][i])
			}
		}
	}
}

func TestMoreTracersThanRows(t *testing.T) {
	sc := testScene()
	sc.Camera.Width, sc.Camera.Height = 4, 2
	opts := DefaultOptions()
	opts.NumTracers = 5

	r, err := NewDefault(sc, tracer.NaiveScheduler(), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if _, err = r.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, stat := range r.Stats().Tracers {
		if stat.BlockH == 0 && stat.PrimaryRays != 0 {
			t.Fatalf("expected idle tracer %s to report no rays", stat.Id)
		}
	}
}

func TestRenderInterrupted(t *testing.T) {
	r, err := NewDefault(testScene(), tracer.NaiveScheduler(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// tracers may finish before the cancellation is observed
	if _, err = r.Render(ctx); err != nil && err != ErrInterrupted {
		t.Fatalf("expected ErrInterrupted; got %v", err)
	}
}

func TestRenderAfterClose(t *testing.T) {
	r, err := NewDefault(testScene(), tracer.NaiveScheduler(), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	r.Close()

	if _, err = r.Render(context.Background()); err != ErrNoTracers {
		t.Fatalf("expected ErrNoTracers; got %v", err)
	}
}
