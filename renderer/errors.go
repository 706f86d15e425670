package renderer

import "errors"

var (
	// Returned when no cpu tracer could be started or the renderer was closed.
	ErrNoTracers = errors.New("renderer: no cpu tracers available")

	ErrSceneNotDefined  = errors.New("renderer: scene is nil")
	ErrCameraNotDefined = errors.New("renderer: scene has no camera")

	// Returned when the render context is cancelled before every block completes.
	ErrInterrupted = errors.New("renderer: frame render interrupted")
)
