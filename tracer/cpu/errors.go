package cpu

import "errors"

var (
	ErrNoSceneData       = errors.New("cpu tracer: no scene data uploaded")
	ErrNoCamera          = errors.New("cpu tracer: scene has no camera")
	ErrNoFrameBuffer     = errors.New("cpu tracer: block request has no frame buffer")
	ErrFrameSizeMismatch = errors.New("cpu tracer: frame buffer size does not match camera image size")
	ErrBlockOutOfBounds  = errors.New("cpu tracer: block exceeds frame buffer rows")
)
