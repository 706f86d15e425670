package scene

import (
	"fmt"
	"math"

	"github.com/yashsriram/yart/types"
)

// Largest supported image width or height in pixels.
const MaxImageSize = 16384

// The camera type describes the scene viewpoint and image plane.
type Camera struct {
	Eye     types.Vec3
	ViewDir types.Vec3
	UpDir   types.Vec3

	// Vertical field of view in degrees.
	VFov float64

	// Image dimensions in pixels.
	Width  uint32
	Height uint32

	// Use parallel instead of perspective projection.
	Parallel bool

	// Distance from the eye to the image plane. If zero, the distance is
	// derived from the field of view so that one pixel spans one world unit.
	ViewingDistance float64
}

// Create a camera at the origin looking down the -Z axis.
func NewCamera(vfov float64, width, height uint32) *Camera {
	return &Camera{
		ViewDir: types.XYZ(0, 0, -1),
		UpDir:   types.XYZ(0, 1, 0),
		VFov:    vfov,
		Width:   width,
		Height:  height,
	}
}

// Validate the camera setup.
func (c *Camera) Validate() error {
	switch {
	case c.ViewDir.Len() < 1e-6:
		return fmt.Errorf("camera: view direction is zero")
	case c.UpDir.Len() < 1e-6:
		return fmt.Errorf("camera: up direction is zero")
	case c.ViewDir.Normalize().Cross(c.UpDir.Normalize()).Len() < 1e-6:
		return fmt.Errorf("camera: view and up directions are parallel")
	case c.VFov <= 0 || c.VFov >= 180:
		return fmt.Errorf("camera: vertical fov must be between 0 and 180 degrees")
	case c.Width == 0 || c.Height == 0:
		return fmt.Errorf("camera: image size must be positive")
	case c.Width > MaxImageSize || c.Height > MaxImageSize:
		return fmt.Errorf("camera: image size exceeds %d pixels", MaxImageSize)
	case c.ViewingDistance < 0:
		return fmt.Errorf("camera: viewing distance is negative")
	}
	return nil
}

// PlaneDistance returns the distance of the image plane from the eye.
func (c *Camera) PlaneDistance() float64 {
	if c.ViewingDistance > 0 {
		return c.ViewingDistance
	}
	return float64(c.Height) / (2 * math.Tan(c.VFov*math.Pi/360))
}
