package scene

import (
	"fmt"

	"github.com/yashsriram/yart/types"
)

// Defines a Blinn-Phong material.
type Material struct {
	// Diffuse (Od) and specular (Os) colors.
	Diffuse  types.Color
	Specular types.Color

	// Ambient, diffuse and specular weights.
	Ka, Kd, Ks float64

	// Specular exponent.
	N float64

	// 1 is fully opaque, 0 fully transparent.
	Opacity float64

	// Index of refraction.
	IOR float64
}

// Create an opaque material with an index of refraction of 1.
func NewMaterial(diffuse, specular types.Color, ka, kd, ks, n float64) *Material {
	return &Material{
		Diffuse:  diffuse,
		Specular: specular,
		Ka:       ka,
		Kd:       kd,
		Ks:       ks,
		N:        n,
		Opacity:  1,
		IOR:      1,
	}
}

// Validate material parameter ranges.
func (m *Material) Validate() error {
	switch {
	case !m.Diffuse.InUnitRange():
		return fmt.Errorf("diffuse color component is not between 0 and 1")
	case !m.Specular.InUnitRange():
		return fmt.Errorf("specular color component is not between 0 and 1")
	case m.Ka < 0 || m.Ka > 1 || m.Kd < 0 || m.Kd > 1 || m.Ks < 0 || m.Ks > 1:
		return fmt.Errorf("ka, kd and ks must be between 0 and 1")
	case m.N < 0:
		return fmt.Errorf("specular exponent is negative")
	case m.Opacity < 0 || m.Opacity > 1:
		return fmt.Errorf("opacity is not between 0 and 1")
	case m.IOR <= 0:
		return fmt.Errorf("index of refraction must be positive")
	}
	return nil
}
