package cpu

import (
	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/types"
)

// ShadowFactor returns the fraction of light that reaches point when
// travelling along dir from a light lightDist away. Every primitive the
// shadow ray crosses before reaching the light attenuates the factor by its
// transparency, so semi-transparent objects cast partial shadows.
func ShadowFactor(point, dir types.Vec3, lightDist float64, sc *scene.Scene) float64 {
	ray := types.Ray{Origin: point, Dir: dir}
	maxDistSq := lightDist * lightDist

	factor := 1.0
	for _, prim := range sc.Primitives {
		t := Intersect(ray, prim, ShadowGrace)
		if t < 0 || t*t >= maxDistSq {
			continue
		}

		factor *= 1 - prim.Material.Opacity
		if factor == 0 {
			break
		}
	}
	return factor
}
