package cpu

import (
	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/types"
)

// TraceRay finds the primitive nearest to the ray origin. It returns the
// primitive index and ray parameter of the hit or (-1, -1) if nothing is hit.
// Primitives are tested in scene order so ties resolve to the first one.
func TraceRay(ray types.Ray, sc *scene.Scene, grace float64) (int, float64) {
	index, nearest := -1, NoHit
	for i, prim := range sc.Primitives {
		t := Intersect(ray, prim, grace)
		if t < 0 {
			continue
		}
		if index == -1 || t < nearest {
			index, nearest = i, t
		}
	}
	return index, nearest
}
