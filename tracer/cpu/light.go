package cpu

import (
	"math"
	"math/rand"

	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/types"
)

// Directional light jitter is scaled down as the offset is applied to a
// direction rather than to a position.
const directionalJitterScale = 0.1

// LightDirection returns the unit direction from point towards the light and
// the distance to the light (+Inf for directional lights). A positive jitter
// perturbs the light by a random unit vector drawn from rng scaled by jitter;
// rng is not consumed when jitter is zero.
func LightDirection(light scene.Light, point types.Vec3, jitter float64, rng *rand.Rand) (types.Vec3, float64) {
	var offset types.Vec3
	if jitter > 0 && rng != nil {
		offset = types.RandomUnitVec3(rng).Mul(jitter)
	}

	switch light.Type {
	case scene.DirectionalLight:
		dir := light.Vector.Add(offset.Mul(directionalJitterScale))
		return dir.Neg().Normalize(), math.Inf(1)
	default:
		toLight := light.Vector.Add(offset).Sub(point)
		return toLight.Normalize(), toLight.Len()
	}
}
