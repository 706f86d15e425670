package cpu

import (
	"math"
	"math/rand"

	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/types"
)

// The integrator evaluates the color seen along a ray by combining local
// Blinn-Phong shading with Fresnel weighted reflection and refraction. It is
// not safe for concurrent use; each tracer owns one.
type integrator struct {
	sc      *scene.Scene
	viewDir types.Vec3

	shadowSamples uint32
	shadowJitter  float64

	rng *rand.Rand

	// ray counters
	primaryRays   uint64
	secondaryRays uint64
	shadowRays    uint64
}

func newIntegrator(sc *scene.Scene, shadowSamples uint32, shadowJitter float64, rng *rand.Rand) *integrator {
	return &integrator{
		sc:            sc,
		viewDir:       sc.Camera.ViewDir.Normalize(),
		shadowSamples: shadowSamples,
		shadowJitter:  shadowJitter,
		rng:           rng,
	}
}

// Trace a camera ray with the given number of bounces.
func (in *integrator) Trace(ray types.Ray, depth uint32) types.Color {
	in.primaryRays++
	return in.trace(ray, 0, depth, cameraMedium, true)
}

// Recursively trace a ray. Rays that miss return the background color; camera
// rays scale it by the cosine between the ray and the view direction.
func (in *integrator) trace(ray types.Ray, grace float64, depth uint32, media *medium, primary bool) types.Color {
	index, t := TraceRay(ray, in.sc, grace)
	if index < 0 {
		if primary {
			return in.sc.BgColor.Mul(ray.Dir.Dot(in.viewDir))
		}
		return in.sc.BgColor
	}

	prim := in.sc.Primitives[index]
	point := ray.At(t)
	out := in.Shade(ray, prim, point)
	if depth == 0 {
		return out
	}

	incident := ray.Dir.Neg()
	normal := ShadingNormal(prim, point)
	cosI := normal.Dot(incident)

	// Entering pushes the primitive's medium and leaving pops back to the
	// enclosing one. The back face of a surface the ray is not inside acts
	// as a thin two sided surface and leaves the stack as is.
	var next *medium
	var transmittance float64
	switch {
	case cosI > 0:
		next = media.push(prim.Material)
		transmittance = 1 - next.opacity
	case media.exitsThrough(prim.Material):
		normal = normal.Neg()
		cosI = -cosI
		next = media.pop()
		transmittance = 1 - next.opacity
	default:
		normal = normal.Neg()
		cosI = -cosI
		next = media
		transmittance = 1 - prim.Material.Opacity
	}

	n1, n2 := media.ior, next.ior
	f0 := (n2 - n1) / (n2 + n1)
	f0 *= f0
	fr := f0 + (1-f0)*math.Pow(1-cosI, 5)

	reflected := types.Ray{Origin: point, Dir: normal.Mul(2 * cosI).Sub(incident).Normalize()}
	in.secondaryRays++
	reflColor := in.trace(reflected, SecondaryGrace, depth-1, media, false)
	out = out.Add(reflColor.Mul(fr))

	eta := n1 / n2
	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		// Total internal reflection; the transmitted share follows the
		// reflected ray, whose color is already known.
		return out.Add(reflColor.Mul(1 - fr))
	}

	weight := (1 - fr) * transmittance
	if weight <= 0 {
		return out
	}

	refracted := types.Ray{
		Origin: point,
		Dir:    normal.Mul(-math.Sqrt(k)).Add(normal.Mul(cosI).Sub(incident).Mul(eta)).Normalize(),
	}
	in.secondaryRays++
	return out.Add(in.trace(refracted, SecondaryGrace, depth-1, next, false).Mul(weight))
}
