package cpu

import (
	"math"

	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/types"
)

const (
	// Returned by the intersection routines when the ray misses.
	NoHit = -1.0

	// Rays whose direction is this close to perpendicular to a triangle's
	// (unnormalized) surface normal are treated as parallel to its plane.
	ParallelEpsilon = 1e-6

	// Maximum difference between the triangle area and the sum of the
	// sub-triangle areas for a point to be considered inside the triangle.
	ContainmentEpsilon = 1e-6

	// Grace offset for all rays spawned from a surface point (shadow,
	// reflection and refraction) to avoid self intersection.
	SecondaryGrace = 1e-4

	// Grace offset for shadow rays.
	ShadowGrace = SecondaryGrace
)

// Intersect a ray with a primitive. Returns the smallest ray parameter
// t >= grace at which the ray hits the primitive or NoHit.
func Intersect(ray types.Ray, prim *scene.Primitive, grace float64) float64 {
	switch prim.Type {
	case scene.SpherePrimitive:
		return intersectSphere(ray, prim, grace)
	case scene.EllipsoidPrimitive:
		return intersectEllipsoid(ray, prim, grace)
	case scene.TrianglePrimitive:
		return intersectTriangle(ray, prim, grace)
	}
	return NoHit
}

func intersectSphere(ray types.Ray, prim *scene.Primitive, grace float64) float64 {
	oc := ray.Origin.Sub(prim.Center)
	b := 2 * ray.Dir.Dot(oc)
	c := oc.LenSq() - prim.Radius*prim.Radius
	return nearestRoot(ray.Dir.LenSq(), b, c, grace)
}

// Solve the sphere quadratic in a space where the ellipsoid becomes the unit
// sphere. Scaling does not change the ray parameter so the returned t is valid
// for the original ray.
func intersectEllipsoid(ray types.Ray, prim *scene.Primitive, grace float64) float64 {
	oc := ray.Origin.Sub(prim.Center).DivVec(prim.Radii)
	dir := ray.Dir.DivVec(prim.Radii)
	return nearestRoot(dir.LenSq(), 2*dir.Dot(oc), oc.LenSq()-1, grace)
}

// Pick the smallest root of at^2 + bt + c that is >= grace.
func nearestRoot(a, b, c, grace float64) float64 {
	disc := b*b - 4*a*c
	if disc < 0 {
		return NoHit
	}

	if disc == 0 {
		if t := -b / (2 * a); t >= grace {
			return t
		}
		return NoHit
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	if t1 >= grace {
		return t1
	}
	if t2 >= grace {
		return t2
	}
	return NoHit
}

func intersectTriangle(ray types.Ray, prim *scene.Primitive, grace float64) float64 {
	denom := prim.SurfaceNormal.Dot(ray.Dir)
	if math.Abs(denom) < ParallelEpsilon {
		return NoHit
	}

	t := -(prim.SurfaceNormal.Dot(ray.Origin) + prim.D) / denom
	if t < grace {
		return NoHit
	}

	if !insideTriangle(prim, ray.At(t)) {
		return NoHit
	}
	return t
}

// Returns true if a point on the triangle plane lies inside the triangle.
func insideTriangle(prim *scene.Primitive, point types.Vec3) bool {
	areas := subAreas(prim, point)
	return math.Abs(areas[0]+areas[1]+areas[2]-prim.Area) < ContainmentEpsilon
}

// Calculate the areas of the three triangles formed by the point and each
// triangle edge. Area i is opposite to vertex i.
func subAreas(prim *scene.Primitive, point types.Vec3) [3]float64 {
	v := prim.Vertices
	return [3]float64{
		v[1].Sub(point).Cross(v[2].Sub(point)).Len() / 2,
		v[2].Sub(point).Cross(v[0].Sub(point)).Len() / 2,
		v[0].Sub(point).Cross(v[1].Sub(point)).Len() / 2,
	}
}

// Calculate the barycentric coordinates of a point inside the triangle as
// sub-triangle area ratios.
func barycentric(prim *scene.Primitive, point types.Vec3) [3]float64 {
	areas := subAreas(prim, point)
	if prim.Area == 0 {
		return [3]float64{1, 0, 0}
	}
	return [3]float64{areas[0] / prim.Area, areas[1] / prim.Area, areas[2] / prim.Area}
}
