package cpu

import (
	"math"
	"math/rand"
	"testing"

	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/types"
)

var testMaterial = scene.NewMaterial(types.RGB(1, 0, 0), types.RGB(1, 1, 1), 0.1, 0.7, 0.2, 20)

func TestSphereIntersection(t *testing.T) {
	sphere := scene.NewSphere(types.XYZ(0, 0, -5), 1, testMaterial)

	type spec struct {
		ray   types.Ray
		grace float64
		exp   float64
	}
	specs := []spec{
		// head on hit
		{types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), 0, 4},
		// pointing away
		{types.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0, NoHit},
		// miss
		{types.NewRay(types.Vec3{}, types.XYZ(0, 1, 0)), 0, NoHit},
		// tangent
		{types.NewRay(types.XYZ(1, 0, 0), types.XYZ(0, 0, -1)), 0, 5},
		// origin inside; only the far root qualifies
		{types.NewRay(types.XYZ(0, 0, -5), types.XYZ(0, 0, -1)), 0, 1},
		// grace skips the near root
		{types.NewRay(types.XYZ(0, 0, -4), types.XYZ(0, 0, -1)), 1e-4, 2},
	}

	for index, s := range specs {
		got := Intersect(s.ray, sphere, s.grace)
		if math.Abs(got-s.exp) > 1e-9 {
			t.Fatalf("[spec %d] expected t to be %f; got %f", index, s.exp, got)
		}
	}
}

func TestSphereHitDistanceLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		center := types.RandomUnitVec3(rng).Mul(3)
		radius := 0.5 + rng.Float64()
		sphere := scene.NewSphere(center, radius, testMaterial)

		// origin strictly outside the sphere aimed somewhere near it
		origin := center.Add(types.RandomUnitVec3(rng).Mul(radius + 1 + 5*rng.Float64()))
		target := center.Add(types.RandomUnitVec3(rng).Mul(radius * rng.Float64()))
		ray := types.NewRay(origin, target.Sub(origin))

		tHit := Intersect(ray, sphere, 0)
		if tHit == NoHit {
			t.Fatalf("[iteration %d] expected ray aimed inside the sphere to hit", i)
		}
		if d := ray.At(tHit).Sub(center).Len(); math.Abs(d-radius) > 1e-9 {
			t.Fatalf("[iteration %d] expected hit point on the surface; distance from center %f, radius %f", i, d, radius)
		}
	}
}

func TestEllipsoidIntersection(t *testing.T) {
	ellipsoid := scene.NewEllipsoid(types.XYZ(0, 0, -10), types.XYZ(1, 2, 3), testMaterial)

	type spec struct {
		ray types.Ray
		exp float64
	}
	specs := []spec{
		{types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), 7},
		{types.NewRay(types.XYZ(0, 0, -10), types.XYZ(0, 1, 0)), 2},
		{types.NewRay(types.XYZ(-5, 0, -10), types.XYZ(1, 0, 0)), 4},
		{types.NewRay(types.XYZ(0, 3, 0), types.XYZ(0, 0, -1)), NoHit},
	}

	for index, s := range specs {
		got := Intersect(s.ray, ellipsoid, 0)
		if math.Abs(got-s.exp) > 1e-9 {
			t.Fatalf("[spec %d] expected t to be %f; got %f", index, s.exp, got)
		}
	}

	// every hit lies on the implicit surface
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		target := ellipsoid.Center.Add(types.RandomUnitVec3(rng).MulVec(ellipsoid.Radii).Mul(0.9 * rng.Float64()))
		ray := types.NewRay(types.Vec3{}, target)
		tHit := Intersect(ray, ellipsoid, 0)
		if tHit == NoHit {
			t.Fatalf("[iteration %d] expected a hit", i)
		}
		p := ray.At(tHit).Sub(ellipsoid.Center).DivVec(ellipsoid.Radii)
		if math.Abs(p.LenSq()-1) > 1e-9 {
			t.Fatalf("[iteration %d] expected hit point on the surface; got implicit value %f", i, p.LenSq())
		}
	}
}

func TestTriangleIntersection(t *testing.T) {
	tri := scene.NewTriangle([3]types.Vec3{
		types.XYZ(-1, -1, -3),
		types.XYZ(1, -1, -3),
		types.XYZ(0, 1, -3),
	}, testMaterial)

	type spec struct {
		ray   types.Ray
		grace float64
		exp   float64
	}
	specs := []spec{
		{types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), 0, 3},
		// hit from behind
		{types.NewRay(types.XYZ(0, 0, -6), types.XYZ(0, 0, 1)), 0, 3},
		// parallel to the plane
		{types.NewRay(types.XYZ(0, 0, -3), types.XYZ(1, 0, 0)), 0, NoHit},
		// plane behind the ray
		{types.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0, NoHit},
		// outside the triangle
		{types.NewRay(types.XYZ(2, 0, 0), types.XYZ(0, 0, -1)), 0, NoHit},
		// below grace
		{types.NewRay(types.XYZ(0, 0, -3), types.XYZ(0, 0, -1)), 1e-4, NoHit},
	}

	for index, s := range specs {
		got := Intersect(s.ray, tri, s.grace)
		if math.Abs(got-s.exp) > 1e-9 {
			t.Fatalf("[spec %d] expected t to be %f; got %f", index, s.exp, got)
		}
	}
}

func TestTriangleContainmentLaw(t *testing.T) {
	tri := scene.NewTriangle([3]types.Vec3{
		types.XYZ(0, 0, -2),
		types.XYZ(2, 0, -2),
		types.XYZ(0, 2, -2),
	}, testMaterial)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		target := types.XYZ(rng.Float64()*3-0.5, rng.Float64()*3-0.5, -2)
		ray := types.NewRay(types.Vec3{}, target)
		tHit := Intersect(ray, tri, 0)
		if tHit == NoHit {
			continue
		}

		areas := subAreas(tri, ray.At(tHit))
		if math.Abs(areas[0]+areas[1]+areas[2]-tri.Area) >= ContainmentEpsilon {
			t.Fatalf("[iteration %d] hit point violates containment law", i)
		}
	}

	// The hypotenuse runs from (2, 0) to (0, 2). Points just inside and just
	// outside of it must flip the result.
	inside := types.NewRay(types.XYZ(0.999, 0.999, 0), types.XYZ(0, 0, -1))
	if Intersect(inside, tri, 0) == NoHit {
		t.Fatal("expected point just inside the edge to hit")
	}
	outside := types.NewRay(types.XYZ(1.001, 1.001, 0), types.XYZ(0, 0, -1))
	if got := Intersect(outside, tri, 0); got != NoHit {
		t.Fatalf("expected point just outside the edge to miss; got t=%f", got)
	}
}

func TestBarycentric(t *testing.T) {
	tri := scene.NewTriangle([3]types.Vec3{
		types.XYZ(0, 0, 0),
		types.XYZ(1, 0, 0),
		types.XYZ(0, 1, 0),
	}, testMaterial)

	type spec struct {
		point types.Vec3
		exp   [3]float64
	}
	specs := []spec{
		{tri.Vertices[0], [3]float64{1, 0, 0}},
		{tri.Vertices[1], [3]float64{0, 1, 0}},
		{tri.Vertices[2], [3]float64{0, 0, 1}},
		{types.XYZ(0.25, 0.25, 0), [3]float64{0.5, 0.25, 0.25}},
	}

	for index, s := range specs {
		got := barycentric(tri, s.point)
		for i := range got {
			if math.Abs(got[i]-s.exp[i]) > 1e-12 {
				t.Fatalf("[spec %d] expected weights %v; got %v", index, s.exp, got)
			}
		}
	}
}

func TestTraceRay(t *testing.T) {
	sc := scene.NewScene()
	sc.AddMaterial(testMaterial)

	far := scene.NewSphere(types.XYZ(0, 0, -10), 2, testMaterial)
	near := scene.NewSphere(types.XYZ(0, 0, -7), 2, testMaterial)
	sc.AddPrimitive(far)
	sc.AddPrimitive(near)

	// overlapping spheres: the nearer surface wins regardless of order
	index, tHit := TraceRay(types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), sc, 0)
	if index != 1 || math.Abs(tHit-5) > 1e-9 {
		t.Fatalf("expected to hit primitive 1 at t=5; got primitive %d at t=%f", index, tHit)
	}

	// miss
	index, tHit = TraceRay(types.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), sc, 0)
	if index != -1 || tHit != -1 {
		t.Fatalf("expected (-1, -1) for a miss; got (%d, %f)", index, tHit)
	}

	// ties keep the first primitive
	dup := scene.NewSphere(types.XYZ(0, 0, -7), 2, testMaterial)
	sc.AddPrimitive(dup)
	index, _ = TraceRay(types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), sc, 0)
	if index != 1 {
		t.Fatalf("expected ties to resolve to the first primitive; got %d", index)
	}
}
