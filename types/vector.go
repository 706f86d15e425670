package types

import (
	"math"
	"math/rand"

	"golang.org/x/image/math/f64"
)

const floatCmpEpsilon = 1e-12

type Vec2 f64.Vec2
type Vec3 f64.Vec3

// Define a 2 component vector.
func XY(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Define a 3 component vector.
func XYZ(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Add a vector.
func (v Vec2) Add(v2 Vec2) Vec2 {
	return Vec2{v[0] + v2[0], v[1] + v2[1]}
}

// Multiply a 2 component vector with a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Negate vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Get 3 component vector length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Get squared 3 component vector length.
func (v Vec3) LenSq() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Normalize 3 component vector. A zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < floatCmpEpsilon {
		return Vec3{}
	}
	l = 1.0 / l
	return Vec3{v[0] * l, v[1] * l, v[2] * l}
}

// Calculate dot product of 2 vectors
func (v Vec3) Dot(v2 Vec3) float64 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Multiply vector components.
func (v Vec3) MulVec(v2 Vec3) Vec3 {
	return Vec3{v[0] * v2[0], v[1] * v2[1], v[2] * v2[2]}
}

// Divide vector components.
func (v Vec3) DivVec(v2 Vec3) Vec3 {
	return Vec3{v[0] / v2[0], v[1] / v2[1], v[2] / v2[2]}
}

// Returns true if the two vectors are within epsilon of each other.
func (v Vec3) ApproxEqual(v2 Vec3, epsilon float64) bool {
	return math.Abs(v[0]-v2[0]) <= epsilon &&
		math.Abs(v[1]-v2[1]) <= epsilon &&
		math.Abs(v[2]-v2[2]) <= epsilon
}

// Generate a random unit vector using the supplied generator. Points are
// sampled inside the unit cube and rejected when they fall outside the unit
// sphere so the resulting directions are uniformly distributed.
func RandomUnitVec3(rng *rand.Rand) Vec3 {
	for {
		v := Vec3{
			2*rng.Float64() - 1,
			2*rng.Float64() - 1,
			2*rng.Float64() - 1,
		}
		lenSq := v.LenSq()
		if lenSq > floatCmpEpsilon && lenSq <= 1 {
			return v.Mul(1.0 / math.Sqrt(lenSq))
		}
	}
}

// A ray with an origin and a unit direction.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Create a ray. The direction is normalized.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// Get the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
