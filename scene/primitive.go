package scene

import "github.com/yashsriram/yart/types"

type PrimitiveType uint8

const (
	SpherePrimitive PrimitiveType = iota
	EllipsoidPrimitive
	TrianglePrimitive
)

func (t PrimitiveType) String() string {
	switch t {
	case SpherePrimitive:
		return "sphere"
	case EllipsoidPrimitive:
		return "ellipsoid"
	default:
		return "triangle"
	}
}

// Triangles come in four flavors depending on whether they interpolate vertex
// normals and whether they are texture mapped.
type TriangleVariant uint8

const (
	FlatUntextured TriangleVariant = iota
	FlatTextured
	SmoothUntextured
	SmoothTextured
)

func (v TriangleVariant) Smooth() bool {
	return v == SmoothUntextured || v == SmoothTextured
}

func (v TriangleVariant) Textured() bool {
	return v == FlatTextured || v == SmoothTextured
}

// Defines a scene primitive.
type Primitive struct {
	// The primitive type.
	Type PrimitiveType

	// Triangle variant; only meaningful for triangles.
	Variant TriangleVariant

	// Sphere and ellipsoid center.
	Center types.Vec3

	// Sphere radius.
	Radius float64

	// Ellipsoid radii along each axis.
	Radii types.Vec3

	// Triangle vertices, per-vertex normals and uv coords.
	Vertices [3]types.Vec3
	Normals  [3]types.Vec3
	UV       [3]types.Vec2

	// Precomputed triangle plane: the unnormalized surface normal
	// (v2-v1)x(v3-v1), the plane offset D so that N.p + D = 0 and the
	// triangle area.
	SurfaceNormal types.Vec3
	D             float64
	Area          float64

	// Index into the scene texture list or -1 if the primitive is not
	// texture mapped.
	Texture int

	// The primitive material. Must be added to the scene before the primitive.
	Material *Material
}

// Textured returns true if the primitive samples its diffuse color from a texture.
func (p *Primitive) Textured() bool {
	if p.Texture < 0 {
		return false
	}
	return p.Type == SpherePrimitive || (p.Type == TrianglePrimitive && p.Variant.Textured())
}

// Create new sphere primitive.
func NewSphere(center types.Vec3, radius float64, material *Material) *Primitive {
	return &Primitive{
		Type:     SpherePrimitive,
		Center:   center,
		Radius:   radius,
		Texture:  -1,
		Material: material,
	}
}

// Create new sphere primitive whose diffuse color is sampled from a texture.
func NewTexturedSphere(center types.Vec3, radius float64, material *Material, texture int) *Primitive {
	prim := NewSphere(center, radius, material)
	prim.Texture = texture
	return prim
}

// Create new axis aligned ellipsoid primitive.
func NewEllipsoid(center, radii types.Vec3, material *Material) *Primitive {
	return &Primitive{
		Type:     EllipsoidPrimitive,
		Center:   center,
		Radii:    radii,
		Texture:  -1,
		Material: material,
	}
}

// Create new flat shaded triangle primitive.
func NewTriangle(vertices [3]types.Vec3, material *Material) *Primitive {
	return newTriangle(FlatUntextured, vertices, material)
}

// Create new triangle primitive that interpolates the supplied vertex normals.
func NewSmoothTriangle(vertices, normals [3]types.Vec3, material *Material) *Primitive {
	prim := newTriangle(SmoothUntextured, vertices, material)
	prim.Normals = normals
	return prim
}

// Create new flat shaded triangle primitive mapped to a texture.
func NewTexturedTriangle(vertices [3]types.Vec3, uv [3]types.Vec2, material *Material, texture int) *Primitive {
	prim := newTriangle(FlatTextured, vertices, material)
	prim.UV = uv
	prim.Texture = texture
	return prim
}

// Create new texture mapped triangle primitive that interpolates the supplied
// vertex normals.
func NewSmoothTexturedTriangle(vertices, normals [3]types.Vec3, uv [3]types.Vec2, material *Material, texture int) *Primitive {
	prim := newTriangle(SmoothTextured, vertices, material)
	prim.Normals = normals
	prim.UV = uv
	prim.Texture = texture
	return prim
}

func newTriangle(variant TriangleVariant, vertices [3]types.Vec3, material *Material) *Primitive {
	normal := vertices[1].Sub(vertices[0]).Cross(vertices[2].Sub(vertices[0]))
	return &Primitive{
		Type:          TrianglePrimitive,
		Variant:       variant,
		Vertices:      vertices,
		SurfaceNormal: normal,
		D:             -vertices[0].Dot(normal),
		Area:          normal.Len() / 2,
		Texture:       -1,
		Material:      material,
	}
}
