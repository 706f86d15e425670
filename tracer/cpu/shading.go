package cpu

import (
	"math"

	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/types"
)

// ShadingNormal returns the outward unit surface normal of prim at point.
func ShadingNormal(prim *scene.Primitive, point types.Vec3) types.Vec3 {
	switch prim.Type {
	case scene.SpherePrimitive:
		return point.Sub(prim.Center).Mul(1 / prim.Radius).Normalize()
	case scene.EllipsoidPrimitive:
		// gradient of the implicit surface
		r := prim.Radii
		return point.Sub(prim.Center).DivVec(r.MulVec(r)).Normalize()
	default:
		if !prim.Variant.Smooth() {
			return prim.SurfaceNormal.Normalize()
		}
		w := barycentric(prim, point)
		return prim.Normals[0].Mul(w[0]).
			Add(prim.Normals[1].Mul(w[1])).
			Add(prim.Normals[2].Mul(w[2])).
			Normalize()
	}
}

// TextureCoords returns the uv coordinates of point on a texture mapped
// primitive. Spheres use a spherical mapping of the surface normal while
// triangles interpolate their vertex uv coords.
func TextureCoords(prim *scene.Primitive, point types.Vec3, normal types.Vec3) types.Vec2 {
	if prim.Type == scene.SpherePrimitive {
		phi := math.Acos(math.Max(-1, math.Min(1, normal[1])))
		theta := math.Atan2(normal[0], normal[2])
		return types.XY((theta+math.Pi)/(2*math.Pi), phi/math.Pi)
	}

	w := barycentric(prim, point)
	return prim.UV[0].Mul(w[0]).Add(prim.UV[1].Mul(w[1])).Add(prim.UV[2].Mul(w[2]))
}

// Resolve the diffuse color of prim at point.
func (in *integrator) diffuseColor(prim *scene.Primitive, point, normal types.Vec3) types.Color {
	if !prim.Textured() {
		return prim.Material.Diffuse
	}
	return in.sc.Textures[prim.Texture].Sample(TextureCoords(prim, point, normal))
}

// Shade evaluates the Blinn-Phong model at a point on prim hit by ray. The
// result is not clamped.
func (in *integrator) Shade(ray types.Ray, prim *scene.Primitive, point types.Vec3) types.Color {
	mat := prim.Material
	normal := ShadingNormal(prim, point)
	diffuse := in.diffuseColor(prim, point, normal)
	view := ray.Origin.Sub(point).Normalize()

	out := diffuse.Mul(mat.Ka)
	for _, light := range in.sc.Lights {
		lightDir, _ := LightDirection(light, point, 0, nil)
		half := lightDir.Add(view).Normalize()

		s := in.shadow(light, point)
		if s == 0 {
			continue
		}

		nDotL := math.Max(0, normal.Dot(lightDir))
		nDotH := math.Max(0, normal.Dot(half))
		contrib := diffuse.Mul(mat.Kd * nDotL).Add(mat.Specular.Mul(mat.Ks * math.Pow(nDotH, mat.N)))
		out = out.Add(contrib.MulColor(light.Color).Mul(s))
	}
	return out
}

// Average the shadow factor over the configured number of jittered light
// samples.
func (in *integrator) shadow(light scene.Light, point types.Vec3) float64 {
	samples := in.shadowSamples
	if samples == 0 {
		samples = 1
	}

	var sum float64
	for i := uint32(0); i < samples; i++ {
		dir, dist := LightDirection(light, point, in.shadowJitter, in.rng)
		sum += ShadowFactor(point, dir, dist, in.sc)
	}
	in.shadowRays += uint64(samples)
	return sum / float64(samples)
}
