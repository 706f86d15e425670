package cpu

import (
	"math"
	"math/rand"

	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/types"
)

// The image plane of a camera expressed in world space. Pixel (i, j) lies at
// ul + delW*i + delH*j with (0, 0) at the top-left corner.
type imagePlane struct {
	eye      types.Vec3
	viewDir  types.Vec3
	parallel bool
	dist     float64

	ul   types.Vec3
	delW types.Vec3
	delH types.Vec3
}

func newImagePlane(cam *scene.Camera) *imagePlane {
	viewDir := cam.ViewDir.Normalize()
	u := viewDir.Cross(cam.UpDir).Normalize()
	v := u.Cross(viewDir).Normalize()

	dist := cam.PlaneDistance()
	halfH := dist * math.Tan(cam.VFov*math.Pi/360)
	halfW := halfH * float64(cam.Width) / float64(cam.Height)

	center := cam.Eye.Add(viewDir.Mul(dist))
	ul := center.Sub(u.Mul(halfW)).Add(v.Mul(halfH))
	ur := center.Add(u.Mul(halfW)).Add(v.Mul(halfH))
	ll := center.Sub(u.Mul(halfW)).Sub(v.Mul(halfH))

	plane := &imagePlane{
		eye:      cam.Eye,
		viewDir:  viewDir,
		parallel: cam.Parallel,
		dist:     dist,
		ul:       ul,
	}

	// A single column or row sits on the plane centre
	if cam.Width > 1 {
		plane.delW = ur.Sub(ul).Mul(1 / float64(cam.Width-1))
	} else {
		plane.ul = plane.ul.Add(u.Mul(halfW))
	}
	if cam.Height > 1 {
		plane.delH = ll.Sub(ul).Mul(1 / float64(cam.Height-1))
	} else {
		plane.ul = plane.ul.Sub(v.Mul(halfH))
	}

	return plane
}

// Pixel returns the world space position of pixel (i, j).
func (p *imagePlane) Pixel(i, j uint32) types.Vec3 {
	return p.ul.Add(p.delW.Mul(float64(i))).Add(p.delH.Mul(float64(j)))
}

// PrimaryRay returns the camera ray through pixel (i, j). A positive jitter
// displaces the ray origin by a random unit vector scaled by jitter; rng is
// not consumed when jitter is zero.
func (p *imagePlane) PrimaryRay(i, j uint32, jitter float64, rng *rand.Rand) types.Ray {
	pixel := p.Pixel(i, j)

	var offset types.Vec3
	if jitter > 0 && rng != nil {
		offset = types.RandomUnitVec3(rng).Mul(jitter)
	}

	if p.parallel {
		return types.Ray{
			Origin: pixel.Sub(p.viewDir.Mul(p.dist)).Add(offset),
			Dir:    p.viewDir,
		}
	}

	origin := p.eye.Add(offset)
	return types.NewRay(origin, pixel.Sub(origin))
}
