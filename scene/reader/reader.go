package reader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yashsriram/yart/asset"
	"github.com/yashsriram/yart/asset/texture"
	"github.com/yashsriram/yart/log"
	"github.com/yashsriram/yart/scene"
	"github.com/yashsriram/yart/types"
)

// Keywords that every scene must define.
var requiredKeywords = []string{"eye", "viewdir", "updir", "vfov", "imsize", "bkgcolor"}

type Options struct {
	// Textures larger than this are downscaled when loaded; 0 disables
	// downscaling.
	MaxTextureSize int
}

type sceneReader struct {
	logger log.Logger

	opts Options

	// The parsed scene and its camera.
	sc     *scene.Scene
	camera *scene.Camera

	// Required keywords seen so far.
	seen map[string]bool

	// Currently selected material and texture index (-1 if none).
	curMaterial *scene.Material
	curTexture  int

	// List of vertices, normals and uv coords.
	vertexList []types.Vec3
	normalList []types.Vec3
	uvList     []types.Vec2

	// Primitives are collected per type and appended to the scene in
	// sphere, ellipsoid, triangle order.
	spheres    []*scene.Primitive
	ellipsoids []*scene.Primitive
	triangles  []*scene.Primitive
}

// Read a scene description from a local file or an http(s) url.
func ReadScene(path string, opts Options) (*scene.Scene, error) {
	res, err := asset.NewResource(path, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	return Read(res, opts)
}

// Read a scene description from a resource. Textures are resolved relative to
// the resource location.
func Read(res *asset.Resource, opts Options) (*scene.Scene, error) {
	r := newSceneReader(opts)

	r.logger.Noticef("parsing scene from %s", res.Path())
	start := time.Now()

	if err := r.parse(res); err != nil {
		return nil, err
	}
	if err := r.finalize(res); err != nil {
		return nil, err
	}

	r.logger.Infof("parsed scene in %d ms", time.Since(start).Nanoseconds()/1000000)
	return r.sc, nil
}

func newSceneReader(opts Options) *sceneReader {
	return &sceneReader{
		logger:     log.New("scene reader"),
		opts:       opts,
		sc:         scene.NewScene(),
		camera:     scene.NewCamera(0, 0, 0),
		seen:       make(map[string]bool, len(requiredKeywords)),
		curTexture: -1,
		vertexList: make([]types.Vec3, 0),
		normalList: make([]types.Vec3, 0),
		uvList:     make([]types.Vec2, 0),
	}
}

// Generate an error message with file and line information. Line 0 refers to
// the file as a whole.
func (r *sceneReader) emitError(file string, line int, msgFormat string, args ...interface{}) error {
	msg := fmt.Sprintf(msgFormat, args...)
	if line == 0 {
		return fmt.Errorf("[%s] error: %s", file, msg)
	}
	return fmt.Errorf("[%s: %d] error: %s", file, line, msg)
}

// Parse scene description.
func (r *sceneReader) parse(res *asset.Resource) error {
	var lineNum int = 0

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		keyword := lineTokens[0]
		var err error
		switch keyword {
		case "eye":
			r.camera.Eye, err = parseVec3(lineTokens)
		case "viewdir", "updir":
			var dir types.Vec3
			dir, err = parseVec3(lineTokens)
			if err == nil && dir.Len() < 1e-6 {
				err = fmt.Errorf("'%s' must be a non-zero vector", keyword)
			}
			if keyword == "viewdir" {
				r.camera.ViewDir = dir.Normalize()
			} else {
				r.camera.UpDir = dir.Normalize()
			}
		case "vfov":
			r.camera.VFov, err = parseFloat(lineTokens)
			if err == nil && (r.camera.VFov <= 0 || r.camera.VFov >= 180) {
				err = fmt.Errorf("vfov must be between 0 and 180 degrees")
			}
		case "imsize":
			err = r.parseImageSize(lineTokens)
		case "bkgcolor":
			r.sc.BgColor, err = parseColor(lineTokens)
		case "parallel":
			r.camera.Parallel = true
			if len(lineTokens) > 1 {
				r.camera.ViewingDistance, err = parseViewingDistance(lineTokens)
			}
		case "viewdist":
			r.camera.ViewingDistance, err = parseViewingDistance(lineTokens)
		case "mtlcolor":
			err = r.parseMaterial(lineTokens)
		case "texture":
			err = r.parseTexture(lineTokens, res)
		case "sphere":
			err = r.parseSphere(lineTokens)
		case "ellipsoid":
			err = r.parseEllipsoid(lineTokens)
		case "v":
			var v types.Vec3
			if v, err = parseVec3(lineTokens); err == nil {
				r.vertexList = append(r.vertexList, v)
			}
		case "vn":
			var v types.Vec3
			v, err = parseVec3(lineTokens)
			if err == nil && v.Len() < 1e-6 {
				err = fmt.Errorf("vertex normal must be a non-zero vector")
			}
			r.normalList = append(r.normalList, v)
		case "vt":
			var v types.Vec2
			if v, err = parseVec2(lineTokens); err == nil {
				r.uvList = append(r.uvList, v)
			}
		case "f":
			var prim *scene.Primitive
			if prim, err = r.parseFace(lineTokens); err == nil {
				r.triangles = append(r.triangles, prim)
			}
		case "light":
			err = r.parseLight(lineTokens)
		default:
			r.logger.Warningf("[%s: %d] ignoring unknown keyword '%s'", res.Path(), lineNum, keyword)
			continue
		}

		if err != nil {
			return r.emitError(res.Path(), lineNum, "%s", err.Error())
		}
		r.seen[keyword] = true
	}

	if err := scanner.Err(); err != nil {
		return r.emitError(res.Path(), lineNum, "read failed: %s", err.Error())
	}
	return nil
}

// Check that the scene is complete and assemble its primitive list.
func (r *sceneReader) finalize(res *asset.Resource) error {
	for _, keyword := range requiredKeywords {
		if !r.seen[keyword] {
			return r.emitError(res.Path(), 0, "missing required keyword '%s'", keyword)
		}
	}

	if err := r.camera.Validate(); err != nil {
		return r.emitError(res.Path(), 0, "%s", err.Error())
	}
	r.sc.SetCamera(r.camera)

	for _, list := range [][]*scene.Primitive{r.spheres, r.ellipsoids, r.triangles} {
		for _, prim := range list {
			if err := r.sc.AddPrimitive(prim); err != nil {
				return r.emitError(res.Path(), 0, "%s", err.Error())
			}
		}
	}
	return nil
}

// Parse image dimensions: imsize width height.
func (r *sceneReader) parseImageSize(lineTokens []string) error {
	if len(lineTokens) < 3 {
		return fmt.Errorf("unsupported syntax for 'imsize'; expected 2 arguments; got %d", len(lineTokens)-1)
	}

	var dims [2]uint32
	for idx := range dims {
		v, err := strconv.ParseInt(lineTokens[idx+1], 10, 32)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("image dimensions must be positive")
		}
		if v > scene.MaxImageSize {
			return fmt.Errorf("image dimensions must not exceed %d pixels", scene.MaxImageSize)
		}
		dims[idx] = uint32(v)
	}
	r.camera.Width, r.camera.Height = dims[0], dims[1]
	return nil
}

// Parse material definition: mtlcolor Odr Odg Odb Osr Osg Osb ka kd ks n [opacity ior].
// The new material becomes the current one.
func (r *sceneReader) parseMaterial(lineTokens []string) error {
	if len(lineTokens) != 11 && len(lineTokens) != 13 {
		return fmt.Errorf("unsupported syntax for 'mtlcolor'; expected 10 or 12 arguments; got %d", len(lineTokens)-1)
	}

	vals, err := parseFloats(lineTokens[1:])
	if err != nil {
		return err
	}

	mat := scene.NewMaterial(
		types.RGB(vals[0], vals[1], vals[2]),
		types.RGB(vals[3], vals[4], vals[5]),
		vals[6], vals[7], vals[8], vals[9],
	)
	if len(vals) == 12 {
		mat.Opacity, mat.IOR = vals[10], vals[11]
	}

	if err = r.sc.AddMaterial(mat); err != nil {
		return err
	}
	r.curMaterial = mat
	return nil
}

// Parse texture selection: texture file|none. Loaded textures become the
// current texture.
func (r *sceneReader) parseTexture(lineTokens []string, res *asset.Resource) error {
	if len(lineTokens) != 2 {
		return fmt.Errorf("unsupported syntax for 'texture'; expected 1 argument; got %d", len(lineTokens)-1)
	}

	if lineTokens[1] == "none" {
		r.curTexture = -1
		return nil
	}

	texRes, err := asset.NewResource(lineTokens[1], res)
	if err != nil {
		return err
	}
	defer texRes.Close()

	tex, err := texture.New(texRes, r.opts.MaxTextureSize)
	if err != nil {
		return err
	}

	r.curTexture = r.sc.AddTexture(tex)
	r.logger.Infof("loaded %dx%d texture %s", tex.Width, tex.Height, tex.Name)
	return nil
}

// Parse sphere definition: sphere cx cy cz r.
func (r *sceneReader) parseSphere(lineTokens []string) error {
	if r.curMaterial == nil {
		return fmt.Errorf("'sphere' defined without a preceding 'mtlcolor'")
	}
	if len(lineTokens) < 5 {
		return fmt.Errorf("unsupported syntax for 'sphere'; expected 4 arguments; got %d", len(lineTokens)-1)
	}

	vals, err := parseFloats(lineTokens[1:5])
	if err != nil {
		return err
	}
	if vals[3] <= 0 {
		return fmt.Errorf("sphere radius must be positive")
	}

	center := types.XYZ(vals[0], vals[1], vals[2])
	if r.curTexture >= 0 {
		r.spheres = append(r.spheres, scene.NewTexturedSphere(center, vals[3], r.curMaterial, r.curTexture))
	} else {
		r.spheres = append(r.spheres, scene.NewSphere(center, vals[3], r.curMaterial))
	}
	return nil
}

// Parse ellipsoid definition: ellipsoid cx cy cz rx ry rz.
func (r *sceneReader) parseEllipsoid(lineTokens []string) error {
	if r.curMaterial == nil {
		return fmt.Errorf("'ellipsoid' defined without a preceding 'mtlcolor'")
	}
	if len(lineTokens) < 7 {
		return fmt.Errorf("unsupported syntax for 'ellipsoid'; expected 6 arguments; got %d", len(lineTokens)-1)
	}

	vals, err := parseFloats(lineTokens[1:7])
	if err != nil {
		return err
	}
	if vals[3] <= 0 || vals[4] <= 0 || vals[5] <= 0 {
		return fmt.Errorf("ellipsoid radii must be positive")
	}

	r.ellipsoids = append(r.ellipsoids, scene.NewEllipsoid(types.XYZ(vals[0], vals[1], vals[2]), types.XYZ(vals[3], vals[4], vals[5]), r.curMaterial))
	return nil
}

// Parse light definition: light x y z w r g b. A w of 0 defines a directional
// light pointing along (x, y, z); a w of 1 a point light at (x, y, z).
func (r *sceneReader) parseLight(lineTokens []string) error {
	if len(lineTokens) < 8 {
		return fmt.Errorf("unsupported syntax for 'light'; expected 7 arguments; got %d", len(lineTokens)-1)
	}

	vals, err := parseFloats(lineTokens[1:8])
	if err != nil {
		return err
	}

	light := scene.Light{
		Vector: types.XYZ(vals[0], vals[1], vals[2]),
		Color:  types.RGB(vals[4], vals[5], vals[6]),
	}
	switch vals[3] {
	case 0:
		light.Type = scene.DirectionalLight
		if light.Vector.Len() < 1e-6 {
			return fmt.Errorf("directional light direction must be a non-zero vector")
		}
	case 1:
		light.Type = scene.PositionalLight
	default:
		return fmt.Errorf("light w must be 0 (directional) or 1 (point)")
	}
	if !light.Color.InUnitRange() {
		return fmt.Errorf("light color component is not between 0 and 1")
	}

	r.sc.AddLight(light)
	return nil
}

// Parse face definition. Each face definition consists of 3 arguments,
// one for each vertex. Each one of the vertex arguments is comprised of
// 1, 2 or 3 args separated by a slash character. The following formats are
// supported:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate
// an offset off the end of the vertex/uv/normal list. All arguments must use
// the same format.
func (r *sceneReader) parseFace(lineTokens []string) (*scene.Primitive, error) {
	if r.curMaterial == nil {
		return nil, fmt.Errorf("'f' defined without a preceding 'mtlcolor'")
	}
	if len(lineTokens) != 4 {
		return nil, fmt.Errorf("unsupported syntax for 'f'; expected 3 arguments for triangular face; got %d", len(lineTokens)-1)
	}

	var vertices [3]types.Vec3
	var normals [3]types.Vec3
	var uv [3]types.Vec2
	var vIndex [3]int
	var hasUV, hasNormals bool
	for arg := 0; arg < 3; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if len(vTokens) > 3 {
			return nil, fmt.Errorf("face argument %d contains too many indices", arg)
		}
		for len(vTokens) < 3 {
			vTokens = append(vTokens, "")
		}

		// The first arg defines the format for the following args
		argHasUV, argHasNormals := vTokens[1] != "", vTokens[2] != ""
		if arg == 0 {
			hasUV, hasNormals = argHasUV, argHasNormals
		} else if argHasUV != hasUV || argHasNormals != hasNormals {
			return nil, fmt.Errorf("inconsistent face definition; argument %d does not match the format of argument 0", arg)
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return nil, fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		offset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return nil, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vIndex[arg] = offset
		vertices[arg] = r.vertexList[offset]

		if hasUV {
			offset, err = selectFaceCoordIndex(vTokens[1], len(r.uvList))
			if err != nil {
				return nil, fmt.Errorf("could not parse tex coord for face argument %d: %s", arg, err.Error())
			}
			uv[arg] = r.uvList[offset]
		}

		if hasNormals {
			offset, err = selectFaceCoordIndex(vTokens[2], len(r.normalList))
			if err != nil {
				return nil, fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
			normals[arg] = r.normalList[offset]
		}
	}

	if vIndex[0] == vIndex[1] || vIndex[1] == vIndex[2] || vIndex[2] == vIndex[0] ||
		vertices[0] == vertices[1] || vertices[1] == vertices[2] || vertices[2] == vertices[0] {
		return nil, fmt.Errorf("face vertices must be distinct")
	}
	if vertices[1].Sub(vertices[0]).Cross(vertices[2].Sub(vertices[0])).Len() < 1e-12 {
		return nil, fmt.Errorf("face vertices are collinear")
	}
	if hasUV && r.curTexture < 0 {
		return nil, fmt.Errorf("textured face defined without an active 'texture'")
	}

	switch {
	case hasUV && hasNormals:
		return scene.NewSmoothTexturedTriangle(vertices, normals, uv, r.curMaterial, r.curTexture), nil
	case hasUV:
		return scene.NewTexturedTriangle(vertices, uv, r.curMaterial, r.curTexture), nil
	case hasNormals:
		return scene.NewSmoothTriangle(vertices, normals, r.curMaterial), nil
	default:
		return scene.NewTriangle(vertices, r.curMaterial), nil
	}
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Negative indices reference elements from
// the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int = 0
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = int(index - 1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index out of bounds")
	}
	return vOffset, nil
}

// Parse a viewing distance argument.
func parseViewingDistance(lineTokens []string) (float64, error) {
	dist, err := parseFloat(lineTokens)
	if err != nil {
		return 0, err
	}
	if dist <= 0 {
		return 0, fmt.Errorf("viewing distance must be positive")
	}
	return dist, nil
}

// Parse a list of float tokens.
func parseFloats(tokens []string) ([]float64, error) {
	vals := make([]float64, len(tokens))
	for idx, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, err
		}
		vals[idx] = v
	}
	return vals, nil
}

// Parse a float scalar value.
func parseFloat(lineTokens []string) (float64, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf("unsupported syntax for '%s'; expected 1 argument; got %d", lineTokens[0], len(lineTokens)-1)
	}

	return strconv.ParseFloat(lineTokens[1], 64)
}

// Parse a color with components in [0, 1].
func parseColor(lineTokens []string) (types.Color, error) {
	v, err := parseVec3(lineTokens)
	if err != nil {
		return types.Color{}, err
	}
	for _, c := range v {
		if c < 0 || c > 1 {
			return types.Color{}, fmt.Errorf("'%s' color component is not between 0 and 1", lineTokens[0])
		}
	}
	return types.Color(v), nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	if len(lineTokens) < 4 {
		return types.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec3{}
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = coord
	}
	return v, nil
}

// Parse a Vec2 row.
func parseVec2(lineTokens []string) (types.Vec2, error) {
	if len(lineTokens) < 3 {
		return types.Vec2{}, fmt.Errorf("unsupported syntax for '%s'; expected 2 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	v := types.Vec2{}
	for tokIdx := 1; tokIdx <= 2; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return v, err
		}
		v[tokIdx-1] = coord
	}
	return v, nil
}
