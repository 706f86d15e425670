package scene

import (
	"fmt"

	"github.com/yashsriram/yart/asset/texture"
	"github.com/yashsriram/yart/types"
)

// A renderable scene. Scenes are assembled by a reader and treated as
// read-only while rendering.
type Scene struct {
	Camera *Camera

	Materials  []*Material
	Primitives []*Primitive
	Lights     []Light
	Textures   []*texture.Texture

	BgColor types.Color
}

func NewScene() *Scene {
	return &Scene{
		Materials:  make([]*Material, 0),
		Primitives: make([]*Primitive, 0),
		Lights:     make([]Light, 0),
		Textures:   make([]*texture.Texture, 0),
	}
}

// Attach a camera to the scene.
func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

// Add a material to the scene.
func (s *Scene) AddMaterial(material *Material) error {
	for _, mat := range s.Materials {
		if mat == material {
			return fmt.Errorf("scene: material already added")
		}
	}
	if err := material.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.Materials = append(s.Materials, material)
	return nil
}

// Add a texture to the scene and return its index.
func (s *Scene) AddTexture(tex *texture.Texture) int {
	s.Textures = append(s.Textures, tex)
	return len(s.Textures) - 1
}

// Add a light to the scene.
func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
}

// Add a primitive to the scene. Primitives are intersected in the order they
// were added.
func (s *Scene) AddPrimitive(primitive *Primitive) error {
	for _, prim := range s.Primitives {
		if prim == primitive {
			return fmt.Errorf("scene: primitive already added")
		}
	}
	if primitive.Texture >= len(s.Textures) {
		return fmt.Errorf("scene: primitive references unknown texture %d", primitive.Texture)
	}
	if primitive.Material == nil {
		return fmt.Errorf("scene: no material assigned to primitive")
	}
	for _, mat := range s.Materials {
		if mat == primitive.Material {
			s.Primitives = append(s.Primitives, primitive)
			return nil
		}
	}

	return fmt.Errorf("scene: primitive references unknown material; ensure that the material is added to the scene before adding the primitive")
}

// Count primitives by type.
func (s *Scene) Stats() map[PrimitiveType]int {
	stats := make(map[PrimitiveType]int)
	for _, prim := range s.Primitives {
		stats[prim.Type]++
	}
	return stats
}
