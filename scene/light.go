package scene

import "github.com/yashsriram/yart/types"

type LightType uint8

const (
	DirectionalLight LightType = iota
	PositionalLight
)

// Defines a scene light. For directional lights Vector is the direction the
// light travels in; for positional lights it is the light position.
type Light struct {
	Type   LightType
	Vector types.Vec3
	Color  types.Color
}

func (t LightType) String() string {
	if t == DirectionalLight {
		return "directional"
	}
	return "positional"
}
