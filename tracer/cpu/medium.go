package cpu

import "github.com/yashsriram/yart/scene"

// A medium is a node of an immutable stack of nested transparent media.
// Pushing and popping return new stack heads so recursive branches can share
// a common tail without observing each other's changes.
type medium struct {
	ior     float64
	opacity float64

	// The material whose surface was crossed to enter this medium; nil for
	// the camera medium.
	material *scene.Material

	parent *medium
}

// The medium the camera sits in. It is the bottom of every stack and is
// never popped.
var cameraMedium = &medium{ior: 1, opacity: 0}

func (m *medium) push(material *scene.Material) *medium {
	return &medium{ior: material.IOR, opacity: material.Opacity, material: material, parent: m}
}

func (m *medium) pop() *medium {
	if m.parent == nil {
		return m
	}
	return m.parent
}

// Returns true if crossing a surface of the given material leaves this
// medium.
func (m *medium) exitsThrough(material *scene.Material) bool {
	return m.parent != nil && m.material == material
}
