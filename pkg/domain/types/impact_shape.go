package types

import "fmt"

// ImpactShape selects the distribution used to draw an impact within [impact_min, impact_max]
type ImpactShape string

const (
	ImpactShapeUniform    ImpactShape = "uniform"
	ImpactShapeTriangular ImpactShape = "triangular"
)

// AllImpactShapes returns all supported impact shapes
func AllImpactShapes() []ImpactShape {
	return []ImpactShape{
		ImpactShapeUniform,
		ImpactShapeTriangular,
	}
}

// IsValid checks if the impact shape is supported
func (s ImpactShape) IsValid() bool {
	switch s {
	case ImpactShapeUniform,
		ImpactShapeTriangular:
		return true
	default:
		return false
	}
}

// Normalize returns the shape, treating empty as ImpactShapeUniform.
func (s ImpactShape) Normalize() ImpactShape {
	if s == "" {
		return ImpactShapeUniform
	}
	return s
}

// String returns the string representation of the impact shape
func (s ImpactShape) String() string {
	return string(s)
}

// ParseImpactShape parses a string into an ImpactShape. Empty yields ImpactShapeUniform.
func ParseImpactShape(s string) (ImpactShape, error) {
	shape := ImpactShape(s).Normalize()
	if !shape.IsValid() {
		return "", fmt.Errorf("invalid impact shape: %s", s)
	}
	return shape, nil
}
