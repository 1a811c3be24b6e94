// Package shape provides the small closed-region family (circle, ellipse,
// polygon, rectangle) whose boundary paths feed the sweep's boolean
// operations. Shapes are immutable: the boundary path is computed once and
// cached; different parameters mean a new instance.
package shape

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/pkg/errors"

	"github.com/battlemap/perception/common/utils/vector"
)

type Shape interface {
	// BoundaryPath is the closed vertex ring approximating the shape,
	// wound positively for solids and negatively for holes.
	BoundaryPath() []vector.Vector2
	Bounds() vector.Rect
	IsHole() bool
}

// boundaryEpsilon is the maximum allowed deviation of a chord from the true
// curve, in canvas units.
const boundaryEpsilon = 0.5

const minDensity = 8

// DensityForRadius picks the vertex count for a full circle of the given
// radius such that chord deviation stays below boundaryEpsilon; larger
// shapes get more segments.
func DensityForRadius(radius float64) int {
	if radius <= boundaryEpsilon {
		return minDensity
	}

	step := 2 * math.Acos(1-boundaryEpsilon/radius)
	n := int(math.Ceil(2 * math.Pi / step))
	if n < minDensity {
		n = minDensity
	}

	return n
}

// Data is the serialized form dispatched on by FromData. Rotation is in
// degrees, Points is a flat list of x,y pairs.
type Data struct {
	Type     string
	X        float64
	Y        float64
	Radius   float64
	RadiusX  float64
	RadiusY  float64
	Width    float64
	Height   float64
	Rotation float64
	Points   []float64
	Hole     bool
}

// FromData builds a shape from its tagged description. An unrecognized tag
// or missing required fields is a configuration error.
func FromData(d Data) (Shape, error) {
	switch d.Type {
	case "circle":
		if d.Radius <= 0 {
			return nil, errors.New("circle shape requires a positive radius")
		}
		c := NewCircle(vector.MakeVector2(d.X, d.Y), d.Radius)
		if d.Hole {
			return c.AsHole(), nil
		}
		return c, nil

	case "ellipse":
		if d.RadiusX <= 0 || d.RadiusY <= 0 {
			return nil, errors.New("ellipse shape requires positive radii")
		}
		e := NewEllipse(vector.MakeVector2(d.X, d.Y), d.RadiusX, d.RadiusY, d.Rotation)
		if d.Hole {
			return e.AsHole(), nil
		}
		return e, nil

	case "polygon":
		if len(d.Points) < 6 || len(d.Points)%2 != 0 {
			return nil, errors.New("polygon shape requires at least 3 x,y pairs")
		}
		points := make([]vector.Vector2, 0, len(d.Points)/2)
		for i := 0; i < len(d.Points); i += 2 {
			points = append(points, vector.MakeVector2(d.Points[i], d.Points[i+1]))
		}
		p := NewPolygon(points, d.Rotation)
		if d.Hole {
			return p.AsHole(), nil
		}
		return p, nil

	case "rectangle":
		if d.Width <= 0 || d.Height <= 0 {
			return nil, errors.New("rectangle shape requires positive dimensions")
		}
		r := NewRectangle(d.X, d.Y, d.Width, d.Height, d.Rotation)
		if d.Hole {
			return r.AsHole(), nil
		}
		return r, nil
	}

	return nil, errors.Errorf("unrecognized shape type %q", d.Type)
}

// ToPolyclip converts a shape boundary into a polyclip polygon. Coordinates
// are scaled then rounded so boolean combination happens in fixed-point
// space; callers divide results back by the same factor.
func ToPolyclip(s Shape, scalingFactor float64) polyclip.Polygon {
	if scalingFactor <= 0 {
		scalingFactor = 1
	}

	path := s.BoundaryPath()
	contour := make(polyclip.Contour, len(path))
	for i, p := range path {
		x, y := p.Get()
		contour[i] = polyclip.Point{
			X: math.Round(x * scalingFactor),
			Y: math.Round(y * scalingFactor),
		}
	}

	return polyclip.Polygon{contour}
}

// reverse flips a ring's winding; holes are wound opposite to solids.
func reverse(points []vector.Vector2) []vector.Vector2 {
	res := make([]vector.Vector2, len(points))
	for i, p := range points {
		res[len(points)-1-i] = p
	}

	return res
}
