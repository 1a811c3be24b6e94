package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/battlemap/perception/common/utils/vector"
)

type Ellipse struct {
	center   vector.Vector2
	radiusX  float64
	radiusY  float64
	rotation float64 // degrees
	hole     bool

	path []vector.Vector2
}

func NewEllipse(center vector.Vector2, radiusX, radiusY, rotation float64) *Ellipse {
	return &Ellipse{center: center, radiusX: radiusX, radiusY: radiusY, rotation: rotation}
}

func (e *Ellipse) AsHole() *Ellipse {
	return &Ellipse{center: e.center, radiusX: e.radiusX, radiusY: e.radiusY, rotation: e.rotation, hole: true}
}

func (e *Ellipse) IsHole() bool {
	return e.hole
}

func (e *Ellipse) Bounds() vector.Rect {
	return vector.MakeBoundingRect(e.BoundaryPath())
}

func (e *Ellipse) BoundaryPath() []vector.Vector2 {
	if e.path != nil {
		return e.path
	}

	// Density follows the larger semi-axis so the flatter side never
	// exceeds the chord tolerance.
	density := DensityForRadius(math.Max(e.radiusX, e.radiusY))
	rot := mgl64.Rotate2D(e.rotation * math.Pi / 180)

	path := make([]vector.Vector2, 0, density)
	for i := 0; i < density; i++ {
		angle := 2 * math.Pi * float64(i) / float64(density)
		local := rot.Mul2x1(mgl64.Vec2{
			e.radiusX * math.Cos(angle),
			e.radiusY * math.Sin(angle),
		})
		path = append(path, e.center.Add(vector.MakeVector2(local.X(), local.Y())))
	}

	if e.hole {
		path = reverse(path)
	}

	e.path = path
	return e.path
}
