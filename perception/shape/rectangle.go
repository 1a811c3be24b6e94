package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/battlemap/perception/common/utils/vector"
)

type Rectangle struct {
	x        float64
	y        float64
	width    float64
	height   float64
	rotation float64 // degrees, about the rectangle center
	hole     bool

	path []vector.Vector2
}

func NewRectangle(x, y, width, height, rotation float64) *Rectangle {
	return &Rectangle{x: x, y: y, width: width, height: height, rotation: rotation}
}

func (r *Rectangle) AsHole() *Rectangle {
	return &Rectangle{x: r.x, y: r.y, width: r.width, height: r.height, rotation: r.rotation, hole: true}
}

func (r *Rectangle) IsHole() bool {
	return r.hole
}

func (r *Rectangle) Rect() vector.Rect {
	return vector.MakeRect(
		vector.MakeVector2(r.x, r.y),
		vector.MakeVector2(r.x+r.width, r.y+r.height),
	)
}

func (r *Rectangle) Bounds() vector.Rect {
	return vector.MakeBoundingRect(r.BoundaryPath())
}

func (r *Rectangle) BoundaryPath() []vector.Vector2 {
	if r.path != nil {
		return r.path
	}

	corners := r.Rect().Corners()
	path := corners[:]

	if r.rotation != 0 {
		center := r.Rect().Center()
		rot := mgl64.Rotate2D(r.rotation * math.Pi / 180)

		path = make([]vector.Vector2, 0, 4)
		for _, pt := range corners {
			local := pt.Sub(center)
			rotated := rot.Mul2x1(mgl64.Vec2{local.GetX(), local.GetY()})
			path = append(path, center.Add(vector.MakeVector2(rotated.X(), rotated.Y())))
		}
	}

	if r.hole {
		path = reverse(path)
	}

	r.path = path
	return r.path
}
