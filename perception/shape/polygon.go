package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/battlemap/perception/common/utils/vector"
)

type Polygon struct {
	points   []vector.Vector2
	rotation float64 // degrees, about the shape center
	hole     bool

	path []vector.Vector2
}

func NewPolygon(points []vector.Vector2, rotation float64) *Polygon {
	return &Polygon{points: points, rotation: rotation}
}

func (p *Polygon) AsHole() *Polygon {
	return &Polygon{points: p.points, rotation: p.rotation, hole: true}
}

func (p *Polygon) IsHole() bool {
	return p.hole
}

func (p *Polygon) Bounds() vector.Rect {
	return vector.MakeBoundingRect(p.BoundaryPath())
}

func (p *Polygon) BoundaryPath() []vector.Vector2 {
	if p.path != nil {
		return p.path
	}

	path := p.points
	if p.rotation != 0 {
		center := vector.MakeBoundingRect(p.points).Center()
		rot := mgl64.Rotate2D(p.rotation * math.Pi / 180)

		path = make([]vector.Vector2, 0, len(p.points))
		for _, pt := range p.points {
			local := pt.Sub(center)
			rotated := rot.Mul2x1(mgl64.Vec2{local.GetX(), local.GetY()})
			path = append(path, center.Add(vector.MakeVector2(rotated.X(), rotated.Y())))
		}
	}

	if p.hole {
		path = reverse(path)
	}

	p.path = path
	return p.path
}
