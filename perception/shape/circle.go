package shape

import (
	"math"

	"github.com/battlemap/perception/common/utils/vector"
)

type Circle struct {
	center  vector.Vector2
	radius  float64
	density int
	hole    bool

	path []vector.Vector2
}

func NewCircle(center vector.Vector2, radius float64) *Circle {
	return &Circle{center: center, radius: radius}
}

// NewCircleWithDensity overrides the adaptive vertex density; the sweep
// uses this to keep its constraint circles in step with its own arcs.
func NewCircleWithDensity(center vector.Vector2, radius float64, density int) *Circle {
	return &Circle{center: center, radius: radius, density: density}
}

func (c *Circle) AsHole() *Circle {
	return &Circle{center: c.center, radius: c.radius, density: c.density, hole: true}
}

func (c *Circle) Center() vector.Vector2 {
	return c.center
}

func (c *Circle) Radius() float64 {
	return c.radius
}

func (c *Circle) IsHole() bool {
	return c.hole
}

func (c *Circle) Bounds() vector.Rect {
	return vector.MakeRectCentered(c.center, c.radius, c.radius)
}

func (c *Circle) Contains(p vector.Vector2) bool {
	return c.center.DistanceSqTo(p) <= c.radius*c.radius
}

func (c *Circle) BoundaryPath() []vector.Vector2 {
	if c.path != nil {
		return c.path
	}

	density := c.density
	if density <= 0 {
		density = DensityForRadius(c.radius)
	}

	path := make([]vector.Vector2, 0, density)
	for i := 0; i < density; i++ {
		angle := 2 * math.Pi * float64(i) / float64(density)
		path = append(path, c.center.Add(vector.MakeVector2(
			c.radius*math.Cos(angle),
			c.radius*math.Sin(angle),
		)))
	}

	if c.hole {
		path = reverse(path)
	}

	c.path = path
	return c.path
}
