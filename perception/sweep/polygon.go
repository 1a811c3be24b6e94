package sweep

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"

	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/shape"
)

// Polygon is the closed, positively wound ring emitted by a sweep.
type Polygon struct {
	points   []vector.Vector2
	complete bool

	bounds       vector.Rect
	boundsCached bool
}

func NewPolygon(points []vector.Vector2) *Polygon {
	return &Polygon{points: points}
}

func (p *Polygon) Points() []vector.Vector2 {
	return p.points
}

func (p *Polygon) Len() int {
	return len(p.points)
}

// IsCompleteCircle reports that no edge constrained the sweep, so the ring
// is a plain circle approximation; callers use it to pick soft-edge
// rendering.
func (p *Polygon) IsCompleteCircle() bool {
	return p.complete
}

func (p *Polygon) Bounds() vector.Rect {
	if !p.boundsCached {
		p.bounds = vector.MakeBoundingRect(p.points)
		p.boundsCached = true
	}

	return p.bounds
}

// SignedArea is positive for the sweep's own winding direction.
func (p *Polygon) SignedArea() float64 {
	area := 0.0
	n := len(p.points)
	for i := 0; i < n; i++ {
		x1, y1 := p.points[i].Get()
		x2, y2 := p.points[(i+1)%n].Get()
		area += x1*y2 - x2*y1
	}

	return area / 2
}

// Contains tests point inclusion by ray casting.
func (p *Polygon) Contains(pt vector.Vector2) bool {
	px, py := pt.Get()
	inside := false
	j := len(p.points) - 1

	for i := 0; i < len(p.points); i++ {
		xi, yi := p.points[i].Get()
		xj, yj := p.points[j].Get()

		if ((yi > py) != (yj > py)) &&
			(px < (xj-xi)*(py-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

type ConstraintOptions struct {
	// Density overrides the vertex density of curved constraint shapes so
	// their arcs line up with the sweep's own.
	Density int

	// ScalingFactor is the fixed-point grid for the boolean operation;
	// coordinates are scaled, rounded, combined and scaled back. Zero
	// means the default of 100 (hundredth-unit grid).
	ScalingFactor float64
}

const defaultScalingFactor = 100

// ApplyConstraint intersects the polygon against a clipping shape,
// returning a new polygon. Hole shapes subtract instead. A nil shape
// returns nil.
func (p *Polygon) ApplyConstraint(s shape.Shape, opt ConstraintOptions) *Polygon {
	if s == nil {
		return nil
	}

	scale := opt.ScalingFactor
	if scale <= 0 {
		scale = defaultScalingFactor
	}

	if opt.Density > 0 {
		if c, ok := s.(*shape.Circle); ok {
			s = shape.NewCircleWithDensity(c.Center(), c.Radius(), opt.Density)
		}
	}

	op := polyclip.INTERSECTION
	if s.IsHole() {
		op = polyclip.DIFFERENCE
	}

	result := p.toPolyclip(scale).Construct(op, shape.ToPolyclip(s, scale))

	return fromPolyclip(result, scale)
}

func (p *Polygon) toPolyclip(scale float64) polyclip.Polygon {
	contour := make(polyclip.Contour, len(p.points))
	for i, pt := range p.points {
		x, y := pt.Get()
		contour[i] = polyclip.Point{
			X: math.Round(x * scale),
			Y: math.Round(y * scale),
		}
	}

	return polyclip.Polygon{contour}
}

// fromPolyclip keeps the largest contour of a boolean result and restores
// the sweep's winding convention.
func fromPolyclip(poly polyclip.Polygon, scale float64) *Polygon {
	best := -1
	bestArea := 0.0

	for i, contour := range poly {
		if len(contour) < 3 {
			continue
		}

		area := math.Abs(contourArea(contour))
		if area > bestArea {
			bestArea = area
			best = i
		}
	}

	if best < 0 {
		return &Polygon{}
	}

	points := make([]vector.Vector2, 0, len(poly[best]))
	for _, pt := range poly[best] {
		points = append(points, vector.MakeVector2(pt.X/scale, pt.Y/scale))
	}

	res := &Polygon{points: points}
	if res.SignedArea() < 0 {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}

	return res
}

func contourArea(contour polyclip.Contour) float64 {
	area := 0.0
	n := len(contour)
	for i := 0; i < n; i++ {
		p1 := contour[i]
		p2 := contour[(i+1)%n]
		area += p1.X*p2.Y - p2.X*p1.Y
	}

	return area / 2
}
