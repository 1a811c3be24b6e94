package vector

import "math"

// Rect is an axis-aligned rectangle described by its two extreme corners.
type Rect struct {
	min Vector2
	max Vector2
}

func MakeRect(a Vector2, b Vector2) Rect {
	ax, ay := a.Get()
	bx, by := b.Get()
	return Rect{
		min: MakeVector2(math.Min(ax, bx), math.Min(ay, by)),
		max: MakeVector2(math.Max(ax, bx), math.Max(ay, by)),
	}
}

func MakeRectCentered(center Vector2, halfwidth float64, halfheight float64) Rect {
	offset := MakeVector2(halfwidth, halfheight)
	return Rect{
		min: center.Sub(offset),
		max: center.Add(offset),
	}
}

// MakeBoundingRect is the smallest rect containing every given point.
func MakeBoundingRect(points []Vector2) Rect {
	if len(points) == 0 {
		return Rect{}
	}

	r := MakeRect(points[0], points[0])
	for _, p := range points[1:] {
		r = r.ExtendTo(p)
	}

	return r
}

func (r Rect) Min() Vector2 {
	return r.min
}

func (r Rect) Max() Vector2 {
	return r.max
}

func (r Rect) Width() float64 {
	return r.max.GetX() - r.min.GetX()
}

func (r Rect) Height() float64 {
	return r.max.GetY() - r.min.GetY()
}

func (r Rect) Center() Vector2 {
	return r.min.Add(r.max).DivScalar(2)
}

func (r Rect) Contains(p Vector2) bool {
	x, y := p.Get()
	return x >= r.min.GetX() && x <= r.max.GetX() &&
		y >= r.min.GetY() && y <= r.max.GetY()
}

func (r Rect) ContainsRect(other Rect) bool {
	return r.Contains(other.min) && r.Contains(other.max)
}

func (r Rect) Overlaps(other Rect) bool {
	return r.min.GetX() <= other.max.GetX() && r.max.GetX() >= other.min.GetX() &&
		r.min.GetY() <= other.max.GetY() && r.max.GetY() >= other.min.GetY()
}

// Expand grows the rect by pad on every side; a negative pad shrinks it.
func (r Rect) Expand(pad float64) Rect {
	offset := MakeVector2(pad, pad)
	return Rect{
		min: r.min.Sub(offset),
		max: r.max.Add(offset),
	}
}

func (r Rect) ExtendTo(p Vector2) Rect {
	x, y := p.Get()
	return Rect{
		min: MakeVector2(math.Min(r.min.GetX(), x), math.Min(r.min.GetY(), y)),
		max: MakeVector2(math.Max(r.max.GetX(), x), math.Max(r.max.GetY(), y)),
	}
}

// Corners in ring order: top-left, top-right, bottom-right, bottom-left.
func (r Rect) Corners() [4]Vector2 {
	return [4]Vector2{
		r.min,
		MakeVector2(r.max.GetX(), r.min.GetY()),
		r.max,
		MakeVector2(r.min.GetX(), r.max.GetY()),
	}
}
