package vector

type Segment2 struct {
	a Vector2
	b Vector2
}

func MakeSegment2(a Vector2, b Vector2) Segment2 {
	return Segment2{a, b}
}

func (s Segment2) Get() (Vector2, Vector2) {
	return s.a, s.b
}

func (s Segment2) GetA() Vector2 {
	return s.a
}

func (s Segment2) GetB() Vector2 {
	return s.b
}

// Vector is the direction vector from A to B.
func (s Segment2) Vector() Vector2 {
	return s.b.Sub(s.a)
}

func (s Segment2) Center() Vector2 {
	return s.a.Add(s.b).DivScalar(2)
}

func (s Segment2) Length() float64 {
	return s.Vector().Mag()
}

func (s Segment2) LengthSq() float64 {
	return s.Vector().MagSq()
}

// PointAt interpolates along the segment; t=0 is A, t=1 is B.
func (s Segment2) PointAt(t float64) Vector2 {
	return s.a.Add(s.Vector().MultScalar(t))
}
