package trigo

import (
	"math"

	"github.com/battlemap/perception/common/utils/number"
	"github.com/battlemap/perception/common/utils/vector"
)

// SegmentIntersection computes the intersection of segments [p, p2] and
// [q, q2]. t and u are the parametric positions of the intersection along
// each segment (0 at the first endpoint, 1 at the second). collinear reports
// the overlapping-collinear case, in which no single intersection point is
// returned.
func SegmentIntersection(p vector.Vector2, p2 vector.Vector2, q vector.Vector2, q2 vector.Vector2) (point vector.Vector2, t float64, u float64, intersects bool, collinear bool) {

	r := p2.Sub(p)
	s := q2.Sub(q)
	rxs := r.Cross(s)
	qpxr := q.Sub(p).Cross(r)

	// If r x s = 0 and (q - p) x r = 0, then the two lines are collinear.
	if number.IsZero(rxs) && number.IsZero(qpxr) {
		// The segments overlap iff the projection of one onto the other
		// falls within its extent.
		qSubPTimesR := q.Sub(p).Dot(r)
		pSubQTimesS := p.Sub(q).Dot(s)
		rSquared := r.Dot(r)
		sSquared := s.Dot(s)

		if (qSubPTimesR >= 0 && qSubPTimesR <= rSquared) || (pSubQTimesS >= 0 && pSubQTimesS <= sSquared) {
			return vector.MakeNullVector2(), 0, 0, true, true
		}

		// Collinear but disjoint.
		return vector.MakeNullVector2(), 0, 0, false, true
	}

	// If r x s = 0 and (q - p) x r != 0, the lines are parallel and
	// non-intersecting.
	if number.IsZero(rxs) {
		return vector.MakeNullVector2(), 0, 0, false, false
	}

	t = q.Sub(p).Cross(s) / rxs
	u = q.Sub(p).Cross(r) / rxs

	// The segments meet at p + t*r = q + u*s iff both parameters lie in
	// [0, 1].
	if t >= 0 && t <= 1 && u >= 0 && u <= 1 {
		return p.Add(r.MultScalar(t)), t, u, true, false
	}

	return vector.MakeNullVector2(), 0, 0, false, false
}

// SegmentsCross is a cheap boolean-only variant of SegmentIntersection.
func SegmentsCross(p1 vector.Vector2, p2 vector.Vector2, p3 vector.Vector2, p4 vector.Vector2) bool {
	a := p2.Sub(p1)
	b := p3.Sub(p4)
	c := p1.Sub(p3)

	ax, ay := a.Get()
	bx, by := b.Get()
	cx, cy := c.Get()

	alphaNumerator := by*cx - bx*cy
	alphaDenominator := ay*bx - ax*by
	betaNumerator := ax*cy - ay*cx
	betaDenominator := alphaDenominator

	doIntersect := true

	if alphaDenominator == 0 || betaDenominator == 0 {
		doIntersect = false
	} else {
		if alphaDenominator > 0 {
			if alphaNumerator < 0 || alphaNumerator > alphaDenominator {
				doIntersect = false
			}
		} else if alphaNumerator > 0 || alphaNumerator < alphaDenominator {
			doIntersect = false
		}

		if doIntersect && betaDenominator > 0 {
			if betaNumerator < 0 || betaNumerator > betaDenominator {
				doIntersect = false
			}
		} else if betaNumerator > 0 || betaNumerator < betaDenominator {
			doIntersect = false
		}
	}

	return doIntersect
}

// RaySegmentIntersection intersects the ray origin + t*dir (t >= 0) with the
// segment [a, b]; t is the distance along the ray when dir is a unit vector.
func RaySegmentIntersection(origin vector.Vector2, dir vector.Vector2, a vector.Vector2, b vector.Vector2) (t float64, ok bool) {
	seg := b.Sub(a)
	denom := dir.Cross(seg)
	if number.IsZero(denom) {
		// Ray parallel to the segment.
		return 0, false
	}

	diff := a.Sub(origin)
	t = diff.Cross(seg) / denom
	u := diff.Cross(dir) / denom

	if t >= 0 && u >= 0 && u <= 1 {
		return t, true
	}

	return 0, false
}

// RayLineIntersection intersects the ray origin + t*dir (t >= 0) with the
// infinite line through a and b.
func RayLineIntersection(origin vector.Vector2, dir vector.Vector2, a vector.Vector2, b vector.Vector2) (point vector.Vector2, ok bool) {
	seg := b.Sub(a)
	denom := dir.Cross(seg)
	if number.IsZero(denom) {
		return vector.MakeNullVector2(), false
	}

	diff := a.Sub(origin)
	t := diff.Cross(seg) / denom
	if t < 0 {
		return vector.MakeNullVector2(), false
	}

	return origin.Add(dir.MultScalar(t)), true
}

// http://devmag.org.za/2009/04/17/basic-collision-detection-in-2d-part-2/
func LineCircleIntersectionPoints(LineP1 vector.Vector2, LineP2 vector.Vector2, CircleCentre vector.Vector2, Radius float64) []vector.Vector2 {

	LocalP1 := LineP1.Sub(CircleCentre)
	LocalP2 := LineP2.Sub(CircleCentre)
	// Precalculate this value. We use it often
	P2MinusP1 := LocalP2.Sub(LocalP1)

	p2minusp1x, p2minusp1y := P2MinusP1.Get()
	localp1x, localp1y := LocalP1.Get()

	a := P2MinusP1.MagSq()
	b := 2 * ((p2minusp1x * localp1x) + (p2minusp1y * localp1y))
	c := LocalP1.MagSq() - (Radius * Radius)

	delta := b*b - (4 * a * c)
	if delta < 0 {
		// No intersection
		return make([]vector.Vector2, 0)
	}

	if delta == 0 {
		u := -b / (2.0 * a)

		// Use LineP1 instead of LocalP1 because we want our answer in global space, not the circle's local space
		res := make([]vector.Vector2, 1)
		res[0] = LineP1.Add(P2MinusP1.MultScalar(u))
		return res
	}

	// (delta > 0) // Two intersections
	SquareRootDelta := math.Sqrt(delta)

	u1 := (-b + SquareRootDelta) / (2 * a)
	u2 := (-b - SquareRootDelta) / (2 * a)

	res := make([]vector.Vector2, 2)
	res[0] = LineP1.Add(P2MinusP1.MultScalar(u1))
	res[1] = LineP1.Add(P2MinusP1.MultScalar(u2))

	return res
}

func PointOnLineSegment(p vector.Vector2, a vector.Vector2, b vector.Vector2) bool {
	t := 0.0001

	px, py := p.Get()
	ax, ay := a.Get()
	bx, by := b.Get()

	// ensure points are collinear
	zero := (bx-ax)*(py-ay) - (px-ax)*(by-ay)
	if zero > t || zero < -t {
		return false
	}

	// check if x-coordinates are not equal
	if ax-bx > t || bx-ax > t {
		// ensure x is between a.x & b.x (use tolerance)
		if ax > bx {
			return px+t > bx && px-t < ax
		}
		return px+t > ax && px-t < bx
	}

	// ensure y is between a.y & b.y (use tolerance)
	if ay > by {
		return py+t > by && py-t < ay
	}

	return py+t > ay && py-t < by
}

func FullCircleAngleToSignedHalfCircleAngle(rad float64) float64 {
	if rad > math.Pi { // 180° en radians
		rad -= math.Pi * 2 // 360° en radian
	} else if rad < -math.Pi {
		rad += math.Pi * 2 // 360° en radian
	}

	return rad
}

// NormalizeAngle maps any angle in radians to [0, 2*Pi).
func NormalizeAngle(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}

	return rad
}
