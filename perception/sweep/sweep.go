// Package sweep computes visibility, light and sound polygons by a
// clockwise radial sweep over the blocking edges of a scene.
//
// One sweep is a finite synchronous computation: it selects the edges that
// can affect its channel, splits them at known crossings, derives
// deduplicated vertices, walks them in angular order while maintaining the
// front of edges nearest the origin, and emits the boundary ring of the
// maximal visible region.
package sweep

import (
	"math"
	"sort"

	polyclip "github.com/akavel/polyclip-go"

	"github.com/battlemap/perception/common/utils/trigo"
	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/edge"
	"github.com/battlemap/perception/perception/shape"
)

const (
	// originNudge displaces an origin sitting exactly on an edge, so
	// every ray has a well-defined side.
	originNudge = 0.01

	// angleEpsilon groups vertices sharing a sweep angle.
	angleEpsilon = 1e-9

	// radiusSlack absorbs the half-unit error introduced by snapping
	// clipped points to integers.
	radiusSlack = 0.5

	// originEpsilon is the distance below which a vertex coincides with
	// the origin and has no usable sweep angle.
	originEpsilon = 1e-6

	// radialSin is the angular sine below which an edge counts as
	// collinear with its origin ray; such edges subtend no width and
	// never enter the active front.
	radialSin = 1e-12
)

// sweepEdge is one post-split, circle-clipped segment participating in the
// sweep, referencing its vertices by arena index.
type sweepEdge struct {
	a      int
	b      int
	src    edge.Edge
	radial bool
}

type frontEntry struct {
	idx int
	t   float64
}

type sweeper struct {
	origin  vector.Vector2
	cfg     Config
	channel edge.Channel
	radius  float64
	angle   float64
	density int

	arena  *vertexArena
	edges  []sweepEdge
	events []int

	open    map[int]struct{}
	pinned  map[int]struct{}
	points  []vector.Vector2
	sawEdge bool
}

// Compute runs one full sweep. It never fails: degenerate input degrades to
// a plain circle or cone.
func Compute(origin vector.Vector2, cfg Config, geo Geometry) *Polygon {
	s := &sweeper{
		origin:  origin,
		cfg:     cfg,
		channel: cfg.Channel,
		angle:   cfg.effectiveAngle(),
		radius:  cfg.effectiveRadius(origin, geo),
	}

	s.density = cfg.Density
	if s.density <= 0 {
		s.density = shape.DensityForRadius(s.radius)
	}

	s.selectEdges(geo)
	s.buildEvents()
	s.execute()

	return s.finish()
}

// selectEdges gathers the edges that can affect this sweep: right channel,
// darkness opt-in honored, one-way sidedness honored, within radius. Edges
// are split at cached crossings and clipped to the sweep circle.
func (s *sweeper) selectEdges(geo Geometry) {
	region := vector.MakeRectCentered(s.origin, s.radius, s.radius)
	candidates := geo.EdgesWithin(region)

	for _, e := range candidates {
		if trigo.PointOnLineSegment(s.origin, e.A, e.B) {
			nudge := e.B.Sub(e.A).OrthogonalCounterClockwise().SetMag(originNudge)
			s.origin = s.origin.Add(nudge)
		}
	}

	s.arena = newVertexArena(s.origin)

	for _, e := range candidates {
		if !e.AppliesTo(s.channel) {
			continue
		}
		if e.Type == edge.TypeDarkness && !s.cfg.IncludeDarkness {
			continue
		}
		if !e.BlocksFrom(s.origin) {
			continue
		}

		for _, piece := range s.splitEdge(e, geo) {
			s.clipAndAdd(piece.GetA(), piece.GetB(), e)
		}
	}
}

// splitEdge cuts an edge at every cached crossing so that no two sweep
// edges intersect away from a shared vertex.
func (s *sweeper) splitEdge(e edge.Edge, geo Geometry) []vector.Segment2 {
	var ts []float64
	for _, in := range geo.IntersectionsFor(e.ID) {
		if in.Collinear {
			continue
		}

		t := in.TA
		if in.EdgeB == e.ID {
			t = in.TB
		}

		if t > 1e-6 && t < 1-1e-6 {
			ts = append(ts, t)
		}
	}

	seg := e.Segment()
	if len(ts) == 0 {
		return []vector.Segment2{seg}
	}

	sort.Float64s(ts)

	pieces := make([]vector.Segment2, 0, len(ts)+1)
	prev := e.A
	for _, t := range ts {
		p := seg.PointAt(t)
		pieces = append(pieces, vector.MakeSegment2(prev, p))
		prev = p
	}
	pieces = append(pieces, vector.MakeSegment2(prev, e.B))

	return pieces
}

func (s *sweeper) clipAndAdd(p1, p2 vector.Vector2, src edge.Edge) {
	limit := s.radius + radiusSlack
	in1 := s.origin.DistanceTo(p1) <= limit
	in2 := s.origin.DistanceTo(p2) <= limit

	if in1 && in2 {
		s.addEdge(p1, p2, src)
		return
	}

	var onSegment []vector.Vector2
	for _, hit := range trigo.LineCircleIntersectionPoints(p1, p2, s.origin, s.radius) {
		if trigo.PointOnLineSegment(hit, p1, p2) {
			onSegment = append(onSegment, hit)
		}
	}

	switch {
	case in1 && len(onSegment) >= 1:
		s.addEdge(p1, farthestFrom(p1, onSegment), src)
	case in2 && len(onSegment) >= 1:
		s.addEdge(farthestFrom(p2, onSegment), p2, src)
	case len(onSegment) == 2:
		// The chord crosses the disk with both endpoints outside.
		if p1.DistanceSqTo(onSegment[0]) > p1.DistanceSqTo(onSegment[1]) {
			onSegment[0], onSegment[1] = onSegment[1], onSegment[0]
		}
		s.addEdge(onSegment[0], onSegment[1], src)
	}
}

func farthestFrom(p vector.Vector2, points []vector.Vector2) vector.Vector2 {
	best := points[0]
	for _, candidate := range points[1:] {
		if p.DistanceSqTo(candidate) > p.DistanceSqTo(best) {
			best = candidate
		}
	}

	return best
}

// addEdge registers one sweep edge and attaches it to both vertices with
// the orientation that sorts it into the correct cw/ccw bundle.
func (s *sweeper) addEdge(p1, p2 vector.Vector2, src edge.Edge) {
	ia := s.arena.get(p1)
	ib := s.arena.get(p2)
	if ia == ib {
		// Collapsed to a point by rounding.
		return
	}

	va := s.arena.at(ia)
	vb := s.arena.at(ib)

	relA := va.Point.Sub(s.origin)
	relB := vb.Point.Sub(s.origin)

	cross := relA.Cross(relB)
	radial := false
	if mag := relA.Mag() * relB.Mag(); mag > 0 && math.Abs(cross)/mag < radialSin {
		radial = true
		cross = 0

		near := va
		if vb.distance < va.distance {
			near = vb
		}
		near.radialNear = true
	}

	idx := len(s.edges)
	s.edges = append(s.edges, sweepEdge{a: ia, b: ib, src: src, radial: radial})

	limited := func(i int) bool {
		return s.edges[i].src.IsLimited(s.channel)
	}
	restriction := src.Restriction(s.channel)

	va.attachEdge(idx, -cross, restriction, va.Point.Equals(src.A) || va.Point.Equals(src.B), limited)
	vb.attachEdge(idx, cross, restriction, vb.Point.Equals(src.A) || vb.Point.Equals(src.B), limited)
}

// buildEvents orders every vertex clockwise by angle, nearest first on
// ties. The tie-break is load-bearing: the nearer of two collinear vertices
// must be processed first or the front bookkeeping derails.
func (s *sweeper) buildEvents() {
	s.pinned = make(map[int]struct{})

	for i := 0; i < s.arena.len(); i++ {
		v := s.arena.at(i)
		if v.distance > originEpsilon {
			s.events = append(s.events, i)
			continue
		}

		// A vertex sitting on the origin has no usable angle. Its edges
		// skip the event bookkeeping and stay in the front for the whole
		// revolution; the probe ray still resolves them exactly.
		for _, ei := range v.edges {
			s.pinned[ei] = struct{}{}
		}
	}

	sort.Slice(s.events, func(i, j int) bool {
		vi := s.arena.at(s.events[i])
		vj := s.arena.at(s.events[j])
		if vi.angle != vj.angle {
			return vi.angle < vj.angle
		}
		return vi.distance < vj.distance
	})
}

// execute walks the events twice: the first pass folds the begin/end
// updates over a full revolution so the front starts correct for edges
// straddling the start angle, the second pass emits the boundary.
func (s *sweeper) execute() {
	if len(s.events) == 0 {
		s.emitArc(0, 2*math.Pi)
		return
	}

	s.open = make(map[int]struct{})
	for ei := range s.pinned {
		s.open[ei] = struct{}{}
	}

	for _, iv := range s.events {
		s.processVertex(iv)
	}

	first := s.arena.at(s.events[0]).angle
	prev := first

	for _, iv := range s.events {
		v := s.arena.at(iv)
		if v.angle > prev+angleEpsilon {
			s.emitInterval(prev, v.angle)
			prev = v.angle
		}
		if v.radialNear {
			s.emitSpike(iv)
		}
		s.processVertex(iv)
	}

	s.emitInterval(prev, first+2*math.Pi)
}

// processVertex updates the active front: edges ending here leave before
// edges beginning here enter. Radial edges subtend no angular width and are
// excluded; pinned edges never leave.
func (s *sweeper) processVertex(iv int) {
	v := s.arena.at(iv)

	for _, ei := range v.ccwEdges {
		if s.edges[ei].radial {
			continue
		}
		if _, ok := s.pinned[ei]; ok {
			continue
		}
		delete(s.open, ei)
	}

	for _, ei := range v.cwEdges {
		if !s.edges[ei].radial {
			s.open[ei] = struct{}{}
		}
	}
}

// emitInterval resolves the silhouette for one angular interval. Because
// edges are pre-split at crossings, the nearest edge cannot change inside
// an interval, so a single probe at the bisector decides it.
func (s *sweeper) emitInterval(a1, a2 float64) {
	front := s.frontAt((a1 + a2) / 2)
	eff := s.effectiveIndex(front)

	if eff < 0 {
		s.emitArc(a1, a2)
		return
	}

	s.sawEdge = true
	e := s.edges[eff]
	ea := s.arena.at(e.a).Point
	eb := s.arena.at(e.b).Point

	s.emit(s.boundaryPoint(a1, ea, eb))
	s.emit(s.boundaryPoint(a2, ea, eb))
}

// emitSpike terminates the single ray occluded by an edge collinear with
// it. Such edges never join the front, but when the near endpoint blocks
// in both sweep directions it still cuts a zero-width notch down to
// itself.
func (s *sweeper) emitSpike(iv int) {
	v := s.arena.at(iv)
	if !v.IsBlockingCW() || !v.IsBlockingCCW() {
		return
	}

	var nearer []frontEntry
	for _, fe := range s.frontAt(v.angle) {
		if fe.t < v.distance-radiusSlack {
			nearer = append(nearer, fe)
		}
	}
	if s.effectiveIndex(nearer) >= 0 {
		return
	}

	s.sawEdge = true
	s.emit(v.Point)
}

func (s *sweeper) boundaryPoint(angle float64, ea, eb vector.Vector2) vector.Vector2 {
	p, ok := trigo.RayLineIntersection(s.origin, unitVector(angle), ea, eb)
	if !ok || s.origin.DistanceTo(p) > s.radius+1 {
		return s.pointAtRadius(angle)
	}

	return p
}

// frontAt orders the open edges by distance along the probe ray, nearest
// first.
func (s *sweeper) frontAt(probe float64) []frontEntry {
	dir := unitVector(probe)

	entries := make([]frontEntry, 0, len(s.open))
	for idx := range s.open {
		e := s.edges[idx]
		t, ok := trigo.RaySegmentIntersection(s.origin, dir, s.arena.at(e.a).Point, s.arena.at(e.b).Point)
		// t near zero is an edge touching the origin, not an occlusion.
		if ok && t > originEpsilon {
			entries = append(entries, frontEntry{idx: idx, t: t})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].t != entries[j].t {
			return entries[i].t < entries[j].t
		}
		return entries[i].idx < entries[j].idx
	})

	return entries
}

// effectiveIndex walks the front from the origin outward. A normal edge
// terminates the ray; with UseThreshold a single limited edge is crossed
// and the second one blocks. A limited edge with a proximity threshold the
// ray has already exceeded is ignored entirely.
func (s *sweeper) effectiveIndex(front []frontEntry) int {
	limitedCrossings := 0

	for _, fe := range front {
		src := s.edges[fe.idx].src
		if src.IsLimited(s.channel) && s.cfg.UseThreshold {
			if src.Threshold > 0 && fe.t > src.Threshold {
				continue
			}

			limitedCrossings++
			if limitedCrossings >= 2 {
				return fe.idx
			}
			continue
		}

		return fe.idx
	}

	return -1
}

// emitArc pads the unobstructed span with circle points at the configured
// density, both interval boundaries included.
func (s *sweeper) emitArc(a1, a2 float64) {
	step := 2 * math.Pi / float64(s.density)

	s.emit(s.pointAtRadius(a1))
	for a := a1 + step; a < a2-angleEpsilon; a += step {
		s.emit(s.pointAtRadius(a))
	}
	s.emit(s.pointAtRadius(a2))
}

func (s *sweeper) pointAtRadius(angle float64) vector.Vector2 {
	return s.origin.Add(unitVector(angle).MultScalar(s.radius))
}

func (s *sweeper) emit(p vector.Vector2) {
	if n := len(s.points); n > 0 && s.points[n-1].DistanceSqTo(p) < 1e-6 {
		return
	}

	s.points = append(s.points, p)
}

func (s *sweeper) finish() *Polygon {
	points := s.points
	if n := len(points); n > 1 && points[0].DistanceSqTo(points[n-1]) < 1e-6 {
		points = points[:n-1]
	}

	poly := &Polygon{
		points:   points,
		complete: !s.sawEdge && s.angle >= 360,
	}

	if s.angle < 360 {
		poly = s.clipCone(poly)
	}

	return poly
}

// clipCone intersects the swept ring with the angular wedge, synthesizing
// the two radial cone edges.
func (s *sweeper) clipCone(poly *Polygon) *Polygon {
	half := s.angle / 2 * math.Pi / 180
	center := s.cfg.Rotation * math.Pi / 180
	a1 := center - half
	a2 := center + half

	// The wedge arc sits beyond the sweep radius so its chords never cut
	// into the region being kept.
	wedgeRadius := s.radius * 1.1
	step := 2 * math.Pi / float64(s.density)

	wedgePoints := []vector.Vector2{s.origin}
	for a := a1; a < a2-angleEpsilon; a += step {
		wedgePoints = append(wedgePoints, s.origin.Add(unitVector(a).MultScalar(wedgeRadius)))
	}
	wedgePoints = append(wedgePoints, s.origin.Add(unitVector(a2).MultScalar(wedgeRadius)))

	wedge := &Polygon{points: wedgePoints}
	result := poly.toPolyclip(defaultScalingFactor).Construct(
		polyclip.INTERSECTION,
		wedge.toPolyclip(defaultScalingFactor),
	)

	return fromPolyclip(result, defaultScalingFactor)
}

func unitVector(angle float64) vector.Vector2 {
	return vector.MakeVector2(math.Cos(angle), math.Sin(angle))
}
