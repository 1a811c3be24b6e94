package sweep

import (
	"math"

	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/edge"
)

// MaxTextureSize bounds the addressable canvas range per axis; vertex keys
// are injective for rounded coordinates within it.
const MaxTextureSize = 1 << 16

// VertexKey packs a pre-rounded coordinate pair into one 64-bit integer,
// replacing structural hashing with an O(1) integer map lookup. Two float
// inputs rounding to the same integers must merge, so rounding happens here.
func VertexKey(x float64, y float64) int64 {
	xi := int64(int32(math.Round(x)))
	yi := int64(int32(math.Round(y)))
	return xi<<32 | (yi & 0xFFFFFFFF)
}

// PolygonVertex is a deduplicated sweep vertex. Incident edges are recorded
// as indices into the sweep's edge arena, split into the bundle continuing
// clockwise from here and the bundle ending here; collinear edges sit in
// both on purpose, so both sweep directions see them.
//
// The blocking/limiting flags are only meaningful for the channel of the
// sweep that created the vertex; vertices are rebuilt per sweep, never
// cached across invocations.
type PolygonVertex struct {
	Point vector.Vector2
	Key   int64

	angle    float64
	distance float64

	edges    []int
	cwEdges  []int
	ccwEdges []int

	restriction   edge.Restriction
	isEndpoint    bool
	isBlockingCW  bool
	isBlockingCCW bool
	isLimitingCW  bool
	isLimitingCCW bool

	// radialNear marks the nearer endpoint of an edge collinear with its
	// origin ray; when the vertex blocks both directions, the sweep
	// terminates that exact ray here.
	radialNear bool
}

func (v *PolygonVertex) Angle() float64 {
	return v.angle
}

func (v *PolygonVertex) Distance() float64 {
	return v.distance
}

func (v *PolygonVertex) Edges() []int {
	return v.edges
}

func (v *PolygonVertex) CWEdges() []int {
	return v.cwEdges
}

func (v *PolygonVertex) CCWEdges() []int {
	return v.ccwEdges
}

func (v *PolygonVertex) Restriction() edge.Restriction {
	return v.restriction
}

func (v *PolygonVertex) IsEndpoint() bool {
	return v.isEndpoint
}

func (v *PolygonVertex) IsBlockingCW() bool {
	return v.isBlockingCW
}

func (v *PolygonVertex) IsBlockingCCW() bool {
	return v.isBlockingCCW
}

func (v *PolygonVertex) IsLimitingCW() bool {
	return v.isLimitingCW
}

func (v *PolygonVertex) IsLimitingCCW() bool {
	return v.isLimitingCCW
}

// Equals compares by key, not by coordinates: merged vertices are the same
// vertex.
func (v *PolygonVertex) Equals(other *PolygonVertex) bool {
	return v.Key == other.Key
}

// attachEdge registers an incident edge. orientation <= 0 puts the edge in
// the clockwise bundle, >= 0 in the counter-clockwise one; exactly zero
// (collinear with the origin ray) lands in both. Flags are recomputed on
// every attach.
func (v *PolygonVertex) attachEdge(idx int, orientation float64, restriction edge.Restriction, isEndpoint bool, limited func(int) bool) {
	v.edges = append(v.edges, idx)

	if orientation <= 0 {
		v.cwEdges = append(v.cwEdges, idx)
	}
	if orientation >= 0 {
		v.ccwEdges = append(v.ccwEdges, idx)
	}

	if restriction > v.restriction {
		v.restriction = restriction
	}
	if isEndpoint {
		v.isEndpoint = true
	}

	v.isBlockingCW, v.isLimitingCW = classifyBundle(v.cwEdges, limited)
	v.isBlockingCCW, v.isLimitingCCW = classifyBundle(v.ccwEdges, limited)
}

// classifyBundle resolves the N-way junction rule for one sweep direction:
// an empty bundle passes by absence, two or more edges always block, and a
// single edge blocks when normal or merely limits when limited.
func classifyBundle(bundle []int, limited func(int) bool) (blocking bool, limiting bool) {
	switch len(bundle) {
	case 0:
		return false, false
	case 1:
		if limited(bundle[0]) {
			return false, true
		}
		return true, false
	}

	return true, false
}

// vertexArena owns every vertex of one sweep invocation: a dense slice
// addressed by index, deduplicated through the integer key map. The whole
// structure is discarded when the sweep completes.
type vertexArena struct {
	origin   vector.Vector2
	vertices []*PolygonVertex
	byKey    map[int64]int
}

func newVertexArena(origin vector.Vector2) *vertexArena {
	return &vertexArena{
		origin: origin,
		byKey:  make(map[int64]int),
	}
}

// get rounds the point and returns the index of its unique vertex,
// creating it on first sight.
func (a *vertexArena) get(p vector.Vector2) int {
	rounded := p.Round()
	key := VertexKey(rounded.Get())

	if idx, ok := a.byKey[key]; ok {
		return idx
	}

	rel := rounded.Sub(a.origin)
	v := &PolygonVertex{
		Point:    rounded,
		Key:      key,
		angle:    rel.Angle(),
		distance: rel.Mag(),
	}

	a.vertices = append(a.vertices, v)
	a.byKey[key] = len(a.vertices) - 1

	return len(a.vertices) - 1
}

func (a *vertexArena) at(idx int) *PolygonVertex {
	return a.vertices[idx]
}

func (a *vertexArena) len() int {
	return len(a.vertices)
}
