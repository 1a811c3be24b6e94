package edge

import (
	uuid "github.com/satori/go.uuid"

	"github.com/battlemap/perception/common/utils/vector"
)

// Edge is a directed line segment with per-channel blocking semantics.
// Endpoints are snapped to integers on construction so that two edges
// meeting at the same point always produce the same vertex key.
type Edge struct {
	ID        string
	A         vector.Vector2
	B         vector.Vector2
	Type      Type
	Light     Restriction
	Sight     Restriction
	Sound     Restriction
	Move      Restriction
	Direction Direction

	// Threshold is an optional proximity distance for limited edges;
	// beyond it a threshold-aware sweep ignores the edge entirely.
	Threshold float64

	// Object is an opaque back-reference to the originating placeable.
	Object interface{}
}

type Config struct {
	ID        string
	Type      Type
	Light     Restriction
	Sight     Restriction
	Sound     Restriction
	Move      Restriction
	Direction Direction
	Threshold float64
	Object    interface{}
}

func MakeEdge(a vector.Vector2, b vector.Vector2, cfg Config) Edge {
	id := cfg.ID
	if id == "" {
		id = uuid.NewV4().String()
	}

	return Edge{
		ID:        id,
		A:         a.Round(),
		B:         b.Round(),
		Type:      cfg.Type,
		Light:     cfg.Light,
		Sight:     cfg.Sight,
		Sound:     cfg.Sound,
		Move:      cfg.Move,
		Direction: cfg.Direction,
		Threshold: cfg.Threshold,
		Object:    cfg.Object,
	}
}

// MakeWall is the common case: one segment blocking every channel.
func MakeWall(a vector.Vector2, b vector.Vector2) Edge {
	return MakeEdge(a, b, Config{
		Type:  TypeWall,
		Light: RestrictionNormal,
		Sight: RestrictionNormal,
		Sound: RestrictionNormal,
		Move:  RestrictionNormal,
	})
}

func (e Edge) Restriction(ch Channel) Restriction {
	switch ch {
	case ChannelLight:
		return e.Light
	case ChannelSight:
		return e.Sight
	case ChannelSound:
		return e.Sound
	case ChannelMove:
		return e.Move
	case ChannelUniversal:
		max := e.Light
		for _, r := range []Restriction{e.Sight, e.Sound, e.Move} {
			if r > max {
				max = r
			}
		}
		return max
	}

	return RestrictionNone
}

func (e Edge) IsLimited(ch Channel) bool {
	return e.Restriction(ch) == RestrictionLimited
}

// AppliesTo reports whether the edge can affect a sweep of the given
// channel at all.
func (e Edge) AppliesTo(ch Channel) bool {
	return e.Restriction(ch) != RestrictionNone
}

// Orientation is the signed area of the triangle (A, B, p): positive when p
// lies on the left of A->B, negative on the right, zero when collinear.
func (e Edge) Orientation(p vector.Vector2) float64 {
	return e.B.Sub(e.A).Cross(p.Sub(e.A))
}

// BlocksFrom resolves the one-way direction constraint: a directional edge
// only blocks rays whose origin lies on its open side.
func (e Edge) BlocksFrom(origin vector.Vector2) bool {
	if e.Direction == DirectionBoth {
		return true
	}

	o := e.Orientation(origin)
	if o == 0 {
		return false
	}

	if e.Direction == DirectionLeft {
		return o > 0
	}

	return o < 0
}

func (e Edge) Segment() vector.Segment2 {
	return vector.MakeSegment2(e.A, e.B)
}

func (e Edge) Midpoint() vector.Vector2 {
	return e.Segment().Center()
}

func (e Edge) Bounds() vector.Rect {
	return vector.MakeRect(e.A, e.B)
}

// BoundaryEdges produces the four rectangle edges used as the outer canvas
// boundary and, with TypeInnerBoundary, the padded scene boundary. They are
// non-directional normal walls on every channel.
func BoundaryEdges(r vector.Rect, t Type) []Edge {
	corners := r.Corners()
	names := [4]string{"top", "right", "bottom", "left"}

	edges := make([]Edge, 0, 4)
	for i := 0; i < 4; i++ {
		edges = append(edges, MakeEdge(corners[i], corners[(i+1)%4], Config{
			ID:    t.String() + "-" + names[i],
			Type:  t,
			Light: RestrictionNormal,
			Sight: RestrictionNormal,
			Sound: RestrictionNormal,
			Move:  RestrictionNormal,
		}))
	}

	return edges
}
