package edge

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/battlemap/perception/common/utils/trigo"
	"github.com/battlemap/perception/common/utils/vector"
)

// Intersection is one cached crossing between two edges. TA and TB are the
// parametric positions of the crossing along each edge; the sweep uses them
// to split edges and to break distance ties.
type Intersection struct {
	EdgeA     string
	EdgeB     string
	Point     vector.Vector2
	TA        float64
	TB        float64
	Collinear bool
}

type pairKey struct {
	a string
	b string
}

func makePairKey(id1, id2 string) pairKey {
	if id1 < id2 {
		return pairKey{id1, id2}
	}

	return pairKey{id2, id1}
}

type edgeSpatial struct {
	id   string
	rect *rtreego.Rect
}

func (s *edgeSpatial) Bounds() *rtreego.Rect {
	return s.rect
}

func newEdgeSpatial(e Edge) *edgeSpatial {
	b := e.Bounds()
	minx, miny := b.Min().Get()

	// rtreego rejects zero-extent rects; axis-aligned edges get a sliver.
	w := math.Max(b.Width(), 0.01)
	h := math.Max(b.Height(), 0.01)

	rect, _ := rtreego.NewRect([]float64{minx, miny}, []float64{w, h})

	return &edgeSpatial{id: e.ID, rect: rect}
}

// IntersectionIndex keeps the active edge set in an R-tree and caches
// pairwise segment intersections per unordered edge pair. Mutations
// invalidate only the pairs touching the changed edge, so a single wall
// move stays cheap even in wall-dense scenes.
type IntersectionIndex struct {
	tree     *rtreego.Rtree
	edges    map[string]Edge
	spatials map[string]*edgeSpatial
	pairs    map[pairKey]Intersection
	checked  map[pairKey]bool
	byEdge   map[string]map[pairKey]struct{}
}

func NewIntersectionIndex() *IntersectionIndex {
	return &IntersectionIndex{
		tree:     rtreego.NewTree(2, 25, 50),
		edges:    make(map[string]Edge),
		spatials: make(map[string]*edgeSpatial),
		pairs:    make(map[pairKey]Intersection),
		checked:  make(map[pairKey]bool),
		byEdge:   make(map[string]map[pairKey]struct{}),
	}
}

func (ix *IntersectionIndex) Len() int {
	return len(ix.edges)
}

func (ix *IntersectionIndex) Edge(id string) (Edge, bool) {
	e, ok := ix.edges[id]
	return e, ok
}

func (ix *IntersectionIndex) Edges() []Edge {
	res := make([]Edge, 0, len(ix.edges))
	for _, e := range ix.edges {
		res = append(res, e)
	}

	return res
}

func (ix *IntersectionIndex) Insert(e Edge) {
	if _, exists := ix.edges[e.ID]; exists {
		ix.Remove(e.ID)
	}

	spatial := newEdgeSpatial(e)
	ix.tree.Insert(spatial)
	ix.edges[e.ID] = e
	ix.spatials[e.ID] = spatial
	ix.byEdge[e.ID] = make(map[pairKey]struct{})

	for _, other := range ix.tree.SearchIntersect(spatial.rect) {
		candidate := other.(*edgeSpatial)
		if candidate.id == e.ID {
			continue
		}

		ix.computePair(e, ix.edges[candidate.id])
	}
}

// Remove drops the edge and every cached pair involving it; unrelated
// pairs stay warm.
func (ix *IntersectionIndex) Remove(id string) {
	spatial, ok := ix.spatials[id]
	if !ok {
		return
	}

	ix.tree.Delete(spatial)
	delete(ix.spatials, id)
	delete(ix.edges, id)

	for key := range ix.byEdge[id] {
		other := key.a
		if other == id {
			other = key.b
		}

		delete(ix.pairs, key)
		delete(ix.checked, key)
		delete(ix.byEdge[other], key)
	}

	delete(ix.byEdge, id)
}

// Update re-registers a moved edge, recomputing only its own pairs.
func (ix *IntersectionIndex) Update(e Edge) {
	ix.Remove(e.ID)
	ix.Insert(e)
}

// IntersectionsFor lists the cached crossings touching the given edge.
func (ix *IntersectionIndex) IntersectionsFor(id string) []Intersection {
	keys, ok := ix.byEdge[id]
	if !ok {
		return nil
	}

	res := make([]Intersection, 0, len(keys))
	for key := range keys {
		if in, ok := ix.pairs[key]; ok {
			res = append(res, in)
		}
	}

	return res
}

// EdgesWithin returns the edges whose bounding rect overlaps the region.
func (ix *IntersectionIndex) EdgesWithin(bounds vector.Rect) []Edge {
	minx, miny := bounds.Min().Get()
	rect, err := rtreego.NewRect(
		[]float64{minx, miny},
		[]float64{math.Max(bounds.Width(), 0.01), math.Max(bounds.Height(), 0.01)},
	)
	if err != nil {
		return nil
	}

	matches := ix.tree.SearchIntersect(rect)
	res := make([]Edge, 0, len(matches))
	for _, spatial := range matches {
		res = append(res, ix.edges[spatial.(*edgeSpatial).id])
	}

	return res
}

func (ix *IntersectionIndex) computePair(e1, e2 Edge) {
	key := makePairKey(e1.ID, e2.ID)
	if ix.checked[key] {
		return
	}
	ix.checked[key] = true

	// The verdict is registered on both edges even when nothing crosses,
	// so moving either edge clears it and forces a recheck.
	ix.byEdge[e1.ID][key] = struct{}{}
	ix.byEdge[e2.ID][key] = struct{}{}

	// Shared endpoints are already vertices; they are not crossings.
	if e1.A.Equals(e2.A) || e1.A.Equals(e2.B) || e1.B.Equals(e2.A) || e1.B.Equals(e2.B) {
		return
	}

	point, t, u, intersects, collinear := trigo.SegmentIntersection(e1.A, e1.B, e2.A, e2.B)
	if !intersects {
		return
	}

	in := Intersection{Point: point, Collinear: collinear}
	if key.a == e1.ID {
		in.EdgeA, in.EdgeB = e1.ID, e2.ID
		in.TA, in.TB = t, u
	} else {
		in.EdgeA, in.EdgeB = e2.ID, e1.ID
		in.TA, in.TB = u, t
	}

	ix.pairs[key] = in
}
