// Package world maintains the mutable edge set of one scene and serves it
// to sweeps. A Scene owns an intersection index over every wall, the four
// outer canvas boundary edges and, when the scene carries padding, the four
// inner boundary edges around the padded play area.
package world

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/edge"
)

// Scene is safe for concurrent readers; mutations take the write lock.
type Scene struct {
	mutex sync.RWMutex

	bounds vector.Rect
	index  *edge.IntersectionIndex
}

// NewScene builds a scene over the given canvas rectangle. padding grows
// the canvas outward on every side; when positive, the original rectangle
// is fenced off by inner boundary edges so sweeps stop at the play area
// while tokens can still be placed in the padded margin.
func NewScene(canvas vector.Rect, padding float64) *Scene {
	bounds := canvas
	if padding > 0 {
		bounds = canvas.Expand(padding)
	}

	s := &Scene{
		bounds: bounds,
		index:  edge.NewIntersectionIndex(),
	}

	for _, e := range edge.BoundaryEdges(bounds, edge.TypeBoundary) {
		s.index.Insert(e)
	}

	if padding > 0 {
		for _, e := range edge.BoundaryEdges(canvas, edge.TypeInnerBoundary) {
			s.index.Insert(e)
		}
	}

	return s
}

// AddEdge registers a wall or darkness edge. Boundary edges are owned by
// the scene and cannot be added from outside.
func (s *Scene) AddEdge(e edge.Edge) error {
	if e.Type == edge.TypeBoundary || e.Type == edge.TypeInnerBoundary {
		return errors.Errorf("scene: boundary edge %q cannot be added", e.ID)
	}

	if e.A.Equals(e.B) {
		return errors.Errorf("scene: edge %q is degenerate", e.ID)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.index.Insert(e)

	return nil
}

// RemoveEdge drops an edge and every cached intersection involving it.
// Removing an unknown or boundary edge is an error.
func (s *Scene) RemoveEdge(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, ok := s.index.Edge(id)
	if !ok {
		return errors.Errorf("scene: unknown edge %q", id)
	}
	if e.Type == edge.TypeBoundary || e.Type == edge.TypeInnerBoundary {
		return errors.Errorf("scene: boundary edge %q cannot be removed", id)
	}

	s.index.Remove(id)

	return nil
}

// MoveEdge replaces the endpoints of an existing edge, keeping its
// restrictions, and refreshes only the crossings the move can affect.
func (s *Scene) MoveEdge(id string, a, b vector.Vector2) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, ok := s.index.Edge(id)
	if !ok {
		return errors.Errorf("scene: unknown edge %q", id)
	}
	if e.Type == edge.TypeBoundary || e.Type == edge.TypeInnerBoundary {
		return errors.Errorf("scene: boundary edge %q cannot be moved", id)
	}

	e.A = a.Round()
	e.B = b.Round()
	if e.A.Equals(e.B) {
		return errors.Errorf("scene: edge %q is degenerate", id)
	}

	s.index.Update(e)

	return nil
}

// Edge returns one edge by id.
func (s *Scene) Edge(id string) (edge.Edge, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.Edge(id)
}

// Edges returns every edge of the scene, boundaries included.
func (s *Scene) Edges() []edge.Edge {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.Edges()
}

// EdgesWithin reports the edges whose bounds overlap the given rectangle.
func (s *Scene) EdgesWithin(bounds vector.Rect) []edge.Edge {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.EdgesWithin(bounds)
}

// IntersectionsFor reports the cached crossings involving one edge.
func (s *Scene) IntersectionsFor(id string) []edge.Intersection {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.IntersectionsFor(id)
}

// Bounds is the outer canvas rectangle, padding included.
func (s *Scene) Bounds() vector.Rect {
	return s.bounds
}
