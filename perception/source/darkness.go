package source

import (
	"strconv"

	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/edge"
	"github.com/battlemap/perception/perception/shape"
	"github.com/battlemap/perception/perception/sweep"
	"github.com/battlemap/perception/perception/world"
)

// DarknessSource carves a region of suppressed light out of the scene. Its
// sweep runs at Radius+Padding so neighbouring darkness regions can merge
// smoothly, then the functional region is constrained back to Radius. The
// visual boundary is contributed to the scene as one-way edges blocking
// light and sight, so the darkness neither passes light nor can be seen
// through from outside.
type DarknessSource struct {
	PointSource

	padding     float64
	contributed []string
}

func NewDarknessSource(origin vector.Vector2, radius, padding float64, scene *world.Scene) *DarknessSource {
	return &DarknessSource{
		PointSource: newPointSource(origin, sweep.Config{
			Channel:         edge.ChannelLight,
			Radius:          radius,
			ExternalRadius:  radius + padding,
			IncludeDarkness: true,
		}, scene),
		padding: padding,
	}
}

func (ds *DarknessSource) Padding() float64 {
	return ds.padding
}

// VisualPolygon is the padded sweep, the shape actually rendered.
func (ds *DarknessSource) VisualPolygon() *sweep.Polygon {
	return ds.Polygon()
}

// FunctionalPolygon is the visual polygon constrained back down to the
// configured radius; it is the region where darkness actually applies.
func (ds *DarknessSource) FunctionalPolygon() *sweep.Polygon {
	visual := ds.VisualPolygon()
	circle := shape.NewCircle(ds.origin, ds.cfg.Radius)

	return visual.ApplyConstraint(circle, sweep.ConstraintOptions{})
}

// ContributeEdges inserts the visual boundary into the scene as one-way
// darkness edges. The contribution is idempotent: a prior contribution is
// retracted first.
func (ds *DarknessSource) ContributeEdges() error {
	ds.RetractEdges()

	points := ds.VisualPolygon().Points()
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		if a.Round().Equals(b.Round()) {
			continue
		}

		e := edge.MakeEdge(a, b, edge.Config{
			ID:        ds.id + "-dark-" + strconv.Itoa(i),
			Type:      edge.TypeDarkness,
			Light:     edge.RestrictionNormal,
			Sight:     edge.RestrictionNormal,
			Direction: edge.DirectionRight,
			Object:    ds.id,
		})

		if err := ds.scene.AddEdge(e); err != nil {
			return err
		}
		ds.contributed = append(ds.contributed, e.ID)
	}

	return nil
}

// RetractEdges removes every edge this source previously contributed.
func (ds *DarknessSource) RetractEdges() {
	for _, id := range ds.contributed {
		// Ignoring the error: the edge may already be gone.
		_ = ds.scene.RemoveEdge(id)
	}

	ds.contributed = nil
}

// Invalidate drops the cached polygon and retracts contributed edges,
// since they trace a boundary that is no longer valid.
func (ds *DarknessSource) Invalidate() {
	ds.RetractEdges()
	ds.PointSource.Invalidate()
}

// MoveTo relocates the source, invalidating like Invalidate does.
func (ds *DarknessSource) MoveTo(origin vector.Vector2) {
	ds.RetractEdges()
	ds.PointSource.MoveTo(origin)
}
