package sweep

import (
	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/edge"
)

// Config selects which channel a sweep honors and how far it reaches.
type Config struct {
	Channel edge.Channel

	// Radius of the functional region; 0 means unlimited, which degrades
	// to "as far as the scene boundary".
	Radius float64

	// ExternalRadius, when larger than Radius, extends the sweep itself;
	// darkness sources use it for their padded visual extent and then
	// constrain back down to Radius.
	ExternalRadius float64

	// Angle is the cone width in degrees; 360 (or 0) is a full circle.
	Angle float64

	// Rotation is the cone center direction in degrees; 0 lies along the
	// positive X axis, growing in the sweep direction.
	Rotation float64

	// UseThreshold lets limited edges pass a single crossing instead of
	// terminating the ray.
	UseThreshold bool

	// IncludeDarkness admits darkness-type edges into the sweep.
	IncludeDarkness bool

	// Density is the vertex count of a full-circle arc; 0 derives it
	// from the radius.
	Density int
}

// Geometry is what a sweep needs from the surrounding scene. The sweep
// treats it as read-only for the duration of one invocation.
type Geometry interface {
	EdgesWithin(bounds vector.Rect) []edge.Edge
	IntersectionsFor(id string) []edge.Intersection
	Bounds() vector.Rect
}

// fallbackRadius caps an unlimited sweep when the geometry has no usable
// bounds to derive one from.
const fallbackRadius = 1e6

// effectiveRadius resolves the actual sweep distance.
func (cfg Config) effectiveRadius(origin vector.Vector2, geo Geometry) float64 {
	r := cfg.Radius
	if cfg.ExternalRadius > r {
		r = cfg.ExternalRadius
	}

	if r > 0 {
		return r
	}

	bounds := geo.Bounds()
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return fallbackRadius
	}

	max := 0.0
	for _, corner := range bounds.Corners() {
		if d := origin.DistanceTo(corner); d > max {
			max = d
		}
	}

	if max <= 0 {
		return fallbackRadius
	}

	return max
}

func (cfg Config) effectiveAngle() float64 {
	if cfg.Angle <= 0 || cfg.Angle > 360 {
		return 360
	}

	return cfg.Angle
}
