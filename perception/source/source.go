// Package source binds perception emitters to a scene. A source owns an
// origin, a sweep configuration and a lazily recomputed polygon; moving the
// source or mutating the scene invalidates the cache and the next access
// recomputes.
package source

import (
	uuid "github.com/satori/go.uuid"

	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/edge"
	"github.com/battlemap/perception/perception/sweep"
	"github.com/battlemap/perception/perception/world"
)

// PointSource is the shared core of every emitter kind. It is not safe for
// concurrent use; callers serialize access the way they serialize scene
// mutation.
type PointSource struct {
	id     string
	origin vector.Vector2
	cfg    sweep.Config
	scene  *world.Scene

	polygon *sweep.Polygon
}

func newPointSource(origin vector.Vector2, cfg sweep.Config, scene *world.Scene) PointSource {
	return PointSource{
		id:     uuid.NewV4().String(),
		origin: origin,
		cfg:    cfg,
		scene:  scene,
	}
}

func (ps *PointSource) ID() string {
	return ps.id
}

func (ps *PointSource) Origin() vector.Vector2 {
	return ps.origin
}

func (ps *PointSource) Config() sweep.Config {
	return ps.cfg
}

// MoveTo relocates the source and drops the cached polygon.
func (ps *PointSource) MoveTo(origin vector.Vector2) {
	ps.origin = origin
	ps.Invalidate()
}

// Invalidate drops the cached polygon; the next Polygon call recomputes.
func (ps *PointSource) Invalidate() {
	ps.polygon = nil
}

// Polygon returns the perception polygon of this source, computing it on
// first access after an invalidation.
func (ps *PointSource) Polygon() *sweep.Polygon {
	if ps.polygon == nil {
		ps.polygon = sweep.Compute(ps.origin, ps.cfg, ps.scene)
	}

	return ps.polygon
}

// LightSource emits on the light channel and honors limited-wall
// thresholds the way lights do.
type LightSource struct {
	PointSource
}

func NewLightSource(origin vector.Vector2, radius float64, scene *world.Scene) *LightSource {
	return &LightSource{
		PointSource: newPointSource(origin, sweep.Config{
			Channel:      edge.ChannelLight,
			Radius:       radius,
			UseThreshold: true,
		}, scene),
	}
}

// SoundSource emits on the sound channel.
type SoundSource struct {
	PointSource
}

func NewSoundSource(origin vector.Vector2, radius float64, scene *world.Scene) *SoundSource {
	return &SoundSource{
		PointSource: newPointSource(origin, sweep.Config{
			Channel:      edge.ChannelSound,
			Radius:       radius,
			UseThreshold: true,
		}, scene),
	}
}

// VisionSource perceives on the sight channel. Angle and Rotation shape a
// vision cone; a zero angle means full circular vision.
type VisionSource struct {
	PointSource
}

func NewVisionSource(origin vector.Vector2, radius, angle, rotation float64, scene *world.Scene) *VisionSource {
	return &VisionSource{
		PointSource: newPointSource(origin, sweep.Config{
			Channel:      edge.ChannelSight,
			Radius:       radius,
			Angle:        angle,
			Rotation:     rotation,
			UseThreshold: true,
		}, scene),
	}
}
