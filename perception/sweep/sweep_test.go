package sweep_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/edge"
	"github.com/battlemap/perception/perception/sweep"
	"github.com/battlemap/perception/perception/world"
)

// A 1000x1000 canvas whose boundary walls stay out of reach of the
// moderate radii used below.
func makeTestScene(t *testing.T, walls ...edge.Edge) *world.Scene {
	scene := world.NewScene(vector.MakeRect(
		vector.MakeVector2(0, 0),
		vector.MakeVector2(1000, 1000),
	), 0)

	for _, w := range walls {
		assert.NoError(t, scene.AddEdge(w))
	}

	return scene
}

func sightConfig(radius float64) sweep.Config {
	return sweep.Config{
		Channel: edge.ChannelSight,
		Radius:  radius,
	}
}

func TestOpenField(t *testing.T) {
	scene := makeTestScene(t)
	origin := vector.MakeVector2(500, 500)

	polygon := sweep.Compute(origin, sightConfig(100), scene)

	assert.True(t, polygon.IsCompleteCircle())
	assert.True(t, polygon.Len() >= 3)

	for _, p := range polygon.Points() {
		assert.InDelta(t, 100, origin.DistanceTo(p), 1e-6)
	}
}

func TestSingleWall(t *testing.T) {
	scene := makeTestScene(t, edge.MakeWall(
		vector.MakeVector2(550, 450),
		vector.MakeVector2(550, 550),
	))
	origin := vector.MakeVector2(500, 500)

	polygon := sweep.Compute(origin, sightConfig(200), scene)

	assert.False(t, polygon.IsCompleteCircle())

	t.Run("Should stop at the wall", func(t *testing.T) {
		assert.True(t, polygon.Contains(vector.MakeVector2(540, 500)))
		assert.False(t, polygon.Contains(vector.MakeVector2(560, 500)))
		assert.False(t, polygon.Contains(vector.MakeVector2(700, 500)))
	})

	t.Run("Should keep the unobstructed directions", func(t *testing.T) {
		assert.True(t, polygon.Contains(vector.MakeVector2(450, 500)))
		assert.True(t, polygon.Contains(vector.MakeVector2(500, 560)))
		assert.True(t, polygon.Contains(vector.MakeVector2(500, 440)))
	})

	t.Run("Should see past the wall ends", func(t *testing.T) {
		assert.True(t, polygon.Contains(vector.MakeVector2(600, 640)))
		assert.True(t, polygon.Contains(vector.MakeVector2(600, 360)))
	})

	t.Run("Should never emit beyond the radius", func(t *testing.T) {
		for _, p := range polygon.Points() {
			assert.True(t, origin.DistanceTo(p) <= 200+1)
		}
	})
}

func TestCornerScene(t *testing.T) {
	scene := makeTestScene(t,
		edge.MakeWall(vector.MakeVector2(550, 450), vector.MakeVector2(550, 550)),
		edge.MakeWall(vector.MakeVector2(550, 550), vector.MakeVector2(450, 550)),
	)
	origin := vector.MakeVector2(500, 500)

	polygon := sweep.Compute(origin, sightConfig(200), scene)

	t.Run("Should stay inside the corner", func(t *testing.T) {
		assert.True(t, polygon.Contains(vector.MakeVector2(540, 540)))
		assert.False(t, polygon.Contains(vector.MakeVector2(560, 560)))
		assert.False(t, polygon.Contains(vector.MakeVector2(560, 500)))
		assert.False(t, polygon.Contains(vector.MakeVector2(500, 560)))
	})

	t.Run("Should keep the open quadrants", func(t *testing.T) {
		assert.True(t, polygon.Contains(vector.MakeVector2(400, 400)))
		assert.True(t, polygon.Contains(vector.MakeVector2(400, 540)))
		assert.True(t, polygon.Contains(vector.MakeVector2(540, 400)))
	})

	t.Run("Should pass through the shared corner vertex", func(t *testing.T) {
		found := false
		corner := vector.MakeVector2(550, 550)
		for _, p := range polygon.Points() {
			if corner.DistanceTo(p) < 0.5 {
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestVisionCone(t *testing.T) {
	scene := makeTestScene(t)
	origin := vector.MakeVector2(500, 500)

	cfg := sightConfig(100)
	cfg.Angle = 90
	cfg.Rotation = 0

	polygon := sweep.Compute(origin, cfg, scene)

	assert.False(t, polygon.IsCompleteCircle())

	t.Run("Should keep every point within the half-angle", func(t *testing.T) {
		for _, p := range polygon.Points() {
			rel := p.Sub(origin)
			if rel.Mag() < 1 {
				continue
			}

			angle := rel.Angle()
			inCone := angle <= math.Pi/4+0.01 || angle >= 7*math.Pi/4-0.01
			assert.True(t, inCone, "point %s at angle %v outside the cone", p.String(), angle)
		}
	})

	t.Run("Should contain ahead and exclude behind", func(t *testing.T) {
		assert.True(t, polygon.Contains(vector.MakeVector2(550, 500)))
		assert.False(t, polygon.Contains(vector.MakeVector2(450, 500)))
		assert.False(t, polygon.Contains(vector.MakeVector2(500, 560)))
	})
}

func TestLimitedWalls(t *testing.T) {
	origin := vector.MakeVector2(500, 500)

	limitedWall := func(id string, x float64, threshold float64) edge.Edge {
		return edge.MakeEdge(
			vector.MakeVector2(x, 400),
			vector.MakeVector2(x, 600),
			edge.Config{
				ID:        id,
				Sight:     edge.RestrictionLimited,
				Threshold: threshold,
			},
		)
	}

	t.Run("Should block on a limited wall without threshold handling", func(t *testing.T) {
		scene := makeTestScene(t, limitedWall("w1", 550, 0))

		polygon := sweep.Compute(origin, sightConfig(200), scene)
		assert.False(t, polygon.Contains(vector.MakeVector2(600, 500)))
	})

	t.Run("Should cross a single limited wall with threshold handling", func(t *testing.T) {
		scene := makeTestScene(t, limitedWall("w1", 550, 0))

		cfg := sightConfig(200)
		cfg.UseThreshold = true

		polygon := sweep.Compute(origin, cfg, scene)
		assert.True(t, polygon.Contains(vector.MakeVector2(600, 500)))
	})

	t.Run("Should block at the second limited wall", func(t *testing.T) {
		scene := makeTestScene(t, limitedWall("w1", 550, 0), limitedWall("w2", 600, 0))

		cfg := sightConfig(200)
		cfg.UseThreshold = true

		polygon := sweep.Compute(origin, cfg, scene)
		assert.True(t, polygon.Contains(vector.MakeVector2(580, 500)))
		assert.False(t, polygon.Contains(vector.MakeVector2(620, 500)))
	})

	t.Run("Should ignore a limited wall past its proximity threshold", func(t *testing.T) {
		// w1 sits 50 units out but only limits within 30.
		scene := makeTestScene(t, limitedWall("w1", 550, 30), limitedWall("w2", 600, 0))

		cfg := sightConfig(200)
		cfg.UseThreshold = true

		polygon := sweep.Compute(origin, cfg, scene)
		assert.True(t, polygon.Contains(vector.MakeVector2(620, 500)))
	})

	t.Run("Should block normally behind a limited then normal wall", func(t *testing.T) {
		scene := makeTestScene(t,
			limitedWall("w1", 550, 0),
			edge.MakeWall(vector.MakeVector2(600, 400), vector.MakeVector2(600, 600)),
		)

		cfg := sightConfig(200)
		cfg.UseThreshold = true

		polygon := sweep.Compute(origin, cfg, scene)
		assert.True(t, polygon.Contains(vector.MakeVector2(580, 500)))
		assert.False(t, polygon.Contains(vector.MakeVector2(620, 500)))
	})
}

func TestOneWayWalls(t *testing.T) {
	origin := vector.MakeVector2(500, 500)

	oneWay := func(dir edge.Direction) edge.Edge {
		return edge.MakeEdge(
			vector.MakeVector2(550, 450),
			vector.MakeVector2(550, 550),
			edge.Config{ID: "w", Sight: edge.RestrictionNormal, Direction: dir},
		)
	}

	t.Run("Should block from the restricted side", func(t *testing.T) {
		scene := makeTestScene(t, oneWay(edge.DirectionLeft))

		polygon := sweep.Compute(origin, sightConfig(200), scene)
		assert.False(t, polygon.Contains(vector.MakeVector2(600, 500)))
	})

	t.Run("Should pass from the open side", func(t *testing.T) {
		scene := makeTestScene(t, oneWay(edge.DirectionRight))

		polygon := sweep.Compute(origin, sightConfig(200), scene)
		assert.True(t, polygon.Contains(vector.MakeVector2(600, 500)))
	})
}

func TestChannelSelection(t *testing.T) {
	origin := vector.MakeVector2(500, 500)

	// A curtain: blocks sight but not sound.
	curtain := edge.MakeEdge(
		vector.MakeVector2(550, 400),
		vector.MakeVector2(550, 600),
		edge.Config{ID: "curtain", Sight: edge.RestrictionNormal},
	)

	scene := makeTestScene(t, curtain)

	sight := sweep.Compute(origin, sightConfig(200), scene)
	assert.False(t, sight.Contains(vector.MakeVector2(600, 500)))

	sound := sweep.Compute(origin, sweep.Config{Channel: edge.ChannelSound, Radius: 200}, scene)
	assert.True(t, sound.Contains(vector.MakeVector2(600, 500)))
}

func TestUnboundedRadius(t *testing.T) {
	scene := makeTestScene(t)
	origin := vector.MakeVector2(100, 100)

	polygon := sweep.Compute(origin, sightConfig(0), scene)

	// The sweep reaches the canvas boundary and stops there.
	assert.False(t, polygon.IsCompleteCircle())
	assert.True(t, polygon.Contains(vector.MakeVector2(900, 900)))

	for _, p := range polygon.Points() {
		x, y := p.Get()
		assert.True(t, x >= -1 && x <= 1001, "point %s escapes the canvas", p.String())
		assert.True(t, y >= -1 && y <= 1001, "point %s escapes the canvas", p.String())
	}
}

func TestOriginOnWall(t *testing.T) {
	wall := edge.MakeWall(vector.MakeVector2(400, 500), vector.MakeVector2(600, 500))
	scene := makeTestScene(t, wall)

	// Exactly on the wall: the sweep must not divide by zero and the
	// result still covers one side.
	polygon := sweep.Compute(vector.MakeVector2(500, 500), sightConfig(100), scene)

	assert.True(t, polygon.Len() >= 3)
	assert.False(t, polygon.IsCompleteCircle())
}

func TestWallEndpointNearOrigin(t *testing.T) {
	// The wall's near endpoint snaps to (500, 500), less than half a unit
	// from the origin; the wall must keep blocking its side regardless.
	wall := edge.MakeWall(vector.MakeVector2(500, 500), vector.MakeVector2(500, 600))
	scene := makeTestScene(t, wall)
	origin := vector.MakeVector2(500.4, 500)

	polygon := sweep.Compute(origin, sightConfig(200), scene)

	assert.False(t, polygon.IsCompleteCircle())
	assert.False(t, polygon.Contains(vector.MakeVector2(450, 550)))

	t.Run("Should keep the unobstructed directions", func(t *testing.T) {
		assert.True(t, polygon.Contains(vector.MakeVector2(550, 550)))
		assert.True(t, polygon.Contains(vector.MakeVector2(450, 450)))
	})
}

func TestRadialWall(t *testing.T) {
	// A wall pointing straight away from the origin subtends no angular
	// width; the boundary notches down to its near endpoint and nothing
	// else is occluded.
	wall := edge.MakeWall(vector.MakeVector2(550, 500), vector.MakeVector2(600, 500))
	scene := makeTestScene(t, wall)
	origin := vector.MakeVector2(500, 500)

	polygon := sweep.Compute(origin, sightConfig(200), scene)

	assert.False(t, polygon.IsCompleteCircle())

	nearHit := false
	for _, p := range polygon.Points() {
		if p.DistanceTo(vector.MakeVector2(550, 500)) < 0.5 {
			nearHit = true
		}
		assert.True(t, p.DistanceTo(vector.MakeVector2(600, 500)) > 0.5)
	}
	assert.True(t, nearHit)

	t.Run("Should not notch for a limited wall seen edge-on", func(t *testing.T) {
		limitedWall := edge.MakeEdge(
			vector.MakeVector2(550, 500),
			vector.MakeVector2(600, 500),
			edge.Config{Sight: edge.RestrictionLimited},
		)
		limitedScene := makeTestScene(t, limitedWall)

		open := sweep.Compute(origin, sightConfig(200), limitedScene)

		assert.True(t, open.IsCompleteCircle())
	})
}

func TestSweepIsRepeatable(t *testing.T) {
	scene := makeTestScene(t,
		edge.MakeWall(vector.MakeVector2(550, 450), vector.MakeVector2(550, 550)),
		edge.MakeWall(vector.MakeVector2(450, 550), vector.MakeVector2(550, 550)),
	)
	origin := vector.MakeVector2(500, 500)

	first := sweep.Compute(origin, sightConfig(200), scene)
	second := sweep.Compute(origin, sightConfig(200), scene)

	assert.Equal(t, first.Len(), second.Len())
	for i, p := range first.Points() {
		assert.True(t, p.Equals(second.Points()[i]))
	}
}

func TestCrossingWalls(t *testing.T) {
	// Two walls crossing at (550, 500); the sweep splits them there and
	// treats the crossing as a junction.
	scene := makeTestScene(t,
		edge.MakeWall(vector.MakeVector2(550, 400), vector.MakeVector2(550, 600)),
		edge.MakeWall(vector.MakeVector2(450, 400), vector.MakeVector2(650, 600)),
	)
	origin := vector.MakeVector2(500, 500)

	polygon := sweep.Compute(origin, sightConfig(300), scene)

	assert.False(t, polygon.Contains(vector.MakeVector2(600, 500)))
	assert.False(t, polygon.Contains(vector.MakeVector2(500, 420)))
	assert.True(t, polygon.Contains(vector.MakeVector2(500, 560)))
}
