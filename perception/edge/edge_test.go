package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/battlemap/perception/common/utils/vector"
)

func TestMakeEdge(t *testing.T) {
	t.Run("Should snap endpoints to integers", func(t *testing.T) {
		e := MakeEdge(vector.MakeVector2(10.4, 20.6), vector.MakeVector2(30.5, 40.1), Config{})

		assert.True(t, e.A.Equals(vector.MakeVector2(10, 21)))
		assert.True(t, e.B.Equals(vector.MakeVector2(31, 40)))
	})

	t.Run("Should assign an id when none is given", func(t *testing.T) {
		e1 := MakeEdge(vector.MakeVector2(0, 0), vector.MakeVector2(10, 0), Config{})
		e2 := MakeEdge(vector.MakeVector2(0, 0), vector.MakeVector2(10, 0), Config{})

		assert.NotEmpty(t, e1.ID)
		assert.NotEqual(t, e1.ID, e2.ID)
	})

	t.Run("Should keep a given id", func(t *testing.T) {
		e := MakeEdge(vector.MakeVector2(0, 0), vector.MakeVector2(10, 0), Config{ID: "w1"})
		assert.Equal(t, "w1", e.ID)
	})
}

func TestRestrictionPerChannel(t *testing.T) {
	e := MakeEdge(vector.MakeVector2(0, 0), vector.MakeVector2(10, 0), Config{
		Light: RestrictionNone,
		Sight: RestrictionLimited,
		Sound: RestrictionNormal,
		Move:  RestrictionNone,
	})

	assert.Equal(t, RestrictionNone, e.Restriction(ChannelLight))
	assert.Equal(t, RestrictionLimited, e.Restriction(ChannelSight))
	assert.Equal(t, RestrictionNormal, e.Restriction(ChannelSound))
	assert.Equal(t, RestrictionNone, e.Restriction(ChannelMove))

	t.Run("Should take the strongest restriction on the universal channel", func(t *testing.T) {
		assert.Equal(t, RestrictionNormal, e.Restriction(ChannelUniversal))
	})

	t.Run("Should apply only where restricted", func(t *testing.T) {
		assert.False(t, e.AppliesTo(ChannelLight))
		assert.True(t, e.AppliesTo(ChannelSight))
		assert.True(t, e.AppliesTo(ChannelSound))
		assert.True(t, e.AppliesTo(ChannelUniversal))
	})

	t.Run("Should report limited channels", func(t *testing.T) {
		assert.True(t, e.IsLimited(ChannelSight))
		assert.False(t, e.IsLimited(ChannelSound))
	})
}

func TestBlocksFrom(t *testing.T) {
	a := vector.MakeVector2(0, 0)
	b := vector.MakeVector2(10, 0)
	above := vector.MakeVector2(5, 5)
	below := vector.MakeVector2(5, -5)
	along := vector.MakeVector2(20, 0)

	examples := []struct {
		Name      string
		Direction Direction
		Origin    vector.Vector2
		Blocks    bool
	}{
		{"Should block both sides by default (above)", DirectionBoth, above, true},
		{"Should block both sides by default (below)", DirectionBoth, below, true},
		{"Should block only the left side", DirectionLeft, above, true},
		{"Should pass the right side when left-only", DirectionLeft, below, false},
		{"Should block only the right side", DirectionRight, below, true},
		{"Should pass the left side when right-only", DirectionRight, above, false},
		{"Should never block a collinear origin one-way", DirectionLeft, along, false},
	}

	for _, example := range examples {
		t.Run(example.Name, func(t *testing.T) {
			e := MakeEdge(a, b, Config{Sight: RestrictionNormal, Direction: example.Direction})
			assert.Equal(t, example.Blocks, e.BlocksFrom(example.Origin))
		})
	}
}

func TestBoundaryEdges(t *testing.T) {
	r := vector.MakeRect(vector.MakeVector2(0, 0), vector.MakeVector2(100, 80))
	edges := BoundaryEdges(r, TypeBoundary)

	assert.Len(t, edges, 4)

	for _, e := range edges {
		assert.Equal(t, TypeBoundary, e.Type)
		assert.Equal(t, DirectionBoth, e.Direction)
		assert.Equal(t, RestrictionNormal, e.Restriction(ChannelSight))
		assert.Equal(t, RestrictionNormal, e.Restriction(ChannelSound))
	}

	t.Run("Should close the rectangle ring", func(t *testing.T) {
		for i, e := range edges {
			next := edges[(i+1)%4]
			assert.True(t, e.B.Equals(next.A))
		}
	})

	t.Run("Should carry deterministic ids", func(t *testing.T) {
		assert.Equal(t, "boundary-top", edges[0].ID)
		assert.Equal(t, "boundary-left", edges[3].ID)
	})
}

func TestParsers(t *testing.T) {
	t.Run("Should parse every restriction", func(t *testing.T) {
		for _, name := range []string{"none", "limited", "normal"} {
			r, err := ParseRestriction(name)
			assert.NoError(t, err)
			assert.Equal(t, name, r.String())
		}

		_, err := ParseRestriction("opaque")
		assert.Error(t, err)
	})

	t.Run("Should parse every channel", func(t *testing.T) {
		for _, name := range []string{"light", "sight", "sound", "move", "universal"} {
			c, err := ParseChannel(name)
			assert.NoError(t, err)
			assert.Equal(t, name, c.String())
		}

		_, err := ParseChannel("smell")
		assert.Error(t, err)
	})
}
