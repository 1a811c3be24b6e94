package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/battlemap/perception/common/utils/vector"
	"github.com/battlemap/perception/perception/shape"
)

func makeSquare(minx, miny, maxx, maxy float64) *Polygon {
	return NewPolygon([]vector.Vector2{
		vector.MakeVector2(minx, miny),
		vector.MakeVector2(maxx, miny),
		vector.MakeVector2(maxx, maxy),
		vector.MakeVector2(minx, maxy),
	})
}

func TestSignedArea(t *testing.T) {
	square := makeSquare(0, 0, 10, 10)
	assert.InDelta(t, 100, square.SignedArea(), 1e-9)

	reversed := NewPolygon([]vector.Vector2{
		vector.MakeVector2(0, 10),
		vector.MakeVector2(10, 10),
		vector.MakeVector2(10, 0),
		vector.MakeVector2(0, 0),
	})
	assert.InDelta(t, -100, reversed.SignedArea(), 1e-9)
}

func TestContains(t *testing.T) {
	square := makeSquare(0, 0, 10, 10)

	assert.True(t, square.Contains(vector.MakeVector2(5, 5)))
	assert.True(t, square.Contains(vector.MakeVector2(9.9, 0.1)))
	assert.False(t, square.Contains(vector.MakeVector2(11, 5)))
	assert.False(t, square.Contains(vector.MakeVector2(5, -1)))
}

func TestBounds(t *testing.T) {
	poly := NewPolygon([]vector.Vector2{
		vector.MakeVector2(5, 20),
		vector.MakeVector2(-10, 0),
		vector.MakeVector2(30, -5),
	})

	b := poly.Bounds()
	assert.True(t, b.Min().Equals(vector.MakeVector2(-10, -5)))
	assert.True(t, b.Max().Equals(vector.MakeVector2(30, 20)))
}

func TestApplyConstraint(t *testing.T) {
	t.Run("Should clip against a solid circle", func(t *testing.T) {
		square := makeSquare(-100, -100, 100, 100)
		circle := shape.NewCircle(vector.MakeVector2(0, 0), 50)

		clipped := square.ApplyConstraint(circle, ConstraintOptions{})

		assert.True(t, clipped.Len() >= 3)
		for _, p := range clipped.Points() {
			assert.True(t, p.Mag() <= 50.6, "point %s outside the constraint circle", p.String())
		}
	})

	t.Run("Should keep the constrained region positively wound", func(t *testing.T) {
		square := makeSquare(-100, -100, 100, 100)
		circle := shape.NewCircle(vector.MakeVector2(0, 0), 50)

		clipped := square.ApplyConstraint(circle, ConstraintOptions{})
		assert.True(t, clipped.SignedArea() > 0)
	})

	t.Run("Should subtract a hole shape", func(t *testing.T) {
		square := makeSquare(0, 0, 100, 100)
		hole := shape.NewRectangle(80, 0, 40, 100, 0).AsHole()

		carved := square.ApplyConstraint(hole, ConstraintOptions{})

		assert.True(t, carved.Contains(vector.MakeVector2(40, 50)))
		assert.False(t, carved.Contains(vector.MakeVector2(90, 50)))
	})

	t.Run("Should return nil without a shape", func(t *testing.T) {
		square := makeSquare(0, 0, 10, 10)
		assert.Nil(t, square.ApplyConstraint(nil, ConstraintOptions{}))
	})

	t.Run("Should return an empty polygon on disjoint regions", func(t *testing.T) {
		square := makeSquare(0, 0, 10, 10)
		circle := shape.NewCircle(vector.MakeVector2(1000, 1000), 5)

		clipped := square.ApplyConstraint(circle, ConstraintOptions{})
		assert.Equal(t, 0, clipped.Len())
	})

	t.Run("Should honor a density override", func(t *testing.T) {
		square := makeSquare(-100, -100, 100, 100)
		circle := shape.NewCircle(vector.MakeVector2(0, 0), 50)

		coarse := square.ApplyConstraint(circle, ConstraintOptions{Density: 12})
		fine := square.ApplyConstraint(circle, ConstraintOptions{Density: 96})

		assert.True(t, fine.Len() > coarse.Len())
	})
}
