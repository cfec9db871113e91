package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVecArithmetic(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 3, Y: -1}

	assert.Equal(t, Vec2{X: 4, Y: 1}, a.Add(b))
	assert.Equal(t, Vec2{X: -2, Y: 3}, a.Sub(b))
	assert.Equal(t, Vec2{X: 2, Y: 4}, a.Scale(2))
	assert.Equal(t, 1.0, a.Dot(b))
}

func TestLenAndDist(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	assert.Equal(t, 5.0, v.Len())
	assert.Equal(t, 25.0, v.LenSq())
	assert.Equal(t, 5.0, Vec2{}.Dist(v))
}

func TestNormalize(t *testing.T) {
	n := Vec2{X: 0, Y: -7}.Normalize()
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
	assert.Equal(t, Vec2{X: 0, Y: -1}, n)

	assert.Equal(t, Vec2{}, Vec2{}.Normalize(), "zero vector stays zero")
}

func TestAngleRoundTrip(t *testing.T) {
	for _, rad := range []float64{0, math.Pi / 4, -math.Pi / 2, 3} {
		v := FromAngle(rad, 2.5)
		assert.InDelta(t, rad, v.Angle(), 1e-12)
		assert.InDelta(t, 2.5, v.Len(), 1e-12)
	}
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
	assert.Equal(t, 0.0, Lerp(0, 10, 0))
	assert.Equal(t, 10.0, Lerp(0, 10, 1))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2.0, Clamp(1, 2, 8))
	assert.Equal(t, 8.0, Clamp(9, 2, 8))
	assert.Equal(t, 5.0, Clamp(5, 2, 8))
}

func TestClampVec(t *testing.T) {
	lo := Vec2{X: 0, Y: 0}
	hi := Vec2{X: 10, Y: 5}
	assert.Equal(t, Vec2{X: 0, Y: 5}, ClampVec(Vec2{X: -3, Y: 9}, lo, hi))
	assert.Equal(t, Vec2{X: 4, Y: 2}, ClampVec(Vec2{X: 4, Y: 2}, lo, hi))
}
