package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vkarpenko/halfcourt/internal/geom"
)

func TestResolvePlayerOverlapSymmetricPush(t *testing.T) {
	a := NewPlayer(SideHuman, geom.Vec2{X: 5, Y: 5}, StealBaseChance)
	b := NewPlayer(SideAI, geom.Vec2{X: 5.4, Y: 5}, StealBaseChance)

	ResolvePlayerOverlap(a, b)

	assert.InDelta(t, 2*PlayerRadius, a.Pos.Dist(b.Pos), 1e-9)
	// Both moved the same amount along the axis.
	assert.InDelta(t, 5-0.2, a.Pos.X, 1e-9)
	assert.InDelta(t, 5.4+0.2, b.Pos.X, 1e-9)
}

func TestResolvePlayerOverlapNoTouchNoMove(t *testing.T) {
	a := NewPlayer(SideHuman, geom.Vec2{X: 3, Y: 5}, StealBaseChance)
	b := NewPlayer(SideAI, geom.Vec2{X: 6, Y: 5}, StealBaseChance)

	ResolvePlayerOverlap(a, b)

	assert.Equal(t, geom.Vec2{X: 3, Y: 5}, a.Pos)
	assert.Equal(t, geom.Vec2{X: 6, Y: 5}, b.Pos)
}

func TestResolvePlayerOverlapCoincidentCenters(t *testing.T) {
	a := NewPlayer(SideHuman, geom.Vec2{X: 5, Y: 5}, StealBaseChance)
	b := NewPlayer(SideAI, geom.Vec2{X: 5, Y: 5}, StealBaseChance)

	ResolvePlayerOverlap(a, b)

	assert.False(t, math.IsNaN(a.Pos.X) || math.IsNaN(b.Pos.X))
	assert.InDelta(t, 2*PlayerRadius, a.Pos.Dist(b.Pos), 1e-9)
}

func TestClampToCourt(t *testing.T) {
	p := NewPlayer(SideHuman, geom.Vec2{X: -3, Y: CourtDepth + 2}, StealBaseChance)
	ClampToCourt(p)
	assert.Equal(t, PlayerRadius, p.Pos.X)
	assert.Equal(t, CourtDepth-PlayerRadius, p.Pos.Y)
}
