package game

import "github.com/vkarpenko/halfcourt/internal/geom"

// ResolvePlayerOverlap pushes both players out symmetrically along the
// connecting normal by half the overlap each.
func ResolvePlayerOverlap(a, b *Player) {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	minDist := 2 * PlayerRadius
	if dist >= minDist {
		return
	}

	n := geom.Vec2{X: 1} // coincident centers, arbitrary axis
	if dist > 1e-9 {
		n = delta.Scale(1 / dist)
	}
	push := (minDist - dist) / 2
	a.Pos = a.Pos.Sub(n.Scale(push))
	b.Pos = b.Pos.Add(n.Scale(push))
}

// ClampToCourt keeps a player inside the court bounds.
func ClampToCourt(p *Player) {
	p.Pos = geom.ClampVec(p.Pos,
		geom.Vec2{X: PlayerRadius, Y: PlayerRadius},
		geom.Vec2{X: CourtWidth - PlayerRadius, Y: CourtDepth - PlayerRadius})
}
