package game

import (
	"math"

	"github.com/vkarpenko/halfcourt/internal/geom"
)

// BallState is the ball's 3-state machine.
type BallState uint8

const (
	BallFree BallState = iota
	BallHeld
	BallInFlight
)

func (s BallState) String() string {
	switch s {
	case BallHeld:
		return "held"
	case BallInFlight:
		return "inFlight"
	default:
		return "free"
	}
}

// Ball is the single match ball. It is re-attached, never recreated.
type Ball struct {
	Pos geom.Vec2
	Z   float64
	Vel geom.Vec2
	VZ  float64

	State BallState

	// HolderID is the current holder while held, and deliberately kept
	// across Release so the shooter can still be credited. -1 before
	// the first attach.
	HolderID int8

	HasScored    bool
	OutOfBounds  bool
	JustReleased bool

	holdTime    float64
	pickupDelay float64
	shotOrigin  geom.Vec2
}

func NewBall() *Ball {
	return &Ball{
		Pos:      geom.Vec2{X: CourtWidth / 2, Y: CourtDepth / 2},
		Z:        BallRadius,
		HolderID: -1,
	}
}

// AttachTo puts the ball in the player's hands and clears flight flags.
func (b *Ball) AttachTo(p *Player) {
	b.State = BallHeld
	b.HolderID = int8(p.ID)
	b.Pos = p.HandPoint()
	b.Z = BallHoldHeight
	b.Vel = geom.Vec2{}
	b.VZ = 0
	b.HasScored = false
	b.OutOfBounds = false
	b.JustReleased = false
	b.holdTime = 0
	b.pickupDelay = 0
}

// ReleaseFrom launches the ball from the shooter's hand point. The
// holder id is intentionally left pointing at the shooter.
func (b *Ball) ReleaseFrom(p *Player, l Launch) {
	b.State = BallInFlight
	b.Pos = p.HandPoint()
	b.Z = ShotReleaseHeight
	b.Vel = l.Vel
	b.VZ = l.VZ
	b.HasScored = false
	b.JustReleased = true
	b.pickupDelay = ReleasePickupDelay
	b.shotOrigin = p.Pos
}

// LastHolder is the side that currently holds, or most recently held,
// the ball. Only valid after the first attach.
func (b *Ball) LastHolder() Side { return Side(b.HolderID) }

// ShotOrigin is where the last released shot was taken from.
func (b *Ball) ShotOrigin() geom.Vec2 { return b.shotOrigin }

// SetHoldPoint tracks the holder's hand in the court plane; the dribble
// height is animated by Step.
func (b *Ball) SetHoldPoint(pos geom.Vec2) {
	if b.State == BallHeld {
		b.Pos = pos
	}
}

// CanPickUp reports whether a free (or slow, settling) ball may be
// grabbed this tick.
func (b *Ball) CanPickUp() bool {
	if b.State == BallHeld || b.pickupDelay > 0 {
		return false
	}
	if b.State == BallFree {
		return true
	}
	return b.Vel.Len() < PickupSpeedMax && math.Abs(b.VZ) < PickupSpeedMax && b.Z < ShotReleaseHeight
}

// InCourt tests the current position against the court extents.
func (b *Ball) InCourt() bool {
	return b.Pos.X >= -OOBMargin && b.Pos.X <= CourtWidth+OOBMargin &&
		b.Pos.Y >= -OOBMargin && b.Pos.Y <= CourtDepth+OOBMargin
}

// IsScore is true only after a rim-scored ball has dropped below rim
// height, so a make is recognized once it has visibly gone through.
func (b *Ball) IsScore() bool {
	return b.HasScored && b.Z < RimHeight
}

// Step advances one tick of ball physics. While held it only animates
// the dribble; in free flight it integrates gravity, drag, rim,
// backboard and ground contact. Returns the ground impact speed when a
// bounce happened this tick, else 0.
func (b *Ball) Step(dt float64) float64 {
	if b.State == BallHeld {
		b.holdTime += dt
		b.Z = BallHoldHeight - DribbleAmp*math.Abs(math.Sin(b.holdTime*DribbleFreq))
		return 0
	}

	if b.pickupDelay > 0 {
		b.pickupDelay -= dt
		if b.pickupDelay <= 0 {
			b.pickupDelay = 0
			b.JustReleased = false
		}
	}

	// A settled ball rolls; no gravity, no bounce, no impact reports.
	if b.State == BallFree && b.VZ == 0 && b.Z <= BallRadius {
		b.Z = BallRadius
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Vel = b.Vel.Scale(math.Exp(-BallRollFriction * dt))
		if !b.InCourt() {
			b.OutOfBounds = true
		}
		return 0
	}

	b.VZ -= Gravity * dt
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	b.Z += b.VZ * dt
	b.Vel = b.Vel.Scale(1 - BallAirDrag*dt)

	b.collideRim()
	b.collideBackboard()

	var impact float64
	if b.Z <= BallRadius {
		b.Z = BallRadius
		if b.VZ < 0 {
			impact = -b.VZ
			b.VZ = -b.VZ * BallBounceFactor
			b.Vel = b.Vel.Scale(BallGroundFriction)
			if b.VZ < BallSettleSpeed {
				b.VZ = 0
				b.State = BallFree
			}
		}
	}

	if !b.InCourt() {
		b.OutOfBounds = true // sticky until the next pickup
	}

	return impact
}

// collideRim marks a make when the descending ball passes through the
// rim's magnetic window. The ball keeps falling, lightly damped.
func (b *Ball) collideRim() {
	if b.VZ >= 0 || b.HasScored {
		return
	}
	if b.Pos.Dist(RimCenter) > RimRadius+RimMagnet {
		return
	}
	if math.Abs(b.Z-RimHeight) > 2*BallRadius {
		return
	}
	b.HasScored = true
	b.VZ *= RimDampVZ
}

// collideBackboard reflects the ball off the vertical backboard plane,
// losing energy on the depth axis and mildly on the vertical.
func (b *Ball) collideBackboard() {
	if b.Z < RimHeight-0.1 || b.Z > RimHeight+BackboardHeight {
		return
	}
	if math.Abs(b.Pos.X-RimX) > BackboardHalfWidth {
		return
	}
	// Board faces the court; the ball approaches heading toward the baseline.
	if b.Vel.Y < 0 && b.Pos.Y-BallRadius <= BackboardY && b.Pos.Y >= BackboardY-2*BallRadius {
		b.Pos.Y = BackboardY + BallRadius
		b.Vel.Y = -b.Vel.Y * BackboardRestitution
		b.VZ *= BackboardVertLoss
	}
}
