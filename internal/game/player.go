package game

import (
	"math"
	"math/rand"

	"github.com/vkarpenko/halfcourt/internal/geom"
)

// Launch is the result of a released shot: the horizontal velocity and
// vertical speed handed to the orchestrator, which applies it to the ball.
type Launch struct {
	Vel geom.Vec2
	VZ  float64
}

// Player is one of the two actors on the court.
type Player struct {
	ID     Side
	Pos    geom.Vec2
	Vel    geom.Vec2
	Facing float64 // radians

	Stamina   float64
	Sprinting bool

	HasBall      bool
	ShotCharging bool
	ShotPower    float64
	ShotAim      float64

	StealChance      float64 // base steal probability at zero distance
	StealCooldownT   float64
	StepBackCooldown float64
	InvulnerableTime float64

	Anim AnimState

	moved bool // movement applied this tick, gates stamina drain
}

func NewPlayer(id Side, pos geom.Vec2, stealChance float64) *Player {
	return &Player{
		ID:          id,
		Pos:         pos,
		Facing:      RimCenter.Sub(pos).Angle(),
		Stamina:     StaminaMax,
		StealChance: stealChance,
	}
}

// Reset returns the player to a fresh match state at pos.
func (p *Player) Reset(pos geom.Vec2) {
	p.Pos = pos
	p.Vel = geom.Vec2{}
	p.Facing = RimCenter.Sub(pos).Angle()
	p.Stamina = StaminaMax
	p.Sprinting = false
	p.HasBall = false
	p.ShotCharging = false
	p.ShotPower = 0
	p.StealCooldownT = 0
	p.StepBackCooldown = 0
	p.InvulnerableTime = 0
	p.Anim = AnimIdle
	p.moved = false
}

// Step advances cooldowns, stamina, friction and position by one tick.
func (p *Player) Step(dt float64) {
	if p.StealCooldownT > 0 {
		p.StealCooldownT = math.Max(0, p.StealCooldownT-dt)
	}
	if p.StepBackCooldown > 0 {
		p.StepBackCooldown = math.Max(0, p.StepBackCooldown-dt)
	}
	if p.InvulnerableTime > 0 {
		p.InvulnerableTime = math.Max(0, p.InvulnerableTime-dt)
	}

	if p.Sprinting && p.moved {
		p.Stamina = math.Max(0, p.Stamina-SprintDrain*dt)
	} else {
		p.Stamina = math.Min(StaminaMax, p.Stamina+StaminaRegen*dt)
	}
	p.moved = false

	p.Vel = p.Vel.Scale(math.Exp(-PlayerFriction * dt))
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))

	p.Anim = p.animState()
}

func (p *Player) animState() AnimState {
	if p.ShotCharging {
		return AnimCharge
	}
	speed := p.Vel.Len()
	switch {
	case speed < 0.3:
		return AnimIdle
	case p.HasBall:
		return AnimDribble
	case p.Sprinting && speed > PlayerBaseSpeed:
		return AnimSprint
	default:
		return AnimRun
	}
}

// EffectiveSpeed is the current max speed: base, times the sprint
// multiplier when sprinting with stamina above the floor, times the
// low-stamina penalty whenever stamina is below the threshold.
func (p *Player) EffectiveSpeed() float64 {
	speed := PlayerBaseSpeed
	if p.Sprinting && p.Stamina > SprintMinStamina {
		speed *= SprintMult
	}
	if p.Stamina < LowStaminaThreshold {
		speed *= LowStaminaPenalty
	}
	return speed
}

// ApplyMovement accelerates along the given pre-normalized direction and
// clamps the resulting speed to the effective max.
func (p *Player) ApplyMovement(dirX, dirY float64) {
	p.Vel.X += dirX * PlayerAccel * DT
	p.Vel.Y += dirY * PlayerAccel * DT

	max := p.EffectiveSpeed()
	if speed := p.Vel.Len(); speed > max {
		p.Vel = p.Vel.Scale(max / speed)
	}
	p.Facing = math.Atan2(dirY, dirX)
	p.moved = true
}

func (p *Player) SetSprinting(on bool) { p.Sprinting = on }

// HandPoint is where a held ball sits, slightly ahead of the player.
func (p *Player) HandPoint() geom.Vec2 {
	return p.Pos.Add(geom.FromAngle(p.Facing, HandReach))
}

// StartShot arms the shot charge. Requires the ball.
func (p *Player) StartShot(aim float64) bool {
	if !p.HasBall || p.ShotCharging {
		return false
	}
	p.ShotCharging = true
	p.ShotPower = 0
	p.ShotAim = aim
	return true
}

// ChargeShot accumulates shot power while charging.
func (p *Player) ChargeShot(dt float64) {
	if !p.ShotCharging {
		return
	}
	p.ShotPower = geom.Clamp(p.ShotPower+ShotChargeRate*dt, 0, ShotMaxPower)
}

// OptimalCharge is the charge power that puts a shot from the given
// distance dead on the rim.
func OptimalCharge(dist float64) float64 {
	return geom.Clamp(0.32+dist*0.078, ShotMinPower, ShotMaxPower)
}

// ExecuteShot releases the charge and returns the launch vector. It does
// not move the ball; the orchestrator applies the launch. No-op unless
// the player is charging with the ball.
func (p *Player) ExecuteShot() (Launch, bool) {
	if !p.ShotCharging || !p.HasBall {
		return Launch{}, false
	}

	power := geom.Clamp(p.ShotPower, ShotMinPower, ShotMaxPower)
	// The ball leaves from the hand point, so range from there.
	dist := p.HandPoint().Dist(RimCenter)

	// Vertical speed so the unpowered apex just clears the rim, scaled
	// by the charge fraction.
	baseVZ := math.Sqrt(2 * Gravity * (RimHeight + ApexClearance - ShotReleaseHeight))
	vz := baseVZ * (0.92 + 0.16*power)

	// Time until the ball descends back through rim height.
	disc := vz*vz - 2*Gravity*(RimHeight-ShotReleaseHeight)
	t := (vz + math.Sqrt(disc)) / Gravity

	accuracy := 1.0
	if p.Stamina < LowStaminaThreshold {
		accuracy = LowStaminaAccuracy
	}

	// Horizontal speed that covers the rim distance in t, compensated
	// for air drag, scaled by how close the charge came to optimal.
	ideal := dist / t * (1 + 0.5*BallAirDrag*t)
	speed := ideal * (power / OptimalCharge(dist)) * accuracy

	p.HasBall = false
	p.ShotCharging = false
	p.ShotPower = 0

	return Launch{Vel: geom.FromAngle(p.ShotAim, speed), VZ: vz}, true
}

// PerformStepBack teleports the player backward along the inverse of
// facing and grants a short invulnerability window. Rejected on cooldown.
func (p *Player) PerformStepBack() bool {
	if p.StepBackCooldown > 0 {
		return false
	}
	p.Pos = p.Pos.Sub(geom.FromAngle(p.Facing, StepBackDistance))
	p.Vel = geom.Vec2{}
	p.StepBackCooldown = StepBackCooldown
	p.InvulnerableTime = StepBackInvuln
	return true
}

// AttemptSteal rolls a steal against target. Rejected on cooldown, when
// the target has no ball or is invulnerable, or beyond steal range.
// Within range the success probability decays linearly from the
// attacker's base chance at zero distance to zero at the range cutoff.
func (p *Player) AttemptSteal(target *Player, rng *rand.Rand) bool {
	if p.StealCooldownT > 0 {
		return false
	}
	if !target.HasBall || target.InvulnerableTime > 0 {
		return false
	}
	dist := p.Pos.Dist(target.Pos)
	if dist > StealRange {
		return false
	}
	p.StealCooldownT = StealCooldown
	chance := p.StealChance * (1 - dist/StealRange)
	return rng.Float64() < chance
}
