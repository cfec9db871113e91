package game

import "github.com/vkarpenko/halfcourt/internal/geom"

// Simulation timestep
const (
	TickRate = 60
	DT       = 1.0 / float64(TickRate)
)

// Court geometry (meters). Half court, baseline at y=0.
const (
	CourtWidth = float64(15.0)
	CourtDepth = float64(11.0)
	OOBMargin  = float64(0.35)

	RimX      = float64(7.5)
	RimY      = float64(1.575)
	RimHeight = float64(3.05)
	RimRadius = float64(0.23)
	RimMagnet = float64(0.10) // widened effective rim for forgiving scoring

	BackboardY         = float64(1.2)
	BackboardHalfWidth = float64(0.9)
	BackboardHeight    = float64(1.05)

	ThreePointRadius = float64(6.75)
	FreeThrowLineY   = float64(5.8)
)

// RimCenter is the rim's court-plane position.
var RimCenter = geom.Vec2{X: RimX, Y: RimY}

// Ball physics
const (
	BallRadius  = float64(0.12)
	Gravity     = float64(9.81)
	BallAirDrag = float64(0.12) // fraction of horizontal speed shed per second

	BallBounceFactor   = float64(0.62)
	BallGroundFriction = float64(0.72)
	BallSettleSpeed    = float64(0.9)
	BallRollFriction   = float64(1.8) // exponential horizontal decay while grounded

	RimDampVZ            = float64(0.55)
	BackboardRestitution = float64(0.45)
	BackboardVertLoss    = float64(0.85)

	BallHoldHeight = float64(1.0)
	DribbleAmp     = float64(0.35)
	DribbleFreq    = float64(8.5) // rad/s of the hold-time sine

	ShotReleaseHeight = float64(2.0)
	ApexClearance     = float64(0.45)
	HandReach         = float64(0.45)
)

// Player kinematics
const (
	PlayerRadius    = float64(0.4)
	PlayerBaseSpeed = float64(4.2)
	PlayerAccel     = float64(22.0)
	PlayerFriction  = float64(6.5) // exponential velocity decay per second
	SprintMult      = float64(1.45)

	StaminaMax          = float64(100.0)
	SprintDrain         = float64(26.0)
	StaminaRegen        = float64(14.0)
	SprintMinStamina    = float64(12.0)
	LowStaminaThreshold = float64(30.0)
	LowStaminaPenalty   = float64(0.8)
	LowStaminaAccuracy  = float64(0.92)
)

// Shooting
const (
	ShotChargeRate = float64(1.3) // power per second while charging
	ShotMinPower   = float64(0.15)
	ShotMaxPower   = float64(1.0)
)

// Special moves
const (
	StepBackDistance = float64(1.6)
	StepBackCooldown = float64(3.0)
	StepBackInvuln   = float64(0.8)

	StealCooldown   = float64(1.5)
	StealRange      = PlayerRadius * 3.0
	StealBaseChance = float64(0.4) // human attacker; AI uses its profile

	ReachInFoulChance = float64(0.25)
)

// Possession / pickup
const (
	PickupRadius       = PlayerRadius*2 + BallRadius
	PickupSpeedMax     = float64(3.0)
	ReleasePickupDelay = float64(0.35)
)

// Game flow timers
const (
	StartMoveSpeed  = float64(0.5) // handler speed that trips live ball
	OOBRecoverySecs = float64(0.8)
	FreeThrowDelay  = float64(1.4)

	HumanFreeThrowChance = float64(0.78)
)

// Check-ball spots (attacker at the top, defender under the rim).
var (
	CheckAttackSpot  = geom.Vec2{X: RimX, Y: 8.6}
	CheckDefendSpot  = geom.Vec2{X: RimX, Y: 3.6}
	FreeThrowSpot    = geom.Vec2{X: RimX, Y: FreeThrowLineY}
	FreeThrowWaitPos = geom.Vec2{X: RimX - 2.2, Y: 3.2}
)

// Side identifies one of the two actors.
type Side uint8

const (
	SideHuman Side = 0
	SideAI    Side = 1
)

func (s Side) Other() Side { return 1 - s }

func (s Side) String() string {
	if s == SideHuman {
		return "player"
	}
	return "ai"
}

// AnimState is a discrete animation label derived from kinematics.
// Observational only; it never feeds back into physics.
type AnimState uint8

const (
	AnimIdle AnimState = iota
	AnimRun
	AnimSprint
	AnimDribble
	AnimCharge
)

func (a AnimState) String() string {
	switch a {
	case AnimRun:
		return "run"
	case AnimSprint:
		return "sprint"
	case AnimDribble:
		return "dribble"
	case AnimCharge:
		return "charge"
	default:
		return "idle"
	}
}

// SideStats accumulates per-side match statistics.
type SideStats struct {
	Shots int `json:"shots"`
	Makes int `json:"makes"`
	Fouls int `json:"fouls"`
}
