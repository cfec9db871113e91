package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpenko/halfcourt/internal/geom"
)

func TestApplyMovementClampsToEffectiveSpeed(t *testing.T) {
	p := NewPlayer(SideHuman, geom.Vec2{X: 7.5, Y: 8.0}, StealBaseChance)

	for i := 0; i < 120; i++ {
		p.ApplyMovement(0, -1)
		p.Step(DT)
	}

	assert.LessOrEqual(t, p.Vel.Len(), PlayerBaseSpeed+1e-9)
	assert.Less(t, p.Pos.Y, 8.0, "player should have moved toward the rim")
}

func TestSprintDrainsAndIdleRegens(t *testing.T) {
	p := NewPlayer(SideHuman, CheckAttackSpot, StealBaseChance)
	p.SetSprinting(true)

	for i := 0; i < 60; i++ {
		p.ApplyMovement(1, 0)
		p.Step(DT)
	}
	require.Less(t, p.Stamina, StaminaMax)
	drained := p.Stamina

	// Sprint speed beats base speed while stamina holds.
	assert.Greater(t, p.EffectiveSpeed(), PlayerBaseSpeed)

	p.SetSprinting(false)
	for i := 0; i < 60; i++ {
		p.Step(DT)
	}
	assert.Greater(t, p.Stamina, drained)
}

func TestLowStaminaSlowsAndGatesSprint(t *testing.T) {
	p := NewPlayer(SideHuman, CheckAttackSpot, StealBaseChance)
	p.Stamina = SprintMinStamina - 2
	p.SetSprinting(true)

	// Below the sprint floor the multiplier is gone, and below the low
	// threshold the penalty applies.
	assert.InDelta(t, PlayerBaseSpeed*LowStaminaPenalty, p.EffectiveSpeed(), 1e-9)
}

func TestShotProtocol(t *testing.T) {
	p := NewPlayer(SideHuman, geom.Vec2{X: 7.5, Y: 5.0}, StealBaseChance)

	require.False(t, p.StartShot(0), "no ball, no charge")

	p.HasBall = true
	require.True(t, p.StartShot(-math.Pi/2))
	require.False(t, p.StartShot(0), "already charging")

	for i := 0; i < 30; i++ {
		p.ChargeShot(DT)
	}
	require.Greater(t, p.ShotPower, 0.0)
	require.LessOrEqual(t, p.ShotPower, ShotMaxPower)

	l, ok := p.ExecuteShot()
	require.True(t, ok)
	assert.Greater(t, l.VZ, 0.0)
	assert.Greater(t, l.Vel.Len(), 0.0)
	assert.False(t, p.HasBall)
	assert.False(t, p.ShotCharging)
	assert.Zero(t, p.ShotPower)

	_, ok = p.ExecuteShot()
	assert.False(t, ok, "release is a one-shot")
}

func TestChargeClampsAtMaxPower(t *testing.T) {
	p := NewPlayer(SideHuman, CheckAttackSpot, StealBaseChance)
	p.HasBall = true
	p.StartShot(0)
	for i := 0; i < TickRate*3; i++ {
		p.ChargeShot(DT)
	}
	assert.Equal(t, ShotMaxPower, p.ShotPower)
}

func TestOptimalChargeGrowsWithDistance(t *testing.T) {
	near := OptimalCharge(1.0)
	far := OptimalCharge(6.0)
	assert.Less(t, near, far)
	assert.GreaterOrEqual(t, near, ShotMinPower)
	assert.LessOrEqual(t, OptimalCharge(50), ShotMaxPower)
}

func TestStepBackCooldownAndInvulnerability(t *testing.T) {
	p := NewPlayer(SideHuman, geom.Vec2{X: 7.5, Y: 6.0}, StealBaseChance)
	p.Facing = -math.Pi / 2 // toward the rim
	start := p.Pos

	require.True(t, p.PerformStepBack())
	assert.InDelta(t, StepBackDistance, p.Pos.Dist(start), 1e-9)
	assert.Greater(t, p.Pos.Y, start.Y, "step-back retreats away from facing")
	assert.Greater(t, p.InvulnerableTime, 0.0)

	require.False(t, p.PerformStepBack(), "on cooldown")

	for i := 0; i < int(StepBackCooldown/DT)+2; i++ {
		p.Step(DT)
	}
	assert.True(t, p.PerformStepBack())
}

func TestAttemptStealRejections(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	newPair := func() (*Player, *Player) {
		att := NewPlayer(SideAI, geom.Vec2{X: 5, Y: 5}, 1.0)
		tgt := NewPlayer(SideHuman, geom.Vec2{X: 5, Y: 5}, StealBaseChance)
		tgt.HasBall = true
		return att, tgt
	}

	t.Run("out of range", func(t *testing.T) {
		att, tgt := newPair()
		tgt.Pos = att.Pos.Add(geom.Vec2{X: StealRange + 0.1})
		assert.False(t, att.AttemptSteal(tgt, rng))
		assert.Zero(t, att.StealCooldownT, "range rejection does not arm the cooldown")
	})

	t.Run("target without ball", func(t *testing.T) {
		att, tgt := newPair()
		tgt.HasBall = false
		assert.False(t, att.AttemptSteal(tgt, rng))
	})

	t.Run("invulnerable target", func(t *testing.T) {
		att, tgt := newPair()
		tgt.InvulnerableTime = 0.5
		assert.False(t, att.AttemptSteal(tgt, rng))
	})

	t.Run("cooldown", func(t *testing.T) {
		att, tgt := newPair()
		att.StealCooldownT = 1.0
		assert.False(t, att.AttemptSteal(tgt, rng))
	})
}

func TestAttemptStealChanceAtZeroDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	// Chance 1.0 at zero distance is a guaranteed strip.
	att := NewPlayer(SideAI, geom.Vec2{X: 5, Y: 5}, 1.0)
	tgt := NewPlayer(SideHuman, geom.Vec2{X: 5, Y: 5}, StealBaseChance)
	tgt.HasBall = true
	assert.True(t, att.AttemptSteal(tgt, rng))
	assert.Equal(t, StealCooldown, att.StealCooldownT, "attempt arms the cooldown")

	// Chance 0 never succeeds no matter the roll.
	att2 := NewPlayer(SideAI, geom.Vec2{X: 5, Y: 5}, 0.0)
	assert.False(t, att2.AttemptSteal(tgt, rng))
}

func TestResetRestoresFreshState(t *testing.T) {
	p := NewPlayer(SideHuman, CheckAttackSpot, StealBaseChance)
	p.HasBall = true
	p.Stamina = 5
	p.StealCooldownT = 1
	p.ShotCharging = true
	p.ShotPower = 0.7
	p.Vel = geom.Vec2{X: 3}

	p.Reset(CheckDefendSpot)

	assert.Equal(t, CheckDefendSpot, p.Pos)
	assert.Equal(t, StaminaMax, p.Stamina)
	assert.False(t, p.HasBall)
	assert.False(t, p.ShotCharging)
	assert.Zero(t, p.ShotPower)
	assert.Zero(t, p.StealCooldownT)
	assert.Zero(t, p.Vel.Len())
}
