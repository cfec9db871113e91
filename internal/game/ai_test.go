package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpenko/halfcourt/internal/geom"
)

func newTestAI(tb testing.TB, profile DifficultyProfile) (*AIController, *Player, *Player, *Ball, *Rules) {
	tb.Helper()
	self := NewPlayer(SideAI, CheckDefendSpot, profile.StealChance)
	opp := NewPlayer(SideHuman, CheckAttackSpot, StealBaseChance)
	ball := NewBall()
	rules := NewRules(DefaultSettings())
	c := NewAIController(self, opp, ball, rules, profile, rand.New(rand.NewSource(42)))
	return c, self, opp, ball, rules
}

func TestAIDecisionThrottle(t *testing.T) {
	profile := DifficultyByName("pro")
	c, self, _, ball, rules := newTestAI(t, profile)
	self.HasBall = true
	ball.AttachTo(self)
	rules.StartLiveBall()

	// Until the first decision window elapses the AI stays idle.
	steps := int(profile.DecisionDelay/DT) - 2
	for i := 0; i < steps; i++ {
		c.Update(DT)
	}
	assert.Equal(t, BehaviorIdle, c.Behavior)

	for i := 0; i < 4; i++ {
		c.Update(DT)
	}
	assert.NotEqual(t, BehaviorIdle, c.Behavior)
}

func TestAIForcesShotUnderClockPressure(t *testing.T) {
	profile := DifficultyByName("pro")
	c, self, _, ball, rules := newTestAI(t, profile)
	self.HasBall = true
	ball.AttachTo(self)
	rules.StartLiveBall()
	rules.ShotClock = profile.ForceShotAt - 1

	c.decide()
	assert.Equal(t, BehaviorShoot, c.Behavior)
	assert.Greater(t, c.targetPower, 0.0)
}

func TestAITakesOpenLayup(t *testing.T) {
	profile := DifficultyByName("pro")
	c, self, opp, ball, rules := newTestAI(t, profile)
	self.Pos = RimCenter.Add(geom.Vec2{Y: aiLayupRange - 0.3})
	self.HasBall = true
	opp.Pos = geom.Vec2{X: 2, Y: 9} // far away, no contest
	ball.AttachTo(self)
	rules.StartLiveBall()

	c.decide()
	assert.Equal(t, BehaviorLayup, c.Behavior)
}

func TestAIDefenseStates(t *testing.T) {
	profile := DifficultyByName("pro")

	t.Run("rebounds a loose ball", func(t *testing.T) {
		c, _, opp, ball, _ := newTestAI(t, profile)
		opp.HasBall = false
		ball.State = BallFree
		ball.Pos = geom.Vec2{X: 4, Y: 4}

		c.decide()
		assert.Equal(t, BehaviorRebound, c.Behavior)
	})

	t.Run("contests a charging shooter", func(t *testing.T) {
		c, _, opp, _, _ := newTestAI(t, profile)
		opp.HasBall = true
		opp.ShotCharging = true

		c.decide()
		assert.Equal(t, BehaviorDefendContest, c.Behavior)
	})

	t.Run("presses the handler's lane", func(t *testing.T) {
		c, _, opp, _, _ := newTestAI(t, profile)
		opp.HasBall = true

		c.decide()
		require.Equal(t, BehaviorDefendPress, c.Behavior)

		// The press spot sits between the handler and the rim.
		spot := c.pressTarget()
		assert.Less(t, spot.Dist(RimCenter), opp.Pos.Dist(RimCenter))
		assert.InDelta(t, profile.DefenseDistance, spot.Dist(opp.Pos), 1e-9)
	})
}

func TestShootDesireOnlyContestedInLane(t *testing.T) {
	profile := DifficultyByName("pro")
	c, self, opp, _, _ := newTestAI(t, profile)
	self.Pos = geom.Vec2{X: RimX, Y: RimY + 4}

	// Trailing defender: tight but behind the shooter, off the lane.
	opp.Pos = self.Pos.Add(geom.Vec2{Y: aiContestRange})
	open := c.shootDesire(4, aiContestRange)

	// Same separation on the rim side of the shooter.
	opp.Pos = self.Pos.Add(geom.Vec2{Y: -aiContestRange})
	contested := c.shootDesire(4, aiContestRange)

	assert.Less(t, contested, open, "only a defender in the lane suppresses the shot")
}

func TestAINeverAbandonsChargeInProgress(t *testing.T) {
	profile := DifficultyByName("pro")
	c, self, _, ball, rules := newTestAI(t, profile)
	self.HasBall = true
	ball.AttachTo(self)
	rules.StartLiveBall()
	self.StartShot(0)

	c.decide()
	assert.Equal(t, BehaviorShoot, c.Behavior)
}

func TestAIShootProtocolReleases(t *testing.T) {
	profile := DifficultyByName("legend")
	c, self, opp, ball, rules := newTestAI(t, profile)
	self.Pos = geom.Vec2{X: RimX, Y: RimY + 3}
	self.HasBall = true
	opp.Pos = geom.Vec2{X: 2, Y: 9}
	ball.AttachTo(self)
	rules.StartLiveBall()

	c.Behavior = BehaviorShoot
	c.targetPower = OptimalCharge(3 - HandReach)

	var launch *Launch
	for i := 0; i < TickRate*2 && launch == nil; i++ {
		l, _ := c.Update(DT)
		launch = l
	}

	require.NotNil(t, launch, "charge reached target power and released")
	assert.False(t, self.HasBall)
	assert.False(t, self.ShotCharging)
	assert.Greater(t, launch.VZ, 0.0)
	assert.Equal(t, BehaviorIdle, c.Behavior)
}

func TestAICheckBallWaitsOutReaction(t *testing.T) {
	profile := DifficultyByName("pro")
	c, self, _, ball, _ := newTestAI(t, profile)
	self.Pos = CheckAttackSpot
	self.HasBall = true
	ball.AttachTo(self)

	waitTicks := int(profile.ReactionTime/DT) - 2
	for i := 0; i < waitTicks; i++ {
		c.CheckBallAdvance(DT)
		self.Step(DT)
	}
	assert.False(t, c.CheckBallReady())
	assert.Less(t, self.Vel.Len(), StartMoveSpeed, "holds still during the pause")

	for i := 0; i < 10; i++ {
		c.CheckBallAdvance(DT)
		self.Step(DT)
	}
	assert.True(t, c.CheckBallReady())
	assert.Greater(t, self.Vel.Len(), StartMoveSpeed, "drive begins after the pause")
}

func TestAIResetClearsIntent(t *testing.T) {
	profile := DifficultyByName("pro")
	c, _, _, _, _ := newTestAI(t, profile)
	c.Behavior = BehaviorShoot
	c.targetPower = 0.8
	c.checkElapsed = 5

	c.Reset()

	assert.Equal(t, BehaviorIdle, c.Behavior)
	assert.Zero(t, c.targetPower)
	assert.False(t, c.CheckBallReady())
}
