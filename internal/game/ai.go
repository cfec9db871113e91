package game

import (
	"math/rand"

	"github.com/vkarpenko/halfcourt/internal/geom"
)

// Behavior labels the AI's current intent.
type Behavior uint8

const (
	BehaviorIdle Behavior = iota
	BehaviorAttackDrive
	BehaviorAttackProbe
	BehaviorShoot
	BehaviorLayup
	BehaviorDefendPress
	BehaviorDefendContest
	BehaviorRebound
)

func (b Behavior) String() string {
	switch b {
	case BehaviorAttackDrive:
		return "attack_drive"
	case BehaviorAttackProbe:
		return "attack_probe"
	case BehaviorShoot:
		return "shoot"
	case BehaviorLayup:
		return "layup"
	case BehaviorDefendPress:
		return "defend_press"
	case BehaviorDefendContest:
		return "defend_contest"
	case BehaviorRebound:
		return "rebound"
	default:
		return "idle"
	}
}

// AI movement tuning
const (
	aiArriveRadius   = 0.25
	aiSprintDistance = 3.0
	aiProbeDistance  = 4.5
	aiProbeArc       = 0.55 // radians of lateral probe offset
	aiDriveStandoff  = 1.4
	aiLayupRange     = 2.3
	aiLayupFinish    = 1.1
	aiContestRange   = 1.3
	aiStealPerSecond = 0.8  // attempt rate while pressing in range
	aiMaxAimJitter   = 0.12 // radians at zero accuracy
	aiLayupChargeMul = 6.0
)

// AIController drives the AI-controlled player. Its intent is
// re-evaluated only every DecisionDelay seconds as a reaction-time
// model; between decisions executeState pursues the current target.
type AIController struct {
	self  *Player
	opp   *Player
	ball  *Ball
	rules *Rules

	profile DifficultyProfile
	rng     *rand.Rand

	Behavior    Behavior
	decideIn    float64
	target      geom.Vec2
	targetPower float64

	checkElapsed float64
}

func NewAIController(self, opp *Player, ball *Ball, rules *Rules, profile DifficultyProfile, rng *rand.Rand) *AIController {
	c := &AIController{
		self:    self,
		opp:     opp,
		ball:    ball,
		rules:   rules,
		profile: profile,
		rng:     rng,
	}
	c.Reset()
	return c
}

func (c *AIController) Reset() {
	c.Behavior = BehaviorIdle
	c.decideIn = c.profile.DecisionDelay
	c.target = c.self.Pos
	c.targetPower = 0
	c.checkElapsed = 0
}

// Update runs one live-ball AI tick: a throttled re-decision, then the
// current behavior. Returns a shot launch when a shot was released this
// tick, and whether the AI wants to attempt a steal.
func (c *AIController) Update(dt float64) (*Launch, bool) {
	c.decideIn -= dt
	if c.decideIn <= 0 {
		c.decide()
		c.decideIn = c.profile.DecisionDelay
	}
	return c.executeState(dt)
}

// CheckBallAdvance is the simplified scripted check-ball behavior: on
// offense, wait out the reaction time and then start the drive; on
// defense, hold a spot on the handler's lane to the rim.
func (c *AIController) CheckBallAdvance(dt float64) {
	if c.self.HasBall {
		c.checkElapsed += dt
		if c.checkElapsed < c.profile.ReactionTime {
			c.self.SetSprinting(false)
			return
		}
		c.Behavior = BehaviorAttackDrive
		c.target = c.driveTarget()
		dir := c.target.Sub(c.self.Pos).Normalize()
		c.self.ApplyMovement(dir.X, dir.Y)
		return
	}
	c.Behavior = BehaviorDefendPress
	c.moveToward(c.pressTarget())
}

// CheckBallReady reports whether the scripted offense has waited out its
// reaction delay and begun the attack.
func (c *AIController) CheckBallReady() bool {
	return c.checkElapsed >= c.profile.ReactionTime
}

func (c *AIController) decide() {
	if c.self.HasBall {
		// A shot in progress is never abandoned mid-charge.
		if c.self.ShotCharging {
			c.Behavior = BehaviorShoot
			return
		}
		c.decideOffense()
	} else {
		c.decideDefense()
	}
}

func (c *AIController) decideOffense() {
	dist := c.self.Pos.Dist(RimCenter)
	openness := c.opp.Pos.Dist(c.self.Pos)

	if c.rules.ShotClockActive && c.rules.ShotClock <= c.profile.ForceShotAt {
		c.decideShoot(dist)
		return
	}

	if dist <= aiLayupRange && openness > aiContestRange {
		c.Behavior = BehaviorLayup
		c.target = RimCenter
		return
	}

	if c.rng.Float64() < c.shootDesire(dist, openness) {
		c.decideShoot(dist)
		return
	}

	if dist > aiProbeDistance {
		c.Behavior = BehaviorAttackDrive
		c.target = c.driveTarget()
		return
	}

	// Already close: probe laterally around the arc at the same radius.
	c.Behavior = BehaviorAttackProbe
	ang := c.self.Pos.Sub(RimCenter).Angle()
	side := 1.0
	if c.rng.Intn(2) == 0 {
		side = -1.0
	}
	c.target = RimCenter.Add(geom.FromAngle(ang+side*aiProbeArc, dist))
}

// shootDesire grows with proximity to the rim and with openness. A
// defender only suppresses it when actually in the shooting lane, not
// when trailing behind the shooter.
func (c *AIController) shootDesire(dist, openness float64) float64 {
	p := geom.Clamp(0.9-dist*0.11, 0.05, 0.65)
	lane := RimCenter.Sub(c.self.Pos).Normalize()
	if openness < aiContestRange*1.5 && c.opp.Pos.Sub(c.self.Pos).Dot(lane) > 0 {
		p *= 0.35
	}
	return p
}

func (c *AIController) decideShoot(dist float64) {
	c.Behavior = BehaviorShoot
	jitter := (c.rng.Float64()*2 - 1) * (1 - c.profile.ShotAccuracy) * 0.3
	c.targetPower = geom.Clamp(OptimalCharge(dist-HandReach)*(1+jitter), ShotMinPower, ShotMaxPower)
}

func (c *AIController) decideDefense() {
	if !c.opp.HasBall {
		c.Behavior = BehaviorRebound
		c.target = c.ball.Pos
		return
	}
	if c.opp.ShotCharging {
		c.Behavior = BehaviorDefendContest
		c.target = c.opp.Pos
		return
	}
	c.Behavior = BehaviorDefendPress
	c.target = c.pressTarget()
}

// driveTarget is a point just short of the rim, off-center so drives
// don't run straight through the defender every time.
func (c *AIController) driveTarget() geom.Vec2 {
	ang := c.self.Pos.Sub(RimCenter).Angle()
	ang += (c.rng.Float64()*2 - 1) * 0.3
	return RimCenter.Add(geom.FromAngle(ang, aiDriveStandoff))
}

// pressTarget cuts the handler's lane to the rim rather than chasing the
// handler's raw position.
func (c *AIController) pressTarget() geom.Vec2 {
	lane := RimCenter.Sub(c.opp.Pos).Normalize()
	return c.opp.Pos.Add(lane.Scale(c.profile.DefenseDistance))
}

// executeState drives the current behavior for one tick. Defensive
// targets re-track the opponent every tick; the behavior label itself
// only changes on the decision cadence.
func (c *AIController) executeState(dt float64) (*Launch, bool) {
	switch c.Behavior {
	case BehaviorIdle:
		c.self.SetSprinting(false)
		return nil, false

	case BehaviorAttackDrive, BehaviorAttackProbe:
		if !c.self.HasBall {
			c.Behavior = BehaviorIdle
			return nil, false
		}
		c.moveToward(c.target)
		return nil, false

	case BehaviorRebound:
		c.target = c.ball.Pos
		c.moveToward(c.target)
		return nil, false

	case BehaviorDefendPress:
		c.target = c.pressTarget()
		c.moveToward(c.target)
		return nil, c.wantSteal(dt)

	case BehaviorDefendContest:
		c.target = c.opp.Pos
		c.moveToward(c.target)
		return nil, c.wantSteal(dt)

	case BehaviorShoot:
		return c.runShot(dt, c.targetPower, 1.0), false

	case BehaviorLayup:
		if !c.self.HasBall {
			c.Behavior = BehaviorIdle
			return nil, false
		}
		if c.self.Pos.Dist(RimCenter) > aiLayupFinish {
			c.moveToward(RimCenter)
			return nil, false
		}
		// Quick release: charge fast, small jitter, high percentage.
		return c.runShot(dt*aiLayupChargeMul, OptimalCharge(c.self.Pos.Dist(RimCenter)-HandReach), 0.3), false
	}
	return nil, false
}

// runShot advances the multi-tick shoot protocol against the shared
// charge contract, releasing once the charge reaches the target power.
func (c *AIController) runShot(dt, targetPower, jitterScale float64) *Launch {
	if !c.self.HasBall {
		c.Behavior = BehaviorIdle
		return nil
	}
	if !c.self.ShotCharging {
		c.self.SetSprinting(false)
		c.self.StartShot(c.aimAtRim(jitterScale))
		return nil
	}
	c.self.ChargeShot(dt)
	if c.self.ShotPower < targetPower {
		return nil
	}
	if l, ok := c.self.ExecuteShot(); ok {
		c.Behavior = BehaviorIdle
		return &l
	}
	return nil
}

func (c *AIController) aimAtRim(jitterScale float64) float64 {
	base := RimCenter.Sub(c.self.Pos).Angle()
	jitter := (c.rng.Float64()*2 - 1) * (1 - c.profile.ShotAccuracy) * aiMaxAimJitter * jitterScale
	return base + jitter
}

func (c *AIController) wantSteal(dt float64) bool {
	if !c.opp.HasBall || c.self.StealCooldownT > 0 {
		return false
	}
	if c.self.Pos.Dist(c.opp.Pos) > StealRange {
		return false
	}
	return c.rng.Float64() < aiStealPerSecond*dt
}

func (c *AIController) moveToward(target geom.Vec2) {
	delta := target.Sub(c.self.Pos)
	dist := delta.Len()
	if dist < aiArriveRadius {
		c.self.SetSprinting(false)
		return
	}
	dir := delta.Normalize()
	c.self.SetSprinting(dist > aiSprintDistance && c.self.Stamina > SprintMinStamina)
	c.self.ApplyMovement(dir.X, dir.Y)
}
