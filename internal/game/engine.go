package game

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/vkarpenko/halfcourt/internal/geom"
)

// Input is the per-tick human input snapshot. Move is pre-normalized by
// the caller; ShootReleased and Action are one-tick edges.
type Input struct {
	Move          geom.Vec2
	Sprint        bool
	ShootHeld     bool
	ShootReleased bool
	Action        bool
}

// Engine owns all simulation state and is the only mutator. One call to
// Step advances exactly one fixed tick.
type Engine struct {
	Players [2]*Player
	Ball    *Ball
	Rules   *Rules
	AI      *AIController

	settings Settings
	rng      *rand.Rand
	sink     Sink
	log      *zap.SugaredLogger

	Tick         uint64
	oobCountdown float64
	ftCountdown  float64
}

func NewEngine(settings Settings, sink Sink, log *zap.SugaredLogger) *Engine {
	if sink == nil {
		sink = NopSink{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	seed := settings.Seed
	if seed == 0 {
		seed = 1
	}

	e := &Engine{
		settings: settings,
		rng:      rand.New(rand.NewSource(seed)),
		sink:     sink,
		log:      log,
	}
	e.Players[SideHuman] = NewPlayer(SideHuman, CheckAttackSpot, StealBaseChance)
	e.Players[SideAI] = NewPlayer(SideAI, CheckDefendSpot, settings.Difficulty.StealChance)
	e.Ball = NewBall()
	e.Rules = NewRules(settings)
	e.AI = NewAIController(e.Players[SideAI], e.Players[SideHuman], e.Ball, e.Rules, settings.Difficulty, e.rng)
	e.setupCheckBall()
	return e
}

func (e *Engine) Settings() Settings { return e.settings }

func (e *Engine) humanPlayer() *Player { return e.Players[SideHuman] }
func (e *Engine) aiPlayer() *Player    { return e.Players[SideAI] }

// holder returns the player currently holding the ball, or nil.
func (e *Engine) holder() *Player {
	if e.Ball.State != BallHeld {
		return nil
	}
	return e.Players[e.Ball.LastHolder()]
}

// Reset reinitializes everything for a rematch, reusing the object graph.
func (e *Engine) Reset() {
	e.Tick = 0
	e.oobCountdown = 0
	e.ftCountdown = 0
	e.Players[SideHuman].Reset(CheckAttackSpot)
	e.Players[SideAI].Reset(CheckDefendSpot)
	e.Rules.Reset()
	e.AI.Reset()
	e.setupCheckBall()
}

// Step advances one fixed simulation tick.
func (e *Engine) Step(in Input) {
	e.Tick++

	switch e.Rules.Phase {
	case PhaseGameOver:
		return
	case PhaseFreeThrow:
		e.stepFreeThrow()
		return
	}

	live := e.Rules.Phase == PhaseLiveBall

	// Human input applies in every phase so the player keeps agency
	// while waiting on a check-ball handoff.
	e.applyHumanInput(in, live)

	if live {
		launch, steal := e.AI.Update(DT)
		if launch != nil {
			e.releaseShot(e.aiPlayer(), *launch)
		}
		if steal {
			e.resolveSteal(e.aiPlayer(), e.humanPlayer())
		}
	} else {
		e.AI.CheckBallAdvance(DT)
	}

	for _, p := range e.Players {
		p.Step(DT)
	}

	if live {
		ResolvePlayerOverlap(e.Players[0], e.Players[1])
	}
	for _, p := range e.Players {
		ClampToCourt(p)
	}

	if h := e.holder(); h != nil {
		e.Ball.SetHoldPoint(h.HandPoint())
	}

	if impact := e.Ball.Step(DT); impact > 0 {
		e.sink.Emit(Event{Kind: EventBounce, Intensity: geom.Clamp(impact/8, 0, 1)})
	}

	if !live {
		e.maybeStartLiveBall()
		return
	}

	e.stepOutOfBounds()
	if e.Rules.Phase != PhaseLiveBall {
		return
	}

	if e.Ball.IsScore() {
		e.handleScore()
		return
	}

	e.stepPickup()

	if e.Rules.TickClock(DT) {
		e.sink.Emit(Event{Kind: EventBuzzer, Side: e.Rules.Possession})
		e.log.Infow("shot clock violation", "possession", e.Rules.Possession.String())
		e.Rules.HandleShotClockViolation()
		e.setupCheckBall()
	}
}

func (e *Engine) applyHumanInput(in Input, live bool) {
	h := e.humanPlayer()
	moving := in.Move.LenSq() > 0
	h.SetSprinting(in.Sprint && moving)
	if moving {
		dir := in.Move.Normalize()
		h.ApplyMovement(dir.X, dir.Y)
	}

	// Shots and special moves only resolve during live play; movement
	// alone is what exits the check.
	if !live {
		return
	}

	if in.ShootHeld {
		if h.HasBall && !h.ShotCharging {
			h.StartShot(RimCenter.Sub(h.Pos).Angle())
		}
		if h.ShotCharging {
			h.ShotAim = RimCenter.Sub(h.Pos).Angle()
			h.ChargeShot(DT)
		}
	}
	if in.ShootReleased && h.ShotCharging {
		if l, ok := h.ExecuteShot(); ok {
			e.releaseShot(h, l)
		}
	}

	if in.Action {
		if h.HasBall {
			if h.PerformStepBack() {
				ClampToCourt(h)
			}
		} else {
			e.resolveSteal(h, e.aiPlayer())
		}
	}
}

func (e *Engine) releaseShot(p *Player, l Launch) {
	e.Rules.RecordShot(p.ID)
	e.Ball.ReleaseFrom(p, l)
	e.log.Debugw("shot released",
		"side", p.ID.String(),
		"speed", l.Vel.Len(),
		"dist", p.Pos.Dist(RimCenter))
}

func (e *Engine) resolveSteal(att, target *Player) {
	dist := att.Pos.Dist(target.Pos)
	onCooldown := att.StealCooldownT > 0

	if att.AttemptSteal(target, e.rng) {
		target.HasBall = false
		target.ShotCharging = false
		target.ShotPower = 0
		att.HasBall = true
		e.Ball.AttachTo(att)
		if e.Rules.Possession != att.ID {
			e.Rules.ChangePossession(att.ID)
		}
		e.sink.Emit(Event{Kind: EventSteal, Side: att.ID})
		e.log.Infow("steal", "by", att.ID.String(), "dist", dist)
		return
	}

	// A genuine reach-in up close risks a foul.
	if !onCooldown && target.HasBall && target.InvulnerableTime <= 0 && dist < StealRange*0.5 {
		if e.rng.Float64() < ReachInFoulChance {
			e.callFoul(att.ID, target.ID)
		}
	}
}

func (e *Engine) callFoul(by, fouled Side) {
	e.Rules.HandleFoul(fouled)
	e.ftCountdown = FreeThrowDelay

	shooter := e.Players[fouled]
	other := e.Players[fouled.Other()]
	shooter.Pos, shooter.Vel = FreeThrowSpot, geom.Vec2{}
	other.Pos, other.Vel = FreeThrowWaitPos, geom.Vec2{}
	shooter.Facing = RimCenter.Sub(shooter.Pos).Angle()
	shooter.HasBall = true
	shooter.ShotCharging = false
	shooter.ShotPower = 0
	other.HasBall = false
	other.ShotCharging = false
	other.ShotPower = 0
	e.Ball.AttachTo(shooter)

	e.sink.Emit(Event{Kind: EventWhistle, Side: fouled})
	e.log.Infow("foul", "by", by.String(), "freeThrow", fouled.String())
}

func (e *Engine) stepFreeThrow() {
	e.Ball.Step(DT)

	e.ftCountdown -= DT
	if e.ftCountdown > 0 {
		return
	}

	shooter := e.Rules.Possession
	chance := HumanFreeThrowChance
	if shooter == SideAI {
		chance = geom.Lerp(0.55, 0.95, e.settings.Difficulty.ShotAccuracy)
	}
	made := e.rng.Float64() < chance

	e.Rules.ProcessFreeThrow(made)
	if made {
		e.sink.Emit(Event{Kind: EventScore, Side: shooter, Points: 1})
	}
	e.log.Infow("free throw", "side", shooter.String(), "made", made)

	if e.Rules.Phase == PhaseGameOver {
		e.logGameOver()
		return
	}
	e.setupCheckBall()
}

// maybeStartLiveBall watches for the check-ball exit: the handler's
// first meaningful movement, or the AI's elapsed reaction delay.
func (e *Engine) maybeStartLiveBall() {
	h := e.holder()
	if h == nil {
		return
	}
	if h.Vel.Len() > StartMoveSpeed || (h.ID == SideAI && e.AI.CheckBallReady()) {
		e.Rules.StartLiveBall()
		e.sink.Emit(Event{Kind: EventCheck, Side: h.ID})
	}
}

// stepOutOfBounds runs the recovery countdown: armed while the ball sits
// outside the court, canceled on re-entry, and on expiry the side that
// did not last hold the ball takes over at the check.
func (e *Engine) stepOutOfBounds() {
	b := e.Ball
	if b.State == BallHeld || b.InCourt() {
		e.oobCountdown = 0
		return
	}
	if e.oobCountdown == 0 {
		e.oobCountdown = OOBRecoverySecs
	}
	e.oobCountdown -= DT
	if e.oobCountdown > 0 {
		return
	}

	award := b.LastHolder().Other()
	e.Rules.ChangePossession(award)
	e.Rules.ResetToCheckBall()
	e.sink.Emit(Event{Kind: EventWhistle, Side: award})
	e.log.Infow("out of bounds", "lastHolder", b.LastHolder().String(), "award", award.String())
	e.setupCheckBall()
}

func (e *Engine) handleScore() {
	scorer := e.Ball.LastHolder()
	origin := e.Ball.ShotOrigin()
	points := e.Rules.ScorePoints(scorer, origin.X, origin.Y)
	e.sink.Emit(Event{Kind: EventScore, Side: scorer, Points: points})
	e.log.Infow("score",
		"side", scorer.String(),
		"points", points,
		"score", e.Rules.Score,
		"from", origin)

	if e.Rules.Phase == PhaseGameOver {
		e.logGameOver()
		return
	}
	e.setupCheckBall()
}

func (e *Engine) stepPickup() {
	b := e.Ball
	if !b.CanPickUp() {
		return
	}
	for _, p := range e.Players {
		if p.Pos.Dist(b.Pos) <= PickupRadius {
			e.pickUp(p)
			return
		}
	}
}

func (e *Engine) pickUp(p *Player) {
	e.Players[p.ID.Other()].HasBall = false
	p.HasBall = true
	e.Ball.AttachTo(p)
	if e.Rules.Possession != p.ID {
		e.Rules.ChangePossession(p.ID)
	}
}

// setupCheckBall places both players at their check spots and hands the
// ball to the possession side.
func (e *Engine) setupCheckBall() {
	attacker := e.Players[e.Rules.Possession]
	defender := e.Players[e.Rules.Possession.Other()]

	attacker.Pos, attacker.Vel = CheckAttackSpot, geom.Vec2{}
	defender.Pos, defender.Vel = CheckDefendSpot, geom.Vec2{}
	attacker.Facing = RimCenter.Sub(attacker.Pos).Angle()
	defender.Facing = attacker.Pos.Sub(defender.Pos).Angle()

	for _, p := range e.Players {
		p.HasBall = false
		p.ShotCharging = false
		p.ShotPower = 0
		p.Sprinting = false
	}
	attacker.HasBall = true
	e.Ball.AttachTo(attacker)

	e.oobCountdown = 0
	e.AI.Reset()
}

func (e *Engine) logGameOver() {
	e.log.Infow("game over", "winner", Side(e.Rules.Winner).String(), "score", e.Rules.Score)
}

// Snapshot exports a read-only copy of the full world state.
func (e *Engine) Snapshot() Snapshot {
	r := e.Rules
	return Snapshot{
		Tick:  e.Tick,
		Phase: r.Phase.String(),
		Players: [2]PlayerSnapshot{
			snapshotPlayer(e.Players[0]),
			snapshotPlayer(e.Players[1]),
		},
		Ball:       snapshotBall(e.Ball),
		Score:      r.Score,
		Possession: r.Possession.String(),
		ShotClock:  r.ShotClock,
		Unlimited:  r.Unlimited(),
		Stats:      r.Stats,
		Winner:     r.Winner,
		AIBehavior: e.AI.Behavior.String(),
	}
}
