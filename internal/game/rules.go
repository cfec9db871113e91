package game

import "github.com/vkarpenko/halfcourt/internal/geom"

// Phase is the authoritative game-flow state.
type Phase uint8

const (
	PhaseCheckBall Phase = iota
	PhaseLiveBall
	PhaseFreeThrow
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseCheckBall:
		return "checkBall"
	case PhaseLiveBall:
		return "liveBall"
	case PhaseFreeThrow:
		return "freeThrow"
	default:
		return "gameOver"
	}
}

// Rules owns possession, the shot clock, scoring and the win condition.
type Rules struct {
	Score      [2]int
	Possession Side
	Phase      Phase

	ShotClock       float64
	ShotClockActive bool

	Stats  [2]SideStats
	Winner int8 // -1 until gameOver

	clockDuration float64 // 0 = unlimited
	scoring       ScoringPreset
	targetScore   int
}

func NewRules(s Settings) *Rules {
	r := &Rules{
		clockDuration: s.ShotClockSeconds,
		scoring:       s.Scoring,
		targetScore:   s.TargetScore,
	}
	r.Reset()
	return r
}

// Reset reinitializes for a rematch without recreating the object graph.
func (r *Rules) Reset() {
	r.Score = [2]int{}
	r.Possession = SideHuman
	r.Phase = PhaseCheckBall
	r.ShotClock = r.clockDuration
	r.ShotClockActive = false
	r.Stats = [2]SideStats{}
	r.Winner = -1
}

// Unlimited reports whether the shot clock is disabled.
func (r *Rules) Unlimited() bool { return r.clockDuration <= 0 }

// ChangePossession is the single authoritative possession mutator; it
// always resets the shot clock.
func (r *Rules) ChangePossession(side Side) {
	r.Possession = side
	r.ShotClock = r.clockDuration
}

// StartLiveBall exits checkBall and arms the shot clock.
func (r *Rules) StartLiveBall() {
	if r.Phase != PhaseCheckBall {
		return
	}
	r.Phase = PhaseLiveBall
	r.ShotClockActive = !r.Unlimited()
}

// ResetToCheckBall is the administrative escape hatch: back to the check
// without touching scores or possession.
func (r *Rules) ResetToCheckBall() {
	if r.Phase == PhaseGameOver {
		return
	}
	r.Phase = PhaseCheckBall
	r.ShotClockActive = false
}

// RecordShot counts an attempt for the side.
func (r *Rules) RecordShot(side Side) {
	r.Stats[side].Shots++
}

// ScorePoints credits a make from (x, y), computes the point value from
// the shot's distance to the rim, passes the ball back to the scorer
// (this ruleset re-checks to the scoring side) and evaluates the win
// condition. Returns the points awarded.
func (r *Rules) ScorePoints(side Side, x, y float64) int {
	if r.Phase == PhaseGameOver {
		return 0
	}

	points := r.scoring.Inside
	if (geom.Vec2{X: x, Y: y}).Dist(RimCenter) > ThreePointRadius {
		points = r.scoring.Outside
	}
	r.Score[side] += points
	r.Stats[side].Makes++

	r.ChangePossession(side)
	r.ShotClockActive = false
	r.Phase = PhaseCheckBall
	r.checkWin()
	return points
}

// HandleShotClockViolation flips possession and forces the check.
func (r *Rules) HandleShotClockViolation() {
	if r.Phase != PhaseLiveBall {
		return
	}
	r.ChangePossession(r.Possession.Other())
	r.ShotClockActive = false
	r.Phase = PhaseCheckBall
}

// HandleFoul moves to the free-throw phase with the fouled side at the line.
func (r *Rules) HandleFoul(fouled Side) {
	if r.Phase == PhaseGameOver {
		return
	}
	r.Stats[fouled.Other()].Fouls++
	r.ChangePossession(fouled)
	r.ShotClockActive = false
	r.Phase = PhaseFreeThrow
}

// ProcessFreeThrow credits one point on a make and returns to the check.
func (r *Rules) ProcessFreeThrow(made bool) {
	if r.Phase != PhaseFreeThrow {
		return
	}
	if made {
		r.Score[r.Possession]++
	}
	r.Phase = PhaseCheckBall
	r.ShotClock = r.clockDuration
	r.checkWin()
}

// TickClock decrements the live shot clock; reports expiry.
func (r *Rules) TickClock(dt float64) bool {
	if !r.ShotClockActive || r.Phase != PhaseLiveBall {
		return false
	}
	r.ShotClock -= dt
	if r.ShotClock <= 0 {
		r.ShotClock = 0
		return true
	}
	return false
}

func (r *Rules) checkWin() {
	for side, score := range r.Score {
		if score >= r.targetScore {
			r.Phase = PhaseGameOver
			r.Winner = int8(side)
			r.ShotClockActive = false
			return
		}
	}
}
