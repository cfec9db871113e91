package game

// Snapshot is the read-only state export consumed by rendering, HUD and
// the end-of-match summary. It copies values; holding one never aliases
// live simulation state.
type Snapshot struct {
	Tick    uint64            `json:"tick"`
	Phase   string            `json:"phase"`
	Players [2]PlayerSnapshot `json:"players"`
	Ball    BallSnapshot      `json:"ball"`

	Score      [2]int       `json:"score"`
	Possession string       `json:"possession"`
	ShotClock  float64      `json:"shotClock"`
	Unlimited  bool         `json:"unlimitedClock"`
	Stats      [2]SideStats `json:"stats"`
	Winner     int8         `json:"winner"`

	AIBehavior string `json:"aiBehavior"`
}

type PlayerSnapshot struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	VX           float64 `json:"vx"`
	VY           float64 `json:"vy"`
	Facing       float64 `json:"facing"`
	Stamina      float64 `json:"stamina"`
	HasBall      bool    `json:"hasBall"`
	Sprinting    bool    `json:"sprinting"`
	ShotCharging bool    `json:"shotCharging"`
	ShotPower    float64 `json:"shotPower"`
	Anim         string  `json:"anim"`
}

type BallSnapshot struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	VZ          float64 `json:"vz"`
	State       string  `json:"state"`
	Holder      int8    `json:"holder"`
	OutOfBounds bool    `json:"outOfBounds"`
}

func snapshotPlayer(p *Player) PlayerSnapshot {
	return PlayerSnapshot{
		X:            p.Pos.X,
		Y:            p.Pos.Y,
		VX:           p.Vel.X,
		VY:           p.Vel.Y,
		Facing:       p.Facing,
		Stamina:      p.Stamina,
		HasBall:      p.HasBall,
		Sprinting:    p.Sprinting,
		ShotCharging: p.ShotCharging,
		ShotPower:    p.ShotPower,
		Anim:         p.Anim.String(),
	}
}

func snapshotBall(b *Ball) BallSnapshot {
	return BallSnapshot{
		X:           b.Pos.X,
		Y:           b.Pos.Y,
		Z:           b.Z,
		VX:          b.Vel.X,
		VY:          b.Vel.Y,
		VZ:          b.VZ,
		State:       b.State.String(),
		Holder:      b.HolderID,
		OutOfBounds: b.OutOfBounds,
	}
}
