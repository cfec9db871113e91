package game

import "strings"

// DifficultyProfile tunes the AI opponent. All durations in seconds.
type DifficultyProfile struct {
	Name            string  `json:"name"`
	DecisionDelay   float64 `json:"decisionDelay"`   // AI re-evaluates intent this often
	ReactionTime    float64 `json:"reactionTime"`    // check-ball pause before the AI starts its move
	ShotAccuracy    float64 `json:"shotAccuracy"`    // 0..1, scales aim and power jitter
	DefenseDistance float64 `json:"defenseDistance"` // meters the AI keeps between handler and rim
	StealChance     float64 `json:"stealChance"`     // base success probability at zero distance
	ForceShotAt     float64 `json:"forceShotAt"`     // shot clock threshold forcing a shoot decision
}

var difficulties = map[string]DifficultyProfile{
	"easy": {
		Name:            "easy",
		DecisionDelay:   0.9,
		ReactionTime:    1.8,
		ShotAccuracy:    0.55,
		DefenseDistance: 1.6,
		StealChance:     0.2,
		ForceShotAt:     3.0,
	},
	"pro": {
		Name:            "pro",
		DecisionDelay:   0.5,
		ReactionTime:    1.1,
		ShotAccuracy:    0.75,
		DefenseDistance: 1.2,
		StealChance:     0.35,
		ForceShotAt:     4.0,
	},
	"legend": {
		Name:            "legend",
		DecisionDelay:   0.25,
		ReactionTime:    0.6,
		ShotAccuracy:    0.92,
		DefenseDistance: 0.9,
		StealChance:     0.5,
		ForceShotAt:     5.0,
	},
}

const defaultDifficulty = "pro"

// DifficultyByName resolves a profile, falling back to the default on an
// unknown key.
func DifficultyByName(name string) DifficultyProfile {
	if p, ok := difficulties[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return difficulties[defaultDifficulty]
}

// ScoringPreset sets the point values inside and beyond the arc.
type ScoringPreset struct {
	Name    string `json:"name"`
	Inside  int    `json:"inside"`
	Outside int    `json:"outside"`
}

var scoringPresets = map[string]ScoringPreset{
	"streetball": {Name: "streetball", Inside: 1, Outside: 2},
	"league":     {Name: "league", Inside: 2, Outside: 3},
}

const defaultScoring = "streetball"

// ScoringByName resolves a preset, falling back to streetball.
func ScoringByName(name string) ScoringPreset {
	if p, ok := scoringPresets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return scoringPresets[defaultScoring]
}

// Settings is the read-only match configuration, fixed at match start.
type Settings struct {
	Difficulty       DifficultyProfile `json:"difficulty"`
	Scoring          ScoringPreset     `json:"scoring"`
	ShotClockSeconds float64           `json:"shotClockSeconds"` // 0 = unlimited
	TargetScore      int               `json:"targetScore"`
	Seed             int64             `json:"-"`
}

func DefaultSettings() Settings {
	return Settings{
		Difficulty:       DifficultyByName(defaultDifficulty),
		Scoring:          ScoringByName(defaultScoring),
		ShotClockSeconds: 14,
		TargetScore:      11,
		Seed:             1,
	}
}
