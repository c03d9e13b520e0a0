package persona

import (
	"errors"
	"fmt"
	"time"
)

// DifficultyLevel is a 1-5 ordinal. Level 5 alone enables hangup logic.
type DifficultyLevel int

const (
	DifficultyIntro    DifficultyLevel = 1
	DifficultyEasy     DifficultyLevel = 2
	DifficultyStandard DifficultyLevel = 3
	DifficultyHard     DifficultyLevel = 4
	DifficultyBrutal   DifficultyLevel = 5
)

// ErrUnknownDifficulty is returned for levels outside 1-5.
var ErrUnknownDifficulty = errors.New("persona: unknown difficulty level")

// DifficultyModifier scales prospect behavior. Cooperation and InfoSharing are
// multipliers in (0,1]; ObjectionFrequency grows with difficulty. ResponseDelay
// only affects pacing, never correctness.
type DifficultyModifier struct {
	Level              DifficultyLevel
	Label              string
	Cooperation        float64
	InfoSharing        float64
	ObjectionFrequency float64
	ResponseDelay      time.Duration
	HangupEnabled      bool
}

// Difficulty looks up the modifier for a level.
func (r *Registry) Difficulty(level DifficultyLevel) (DifficultyModifier, error) {
	mod, ok := r.difficulties[level]
	if !ok {
		return DifficultyModifier{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, level)
	}
	return mod, nil
}

func defaultDifficulties() map[DifficultyLevel]DifficultyModifier {
	return map[DifficultyLevel]DifficultyModifier{
		DifficultyIntro: {
			Level:              DifficultyIntro,
			Label:              "intro",
			Cooperation:        1.0,
			InfoSharing:        1.0,
			ObjectionFrequency: 0.2,
			ResponseDelay:      0,
		},
		DifficultyEasy: {
			Level:              DifficultyEasy,
			Label:              "easy",
			Cooperation:        0.9,
			InfoSharing:        0.85,
			ObjectionFrequency: 0.4,
			ResponseDelay:      500 * time.Millisecond,
		},
		DifficultyStandard: {
			Level:              DifficultyStandard,
			Label:              "standard",
			Cooperation:        0.75,
			InfoSharing:        0.65,
			ObjectionFrequency: 0.6,
			ResponseDelay:      time.Second,
		},
		DifficultyHard: {
			Level:              DifficultyHard,
			Label:              "hard",
			Cooperation:        0.55,
			InfoSharing:        0.45,
			ObjectionFrequency: 0.8,
			ResponseDelay:      2 * time.Second,
		},
		DifficultyBrutal: {
			Level:              DifficultyBrutal,
			Label:              "brutal",
			Cooperation:        0.35,
			InfoSharing:        0.25,
			ObjectionFrequency: 1.0,
			ResponseDelay:      3 * time.Second,
			HangupEnabled:      true,
		},
	}
}
