package profile

import (
	"fmt"
	"time"

	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
)

// LearningStyle is the modality a learner makes the fewest errors in.
type LearningStyle string

const (
	StyleVisual      LearningStyle = "visual"
	StyleAuditory    LearningStyle = "auditory"
	StyleKinesthetic LearningStyle = "kinesthetic"
	StyleReading     LearningStyle = "reading"
)

// LearningStyles returns all styles in tie-break precedence order.
func LearningStyles() []LearningStyle {
	return []LearningStyle{StyleVisual, StyleAuditory, StyleKinesthetic, StyleReading}
}

// ParseLearningStyle validates a style name.
func ParseLearningStyle(s string) (LearningStyle, error) {
	for _, style := range LearningStyles() {
		if string(style) == s {
			return style, nil
		}
	}
	return StyleVisual, fmt.Errorf("unknown learning style %q", s)
}

// Profile is a learner's cognitive profile. One exists per user; a
// re-assessment replaces it wholesale.
type Profile struct {
	UserID                 string           `json:"user_id"`
	BaselineDifficulty     difficulty.Level `json:"baseline_difficulty"`
	AttentionSpan          float64          `json:"attention_span"` // minutes, [5,90]
	LearningStyle          LearningStyle    `json:"learning_style"`
	FatigueLevel           float64          `json:"fatigue_level"`            // [0,100]
	MotivationLevel        float64          `json:"motivation_level"`         // [0,100]
	PreferredChallenge     float64          `json:"preferred_challenge"`      // [20,80]
	CognitiveLoadTolerance float64          `json:"cognitive_load_tolerance"` // [0,10]
	LastAssessment         time.Time        `json:"last_assessment"`
}

// Initial values for a freshly assessed profile.
const (
	InitialFatigueLevel    = 20
	InitialMotivationLevel = 80
)

// Range limits enforced by the assessor.
const (
	MinAttentionSpan      = 5
	MaxAttentionSpan      = 90
	MinPreferredChallenge = 20
	MaxPreferredChallenge = 80
	MaxLoadTolerance      = 10
)
