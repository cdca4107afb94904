package profile

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
)

// Assess builds a fresh profile from raw assessment results. It always
// succeeds; missing fields take the documented defaults.
func Assess(userID string, results AssessmentResults, now time.Time) *Profile {
	a := results.Normalize()

	return &Profile{
		UserID:                 userID,
		BaselineDifficulty:     BaselineDifficulty(a.Accuracy, a.AvgResponseTime),
		AttentionSpan:          AttentionSpan(a.SessionDuration, a.AttentionDecay),
		LearningStyle:          DominantStyle(a.Errors),
		FatigueLevel:           InitialFatigueLevel,
		MotivationLevel:        InitialMotivationLevel,
		PreferredChallenge:     PreferredChallenge(a.Accuracy, a.AvgResponseTime),
		CognitiveLoadTolerance: LoadTolerance(a.TaskSwitching, a.MemoryLoad, a.ProcessingSpeed),
		LastAssessment:         now,
	}
}

// BaselineDifficulty picks the starting level from accuracy and average
// response time (seconds). Rows are evaluated top-down; first match wins.
func BaselineDifficulty(accuracy, responseTime float64) difficulty.Level {
	switch {
	case accuracy > 0.85 && responseTime < 20:
		return difficulty.VeryChallenging
	case accuracy > 0.75 && responseTime < 30:
		return difficulty.Challenging
	case accuracy > 0.65 && responseTime < 45:
		return difficulty.Optimal
	case accuracy > 0.5:
		return difficulty.Easy
	default:
		return difficulty.VeryEasy
	}
}

// AttentionSpan estimates sustained attention in minutes.
func AttentionSpan(sessionDuration, attentionDecay float64) float64 {
	return clamp(sessionDuration*(1-attentionDecay), MinAttentionSpan, MaxAttentionSpan)
}

// DominantStyle returns the style with the fewest recorded errors.
// Ties resolve in LearningStyles order.
func DominantStyle(errs map[LearningStyle]float64) LearningStyle {
	best := StyleVisual
	bestCount := errs[StyleVisual]
	for _, style := range LearningStyles()[1:] {
		if errs[style] < bestCount {
			best = style
			bestCount = errs[style]
		}
	}
	return best
}

// PreferredChallenge scores how much stretch a learner enjoys, in [20,80].
func PreferredChallenge(accuracy, responseTime float64) float64 {
	speedBonus := max(0, (45-responseTime)/45) * 20
	accuracyBonus := (accuracy - 0.5) * 40
	return clamp(50+speedBonus+accuracyBonus, MinPreferredChallenge, MaxPreferredChallenge)
}

// LoadTolerance averages the three cognitive sub-scores onto a 0-10 scale.
func LoadTolerance(taskSwitching, memoryLoad, processingSpeed float64) float64 {
	avg := (taskSwitching + memoryLoad + processingSpeed) / 3
	return clamp(avg*10, 0, MaxLoadTolerance)
}

// clamp maps NaN to lo so range invariants hold for any input.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
