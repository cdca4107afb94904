package difficulty

import (
	"math"
	"time"
)

// SessionMetrics is live telemetry for a single study session.
// It is supplied per call and never stored by the engine.
type SessionMetrics struct {
	StartTime             time.Time `json:"start_time"`
	EndTime               time.Time `json:"end_time"`
	CorrectAnswers        int       `json:"correct_answers"`
	IncorrectAnswers      int       `json:"incorrect_answers"`
	AverageResponseTime   float64   `json:"average_response_time"` // seconds
	DifficultyProgression []Level   `json:"difficulty_progression,omitempty"`
	EngagementScore       float64   `json:"engagement_score"`       // 0-100
	FrustrationIndicators float64   `json:"frustration_indicators"` // 0-100
	FlowStateDuration     float64   `json:"flow_state_duration"`    // minutes
}

// Normalize returns a copy with every field forced into its documented
// range. Negative counts become zero, scores are clamped to [0,100] and
// NaN or infinite values fall back to zero.
func (m SessionMetrics) Normalize() SessionMetrics {
	out := m
	out.CorrectAnswers = max(0, m.CorrectAnswers)
	out.IncorrectAnswers = max(0, m.IncorrectAnswers)
	out.AverageResponseTime = clamp(finiteOr(m.AverageResponseTime, 0), 0, math.MaxFloat64)
	out.EngagementScore = clamp(finiteOr(m.EngagementScore, 0), 0, 100)
	out.FrustrationIndicators = clamp(finiteOr(m.FrustrationIndicators, 0), 0, 100)
	out.FlowStateDuration = clamp(finiteOr(m.FlowStateDuration, 0), 0, math.MaxFloat64)
	if len(m.DifficultyProgression) > 0 {
		out.DifficultyProgression = make([]Level, len(m.DifficultyProgression))
		for i, l := range m.DifficultyProgression {
			out.DifficultyProgression[i] = clampLevel(l)
		}
	}
	return out
}

// Answered returns the number of answered items in the session,
// saturating at math.MaxInt.
func (m SessionMetrics) Answered() int {
	if m.CorrectAnswers > 0 && m.IncorrectAnswers > math.MaxInt-m.CorrectAnswers {
		return math.MaxInt
	}
	return m.CorrectAnswers + m.IncorrectAnswers
}

// Performance returns the ratio of correct answers. The second return
// value is false when nothing was answered, in which case the ratio is 0.
func (m SessionMetrics) Performance() (float64, bool) {
	total := float64(m.CorrectAnswers) + float64(m.IncorrectAnswers)
	if total <= 0 {
		return 0, false
	}
	return float64(m.CorrectAnswers) / total, true
}

// Duration returns the wall-clock length of the session, or 0 when the
// start or end time is missing or out of order.
func (m SessionMetrics) Duration() time.Duration {
	if m.StartTime.IsZero() || m.EndTime.IsZero() || m.EndTime.Before(m.StartTime) {
		return 0
	}
	return m.EndTime.Sub(m.StartTime)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
