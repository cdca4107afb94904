package content

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
)

// StudyContext says what the learner is doing with the content. It is
// carried through generation but does not change the output yet.
type StudyContext string

const (
	ContextStudy    StudyContext = "study"
	ContextReview   StudyContext = "review"
	ContextPractice StudyContext = "practice"
)

// ParseStudyContext validates a context name. Empty means study.
func ParseStudyContext(s string) (StudyContext, error) {
	switch StudyContext(s) {
	case "":
		return ContextStudy, nil
	case ContextStudy, ContextReview, ContextPractice:
		return StudyContext(s), nil
	}
	return ContextStudy, fmt.Errorf("unknown study context %q (want study, review or practice)", s)
}

// Transform names the placeholder rewrite applied to a variation.
type Transform string

const (
	TransformNone       Transform = "none"
	TransformSimplify   Transform = "simplify"
	TransformComplexify Transform = "complexify"
)

// AdaptiveContent is a content item tailored to one learner. It is
// computed fresh on every call and never persisted.
type AdaptiveContent struct {
	ID              uuid.UUID        `json:"id"`
	BaseDifficulty  difficulty.Level `json:"base_difficulty"`
	Content         any              `json:"content"`
	Hints           []string         `json:"hints"`
	Variations      []Variation      `json:"variations"`
	CognitiveDemand float64          `json:"cognitive_demand"` // [1,10]
	EstimatedTime   int              `json:"estimated_time"`   // seconds
	Context         StudyContext     `json:"context"`
}

// Variation is one level-specific rendering of the content.
type Variation struct {
	Level          difficulty.Level `json:"level"`
	Content        any              `json:"content"`
	Hints          []string         `json:"hints"`
	TimeMultiplier float64          `json:"time_multiplier"`
	Transform      Transform        `json:"transform"`
	Strength       float64          `json:"strength"`
}

// EstimatedTime scales a base estimate (seconds) by the variation's
// multiplier, rounding down.
func (v Variation) EstimatedTime(base int) int {
	return int(math.Floor(float64(base) * v.TimeMultiplier))
}
