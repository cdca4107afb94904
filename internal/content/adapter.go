package content

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
	"github.com/eduardo5010/study-cycle-sub001/internal/profile"
)

// BaseTimeSeconds is the unadjusted time estimate for one content item.
const BaseTimeSeconds = 30

// Cognitive demand scoring.
const (
	BaselineDemand     = 5.0
	MinDemand          = 1.0
	MaxDemand          = 10.0
	WordsPerDemandStep = 20
	LongWordLength     = 8
	EasyDemandFactor   = 0.7
	HardDemandFactor   = 1.3
)

const complexifySuffix = "\n\nConsider the practical applications of this concept and how it connects to related ideas."

var styleTips = map[profile.LearningStyle]string{
	profile.StyleVisual:      "Sketch a diagram or mind map of the key ideas.",
	profile.StyleAuditory:    "Read the material aloud or explain it to someone else.",
	profile.StyleKinesthetic: "Work through a hands-on example step by step.",
	profile.StyleReading:     "Summarize each section in your own written notes.",
}

var simplificationTips = []string{
	"Break the problem into smaller steps.",
	"Review the basic concepts before moving on.",
}

// variationPlan fixes, per level, the time multiplier and the
// placeholder transform with its strength.
var variationPlan = [difficulty.NumLevels]struct {
	multiplier float64
	transform  Transform
	strength   float64
}{
	difficulty.VeryEasy:        {1.5, TransformSimplify, 0.3},
	difficulty.Easy:            {1.2, TransformSimplify, 0.6},
	difficulty.Optimal:         {1.0, TransformNone, 0},
	difficulty.Challenging:     {0.8, TransformComplexify, 0.3},
	difficulty.VeryChallenging: {0.6, TransformComplexify, 0.6},
}

var difficultyTimeMultiplier = [difficulty.NumLevels]float64{
	difficulty.VeryEasy:        1.3,
	difficulty.Easy:            1.1,
	difficulty.Optimal:         1.0,
	difficulty.Challenging:     0.9,
	difficulty.VeryChallenging: 0.7,
}

// Generate tailors base content to a learner. A nil profile yields the
// defaults: optimal difficulty, no hints and a flat time estimate.
func Generate(base any, p *profile.Profile, sc StudyContext) AdaptiveContent {
	level := difficulty.Optimal
	if p != nil {
		level = p.BaselineDifficulty
	}

	return AdaptiveContent{
		ID:              uuid.New(),
		BaseDifficulty:  level,
		Content:         base,
		Hints:           Hints(p),
		Variations:      Variations(base),
		CognitiveDemand: CognitiveDemand(base, p),
		EstimatedTime:   EstimatedTime(p),
		Context:         sc,
	}
}

// Hints returns the learner's style tip followed, for the two easiest
// baselines, by generic simplification tips. Never nil.
func Hints(p *profile.Profile) []string {
	hints := []string{}
	if p == nil {
		return hints
	}
	if tip, ok := styleTips[p.LearningStyle]; ok {
		hints = append(hints, tip)
	}
	if p.BaselineDifficulty == difficulty.VeryEasy || p.BaselineDifficulty == difficulty.Easy {
		hints = append(hints, simplificationTips...)
	}
	return hints
}

// Variations renders base at every level, in level order.
func Variations(base any) []Variation {
	out := make([]Variation, 0, difficulty.NumLevels)
	for _, level := range difficulty.AllLevels() {
		plan := variationPlan[level]
		out = append(out, Variation{
			Level:          level,
			Content:        apply(plan.transform, base, plan.strength),
			Hints:          []string{},
			TimeMultiplier: plan.multiplier,
			Transform:      plan.transform,
			Strength:       plan.strength,
		})
	}
	return out
}

func apply(t Transform, base any, strength float64) any {
	switch t {
	case TransformSimplify:
		return Simplify(base, strength)
	case TransformComplexify:
		return Complexify(base, strength)
	default:
		return base
	}
}

var (
	parenthetical = regexp.MustCompile(`\s*\([^()]*\)`)
	multiSpace    = regexp.MustCompile(`[ \t]{2,}`)
)

// Simplify strips parenthetical asides from string content. Other content
// passes through. The strength is recorded on the variation only.
func Simplify(base any, _ float64) any {
	s, ok := base.(string)
	if !ok {
		return base
	}
	s = parenthetical.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Complexify appends an application prompt to string content. Other
// content passes through.
func Complexify(base any, _ float64) any {
	s, ok := base.(string)
	if !ok {
		return base
	}
	return s + complexifySuffix
}

// CognitiveDemand scores how taxing content is on a 1-10 scale. Only
// string content is analysed; anything else keeps the baseline.
func CognitiveDemand(base any, p *profile.Profile) float64 {
	demand := BaselineDemand
	if s, ok := base.(string); ok {
		words := strings.Fields(s)
		demand += float64(len(words) / WordsPerDemandStep)
		for _, w := range words {
			if utf8.RuneCountInString(w) >= LongWordLength {
				demand++
			}
			if isCapitalized(w) {
				demand++
			}
		}
	}

	if p != nil {
		switch p.BaselineDifficulty {
		case difficulty.VeryEasy:
			demand *= EasyDemandFactor
		case difficulty.VeryChallenging:
			demand *= HardDemandFactor
		}
	}
	return math.Max(MinDemand, math.Min(MaxDemand, demand))
}

func isCapitalized(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}

// EstimatedTime predicts seconds needed for the content given the
// learner's baseline, fatigue and attention span.
func EstimatedTime(p *profile.Profile) int {
	if p == nil {
		return BaseTimeSeconds
	}

	diffMul := 1.0
	if p.BaselineDifficulty.Valid() {
		diffMul = difficultyTimeMultiplier[p.BaselineDifficulty]
	}
	fatigueMul := 1 + (p.FatigueLevel/100)*0.5
	attentionMul := math.Max(0.5, p.AttentionSpan/30)

	return int(math.Floor(BaseTimeSeconds * diffMul * fatigueMul * attentionMul))
}
