package difficulty

// Flow-zone thresholds. Performance is a ratio in [0,1]; engagement and
// frustration are compared on the unit scale (score / 100).
const (
	FlowPerformanceThreshold = 0.7
	FlowEngagementThreshold  = 0.7
	FlowFrustrationCeiling   = 0.3

	StrugglePerformanceThreshold = 0.5
	StruggleFrustrationThreshold = 0.6

	BoredPerformanceThreshold = 0.9
	BoredEngagementThreshold  = 0.5
)

// Adjustment thresholds applied to raw performance after classification.
const (
	StepDownPerformance = 0.6
	StepUpPerformance   = 0.9
)

// Optimizer thresholds on the 0-100 metric scale.
const (
	OptimizerEngagementHigh  = 80
	OptimizerFrustrationLow  = 20
	OptimizerEngagementLow   = 60
	OptimizerFrustrationHigh = 40
)

// DefaultTargetRetention is the retention target assumed when the caller
// does not supply one.
const DefaultTargetRetention = 0.85

// Reason labels explain which branch produced a decision.
const (
	ReasonNoAnswers       = "no-answers"
	ReasonLowPerformance  = "low-performance"
	ReasonHighPerformance = "high-performance"
	ReasonOptimizerUp     = "optimizer-increase"
	ReasonOptimizerDown   = "optimizer-decrease"
	ReasonOptimizerHold   = "optimizer-hold"
	ReasonNoProfile       = "no-profile"
)

// Decision is the outcome of a difficulty adjustment.
type Decision struct {
	Zone        Level   `json:"zone"`
	Performance float64 `json:"performance"`
	Answered    int     `json:"answered"`
	Level       Level   `json:"level"`
	Reason      string  `json:"reason"`
}

// ClassifyFlowZone maps a session onto a flow zone using the metrics only.
// A balanced, engaged, unfrustrated session is Optimal; a struggling one is
// Easy; a strong but disengaged one is Challenging.
func ClassifyFlowZone(m SessionMetrics, performance float64) Level {
	engagement := m.EngagementScore / 100
	frustration := m.FrustrationIndicators / 100

	switch {
	case performance > FlowPerformanceThreshold &&
		engagement > FlowEngagementThreshold &&
		frustration < FlowFrustrationCeiling:
		return Optimal
	case performance < StrugglePerformanceThreshold || frustration > StruggleFrustrationThreshold:
		return Easy
	case performance > BoredPerformanceThreshold && engagement < BoredEngagementThreshold:
		return Challenging
	default:
		return Optimal
	}
}

// Optimize nudges a zone by one step based on engagement and frustration.
func Optimize(zone Level, m SessionMetrics) (Level, string) {
	switch {
	case m.EngagementScore > OptimizerEngagementHigh && m.FrustrationIndicators < OptimizerFrustrationLow:
		return zone.Increase(), ReasonOptimizerUp
	case m.EngagementScore < OptimizerEngagementLow || m.FrustrationIndicators > OptimizerFrustrationHigh:
		return zone.Decrease(), ReasonOptimizerDown
	default:
		return zone, ReasonOptimizerHold
	}
}

// Adjust proposes the next difficulty level for a session. Raw performance
// is the primary signal; the optimizer only runs in the middle band.
// Sessions with no answered items stay at Optimal.
//
// Adjust is a pure function: identical metrics always yield the same
// decision.
func Adjust(m SessionMetrics) Decision {
	m = m.Normalize()

	performance, ok := m.Performance()
	if !ok {
		return Decision{
			Zone:   Optimal,
			Level:  Optimal,
			Reason: ReasonNoAnswers,
		}
	}

	d := Decision{
		Zone:        ClassifyFlowZone(m, performance),
		Performance: performance,
		Answered:    m.Answered(),
	}

	switch {
	case performance < StepDownPerformance:
		d.Level = d.Zone.Decrease()
		d.Reason = ReasonLowPerformance
	case performance > StepUpPerformance:
		d.Level = d.Zone.Increase()
		d.Reason = ReasonHighPerformance
	default:
		d.Level, d.Reason = Optimize(d.Zone, m)
	}
	return d
}
