package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int    // max results (0 = unlimited)
	UserID string // only events for this user ("" = all users)
	After  int64  // sequence > After

	// Purpose filters LLM request events; other event kinds ignore it.
	Purpose string
}

// ProfileData is the persisted form of a learner's cognitive profile.
// Domain packages convert to and from their own types.
type ProfileData struct {
	UserID                 string    `json:"user_id"`
	BaselineDifficulty     string    `json:"baseline_difficulty"`
	AttentionSpan          float64   `json:"attention_span"`
	LearningStyle          string    `json:"learning_style"`
	FatigueLevel           float64   `json:"fatigue_level"`
	MotivationLevel        float64   `json:"motivation_level"`
	PreferredChallenge     float64   `json:"preferred_challenge"`
	CognitiveLoadTolerance float64   `json:"cognitive_load_tolerance"`
	LastAssessment         time.Time `json:"last_assessment"`
}

// ProfileRepo is the keyed profile store. Put replaces any existing entry
// for the user; concurrent Puts for the same user are last-write-wins.
type ProfileRepo interface {
	// Get returns the profile for userID, or nil if none exists.
	Get(ctx context.Context, userID string) (*ProfileData, error)

	// Put stores p under userID, replacing any previous profile.
	Put(ctx context.Context, userID string, p *ProfileData) error
}

// ProfileLister is implemented by repos that can enumerate their users.
type ProfileLister interface {
	// List returns all user IDs with a stored profile, sorted.
	List(ctx context.Context) ([]string, error)
}

// AssessmentEventData captures a completed profile assessment.
type AssessmentEventData struct {
	UserID             string
	BaselineDifficulty string
	LearningStyle      string
	AttentionSpan      float64
	PreferredChallenge float64
	LoadTolerance      float64
}

// AdjustmentEventData captures a difficulty adjustment decision.
type AdjustmentEventData struct {
	UserID          string
	Zone            string
	Level           string
	Reason          string
	Performance     float64
	Answered        int
	TargetRetention float64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// AssessmentEvent is a stored assessment event.
type AssessmentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// AdjustmentEvent is a stored adjustment event.
type AdjustmentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AdjustmentEventData
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendAssessmentEvent(ctx context.Context, data AssessmentEventData) error
	AppendAdjustmentEvent(ctx context.Context, data AdjustmentEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAssessmentEvents returns assessment events, most recent first.
	QueryAssessmentEvents(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error)

	// QueryAdjustmentEvents returns adjustment events, most recent first.
	QueryAdjustmentEvents(ctx context.Context, opts QueryOpts) ([]AdjustmentEvent, error)

	// QueryLLMEvents returns LLM request events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM request event, or nil if absent.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose sums LLM usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}

// LLMUsage is aggregated LLM usage for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	Succeeded    int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}
