// Package engine wires the profile assessor, the flow-zone adjuster and
// the content adapter around an injected profile store.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eduardo5010/study-cycle-sub001/internal/content"
	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
	"github.com/eduardo5010/study-cycle-sub001/internal/profile"
	"github.com/eduardo5010/study-cycle-sub001/internal/store"
)

// Engine is the adaptive difficulty engine. It is safe for concurrent use
// when the injected ProfileRepo is; concurrent assessments of the same
// user are last-write-wins.
type Engine struct {
	profiles store.ProfileRepo
	events   store.EventRepo
	logger   *logrus.Logger
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for decisions and recording warnings.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithEvents records every assessment and adjustment to repo.
func WithEvents(repo store.EventRepo) Option {
	return func(e *Engine) { e.events = repo }
}

// WithClock overrides the clock used to stamp assessments.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over profiles. Without WithLogger, log output
// is discarded.
func New(profiles store.ProfileRepo, opts ...Option) *Engine {
	e := &Engine{
		profiles: profiles,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logrus.New()
		e.logger.SetOutput(io.Discard)
	}
	return e
}

// AssessUserProfile builds a fresh profile from assessment results and
// stores it, replacing any previous profile for the user.
func (e *Engine) AssessUserProfile(ctx context.Context, userID string, results profile.AssessmentResults) (*profile.Profile, error) {
	p := profile.Assess(userID, results, e.now())

	if err := e.profiles.Put(ctx, userID, profile.ToData(p)); err != nil {
		return nil, fmt.Errorf("store profile: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"user_id":             userID,
		"baseline_difficulty": p.BaselineDifficulty.String(),
		"learning_style":      string(p.LearningStyle),
		"attention_span":      p.AttentionSpan,
	}).Debug("Profile assessed")

	if e.events != nil {
		err := e.events.AppendAssessmentEvent(ctx, store.AssessmentEventData{
			UserID:             userID,
			BaselineDifficulty: p.BaselineDifficulty.String(),
			LearningStyle:      string(p.LearningStyle),
			AttentionSpan:      p.AttentionSpan,
			PreferredChallenge: p.PreferredChallenge,
			LoadTolerance:      p.CognitiveLoadTolerance,
		})
		if err != nil {
			e.logger.WithError(err).WithField("user_id", userID).Warn("Failed to record assessment event")
		}
	}

	return p, nil
}

// AdjustDifficulty returns the recommended level for the user's next
// content given the current session. Unknown users get Optimal.
func (e *Engine) AdjustDifficulty(ctx context.Context, userID string, metrics difficulty.SessionMetrics, targetRetention float64) (difficulty.Level, error) {
	d, err := e.Decide(ctx, userID, metrics, targetRetention)
	if err != nil {
		return difficulty.Optimal, err
	}
	return d.Level, nil
}

// Decide is AdjustDifficulty with the full decision record. A
// non-positive targetRetention means difficulty.DefaultTargetRetention.
// The retention target is recorded but does not influence the level.
func (e *Engine) Decide(ctx context.Context, userID string, metrics difficulty.SessionMetrics, targetRetention float64) (difficulty.Decision, error) {
	if targetRetention <= 0 {
		targetRetention = difficulty.DefaultTargetRetention
	}

	p, err := e.Profile(ctx, userID)
	if err != nil {
		return difficulty.Decision{}, err
	}

	var d difficulty.Decision
	if p == nil {
		d = difficulty.Decision{
			Zone:   difficulty.Optimal,
			Level:  difficulty.Optimal,
			Reason: difficulty.ReasonNoProfile,
		}
	} else {
		d = difficulty.Adjust(metrics)
	}

	e.logger.WithFields(logrus.Fields{
		"user_id":     userID,
		"zone":        d.Zone.String(),
		"performance": d.Performance,
		"level":       d.Level.String(),
		"reason":      d.Reason,
	}).Debug("Difficulty adjusted")

	if e.events != nil {
		err := e.events.AppendAdjustmentEvent(ctx, store.AdjustmentEventData{
			UserID:          userID,
			Zone:            d.Zone.String(),
			Level:           d.Level.String(),
			Reason:          d.Reason,
			Performance:     d.Performance,
			Answered:        d.Answered,
			TargetRetention: targetRetention,
		})
		if err != nil {
			e.logger.WithError(err).WithField("user_id", userID).Warn("Failed to record adjustment event")
		}
	}

	return d, nil
}

// GenerateAdaptiveContent tailors base content to the user. Unknown users
// get the defaults: optimal difficulty, no hints and a flat estimate.
func (e *Engine) GenerateAdaptiveContent(ctx context.Context, base any, userID string, sc content.StudyContext) (content.AdaptiveContent, error) {
	p, err := e.Profile(ctx, userID)
	if err != nil {
		return content.AdaptiveContent{}, err
	}

	ac := content.Generate(base, p, sc)

	e.logger.WithFields(logrus.Fields{
		"user_id":          userID,
		"content_id":       ac.ID.String(),
		"base_difficulty":  ac.BaseDifficulty.String(),
		"cognitive_demand": ac.CognitiveDemand,
		"estimated_time":   ac.EstimatedTime,
		"context":          string(sc),
	}).Debug("Adaptive content generated")

	return ac, nil
}

// Profile returns the stored profile for userID, or nil if none exists.
func (e *Engine) Profile(ctx context.Context, userID string) (*profile.Profile, error) {
	data, err := e.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile.FromData(data)
}
