package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardo5010/study-cycle-sub001/internal/content"
	"github.com/eduardo5010/study-cycle-sub001/internal/difficulty"
	"github.com/eduardo5010/study-cycle-sub001/internal/profile"
	"github.com/eduardo5010/study-cycle-sub001/internal/store"
)

var fixedNow = time.Date(2026, 4, 12, 10, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(store.NewMemoryProfileRepo(), opts...)
}

func TestAssessUserProfile_Stores(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	p, err := e.AssessUserProfile(ctx, "u1", profile.AssessmentResults{
		"accuracy":        0.9,
		"avgResponseTime": 15.0,
	})
	require.NoError(t, err)
	assert.Equal(t, difficulty.VeryChallenging, p.BaselineDifficulty)
	assert.Equal(t, fixedNow, p.LastAssessment)

	stored, err := e.Profile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestAssessUserProfile_Reassessment(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	_, err := e.AssessUserProfile(ctx, "u1", profile.AssessmentResults{"accuracy": 0.9, "avgResponseTime": 15.0})
	require.NoError(t, err)
	_, err = e.AssessUserProfile(ctx, "u1", profile.AssessmentResults{"accuracy": 0.4})
	require.NoError(t, err)

	p, err := e.Profile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, difficulty.VeryEasy, p.BaselineDifficulty)
}

func TestGhostUser(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	level, err := e.AdjustDifficulty(ctx, "ghost", difficulty.SessionMetrics{
		CorrectAnswers: 10, EngagementScore: 95,
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, difficulty.Optimal, level)

	ac, err := e.GenerateAdaptiveContent(ctx, "Some content", "ghost", content.ContextStudy)
	require.NoError(t, err)
	assert.Equal(t, difficulty.Optimal, ac.BaseDifficulty)
	assert.NotNil(t, ac.Hints)
	assert.Empty(t, ac.Hints)
	assert.Equal(t, 30, ac.EstimatedTime)
	assert.Len(t, ac.Variations, difficulty.NumLevels)
}

func TestDecide_GhostReason(t *testing.T) {
	e := newTestEngine()
	d, err := e.Decide(context.Background(), "ghost", difficulty.SessionMetrics{}, 0)
	require.NoError(t, err)
	assert.Equal(t, difficulty.ReasonNoProfile, d.Reason)
}

func TestAdjustDifficulty_WithProfile(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	_, err := e.AssessUserProfile(ctx, "u1", profile.AssessmentResults{"accuracy": 0.7, "avgResponseTime": 40.0})
	require.NoError(t, err)

	tests := []struct {
		name    string
		metrics difficulty.SessionMetrics
		want    difficulty.Level
	}{
		{"struggling", difficulty.SessionMetrics{CorrectAnswers: 2, IncorrectAnswers: 8, EngagementScore: 50, FrustrationIndicators: 70}, difficulty.VeryEasy},
		{"flawless", difficulty.SessionMetrics{CorrectAnswers: 10, EngagementScore: 90, FrustrationIndicators: 5}, difficulty.Challenging},
		{"boundary 0.9 holds", difficulty.SessionMetrics{CorrectAnswers: 9, IncorrectAnswers: 1, EngagementScore: 80, FrustrationIndicators: 10}, difficulty.Optimal},
		{"boundary 0.9 engaged", difficulty.SessionMetrics{CorrectAnswers: 9, IncorrectAnswers: 1, EngagementScore: 81, FrustrationIndicators: 10}, difficulty.Challenging},
		{"nothing answered", difficulty.SessionMetrics{}, difficulty.Optimal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.AdjustDifficulty(ctx, "u1", tt.metrics, 0.85)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdjustDifficulty_Deterministic(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	_, err := e.AssessUserProfile(ctx, "u1", nil)
	require.NoError(t, err)

	m := difficulty.SessionMetrics{CorrectAnswers: 7, IncorrectAnswers: 3, EngagementScore: 65, FrustrationIndicators: 25}
	first, err := e.Decide(ctx, "u1", m, 0)
	require.NoError(t, err)
	for range 10 {
		again, err := e.Decide(ctx, "u1", m, 0)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerateAdaptiveContent_UsesProfile(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()
	_, err := e.AssessUserProfile(ctx, "u1", profile.AssessmentResults{
		"accuracy": 0.4,
		"errors":   map[string]any{"visual": 3, "auditory": 1, "kinesthetic": 2, "reading": 4},
	})
	require.NoError(t, err)

	ac, err := e.GenerateAdaptiveContent(ctx, "Cells divide (via mitosis) to grow.", "u1", content.ContextReview)
	require.NoError(t, err)
	assert.Equal(t, difficulty.VeryEasy, ac.BaseDifficulty)
	require.Len(t, ac.Hints, 3)
	assert.Equal(t, content.Hints(&profile.Profile{LearningStyle: profile.StyleAuditory})[0], ac.Hints[0])
	assert.Equal(t, content.ContextReview, ac.Context)
}

func TestEvents_Recorded(t *testing.T) {
	st, err := store.Open(t.TempDir() + "/events.db")
	require.NoError(t, err)
	defer st.Close()

	e := New(st.ProfileRepo(), WithEvents(st.EventRepo()))
	ctx := context.Background()

	_, err = e.AssessUserProfile(ctx, "u1", nil)
	require.NoError(t, err)
	_, err = e.AdjustDifficulty(ctx, "u1", difficulty.SessionMetrics{CorrectAnswers: 10}, 0)
	require.NoError(t, err)

	assessments, err := st.EventRepo().QueryAssessmentEvents(ctx, store.QueryOpts{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, assessments, 1)
	assert.Equal(t, "optimal", assessments[0].BaselineDifficulty)

	adjustments, err := st.EventRepo().QueryAdjustmentEvents(ctx, store.QueryOpts{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, difficulty.ReasonHighPerformance, adjustments[0].Reason)
	assert.InDelta(t, difficulty.DefaultTargetRetention, adjustments[0].TargetRetention, 1e-9)
}

// failingEvents rejects every append.
type failingEvents struct {
	store.EventRepo
}

func (failingEvents) AppendAssessmentEvent(context.Context, store.AssessmentEventData) error {
	return errors.New("disk full")
}

func (failingEvents) AppendAdjustmentEvent(context.Context, store.AdjustmentEventData) error {
	return errors.New("disk full")
}

func TestEvents_FailureIsLoggedNotReturned(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	e := newTestEngine(WithLogger(logger), WithEvents(failingEvents{}))
	ctx := context.Background()

	_, err := e.AssessUserProfile(ctx, "u1", nil)
	require.NoError(t, err)
	_, err = e.AdjustDifficulty(ctx, "u1", difficulty.SessionMetrics{}, 0)
	require.NoError(t, err)

	var warnings int
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings)
}

// brokenRepo fails every operation.
type brokenRepo struct{}

func (brokenRepo) Get(context.Context, string) (*store.ProfileData, error) {
	return nil, errors.New("connection refused")
}

func (brokenRepo) Put(context.Context, string, *store.ProfileData) error {
	return errors.New("connection refused")
}

func TestStoreErrorsSurface(t *testing.T) {
	e := New(brokenRepo{})
	ctx := context.Background()

	_, err := e.AssessUserProfile(ctx, "u1", nil)
	assert.Error(t, err)
	_, err = e.AdjustDifficulty(ctx, "u1", difficulty.SessionMetrics{}, 0)
	assert.Error(t, err)
	_, err = e.GenerateAdaptiveContent(ctx, "x", "u1", content.ContextStudy)
	assert.Error(t, err)
}

func TestConcurrentUse(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("u%d", i%4)
			_, _ = e.AssessUserProfile(ctx, user, profile.AssessmentResults{"accuracy": float64(i) / 20})
			_, _ = e.AdjustDifficulty(ctx, user, difficulty.SessionMetrics{CorrectAnswers: i, IncorrectAnswers: 1}, 0)
			_, _ = e.GenerateAdaptiveContent(ctx, "text", user, content.ContextPractice)
		}(i)
	}
	wg.Wait()

	for i := range 4 {
		p, err := e.Profile(ctx, fmt.Sprintf("u%d", i))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.True(t, p.BaselineDifficulty.Valid())
	}
}
