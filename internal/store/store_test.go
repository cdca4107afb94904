package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProfile(userID string) *ProfileData {
	return &ProfileData{
		UserID:                 userID,
		BaselineDifficulty:     "challenging",
		AttentionSpan:          30,
		LearningStyle:          "auditory",
		FatigueLevel:           20,
		MotivationLevel:        80,
		PreferredChallenge:     64,
		CognitiveLoadTolerance: 6,
		LastAssessment:         time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.ProfileRepo().Put(ctx, "u1", sampleProfile("u1")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.ProfileRepo().Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "challenging", got.BaselineDifficulty)
}

// repoContract exercises the behavior every ProfileRepo must share.
func repoContract(t *testing.T, repo ProfileRepo) {
	t.Helper()
	ctx := context.Background()

	got, err := repo.Get(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, got, "missing profile should be nil")

	want := sampleProfile("u1")
	require.NoError(t, repo.Put(ctx, "u1", want))

	got, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.BaselineDifficulty, got.BaselineDifficulty)
	assert.Equal(t, want.LearningStyle, got.LearningStyle)
	assert.InDelta(t, want.PreferredChallenge, got.PreferredChallenge, 1e-9)
	assert.True(t, want.LastAssessment.Equal(got.LastAssessment))

	// Put replaces wholesale.
	replacement := sampleProfile("u1")
	replacement.BaselineDifficulty = "very_easy"
	replacement.LearningStyle = "reading"
	require.NoError(t, repo.Put(ctx, "u1", replacement))

	got, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "very_easy", got.BaselineDifficulty)
	assert.Equal(t, "reading", got.LearningStyle)

	// Mutating a returned profile does not leak into the store.
	got.BaselineDifficulty = "optimal"
	again, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "very_easy", again.BaselineDifficulty)

	if lister, ok := repo.(ProfileLister); ok {
		require.NoError(t, repo.Put(ctx, "a0", sampleProfile("a0")))
		ids, err := lister.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a0", "u1"}, ids)
	}
}

func TestSQLiteProfileRepo(t *testing.T) {
	repoContract(t, openTestStore(t).ProfileRepo())
}

func TestMemoryProfileRepo(t *testing.T) {
	repoContract(t, NewMemoryProfileRepo())
}

func TestCacheProfileRepo(t *testing.T) {
	repoContract(t, NewCacheProfileRepo(0, 0))
}

func TestCacheProfileRepo_Expires(t *testing.T) {
	repo := NewCacheProfileRepo(20*time.Millisecond, time.Minute)
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, "u1", sampleProfile("u1")))

	time.Sleep(50 * time.Millisecond)

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryProfileRepo_ConcurrentPuts(t *testing.T) {
	repo := NewMemoryProfileRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := sampleProfile("shared")
			p.AttentionSpan = float64(i)
			_ = repo.Put(ctx, "shared", p)
		}(i)
	}
	wg.Wait()

	got, err := repo.Get(ctx, "shared")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.GreaterOrEqual(t, got.AttentionSpan, 0.0)
	assert.Less(t, got.AttentionSpan, 50.0)
}

func TestEventRepo_AssessmentEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, user := range []string{"u1", "u2", "u1"} {
		require.NoError(t, repo.AppendAssessmentEvent(ctx, AssessmentEventData{
			UserID:             user,
			BaselineDifficulty: "optimal",
			LearningStyle:      "visual",
			AttentionSpan:      22.5,
			PreferredChallenge: 66.7,
			LoadTolerance:      5,
		}))
	}

	all, err := repo.QueryAssessmentEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Greater(t, all[0].Sequence, all[1].Sequence, "most recent first")

	u1, err := repo.QueryAssessmentEvents(ctx, QueryOpts{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, u1, 2)
	for _, e := range u1 {
		assert.Equal(t, "u1", e.UserID)
		assert.False(t, e.Timestamp.IsZero())
	}

	limited, err := repo.QueryAssessmentEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestEventRepo_SequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAssessmentEvent(ctx, AssessmentEventData{UserID: "u1"}))
	require.NoError(t, repo.AppendAdjustmentEvent(ctx, AdjustmentEventData{
		UserID: "u1", Zone: "optimal", Level: "challenging", Reason: "high-performance",
		Performance: 1, Answered: 10, TargetRetention: 0.85,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "variation-rewrite", Success: true,
	}))

	assessments, err := repo.QueryAssessmentEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	adjustments, err := repo.QueryAdjustmentEvents(ctx, QueryOpts{UserID: "u1"})
	require.NoError(t, err)
	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{UserID: "ignored"})
	require.NoError(t, err)

	require.Len(t, assessments, 1)
	require.Len(t, adjustments, 1)
	require.Len(t, llmEvents, 1)

	assert.Less(t, assessments[0].Sequence, adjustments[0].Sequence)
	assert.Less(t, adjustments[0].Sequence, llmEvents[0].Sequence)

	adj := adjustments[0]
	assert.Equal(t, "challenging", adj.Level)
	assert.Equal(t, 10, adj.Answered)
	assert.InDelta(t, 0.85, adj.TargetRetention, 1e-9)
	assert.True(t, llmEvents[0].Success)
}

func TestEventRepo_QueryAfter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for range 3 {
		require.NoError(t, repo.AppendAdjustmentEvent(ctx, AdjustmentEventData{UserID: "u1"}))
	}
	all, err := repo.QueryAdjustmentEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	newer, err := repo.QueryAdjustmentEvents(ctx, QueryOpts{After: all[1].Sequence})
	require.NoError(t, err)
	require.Len(t, newer, 1)
	assert.Equal(t, all[0].Sequence, newer[0].Sequence)
}

func TestEventRepo_LLMLookupAndUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	calls := []LLMRequestEventData{
		{Provider: "mock", Model: "mock", Purpose: "variation-rewrite", InputTokens: 100, OutputTokens: 20, LatencyMs: 10, Success: true, RequestBody: "[user]\nhi"},
		{Provider: "mock", Model: "mock", Purpose: "variation-rewrite", InputTokens: 50, OutputTokens: 0, LatencyMs: 30, Success: false, ErrorMessage: "down"},
		{Provider: "mock", Model: "mock", Purpose: "unknown", InputTokens: 1, OutputTokens: 1, LatencyMs: 5, Success: true},
	}
	for _, c := range calls {
		require.NoError(t, repo.AppendLLMRequest(ctx, c))
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	oldest := events[2]
	got, err := repo.GetLLMEvent(ctx, int64(oldest.ID))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "[user]\nhi", got.RequestBody)
	assert.True(t, got.Success)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	usage, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "unknown", usage[0].Purpose)
	rewrite := usage[1]
	assert.Equal(t, "variation-rewrite", rewrite.Purpose)
	assert.Equal(t, 2, rewrite.Calls)
	assert.Equal(t, 1, rewrite.Succeeded)
	assert.Equal(t, 150, rewrite.InputTokens)
	assert.Equal(t, int64(20), rewrite.AvgLatencyMs)
}

func TestEventRepo_LLMPurposeFilter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"variation-rewrite", "unknown", "variation-rewrite"} {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: purpose}))
	}
	require.NoError(t, repo.AppendAdjustmentEvent(ctx, AdjustmentEventData{UserID: "u1"}))

	rewrites, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "variation-rewrite"})
	require.NoError(t, err)
	require.Len(t, rewrites, 2)
	for _, e := range rewrites {
		assert.Equal(t, "variation-rewrite", e.Purpose)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "variation-rewrite", Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, rewrites[0].ID, limited[0].ID)

	none, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "missing"})
	require.NoError(t, err)
	assert.Empty(t, none)

	// Events without a purpose column ignore the filter.
	adjustments, err := repo.QueryAdjustmentEvents(ctx, QueryOpts{Purpose: "variation-rewrite"})
	require.NoError(t, err)
	assert.Len(t, adjustments, 1)
}
