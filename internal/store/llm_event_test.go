package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEvents(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()
	for _, e := range []LLMRequestEventData{
		eventAt("quiz", "llama3-70b-8192", 100, 50, 200, true),
		eventAt("lesson_plan", "llama3-70b-8192", 80, 120, 400, true),
		eventAt("quiz", "gpt-4o-mini", 10, 0, 100, false),
	} {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)

	events, err := repo.QueryLLMEvents(context.Background(), QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Newest first.
	assert.Equal(t, int64(3), events[0].Sequence)
	assert.Equal(t, "gpt-4o-mini", events[0].Model)
	assert.False(t, events[0].Success)
	assert.Equal(t, int64(1), events[2].Sequence)
	assert.True(t, events[2].Success)
	assert.Equal(t, "quiz-llama3-70b-8192", events[2].RequestID)
	assert.Equal(t, `{"questions":[]}`, events[2].ResponseBody)
	assert.WithinDuration(t, time.Now(), events[2].Timestamp, time.Minute)
}

func TestQueryLLMEvents_Filters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	quiz, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz"})
	require.NoError(t, err)
	assert.Len(t, quiz, 2)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(3), limited[0].Sequence)

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: 1, Before: 3})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "lesson_plan", after[0].Purpose)

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)
	ctx := context.Background()

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, events[0], *got)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)

	stats, err := repo.LLMUsageByPurpose(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, LLMUsageStats{Purpose: "lesson_plan", Calls: 1, InputTokens: 80, OutputTokens: 120, AvgLatencyMs: 400}, stats[0])
	assert.Equal(t, LLMUsageStats{Purpose: "quiz", Calls: 2, InputTokens: 110, OutputTokens: 50, AvgLatencyMs: 150}, stats[1])
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedEvents(t, repo)

	usage, err := repo.LLMUsageByModel(context.Background())
	require.NoError(t, err)
	require.Len(t, usage, 2)

	assert.Equal(t, LLMModelUsage{Model: "gpt-4o-mini", Calls: 1, InputTokens: 10, OutputTokens: 0}, usage[0])
	assert.Equal(t, LLMModelUsage{Model: "llama3-70b-8192", Calls: 2, InputTokens: 180, OutputTokens: 170}, usage[1])
}

func TestUsage_EmptyLedger(t *testing.T) {
	s := openTestStore(t)

	stats, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}
