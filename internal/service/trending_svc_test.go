package service

import (
	"math"
	"testing"
	"time"

	"github.com/nermalcat69/promptu/internal/model"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDecay_Bounds(t *testing.T) {
	window := 24 * time.Hour

	if got := Decay(0, window); got != 1 {
		t.Errorf("Decay(0) = %.4f, want 1", got)
	}
	if got := Decay(window, window); got != 0 {
		t.Errorf("Decay(window) = %.4f, want 0", got)
	}
	if got := Decay(48*time.Hour, window); got != 0 {
		t.Errorf("Decay beyond window = %.4f, want 0", got)
	}
	// Clock skew can make age slightly negative
	if got := Decay(-time.Minute, window); got != 1 {
		t.Errorf("Decay(negative age) = %.4f, want 1", got)
	}
}

func TestDecay_StrictlyDecreasing(t *testing.T) {
	window := 7 * 24 * time.Hour

	prev := Decay(0, window)
	for h := 1; h < 7*24; h++ {
		cur := Decay(time.Duration(h)*time.Hour, window)
		if cur >= prev {
			t.Fatalf("decay not strictly decreasing at %dh: %.6f >= %.6f", h, cur, prev)
		}
		if cur < 0 || cur > 1 {
			t.Fatalf("decay out of [0,1] at %dh: %.6f", h, cur)
		}
		prev = cur
	}
}

func TestDecay_AllTimeDisabled(t *testing.T) {
	// Zero window means decay is off: every age scores 1
	for _, age := range []time.Duration{0, time.Hour, 365 * 24 * time.Hour} {
		if got := Decay(age, 0); got != 1 {
			t.Errorf("Decay(%s, 0) = %.4f, want 1", age, got)
		}
	}
}

func TestRawScore_SignalOrdering(t *testing.T) {
	// One upvote must outweigh one copy, one copy must outweigh one view
	upvote := RawScore(1, 0, 0)
	view := RawScore(0, 1, 0)
	copyScore := RawScore(0, 0, 1)

	if upvote <= copyScore {
		t.Errorf("upvote (%.2f) should outweigh copy (%.2f)", upvote, copyScore)
	}
	if copyScore <= view {
		t.Errorf("copy (%.2f) should outweigh view (%.2f)", copyScore, view)
	}
	if RawScore(0, 0, 0) != 0 {
		t.Errorf("zero signals should score zero")
	}
}

func promptFixture(id int64, upvotes, views, copies int, age time.Duration, now time.Time) model.Prompt {
	return model.Prompt{
		ID:          id,
		Slug:        "prompt-" + string(rune('a'+id%26)),
		PromptType:  model.PromptTypeUser,
		UpvoteCount: upvotes,
		ViewCount:   views,
		CopyCount:   copies,
		CreatedAt:   now.Add(-age),
	}
}

func TestRank_Deterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prompts := []model.Prompt{
		promptFixture(1, 10, 100, 5, 2*time.Hour, now),
		promptFixture(2, 8, 50, 20, 20*time.Hour, now),
		promptFixture(3, 3, 10, 1, 5*time.Hour, now),
	}

	first := Rank(prompts, now, model.TimeframeDaily, 10)
	for i := 0; i < 5; i++ {
		again := Rank(prompts, now, model.TimeframeDaily, 10)
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed: %d != %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j].PromptID != first[j].PromptID {
				t.Fatalf("run %d: order changed at position %d", i, j)
			}
		}
	}
}

func TestRank_DailyFavorsRecency(t *testing.T) {
	// Item A: fresher but fewer copies. Item B: more copies but close to the
	// daily decay boundary. A must outrank B.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prompts := []model.Prompt{
		promptFixture(1, 10, 100, 5, 2*time.Hour, now),  // A
		promptFixture(2, 8, 50, 20, 20*time.Hour, now), // B
	}

	entries := Rank(prompts, now, model.TimeframeDaily, 10)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PromptID != 1 {
		t.Errorf("fresher prompt A should outrank B on daily, got prompt %d first", entries[0].PromptID)
	}
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", entries[0].Rank, entries[1].Rank)
	}
}

func TestRank_AllTimeDegeneratesToWeightedSum(t *testing.T) {
	// With decay disabled the order must equal a plain descending sort by
	// the raw weighted sum, regardless of age.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prompts := []model.Prompt{
		promptFixture(1, 1, 0, 0, time.Hour, now),                 // raw 3.0
		promptFixture(2, 0, 0, 10, 400*24*time.Hour, now),         // raw 15.0, very old
		promptFixture(3, 2, 4, 0, 30*24*time.Hour, now),           // raw 7.0
	}

	entries := Rank(prompts, now, model.TimeframeAllTime, 10)
	wantOrder := []int64{2, 3, 1}
	for i, want := range wantOrder {
		if entries[i].PromptID != want {
			t.Errorf("position %d: got prompt %d, want %d", i, entries[i].PromptID, want)
		}
	}
	if !almostEqual(entries[0].Score, RawScore(0, 0, 10), 1e-9) {
		t.Errorf("all-time score should equal raw weighted sum: %.4f", entries[0].Score)
	}
}

func TestRank_TieBreakNewerWins(t *testing.T) {
	// Identical counters on all-time give identical scores; the newer
	// prompt must come first.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := promptFixture(1, 5, 10, 2, 48*time.Hour, now)
	newer := promptFixture(2, 5, 10, 2, 1*time.Hour, now)

	entries := Rank([]model.Prompt{older, newer}, now, model.TimeframeAllTime, 10)
	if entries[0].PromptID != 2 {
		t.Errorf("newer prompt should win the tie, got prompt %d first", entries[0].PromptID)
	}

	// Same createdAt too: higher ID breaks the remaining tie
	twinA := promptFixture(3, 5, 10, 2, time.Hour, now)
	twinB := promptFixture(4, 5, 10, 2, time.Hour, now)
	entries = Rank([]model.Prompt{twinA, twinB}, now, model.TimeframeAllTime, 10)
	if entries[0].PromptID != 4 {
		t.Errorf("higher ID should break exact ties, got prompt %d first", entries[0].PromptID)
	}
}

func TestRank_LimitTruncatesAfterScoring(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var prompts []model.Prompt
	for i := int64(1); i <= 10; i++ {
		prompts = append(prompts, promptFixture(i, int(i), 0, 0, time.Hour, now))
	}

	entries := Rank(prompts, now, model.TimeframeDaily, 3)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Top 3 of the whole population, not 3 arbitrary candidates
	wantOrder := []int64{10, 9, 8}
	for i, want := range wantOrder {
		if entries[i].PromptID != want {
			t.Errorf("position %d: got prompt %d, want %d", i, entries[i].PromptID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("position %d: rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestRank_EmptyCandidates(t *testing.T) {
	now := time.Now()
	entries := Rank(nil, now, model.TimeframeDaily, 10)
	if entries == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestScore_OldPromptScoresZeroOnDaily(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := promptFixture(1, 1000, 10000, 500, 72*time.Hour, now)

	if got := Score(&old, now, model.TimeframeDaily); got != 0 {
		t.Errorf("prompt older than the daily window scored %.4f, want 0", got)
	}
	if got := Score(&old, now, model.TimeframeWeekly); got <= 0 {
		t.Errorf("same prompt should still score on weekly, got %.4f", got)
	}
}
