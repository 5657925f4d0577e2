package service

import (
	"testing"

	"github.com/nermalcat69/promptu/internal/model"
)

func TestDeriveEngagement_EmptyPlatform(t *testing.T) {
	// No prompts, no views: every ratio must be zero, never NaN or an error
	stats := DeriveEngagement(&model.CommunityStats{})

	if stats.AvgVotesPerPrompt != 0 {
		t.Errorf("AvgVotesPerPrompt = %.4f, want 0", stats.AvgVotesPerPrompt)
	}
	if stats.AvgViewsPerPrompt != 0 {
		t.Errorf("AvgViewsPerPrompt = %.4f, want 0", stats.AvgViewsPerPrompt)
	}
	if stats.AvgCopiesPerPrompt != 0 {
		t.Errorf("AvgCopiesPerPrompt = %.4f, want 0", stats.AvgCopiesPerPrompt)
	}
	if stats.CopyToViewRatio != 0 {
		t.Errorf("CopyToViewRatio = %.4f, want 0", stats.CopyToViewRatio)
	}
	if stats.VoteToViewRatio != 0 {
		t.Errorf("VoteToViewRatio = %.4f, want 0", stats.VoteToViewRatio)
	}
}

func TestDeriveEngagement_Ratios(t *testing.T) {
	stats := DeriveEngagement(&model.CommunityStats{
		TotalPrompts: 4,
		TotalVotes:   10,
		TotalViews:   200,
		TotalCopies:  50,
		TotalUsers:   25,
	})

	if !almostEqual(stats.AvgVotesPerPrompt, 2.5, 1e-9) {
		t.Errorf("AvgVotesPerPrompt = %.4f, want 2.5", stats.AvgVotesPerPrompt)
	}
	if !almostEqual(stats.AvgViewsPerPrompt, 50, 1e-9) {
		t.Errorf("AvgViewsPerPrompt = %.4f, want 50", stats.AvgViewsPerPrompt)
	}
	if !almostEqual(stats.AvgCopiesPerPrompt, 12.5, 1e-9) {
		t.Errorf("AvgCopiesPerPrompt = %.4f, want 12.5", stats.AvgCopiesPerPrompt)
	}
	if !almostEqual(stats.CopyToViewRatio, 0.25, 1e-9) {
		t.Errorf("CopyToViewRatio = %.4f, want 0.25", stats.CopyToViewRatio)
	}
	if !almostEqual(stats.VoteToViewRatio, 0.05, 1e-9) {
		t.Errorf("VoteToViewRatio = %.4f, want 0.05", stats.VoteToViewRatio)
	}
}

func TestDeriveEngagement_ZeroViewsWithCopies(t *testing.T) {
	// Copies without views (bulk import scenario): view-denominated ratios
	// stay zero instead of dividing by zero
	stats := DeriveEngagement(&model.CommunityStats{
		TotalPrompts: 2,
		TotalCopies:  8,
	})

	if stats.CopyToViewRatio != 0 {
		t.Errorf("CopyToViewRatio = %.4f, want 0", stats.CopyToViewRatio)
	}
	if !almostEqual(stats.AvgCopiesPerPrompt, 4, 1e-9) {
		t.Errorf("AvgCopiesPerPrompt = %.4f, want 4", stats.AvgCopiesPerPrompt)
	}
}
