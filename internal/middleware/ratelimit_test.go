package middleware

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 5, Window: time.Minute, KeyFn: KeyByIP})

	for i := 0; i < 5; i++ {
		if !rl.Allow("ip:1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Error("request 6 should be blocked")
	}
}

func TestRateLimiter_IndependentKeys(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 2, Window: time.Minute, KeyFn: KeyByIP})

	rl.Allow("ip:1.1.1.1")
	rl.Allow("ip:1.1.1.1")
	if rl.Allow("ip:1.1.1.1") {
		t.Error("first key should be exhausted")
	}
	if !rl.Allow("ip:2.2.2.2") {
		t.Error("second key should not be affected by first key's usage")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: 20 * time.Millisecond, KeyFn: KeyByIP})

	if !rl.Allow("ip:1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("ip:1.2.3.4") {
		t.Fatal("second request in window should be blocked")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("ip:1.2.3.4") {
		t.Error("request after window expiry should be allowed")
	}
}

func TestRateLimiter_ManyKeysNoInterference(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 3, Window: time.Minute, KeyFn: KeyByIP})

	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("user:user-%d", i)
		for j := 0; j < 3; j++ {
			if !rl.Allow(key) {
				t.Fatalf("key %s request %d should be allowed", key, j+1)
			}
		}
		if rl.Allow(key) {
			t.Fatalf("key %s request 4 should be blocked", key)
		}
	}
}

func TestPreconfiguredLimiters(t *testing.T) {
	tests := []struct {
		name string
		rl   *RateLimiter
		max  int
	}{
		{"vote", NewVoteRateLimiter(), 10},
		{"trending", NewTrendingRateLimiter(), 60},
		{"stats", NewStatsRateLimiter(), 10},
		{"counter", NewCounterRateLimiter(), 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.max; i++ {
				if !tt.rl.Allow("ip:9.9.9.9") {
					t.Fatalf("request %d/%d should be allowed", i+1, tt.max)
				}
			}
			if tt.rl.Allow("ip:9.9.9.9") {
				t.Errorf("request %d should be blocked", tt.max+1)
			}
		})
	}
}
