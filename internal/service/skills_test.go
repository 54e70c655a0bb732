package service

import (
	"math"
	"testing"
)

func TestCompareSkillsMatching(t *testing.T) {
	testCases := []struct {
		name           string
		claimed        []string
		github         []string
		wantMatched    []string
		wantUnverified []string
		wantAdditional []string
		wantPercentage float64
	}{
		{
			name:           "exact match",
			claimed:        []string{"Docker"},
			github:         []string{"Docker"},
			wantMatched:    []string{"Docker"},
			wantPercentage: 100,
		},
		{
			name:        "typo within edit distance",
			claimed:     []string{"Docker"},
			github:      []string{"Dockr"},
			wantMatched: []string{"Docker"},
			// Dockr is a substring-miss but edit distance 1; the reverse
			// direction is substring-only, so it still counts as additional.
			wantAdditional: []string{"Dockr"},
			wantPercentage: 100,
		},
		{
			name:           "unrelated skills",
			claimed:        []string{"Docker"},
			github:         []string{"Kubernetes"},
			wantUnverified: []string{"Docker"},
			wantAdditional: []string{"Kubernetes"},
			wantPercentage: 0,
		},
		{
			name:           "substring match either direction",
			claimed:        []string{"React", "Entity Framework Core"},
			github:         []string{"React Native", "Entity Framework"},
			wantMatched:    []string{"React", "Entity Framework Core"},
			wantPercentage: 100,
		},
		{
			name:           "case and whitespace insensitive",
			claimed:        []string{"  DOCKER  "},
			github:         []string{"docker"},
			wantMatched:    []string{"  DOCKER  "},
			wantPercentage: 100,
		},
		{
			name:           "partial match percentage rounds",
			claimed:        []string{"Go", "Rust", "Zig"},
			github:         []string{"Go"},
			wantMatched:    []string{"Go"},
			wantUnverified: []string{"Rust", "Zig"},
			wantPercentage: 33.33,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := CompareSkills(tc.claimed, tc.github)

			if !equalStrings(got.MatchedSkills, tc.wantMatched) {
				t.Errorf("MatchedSkills = %v, want %v", got.MatchedSkills, tc.wantMatched)
			}
			if !equalStrings(got.UnverifiedSkills, tc.wantUnverified) {
				t.Errorf("UnverifiedSkills = %v, want %v", got.UnverifiedSkills, tc.wantUnverified)
			}
			if !equalStrings(got.AdditionalGitHubSkills, tc.wantAdditional) {
				t.Errorf("AdditionalGitHubSkills = %v, want %v", got.AdditionalGitHubSkills, tc.wantAdditional)
			}
			if math.Abs(got.MatchPercentage-tc.wantPercentage) > 0.01 {
				t.Errorf("MatchPercentage = %.2f, want %.2f", got.MatchPercentage, tc.wantPercentage)
			}
		})
	}
}

func TestCompareSkillsEmptyClaimed(t *testing.T) {
	got := CompareSkills(nil, []string{"Go", "Docker"})
	if got.MatchPercentage != 0 {
		t.Errorf("MatchPercentage = %.2f, want 0 for empty claimed list", got.MatchPercentage)
	}
	if len(got.AdditionalGitHubSkills) != 2 {
		t.Errorf("AdditionalGitHubSkills = %v, want both skills", got.AdditionalGitHubSkills)
	}
}

func TestLevenshtein(t *testing.T) {
	testCases := []struct {
		s, t string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"docker", "dockr", 1},
		{"go", "go", 0},
	}

	for _, tc := range testCases {
		if got := levenshtein(tc.s, tc.t); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.s, tc.t, got, tc.want)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
