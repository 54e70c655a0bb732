package service

import (
	"math"
	"strings"

	"hyperhive-backend/internal/models"
)

// CompareSkills matches a learner's claimed skills against skills
// derived from repository activity. A claimed skill counts as matched
// when it is a substring of a derived skill (or vice versa), or when
// the edit distance between them is at most 2, after lowercasing and
// trimming both sides.
func CompareSkills(claimedSkills, githubSkills []string) models.SkillsComparison {
	normalizedClaimed := make([]string, len(claimedSkills))
	for i, s := range claimedSkills {
		normalizedClaimed[i] = strings.ToLower(strings.TrimSpace(s))
	}
	normalizedGitHub := make([]string, len(githubSkills))
	for i, s := range githubSkills {
		normalizedGitHub[i] = strings.ToLower(strings.TrimSpace(s))
	}

	var matched []string
	matchedSet := make(map[string]bool)
	for i, cs := range normalizedClaimed {
		for _, gs := range normalizedGitHub {
			if strings.Contains(gs, cs) || strings.Contains(cs, gs) || levenshtein(cs, gs) <= 2 {
				matched = append(matched, claimedSkills[i])
				matchedSet[cs] = true
				break
			}
		}
	}

	var unverified []string
	for i, cs := range normalizedClaimed {
		if !matchedSet[cs] {
			unverified = append(unverified, claimedSkills[i])
		}
	}

	// Additional skills only use the substring test, no edit distance:
	// a fuzzy near-miss still counts as "not claimed".
	var additional []string
	for i, gs := range normalizedGitHub {
		related := false
		for _, cs := range normalizedClaimed {
			if strings.Contains(cs, gs) || strings.Contains(gs, cs) {
				related = true
				break
			}
		}
		if !related {
			additional = append(additional, githubSkills[i])
		}
	}

	var matchPercentage float64
	if len(claimedSkills) > 0 {
		matchPercentage = float64(len(matched)) / float64(len(claimedSkills)) * 100
		matchPercentage = math.Round(matchPercentage*100) / 100
	}

	return models.SkillsComparison{
		ClaimedSkills:          claimedSkills,
		GitHubSkills:           githubSkills,
		MatchedSkills:          matched,
		UnverifiedSkills:       unverified,
		AdditionalGitHubSkills: additional,
		MatchPercentage:        matchPercentage,
	}
}

func levenshtein(s, t string) int {
	n, m := len(s), len(t)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}

	for i := 1; i <= n; i++ {
		curr[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if s[i-1] == t[j-1] {
				cost = 0
			}
			curr[j] = min(min(prev[j]+1, curr[j-1]+1), prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[m]
}
