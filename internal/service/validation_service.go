package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"hyperhive-backend/internal/config"
	"hyperhive-backend/internal/errs"
	"hyperhive-backend/internal/event"
	"hyperhive-backend/internal/models"
)

// Concepts from the contribution analysis that count as verifiable
// skills when comparing against a learner's claimed list.
var skillConcepts = map[string]bool{
	"Async/Await": true,
	"LINQ":        true,
	"REST API":    true,
	"GraphQL":     true,
	"gRPC":        true,
}

type contributionAnalyzer interface {
	AnalyzeDeveloperStrongAreas(ctx context.Context, request models.GitHubAnalysisRequest) (*models.DeveloperStrongAreas, error)
}

type validationAnalyst interface {
	GenerateValidationAnalysis(ctx context.Context, prompt string) (*models.AIValidationResult, error)
}

type ValidationService struct {
	learners learnerStore
	github   contributionAnalyzer
	openai   validationAnalyst
	events   *event.EventPublisher
}

func NewValidationService(learners learnerStore, github contributionAnalyzer, openai validationAnalyst, events *event.EventPublisher) *ValidationService {
	return &ValidationService{learners: learners, github: github, openai: openai, events: events}
}

// ValidateLearnerProfile checks a learner's claimed skills against their
// contributions to the configured repository.
func (s *ValidationService) ValidateLearnerProfile(ctx context.Context, learnerID, gitHubUsername string) (*models.ProfileValidationResponse, error) {
	owner := config.AppConfig.GitHubRepoOwner
	repo := config.AppConfig.GitHubRepoName

	log.Printf("Starting profile validation for learner %s with GitHub %s (%s/%s)", learnerID, gitHubUsername, owner, repo)

	learner, err := s.learners.FindByID(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	var claimedSkills []string
	if learner.AIProfile != nil {
		claimedSkills = learner.AIProfile.Skills
	}
	if len(claimedSkills) == 0 {
		return nil, errs.Validationf("learner %s has no skills claimed in their profile", learnerID)
	}

	analysis, err := s.github.AnalyzeDeveloperStrongAreas(ctx, models.GitHubAnalysisRequest{
		Owner:      owner,
		Repository: repo,
		Username:   gitHubUsername,
	})
	if err != nil {
		return nil, err
	}

	githubSkills := extractSkillsFromAnalysis(analysis)
	comparison := CompareSkills(claimedSkills, githubSkills)

	aiResult := s.analyzeWithAI(ctx, learner.AIProfile, analysis, comparison)

	topTechnologies := make([]string, 0, 10)
	for i, t := range analysis.Technologies {
		if i >= 10 {
			break
		}
		topTechnologies = append(topTechnologies, t.Technology)
	}
	topLanguages := make([]string, 0, len(analysis.Languages))
	for _, l := range analysis.Languages {
		topLanguages = append(topLanguages, l.Language)
	}

	response := &models.ProfileValidationResponse{
		LearnerID:       learnerID,
		GitHubUsername:  gitHubUsername,
		ValidationScore: aiResult.Score,
		ValidationLevel: validationLevel(aiResult.Score),
		GitHubProfile: models.GitHubProfileSummary{
			Username:       gitHubUsername,
			PublicRepos:    analysis.TotalCommits,
			TopLanguages:   topLanguages,
			TopicInterests: topTechnologies,
			TotalCommits:   analysis.TotalCommits,
		},
		SkillsComparison: comparison,
		AIAnalysis:       aiResult.Analysis,
		Recommendations:  aiResult.Recommendations,
		ValidatedAt:      time.Now().UTC(),
	}

	log.Printf("Profile validation completed for learner %s: score %d", learnerID, aiResult.Score)

	if err := s.events.Publish(event.ProfileValidated, map[string]interface{}{
		"learnerId": learnerID,
		"username":  gitHubUsername,
		"score":     aiResult.Score,
	}); err != nil {
		log.Printf("Failed to publish profile.validated: %v", err)
	}

	return response, nil
}

// extractSkillsFromAnalysis flattens languages, technologies and the
// skill-flagged concepts into one deduplicated list.
func extractSkillsFromAnalysis(analysis *models.DeveloperStrongAreas) []string {
	var skills []string
	seen := make(map[string]bool)
	add := func(skill string) {
		if !seen[skill] {
			seen[skill] = true
			skills = append(skills, skill)
		}
	}

	for _, l := range analysis.Languages {
		add(l.Language)
	}
	for _, t := range analysis.Technologies {
		add(t.Technology)
	}
	for _, c := range analysis.Concepts {
		if skillConcepts[c.Concept] {
			add(c.Concept)
		}
	}
	return skills
}

func (s *ValidationService) analyzeWithAI(ctx context.Context, profile *models.LearnerAIProfile, analysis *models.DeveloperStrongAreas, comparison models.SkillsComparison) models.AIValidationResult {
	prompt := buildValidationPrompt(profile, analysis, comparison)

	result, err := s.openai.GenerateValidationAnalysis(ctx, prompt)
	if err == nil {
		return *result
	}

	log.Printf("AI validation failed, using rule-based fallback: %v", err)

	score := ruleBasedScore(comparison, analysis)
	alignment := "moderate"
	if score >= 70 {
		alignment = "good"
	}
	return models.AIValidationResult{
		Score: score,
		Analysis: fmt.Sprintf("Based on %d commits and %.0f%% skill match, the profile shows %s alignment with GitHub activity.",
			analysis.TotalCommits, comparison.MatchPercentage, alignment),
		Recommendations: fallbackRecommendations(comparison, analysis),
	}
}

func buildValidationPrompt(profile *models.LearnerAIProfile, analysis *models.DeveloperStrongAreas, comparison models.SkillsComparison) string {
	profileJSON, _ := json.MarshalIndent(profile, "", "  ")

	languages := make([]string, 0, len(analysis.Languages))
	for _, l := range analysis.Languages {
		languages = append(languages, fmt.Sprintf("%s (%.1f%%)", l.Language, l.Percentage))
	}
	technologies := make([]string, 0, 10)
	for i, t := range analysis.Technologies {
		if i >= 10 {
			break
		}
		technologies = append(technologies, t.Technology)
	}
	domains := make([]string, 0, len(analysis.DomainAreas))
	for _, d := range analysis.DomainAreas {
		domains = append(domains, d.Area)
	}

	return fmt.Sprintf(`
You are an expert at validating software engineer profiles. Analyze the following data and provide a validation score.

LEARNER'S CLAIMED PROFILE:
%s

GITHUB PROFILE ANALYSIS:
- Username: %s
- Total Commits: %d
- Total Pull Requests: %d
- Lines Added: %d
- Lines Deleted: %d

LANGUAGES USED:
%s

TECHNOLOGIES:
%s

DOMAIN AREAS:
%s

SKILLS COMPARISON:
- Claimed Skills: %s
- GitHub Skills/Languages: %s
- Matched Skills: %s
- Unverified Skills: %s
- Match Percentage: %.2f%%

TASK:
1. Provide a validation score from 0-100 based on how well the claimed profile matches GitHub activity
2. Consider: skill matches, GitHub activity level (commits, PRs), technology usage
3. Provide brief analysis (2-3 sentences)
4. Give 3 specific recommendations

Return ONLY valid JSON in this format:
{
  "score": 85,
  "analysis": "Brief analysis here...",
  "recommendations": [
    "Recommendation 1",
    "Recommendation 2",
    "Recommendation 3"
  ]
}`,
		string(profileJSON),
		analysis.DeveloperUsername,
		analysis.TotalCommits,
		analysis.TotalPullRequests,
		analysis.TotalLinesAdded,
		analysis.TotalLinesDeleted,
		strings.Join(languages, ", "),
		strings.Join(technologies, ", "),
		strings.Join(domains, ", "),
		strings.Join(comparison.ClaimedSkills, ", "),
		strings.Join(comparison.GitHubSkills, ", "),
		strings.Join(comparison.MatchedSkills, ", "),
		strings.Join(comparison.UnverifiedSkills, ", "),
		comparison.MatchPercentage,
	)
}

// ruleBasedScore is the deterministic fallback: 40 points for skill
// match, 30 for commit volume, 15 for technology diversity, 15 for
// domain coverage, clamped to 100.
func ruleBasedScore(comparison models.SkillsComparison, analysis *models.DeveloperStrongAreas) int {
	score := int(comparison.MatchPercentage * 0.4)
	score += min(analysis.TotalCommits/10, 30)
	score += min(len(analysis.Technologies), 15)
	score += min(len(analysis.DomainAreas)*3, 15)
	return min(score, 100)
}

func fallbackRecommendations(comparison models.SkillsComparison, analysis *models.DeveloperStrongAreas) []string {
	var recommendations []string

	if len(comparison.UnverifiedSkills) > 0 {
		top := comparison.UnverifiedSkills
		if len(top) > 3 {
			top = top[:3]
		}
		recommendations = append(recommendations, "Create public projects showcasing: "+strings.Join(top, ", "))
	}
	if len(comparison.AdditionalGitHubSkills) > 0 {
		top := comparison.AdditionalGitHubSkills
		if len(top) > 3 {
			top = top[:3]
		}
		recommendations = append(recommendations, "Consider adding these skills to your profile: "+strings.Join(top, ", "))
	}
	if analysis.TotalCommits < 50 {
		recommendations = append(recommendations, "Increase your GitHub activity by contributing to open-source projects or creating personal projects")
	} else {
		recommendations = append(recommendations, "Continue maintaining consistent GitHub activity to strengthen your profile")
	}

	for len(recommendations) < 3 {
		recommendations = append(recommendations, "Keep learning and building projects in your areas of interest")
	}
	return recommendations[:3]
}

func validationLevel(score int) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}
