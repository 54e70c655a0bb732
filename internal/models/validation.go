package models

import "time"

type ValidateProfileRequest struct {
	LearnerID      string `json:"learnerId" binding:"required"`
	GitHubUsername string `json:"githubUsername" binding:"required"`
}

type SkillsComparison struct {
	ClaimedSkills          []string `json:"claimedSkills"`
	GitHubSkills           []string `json:"githubSkills"`
	MatchedSkills          []string `json:"matchedSkills"`
	UnverifiedSkills       []string `json:"unverifiedSkills"`
	AdditionalGitHubSkills []string `json:"additionalGithubSkills"`
	MatchPercentage        float64  `json:"matchPercentage"`
}

type GitHubProfileSummary struct {
	Username       string   `json:"username"`
	PublicRepos    int      `json:"publicRepos"`
	TopLanguages   []string `json:"topLanguages"`
	TopicInterests []string `json:"topicInterests"`
	TotalCommits   int      `json:"totalCommits"`
	YearsActive    int      `json:"yearsActive"`
}

// AIValidationResult is the shape the LLM is asked to return for
// profile validation.
type AIValidationResult struct {
	Score           int      `json:"score"`
	Analysis        string   `json:"analysis"`
	Recommendations []string `json:"recommendations"`
}

type ProfileValidationResponse struct {
	LearnerID        string               `json:"learnerId"`
	GitHubUsername   string               `json:"githubUsername"`
	ValidationScore  int                  `json:"validationScore"`
	ValidationLevel  string               `json:"validationLevel"`
	GitHubProfile    GitHubProfileSummary `json:"githubProfile"`
	SkillsComparison SkillsComparison     `json:"skillsComparison"`
	AIAnalysis       string               `json:"aiAnalysis"`
	Recommendations  []string             `json:"recommendations"`
	ValidatedAt      time.Time            `json:"validatedAt"`
}
