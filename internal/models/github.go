package models

import "time"

// Wire models for the GitHub REST API. Field names follow the API's
// snake_case payloads.

type GitHubUser struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type GitHubCommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

type GitHubCommitDetails struct {
	Message   string              `json:"message"`
	Author    *GitHubCommitAuthor `json:"author,omitempty"`
	Committer *GitHubCommitAuthor `json:"committer,omitempty"`
}

type GitHubCommitStats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Total     int `json:"total"`
}

type GitHubCommitFile struct {
	Filename  string `json:"filename"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
	Status    string `json:"status"`
}

type GitHubCommit struct {
	SHA       string               `json:"sha"`
	Commit    *GitHubCommitDetails `json:"commit,omitempty"`
	Author    *GitHubUser          `json:"author,omitempty"`
	Committer *GitHubUser          `json:"committer,omitempty"`
	Stats     *GitHubCommitStats   `json:"stats,omitempty"`
	Files     []GitHubCommitFile   `json:"files,omitempty"`
}

type GitHubBranch struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

type GitHubPullRequest struct {
	ID        int64         `json:"id"`
	Number    int           `json:"number"`
	Title     string        `json:"title"`
	Body      string        `json:"body,omitempty"`
	State     string        `json:"state"`
	User      *GitHubUser   `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Head      *GitHubBranch `json:"head,omitempty"`
	Base      *GitHubBranch `json:"base,omitempty"`
}

type GitHubAnalysisRequest struct {
	Owner      string     `json:"owner"`
	Repository string     `json:"repository"`
	Username   string     `json:"username"`
	Since      *time.Time `json:"since,omitempty"`
	Until      *time.Time `json:"until,omitempty"`
}

// Aggregated analysis output.

type LanguageUsage struct {
	Language    string  `json:"language"`
	FileCount   int     `json:"fileCount"`
	LinesOfCode int     `json:"linesOfCode"`
	Percentage  float64 `json:"percentage"`
}

type TechnologyUsage struct {
	Technology string   `json:"technology"`
	UsageCount int      `json:"usageCount"`
	Percentage float64  `json:"percentage"`
	Files      []string `json:"files"`
}

type DomainArea struct {
	Area              string   `json:"area"`
	ContributionCount int      `json:"contributionCount"`
	Percentage        float64  `json:"percentage"`
	Examples          []string `json:"examples"`
}

type ConceptUsage struct {
	Concept         string   `json:"concept"`
	OccurrenceCount int      `json:"occurrenceCount"`
	Percentage      float64  `json:"percentage"`
	Examples        []string `json:"examples"`
}

type DeveloperStrongAreas struct {
	DeveloperUsername string            `json:"developerUsername"`
	DeveloperName     string            `json:"developerName"`
	TotalCommits      int               `json:"totalCommits"`
	TotalPullRequests int               `json:"totalPullRequests"`
	TotalLinesAdded   int               `json:"totalLinesAdded"`
	TotalLinesDeleted int               `json:"totalLinesDeleted"`
	Languages         []LanguageUsage   `json:"languages"`
	Technologies      []TechnologyUsage `json:"technologies"`
	DomainAreas       []DomainArea      `json:"domainAreas"`
	Concepts          []ConceptUsage    `json:"concepts"`
	AnalysisDate      time.Time         `json:"analysisDate"`
}
