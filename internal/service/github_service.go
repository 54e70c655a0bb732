package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hyperhive-backend/internal/config"
	"hyperhive-backend/internal/models"
)

const (
	githubPerPage     = 100
	commitDetailLimit = 50
	analysisCacheTTL  = time.Hour
)

type GitHubService struct {
	httpClient *http.Client
	baseURL    string
	token      string
	cache      *redis.Client
}

// NewGitHubService builds a client for the GitHub REST API. cache may be
// nil, in which case every analysis hits the API.
func NewGitHubService(cache *redis.Client) *GitHubService {
	return &GitHubService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    config.AppConfig.GitHubAPIURL,
		token:      config.AppConfig.GitHubToken,
		cache:      cache,
	}
}

func (s *GitHubService) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "hyperhive-backend/1.0")
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return s.httpClient.Do(req)
}

func hasNextPage(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Link"), `rel="next"`)
}

// GetUserCommits walks the paginated commit list for one author, then
// fetches per-commit detail (stats and file list) for the first 50
// commits. Detail failures are logged and skipped.
func (s *GitHubService) GetUserCommits(ctx context.Context, owner, repository, username string, since, until *time.Time) ([]models.GitHubCommit, error) {
	var commits []models.GitHubCommit

	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("per_page", fmt.Sprintf("%d", githubPerPage))
		q.Set("page", fmt.Sprintf("%d", page))
		q.Set("author", username)
		if since != nil {
			q.Set("since", since.UTC().Format(time.RFC3339))
		}
		if until != nil {
			q.Set("until", until.UTC().Format(time.RFC3339))
		}

		reqURL := fmt.Sprintf("%s/repos/%s/%s/commits?%s", s.baseURL, owner, repository, q.Encode())
		resp, err := s.get(ctx, reqURL)
		if err != nil {
			return nil, fmt.Errorf("fetching commits for %s: %w", username, err)
		}

		if resp.StatusCode == http.StatusNotFound {
			log.Printf("Repository %s/%s not found", owner, repository)
			resp.Body.Close()
			break
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("github commits request returned %d: %s", resp.StatusCode, string(body))
		}

		var pageCommits []models.GitHubCommit
		err = json.NewDecoder(resp.Body).Decode(&pageCommits)
		more := hasNextPage(resp)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding commits page %d: %w", page, err)
		}

		if len(pageCommits) == 0 {
			break
		}
		commits = append(commits, pageCommits...)

		if !more {
			break
		}
	}

	for i := range commits {
		if i >= commitDetailLimit {
			break
		}
		if err := s.fillCommitDetail(ctx, owner, repository, &commits[i]); err != nil {
			log.Printf("Failed to fetch stats for commit %s: %v", commits[i].SHA, err)
		}
	}

	return commits, nil
}

func (s *GitHubService) fillCommitDetail(ctx context.Context, owner, repository string, commit *models.GitHubCommit) error {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/commits/%s", s.baseURL, owner, repository, commit.SHA)
	resp, err := s.get(ctx, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("commit detail request returned %d", resp.StatusCode)
	}

	var detailed models.GitHubCommit
	if err := json.NewDecoder(resp.Body).Decode(&detailed); err != nil {
		return err
	}
	if detailed.Stats != nil {
		commit.Stats = detailed.Stats
	}
	if detailed.Files != nil {
		commit.Files = detailed.Files
	}
	return nil
}

// GetUserPullRequests fetches all PRs (any state) and keeps those opened
// by the given login, compared case-insensitively.
func (s *GitHubService) GetUserPullRequests(ctx context.Context, owner, repository, username string) ([]models.GitHubPullRequest, error) {
	var pullRequests []models.GitHubPullRequest

	for page := 1; ; page++ {
		reqURL := fmt.Sprintf("%s/repos/%s/%s/pulls?state=all&per_page=%d&page=%d", s.baseURL, owner, repository, githubPerPage, page)
		resp, err := s.get(ctx, reqURL)
		if err != nil {
			return nil, fmt.Errorf("fetching pull requests for %s: %w", username, err)
		}

		if resp.StatusCode == http.StatusNotFound {
			log.Printf("Repository %s/%s not found", owner, repository)
			resp.Body.Close()
			break
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("github pulls request returned %d: %s", resp.StatusCode, string(body))
		}

		var pagePRs []models.GitHubPullRequest
		err = json.NewDecoder(resp.Body).Decode(&pagePRs)
		more := hasNextPage(resp)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decoding pulls page %d: %w", page, err)
		}

		if len(pagePRs) == 0 {
			break
		}
		for _, pr := range pagePRs {
			if pr.User != nil && strings.EqualFold(pr.User.Login, username) {
				pullRequests = append(pullRequests, pr)
			}
		}

		if !more {
			break
		}
	}

	return pullRequests, nil
}

// AnalyzeDeveloperStrongAreas aggregates a contributor's commits and PRs
// into language/technology/domain/concept breakdowns. Results are cached
// in Redis for an hour keyed by repo and username.
func (s *GitHubService) AnalyzeDeveloperStrongAreas(ctx context.Context, request models.GitHubAnalysisRequest) (*models.DeveloperStrongAreas, error) {
	cacheKey := fmt.Sprintf("github:analysis:%s:%s:%s", request.Owner, request.Repository, request.Username)
	if s.cache != nil && request.Since == nil && request.Until == nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var analysis models.DeveloperStrongAreas
			if err := json.Unmarshal([]byte(cached), &analysis); err == nil {
				log.Printf("Analysis cache hit for %s", request.Username)
				return &analysis, nil
			}
		}
	}

	log.Printf("Analyzing developer strong areas for user: %s", request.Username)

	commits, err := s.GetUserCommits(ctx, request.Owner, request.Repository, request.Username, request.Since, request.Until)
	if err != nil {
		return nil, err
	}
	pullRequests, err := s.GetUserPullRequests(ctx, request.Owner, request.Repository, request.Username)
	if err != nil {
		return nil, err
	}

	analysis := &models.DeveloperStrongAreas{
		DeveloperUsername: request.Username,
		DeveloperName:     request.Username,
		TotalCommits:      len(commits),
		TotalPullRequests: len(pullRequests),
		AnalysisDate:      time.Now().UTC(),
	}
	if len(commits) > 0 && commits[0].Commit != nil && commits[0].Commit.Author != nil {
		analysis.DeveloperName = commits[0].Commit.Author.Name
	}
	for _, c := range commits {
		if c.Stats != nil {
			analysis.TotalLinesAdded += c.Stats.Additions
			analysis.TotalLinesDeleted += c.Stats.Deletions
		}
	}

	analysis.Languages = analyzeLanguages(commits)
	analysis.Technologies = analyzeTechnologies(commits, pullRequests)
	analysis.DomainAreas = analyzeDomainAreas(commits, pullRequests)
	analysis.Concepts = analyzeConcepts(commits)

	log.Printf("Analysis completed for %s: %d languages, %d technologies",
		request.Username, len(analysis.Languages), len(analysis.Technologies))

	if s.cache != nil && request.Since == nil && request.Until == nil {
		if payload, err := json.Marshal(analysis); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, analysisCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache analysis for %s: %v", request.Username, err)
			}
		}
	}

	return analysis, nil
}
