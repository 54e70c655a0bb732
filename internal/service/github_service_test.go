package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hyperhive-backend/internal/models"
)

func testGitHubService(baseURL string) *GitHubService {
	return &GitHubService{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding response: %v", err)
	}
}

func TestGetUserCommitsPagination(t *testing.T) {
	page1 := make([]models.GitHubCommit, githubPerPage)
	for i := range page1 {
		page1[i] = models.GitHubCommit{SHA: fmt.Sprintf("sha-%d", i)}
	}
	page2 := []models.GitHubCommit{{SHA: "sha-last"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/commits/") {
			// Per-commit detail request.
			writeJSON(t, w, models.GitHubCommit{
				SHA:   strings.TrimPrefix(r.URL.Path, "/repos/acme/product/commits/"),
				Stats: &models.GitHubCommitStats{Additions: 1, Deletions: 1},
			})
			return
		}
		switch r.URL.Query().Get("page") {
		case "1":
			w.Header().Set("Link", `<`+r.Host+`?page=2>; rel="next"`)
			writeJSON(t, w, page1)
		default:
			writeJSON(t, w, page2)
		}
	}))
	defer srv.Close()

	svc := testGitHubService(srv.URL)
	commits, err := svc.GetUserCommits(context.Background(), "acme", "product", "ada", nil, nil)
	if err != nil {
		t.Fatalf("GetUserCommits: %v", err)
	}

	if len(commits) != githubPerPage+1 {
		t.Errorf("got %d commits, want %d", len(commits), githubPerPage+1)
	}

	// Detail is fetched for the first commitDetailLimit commits only.
	for i, c := range commits {
		hasStats := c.Stats != nil
		if i < commitDetailLimit && !hasStats {
			t.Errorf("commit %d missing stats", i)
		}
		if i >= commitDetailLimit && hasStats {
			t.Errorf("commit %d has stats beyond the detail limit", i)
		}
	}
}

func TestGetUserCommitsStopsWithoutNextLink(t *testing.T) {
	var listRequests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/commits/") {
			writeJSON(t, w, models.GitHubCommit{})
			return
		}
		listRequests++
		// Full page but no Link header: pagination must still stop.
		page := make([]models.GitHubCommit, githubPerPage)
		writeJSON(t, w, page)
	}))
	defer srv.Close()

	svc := testGitHubService(srv.URL)
	commits, err := svc.GetUserCommits(context.Background(), "acme", "product", "ada", nil, nil)
	if err != nil {
		t.Fatalf("GetUserCommits: %v", err)
	}
	if listRequests != 1 {
		t.Errorf("made %d list requests, want 1", listRequests)
	}
	if len(commits) != githubPerPage {
		t.Errorf("got %d commits, want %d", len(commits), githubPerPage)
	}
}

func TestGetUserCommitsEmptyPageStops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Claims a next page forever, but returns nothing.
		w.Header().Set("Link", `<next>; rel="next"`)
		writeJSON(t, w, []models.GitHubCommit{})
	}))
	defer srv.Close()

	svc := testGitHubService(srv.URL)
	commits, err := svc.GetUserCommits(context.Background(), "acme", "product", "ada", nil, nil)
	if err != nil {
		t.Fatalf("GetUserCommits: %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("got %d commits, want 0", len(commits))
	}
}

func TestGetUserCommitsRepositoryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	svc := testGitHubService(srv.URL)
	commits, err := svc.GetUserCommits(context.Background(), "acme", "missing", "ada", nil, nil)
	if err != nil {
		t.Fatalf("GetUserCommits should tolerate a missing repository, got %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("got %d commits from a missing repository, want 0", len(commits))
	}
}

func TestGetUserCommitsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	svc := testGitHubService(srv.URL)
	if _, err := svc.GetUserCommits(context.Background(), "acme", "product", "ada", nil, nil); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestGetUserCommitsTimeWindow(t *testing.T) {
	var gotSince, gotUntil string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSince = r.URL.Query().Get("since")
		gotUntil = r.URL.Query().Get("until")
		writeJSON(t, w, []models.GitHubCommit{})
	}))
	defer srv.Close()

	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	svc := testGitHubService(srv.URL)
	if _, err := svc.GetUserCommits(context.Background(), "acme", "product", "ada", &since, &until); err != nil {
		t.Fatalf("GetUserCommits: %v", err)
	}
	if gotSince != "2025-01-01T00:00:00Z" {
		t.Errorf("since = %q, want RFC3339 timestamp", gotSince)
	}
	if gotUntil != "2025-06-30T23:59:59Z" {
		t.Errorf("until = %q, want RFC3339 timestamp", gotUntil)
	}
}

func TestGetUserPullRequestsFiltersByAuthor(t *testing.T) {
	prs := []models.GitHubPullRequest{
		{Number: 1, Title: "by ada", User: &models.GitHubUser{Login: "Ada"}},
		{Number: 2, Title: "by someone else", User: &models.GitHubUser{Login: "grace"}},
		{Number: 3, Title: "no author"},
		{Number: 4, Title: "by ada again", User: &models.GitHubUser{Login: "ada"}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != "all" {
			t.Errorf("state = %q, want all", r.URL.Query().Get("state"))
		}
		writeJSON(t, w, prs)
	}))
	defer srv.Close()

	svc := testGitHubService(srv.URL)
	got, err := svc.GetUserPullRequests(context.Background(), "acme", "product", "ada")
	if err != nil {
		t.Fatalf("GetUserPullRequests: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d pull requests, want 2 (login match is case-insensitive)", len(got))
	}
	if got[0].Number != 1 || got[1].Number != 4 {
		t.Errorf("got PRs %d and %d, want 1 and 4", got[0].Number, got[1].Number)
	}
}

func TestAnalyzeDeveloperStrongAreas(t *testing.T) {
	commit := models.GitHubCommit{
		SHA: "abc123",
		Commit: &models.GitHubCommitDetails{
			Message: "add Dockerfile and async Task handlers in src/worker.cs",
			Author:  &models.GitHubCommitAuthor{Name: "Ada Lovelace"},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/commits/abc123"):
			detailed := commit
			detailed.Stats = &models.GitHubCommitStats{Additions: 120, Deletions: 30}
			detailed.Files = []models.GitHubCommitFile{{Filename: "src/worker.cs", Additions: 120}}
			writeJSON(t, w, detailed)
		case strings.Contains(r.URL.Path, "/commits"):
			writeJSON(t, w, []models.GitHubCommit{commit})
		case strings.Contains(r.URL.Path, "/pulls"):
			writeJSON(t, w, []models.GitHubPullRequest{
				{Title: "Dockerize workers", User: &models.GitHubUser{Login: "ada"}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc := testGitHubService(srv.URL)
	analysis, err := svc.AnalyzeDeveloperStrongAreas(context.Background(), models.GitHubAnalysisRequest{
		Owner: "acme", Repository: "product", Username: "ada",
	})
	if err != nil {
		t.Fatalf("AnalyzeDeveloperStrongAreas: %v", err)
	}

	if analysis.DeveloperName != "Ada Lovelace" {
		t.Errorf("DeveloperName = %q, want from commit author", analysis.DeveloperName)
	}
	if analysis.TotalCommits != 1 || analysis.TotalPullRequests != 1 {
		t.Errorf("totals = %d commits / %d PRs, want 1/1", analysis.TotalCommits, analysis.TotalPullRequests)
	}
	if analysis.TotalLinesAdded != 120 || analysis.TotalLinesDeleted != 30 {
		t.Errorf("lines = +%d/-%d, want +120/-30", analysis.TotalLinesAdded, analysis.TotalLinesDeleted)
	}

	if len(analysis.Languages) == 0 || analysis.Languages[0].Language != "C#" {
		t.Errorf("languages = %+v, want C# first", analysis.Languages)
	}
	foundDocker := false
	for _, tech := range analysis.Technologies {
		if tech.Technology == "Docker" {
			foundDocker = true
		}
	}
	if !foundDocker {
		t.Errorf("technologies %+v missing Docker", analysis.Technologies)
	}
}
