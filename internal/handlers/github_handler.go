package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/models"
	"hyperhive-backend/internal/service"
	"hyperhive-backend/internal/utils"
)

type GitHubHandler struct {
	Service *service.GitHubService
}

func NewGitHubHandler(s *service.GitHubService) *GitHubHandler {
	return &GitHubHandler{Service: s}
}

func (h *GitHubHandler) AnalyzeDeveloper(c *gin.Context) {
	var req models.GitHubAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Owner == "" || req.Repository == "" || req.Username == "" {
		utils.BadRequestResponse(c, "owner, repository and username are required")
		return
	}

	analysis, err := h.Service.AnalyzeDeveloperStrongAreas(c.Request.Context(), req)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to analyze developer activity", err)
		return
	}
	utils.SuccessResponse(c, "Analysis completed", analysis)
}

func parseOptionalTime(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func (h *GitHubHandler) GetCommits(c *gin.Context) {
	owner := c.Query("owner")
	repository := c.Query("repository")
	username := c.Query("username")
	if owner == "" || repository == "" || username == "" {
		utils.BadRequestResponse(c, "owner, repository and username are required")
		return
	}

	since, ok := parseOptionalTime(c.Query("since"))
	if !ok {
		utils.BadRequestResponse(c, "since must be RFC3339")
		return
	}
	until, ok := parseOptionalTime(c.Query("until"))
	if !ok {
		utils.BadRequestResponse(c, "until must be RFC3339")
		return
	}

	commits, err := h.Service.GetUserCommits(c.Request.Context(), owner, repository, username, since, until)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch commits", err)
		return
	}
	if commits == nil {
		commits = []models.GitHubCommit{}
	}
	utils.SuccessResponse(c, "Commits retrieved", commits)
}

func (h *GitHubHandler) GetPullRequests(c *gin.Context) {
	owner := c.Query("owner")
	repository := c.Query("repository")
	username := c.Query("username")
	if owner == "" || repository == "" || username == "" {
		utils.BadRequestResponse(c, "owner, repository and username are required")
		return
	}

	pullRequests, err := h.Service.GetUserPullRequests(c.Request.Context(), owner, repository, username)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch pull requests", err)
		return
	}
	if pullRequests == nil {
		pullRequests = []models.GitHubPullRequest{}
	}
	utils.SuccessResponse(c, "Pull requests retrieved", pullRequests)
}
