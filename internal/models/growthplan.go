package models

import "time"

type GenerateGrowthPlanRequest struct {
	LearnerID string `json:"learnerId" binding:"required"`
}

type SkillGap struct {
	SkillName          string `json:"skillName"`
	CurrentProficiency string `json:"currentProficiency"`
	TargetProficiency  string `json:"targetProficiency"`
	Priority           string `json:"priority"`
	Reasoning          string `json:"reasoning"`
}

type LearningPhase struct {
	PhaseNumber        int      `json:"phaseNumber"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	DurationWeeks      int      `json:"durationWeeks"`
	SkillsToCover      []string `json:"skillsToCover"`
	LearningObjectives []string `json:"learningObjectives"`
	PracticalProjects  []string `json:"practicalProjects"`
	SuccessMetrics     string   `json:"successMetrics"`
}

type RecommendedResource struct {
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	URL            string   `json:"url"`
	Provider       string   `json:"provider"`
	Description    string   `json:"description"`
	SkillsCovered  []string `json:"skillsCovered"`
	Difficulty     string   `json:"difficulty"`
	IsFree         bool     `json:"isFree"`
	EstimatedHours int      `json:"estimatedHours"`
}

// AIGrowthPlan is the shape the LLM is asked to return.
type AIGrowthPlan struct {
	Overview                string                `json:"overview"`
	EstimatedDurationMonths int                   `json:"estimatedDurationMonths"`
	LearningPhases          []LearningPhase       `json:"learningPhases"`
	RecommendedResources    []RecommendedResource `json:"recommendedResources"`
	KeyMilestones           []string              `json:"keyMilestones"`
	SuccessCriteria         string                `json:"successCriteria"`
}

type GrowthPlanResponse struct {
	LearnerID               string                `json:"learnerId"`
	LearnerName             string                `json:"learnerName"`
	CurrentLevel            string                `json:"currentLevel"`
	TargetLevel             string                `json:"targetLevel"`
	EstimatedDurationMonths int                   `json:"estimatedDurationMonths"`
	Overview                string                `json:"overview"`
	SkillGaps               []SkillGap            `json:"skillGaps"`
	LearningPhases          []LearningPhase       `json:"learningPhases"`
	RecommendedResources    []RecommendedResource `json:"recommendedResources"`
	KeyMilestones           []string              `json:"keyMilestones"`
	SuccessCriteria         string                `json:"successCriteria"`
	GeneratedAt             time.Time             `json:"generatedAt"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Context string `json:"context,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
