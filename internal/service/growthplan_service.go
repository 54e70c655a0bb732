package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hyperhive-backend/internal/errs"
	"hyperhive-backend/internal/event"
	"hyperhive-backend/internal/models"
)

// Career ladder used to pick the target level for a plan.
var careerProgression = map[string]string{
	"beginner":     "intermediate",
	"junior":       "mid-level",
	"mid-level":    "senior",
	"intermediate": "senior",
	"senior":       "team lead",
	"team lead":    "architect",
	"lead":         "architect",
}

var levelRequiredSkills = map[string][]string{
	"senior": {
		"System Design", "Architecture Patterns", "Design Patterns",
		"Clean Architecture", "Microservices", "Performance Optimization",
		"Code Review", "Mentoring", "Technical Documentation",
	},
	"team lead": {
		"Leadership", "Team Management", "Project Planning",
		"Agile/Scrum", "Stakeholder Communication", "Technical Strategy",
		"Conflict Resolution", "Performance Management", "Roadmap Planning",
	},
	"architect": {
		"Enterprise Architecture", "Solution Architecture", "Cloud Architecture",
		"Scalability Design", "Security Architecture", "Technology Evaluation",
		"Cross-functional Collaboration", "Architecture Documentation", "Technical Vision",
	},
}

type growthPlanGenerator interface {
	GenerateGrowthPlan(ctx context.Context, prompt string) (*models.AIGrowthPlan, error)
}

type GrowthPlanService struct {
	learners  learnerStore
	attempts  attemptStore
	generator growthPlanGenerator
	events    *event.EventPublisher
}

func NewGrowthPlanService(learners learnerStore, attempts attemptStore, generator growthPlanGenerator, events *event.EventPublisher) *GrowthPlanService {
	return &GrowthPlanService{learners: learners, attempts: attempts, generator: generator, events: events}
}

func (s *GrowthPlanService) GenerateGrowthPlan(ctx context.Context, learnerID string) (*models.GrowthPlanResponse, error) {
	log.Printf("Generating growth plan for learner %s", learnerID)

	learner, err := s.learners.FindByID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if learner.AIProfile == nil {
		return nil, errs.Validationf("learner %s profile data is missing", learnerID)
	}
	profile := learner.AIProfile

	var attempts []models.QuizAttempt
	if objID, err := primitive.ObjectIDFromHex(learnerID); err == nil {
		if all, err := s.attempts.FindByLearner(ctx, objID); err == nil {
			attempts = all
			if len(attempts) > 5 {
				attempts = attempts[:5]
			}
		}
	}

	currentLevel := determineCurrentLevel(profile.CurrentLevel)
	targetLevel := nextCareerLevel(currentLevel)
	skillGaps := identifySkillGaps(profile, targetLevel)

	response := s.generateAIPlan(ctx, learner, profile, currentLevel, targetLevel, skillGaps, attempts)

	if err := s.events.Publish(event.GrowthPlanGenerated, map[string]string{
		"learnerId":   learnerID,
		"targetLevel": targetLevel,
	}); err != nil {
		log.Printf("Failed to publish growthplan.generated: %v", err)
	}

	return response, nil
}

// determineCurrentLevel normalizes a self-reported level to a rung on
// the career ladder. The mapping intentionally bumps each claim one
// level up before progression is applied.
func determineCurrentLevel(claimedLevel string) string {
	if claimedLevel == "" {
		return "intermediate"
	}

	normalized := strings.ToLower(strings.TrimSpace(claimedLevel))
	switch {
	case strings.Contains(normalized, "junior") || strings.Contains(normalized, "beginner"):
		return "mid-level"
	case strings.Contains(normalized, "mid") || strings.Contains(normalized, "intermediate"):
		return "senior"
	case strings.Contains(normalized, "senior"):
		return "team lead"
	case strings.Contains(normalized, "lead"):
		return "architect"
	}
	return "senior"
}

func nextCareerLevel(currentLevel string) string {
	if next, ok := careerProgression[strings.ToLower(currentLevel)]; ok {
		return next
	}
	return "senior"
}

// identifySkillGaps lists required skills for the target level missing
// from the profile, plus self-identified weak areas.
func identifySkillGaps(profile *models.LearnerAIProfile, targetLevel string) []models.SkillGap {
	var gaps []models.SkillGap

	for _, required := range levelRequiredSkills[strings.ToLower(targetLevel)] {
		hasSkill := false
		for _, skill := range profile.Skills {
			if containsFold(skill, required) || containsFold(required, skill) {
				hasSkill = true
				break
			}
		}
		if !hasSkill {
			gaps = append(gaps, models.SkillGap{
				SkillName:          required,
				CurrentProficiency: "None",
				TargetProficiency:  "Advanced",
				Priority:           "High",
				Reasoning:          fmt.Sprintf("Required for %s level", targetLevel),
			})
		}
	}

	for _, weakArea := range profile.WeakAreas {
		duplicate := false
		for _, g := range gaps {
			if strings.EqualFold(g.SkillName, weakArea) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			gaps = append(gaps, models.SkillGap{
				SkillName:          weakArea,
				CurrentProficiency: "Basic",
				TargetProficiency:  "Intermediate",
				Priority:           "Medium",
				Reasoning:          "Self-identified weak area",
			})
		}
	}

	return gaps
}

func (s *GrowthPlanService) generateAIPlan(ctx context.Context, learner *models.Learner, profile *models.LearnerAIProfile, currentLevel, targetLevel string, skillGaps []models.SkillGap, attempts []models.QuizAttempt) *models.GrowthPlanResponse {
	prompt := buildGrowthPlanPrompt(learner, profile, currentLevel, targetLevel, skillGaps, attempts)

	aiPlan, err := s.generator.GenerateGrowthPlan(ctx, prompt)
	if err != nil {
		log.Printf("AI growth plan generation failed, using fallback plan: %v", err)
		return fallbackGrowthPlan(learner, currentLevel, targetLevel, skillGaps)
	}

	totalWeeks := 0
	for _, p := range aiPlan.LearningPhases {
		totalWeeks += p.DurationWeeks
	}
	if totalWeeks > 6 {
		log.Printf("Generated plan exceeds 6 weeks (%d), adjusting", totalWeeks)
		adjustPlanToSixWeeks(aiPlan)
	}

	return &models.GrowthPlanResponse{
		LearnerID:               learner.ID.Hex(),
		LearnerName:             learner.Name,
		CurrentLevel:            currentLevel,
		TargetLevel:             targetLevel,
		EstimatedDurationMonths: aiPlan.EstimatedDurationMonths,
		Overview:                aiPlan.Overview,
		SkillGaps:               skillGaps,
		LearningPhases:          aiPlan.LearningPhases,
		RecommendedResources:    aiPlan.RecommendedResources,
		KeyMilestones:           aiPlan.KeyMilestones,
		SuccessCriteria:         aiPlan.SuccessCriteria,
		GeneratedAt:             time.Now().UTC(),
	}
}

// adjustPlanToSixWeeks scales phase durations down proportionally, then
// nudges the first or last phase so the total lands on exactly 6.
func adjustPlanToSixWeeks(plan *models.AIGrowthPlan) {
	totalWeeks := 0
	for _, p := range plan.LearningPhases {
		totalWeeks += p.DurationWeeks
	}
	if totalWeeks == 0 {
		return
	}

	scale := 6.0 / float64(totalWeeks)
	for i := range plan.LearningPhases {
		scaled := int(math.Round(float64(plan.LearningPhases[i].DurationWeeks) * scale))
		if scaled < 1 {
			scaled = 1
		}
		plan.LearningPhases[i].DurationWeeks = scaled
	}

	adjusted := 0
	for _, p := range plan.LearningPhases {
		adjusted += p.DurationWeeks
	}
	if adjusted < 6 && len(plan.LearningPhases) > 0 {
		plan.LearningPhases[0].DurationWeeks += 6 - adjusted
	} else if adjusted > 6 && len(plan.LearningPhases) > 0 {
		plan.LearningPhases[len(plan.LearningPhases)-1].DurationWeeks -= adjusted - 6
	}

	plan.EstimatedDurationMonths = 2
}

func buildGrowthPlanPrompt(learner *models.Learner, profile *models.LearnerAIProfile, currentLevel, targetLevel string, skillGaps []models.SkillGap, attempts []models.QuizAttempt) string {
	quizSummary := "No quiz data available"
	if len(attempts) > 0 {
		var sum float64
		for _, a := range attempts {
			sum += a.Percentage
		}
		quizSummary = fmt.Sprintf("Average quiz score: %.1f%%", sum/float64(len(attempts)))
	}

	gapLines := make([]string, 0, len(skillGaps))
	for _, g := range skillGaps {
		gapLines = append(gapLines, fmt.Sprintf("- %s (%s priority): %s", g.SkillName, g.Priority, g.Reasoning))
	}

	focusSkills := make([]string, 0, 5)
	for i, g := range skillGaps {
		if i >= 5 {
			break
		}
		focusSkills = append(focusSkills, g.SkillName)
	}

	return fmt.Sprintf(`
You are an expert career development advisor for software engineers. Generate a comprehensive growth plan.

LEARNER PROFILE:
- Name: %s
- Current Level: %s
- Target Level: %s
- Position: %s
- Department: %s
- Years of Experience: %s

CURRENT SKILLS:
%s

INTERESTS:
%s

GOALS:
%s

LEARNING STYLE: %s
AVAILABLE HOURS PER WEEK: %d

IDENTIFIED SKILL GAPS:
%s

QUIZ PERFORMANCE:
%s

TASK:
Create a detailed growth plan to progress from %s to %s.

CAREER PROGRESSION RULES:
- If mid-level: focus on System Design, Architecture, Code Quality, Mentoring
- If senior: focus on Leadership, Team Management, Technical Strategy, Cross-team Collaboration
- If team lead: focus on Enterprise Architecture, Vision Setting, Stakeholder Management, Technical Direction

REQUIREMENTS:
1. Create 2-3 learning phases with TOTAL DURATION OF MAXIMUM 6 WEEKS
2. Each phase should be 2-3 weeks long
3. For each phase include: title, description, skills to cover, practical projects, success metrics
4. Focus on identified skill gaps (especially: %s)
5. Recommend SPECIFIC learning resources with real course/book names, providers, URLs, difficulty and estimated hours
6. Include 3-5 key milestones
7. Define success criteria
8. CRITICAL: Total duration must not exceed 6 weeks

Return ONLY valid JSON in this EXACT format:
{
  "overview": "Brief overview of the growth plan...",
  "estimatedDurationMonths": 2,
  "learningPhases": [
    {
      "phaseNumber": 1,
      "title": "Phase Title",
      "description": "Phase description...",
      "durationWeeks": 2,
      "skillsToCover": ["Skill 1", "Skill 2"],
      "learningObjectives": ["Objective 1", "Objective 2"],
      "practicalProjects": ["Project 1", "Project 2"],
      "successMetrics": "How to measure success"
    }
  ],
  "recommendedResources": [
    {
      "title": "Clean Architecture Course",
      "type": "Course",
      "url": "https://www.udemy.com/course/clean-architecture",
      "provider": "Udemy",
      "description": "Learn clean architecture principles",
      "skillsCovered": ["Clean Architecture", "SOLID Principles"],
      "difficulty": "Intermediate",
      "isFree": false,
      "estimatedHours": 12
    }
  ],
  "keyMilestones": [
    "Milestone 1",
    "Milestone 2"
  ],
  "successCriteria": "What defines success for this plan"
}`,
		learner.Name,
		currentLevel,
		targetLevel,
		learner.Position,
		learner.Department,
		profile.YearsOfExperience,
		strings.Join(profile.Skills, ", "),
		strings.Join(profile.Interests, ", "),
		strings.Join(profile.Goals, ", "),
		profile.LearningStyle,
		profile.AvailableHoursPerWeek,
		strings.Join(gapLines, "\n"),
		quizSummary,
		currentLevel,
		targetLevel,
		strings.Join(focusSkills, ", "),
	)
}

func fallbackGrowthPlan(learner *models.Learner, currentLevel, targetLevel string, skillGaps []models.SkillGap) *models.GrowthPlanResponse {
	return &models.GrowthPlanResponse{
		LearnerID:               learner.ID.Hex(),
		LearnerName:             learner.Name,
		CurrentLevel:            currentLevel,
		TargetLevel:             targetLevel,
		EstimatedDurationMonths: 2,
		Overview: fmt.Sprintf("Intensive 6-week growth plan to progress from %s to %s level, focusing on key skill gaps and career development.",
			currentLevel, targetLevel),
		SkillGaps:            skillGaps,
		LearningPhases:       defaultPhases(targetLevel, skillGaps),
		RecommendedResources: defaultResources(skillGaps),
		KeyMilestones: []string{
			"Complete foundational courses in identified skill gaps",
			"Build and deploy 2-3 practical projects",
			"Contribute to team knowledge sharing",
			"Take on increased responsibilities",
			fmt.Sprintf("Demonstrate %s-level competencies", targetLevel),
		},
		SuccessCriteria: fmt.Sprintf("Successfully transition to %s role with demonstrated competency in all required skills", targetLevel),
		GeneratedAt:     time.Now().UTC(),
	}
}

func defaultPhases(targetLevel string, skillGaps []models.SkillGap) []models.LearningPhase {
	const numPhases = 3
	const weeksPerPhase = 2

	skillsPerPhase := len(skillGaps) / numPhases
	if skillsPerPhase < 1 {
		skillsPerPhase = 1
	}

	phaseTitles := []string{
		"Foundation & Fundamentals",
		"Core Concepts & Practice",
		fmt.Sprintf("Application & %s Skills", targetLevel),
	}

	var phases []models.LearningPhase
	for i := 0; i < numPhases; i++ {
		start := i * skillsPerPhase
		if start >= len(skillGaps) {
			break
		}
		end := start + skillsPerPhase
		if end > len(skillGaps) {
			end = len(skillGaps)
		}

		phaseSkills := make([]string, 0, end-start)
		objectives := make([]string, 0, end-start)
		for _, g := range skillGaps[start:end] {
			phaseSkills = append(phaseSkills, g.SkillName)
			objectives = append(objectives, "Gain foundational knowledge in "+g.SkillName)
		}

		phases = append(phases, models.LearningPhase{
			PhaseNumber:        i + 1,
			Title:              fmt.Sprintf("Week %d-%d: %s", i*weeksPerPhase+1, (i+1)*weeksPerPhase, phaseTitles[i]),
			Description:        "Intensive focus on " + strings.Join(phaseSkills, ", "),
			DurationWeeks:      weeksPerPhase,
			SkillsToCover:      phaseSkills,
			LearningObjectives: objectives,
			PracticalProjects:  []string{"Quick project applying " + phaseSkills[0]},
			SuccessMetrics:     "Complete objectives and mini-project",
		})
	}
	return phases
}

func defaultResources(skillGaps []models.SkillGap) []models.RecommendedResource {
	var resources []models.RecommendedResource
	for i, gap := range skillGaps {
		if i >= 5 {
			break
		}
		resources = append(resources, models.RecommendedResource{
			Title:          "Learning " + gap.SkillName,
			Type:           "Course",
			URL:            "https://learn.microsoft.com/search/?terms=" + strings.ReplaceAll(gap.SkillName, " ", "+"),
			Provider:       "Microsoft Learn",
			Description:    "Comprehensive guide to " + gap.SkillName,
			SkillsCovered:  []string{gap.SkillName},
			Difficulty:     "Intermediate",
			IsFree:         true,
			EstimatedHours: 10,
		})
	}
	return resources
}
