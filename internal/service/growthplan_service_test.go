package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hyperhive-backend/internal/models"
)

type fakeGrowthPlanGenerator struct {
	plan *models.AIGrowthPlan
	err  error
}

func (f *fakeGrowthPlanGenerator) GenerateGrowthPlan(ctx context.Context, prompt string) (*models.AIGrowthPlan, error) {
	return f.plan, f.err
}

func TestDetermineCurrentLevel(t *testing.T) {
	// Self-reported levels are bumped one rung before progression.
	testCases := []struct {
		claimed string
		want    string
	}{
		{"junior", "mid-level"},
		{"Junior Developer", "mid-level"},
		{"beginner", "mid-level"},
		{"mid-level", "senior"},
		{"intermediate", "senior"},
		{"Senior Engineer", "team lead"},
		{"team lead", "architect"},
		{"lead", "architect"},
		{"", "intermediate"},
		{"wizard", "senior"},
	}

	for _, tc := range testCases {
		if got := determineCurrentLevel(tc.claimed); got != tc.want {
			t.Errorf("determineCurrentLevel(%q) = %q, want %q", tc.claimed, got, tc.want)
		}
	}
}

func TestNextCareerLevel(t *testing.T) {
	testCases := []struct {
		current string
		want    string
	}{
		{"junior", "mid-level"},
		{"mid-level", "senior"},
		{"senior", "team lead"},
		{"team lead", "architect"},
		{"Team Lead", "architect"},
		{"unknown", "senior"},
	}

	for _, tc := range testCases {
		if got := nextCareerLevel(tc.current); got != tc.want {
			t.Errorf("nextCareerLevel(%q) = %q, want %q", tc.current, got, tc.want)
		}
	}
}

func TestIdentifySkillGaps(t *testing.T) {
	profile := &models.LearnerAIProfile{
		Skills:    []string{"System Design", "Go", "Mentoring"},
		WeakAreas: []string{"Public Speaking", "Code Review"},
	}

	gaps := identifySkillGaps(profile, "senior")

	byName := map[string]models.SkillGap{}
	for _, g := range gaps {
		byName[g.SkillName] = g
	}

	if _, ok := byName["System Design"]; ok {
		t.Error("System Design is already a skill, should not be a gap")
	}
	if g, ok := byName["Microservices"]; !ok {
		t.Error("Microservices missing from gaps")
	} else if g.Priority != "High" || g.CurrentProficiency != "None" {
		t.Errorf("required-skill gap = %+v, want High priority from None", g)
	}

	if g, ok := byName["Public Speaking"]; !ok {
		t.Error("weak area Public Speaking missing from gaps")
	} else if g.Priority != "Medium" || g.CurrentProficiency != "Basic" {
		t.Errorf("weak-area gap = %+v, want Medium priority from Basic", g)
	}

	// Code Review is both a missing required skill and a weak area; the
	// weak-area entry is deduplicated so it appears once.
	count := 0
	for _, g := range gaps {
		if strings.EqualFold(g.SkillName, "Code Review") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Code Review appears %d times, want once", count)
	}
}

func TestIdentifySkillGapsNoRequirementsForTarget(t *testing.T) {
	profile := &models.LearnerAIProfile{WeakAreas: []string{"Testing"}}
	gaps := identifySkillGaps(profile, "mid-level")
	if len(gaps) != 1 || gaps[0].SkillName != "Testing" {
		t.Errorf("gaps = %+v, want only the weak area", gaps)
	}
}

func TestAdjustPlanToSixWeeks(t *testing.T) {
	testCases := []struct {
		name  string
		weeks []int
	}{
		{"twelve week plan", []int{4, 4, 4}},
		{"uneven plan", []int{5, 3, 1}},
		{"very long plan", []int{10, 10, 10, 10}},
		{"single phase", []int{9}},
		{"many tiny phases", []int{2, 2, 2, 2, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan := &models.AIGrowthPlan{}
			for i, w := range tc.weeks {
				plan.LearningPhases = append(plan.LearningPhases, models.LearningPhase{
					PhaseNumber:   i + 1,
					DurationWeeks: w,
				})
			}

			adjustPlanToSixWeeks(plan)

			total := 0
			for _, p := range plan.LearningPhases {
				total += p.DurationWeeks
			}
			if total != 6 {
				t.Errorf("total weeks = %d, want exactly 6 (phases %+v)", total, plan.LearningPhases)
			}
			if plan.EstimatedDurationMonths != 2 {
				t.Errorf("EstimatedDurationMonths = %d, want 2", plan.EstimatedDurationMonths)
			}
		})
	}
}

func TestAdjustPlanToSixWeeksEmptyPlan(t *testing.T) {
	plan := &models.AIGrowthPlan{}
	adjustPlanToSixWeeks(plan)
	if len(plan.LearningPhases) != 0 {
		t.Errorf("empty plan gained phases: %+v", plan.LearningPhases)
	}
}

func TestGenerateGrowthPlan(t *testing.T) {
	learners := newFakeLearnerStore()
	learner := learners.add(&models.Learner{
		Name: "Ada",
		AIProfile: &models.LearnerAIProfile{
			CurrentLevel: "mid-level",
			Skills:       []string{"Go"},
		},
	})

	t.Run("uses generated plan and caps duration", func(t *testing.T) {
		generator := &fakeGrowthPlanGenerator{plan: &models.AIGrowthPlan{
			Overview:                "Push toward team lead.",
			EstimatedDurationMonths: 3,
			LearningPhases: []models.LearningPhase{
				{PhaseNumber: 1, DurationWeeks: 6},
				{PhaseNumber: 2, DurationWeeks: 6},
			},
		}}
		svc := NewGrowthPlanService(learners, &fakeAttemptStore{}, generator, nil)

		resp, err := svc.GenerateGrowthPlan(context.Background(), learner.ID.Hex())
		if err != nil {
			t.Fatalf("GenerateGrowthPlan: %v", err)
		}

		if resp.CurrentLevel != "senior" {
			t.Errorf("CurrentLevel = %q, want senior (mid-level bumped)", resp.CurrentLevel)
		}
		if resp.TargetLevel != "team lead" {
			t.Errorf("TargetLevel = %q, want team lead", resp.TargetLevel)
		}

		total := 0
		for _, p := range resp.LearningPhases {
			total += p.DurationWeeks
		}
		if total != 6 {
			t.Errorf("phase weeks sum to %d, want 6 after adjustment", total)
		}
		if resp.EstimatedDurationMonths != 2 {
			t.Errorf("EstimatedDurationMonths = %d, want 2 after adjustment", resp.EstimatedDurationMonths)
		}
	})

	t.Run("falls back to template plan on failure", func(t *testing.T) {
		generator := &fakeGrowthPlanGenerator{err: errors.New("model unavailable")}
		svc := NewGrowthPlanService(learners, &fakeAttemptStore{}, generator, nil)

		resp, err := svc.GenerateGrowthPlan(context.Background(), learner.ID.Hex())
		if err != nil {
			t.Fatalf("GenerateGrowthPlan: %v", err)
		}

		if len(resp.LearningPhases) == 0 {
			t.Fatal("fallback plan has no phases")
		}
		total := 0
		for _, p := range resp.LearningPhases {
			total += p.DurationWeeks
			if p.DurationWeeks != 2 {
				t.Errorf("fallback phase %d lasts %d weeks, want 2", p.PhaseNumber, p.DurationWeeks)
			}
		}
		if total > 6 {
			t.Errorf("fallback plan runs %d weeks, cap is 6", total)
		}
		if len(resp.RecommendedResources) > 5 {
			t.Errorf("%d fallback resources, cap is 5", len(resp.RecommendedResources))
		}
		for _, r := range resp.RecommendedResources {
			if r.Provider != "Microsoft Learn" {
				t.Errorf("fallback resource provider = %q, want Microsoft Learn", r.Provider)
			}
		}
		if len(resp.KeyMilestones) == 0 || resp.SuccessCriteria == "" {
			t.Error("fallback plan missing milestones or success criteria")
		}
	})

	t.Run("rejects learner without profile", func(t *testing.T) {
		bare := learners.add(&models.Learner{Name: "Nil"})
		svc := NewGrowthPlanService(learners, &fakeAttemptStore{}, &fakeGrowthPlanGenerator{}, nil)
		if _, err := svc.GenerateGrowthPlan(context.Background(), bare.ID.Hex()); err == nil {
			t.Fatal("expected error for learner without profile")
		}
	})
}

func TestDefaultPhasesSplitsSkills(t *testing.T) {
	gaps := make([]models.SkillGap, 6)
	for i := range gaps {
		gaps[i] = models.SkillGap{SkillName: strings.Repeat("s", i+1)}
	}

	phases := defaultPhases("senior", gaps)
	if len(phases) != 3 {
		t.Fatalf("got %d phases, want 3", len(phases))
	}
	for i, p := range phases {
		if p.PhaseNumber != i+1 {
			t.Errorf("phase %d numbered %d", i, p.PhaseNumber)
		}
		if len(p.SkillsToCover) != 2 {
			t.Errorf("phase %d covers %d skills, want 2", p.PhaseNumber, len(p.SkillsToCover))
		}
		if !strings.HasPrefix(p.Title, "Week ") {
			t.Errorf("phase title %q missing week range prefix", p.Title)
		}
	}
}
