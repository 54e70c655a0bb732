package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hyperhive-backend/internal/errs"
	"hyperhive-backend/internal/event"
	"hyperhive-backend/internal/models"
)

// Store contracts consumed by the quiz service. The mongo repositories
// satisfy them; tests use in-memory fakes.

type quizStore interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	FindByLearner(ctx context.Context, learnerID primitive.ObjectID) ([]models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id string) error
}

type attemptStore interface {
	Create(ctx context.Context, attempt *models.QuizAttempt) error
	FindByID(ctx context.Context, id string) (*models.QuizAttempt, error)
	FindByQuizAndLearner(ctx context.Context, quizID, learnerID primitive.ObjectID) (*models.QuizAttempt, error)
	FindByLearner(ctx context.Context, learnerID primitive.ObjectID) ([]models.QuizAttempt, error)
	CountByQuiz(ctx context.Context, quizID primitive.ObjectID) (int64, error)
	DeleteByQuiz(ctx context.Context, quizID primitive.ObjectID) error
}

type learnerStore interface {
	FindByID(ctx context.Context, id string) (*models.Learner, error)
}

type quizGenerator interface {
	GenerateQuiz(ctx context.Context, learnerProfileData, quizType string, numberOfQuestions int) (*models.QuizGenerationResult, error)
}

type QuizService struct {
	quizzes   quizStore
	attempts  attemptStore
	learners  learnerStore
	generator quizGenerator
	events    *event.EventPublisher
}

func NewQuizService(quizzes quizStore, attempts attemptStore, learners learnerStore, generator quizGenerator, events *event.EventPublisher) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		attempts:  attempts,
		learners:  learners,
		generator: generator,
		events:    events,
	}
}

func (s *QuizService) GenerateQuiz(ctx context.Context, request models.GenerateQuizRequest) (*models.GenerateQuizResponse, error) {
	learner, err := s.learners.FindByID(ctx, request.LearnerID)
	if err != nil {
		return nil, err
	}

	profileData := "{}"
	if learner.AIProfile != nil {
		if b, err := json.Marshal(learner.AIProfile); err == nil {
			profileData = string(b)
		}
	}

	// Learners without a profile still get a quiz off a minimal one.
	if profileData == "{}" {
		fallback := map[string]interface{}{
			"name":         learner.Name,
			"position":     learner.Position,
			"department":   learner.Department,
			"skills":       []string{"General Software Development"},
			"currentLevel": "intermediate",
		}
		b, _ := json.Marshal(fallback)
		profileData = string(b)
		log.Printf("Using default profile for learner %s", request.LearnerID)
	}

	numberOfQuestions := request.NumberOfQuestions
	if numberOfQuestions <= 0 {
		numberOfQuestions = 5
	}

	log.Printf("Generating quiz for learner %s (%s, %d questions)", request.LearnerID, request.QuizType, numberOfQuestions)

	generated, err := s.generator.GenerateQuiz(ctx, profileData, request.QuizType, numberOfQuestions)
	if err != nil {
		return nil, err
	}

	difficulty := request.Difficulty
	if difficulty == "" {
		difficulty = "intermediate"
	}

	quiz := &models.Quiz{
		LearnerID:   learner.ID,
		Title:       generated.Title,
		QuizType:    request.QuizType,
		Difficulty:  difficulty,
		Questions:   generated.Questions,
		GeneratedAt: time.Now().UTC(),
		ExpiresAt:   time.Now().UTC().AddDate(0, 0, 30),
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("storing quiz: %w", err)
	}

	log.Printf("Quiz %s created successfully", quiz.ID.Hex())

	if err := s.events.Publish(event.QuizGenerated, map[string]string{"quizId": quiz.ID.Hex(), "learnerId": request.LearnerID}); err != nil {
		log.Printf("Failed to publish quiz.generated: %v", err)
	}

	questions := make([]models.QuizQuestionDTO, 0, len(generated.Questions))
	for _, q := range generated.Questions {
		questions = append(questions, models.QuizQuestionDTO{
			QuestionID: q.QuestionID,
			Question:   q.Question,
			Options:    q.Options,
			Type:       "multiple-choice",
		})
	}

	return &models.GenerateQuizResponse{
		QuizID:    quiz.ID.Hex(),
		Title:     quiz.Title,
		Questions: questions,
	}, nil
}

func (s *QuizService) SubmitQuiz(ctx context.Context, request models.SubmitQuizRequest) (*models.SubmitQuizResponse, error) {
	quiz, err := s.quizzes.FindByID(ctx, request.QuizID)
	if err != nil {
		return nil, err
	}

	learnerID, err := primitive.ObjectIDFromHex(request.LearnerID)
	if err != nil {
		return nil, errs.Validationf("invalid learner id %q", request.LearnerID)
	}

	existing, err := s.attempts.FindByQuizAndLearner(ctx, quiz.ID, learnerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflictf("quiz %s already attempted by learner %s; each quiz can only be taken once", request.QuizID, request.LearnerID)
	}

	if len(quiz.Questions) == 0 {
		return nil, errs.Validationf("quiz %s has no questions", request.QuizID)
	}

	score, results := scoreAnswers(quiz.Questions, request.Answers)
	totalQuestions := len(quiz.Questions)
	percentage := float64(score) / float64(totalQuestions) * 100

	now := time.Now().UTC()
	attempt := &models.QuizAttempt{
		QuizID:         quiz.ID,
		LearnerID:      learnerID,
		Answers:        request.Answers,
		Score:          score,
		TotalQuestions: totalQuestions,
		Percentage:     percentage,
		StartedAt:      now,
		CompletedAt:    now,
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("storing quiz attempt: %w", err)
	}

	if err := s.events.Publish(event.QuizSubmitted, map[string]interface{}{
		"attemptId": attempt.ID.Hex(),
		"quizId":    request.QuizID,
		"learnerId": request.LearnerID,
		"score":     score,
	}); err != nil {
		log.Printf("Failed to publish quiz.submitted: %v", err)
	}

	return &models.SubmitQuizResponse{
		AttemptID:      attempt.ID.Hex(),
		Score:          score,
		TotalQuestions: totalQuestions,
		Percentage:     percentage,
		Feedback:       generateFeedback(percentage),
		Results:        results,
	}, nil
}

// scoreAnswers grades one answer per question. An unanswered question is
// recorded as "No answer". Comparison is exact: the selected option text
// must match the stored correct answer byte-for-byte.
func scoreAnswers(questions []models.QuizQuestion, answers []models.QuizAnswer) (int, []models.QuizResultDetail) {
	byQuestion := make(map[int]string, len(answers))
	for _, a := range answers {
		if _, ok := byQuestion[a.QuestionID]; !ok {
			byQuestion[a.QuestionID] = a.SelectedAnswer
		}
	}

	score := 0
	results := make([]models.QuizResultDetail, 0, len(questions))
	for _, q := range questions {
		yourAnswer, answered := byQuestion[q.QuestionID]
		isCorrect := answered && yourAnswer == q.CorrectAnswer
		if isCorrect {
			score++
		}
		if !answered {
			yourAnswer = "No answer"
		}
		results = append(results, models.QuizResultDetail{
			QuestionID:    q.QuestionID,
			Question:      q.Question,
			YourAnswer:    yourAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}
	return score, results
}

func generateFeedback(percentage float64) string {
	switch {
	case percentage >= 90:
		return "Excellent! You have a strong grasp of the material."
	case percentage >= 75:
		return "Great job! You're doing well, but there's room for improvement."
	case percentage >= 60:
		return "Good effort! Review the topics you missed and try again."
	case percentage >= 50:
		return "You're getting there! More practice will help you improve."
	default:
		return "Keep learning! Review the material and don't give up."
	}
}

func (s *QuizService) GetQuizAttemptResults(ctx context.Context, attemptID string) (*models.SubmitQuizResponse, error) {
	attempt, err := s.attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	quiz, err := s.quizzes.FindByID(ctx, attempt.QuizID.Hex())
	if err != nil {
		return nil, err
	}

	_, results := scoreAnswers(quiz.Questions, attempt.Answers)

	return &models.SubmitQuizResponse{
		AttemptID:      attempt.ID.Hex(),
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage,
		Feedback:       generateFeedback(attempt.Percentage),
		Results:        results,
	}, nil
}

func (s *QuizService) GetLearnerQuizAttempts(ctx context.Context, learnerID string) ([]models.QuizAttemptSummary, error) {
	objID, err := primitive.ObjectIDFromHex(learnerID)
	if err != nil {
		return nil, errs.Validationf("invalid learner id %q", learnerID)
	}

	attempts, err := s.attempts.FindByLearner(ctx, objID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, attempts), nil
}

func (s *QuizService) summarize(ctx context.Context, attempts []models.QuizAttempt) []models.QuizAttemptSummary {
	summaries := make([]models.QuizAttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summary := models.QuizAttemptSummary{
			AttemptID:        a.ID.Hex(),
			QuizID:           a.QuizID.Hex(),
			Score:            a.Score,
			TotalQuestions:   a.TotalQuestions,
			Percentage:       a.Percentage,
			CompletedAt:      a.CompletedAt,
			TimeTakenSeconds: a.TimeTakenSeconds,
		}
		if quiz, err := s.quizzes.FindByID(ctx, a.QuizID.Hex()); err == nil {
			summary.QuizTitle = quiz.Title
			summary.QuizType = quiz.QuizType
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func (s *QuizService) GetLearnerQuizStatistics(ctx context.Context, learnerID string) (*models.LearnerQuizStatistics, error) {
	objID, err := primitive.ObjectIDFromHex(learnerID)
	if err != nil {
		return nil, errs.Validationf("invalid learner id %q", learnerID)
	}

	attempts, err := s.attempts.FindByLearner(ctx, objID)
	if err != nil {
		return nil, err
	}

	stats := &models.LearnerQuizStatistics{
		LearnerID:      learnerID,
		RecentAttempts: []models.QuizAttemptSummary{},
	}
	if len(attempts) == 0 {
		return stats, nil
	}

	var percentageSum float64
	for _, a := range attempts {
		percentageSum += a.Percentage
		if a.Score > stats.BestScore {
			stats.BestScore = a.Score
		}
		stats.TotalQuestionsAnswered += a.TotalQuestions
		stats.TotalCorrectAnswers += a.Score
	}
	stats.TotalQuizzesTaken = len(attempts)
	stats.AverageScore = percentageSum / float64(len(attempts))

	recent := attempts
	if len(recent) > 10 {
		recent = recent[:10]
	}
	stats.RecentAttempts = s.summarize(ctx, recent)

	return stats, nil
}

// GetLearnerQuizzes lists the quizzes generated for a learner, newest
// first, without question content.
func (s *QuizService) GetLearnerQuizzes(ctx context.Context, learnerID string) ([]models.QuizDetailsResponse, error) {
	objID, err := primitive.ObjectIDFromHex(learnerID)
	if err != nil {
		return nil, errs.Validationf("invalid learner id %q", learnerID)
	}

	quizzes, err := s.quizzes.FindByLearner(ctx, objID)
	if err != nil {
		return nil, err
	}

	out := make([]models.QuizDetailsResponse, 0, len(quizzes))
	for _, q := range quizzes {
		timesAttempted, err := s.attempts.CountByQuiz(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.QuizDetailsResponse{
			QuizID:         q.ID.Hex(),
			Title:          q.Title,
			QuizType:       q.QuizType,
			Difficulty:     q.Difficulty,
			GeneratedAt:    q.GeneratedAt,
			TotalQuestions: len(q.Questions),
			TimesAttempted: timesAttempted,
		})
	}
	return out, nil
}

// DeleteQuiz removes a quiz along with every attempt recorded against
// it, so orphaned attempts do not linger.
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID string) error {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return err
	}

	if err := s.attempts.DeleteByQuiz(ctx, quiz.ID); err != nil {
		return fmt.Errorf("deleting attempts for quiz %s: %w", quizID, err)
	}
	if err := s.quizzes.Delete(ctx, quizID); err != nil {
		return err
	}

	log.Printf("Quiz %s deleted", quizID)
	return nil
}

func (s *QuizService) GetQuizDetails(ctx context.Context, quizID string) (*models.QuizDetailsResponse, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	timesAttempted, err := s.attempts.CountByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}

	return &models.QuizDetailsResponse{
		QuizID:         quiz.ID.Hex(),
		Title:          quiz.Title,
		QuizType:       quiz.QuizType,
		Difficulty:     quiz.Difficulty,
		GeneratedAt:    quiz.GeneratedAt,
		TotalQuestions: len(quiz.Questions),
		TimesAttempted: timesAttempted,
	}, nil
}
