package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuizAnswer struct {
	QuestionID     int    `bson:"question_id" json:"questionId"`
	SelectedAnswer string `bson:"selected_answer" json:"selectedAnswer"`
}

type QuizAttempt struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuizID           primitive.ObjectID `bson:"quiz_id" json:"quizId"`
	LearnerID        primitive.ObjectID `bson:"learner_id" json:"learnerId"`
	Answers          []QuizAnswer       `bson:"answers" json:"answers"`
	Score            int                `bson:"score" json:"score"`
	TotalQuestions   int                `bson:"total_questions" json:"totalQuestions"`
	Percentage       float64            `bson:"percentage" json:"percentage"`
	StartedAt        time.Time          `bson:"started_at" json:"startedAt"`
	CompletedAt      time.Time          `bson:"completed_at" json:"completedAt"`
	TimeTakenSeconds int                `bson:"time_taken_seconds" json:"timeTakenSeconds"`
}

type SubmitQuizRequest struct {
	QuizID    string       `json:"quizId"`
	LearnerID string       `json:"learnerId"`
	Answers   []QuizAnswer `json:"answers"`
}

type QuizResultDetail struct {
	QuestionID    int    `json:"questionId"`
	Question      string `json:"question"`
	YourAnswer    string `json:"yourAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
}

type SubmitQuizResponse struct {
	AttemptID      string             `json:"attemptId"`
	Score          int                `json:"score"`
	TotalQuestions int                `json:"totalQuestions"`
	Percentage     float64            `json:"percentage"`
	Feedback       string             `json:"feedback"`
	Results        []QuizResultDetail `json:"results"`
}

type QuizAttemptSummary struct {
	AttemptID        string    `json:"attemptId"`
	QuizID           string    `json:"quizId"`
	QuizTitle        string    `json:"quizTitle"`
	QuizType         string    `json:"quizType"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"totalQuestions"`
	Percentage       float64   `json:"percentage"`
	CompletedAt      time.Time `json:"completedAt"`
	TimeTakenSeconds int       `json:"timeTakenSeconds"`
}

type LearnerQuizStatistics struct {
	LearnerID              string               `json:"learnerId"`
	TotalQuizzesTaken      int                  `json:"totalQuizzesTaken"`
	AverageScore           float64              `json:"averageScore"`
	BestScore              int                  `json:"bestScore"`
	TotalQuestionsAnswered int                  `json:"totalQuestionsAnswered"`
	TotalCorrectAnswers    int                  `json:"totalCorrectAnswers"`
	RecentAttempts         []QuizAttemptSummary `json:"recentAttempts"`
}
