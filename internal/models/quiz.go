package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizQuestion holds one generated question including the correct answer.
// Questions are stored with the quiz and never sent to the client verbatim;
// GenerateQuizResponse strips the answer and explanation.
type QuizQuestion struct {
	QuestionID int      `bson:"question_id" json:"questionId"`
	Question   string   `bson:"question" json:"question"`
	Options    []string `bson:"options" json:"options"`
	// Matched byte-for-byte against the submitted answer. Whitespace or
	// casing drift in generated option text marks the answer wrong.
	CorrectAnswer string `bson:"correct_answer" json:"correctAnswer"`
	Explanation   string `bson:"explanation" json:"explanation"`
}

type Quiz struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LearnerID   primitive.ObjectID `bson:"learner_id" json:"learnerId"`
	Title       string             `bson:"title" json:"title"`
	QuizType    string             `bson:"quiz_type" json:"quizType"`
	Difficulty  string             `bson:"difficulty" json:"difficulty"`
	Questions   []QuizQuestion     `bson:"questions" json:"questions"`
	GeneratedAt time.Time          `bson:"generated_at" json:"generatedAt"`
	ExpiresAt   time.Time          `bson:"expires_at" json:"expiresAt"`
}

// QuizGenerationResult is the shape the LLM is asked to return.
type QuizGenerationResult struct {
	Title     string         `json:"title"`
	Questions []QuizQuestion `json:"questions"`
}

type GenerateQuizRequest struct {
	LearnerID         string `json:"learnerId"`
	QuizType          string `json:"quizType"`
	Difficulty        string `json:"difficulty"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}

// QuizQuestionDTO is the client-facing question without the correct answer.
type QuizQuestionDTO struct {
	QuestionID int      `json:"questionId"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Type       string   `json:"type"`
}

type GenerateQuizResponse struct {
	QuizID    string            `json:"quizId"`
	Title     string            `json:"title"`
	Questions []QuizQuestionDTO `json:"questions"`
}

type QuizDetailsResponse struct {
	QuizID         string    `json:"quizId"`
	Title          string    `json:"title"`
	QuizType       string    `json:"quizType"`
	Difficulty     string    `json:"difficulty"`
	GeneratedAt    time.Time `json:"generatedAt"`
	TotalQuestions int       `json:"totalQuestions"`
	TimesAttempted int64     `json:"timesAttempted"`
}
