package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LearnerAIProfile is the semi-structured profile blob used by the AI
// features. It is stored as-is on the learner document and never validated
// against a schema.
type LearnerAIProfile struct {
	Skills                []string `bson:"skills" json:"skills"`
	Interests             []string `bson:"interests" json:"interests"`
	Goals                 []string `bson:"goals" json:"goals"`
	CurrentLevel          string   `bson:"current_level" json:"currentLevel"`
	LearningStyle         string   `bson:"learning_style" json:"learningStyle"`
	AvailableHoursPerWeek int      `bson:"available_hours_per_week" json:"availableHoursPerWeek"`
	PreferredLearningTime string   `bson:"preferred_learning_time" json:"preferredLearningTime"`
	YearsOfExperience     string   `bson:"years_of_experience" json:"yearsOfExperience"`
	PreferredTopics       []string `bson:"preferred_topics" json:"preferredTopics"`
	WeakAreas             []string `bson:"weak_areas" json:"weakAreas"`
}

type Learner struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Position   string             `bson:"position" json:"position"`
	Department string             `bson:"department" json:"department"`
	JoinedDate time.Time          `bson:"joined_date" json:"joinedDate"`
	Bio        string             `bson:"bio,omitempty" json:"bio,omitempty"`
	AIProfile  *LearnerAIProfile  `bson:"ai_profile,omitempty" json:"aiProfile,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateLearnerRequest struct {
	Name       string            `json:"name" binding:"required"`
	Email      string            `json:"email" binding:"required,email"`
	Position   string            `json:"position"`
	Department string            `json:"department"`
	JoinedDate time.Time         `json:"joinedDate"`
	Bio        string            `json:"bio"`
	AIProfile  *LearnerAIProfile `json:"aiProfile"`
}

type UpdateLearnerRequest struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Position   string            `json:"position"`
	Department string            `json:"department"`
	JoinedDate *time.Time        `json:"joinedDate"`
	Bio        *string           `json:"bio"`
	AIProfile  *LearnerAIProfile `json:"aiProfile"`
}

type LearnersListResponse struct {
	Learners   []Learner `json:"learners"`
	TotalCount int64     `json:"totalCount"`
}
