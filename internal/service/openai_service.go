package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"hyperhive-backend/internal/config"
	"hyperhive-backend/internal/models"
)

// chatCompleter is the slice of the OpenAI client the service uses.
// Tests substitute a canned implementation.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIService struct {
	client chatCompleter
	model  string
}

func NewOpenAIService() *OpenAIService {
	cfg := openai.DefaultConfig(config.AppConfig.OpenAIAPIKey)
	if config.AppConfig.OpenAIBaseURL != "" {
		cfg.BaseURL = config.AppConfig.OpenAIBaseURL
	}
	return &OpenAIService{
		client: openai.NewClientWithConfig(cfg),
		model:  config.AppConfig.OpenAIModel,
	}
}

func (s *OpenAIService) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *OpenAIService) GenerateQuiz(ctx context.Context, learnerProfileData, quizType string, numberOfQuestions int) (*models.QuizGenerationResult, error) {
	prompt := buildQuizPrompt(learnerProfileData, quizType, numberOfQuestions)

	content, err := s.complete(ctx,
		"You are an expert educational content creator specializing in creating personalized quizzes for software engineers. Always respond with valid JSON only.",
		prompt)
	if err != nil {
		return nil, fmt.Errorf("quiz generation request failed: %w", err)
	}

	var result models.QuizGenerationResult
	if err := json.Unmarshal([]byte(extractJSON(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse quiz from completion: %w", err)
	}
	if len(result.Questions) == 0 {
		return nil, errors.New("completion contained no questions")
	}
	return &result, nil
}

func (s *OpenAIService) GenerateValidationAnalysis(ctx context.Context, prompt string) (*models.AIValidationResult, error) {
	content, err := s.complete(ctx,
		"You are an expert at validating software engineer profiles. Always respond with valid JSON only.",
		prompt)
	if err != nil {
		return nil, fmt.Errorf("validation analysis request failed: %w", err)
	}

	var result models.AIValidationResult
	if err := json.Unmarshal([]byte(extractJSON(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse validation analysis: %w", err)
	}
	return &result, nil
}

func (s *OpenAIService) GenerateGrowthPlan(ctx context.Context, prompt string) (*models.AIGrowthPlan, error) {
	content, err := s.complete(ctx,
		"You are an expert career development advisor for software engineers. Always respond with valid JSON only.",
		prompt)
	if err != nil {
		return nil, fmt.Errorf("growth plan request failed: %w", err)
	}

	var result models.AIGrowthPlan
	if err := json.Unmarshal([]byte(extractJSON(content)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse growth plan: %w", err)
	}
	if len(result.LearningPhases) == 0 {
		return nil, errors.New("growth plan contained no learning phases")
	}
	return &result, nil
}

func (s *OpenAIService) Chat(ctx context.Context, message string) (string, error) {
	log.Printf("Chat request: %s", message)
	return s.complete(ctx,
		"You are a helpful assistant for a learning platform. Answer concisely.",
		message)
}

func buildQuizPrompt(learnerProfileData, quizType string, numberOfQuestions int) string {
	return fmt.Sprintf(`
Based on this learner profile:
%s

Generate a %s quiz with %d multiple-choice questions to validate their skills and knowledge.

Requirements:
- Questions should be relevant to their current skill level
- Each question should have 4 options (A, B, C, D)
- Include the correct answer
- Provide a brief explanation for the correct answer
- Make questions practical and scenario-based when possible

Return ONLY valid JSON in this EXACT format (no markdown, no extra text):
{
  "title": "Quiz Title Here",
  "questions": [
    {
      "questionId": 1,
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": "Option B",
      "explanation": "Brief explanation why this is correct"
    }
  ]
}
`, learnerProfileData, quizType, numberOfQuestions)
}

// extractJSON strips markdown code fences that models emit despite being
// told not to, leaving the raw JSON payload.
func extractJSON(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if i := strings.LastIndex(trimmed, "```"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.TrimSpace(trimmed)
}
