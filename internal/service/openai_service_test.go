package service

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

type cannedCompleter struct {
	content string
	err     error

	lastRequest openai.ChatCompletionRequest
}

func (c *cannedCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	c.lastRequest = req
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: c.content}},
		},
	}, nil
}

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  \n{\"a\":1}  ", `{"a":1}`},
		{"fence without close", "```json\n{\"a\":1}", `{"a":1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.content); got != tc.want {
				t.Errorf("extractJSON = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateQuizParsesCompletion(t *testing.T) {
	completer := &cannedCompleter{content: "```json\n" + `{
		"title": "Go Fundamentals",
		"questions": [
			{
				"questionId": 1,
				"question": "What does go vet do?",
				"options": ["A", "B", "C", "D"],
				"correctAnswer": "A",
				"explanation": "It reports suspicious constructs."
			}
		]
	}` + "\n```"}
	svc := &OpenAIService{client: completer, model: "test-model"}

	result, err := svc.GenerateQuiz(context.Background(), `{"skills":["Go"]}`, "technical", 1)
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}

	if result.Title != "Go Fundamentals" {
		t.Errorf("Title = %q", result.Title)
	}
	if len(result.Questions) != 1 || result.Questions[0].CorrectAnswer != "A" {
		t.Errorf("Questions = %+v", result.Questions)
	}
	if completer.lastRequest.Model != "test-model" {
		t.Errorf("request model = %q, want test-model", completer.lastRequest.Model)
	}
	if len(completer.lastRequest.Messages) != 2 {
		t.Errorf("got %d messages, want system plus user", len(completer.lastRequest.Messages))
	}
}

func TestGenerateQuizRejectsEmptyQuestionList(t *testing.T) {
	completer := &cannedCompleter{content: `{"title": "Empty", "questions": []}`}
	svc := &OpenAIService{client: completer, model: "test-model"}

	if _, err := svc.GenerateQuiz(context.Background(), "{}", "technical", 5); err == nil {
		t.Fatal("expected error for completion without questions")
	}
}

func TestGenerateQuizRejectsMalformedCompletion(t *testing.T) {
	completer := &cannedCompleter{content: "Sure! Here is your quiz: the questions are..."}
	svc := &OpenAIService{client: completer, model: "test-model"}

	if _, err := svc.GenerateQuiz(context.Background(), "{}", "technical", 5); err == nil {
		t.Fatal("expected parse error for non-JSON completion")
	}
}

func TestGenerateValidationAnalysis(t *testing.T) {
	completer := &cannedCompleter{content: `{
		"score": 82,
		"analysis": "Solid overlap between claims and activity.",
		"recommendations": ["one", "two", "three"]
	}`}
	svc := &OpenAIService{client: completer, model: "test-model"}

	result, err := svc.GenerateValidationAnalysis(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateValidationAnalysis: %v", err)
	}
	if result.Score != 82 || len(result.Recommendations) != 3 {
		t.Errorf("result = %+v", result)
	}
}

func TestGenerateGrowthPlanRejectsEmptyPhases(t *testing.T) {
	completer := &cannedCompleter{content: `{"overview": "plan", "learningPhases": []}`}
	svc := &OpenAIService{client: completer, model: "test-model"}

	if _, err := svc.GenerateGrowthPlan(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for plan without phases")
	}
}

func TestChatPropagatesCompletionError(t *testing.T) {
	completer := &cannedCompleter{err: errors.New("connection refused")}
	svc := &OpenAIService{client: completer, model: "test-model"}

	if _, err := svc.Chat(context.Background(), "hello"); err == nil {
		t.Fatal("expected error from completer")
	}
}
