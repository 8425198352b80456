package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

type AIService struct {
	client *openai.Client
}

// ExtractedDecision is the decision part of an extraction result.
type ExtractedDecision struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ExtractedActionItem is one action item produced by extraction.
type ExtractedActionItem struct {
	Title    string     `json:"title"`
	Assignee string     `json:"assignee"`
	DueDate  *time.Time `json:"due_date"`
	Priority string     `json:"priority"`
}

// ExtractionResult is the structured output of a meeting-text extraction.
type ExtractionResult struct {
	Decision    ExtractedDecision     `json:"decision"`
	ActionItems []ExtractedActionItem `json:"action_items"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// ExtractFromText analyzes meeting text and extracts the decision that was
// made plus its action items using OpenAI GPT.
func (s *AIService) ExtractFromText(ctx context.Context, text string) (*ExtractionResult, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a meeting analysis assistant. Extract the key decision made in the meeting below, along with its action items.

Current time: %s

Meeting text:
%s

Respond with JSON in exactly this shape:
{
  "decision": {
    "title": "short decision title",
    "description": "what was decided and why"
  },
  "action_items": [
    {
      "title": "concise task title",
      "assignee": "person responsible, empty string if unknown",
      "due_date": "ISO8601 timestamp, e.g. 2025-10-28T23:59:59Z, or null if no deadline was mentioned",
      "priority": "Urgent, High, Medium or Low"
    }
  ]
}

Rules:
- If no action items were agreed, return an empty action_items array
- Convert relative deadlines ("tomorrow", "next week") into concrete timestamps
- due_date must be an ISO8601 string or null
- Return only the JSON, no surrounding text`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	var result ExtractionResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return &result, nil
}

// TranscribeAudio transcribes an uploaded audio file with Whisper and returns
// the transcription text plus the audio duration in seconds. The verbose JSON
// response format is required for Whisper to report the duration.
func (s *AIService) TranscribeAudio(ctx context.Context, filePath string) (string, float64, error) {
	if s.client == nil {
		return "", 0, fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filePath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return "", 0, fmt.Errorf("OpenAI transcription error: %w", err)
	}

	return resp.Text, resp.Duration, nil
}
