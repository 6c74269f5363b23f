package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"formforge/internal/config"
	"formforge/internal/model"
)

var ErrAINotConfigured = errors.New("AI generation is not configured")

// AIService generates complete forms from a topic prompt via the Groq
// chat-completions API. Generated questions go through the same authoring
// path (validation included) as manually created ones.
type AIService struct {
	config  *config.AIConfig
	client  *http.Client
	formSvc *FormService
}

// NewAIService creates a new AI service
func NewAIService(cfg *config.AIConfig, formSvc *FormService) *AIService {
	return &AIService{
		config:  cfg,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		formSvc: formSvc,
	}
}

const generationSystemPrompt = `You are an expert quiz creator. A user will provide a topic, and you must generate a quiz about it.
You must respond ONLY with a single JSON object in the exact structure requested, with no other text or markdown.

The JSON object must have this structure:
{
  "title": "Your Generated Quiz Title",
  "questions": [
    {
      "type": "MultipleChoice",
      "text": "Your question text?",
      "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
      "correctAnswer": "The correct option text"
    },
    {
      "type": "ShortAnswer",
      "text": "Your short answer question?"
    },
    {
      "type": "Comprehension",
      "passage": "A short passage (2-4 sentences) for the user to read.",
      "subQuestions": [
        {
          "text": "A question about the passage?",
          "options": ["Option 1", "Option 2", "Option 3"],
          "correctOption": "The correct option text"
        }
      ]
    },
    {
      "type": "Categorize",
      "categories": ["Category A", "Category B"],
      "items": [
        { "text": "Item 1", "category": "Category A" },
        { "text": "Item 2", "category": "Category B" }
      ]
    },
    {
      "type": "Cloze",
      "passage": "This is a passage with a [BLANK] and another [BLANK].",
      "blankAnswers": ["first_word", "second_word"]
    }
  ]
}

Rules:
- Respond with a single, minified JSON object.
- Do NOT use markdown.
- ONLY use the question types: "MultipleChoice", "ShortAnswer", "Comprehension", "Categorize", "Cloze".
- Create between 3 and 7 questions.
- Ensure "correctAnswer" for MultipleChoice exactly matches one of the strings in "options", and "correctOption" matches one of that sub-question's "options".
- Ensure every item "category" is one of the declared "categories".
- For "Cloze", the number of strings in "blankAnswers" must exactly match the number of [BLANK] tags in the passage.`

// generatedForm mirrors the JSON structure the prompt demands
type generatedForm struct {
	Title     string           `json:"title"`
	Questions []model.Question `json:"questions"`
}

// GenerateForm asks the model for a quiz on the given topic and persists it
// as a new form owned by the requesting user
func (s *AIService) GenerateForm(ctx context.Context, prompt, userID, username string) (*model.Form, error) {
	if !s.config.IsEnabled() {
		return nil, ErrAINotConfigured
	}

	text, err := s.callGroq(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("AI generation failed: %w", err)
	}

	var generated generatedForm
	if err := json.Unmarshal([]byte(text), &generated); err != nil {
		return nil, fmt.Errorf("AI returned malformed quiz JSON: %w", err)
	}
	if len(generated.Questions) == 0 {
		return nil, errors.New("AI returned no questions")
	}

	form := &model.Form{
		Title:    generated.Title,
		UserID:   userID,
		Username: username,
		Theme:    "Light",
	}
	return s.formSvc.Create(ctx, form, generated.Questions)
}

func (s *AIService) callGroq(ctx context.Context, userPrompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": s.config.Model,
		"messages": []map[string]string{
			{"role": "system", "content": generationSystemPrompt},
			{"role": "user", "content": fmt.Sprintf("User prompt: %q", userPrompt)},
		},
		"response_format": map[string]string{"type": "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.ChatCompletionsEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) > 0 && chatResp.Choices[0].Message.Content != "" {
		return chatResp.Choices[0].Message.Content, nil
	}
	return "", errors.New("empty response from Groq")
}
