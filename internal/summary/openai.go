package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/sashabaranov/go-openai"
)

var (
	// Ключ не задан, summarizer выключен
	ErrDisabled = errors.New("summarizer is disabled")
	ErrEmpty    = errors.New("model returned empty response")
)

// Промпты для каждого типа запроса, текст статьи подставляется в конец
var prompts = map[model.Intent]string{
	model.IntentSummary:   "Summarize this news article in 3-4 key bullet points:\n\n%s",
	model.IntentDigest:    "Create a brief daily news digest from these articles. Group by categories and provide key insights:\n\n%s",
	model.IntentQuickRead: "Provide a 2-sentence quick read summary of this article:\n\n%s",
}

const fallbackPrompt = "Summarize this content:\n\n%s"

type OpenAISummarizer struct {
	client  *openai.Client
	model   string
	enabled bool
}

// baseURL можно оставить пустым, тогда используется api.openai.com
func NewOpenAISummarizer(apiKey, modelName, baseURL string) *OpenAISummarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if modelName == "" {
		modelName = openai.GPT3Dot5Turbo
	}

	s := &OpenAISummarizer{
		client:  openai.NewClientWithConfig(cfg),
		model:   modelName,
		enabled: apiKey != "",
	}

	return s
}

func (s *OpenAISummarizer) Enabled() bool {
	return s.enabled
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string, intent model.Intent) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}

	prompt, ok := prompts[intent]
	if !ok {
		prompt = fallbackPrompt
	}

	request := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(prompt, text),
			},
		},
		MaxTokens:   512,
		Temperature: 0.7,
		TopP:        1,
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmpty
	}

	choice := resp.Choices[0]
	raw := strings.TrimSpace(choice.Message.Content)
	if raw == "" {
		return "", ErrEmpty
	}

	// Ответ обрезан по лимиту токенов, отбрасываем недописанное предложение
	if string(choice.FinishReason) == "length" {
		return trimUnfinishedSentence(raw), nil
	}

	return raw, nil
}

func trimUnfinishedSentence(text string) string {
	if strings.HasSuffix(text, ".") {
		return text
	}

	sentences := strings.Split(text, ".")
	if len(sentences) < 2 {
		return text
	}

	// Все предложения кроме последнего, и точка в конце
	return strings.Join(sentences[:len(sentences)-1], ".") + "."
}
