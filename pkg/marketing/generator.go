package marketing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"doceria_backend/internal/model"
)

// ScheduleInput describes the business the schedule is generated for.
type ScheduleInput struct {
	BusinessType   string `json:"business_type"`
	BusinessName   string `json:"business_name"`
	TargetAudience string `json:"target_audience"`
	PeriodDays     int    `json:"period_days"`
	Focus          string `json:"focus"`
}

// Generator produces social media content schedules through the OpenAI
// chat completions API.
type Generator struct {
	client *openai.Client
}

func NewGenerator(apiKey string) *Generator {
	return &Generator{client: openai.NewClient(apiKey)}
}

func buildPrompt(input ScheduleInput) string {
	name := input.BusinessName
	if name == "" {
		name = "Minha Doceria"
	}

	return fmt.Sprintf(`Você é um especialista em marketing digital para pequenos negócios de confeitaria no Brasil.

Crie um cronograma de conteúdo para redes sociais com %d posts/dias para:
- Tipo de negócio: %s
- Nome do negócio: %s
- Público-alvo: %s
- Foco do período: %s

Para cada dia, crie um post diferente variando entre Instagram, WhatsApp e TikTok.
Use linguagem natural, brasileira e autêntica. Inclua emojis nas legendas.
Hashtags devem ser relevantes e em português.

Retorne APENAS um JSON válido no formato:
{"posts": [
  {
    "dia": 1,
    "plataforma": "Instagram",
    "tema": "Tema do post",
    "legenda": "Legenda completa do post com emojis",
    "hashtags": ["#doceria", "#confeitaria"],
    "horario_sugerido": "19:00"
  }
]}`,
		input.PeriodDays, input.BusinessType, name, input.TargetAudience, input.Focus)
}

// GenerateSchedule asks the model for one post per day of the period.
func (g *Generator) GenerateSchedule(ctx context.Context, input ScheduleInput) ([]model.MarketingPost, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(input)},
		},
		Temperature: 0.8,
		MaxTokens:   4000,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marketing: completion request: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("marketing: completion returned no content")
	}

	return ParsePosts([]byte(resp.Choices[0].Message.Content))
}

// ParsePosts accepts both response shapes the model produces: a bare
// array or an object wrapping it under "posts".
func ParsePosts(raw []byte) ([]model.MarketingPost, error) {
	var posts []model.MarketingPost
	if err := json.Unmarshal(raw, &posts); err == nil {
		return posts, nil
	}

	var wrapped struct {
		Posts []model.MarketingPost `json:"posts"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("marketing: decode posts: %w", err)
	}
	if wrapped.Posts == nil {
		return []model.MarketingPost{}, nil
	}
	return wrapped.Posts, nil
}
