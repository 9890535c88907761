package llm

import (
	"context"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

type openaiGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator talks to a hosted chat-completion service through the
// OpenAI streaming protocol, submitting the prompt as a single user-role
// message.
func NewOpenAIGenerator(apiKey, model string) Generator {
	return &openaiGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (g *openaiGenerator) Generate(ctx context.Context, req Request, consumer func(Chunk) error) error {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    openai.ChatModel(g.model),
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature != 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	stream := g.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	start := time.Now()
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if err := consumer(Chunk{
			Content: delta,
			Partial: true,
			Latency: time.Since(start),
		}); err != nil {
			return err
		}
	}
	return stream.Err()
}
