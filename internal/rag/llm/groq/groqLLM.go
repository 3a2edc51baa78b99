package groq

import (
	"context"
	"fmt"
	"sync"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/rag/llm"
	"github.com/akurra/studybuddy/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Groq exposes an OpenAI-compatible chat completions endpoint, so the
// openai client is pointed at its base URL.
type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var groqClient *llmClient
var once sync.Once

func GetGroqClient(ctx context.Context, apikey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_groq")
		newGroqClient(ctx, apikey, modelName)
	})

	if groqClient == nil {
		return nil
	}
	return &llmClient{client: groqClient.client, modelName: groqClient.modelName}
}

func newGroqClient(ctx context.Context, apikey string, modelName string) {
	if apikey == "" {
		logger.Error("Groq API key is empty")
		return
	}
	c := openai.NewClient(
		option.WithAPIKey(apikey),
		option.WithBaseURL(config.GroqBaseURL),
	)
	groqClient = &llmClient{client: c, modelName: modelName}
	logger.Info("Groq client created", "model", modelName)
	go closeClient(ctx, groqClient)
}

func closeClient(ctx context.Context, c *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Groq client")
	c.modelName = ""
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.ModelContext),
			openai.UserMessage(prompt),
		},
		Temperature:      openai.Float(config.ModelTemperature),
		MaxTokens:        openai.Int(config.ModelMaxTokens),
		FrequencyPenalty: openai.Float(config.ModelFrequencyPenalty),
		PresencePenalty:  openai.Float(config.ModelPresencePenalty),
	})
	if err != nil {
		log.Error("Groq call failed", "error", err)
		return "", fmt.Errorf("%w: %v", llm.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Error("Groq response carried no content")
		return "", fmt.Errorf("%w: response missing message content", llm.ErrGenerationFailed)
	}

	return resp.Choices[0].Message.Content, nil
}
