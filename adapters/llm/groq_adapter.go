package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/config"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

const missingKeyMessage = "API key not configured. Please set GROQ_API_KEY in environment variables."

// UpstreamDetails is the diagnostic returned to the caller when the provider rejects a request.
type UpstreamDetails struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

type groqLLMAdapter struct {
	client *openai.Client
	apiKey string
	model  string
	log    logger.Logger
}

// NewGroqLLMAdapter talks to an OpenAI compatible endpoint. A missing key is not an error
// here; every call reports it instead so the service can start without one.
func NewGroqLLMAdapter(cfg config.Config, log logger.Logger) service.LLMService {
	config := openai.DefaultConfig(cfg.LLM.APIKey)
	if cfg.LLM.BaseURL != "" {
		config.BaseURL = cfg.LLM.BaseURL
	}
	if cfg.LLM.Timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: cfg.LLM.Timeout}
	}

	if cfg.LLM.APIKey == "" {
		log.Warn("GROQ_API_KEY is not set, completion requests will fail")
	} else {
		log.Info("Groq (LLM) Adapter initialized", zap.String("model", cfg.LLM.Model))
	}

	return &groqLLMAdapter{
		client: openai.NewClientWithConfig(config),
		apiKey: cfg.LLM.APIKey,
		model:  cfg.LLM.Model,
		log:    log,
	}
}

func (a *groqLLMAdapter) Complete(ctx context.Context, req service.CompletionRequest) (string, error) {
	if a.apiKey == "" {
		return "", apperror.NewConfiguration(missingKeyMessage)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      false,
	})
	if err != nil {
		return "", upstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperror.NewUpstream("provider returned no choices", UpstreamDetails{
			Status:  http.StatusOK,
			Message: "no choices in response",
		}, nil)
	}

	return resp.Choices[0].Message.Content, nil
}

func upstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperror.NewUpstream(
			fmt.Sprintf("provider returned status %d", apiErr.HTTPStatusCode),
			UpstreamDetails{Status: apiErr.HTTPStatusCode, Message: apiErr.Message, Type: apiErr.Type},
			err,
		)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperror.NewUpstream(
			fmt.Sprintf("provider returned status %d", reqErr.HTTPStatusCode),
			UpstreamDetails{Status: reqErr.HTTPStatusCode, Message: string(reqErr.Body)},
			err,
		)
	}

	return apperror.NewUpstream("completion request failed", UpstreamDetails{Message: err.Error()}, err)
}
