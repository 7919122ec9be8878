package assist

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

var tracer = otel.Tracer("github.com/khoahotran/resume-builder/assist")

type GenerateUseCase struct {
	llm    service.LLMService
	logger logger.Logger
}

func NewGenerateUseCase(llm service.LLMService, log logger.Logger) *GenerateUseCase {
	return &GenerateUseCase{llm: llm, logger: log}
}

type GenerateInput struct {
	Kind    string
	Context map[string]any
}

type GenerateOutput struct {
	Kind Kind
	Text string
}

// Execute sends one completion request. Nothing is retried or cached.
func (uc *GenerateUseCase) Execute(ctx context.Context, input GenerateInput) (*GenerateOutput, error) {
	if input.Kind == "" || input.Context == nil {
		return nil, apperror.NewInvalidInput("Type and context are required", nil)
	}
	kind, ok := ParseKind(input.Kind)
	if !ok {
		return nil, apperror.NewInvalidInput("Invalid type. Use: job-description, project-description, or summary", nil)
	}

	spec := prompts[kind]
	prompt, err := spec.build(input.Context)
	if err != nil {
		return nil, apperror.NewInternal("failed to build prompt", err)
	}

	ctx, span := tracer.Start(ctx, "assist.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("assist.kind", string(kind)), attribute.Int("assist.max_tokens", spec.maxTokens))

	text, err := uc.llm.Complete(ctx, service.CompletionRequest{
		System:      systemPrompt,
		Prompt:      prompt,
		MaxTokens:   spec.maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		uc.logger.Error("Completion request failed", err, zap.String("kind", string(kind)))
		return nil, fmt.Errorf("generate %s failed: %w", kind, err)
	}

	return &GenerateOutput{Kind: kind, Text: strings.TrimSpace(text)}, nil
}
