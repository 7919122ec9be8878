package service

import (
	"context"
)

type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

type LLMService interface {
	// Complete returns the first choice's text. A missing credential is reported as
	// apperror.ErrConfiguration, a failed upstream call as apperror.ErrUpstream.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
