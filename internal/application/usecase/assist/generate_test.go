package assist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/mocks"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

func TestGenerate_Validation(t *testing.T) {
	uc := NewGenerateUseCase(new(mocks.LLM), logger.NewNop())

	tests := []struct {
		name  string
		input GenerateInput
		msg   string
	}{
		{"missing type", GenerateInput{Context: map[string]any{}}, "Type and context are required"},
		{"missing context", GenerateInput{Kind: "summary"}, "Type and context are required"},
		{"unknown type", GenerateInput{Kind: "haiku", Context: map[string]any{}}, "Invalid type. Use: job-description, project-description, or summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}
}

func TestGenerate_SummaryWithoutSkillsStillRequests(t *testing.T) {
	llm := new(mocks.LLM)
	llm.On("Complete", mock.Anything, mock.MatchedBy(func(req service.CompletionRequest) bool {
		return req.MaxTokens == 80 &&
			req.Temperature == 0.5 &&
			req.System == systemPrompt &&
			assert.Contains(t, req.Prompt, "Title: Backend Engineer") &&
			assert.Contains(t, req.Prompt, "Skills: Various skills")
	})).Return("  Seasoned engineer. Ships reliable systems.\n", nil).Once()

	uc := NewGenerateUseCase(llm, logger.NewNop())
	out, err := uc.Execute(context.Background(), GenerateInput{
		Kind:    "summary",
		Context: map[string]any{"jobTitle": "Backend Engineer"},
	})

	require.NoError(t, err)
	assert.Equal(t, Summary, out.Kind)
	assert.Equal(t, "Seasoned engineer. Ships reliable systems.", out.Text)
	llm.AssertExpectations(t)
}

func TestGenerate_JobDescriptionPrompt(t *testing.T) {
	llm := new(mocks.LLM)
	var got service.CompletionRequest
	llm.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(service.CompletionRequest) }).
		Return("• Did things", nil)

	uc := NewGenerateUseCase(llm, logger.NewNop())
	_, err := uc.Execute(context.Background(), GenerateInput{
		Kind:    "job-description",
		Context: map[string]any{"company": "Acme", "from": "2021", "to": "  "},
	})
	require.NoError(t, err)

	assert.Equal(t, 120, got.MaxTokens)
	assert.Contains(t, got.Prompt, "Job: Not specified at Acme")
	assert.Contains(t, got.Prompt, "Duration: 2021 - Present")
	assert.Contains(t, got.Prompt, "- Format: • [text]")
}

func TestGenerate_ProjectDescriptionPrompt(t *testing.T) {
	llm := new(mocks.LLM)
	var got service.CompletionRequest
	llm.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(service.CompletionRequest) }).
		Return("ok", nil)

	uc := NewGenerateUseCase(llm, logger.NewNop())
	_, err := uc.Execute(context.Background(), GenerateInput{
		Kind:    "project-description",
		Context: map[string]any{"name": "Compiler", "skills": []any{"ignored"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 120, got.MaxTokens)
	assert.Contains(t, got.Prompt, "Project: Compiler\nRole: Not specified")
	assert.Contains(t, got.Prompt, "- Describe role and impact")
}

func TestGenerate_PropagatesAdapterErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"configuration", apperror.NewConfiguration("API key not configured. Please set GROQ_API_KEY in environment variables."), apperror.ErrConfiguration},
		{"upstream", apperror.NewUpstream("status 401", map[string]any{"message": "bad key"}, errors.New("401")), apperror.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := new(mocks.LLM)
			llm.On("Complete", mock.Anything, mock.Anything).Return("", tt.err).Once()

			uc := NewGenerateUseCase(llm, logger.NewNop())
			out, err := uc.Execute(context.Background(), GenerateInput{Kind: "summary", Context: map[string]any{}})

			assert.Nil(t, out)
			assert.True(t, errors.Is(err, tt.sentinel))
			llm.AssertNumberOfCalls(t, "Complete", 1)
		})
	}
}

func TestContextValue(t *testing.T) {
	assert.Equal(t, "", contextValue(nil))
	assert.Equal(t, "Go, SQL", contextValue([]any{"Go", " ", "SQL"}))
	assert.Equal(t, "Go, SQL", contextValue([]string{"Go", "SQL"}))
	assert.Equal(t, "3", contextValue(3))
}
