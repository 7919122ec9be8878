package catalog

import (
	"context"
	"fmt"

	"github.com/khoahotran/resume-builder/internal/domain/catalog"
)

type ListTemplatesUseCase struct {
	templateRepo catalog.Repository
}

func NewListTemplatesUseCase(repo catalog.Repository) *ListTemplatesUseCase {
	return &ListTemplatesUseCase{templateRepo: repo}
}

type ListTemplatesOutput struct {
	Templates []catalog.TemplateMeta
}

func (uc *ListTemplatesUseCase) Execute(ctx context.Context) (*ListTemplatesOutput, error) {
	templates, err := uc.templateRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates failed: %w", err)
	}
	if templates == nil {
		templates = []catalog.TemplateMeta{}
	}
	return &ListTemplatesOutput{Templates: templates}, nil
}
