package http

import (
	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
)

// Profile DTOs
type GetProfileResponse struct {
	Exists  bool             `json:"exists"`
	Profile *profile.Profile `json:"profile"`
}

// SaveProfileRequest is the flat save body: the user id plus any subset of profile fields.
type SaveProfileRequest struct {
	UserID string `json:"userId"`
	profile.Patch
}

type SaveProfileResponse struct {
	Success bool           `json:"success"`
	Action  profile.Action `json:"action"`
}

// Template DTOs
type ListTemplatesResponse struct {
	Success   bool                   `json:"success"`
	Templates []catalog.TemplateMeta `json:"templates"`
}

// Generate DTOs
type GenerateRequest struct {
	Type    string         `json:"type"`
	Context map[string]any `json:"context"`
}

type GenerateResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

// Health DTOs
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Driver  string `json:"driver"`
}
