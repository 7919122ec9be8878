package catalog

import (
	"context"
	"time"
)

// ID identifies a visual template.
type ID string

const (
	Modern           ID = "modern"
	Minimal          ID = "minimal"
	Academic         ID = "academic"
	ModernBlue       ID = "modern-blue"
	MinimalistOrange ID = "minimalist-orange"
	CleanTeal        ID = "clean-teal"
	BoldBlack        ID = "bold-black"
)

// DefaultID is the template a new builder session starts with.
const DefaultID = ModernBlue

type TemplateMeta struct {
	ID           ID        `json:"templateId" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Description  string    `json:"description" yaml:"description"`
	PreviewImage string    `json:"previewImage" yaml:"preview_image"`
	Category     string    `json:"category" yaml:"category"`
	IsPremium    bool      `json:"isPremium" yaml:"is_premium"`
	Features     []string  `json:"features" yaml:"features"`
	Color        string    `json:"color,omitempty" yaml:"color"`
	CreatedAt    time.Time `json:"createdAt,omitzero" yaml:"-"`
}

type Repository interface {
	// ListActive returns active templates, newest first.
	ListActive(ctx context.Context) ([]TemplateMeta, error)
	Upsert(ctx context.Context, t TemplateMeta, active bool) error
}

// Builtin lists the templates the renderer knows how to draw.
func Builtin() []TemplateMeta {
	builtin := []TemplateMeta{
		{
			ID: Modern, Name: "Modern Professional", Description: "Clean lines and bold headings.",
			Category: "professional", Color: "#374151",
			Features: []string{"Bold headings", "Accent rules", "ATS friendly"},
		},
		{
			ID: Minimal, Name: "Minimalist", Description: "Essential information, maximum white space.",
			Category: "simple", Color: "#6b7280",
			Features: []string{"Single column", "Generous spacing"},
		},
		{
			ID: Academic, Name: "Academic CV", Description: "Detailed structure for research and education.",
			Category: "academic", Color: "#1f2937",
			Features: []string{"Education first", "Certificates section"},
		},
		{
			ID: ModernBlue, Name: "Professional Blue", Description: "Two-column layout with professional blue sidebar.",
			Category: "professional", Color: "#1a365d",
			Features: []string{"Two columns", "Photo", "Sidebar contact"},
		},
		{
			ID: MinimalistOrange, Name: "Warm Minimalist", Description: "Clean layout with warm orange accents.",
			Category: "creative", Color: "#c05621", IsPremium: true,
			Features: []string{"Accent color", "Photo"},
		},
		{
			ID: CleanTeal, Name: "Clean Modern", Description: "Modern design with teal highlights.",
			Category: "modern", Color: "#2c7a7b", IsPremium: true,
			Features: []string{"Skills grid", "Teal highlights"},
		},
		{
			ID: BoldBlack, Name: "Bold Minimal", Description: "High-contrast, bold typography.",
			Category: "modern", Color: "#111827",
			Features: []string{"High contrast", "Bold typography"},
		},
	}
	for i := range builtin {
		builtin[i].PreviewImage = "/templates/" + string(builtin[i].ID) + ".png"
	}
	return builtin
}

// Lookup finds a builtin template by id.
func Lookup(id ID) (TemplateMeta, bool) {
	for _, t := range Builtin() {
		if t.ID == id {
			return t, true
		}
	}
	return TemplateMeta{}, false
}
