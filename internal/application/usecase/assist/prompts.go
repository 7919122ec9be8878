package assist

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// Kind is the type of text a completion drafts.
type Kind string

const (
	JobDescription     Kind = "job-description"
	ProjectDescription Kind = "project-description"
	Summary            Kind = "summary"
)

const systemPrompt = "You are a concise resume writer. Follow instructions exactly. Be brief and impactful."

const temperature = 0.5

type promptSpec struct {
	template  string
	maxTokens int
	// defaults fill context fields that are missing or blank.
	defaults map[string]string
}

var prompts = map[Kind]promptSpec{
	JobDescription: {
		template:  "job_description.tmpl",
		maxTokens: 120,
		defaults: map[string]string{
			"jobTitle": "Not specified",
			"company":  "Not specified",
			"from":     "Not specified",
			"to":       "Present",
		},
	},
	ProjectDescription: {
		template:  "project_description.tmpl",
		maxTokens: 120,
		defaults: map[string]string{
			"name": "Not specified",
			"role": "Not specified",
		},
	},
	Summary: {
		template:  "summary.tmpl",
		maxTokens: 80,
		defaults: map[string]string{
			"jobTitle": "Professional",
			"skills":   "Various skills",
		},
	},
}

// ParseKind accepts only the three known kinds.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := prompts[k]
	return k, ok
}

func (s promptSpec) build(ctx map[string]any) (string, error) {
	data := make(map[string]string, len(s.defaults))
	for field, def := range s.defaults {
		v := contextValue(ctx[field])
		if v == "" {
			v = def
		}
		data[field] = v
	}

	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, s.template, data); err != nil {
		return "", fmt.Errorf("execute prompt %s: %w", s.template, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func contextValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := contextValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
