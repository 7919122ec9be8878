package render

import "github.com/khoahotran/resume-builder/internal/domain/catalog"

type Layout string

const (
	SingleColumn Layout = "single-column"
	TwoColumn    Layout = "two-column"
)

// Field is one contact line. Placeholder is set when Value is the variant's sample text.
type Field struct {
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

type Header struct {
	Name     string  `json:"name"`
	JobTitle string  `json:"jobTitle"`
	Initial  string  `json:"initial"`
	Photo    string  `json:"photo,omitempty"`
	Contact  []Field `json:"contact"`
}

type Item struct {
	Heading    string `json:"heading,omitempty"`
	Subheading string `json:"subheading,omitempty"`
	Period     string `json:"period,omitempty"`
	Body       string `json:"body,omitempty"`
	Link       string `json:"link,omitempty"`
}

type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Document is the structured, presentation-ready form of a profile.
type Document struct {
	TemplateID catalog.ID `json:"templateId"`
	Variant    string     `json:"variant"`
	Layout     Layout     `json:"layout"`
	Accent     string     `json:"accent"`
	Centered   bool       `json:"centered,omitempty"`
	// Accented headings use the accent colour for the name and section titles.
	Accented bool `json:"accented,omitempty"`
	// Fallback is set when the requested template was unknown.
	Fallback bool      `json:"fallback,omitempty"`
	Header   Header    `json:"header"`
	Sidebar  []Section `json:"sidebar"`
	Main     []Section `json:"main"`
}

// Section returns the section with the given id from either column.
func (d Document) Section(id string) (Section, bool) {
	for _, s := range d.Sidebar {
		if s.ID == id {
			return s, true
		}
	}
	for _, s := range d.Main {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
