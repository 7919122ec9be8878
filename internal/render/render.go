package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
)

const present = "Present"

// Render lays out p with the given template. Unknown ids fall back to the academic layout.
// p is only read; a nil profile renders as an empty one.
func Render(p *profile.Profile, templateID string) Document {
	if p == nil {
		p = profile.New("")
	}

	id := catalog.ID(templateID)
	v, ok := variants[id]
	fallback := !ok
	if fallback {
		id = defaultID
		v = variants[id]
	}

	doc := Document{
		TemplateID: id,
		Variant:    v.name,
		Layout:     v.layout,
		Centered:   v.centered,
		Accented:   v.accented,
		Fallback:   fallback,
		Header:     header(p, v),
		Sidebar:    []Section{},
		Main:       []Section{},
	}
	if meta, ok := catalog.Lookup(id); ok {
		doc.Accent = meta.Color
	}

	for _, sid := range v.sidebar {
		if s, ok := section(p, v, sid); ok {
			doc.Sidebar = append(doc.Sidebar, s)
		}
	}
	for _, sid := range v.main {
		if s, ok := section(p, v, sid); ok {
			doc.Main = append(doc.Main, s)
		}
	}
	return doc
}

func header(p *profile.Profile, v variant) Header {
	b := p.BasicInfo
	h := Header{
		Name:     or(b.FullName, v.ph.Name),
		JobTitle: or(b.JobTitle, v.ph.JobTitle),
		Initial:  v.ph.Initial,
		Photo:    b.ProfileImage,
		Contact:  []Field{},
	}
	if v.uppercase {
		h.Name = strings.ToUpper(h.Name)
	}
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(b.FullName)); r != utf8.RuneError {
		h.Initial = string(unicode.ToUpper(r))
	}

	address := b.StreetAddress
	if address == "" {
		address = b.Location
	}
	for _, f := range []struct{ kind, value, ph string }{
		{"phone", b.Phone, v.ph.Phone},
		{"email", b.Email, v.ph.Email},
		{"address", address, v.ph.Address},
		{"website", b.Website, ""},
	} {
		switch {
		case f.value != "":
			h.Contact = append(h.Contact, Field{Kind: f.kind, Value: f.value})
		case f.ph != "":
			h.Contact = append(h.Contact, Field{Kind: f.kind, Value: f.ph, Placeholder: true})
		}
	}
	return h
}

func section(p *profile.Profile, v variant, id string) (Section, bool) {
	var items []Item

	switch id {
	case profile.SectionSummary:
		if strings.TrimSpace(p.Summary) == "" {
			return Section{}, false
		}
		items = []Item{{Body: p.Summary}}

	case profile.SectionEducation:
		if !hasData(p.Education, educationFilled) {
			return Section{}, false
		}
		for _, e := range p.Education {
			items = append(items, Item{
				Heading:    or(e.Institution, v.ph.Institution),
				Subheading: or(e.Degree, v.ph.Degree),
				Period:     dateRange(e.From, e.To, e.CurrentlyStudying),
				Body:       e.Grade,
			})
		}

	case profile.SectionExperience:
		if !hasData(p.Experience, experienceFilled) {
			return Section{}, false
		}
		for _, e := range p.Experience {
			items = append(items, Item{
				Heading:    or(e.Company, v.ph.Company),
				Subheading: or(e.Role, v.ph.Role),
				Period:     dateRange(e.From, e.To, e.CurrentlyWorking),
				Body:       or(e.Description, v.ph.Description),
				Link:       e.URL,
			})
		}

	case profile.SectionProjects:
		if !hasData(p.Projects, projectFilled) {
			return Section{}, false
		}
		for _, pr := range p.Projects {
			items = append(items, Item{
				Heading:    or(pr.Name, v.ph.Project),
				Subheading: pr.Role,
				Period:     dateRange(pr.From, pr.To, pr.CurrentlyWorking),
				Body:       pr.Description,
				Link:       pr.URL,
			})
		}

	case profile.SectionSkills:
		if !hasData(p.Skills, func(s string) bool { return s != "" }) {
			return Section{}, false
		}
		for _, s := range p.Skills {
			items = append(items, Item{Heading: s})
		}

	case profile.SectionLanguages:
		if !hasData(p.Languages, func(l profile.Language) bool { return filled(l.Name, l.Level) }) {
			return Section{}, false
		}
		for _, l := range p.Languages {
			items = append(items, Item{Heading: or(l.Name, v.ph.Language), Subheading: l.Level})
		}

	case profile.SectionCertificates:
		if !hasData(p.CoursesCertificates, func(c profile.Certificate) bool {
			return filled(c.Title, c.Organization, c.Date, c.URL)
		}) {
			return Section{}, false
		}
		for _, c := range p.CoursesCertificates {
			items = append(items, Item{
				Heading:    or(c.Title, v.ph.Certificate),
				Subheading: or(c.Organization, v.ph.Organization),
				Period:     c.Date,
				Link:       c.URL,
			})
		}

	default:
		return Section{}, false
	}

	return Section{ID: id, Title: v.titles[id], Items: items}, true
}

// hasData reports whether a section has real content. Only the first element is inspected.
func hasData[T any](items []T, filledFn func(T) bool) bool {
	return len(items) > 0 && filledFn(items[0])
}

func educationFilled(e profile.Education) bool {
	return e.CurrentlyStudying || filled(e.Institution, e.Degree, e.Grade, e.From, e.To)
}

func experienceFilled(e profile.Experience) bool {
	return e.CurrentlyWorking || filled(e.Company, e.URL, e.Location, e.Role, e.From, e.To, e.Description)
}

func projectFilled(pr profile.Project) bool {
	return pr.CurrentlyWorking || filled(pr.Name, pr.Role, pr.URL, pr.From, pr.To, pr.Description)
}

func filled(values ...string) bool {
	for _, v := range values {
		if v != "" {
			return true
		}
	}
	return false
}

// dateRange formats "{from} - {to}". The ongoing flag wins over an explicit end.
func dateRange(from, to string, ongoing bool) string {
	if ongoing || to == "" {
		to = present
	}
	return fmt.Sprintf("%s - %s", from, to)
}

func or(value, placeholder string) string {
	if value != "" {
		return value
	}
	return placeholder
}
