package session

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/khoahotran/resume-builder/internal/domain/profile"
)

// Draft is the editable state of a builder session.
type Draft struct {
	Profile *profile.Profile
	// SkillsText is the comma separated form field Profile.Skills is derived from.
	SkillsText string
}

// touch marks a repeatable section as edited. A section whose stored value could not be
// decoded stays out of autosaves until it has been touched.
func (d *Draft) touch(section string) {
	d.Profile.CorruptedSections = slices.DeleteFunc(d.Profile.CorruptedSections, func(s string) bool {
		return s == section
	})
}

// Edit is a reducer applied to the draft on the session loop.
type Edit func(d *Draft)

// SetBasic sets a basic info field by its JSON name, e.g. "fullName".
func SetBasic(field, value string) (Edit, error) {
	set, ok := basicSetters[field]
	if !ok {
		return nil, fmt.Errorf("unknown basic info field %q", field)
	}
	return func(d *Draft) { set(&d.Profile.BasicInfo, value) }, nil
}

var basicSetters = map[string]func(b *profile.BasicInfo, v string){
	"fullName":      func(b *profile.BasicInfo, v string) { b.FullName = v },
	"jobTitle":      func(b *profile.BasicInfo, v string) { b.JobTitle = v },
	"phone":         func(b *profile.BasicInfo, v string) { b.Phone = v },
	"email":         func(b *profile.BasicInfo, v string) { b.Email = v },
	"location":      func(b *profile.BasicInfo, v string) { b.Location = v },
	"website":       func(b *profile.BasicInfo, v string) { b.Website = v },
	"country":       func(b *profile.BasicInfo, v string) { b.Country = v },
	"streetAddress": func(b *profile.BasicInfo, v string) { b.StreetAddress = v },
	"profileImage":  func(b *profile.BasicInfo, v string) { b.ProfileImage = v },
}

func SetTemplate(id string) Edit {
	return func(d *Draft) { d.Profile.BasicInfo.TemplateID = id }
}

func SetSummary(text string) Edit {
	return func(d *Draft) { d.Profile.Summary = text }
}

func SetSkillsText(text string) Edit {
	return func(d *Draft) {
		d.SkillsText = text
		d.Profile.Skills = profile.SplitSkills(text)
		d.touch(profile.SectionSkills)
	}
}

func SetEducation(items []profile.Education) Edit {
	return func(d *Draft) {
		d.Profile.Education = items
		d.touch(profile.SectionEducation)
	}
}

func SetExperience(items []profile.Experience) Edit {
	return func(d *Draft) {
		d.Profile.Experience = items
		d.touch(profile.SectionExperience)
	}
}

func SetProjects(items []profile.Project) Edit {
	return func(d *Draft) {
		d.Profile.Projects = items
		d.touch(profile.SectionProjects)
	}
}

func SetLanguages(items []profile.Language) Edit {
	return func(d *Draft) {
		d.Profile.Languages = items
		d.touch(profile.SectionLanguages)
	}
}

func SetCertificates(items []profile.Certificate) Edit {
	return func(d *Draft) {
		d.Profile.CoursesCertificates = items
		d.touch(profile.SectionCertificates)
	}
}

func MarkSection(section string, done bool) Edit {
	return func(d *Draft) {
		if d.Profile.CompletedSections == nil {
			d.Profile.CompletedSections = map[string]bool{}
		}
		d.Profile.CompletedSections[section] = done
		d.touch(profile.SectionCompleted)
	}
}

// Target addresses a free-text field a completion can fill:
// "summary", "experience.<i>.desc" or "projects.<i>.desc".
type Target string

func (t Target) field(d *Draft) (*string, error) {
	parts := strings.Split(string(t), ".")
	if len(parts) == 1 && parts[0] == profile.SectionSummary {
		return &d.Profile.Summary, nil
	}
	if len(parts) != 3 || parts[2] != "desc" {
		return nil, fmt.Errorf("unsupported completion target %q", t)
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 {
		return nil, fmt.Errorf("invalid index in completion target %q", t)
	}

	switch parts[0] {
	case profile.SectionExperience:
		if i < len(d.Profile.Experience) {
			return &d.Profile.Experience[i].Description, nil
		}
	case profile.SectionProjects:
		if i < len(d.Profile.Projects) {
			return &d.Profile.Projects[i].Description, nil
		}
	default:
		return nil, fmt.Errorf("unsupported completion target %q", t)
	}
	return nil, fmt.Errorf("completion target %q is out of range", t)
}
