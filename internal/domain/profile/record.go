package profile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khoahotran/resume-builder/pkg/apperror"
)

const (
	ColUserID              = "user_id"
	ColFullName            = "full_name"
	ColJobTitle            = "job_title"
	ColPhone               = "phone"
	ColEmail               = "email"
	ColLocation            = "location"
	ColWebsite             = "website"
	ColCountry             = "country"
	ColStreetAddress       = "street_address"
	ColProfileImage        = "profile_image"
	ColTemplateID          = "template_id"
	ColSummary             = "summary"
	ColEducation           = "education"
	ColExperience          = "experience"
	ColProjects            = "projects"
	ColSkills              = "skills"
	ColLanguages           = "languages"
	ColCoursesCertificates = "courses_certificates"
	ColCompletedSections   = "completed_sections"
	ColUpdatedAt           = "updated_at"
)

// Columns lists every profile column in table order, excluding the key and timestamps.
var Columns = []string{
	ColFullName, ColJobTitle, ColPhone, ColEmail, ColLocation, ColWebsite, ColCountry,
	ColStreetAddress, ColProfileImage, ColTemplateID, ColSummary,
	ColEducation, ColExperience, ColProjects, ColSkills, ColLanguages,
	ColCoursesCertificates, ColCompletedSections,
}

// Record is the flat storage shape of a profile, keyed by column name.
// Values are strings (scalars and JSON text) or nil.
type Record map[string]any

// Columns returns the record's column names in table order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for _, c := range Columns {
		if _, ok := r[c]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// CorruptionError lists stored columns whose JSON could not be parsed.
type CorruptionError struct {
	Columns []string
	Causes  map[string]error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("%s: malformed json in %s", apperror.ErrDataCorruption, strings.Join(e.Columns, ", "))
}

func (e *CorruptionError) Unwrap() error {
	return apperror.ErrDataCorruption
}

func scalarFields(p *Profile) map[string]*string {
	return map[string]*string{
		ColFullName:      &p.BasicInfo.FullName,
		ColJobTitle:      &p.BasicInfo.JobTitle,
		ColPhone:         &p.BasicInfo.Phone,
		ColEmail:         &p.BasicInfo.Email,
		ColLocation:      &p.BasicInfo.Location,
		ColWebsite:       &p.BasicInfo.Website,
		ColCountry:       &p.BasicInfo.Country,
		ColStreetAddress: &p.BasicInfo.StreetAddress,
		ColProfileImage:  &p.BasicInfo.ProfileImage,
		ColTemplateID:    &p.BasicInfo.TemplateID,
		ColSummary:       &p.Summary,
	}
}

// ToStorage flattens the supplied fields of pt. Fields that were not supplied are omitted.
func ToStorage(pt Patch) (Record, error) {
	rec := Record{}

	scalars := map[string]*string{
		ColFullName:      pt.FullName,
		ColJobTitle:      pt.JobTitle,
		ColPhone:         pt.Phone,
		ColEmail:         pt.Email,
		ColLocation:      pt.Location,
		ColWebsite:       pt.Website,
		ColCountry:       pt.Country,
		ColStreetAddress: pt.StreetAddress,
		ColProfileImage:  pt.ProfileImage,
		ColTemplateID:    pt.TemplateID,
		ColSummary:       pt.Summary,
	}
	for col, v := range scalars {
		if v != nil {
			rec[col] = *v
		}
	}

	blobs := []struct {
		col      string
		supplied bool
		value    func() any
	}{
		{ColEducation, pt.Education != nil, func() any { return orEmpty(*pt.Education) }},
		{ColExperience, pt.Experience != nil, func() any { return orEmpty(*pt.Experience) }},
		{ColProjects, pt.Projects != nil, func() any { return orEmpty(*pt.Projects) }},
		{ColSkills, pt.Skills != nil, func() any { return orEmpty(*pt.Skills) }},
		{ColLanguages, pt.Languages != nil, func() any { return orEmpty(*pt.Languages) }},
		{ColCoursesCertificates, pt.CoursesCertificates != nil, func() any { return orEmpty(*pt.CoursesCertificates) }},
		{ColCompletedSections, pt.CompletedSections != nil, func() any {
			if *pt.CompletedSections == nil {
				return map[string]bool{}
			}
			return *pt.CompletedSections
		}},
	}
	for _, b := range blobs {
		if !b.supplied {
			continue
		}
		raw, err := json.Marshal(b.value())
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", b.col, err)
		}
		rec[b.col] = string(raw)
	}

	return rec, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// FromStorage rebuilds a profile from a stored row. Missing values default to empty.
// When a JSON column is malformed the returned profile is still usable: the column is reset,
// named in CorruptedSections, and a *CorruptionError is returned alongside it.
func FromStorage(rec Record) (*Profile, error) {
	p := New("")
	if id, ok := text(rec[ColUserID]); ok {
		p.UserID = id
	}

	for col, dst := range scalarFields(p) {
		if v, ok := text(rec[col]); ok {
			*dst = v
		}
	}

	var corrupt *CorruptionError
	decode := func(col, section string, dst any, reset func()) {
		raw, ok := text(rec[col])
		if !ok || strings.TrimSpace(raw) == "" || raw == "null" {
			return
		}
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			reset()
			if corrupt == nil {
				corrupt = &CorruptionError{Causes: map[string]error{}}
			}
			corrupt.Columns = append(corrupt.Columns, col)
			corrupt.Causes[col] = err
			p.CorruptedSections = append(p.CorruptedSections, section)
		}
	}

	decode(ColEducation, SectionEducation, &p.Education, func() { p.Education = []Education{} })
	decode(ColExperience, SectionExperience, &p.Experience, func() { p.Experience = []Experience{} })
	decode(ColProjects, SectionProjects, &p.Projects, func() { p.Projects = []Project{} })
	decode(ColSkills, SectionSkills, &p.Skills, func() { p.Skills = []string{} })
	decode(ColLanguages, SectionLanguages, &p.Languages, func() { p.Languages = []Language{} })
	decode(ColCoursesCertificates, SectionCertificates, &p.CoursesCertificates, func() { p.CoursesCertificates = []Certificate{} })
	decode(ColCompletedSections, SectionCompleted, &p.CompletedSections, func() { p.CompletedSections = map[string]bool{} })

	// A stored "null" inside a valid document must not leak a nil collection.
	p.Education = orEmpty(p.Education)
	p.Experience = orEmpty(p.Experience)
	p.Projects = orEmpty(p.Projects)
	p.Skills = orEmpty(p.Skills)
	p.Languages = orEmpty(p.Languages)
	p.CoursesCertificates = orEmpty(p.CoursesCertificates)
	if p.CompletedSections == nil {
		p.CompletedSections = map[string]bool{}
	}

	if corrupt != nil {
		return p, corrupt
	}
	return p, nil
}

func text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case *string:
		if t == nil {
			return "", false
		}
		return *t, true
	default:
		return "", false
	}
}
