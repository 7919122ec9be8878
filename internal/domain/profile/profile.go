package profile

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"
)

// Section identifiers, shared by completedSections and the renderer.
const (
	SectionBasicInfo    = "basicInfo"
	SectionSummary      = "summary"
	SectionEducation    = "education"
	SectionExperience   = "experience"
	SectionProjects     = "projects"
	SectionSkills       = "skills"
	SectionLanguages    = "languages"
	SectionCertificates = "coursesCertificates"
	SectionCompleted    = "completedSections"
)

type BasicInfo struct {
	FullName      string `json:"fullName"`
	JobTitle      string `json:"jobTitle"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Location      string `json:"location"`
	Website       string `json:"website"`
	Country       string `json:"country"`
	StreetAddress string `json:"streetAddress"`
	// ProfileImage is a base64 data URI or an external URL.
	ProfileImage string `json:"profileImage"`
	TemplateID   string `json:"templateId"`
}

type Education struct {
	Institution       string `json:"university"`
	Degree            string `json:"degree"`
	Grade             string `json:"grade"`
	From              string `json:"from"`
	To                string `json:"to"`
	CurrentlyStudying bool   `json:"currentlyStudying"`
}

type Experience struct {
	Company          string `json:"company"`
	URL              string `json:"url"`
	Location         string `json:"location"`
	Role             string `json:"role"`
	From             string `json:"from"`
	To               string `json:"to"`
	CurrentlyWorking bool   `json:"currentlyWorking"`
	Description      string `json:"desc"`
}

type Project struct {
	Name             string `json:"name"`
	Role             string `json:"role"`
	URL              string `json:"url"`
	From             string `json:"from"`
	To               string `json:"to"`
	CurrentlyWorking bool   `json:"currentlyWorking"`
	Description      string `json:"desc"`
}

type Language struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type Certificate struct {
	Title        string `json:"title"`
	Organization string `json:"org"`
	Date         string `json:"date"`
	URL          string `json:"url"`
}

type Profile struct {
	UserID              string          `json:"-"`
	BasicInfo           BasicInfo       `json:"basicInfo"`
	Summary             string          `json:"summary"`
	Education           []Education     `json:"education"`
	Experience          []Experience    `json:"experience"`
	Projects            []Project       `json:"projects"`
	Skills              []string        `json:"skills"`
	Languages           []Language      `json:"languages"`
	CoursesCertificates []Certificate   `json:"coursesCertificates"`
	CompletedSections   map[string]bool `json:"completedSections"`
	UpdatedAt           time.Time       `json:"updatedAt,omitzero"`
	// CorruptedSections names stored sections that could not be decoded and were reset.
	CorruptedSections []string `json:"corruptedSections,omitempty"`
}

// New returns an empty profile whose collections are non-nil.
func New(userID string) *Profile {
	return &Profile{
		UserID:              userID,
		Education:           []Education{},
		Experience:          []Experience{},
		Projects:            []Project{},
		Skills:              []string{},
		Languages:           []Language{},
		CoursesCertificates: []Certificate{},
		CompletedSections:   map[string]bool{},
	}
}

// Clone returns a deep copy, so drafts can be handed to other goroutines.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Education = slices.Clone(p.Education)
	c.Experience = slices.Clone(p.Experience)
	c.Projects = slices.Clone(p.Projects)
	c.Skills = slices.Clone(p.Skills)
	c.Languages = slices.Clone(p.Languages)
	c.CoursesCertificates = slices.Clone(p.CoursesCertificates)
	c.CorruptedSections = slices.Clone(p.CorruptedSections)
	c.CompletedSections = maps.Clone(p.CompletedSections)
	return &c
}

// SplitSkills turns the comma separated skills field into a list. Tokens are trimmed but
// empty tokens are kept, so JoinSkills(SplitSkills(s)) only normalizes whitespace.
func SplitSkills(text string) []string {
	if text == "" {
		return []string{}
	}
	parts := strings.Split(text, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// Action is the outcome of an upsert.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionNoChanges Action = "no_changes"
)

type Repository interface {
	// GetByUserID reports found=false, with a nil error, when the user has no profile yet.
	GetByUserID(ctx context.Context, userID string) (p *Profile, found bool, err error)
	// Upsert writes only the columns present in rec. An empty record is not written.
	Upsert(ctx context.Context, userID string, rec Record) (Action, error)
}
