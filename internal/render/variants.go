package render

import (
	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
)

// placeholders hold the sample text a variant shows for an empty field.
// An empty placeholder means the field is left out instead.
type placeholders struct {
	Name         string
	JobTitle     string
	Initial      string
	Phone        string
	Email        string
	Address      string
	Institution  string
	Degree       string
	Company      string
	Role         string
	Description  string
	Project      string
	Language     string
	Certificate  string
	Organization string
}

type variant struct {
	name      string
	layout    Layout
	uppercase bool
	centered  bool
	accented  bool
	ph        placeholders
	titles    map[string]string
	// sidebar and main list section ids in display order.
	sidebar []string
	main    []string
}

const sharedVariant = "shared"

var fallbackPlaceholders = placeholders{
	Name:        "Your Name",
	JobTitle:    "Job Title",
	Initial:     "U",
	Institution: "University Name",
	Degree:      "Degree",
	Company:     "Company",
	Role:        "Job Title",
	Description: "Description of your key achievements and responsibilities.",
	Project:     "Project Name",
	Language:    "Language",
	Certificate: "Certificate",
}

var sharedTitles = map[string]string{
	profile.SectionSummary:      "Summary",
	profile.SectionEducation:    "Education",
	profile.SectionExperience:   "Experience",
	profile.SectionSkills:       "Skills",
	profile.SectionProjects:     "Projects",
	profile.SectionLanguages:    "Languages",
	profile.SectionCertificates: "Certificates",
}

var sharedOrder = []string{
	profile.SectionSummary, profile.SectionEducation, profile.SectionExperience, profile.SectionSkills,
	profile.SectionProjects, profile.SectionLanguages, profile.SectionCertificates,
}

// shared builds the single-column layout the modern, minimal and academic ids have in
// common. They differ only by these sub-flags.
func shared(centered, accented bool) variant {
	return variant{
		name:     sharedVariant,
		layout:   SingleColumn,
		centered: centered,
		accented: accented,
		ph:       fallbackPlaceholders,
		titles:   sharedTitles,
		main:     sharedOrder,
	}
}

// variants is the dispatch table from template id to layout.
var variants = map[catalog.ID]variant{
	catalog.Modern:   shared(false, true),
	catalog.Minimal:  shared(true, false),
	catalog.Academic: shared(false, false),
	catalog.ModernBlue: {
		name:   string(catalog.ModernBlue),
		layout: TwoColumn,
		ph: placeholders{
			Name:        "RICHARD SANCHEZ",
			JobTitle:    "Marketing Manager",
			Initial:     "U",
			Phone:       "+123-456-7890",
			Email:       "hello@reallygreatsite.com",
			Address:     "123 Anywhere St., Any City",
			Institution: "University Name",
			Degree:      "Degree Title",
			Company:     "Company Name",
			Role:        "Job Position",
			Description: "Developed and executed comprehensive strategies to achieve business objectives.",
			Project:     "Project Name",
			Language:    "Language",
			Certificate: "Certificate",
		},
		titles: map[string]string{
			profile.SectionEducation:    "Education",
			profile.SectionSkills:       "Skills",
			profile.SectionLanguages:    "Languages",
			profile.SectionSummary:      "Profile",
			profile.SectionExperience:   "Work Experience",
			profile.SectionProjects:     "Projects",
			profile.SectionCertificates: "Certificates",
		},
		sidebar: []string{profile.SectionEducation, profile.SectionSkills, profile.SectionLanguages},
		main:    []string{profile.SectionSummary, profile.SectionExperience, profile.SectionProjects, profile.SectionCertificates},
	},
	catalog.MinimalistOrange: {
		name:   string(catalog.MinimalistOrange),
		layout: SingleColumn,
		ph: placeholders{
			Name:        "Zola Bekker",
			JobTitle:    "Marketing Strategist",
			Initial:     "Z",
			Phone:       "+123-456-7890",
			Email:       "hello@reallygreatsite.com",
			Address:     "123 Anywhere St., Any City",
			Institution: "University Name",
			Degree:      "Master of Marketing",
			Company:     "Company Name",
			Role:        "Role",
			Description: "Led the development and implementation of key strategies that increased efficiency and performance.",
			Project:     "Project Name",
			Language:    "Language",
			Certificate: "Certificate",
		},
		titles: map[string]string{
			profile.SectionSummary:      "Professional Summary",
			profile.SectionExperience:   "Work Experience",
			profile.SectionEducation:    "Academic History",
			profile.SectionProjects:     "Projects",
			profile.SectionSkills:       "Skills",
			profile.SectionLanguages:    "Languages",
			profile.SectionCertificates: "Certificates",
		},
		main: []string{
			profile.SectionSummary, profile.SectionExperience, profile.SectionEducation, profile.SectionProjects,
			profile.SectionSkills, profile.SectionLanguages, profile.SectionCertificates,
		},
	},
	catalog.CleanTeal: {
		name:      string(catalog.CleanTeal),
		layout:    SingleColumn,
		uppercase: true,
		ph: placeholders{
			Name:        "DREW FEIG",
			JobTitle:    "Marketing Specialist",
			Initial:     "D",
			Phone:       "+123-456-7890",
			Email:       "hello@reallygreatsite.com",
			Address:     "123 Anywhere St., Any City",
			Institution: "University Name",
			Degree:      "Degree Title",
			Company:     "Company Name",
			Role:        "Marketing Strategist",
			Description: "Propel works with clients to create effective and unique marketing strategies to help raise their profile.",
			Project:     "Project Name",
			Language:    "Language",
			Certificate: "Certificate",
		},
		titles: map[string]string{
			profile.SectionSummary:      "Profile Summary",
			profile.SectionSkills:       "Professional Skills",
			profile.SectionExperience:   "Work Experience",
			profile.SectionEducation:    "Education",
			profile.SectionProjects:     "Projects",
			profile.SectionLanguages:    "Languages",
			profile.SectionCertificates: "Certificates",
		},
		main: []string{
			profile.SectionSummary, profile.SectionSkills, profile.SectionExperience, profile.SectionEducation,
			profile.SectionProjects, profile.SectionLanguages, profile.SectionCertificates,
		},
	},
	catalog.BoldBlack: {
		name:   string(catalog.BoldBlack),
		layout: SingleColumn,
		ph: placeholders{
			Name:        "LAURICE MORETTI",
			JobTitle:    "Systems Designer",
			Initial:     "L",
			Institution: "North State University",
			Degree:      "Master of Systems Design",
			Company:     "Company Name",
			Role:        "Job Title",
			Description: "Description of your key achievements and responsibilities.",
			Project:     "Project Name",
			Language:    "Language",
			Certificate: "Certificate",
		},
		titles: map[string]string{
			profile.SectionSummary:      "Professional Summary",
			profile.SectionEducation:    "Academic History",
			profile.SectionExperience:   "Work Experience",
			profile.SectionProjects:     "Projects",
			profile.SectionSkills:       "Skills",
			profile.SectionLanguages:    "Languages",
			profile.SectionCertificates: "Certificates",
		},
		main: []string{
			profile.SectionSummary, profile.SectionEducation, profile.SectionExperience, profile.SectionProjects,
			profile.SectionSkills, profile.SectionLanguages, profile.SectionCertificates,
		},
	},
}

// defaultID is used for unknown template ids.
const defaultID = catalog.Academic
