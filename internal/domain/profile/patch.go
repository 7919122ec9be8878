package profile

// Patch is a partial update. A nil field was not supplied by the caller and must not be written.
type Patch struct {
	FullName      *string `json:"fullName,omitempty"`
	JobTitle      *string `json:"jobTitle,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Location      *string `json:"location,omitempty"`
	Website       *string `json:"website,omitempty"`
	Country       *string `json:"country,omitempty"`
	StreetAddress *string `json:"streetAddress,omitempty"`
	ProfileImage  *string `json:"profileImage,omitempty"`
	TemplateID    *string `json:"templateId,omitempty"`
	Summary       *string `json:"summary,omitempty"`

	Education           *[]Education     `json:"education,omitempty"`
	Experience          *[]Experience    `json:"experience,omitempty"`
	Projects            *[]Project       `json:"projects,omitempty"`
	Skills              *[]string        `json:"skills,omitempty"`
	Languages           *[]Language      `json:"languages,omitempty"`
	CoursesCertificates *[]Certificate   `json:"coursesCertificates,omitempty"`
	CompletedSections   *map[string]bool `json:"completedSections,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (pt Patch) IsEmpty() bool {
	return pt == Patch{}
}

// AsPatch supplies every field of p.
func (p *Profile) AsPatch() Patch {
	c := p.Clone()
	b := c.BasicInfo
	return Patch{
		FullName:            &b.FullName,
		JobTitle:            &b.JobTitle,
		Phone:               &b.Phone,
		Email:               &b.Email,
		Location:            &b.Location,
		Website:             &b.Website,
		Country:             &b.Country,
		StreetAddress:       &b.StreetAddress,
		ProfileImage:        &b.ProfileImage,
		TemplateID:          &b.TemplateID,
		Summary:             &c.Summary,
		Education:           &c.Education,
		Experience:          &c.Experience,
		Projects:            &c.Projects,
		Skills:              &c.Skills,
		Languages:           &c.Languages,
		CoursesCertificates: &c.CoursesCertificates,
		CompletedSections:   &c.CompletedSections,
	}
}

// Omit drops the field backing a repeatable section, so the patch leaves its stored value alone.
func (pt *Patch) Omit(section string) {
	switch section {
	case SectionEducation:
		pt.Education = nil
	case SectionExperience:
		pt.Experience = nil
	case SectionProjects:
		pt.Projects = nil
	case SectionSkills:
		pt.Skills = nil
	case SectionLanguages:
		pt.Languages = nil
	case SectionCertificates:
		pt.CoursesCertificates = nil
	case SectionCompleted:
		pt.CompletedSections = nil
	}
}

// Apply writes the supplied fields of pt onto p.
func (p *Profile) Apply(pt Patch) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&p.BasicInfo.FullName, pt.FullName)
	setString(&p.BasicInfo.JobTitle, pt.JobTitle)
	setString(&p.BasicInfo.Phone, pt.Phone)
	setString(&p.BasicInfo.Email, pt.Email)
	setString(&p.BasicInfo.Location, pt.Location)
	setString(&p.BasicInfo.Website, pt.Website)
	setString(&p.BasicInfo.Country, pt.Country)
	setString(&p.BasicInfo.StreetAddress, pt.StreetAddress)
	setString(&p.BasicInfo.ProfileImage, pt.ProfileImage)
	setString(&p.BasicInfo.TemplateID, pt.TemplateID)
	setString(&p.Summary, pt.Summary)

	if pt.Education != nil {
		p.Education = *pt.Education
	}
	if pt.Experience != nil {
		p.Experience = *pt.Experience
	}
	if pt.Projects != nil {
		p.Projects = *pt.Projects
	}
	if pt.Skills != nil {
		p.Skills = *pt.Skills
	}
	if pt.Languages != nil {
		p.Languages = *pt.Languages
	}
	if pt.CoursesCertificates != nil {
		p.CoursesCertificates = *pt.CoursesCertificates
	}
	if pt.CompletedSections != nil {
		p.CompletedSections = *pt.CompletedSections
	}
}
