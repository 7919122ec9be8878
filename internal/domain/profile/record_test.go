package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/resume-builder/pkg/apperror"
)

func sampleProfile() *Profile {
	p := New("user-1")
	p.BasicInfo = BasicInfo{
		FullName:      "Ada Lovelace",
		JobTitle:      "Analyst",
		Phone:         "+44 20 0000",
		Email:         "ada@example.com",
		Location:      "London",
		Website:       "https://ada.example.com",
		Country:       "UK",
		StreetAddress: "12 St James's Square",
		ProfileImage:  "https://cdn.example.com/ada.png",
		TemplateID:    "modern-blue",
	}
	p.Summary = "Writes programs for engines that do not exist yet."
	p.Education = []Education{
		{Institution: "Home tutoring", Degree: "Mathematics", From: "1830", To: "1835"},
		{Institution: "University of London", Degree: "Logic", CurrentlyStudying: true},
	}
	p.Experience = []Experience{
		{Company: "Analytical Engine", Role: "Programmer", From: "1842", CurrentlyWorking: true, Description: "Note G"},
	}
	p.Projects = []Project{{Name: "Bernoulli numbers", Role: "Author", URL: "https://example.com/g"}}
	p.Skills = SplitSkills("Mathematics, Poetry,  , Programming")
	p.Languages = []Language{{Name: "English", Level: "Native"}, {Name: "French", Level: "Fluent"}}
	p.CoursesCertificates = []Certificate{{Title: "Calculus", Organization: "De Morgan", Date: "1840"}}
	p.CompletedSections = map[string]bool{SectionBasicInfo: true, SectionEducation: true}
	return p
}

func TestRecord_RoundTrip(t *testing.T) {
	want := sampleProfile()

	rec, err := ToStorage(want.AsPatch())
	require.NoError(t, err)
	assert.Len(t, rec, len(Columns))

	got, err := FromStorage(rec)
	require.NoError(t, err)

	assert.Equal(t, want.BasicInfo, got.BasicInfo)
	assert.Equal(t, want.Summary, got.Summary)
	assert.Equal(t, want.Education, got.Education)
	assert.Equal(t, want.Experience, got.Experience)
	assert.Equal(t, want.Projects, got.Projects)
	assert.Equal(t, want.Skills, got.Skills)
	assert.Equal(t, want.Languages, got.Languages)
	assert.Equal(t, want.CoursesCertificates, got.CoursesCertificates)
	assert.Equal(t, want.CompletedSections, got.CompletedSections)
	assert.Empty(t, got.CorruptedSections)
}

func TestToStorage_OmitsUnsuppliedFields(t *testing.T) {
	name := "Grace"
	edu := []Education{{Institution: "Yale"}}

	rec, err := ToStorage(Patch{FullName: &name, Education: &edu})
	require.NoError(t, err)

	assert.Equal(t, []string{ColFullName, ColEducation}, rec.Columns())
	assert.Equal(t, "Grace", rec[ColFullName])
	assert.JSONEq(t, `[{"university":"Yale","degree":"","grade":"","from":"","to":"","currentlyStudying":false}]`, rec[ColEducation].(string))
	assert.NotContains(t, rec, ColSummary)
}

func TestToStorage_EmptyPatch(t *testing.T) {
	rec, err := ToStorage(Patch{})
	require.NoError(t, err)
	assert.Empty(t, rec)
	assert.True(t, Patch{}.IsEmpty())
}

func TestToStorage_NilCollectionsBecomeEmptyJSON(t *testing.T) {
	var skills []string
	var completed map[string]bool

	rec, err := ToStorage(Patch{Skills: &skills, CompletedSections: &completed})
	require.NoError(t, err)
	assert.Equal(t, "[]", rec[ColSkills])
	assert.Equal(t, "{}", rec[ColCompletedSections])
}

func TestFromStorage_Defaults(t *testing.T) {
	p, err := FromStorage(Record{ColUserID: "u", ColEducation: nil, ColSkills: "", ColLanguages: "null"})
	require.NoError(t, err)

	assert.Equal(t, "u", p.UserID)
	assert.Equal(t, "", p.BasicInfo.FullName)
	assert.NotNil(t, p.Education)
	assert.Empty(t, p.Education)
	assert.NotNil(t, p.Skills)
	assert.NotNil(t, p.Languages)
	assert.NotNil(t, p.CompletedSections)
	assert.Empty(t, p.CompletedSections)
}

func TestFromStorage_AcceptsBytes(t *testing.T) {
	p, err := FromStorage(Record{ColFullName: []byte("Linus"), ColSkills: []byte(`["C"]`)})
	require.NoError(t, err)
	assert.Equal(t, "Linus", p.BasicInfo.FullName)
	assert.Equal(t, []string{"C"}, p.Skills)
}

func TestFromStorage_MalformedJSONIsDetectable(t *testing.T) {
	rec := Record{
		ColFullName:   "Ada",
		ColEducation:  `[{"university":`,
		ColExperience: `[{"company":"Acme"}]`,
		ColLanguages:  `{"not":"a list"}`,
	}

	p, err := FromStorage(rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrDataCorruption))

	var corrupt *CorruptionError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, []string{ColEducation, ColLanguages}, corrupt.Columns)
	assert.Len(t, corrupt.Causes, 2)

	require.NotNil(t, p)
	assert.Equal(t, "Ada", p.BasicInfo.FullName)
	assert.Empty(t, p.Education)
	assert.Empty(t, p.Languages)
	assert.Equal(t, []Experience{{Company: "Acme"}}, p.Experience)
	assert.Equal(t, []string{SectionEducation, SectionLanguages}, p.CorruptedSections)
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"keeps empty tokens", "JavaScript, React,  , UI/UX Design", []string{"JavaScript", "React", "", "UI/UX Design"}},
		{"empty text", "", []string{}},
		{"single", "Go", []string{"Go"}},
		{"duplicates kept", "Go,Go", []string{"Go", "Go"}},
		{"trailing comma", "Go,", []string{"Go", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSkills(tt.in))
		})
	}
}

func TestJoinSkills_Reversible(t *testing.T) {
	in := "JavaScript, React, , UI/UX Design"
	assert.Equal(t, in, JoinSkills(SplitSkills(in)))
}

func TestApplyAndClone(t *testing.T) {
	p := sampleProfile()
	c := p.Clone()

	summary := "changed"
	c.Apply(Patch{Summary: &summary})
	c.Skills[0] = "Cooking"
	c.CompletedSections[SectionSkills] = true

	assert.Equal(t, "changed", c.Summary)
	assert.NotEqual(t, "changed", p.Summary)
	assert.Equal(t, "Mathematics", p.Skills[0])
	assert.False(t, p.CompletedSections[SectionSkills])
	assert.Equal(t, p.BasicInfo, c.BasicInfo)
}
