package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srijnnn17/resume-genius/internal/resume"
)

var allVariants = []Variant{VariantMinimal, VariantModern, VariantClassic}

func sampleResume() resume.Resume {
	r := resume.New()
	r.PersonalInfo = resume.PersonalInfo{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Location: "London",
	}
	r.Summary = "Engineer with a focus on analytical machines."
	r.Skills = []string{"Go", "PostgreSQL"}
	r.Experiences = []resume.Experience{{
		ID:          "exp-1",
		Company:     "Analytical Engines Ltd",
		Position:    "Lead Engineer",
		Location:    "London",
		StartDate:   "2020-01",
		IsCurrent:   true,
		Description: "Designed the first program.",
	}}
	r.Education = []resume.Education{{
		ID:          "edu-1",
		Institution: "Royal Society",
		Degree:      "BSc",
		Field:       "Mathematics",
		StartDate:   "2014",
		EndDate:     "2018",
		GPA:         "4.0",
	}}
	return r
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseVariant(t *testing.T) {
	for _, name := range []string{"minimal", "modern", "classic"} {
		v, err := ParseVariant(name)
		require.NoError(t, err)
		assert.Equal(t, Variant(name), v)
	}

	_, err := ParseVariant("brutalist")
	assert.Error(t, err)
}

func TestParseAccent(t *testing.T) {
	a, err := ParseAccent("teal")
	require.NoError(t, err)
	assert.Equal(t, "#14B8A6", a.Hex())

	_, err = ParseAccent("chartreuse")
	assert.Error(t, err)
}

func TestRender_Deterministic(t *testing.T) {
	r := sampleResume()
	for _, v := range allVariants {
		first, err := Render(r, v, AccentBlue)
		require.NoError(t, err)
		second, err := Render(r, v, AccentBlue)
		require.NoError(t, err)
		assert.Equal(t, first, second, "variant %s", v)
	}
}

func TestRender_DoesNotMutateResume(t *testing.T) {
	r := sampleResume()
	before := r.Clone()

	_, err := Render(r, VariantModern, AccentGreen)
	require.NoError(t, err)

	assert.Equal(t, before, r)
}

func TestRender_PopulatedSections(t *testing.T) {
	r := sampleResume()
	for _, v := range allVariants {
		html, err := Render(r, v, AccentIndigo)
		require.NoError(t, err)
		doc := parse(t, html)

		assert.Equal(t, "Ada Lovelace", doc.Find("h1").Text(), "variant %s", v)
		assert.Equal(t, 1, doc.Find("section.experience").Length(), "variant %s", v)
		assert.Equal(t, 1, doc.Find("section.education").Length(), "variant %s", v)
		assert.Equal(t, 1, doc.Find("section.skills").Length(), "variant %s", v)
		assert.Equal(t, 0, doc.Find("section.projects").Length(), "variant %s", v)
		assert.Contains(t, doc.Find("section.experience").Text(), "Present", "variant %s", v)
		assert.Contains(t, doc.Find("section.education").Text(), "BSc in Mathematics", "variant %s", v)
	}
}

func TestRender_EmptyResume_PlaceholderAndOmission(t *testing.T) {
	r := resume.New()
	for _, v := range allVariants {
		html, err := Render(r, v, AccentBlue)
		require.NoError(t, err)
		doc := parse(t, html)

		assert.Equal(t, PlaceholderName, doc.Find("h1").Text(), "variant %s", v)
		assert.Equal(t, 0, doc.Find("section.experience").Length(), "variant %s", v)
		assert.Equal(t, 0, doc.Find("section.projects").Length(), "variant %s", v)
		assert.Equal(t, 0, doc.Find("section.education").Length(), "variant %s", v)
		assert.Equal(t, 0, doc.Find("section.skills").Length(), "variant %s", v)
		assert.Equal(t, 0, doc.Find("section.summary").Length(), "variant %s", v)
	}
}

func TestRender_AccentAppearsInOutput(t *testing.T) {
	r := sampleResume()
	for _, v := range allVariants {
		html, err := Render(r, v, AccentOrange)
		require.NoError(t, err)
		assert.Contains(t, html, AccentOrange.Hex(), "variant %s", v)
	}
}

func TestRender_InvalidInputsRejected(t *testing.T) {
	r := sampleResume()

	_, err := Render(r, Variant("fancy"), AccentBlue)
	assert.Error(t, err)

	_, err = Render(r, VariantMinimal, Accent("mauve"))
	assert.Error(t, err)
}

func TestRender_MissingEntryFieldsUsePlaceholders(t *testing.T) {
	r := resume.New()
	r.Experiences = []resume.Experience{{ID: "e1"}}

	html, err := Render(r, VariantMinimal, AccentGray)
	require.NoError(t, err)
	doc := parse(t, html)

	text := doc.Find("section.experience").Text()
	assert.Contains(t, text, "Position")
	assert.Contains(t, text, "Company")
	assert.Contains(t, text, "Start")
	assert.Contains(t, text, "End")
}
