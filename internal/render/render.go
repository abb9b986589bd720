// Package render projects a resume snapshot into one of the visual
// template variants. Rendering is a pure function of its inputs: no
// mutation, no network, identical output for identical input.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Srijnnn17/resume-genius/internal/resume"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

// Variant selects one of the visual template layouts.
type Variant string

const (
	VariantMinimal Variant = "minimal"
	VariantModern  Variant = "modern"
	VariantClassic Variant = "classic"
)

// ParseVariant validates a variant name. Invalid values are rejected at
// construction instead of surfacing as a render-time lookup miss.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantMinimal, VariantModern, VariantClassic:
		return Variant(s), nil
	}
	return "", fmt.Errorf("unknown template variant %q", s)
}

// Accent is one of the fixed accent color choices.
type Accent string

const (
	AccentBlue   Accent = "blue"
	AccentIndigo Accent = "indigo"
	AccentPurple Accent = "purple"
	AccentGreen  Accent = "green"
	AccentRed    Accent = "red"
	AccentOrange Accent = "orange"
	AccentTeal   Accent = "teal"
	AccentPink   Accent = "pink"
	AccentGray   Accent = "gray"
	AccentBlack  Accent = "black"
)

var accentHex = map[Accent]string{
	AccentBlue:   "#3B82F6",
	AccentIndigo: "#6366F1",
	AccentPurple: "#A855F7",
	AccentGreen:  "#22C55E",
	AccentRed:    "#EF4444",
	AccentOrange: "#F97316",
	AccentTeal:   "#14B8A6",
	AccentPink:   "#EC4899",
	AccentGray:   "#6B7280",
	AccentBlack:  "#1F2937",
}

// ParseAccent validates an accent color name.
func ParseAccent(s string) (Accent, error) {
	if _, ok := accentHex[Accent(s)]; ok {
		return Accent(s), nil
	}
	return "", fmt.Errorf("unknown accent color %q", s)
}

// Hex returns the display color for the accent.
func (a Accent) Hex() string { return accentHex[a] }

// PlaceholderName is rendered when the resume has no full name yet.
const PlaceholderName = "Your Name"

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.tmpl"))

// Render produces the HTML document for a resume under the given variant
// and accent color.
func Render(r resume.Resume, v Variant, a Accent) (string, error) {
	if _, err := ParseVariant(string(v)); err != nil {
		return "", err
	}
	if _, err := ParseAccent(string(a)); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(v)+".tmpl", buildPage(r, v, a)); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", v, err)
	}
	return buf.String(), nil
}

// page is the shared view model. All variants consume the same projected
// data, so the omission rules cannot drift between layouts.
type page struct {
	Variant     Variant
	Accent      template.CSS
	Name        string
	Contact     []string
	Summary     string
	Skills      []string
	Experiences []experienceView
	Projects    []projectView
	Education   []educationView
}

type experienceView struct {
	Position    string
	Company     string
	Location    string
	Dates       string
	Description string
}

type projectView struct {
	Name        string
	TechStack   string
	Date        string
	Description string
}

type educationView struct {
	Title       string
	Institution string
	GPA         string
	Dates       string
}

func buildPage(r resume.Resume, v Variant, a Accent) page {
	p := page{
		Variant: v,
		Accent:  template.CSS(a.Hex()),
		Name:    r.PersonalInfo.FullName,
		Summary: r.Summary,
		Skills:  r.Skills,
	}
	if p.Name == "" {
		p.Name = PlaceholderName
	}
	for _, c := range []string{
		r.PersonalInfo.Email,
		r.PersonalInfo.Phone,
		r.PersonalInfo.Location,
		r.PersonalInfo.LinkedIn,
		r.PersonalInfo.Website,
	} {
		if c != "" {
			p.Contact = append(p.Contact, c)
		}
	}
	for _, exp := range r.Experiences {
		p.Experiences = append(p.Experiences, experienceView{
			Position:    orDefault(exp.Position, "Position"),
			Company:     orDefault(exp.Company, "Company"),
			Location:    exp.Location,
			Dates:       dateRange(exp.StartDate, endDate(exp)),
			Description: exp.Description,
		})
	}
	for _, proj := range r.Projects {
		p.Projects = append(p.Projects, projectView{
			Name:        orDefault(proj.Name, "Project"),
			TechStack:   proj.TechStack,
			Date:        proj.Date,
			Description: proj.Description,
		})
	}
	for _, edu := range r.Education {
		title := orDefault(edu.Degree, "Degree")
		if edu.Field != "" {
			title += " in " + edu.Field
		}
		p.Education = append(p.Education, educationView{
			Title:       title,
			Institution: orDefault(edu.Institution, "Institution"),
			GPA:         edu.GPA,
			Dates:       dateRange(edu.StartDate, edu.EndDate),
		})
	}
	return p
}

func endDate(exp resume.Experience) string {
	if exp.IsCurrent {
		return resume.PresentSentinel
	}
	return exp.EndDate
}

func dateRange(start, end string) string {
	return orDefault(start, "Start") + " – " + orDefault(end, "End")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
