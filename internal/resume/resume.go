// Package resume defines the resume document model and the editing
// operations that mutate it.
package resume

// PresentSentinel is the display value forced onto EndDate while a
// position is marked as current.
const PresentSentinel = "Present"

// PersonalInfo holds the singleton contact section of a resume.
// All fields are free text; the renderer treats empty strings as unset.
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Experience is one entry in the work history list.
type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	IsCurrent   bool   `json:"isCurrent"`
	Description string `json:"description"`
}

// Project is one entry in the projects list.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TechStack   string `json:"techStack"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Education is one entry in the education list.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa,omitempty"`
}

// Resume is the aggregate root for one resume document. It has no
// identity of its own; the persistence layer assigns a root ID on first
// save. Lists keep insertion order, skills are unique (exact match).
type Resume struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Skills       []string     `json:"skills"`
	Experiences  []Experience `json:"experiences"`
	Projects     []Project    `json:"projects"`
	Education    []Education  `json:"education"`
}

// New returns an empty resume with all lists initialized.
func New() Resume {
	return Resume{
		Skills:      []string{},
		Experiences: []Experience{},
		Projects:    []Project{},
		Education:   []Education{},
	}
}

// Clone returns a deep copy of the resume. Editor operations hand out
// clones so observers never alias the slices of a live snapshot.
func (r Resume) Clone() Resume {
	out := r
	out.Skills = append([]string(nil), r.Skills...)
	out.Experiences = append([]Experience(nil), r.Experiences...)
	out.Projects = append([]Project(nil), r.Projects...)
	out.Education = append([]Education(nil), r.Education...)
	return out
}
