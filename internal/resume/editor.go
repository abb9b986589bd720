package resume

import (
	"strings"

	"github.com/google/uuid"
)

// Editor provides the controlled mutation surface over a Resume.
// Every operation takes the current snapshot and returns the next one;
// the input is never modified. Operations that target an entry by ID are
// silent no-ops when the ID is unknown: the UI can only hold IDs handed
// out by the Add* operations, so an unknown ID is not an error.
type Editor struct {
	newID func() string
}

// NewEditor returns an editor that assigns UUID entry IDs.
func NewEditor() *Editor {
	return &Editor{newID: uuid.NewString}
}

// NewEditorWithIDs returns an editor with a custom ID generator.
// Used by tests that need predictable IDs.
func NewEditorWithIDs(newID func() string) *Editor {
	return &Editor{newID: newID}
}

// PersonalInfoPatch carries partial updates to PersonalInfo.
// Nil fields are left untouched.
type PersonalInfoPatch struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Website  *string `json:"website,omitempty"`
}

// ExperiencePatch carries partial updates to one experience entry.
type ExperiencePatch struct {
	Company     *string `json:"company,omitempty"`
	Position    *string `json:"position,omitempty"`
	Location    *string `json:"location,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	IsCurrent   *bool   `json:"isCurrent,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ProjectPatch carries partial updates to one project entry.
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	TechStack   *string `json:"techStack,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// EducationPatch carries partial updates to one education entry.
type EducationPatch struct {
	Institution *string `json:"institution,omitempty"`
	Degree      *string `json:"degree,omitempty"`
	Field       *string `json:"field,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	GPA         *string `json:"gpa,omitempty"`
}

// UpdatePersonalInfo shallow-merges the patch into the contact section.
func (e *Editor) UpdatePersonalInfo(r Resume, patch PersonalInfoPatch) Resume {
	next := r.Clone()
	info := &next.PersonalInfo
	setString(&info.FullName, patch.FullName)
	setString(&info.Email, patch.Email)
	setString(&info.Phone, patch.Phone)
	setString(&info.Location, patch.Location)
	setString(&info.LinkedIn, patch.LinkedIn)
	setString(&info.Website, patch.Website)
	return next
}

// UpdateSummary replaces the summary verbatim.
func (e *Editor) UpdateSummary(r Resume, summary string) Resume {
	next := r.Clone()
	next.Summary = summary
	return next
}

// AddExperience appends an empty experience entry and returns the new
// snapshot along with the generated entry ID so the caller can focus it.
func (e *Editor) AddExperience(r Resume) (Resume, string) {
	next := r.Clone()
	id := e.newID()
	next.Experiences = append(next.Experiences, Experience{ID: id})
	return next, id
}

// UpdateExperience merges the patch into the entry matching id.
// Setting IsCurrent to true forces EndDate to the "Present" sentinel;
// setting it to false clears EndDate so the user re-enters it.
func (e *Editor) UpdateExperience(r Resume, id string, patch ExperiencePatch) Resume {
	next := r.Clone()
	for i := range next.Experiences {
		if next.Experiences[i].ID != id {
			continue
		}
		exp := &next.Experiences[i]
		setString(&exp.Company, patch.Company)
		setString(&exp.Position, patch.Position)
		setString(&exp.Location, patch.Location)
		setString(&exp.StartDate, patch.StartDate)
		setString(&exp.EndDate, patch.EndDate)
		setString(&exp.Description, patch.Description)
		if patch.IsCurrent != nil {
			exp.IsCurrent = *patch.IsCurrent
			if exp.IsCurrent {
				exp.EndDate = PresentSentinel
			} else {
				exp.EndDate = ""
			}
		} else if exp.IsCurrent {
			// EndDate is not independently editable while current.
			exp.EndDate = PresentSentinel
		}
		break
	}
	return next
}

// RemoveExperience deletes the entry matching id, preserving the
// relative order of the remaining entries.
func (e *Editor) RemoveExperience(r Resume, id string) Resume {
	next := r.Clone()
	kept := next.Experiences[:0]
	for _, exp := range next.Experiences {
		if exp.ID != id {
			kept = append(kept, exp)
		}
	}
	next.Experiences = kept
	return next
}

// AddProject appends an empty project entry and returns its ID.
func (e *Editor) AddProject(r Resume) (Resume, string) {
	next := r.Clone()
	id := e.newID()
	next.Projects = append(next.Projects, Project{ID: id})
	return next, id
}

// UpdateProject merges the patch into the entry matching id.
func (e *Editor) UpdateProject(r Resume, id string, patch ProjectPatch) Resume {
	next := r.Clone()
	for i := range next.Projects {
		if next.Projects[i].ID != id {
			continue
		}
		proj := &next.Projects[i]
		setString(&proj.Name, patch.Name)
		setString(&proj.TechStack, patch.TechStack)
		setString(&proj.Description, patch.Description)
		setString(&proj.Date, patch.Date)
		break
	}
	return next
}

// RemoveProject deletes the entry matching id.
func (e *Editor) RemoveProject(r Resume, id string) Resume {
	next := r.Clone()
	kept := next.Projects[:0]
	for _, proj := range next.Projects {
		if proj.ID != id {
			kept = append(kept, proj)
		}
	}
	next.Projects = kept
	return next
}

// AddEducation appends an empty education entry and returns its ID.
func (e *Editor) AddEducation(r Resume) (Resume, string) {
	next := r.Clone()
	id := e.newID()
	next.Education = append(next.Education, Education{ID: id})
	return next, id
}

// UpdateEducation merges the patch into the entry matching id.
func (e *Editor) UpdateEducation(r Resume, id string, patch EducationPatch) Resume {
	next := r.Clone()
	for i := range next.Education {
		if next.Education[i].ID != id {
			continue
		}
		edu := &next.Education[i]
		setString(&edu.Institution, patch.Institution)
		setString(&edu.Degree, patch.Degree)
		setString(&edu.Field, patch.Field)
		setString(&edu.StartDate, patch.StartDate)
		setString(&edu.EndDate, patch.EndDate)
		setString(&edu.GPA, patch.GPA)
		break
	}
	return next
}

// RemoveEducation deletes the entry matching id.
func (e *Editor) RemoveEducation(r Resume, id string) Resume {
	next := r.Clone()
	kept := next.Education[:0]
	for _, edu := range next.Education {
		if edu.ID != id {
			kept = append(kept, edu)
		}
	}
	next.Education = kept
	return next
}

// AddSkill trims and appends a skill tag. Empty or duplicate values
// (case-sensitive exact match) leave the snapshot unchanged.
func (e *Editor) AddSkill(r Resume, skill string) Resume {
	trimmed := strings.TrimSpace(skill)
	if trimmed == "" {
		return r.Clone()
	}
	for _, s := range r.Skills {
		if s == trimmed {
			return r.Clone()
		}
	}
	next := r.Clone()
	next.Skills = append(next.Skills, trimmed)
	return next
}

// RemoveSkill removes the first exact match of skill.
func (e *Editor) RemoveSkill(r Resume, skill string) Resume {
	next := r.Clone()
	for i, s := range next.Skills {
		if s == skill {
			next.Skills = append(next.Skills[:i], next.Skills[i+1:]...)
			break
		}
	}
	return next
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
