// Package store persists resume aggregates to PostgreSQL: one parent row
// per resume plus three child row-sets (experiences, projects, education).
package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/Srijnnn17/resume-genius/internal/resume"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the resume tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return storageErr("migrate", err)
	}
	return nil
}

// SavedResume is a stored resume with its persistence metadata.
type SavedResume struct {
	ID        uuid.UUID     `json:"id"`
	OwnerID   uuid.UUID     `json:"ownerId"`
	Resume    resume.Resume `json:"resume"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// FetchAll returns every resume owned by ownerID, fully hydrated, most
// recently updated first.
func (s *Store) FetchAll(ctx context.Context, ownerID uuid.UUID) ([]SavedResume, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner_id, personal_info, summary, skills, created_at, updated_at
		 FROM resumes WHERE owner_id = $1 ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, storageErr("fetch", err)
	}
	defer rows.Close()

	var saved []SavedResume
	for rows.Next() {
		sr, err := scanParent(rows)
		if err != nil {
			return nil, storageErr("fetch", err)
		}
		saved = append(saved, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("fetch", err)
	}

	for i := range saved {
		if err := s.hydrateChildren(ctx, &saved[i]); err != nil {
			return nil, err
		}
	}
	return saved, nil
}

// Save persists a resume. With existingID == uuid.Nil it inserts a new
// parent row and returns the assigned root ID; otherwise it updates the
// parent's scalar fields and replaces every child collection. The whole
// sequence runs in one transaction so a partial failure never leaves a
// half-replaced child set. Child rows are re-inserted wholesale, so their
// storage IDs are not stable across saves. Concurrent saves against the
// same ID are last-writer-wins; there is no version check.
func (s *Store) Save(ctx context.Context, ownerID uuid.UUID, r resume.Resume, existingID uuid.UUID) (uuid.UUID, error) {
	infoJSON, err := json.Marshal(r.PersonalInfo)
	if err != nil {
		return uuid.Nil, storageErr("save", err)
	}
	skills := r.Skills
	if skills == nil {
		skills = []string{}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, storageErr("save", err)
	}
	defer tx.Rollback(ctx)

	resumeID := existingID
	if existingID == uuid.Nil {
		err = tx.QueryRow(ctx,
			`INSERT INTO resumes (owner_id, personal_info, summary, skills)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			ownerID, infoJSON, r.Summary, skills,
		).Scan(&resumeID)
		if err != nil {
			return uuid.Nil, storageErr("save", err)
		}
	} else {
		tag, err := tx.Exec(ctx,
			`UPDATE resumes
			 SET personal_info = $1, summary = $2, skills = $3, updated_at = NOW()
			 WHERE id = $4 AND owner_id = $5`,
			infoJSON, r.Summary, skills, existingID, ownerID,
		)
		if err != nil {
			return uuid.Nil, storageErr("save", err)
		}
		// Owner scoping: updating someone else's resume must not fall
		// through to replacing their child rows.
		if tag.RowsAffected() == 0 {
			return uuid.Nil, storageErr("save", fmt.Errorf("resume %s not found for owner", existingID))
		}
		for _, table := range []string{"experiences", "projects", "education"} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE resume_id = $1`, existingID); err != nil {
				return uuid.Nil, storageErr("save", err)
			}
		}
	}

	for i, exp := range r.Experiences {
		_, err := tx.Exec(ctx,
			`INSERT INTO experiences (resume_id, company, position, location, start_date, end_date, is_current, description, position_no)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			resumeID, exp.Company, exp.Position, exp.Location, exp.StartDate, exp.EndDate, exp.IsCurrent, exp.Description, i,
		)
		if err != nil {
			return uuid.Nil, storageErr("save", err)
		}
	}
	for i, proj := range r.Projects {
		_, err := tx.Exec(ctx,
			`INSERT INTO projects (resume_id, name, tech_stack, description, date, position_no)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			resumeID, proj.Name, proj.TechStack, proj.Description, proj.Date, i,
		)
		if err != nil {
			return uuid.Nil, storageErr("save", err)
		}
	}
	for i, edu := range r.Education {
		_, err := tx.Exec(ctx,
			`INSERT INTO education (resume_id, institution, degree, field, start_date, end_date, gpa, position_no)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			resumeID, edu.Institution, edu.Degree, edu.Field, edu.StartDate, edu.EndDate, edu.GPA, i,
		)
		if err != nil {
			return uuid.Nil, storageErr("save", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, storageErr("save", err)
	}
	return resumeID, nil
}

// Load returns the hydrated resume for resumeID if it exists and belongs
// to ownerID. A missing or non-owned resume yields (nil, nil), which is
// distinct from a connectivity failure.
func (s *Store) Load(ctx context.Context, resumeID, ownerID uuid.UUID) (*SavedResume, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, personal_info, summary, skills, created_at, updated_at
		 FROM resumes WHERE id = $1 AND owner_id = $2`,
		resumeID, ownerID,
	)
	sr, err := scanParent(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, storageErr("load", err)
	}

	if err := s.hydrateChildren(ctx, &sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// Remove deletes the resume and its child collections, scoped to
// ownerID. Deleting a nonexistent or non-owned resume is a silent no-op.
func (s *Store) Remove(ctx context.Context, resumeID, ownerID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return storageErr("remove", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"experiences", "projects", "education"} {
		_, err := tx.Exec(ctx,
			`DELETE FROM `+table+` c USING resumes r
			 WHERE c.resume_id = r.id AND r.id = $1 AND r.owner_id = $2`,
			resumeID, ownerID,
		)
		if err != nil {
			return storageErr("remove", err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND owner_id = $2`, resumeID, ownerID); err != nil {
		return storageErr("remove", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storageErr("remove", err)
	}
	return nil
}

func scanParent(row pgx.Row) (SavedResume, error) {
	var sr SavedResume
	var infoJSON []byte
	var skills []string
	if err := row.Scan(&sr.ID, &sr.OwnerID, &infoJSON, &sr.Resume.Summary, &skills, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
		return SavedResume{}, err
	}
	sr.Resume.PersonalInfo = decodePersonalInfo(infoJSON)
	if skills == nil {
		skills = []string{}
	}
	sr.Resume.Skills = skills
	sr.Resume.Experiences = []resume.Experience{}
	sr.Resume.Projects = []resume.Project{}
	sr.Resume.Education = []resume.Education{}
	return sr, nil
}

// decodePersonalInfo tolerates malformed stored blobs by falling back to
// the zero value, mirroring the permissive read path of the product.
func decodePersonalInfo(data []byte) resume.PersonalInfo {
	var info resume.PersonalInfo
	if len(data) == 0 {
		return info
	}
	_ = json.Unmarshal(data, &info)
	return info
}

// hydrateChildren loads the three child collections concurrently.
func (s *Store) hydrateChildren(ctx context.Context, sr *SavedResume) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		exps, err := s.loadExperiences(gctx, sr.ID)
		if err != nil {
			return err
		}
		sr.Resume.Experiences = exps
		return nil
	})
	g.Go(func() error {
		projs, err := s.loadProjects(gctx, sr.ID)
		if err != nil {
			return err
		}
		sr.Resume.Projects = projs
		return nil
	})
	g.Go(func() error {
		edus, err := s.loadEducation(gctx, sr.ID)
		if err != nil {
			return err
		}
		sr.Resume.Education = edus
		return nil
	})

	if err := g.Wait(); err != nil {
		return storageErr("load", err)
	}
	return nil
}

func (s *Store) loadExperiences(ctx context.Context, resumeID uuid.UUID) ([]resume.Experience, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, company, position, location, start_date, end_date, is_current, description
		 FROM experiences WHERE resume_id = $1 ORDER BY position_no`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exps := []resume.Experience{}
	for rows.Next() {
		var id uuid.UUID
		var exp resume.Experience
		if err := rows.Scan(&id, &exp.Company, &exp.Position, &exp.Location, &exp.StartDate, &exp.EndDate, &exp.IsCurrent, &exp.Description); err != nil {
			return nil, err
		}
		exp.ID = id.String()
		exps = append(exps, exp)
	}
	return exps, rows.Err()
}

func (s *Store) loadProjects(ctx context.Context, resumeID uuid.UUID) ([]resume.Project, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, tech_stack, description, date
		 FROM projects WHERE resume_id = $1 ORDER BY position_no`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projs := []resume.Project{}
	for rows.Next() {
		var id uuid.UUID
		var proj resume.Project
		if err := rows.Scan(&id, &proj.Name, &proj.TechStack, &proj.Description, &proj.Date); err != nil {
			return nil, err
		}
		proj.ID = id.String()
		projs = append(projs, proj)
	}
	return projs, rows.Err()
}

func (s *Store) loadEducation(ctx context.Context, resumeID uuid.UUID) ([]resume.Education, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, institution, degree, field, start_date, end_date, gpa
		 FROM education WHERE resume_id = $1 ORDER BY position_no`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	edus := []resume.Education{}
	for rows.Next() {
		var id uuid.UUID
		var edu resume.Education
		if err := rows.Scan(&id, &edu.Institution, &edu.Degree, &edu.Field, &edu.StartDate, &edu.EndDate, &edu.GPA); err != nil {
			return nil, err
		}
		edu.ID = id.String()
		edus = append(edus, edu)
	}
	return edus, rows.Err()
}
