package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/Srijnnn17/resume-genius/internal/resume"
	"github.com/Srijnnn17/resume-genius/internal/store"
)

// SaveResumeRequest represents the request body for POST /resumes.
// ID is omitted for a first save and echoes the stored root ID for
// subsequent overwrites.
type SaveResumeRequest struct {
	ID     string        `json:"id,omitempty"`
	Resume resume.Resume `json:"resume"`
}

// SaveResumeResponse represents the response for POST /resumes
type SaveResumeResponse struct {
	ID string `json:"id"`
}

// handleListResumes returns every resume owned by the caller, most
// recently updated first.
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.ownerFromRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	saved, err := s.store.FetchAll(r.Context(), ownerID)
	if err != nil {
		log.Printf("Failed to list resumes: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list resumes")
		return
	}
	if saved == nil {
		saved = []store.SavedResume{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": saved,
		"count":   len(saved),
	})
}

// handleSaveResume inserts a new resume or overwrites an existing one
func (s *Server) handleSaveResume(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.ownerFromRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req SaveResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	existingID := uuid.Nil
	if req.ID != "" {
		existingID, err = uuid.Parse(req.ID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid resume id")
			return
		}
	}

	resumeID, err := s.store.Save(r.Context(), ownerID, req.Resume, existingID)
	if err != nil {
		log.Printf("Failed to save resume: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save resume")
		return
	}

	status := http.StatusOK
	if existingID == uuid.Nil {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, SaveResumeResponse{ID: resumeID.String()})
}

// handleLoadResume returns one hydrated resume by ID
func (s *Server) handleLoadResume(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.ownerFromRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume id")
		return
	}

	saved, err := s.store.Load(r.Context(), resumeID, ownerID)
	if err != nil {
		log.Printf("Failed to load resume: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load resume")
		return
	}
	if saved == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, saved)
}

// handleDeleteResume deletes a resume and its child collections
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.ownerFromRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resumeID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume id")
		return
	}

	if err := s.store.Remove(r.Context(), resumeID, ownerID); err != nil {
		log.Printf("Failed to delete resume: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}
