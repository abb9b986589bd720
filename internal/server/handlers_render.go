package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/Srijnnn17/resume-genius/internal/export"
	"github.com/Srijnnn17/resume-genius/internal/render"
	"github.com/Srijnnn17/resume-genius/internal/resume"
)

// RenderRequest represents the request body for /render and /export.
// Template and accent fall back to the editor defaults when omitted.
type RenderRequest struct {
	Resume   resume.Resume `json:"resume"`
	Template string        `json:"template,omitempty"`
	Accent   string        `json:"accent,omitempty"`
}

// RenderResponse represents the response for /render
type RenderResponse struct {
	HTML string `json:"html"`
}

func (s *Server) renderFromRequest(r *http.Request) (string, resume.Resume, error) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", resume.Resume{}, fmt.Errorf("Invalid request body: %s", err.Error())
	}

	// Defaults mirror a fresh editor session.
	if req.Template == "" {
		req.Template = string(render.VariantModern)
	}
	if req.Accent == "" {
		req.Accent = string(render.AccentBlue)
	}

	variant, err := render.ParseVariant(req.Template)
	if err != nil {
		return "", resume.Resume{}, err
	}
	accent, err := render.ParseAccent(req.Accent)
	if err != nil {
		return "", resume.Resume{}, err
	}

	html, err := render.Render(req.Resume, variant, accent)
	if err != nil {
		return "", resume.Resume{}, err
	}
	return html, req.Resume, nil
}

// handleRender returns the resume projected into an HTML document
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	html, _, err := s.renderFromRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, RenderResponse{HTML: html})
}

// handleExport renders the resume and prints it to an A4 PDF
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	html, rsm, err := s.renderFromRequest(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	pdf, err := s.exporter.RenderPDF(r.Context(), html)
	if err != nil {
		log.Printf("Failed to export PDF: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to export PDF")
		return
	}

	filename := export.Filename(rsm.PersonalInfo.FullName)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF response: %v", err)
	}
}
