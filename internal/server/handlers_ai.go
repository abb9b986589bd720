package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Srijnnn17/resume-genius/internal/ai"
)

// AI request kinds accepted by POST /ai. The set is closed; anything
// else is rejected before touching the upstream model.
const (
	aiTypeEnhance = "enhance"
	aiTypeATS     = "ats"
)

// AIRequest is the tagged envelope for POST /ai
type AIRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EnhanceResponse represents the response for type "enhance"
type EnhanceResponse struct {
	Enhanced string `json:"enhanced"`
}

// handleAI dispatches an AI request to the matching prompt pipeline
func (s *Server) handleAI(w http.ResponseWriter, r *http.Request) {
	var req AIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	switch req.Type {
	case aiTypeEnhance:
		s.handleAIEnhance(w, r, req.Data)
	case aiTypeATS:
		s.handleAIATS(w, r, req.Data)
	default:
		s.errorResponse(w, http.StatusBadRequest, "Invalid request type")
	}
}

func (s *Server) handleAIEnhance(w http.ResponseWriter, r *http.Request, data json.RawMessage) {
	var req ai.EnhanceRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid enhance payload: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	enhanced, err := s.aiSvc.Enhance(r.Context(), req)
	if err != nil {
		log.Printf("Enhance request failed: %v", err)
		status, message := aiHTTPStatus(err)
		s.errorResponse(w, status, message)
		return
	}

	s.jsonResponse(w, http.StatusOK, EnhanceResponse{Enhanced: enhanced})
}

func (s *Server) handleAIATS(w http.ResponseWriter, r *http.Request, data json.RawMessage) {
	var req ai.ATSRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid ats payload: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "jobDescription is required")
		return
	}

	result, err := s.aiSvc.MatchATS(r.Context(), req)
	if err != nil {
		log.Printf("ATS request failed: %v", err)
		status, message := aiHTTPStatus(err)
		s.errorResponse(w, status, message)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}
