// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Srijnnn17/resume-genius/internal/ai"
	"github.com/Srijnnn17/resume-genius/internal/export"
	"github.com/Srijnnn17/resume-genius/internal/resume"
	"github.com/Srijnnn17/resume-genius/internal/store"
)

// ResumeStore is the persistence surface the handlers depend on.
type ResumeStore interface {
	FetchAll(ctx context.Context, ownerID uuid.UUID) ([]store.SavedResume, error)
	Save(ctx context.Context, ownerID uuid.UUID, r resume.Resume, existingID uuid.UUID) (uuid.UUID, error)
	Load(ctx context.Context, resumeID, ownerID uuid.UUID) (*store.SavedResume, error)
	Remove(ctx context.Context, resumeID, ownerID uuid.UUID) error
}

// AIService is the enhancement surface the handlers depend on.
type AIService interface {
	Enhance(ctx context.Context, req ai.EnhanceRequest) (string, error)
	MatchATS(ctx context.Context, req ai.ATSRequest) (ai.ATSResult, error)
}

// PDFExporter rasterizes rendered preview HTML into a PDF document.
type PDFExporter interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      ResumeStore
	aiSvc      AIService
	exporter   PDFExporter
	validate   *validator.Validate

	closers []func()
}

// Config holds server configuration
type Config struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string
}

// New creates a new server instance wired to PostgreSQL, Gemini, and
// headless Chrome.
func New(ctx context.Context, cfg Config) (*Server, error) {
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, err
	}

	client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	s := newServer(st, ai.NewService(client), export.NewExporter())
	s.closers = append(s.closers, st.Close, func() { _ = client.Close() })
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export holds the response open
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// newServer wires handlers to their dependencies. Tests inject mocks here.
func newServer(st ResumeStore, aiSvc AIService, exporter PDFExporter) *Server {
	return &Server{
		store:    st,
		aiSvc:    aiSvc,
		exporter: exporter,
		validate: validator.New(),
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Snapshot CRUD endpoints
	mux.HandleFunc("GET /resumes", s.handleListResumes)
	mux.HandleFunc("POST /resumes", s.handleSaveResume)
	mux.HandleFunc("GET /resumes/{id}", s.handleLoadResume)
	mux.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)

	// Rendering and export endpoints
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /export", s.handleExport)

	// AI enhancement endpoint
	mux.HandleFunc("POST /ai", s.handleAI)
	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	for _, closeFn := range s.closers {
		closeFn()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// ownerFromRequest extracts the owner_id query parameter. Every storage
// operation is owner-scoped; there is no ambient session.
func (s *Server) ownerFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := r.URL.Query().Get("owner_id")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("owner_id is required")
	}
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid owner_id")
	}
	return ownerID, nil
}
