package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/structify/scrapechat/internal/app"
	"github.com/structify/scrapechat/internal/session"
)

// Server is the thin HTTP surface over the extraction pipeline. It owns the
// live sessions: one per client, created on first use and discarded with the
// process.
type Server struct {
	router chi.Router
	app    *app.App
	log    zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session.Session
	results  map[string]string
}

// NewServer creates and configures the HTTP server.
func NewServer(a *app.App, log zerolog.Logger) *Server {
	s := &Server{
		app:      a,
		log:      log,
		sessions: make(map[string]*session.Session),
		results:  make(map[string]string),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Post("/api/extract", s.handleExtract)
	r.Get("/api/sessions/{sessionID}/download", s.handleDownload)

	s.router = r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type extractRequest struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

type extractResponse struct {
	SessionID         string `json:"session_id"`
	StructuredContent string `json:"structured_content,omitempty"`
	Error             string `json:"error,omitempty"`
}

// handleExtract runs one extraction turn. Pipeline failures are part of the
// conversation, not transport faults: they come back as 200 with the rendered
// user-visible message, mirroring what the chat transcript records.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess := s.session(req.SessionID)
	res, err := s.app.ProcessURL(r.Context(), sess, req.URL)
	if err != nil {
		writeJSON(w, extractResponse{SessionID: sess.ID, Error: app.Render(err)})
		return
	}

	s.mu.Lock()
	s.results[sess.ID] = res.Structured
	s.mu.Unlock()

	writeJSON(w, extractResponse{SessionID: sess.ID, StructuredContent: res.Structured})
}

// handleDownload serves the session's last structured content as a txt, json
// or pdf attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	s.mu.Lock()
	content, ok := s.results[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "no structured content for session", http.StatusNotFound)
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	switch format {
	case "", "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="structured.txt"`)
		_, _ = w.Write([]byte(content))
	case "json":
		body, err := app.EncodeJSON(content)
		if err != nil {
			http.Error(w, "encode failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="structured.json"`)
		_, _ = w.Write(body)
	case "pdf":
		body, err := app.PDFBytes(content)
		if err != nil {
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="structured.pdf"`)
		_, _ = w.Write(body)
	default:
		http.Error(w, "unknown format: "+format, http.StatusBadRequest)
	}
}

// session returns the live session for id, creating a fresh one when id is
// empty or unknown.
func (s *Server) session(id string) *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}
	sess := session.New()
	s.sessions[sess.ID] = sess
	return sess
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
