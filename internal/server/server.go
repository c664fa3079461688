// Package server exposes the upload and analytics HTTP API consumed by
// the dashboard frontend.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wrappedin/wrapped-go/internal/store"
	"github.com/wrappedin/wrapped-go/pkg/wrapped"
	"github.com/wrappedin/wrapped-go/pkg/wrapped/models"
)

// maxUploadBytes caps upload size; real exports are well under a megabyte.
const maxUploadBytes = 20 << 20

// Server routes HTTP requests to the parser and the upload store.
type Server struct {
	store  *store.Store
	logger *slog.Logger
	router chi.Router
}

// New builds the HTTP API around a store. A nil logger falls back to
// slog.Default().
func New(st *store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{store: st, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(allowCORS)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/files/upload", s.handleUpload)
		r.Get("/files", s.handleList)
		r.Get("/analytics/{fileID}", s.handleAnalytics)
		r.Get("/analytics/{fileID}/summary", s.handleSummary)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// allowCORS permits the dashboard origin to call the API directly.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		writeError(w, http.StatusBadRequest, "file must be an .xlsx export")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	rec, err := wrapped.Parse(data, wrapped.Options{Logger: s.logger})
	if err != nil {
		s.logger.Warn("upload rejected", "filename", header.Filename, "error", err)
		writeError(w, http.StatusUnprocessableEntity, "failed to process file")
		return
	}

	id, err := s.store.Save(r.Context(), header.Filename, rec)
	if err != nil {
		s.logger.Error("save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store result")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"fileId":  id,
		"message": "File processed successfully",
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	uploads, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list uploads")
		return
	}
	writeJSON(w, http.StatusOK, uploads)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if rec.Discovery == nil {
		writeError(w, http.StatusNotFound, "no discovery data in this upload")
		return
	}
	writeJSON(w, http.StatusOK, rec.Discovery)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*models.AnalyticsRecord, bool) {
	fileID := chi.URLParam(r, "fileID")
	rec, err := s.store.Get(r.Context(), fileID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "unknown file id")
		return nil, false
	}
	if err != nil {
		s.logger.Error("lookup failed", "file_id", fileID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load upload")
		return nil, false
	}
	return rec, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
