package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/algoviz/algoviz/pkg/errors"
	"github.com/algoviz/algoviz/pkg/frame"
	"github.com/algoviz/algoviz/pkg/observability"
	"github.com/algoviz/algoviz/pkg/pipeline"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// sessionCreated is the response body for a successful upload.
type sessionCreated struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Module     string `json:"module,omitempty"`
	FrameCount int    `json:"frame_count"`
}

// errorResponse is the body returned for all failed requests.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateSession accepts a session document (envelope or bare frame
// list), assigns it an ID, and persists it.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSessionBody))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	doc, err := frame.ParseSession(body)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidSession, err, "parse session document"))
		return
	}

	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("stored session", "id", doc.ID, "frames", len(doc.Frames))
	writeJSON(w, http.StatusCreated, sessionCreated{
		ID:         doc.ID,
		Name:       doc.Name,
		Module:     doc.Module,
		FrameCount: len(doc.Frames),
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRenderFrame renders one frame of a stored session.
//
// Query parameters:
//   - format: svg (default), json, png, pdf, dot
//   - module: override the session's module tag
//   - scale: raster scale factor (png)
//   - refresh: bypass the artifact cache
func (s *Server) handleRenderFrame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	doc, err := s.store.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidIndex, "frame index must be an integer"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	scale := pipeline.DefaultScale
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err = strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number"))
			return
		}
	}

	f, err := pipeline.SelectFrame(doc, index)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	module := r.URL.Query().Get("module")
	if module == "" {
		module = doc.Module
	}

	opts := pipeline.Options{
		Refresh: r.URL.Query().Get("refresh") == "true",
		Formats: []string{format},
		Scale:   scale,
		Logger:  s.logger,
	}

	sc := s.runner.Compose(ctx, f, module)
	artifacts, cached, err := s.runner.RenderWithCacheInfo(ctx, f, sc, module, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Frame-Hash", pipeline.FrameHash(f))
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// writeError maps structured error codes to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeSessionNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFrame, errors.ErrCodeInvalidSession,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidIndex:
		status = http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
