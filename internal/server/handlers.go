package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/render"
)

var contentTypes = map[string]string{
	render.FormatJSON: "application/json",
	render.FormatYAML: "application/yaml",
	render.FormatTOML: "application/toml",
	render.FormatHugo: "application/yaml",
}

type healthResponse struct {
	Status    string     `json:"status"`
	BuildID   string     `json:"build_id,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	FailedAt  *time.Time `json:"failed_at,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok"}
	if res := s.current.Load(); res != nil && res.Report != nil {
		resp.BuildID = res.Report.BuildID
	} else {
		resp.Status = "starting"
	}
	if f := s.lastErr.Load(); f != nil {
		resp.Status = "degraded"
		resp.LastError = f.err.Error()
		resp.FailedAt = &f.at
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConfig(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, ok := s.latest(w, r)
		if !ok {
			return
		}
		enc, err := render.EncoderFor(format)
		if err != nil {
			s.errs.WriteErrorResponse(w, r, errors.NotFoundError("unknown config format").WithContext("format", format).Build())
			return
		}
		data, err := enc.Encode(res.Site)
		if err != nil {
			s.errs.WriteErrorResponse(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentTypes[format])
		_, _ = w.Write(data)
	}
}

func (s *Server) handleConfigFormat(w http.ResponseWriter, r *http.Request) {
	s.handleConfig(chi.URLParam(r, "format"))(w, r)
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	res, ok := s.latest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, render.NewDocument(res.Site).ThemeConfig.Sidebar)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.latest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res.Report)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	res, ok := s.latest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res.Validation)
}

// handleEdit redirects to the edit URL of the page given by ?path=.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	res, ok := s.latest(w, r)
	if !ok {
		return
	}
	page := r.URL.Query().Get("path")
	if page == "" {
		s.errs.WriteErrorResponse(w, r, errors.ValidationError("missing path query parameter").Build())
		return
	}
	if res.Site.EditLink.Pattern == "" {
		s.errs.WriteErrorResponse(w, r, errors.NotFoundError("no edit link configured").Build())
		return
	}
	http.Redirect(w, r, res.Site.EditURL(page), http.StatusFound)
}
