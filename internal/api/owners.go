package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/letterforge/internal/categorizer"
	"github.com/MikeSquared-Agency/letterforge/internal/category"
	"github.com/MikeSquared-Agency/letterforge/internal/export"
	"github.com/MikeSquared-Agency/letterforge/internal/personalizer"
)

type sampleRequest struct {
	Content string `json:"content"`
}

func owner(r *http.Request) string {
	raw := chi.URLParam(r, "owner")
	if o, err := url.PathUnescape(raw); err == nil {
		return o
	}
	return raw
}

func (s *Server) createSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	sample, err := s.svc.SaveSample(r.Context(), owner(r), req.Content)
	var ae *categorizer.AnalysisError
	if errors.As(err, &ae) {
		// the sample is stored; only its analysis is pending
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":  err.Error(),
			"sample": sample,
		})
		return
	}
	if err != nil {
		s.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sample)
}

func (s *Server) listSamples(w http.ResponseWriter, r *http.Request) {
	samples, err := s.svc.ListSamples(r.Context(), owner(r))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"samples": samples, "count": len(samples)})
}

func (s *Server) deleteSample(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sample id")
		return
	}
	if err := s.svc.DeleteSample(r.Context(), owner(r), id); err != nil {
		s.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.svc.Categories(r.Context(), owner(r))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) clearCategories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "clearing deletes every sample and category; repeat with ?confirm=true")
		return
	}
	if err := s.svc.ClearOwner(r.Context(), owner(r)); err != nil {
		s.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) exportCategory(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".txt")
	c, valid := category.Parse(name)
	if !ok || !valid {
		writeError(w, http.StatusNotFound, "unknown category")
		return
	}

	cats, err := s.svc.Categories(r.Context(), owner(r))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	f, found := export.Lookup(cats, c)
	if !found {
		writeError(w, http.StatusNotFound, "no sentences in category")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(f.Content))
}

func (s *Server) getPatterns(w http.ResponseWriter, r *http.Request) {
	set, err := s.svc.Patterns(r.Context(), owner(r))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) createLetter(w http.ResponseWriter, r *http.Request) {
	var info personalizer.StudentInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	letter, err := s.svc.Generate(r.Context(), owner(r), info)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	status := http.StatusCreated
	if letter.ID == uuid.Nil {
		status = http.StatusOK
	}
	writeJSON(w, status, letter)
}

func (s *Server) listLetters(w http.ResponseWriter, r *http.Request) {
	letters, err := s.svc.ListLetters(r.Context(), owner(r))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"letters": letters, "count": len(letters)})
}
