package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
	"github.com/MikeSquared-Agency/letterforge/internal/llm"
	"github.com/MikeSquared-Agency/letterforge/internal/patterns"
	"github.com/MikeSquared-Agency/letterforge/internal/personalizer"
	"github.com/MikeSquared-Agency/letterforge/internal/pipeline"
)

// Service is the pipeline surface the HTTP layer drives.
type Service interface {
	SaveSample(ctx context.Context, owner, content string) (pipeline.Sample, error)
	ListSamples(ctx context.Context, owner string) ([]pipeline.Sample, error)
	DeleteSample(ctx context.Context, owner string, id uuid.UUID) error
	Categories(ctx context.Context, owner string) (category.Analysis, error)
	ClearOwner(ctx context.Context, owner string) error
	Patterns(ctx context.Context, owner string) (patterns.Set, error)
	Generate(ctx context.Context, owner string, info personalizer.StudentInfo) (pipeline.Letter, error)
	ListLetters(ctx context.Context, owner string) ([]pipeline.Letter, error)
}

type Server struct {
	router *chi.Mux
	port   int
	svc    Service
	model  llm.Generator
	name   string
	logger *slog.Logger
}

// NewServer mounts the model proxy at /api and the owner routes under
// /api/v1, which require apiToken when it is set.
func NewServer(port int, apiToken string, svc Service, model llm.Generator, modelName string, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		port:   port,
		svc:    svc,
		model:  model,
		name:   modelName,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/tags", s.tags)
	router.Post("/api/generate", s.generate)

	router.Route("/api/v1/owners/{owner}", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))

		r.Post("/samples", s.createSample)
		r.Get("/samples", s.listSamples)
		r.Delete("/samples/{id}", s.deleteSample)

		r.Get("/categories", s.getCategories)
		r.Delete("/categories", s.clearCategories)
		r.Get("/categories/{file}", s.exportCategory)

		r.Get("/patterns", s.getPatterns)

		r.Post("/letters", s.createLetter)
		r.Get("/letters", s.listLetters)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("API server shutting down")
		return srv.Shutdown(context.Background())
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type modelTag struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

func (s *Server) tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]modelTag{
		"models": {{Name: s.name, Model: s.name}},
	})
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

// generate passes a raw prompt straight to the model.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	resp, err := s.model.Generate(r.Context(), req.Prompt, llm.Options{Model: req.Model})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Response: resp.Text, Model: resp.Model})
}
