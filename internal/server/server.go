// Package server exposes schematic synthesis over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/catalog"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/export"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/generator"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/planner"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
)

// Error kinds reported in failure bodies.
const (
	KindValidation = "validation"
	KindNoRule     = "no_rule"
	KindBuild      = "build"
	KindPlan       = "plan"
	KindRequest    = "request"
	KindInternal   = "internal"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Engine       *generator.Engine
	Orchestrator *planner.Orchestrator
	// Parts is the catalog snapshot served and searched by /v1/catalog.
	Parts    []catalog.Part
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// Server is the thin HTTP layer over the generator and orchestrator.
type Server struct {
	engine   *generator.Engine
	orch     *planner.Orchestrator
	parts    []catalog.Part
	index    *catalog.Index
	registry *prometheus.Registry
	metrics  *Metrics
	logger   *slog.Logger
}

// New builds a Server and its search index.
func New(d Deps) (*Server, error) {
	if d.Engine == nil || d.Orchestrator == nil {
		return nil, errors.New("server: engine and orchestrator are required")
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}

	index, err := catalog.NewIndex(d.Parts)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	return &Server{
		engine:   d.Engine,
		orch:     d.Orchestrator,
		parts:    append([]catalog.Part(nil), d.Parts...),
		index:    index,
		registry: d.Registry,
		metrics:  NewMetrics(d.Registry),
		logger:   d.Logger,
	}, nil
}

// Close releases the search index.
func (s *Server) Close() error {
	return s.index.Close()
}

// Router wires all public endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/plan", s.handlePlan)
		r.Get("/catalog", s.handleCatalog)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type generateResponse struct {
	Block     requirement.PowerSupply `json:"block"`
	Summary   string                  `json:"summary"`
	Schematic export.Document         `json:"schematic"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req requirement.PowerSupply
	if err := decodeBlock(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, KindRequest, err)
		return
	}

	start := time.Now()
	sch, err := s.engine.Generate(req)
	s.metrics.ObserveGenerateLatency(time.Since(start))
	if err != nil {
		kind := generateKind(err)
		s.metrics.IncrementOutcome(kind)
		s.logger.InfoContext(r.Context(), "generation rejected",
			"request_id", RequestID(r.Context()), "kind", kind, "error", err)
		writeError(w, http.StatusUnprocessableEntity, kind, err)
		return
	}
	s.metrics.IncrementOutcome("ok")

	if r.URL.Query().Get("format") == "kicad" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(export.KiCad(sch, req.BlockName)))
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Block:     req,
		Summary:   sch.Summary(),
		Schematic: export.NewDocument(sch),
	})
}

type planRequest struct {
	Request string                  `json:"request"`
	Block   requirement.PowerSupply `json:"block"`
}

type planResponse struct {
	*planner.Design
	Summary   string          `json:"summary"`
	Schematic export.Document `json:"schematic"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var body planRequest
	if err := decode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, KindRequest, err)
		return
	}
	if err := checkBlock(&body.Block); err != nil {
		writeError(w, http.StatusBadRequest, KindRequest, err)
		return
	}

	d, err := s.orch.Create(r.Context(), body.Request, body.Block)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, KindPlan, err)
		return
	}
	s.metrics.IncrementPlans(len(d.Plan) == 0)

	writeJSON(w, http.StatusOK, planResponse{
		Design:    d,
		Summary:   d.Schematic.Summary(),
		Schematic: export.NewDocument(d.Schematic),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusOK, s.parts)
		return
	}
	parts, err := s.index.Search(q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, KindInternal, err)
		return
	}
	if parts == nil {
		parts = []catalog.Part{}
	}
	writeJSON(w, http.StatusOK, parts)
}

func generateKind(err error) string {
	switch {
	case errors.Is(err, generator.ErrValidation):
		return KindValidation
	case errors.Is(err, generator.ErrNoRule):
		return KindNoRule
	case errors.Is(err, generator.ErrBuild):
		return KindBuild
	default:
		return KindInternal
	}
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func decodeBlock(r *http.Request, req *requirement.PowerSupply) error {
	if err := decode(r, req); err != nil {
		return err
	}
	return checkBlock(req)
}

// checkBlock applies the front-end field checks and normalises the feature list.
func checkBlock(req *requirement.PowerSupply) error {
	*req = requirement.NewPowerSupply(req.BlockName, req.InputVoltage, req.OutputVoltage,
		req.MaxOutputCurrent, req.ProtectionFeatures...)
	if err := req.Check(); err != nil {
		return fmt.Errorf("invalid block: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError keeps one JSON error envelope for every failure.
func writeError(w http.ResponseWriter, status int, kind string, err error) {
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"kind":  kind,
	})
}
