package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

// Design is the outcome of one orchestrated request.
type Design struct {
	ID        uuid.UUID               `json:"id"`
	Request   string                  `json:"request"`
	Block     requirement.PowerSupply `json:"block"`
	Plan      []command.Command       `json:"plan"`
	Schematic *schematic.Schematic    `json:"-"`
}

// Orchestrator asks a Planner for a plan and folds it through an Executor.
type Orchestrator struct {
	planner  Planner
	executor *command.Executor
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator wires a planner to an executor.
func NewOrchestrator(p Planner, exec *command.Executor, opts ...Option) (*Orchestrator, error) {
	if p == nil {
		return nil, errors.New("planner: planner is required")
	}
	if exec == nil {
		return nil, errors.New("planner: executor is required")
	}
	o := &Orchestrator{
		planner:  p,
		executor: exec,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Create plans request and builds the plan into a fresh schematic for req.
// An empty plan yields an empty schematic.
func (o *Orchestrator) Create(ctx context.Context, request string, req requirement.PowerSupply) (*Design, error) {
	plan, err := o.planner.Plan(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("planner: planning %q: %w", request, err)
	}

	d := &Design{
		ID:        uuid.New(),
		Request:   request,
		Block:     req,
		Plan:      plan,
		Schematic: schematic.New(),
	}
	o.executor.Apply(plan, d.Schematic, req)

	o.logger.InfoContext(ctx, "design created",
		"design_id", d.ID.String(),
		"block", req.BlockName,
		"steps", len(plan),
		"summary", d.Schematic.Summary(),
	)
	return d, nil
}
