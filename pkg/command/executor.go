package command

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/catalog"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/schematic"
)

var (
	// ErrAlreadyPlaced is returned when the step's reference designator is
	// already used in the schematic.
	ErrAlreadyPlaced = errors.New("command: reference designator already placed")
	// ErrMissingPart is returned when the catalog has no entry for the step's part.
	ErrMissingPart = errors.New("command: part not in catalog")
	// ErrPinMismatch is returned when the catalog pin list does not fit the step.
	ErrPinMismatch = errors.New("command: catalog pins do not match step")
)

// Executor applies build steps to a schematic.
type Executor struct {
	catalog catalog.Catalog
	logger  *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for step and warning output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor returns an executor resolving parts from cat.
func NewExecutor(cat catalog.Catalog, opts ...Option) *Executor {
	e := &Executor{
		catalog: cat,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute applies c to sch. A step that cannot be applied is logged as a
// warning and leaves sch unchanged; re-running a step whose component is
// already placed is a no-op.
func (e *Executor) Execute(c Command, sch *schematic.Schematic, req requirement.PowerSupply) {
	if err := e.Build(c, sch, req); err != nil {
		e.logger.Warn("command ignored", "command", c.String(), "error", err)
	}
}

// ExecuteNamed applies the command with the given wire name. Names outside
// the vocabulary are logged and ignored.
func (e *Executor) ExecuteNamed(name string, sch *schematic.Schematic, req requirement.PowerSupply) {
	c, err := Parse(name)
	if err != nil {
		e.logger.Warn("unknown command ignored", "command", name)
		return
	}
	e.Execute(c, sch, req)
}

// Apply folds plan over sch in order. There is no rollback: steps that fail
// are skipped and later steps still run.
func (e *Executor) Apply(plan []Command, sch *schematic.Schematic, req requirement.PowerSupply) {
	for _, c := range plan {
		e.Execute(c, sch, req)
	}
}

// Build applies c to sch and reports why it could not. On error sch is left
// unchanged.
func (e *Executor) Build(c Command, sch *schematic.Schematic, req requirement.PowerSupply) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, c)
	}
	s := steps[c]

	if _, ok := sch.FindComponent(s.ref); ok {
		return fmt.Errorf("%w: %s", ErrAlreadyPlaced, s.ref)
	}

	part, ok := e.catalog.Lookup(s.part)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingPart, s.part)
	}
	roles, err := s.roles(part.Pins)
	if err != nil {
		return fmt.Errorf("%s for %s: %w", part.Number, c, err)
	}

	desc := part.Description
	if s.label != "" {
		desc = fmt.Sprintf("%s (%s)", s.label, part.Description)
	}
	comp := schematic.Component{
		Ref:         s.ref,
		PartNumber:  part.Number,
		Description: desc,
	}
	sch.AddComponent(comp)

	nets := make(map[Role]*schematic.Net)
	for _, role := range distinctRoles(roles) {
		nets[role] = sch.GetOrCreateNet(NetName(role, req))
	}
	for i, label := range part.Pins {
		nets[roles[i]].AddConnection(comp.Pin(label))
	}

	e.logger.Debug("command executed", "command", c.String(), "ref", s.ref, "part", part.Number)
	return nil
}

// distinctRoles returns the roles used by a step in net creation order.
func distinctRoles(roles []Role) []Role {
	seen := make(map[Role]bool)
	var out []Role
	for _, r := range roles {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
