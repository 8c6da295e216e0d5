package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chewxy/sexp"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
)

// ErrBadScript is returned for requests that are not a well-formed plan script.
var ErrBadScript = errors.New("planner: malformed plan script")

// ScriptPlanner reads requests written as plan scripts, for example
//
//	(plan add_regulator_5v add_input_capacitor)
//
// Steps must be known commands.
type ScriptPlanner struct {
	logger *slog.Logger
}

// NewScriptPlanner returns a ScriptPlanner. A nil logger uses slog.Default.
func NewScriptPlanner(logger *slog.Logger) *ScriptPlanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScriptPlanner{logger: logger}
}

// Plan parses request as a single (plan ...) expression. "(plan)" is an
// empty plan.
func (p *ScriptPlanner) Plan(ctx context.Context, request string) ([]command.Command, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := strings.TrimSpace(request)
	exprs, err := sexp.ParseString(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadScript, err)
	}
	if len(exprs) != 1 || !strings.HasPrefix(src, "(") {
		return nil, fmt.Errorf("%w: expected a single (plan ...) list", ErrBadScript)
	}

	var items []sexp.Sexp
	switch e := exprs[0].(type) {
	case sexp.Symbol:
		// a one-element list comes back as its only atom
		items = []sexp.Sexp{e}
	case sexp.List:
		items = e
	default:
		return nil, fmt.Errorf("%w: expected a single (plan ...) list", ErrBadScript)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: script must start with plan", ErrBadScript)
	}
	if head, ok := symbol(items[0]); !ok || head != "plan" {
		return nil, fmt.Errorf("%w: script must start with plan", ErrBadScript)
	}

	plan := []command.Command{}
	for i, item := range items[1:] {
		name, ok := symbol(item)
		if !ok {
			return nil, fmt.Errorf("%w: step %d is a list", ErrBadScript, i+1)
		}
		c, err := command.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		plan = append(plan, c)
	}

	p.logger.DebugContext(ctx, "plan script read", "steps", len(plan))
	return plan, nil
}

func symbol(s sexp.Sexp) (string, bool) {
	sym, ok := s.(sexp.Symbol)
	return string(sym), ok
}

// Router sends plan scripts to a ScriptPlanner and everything else to a
// KeywordPlanner.
type Router struct {
	Script  Planner
	Keyword Planner
}

// NewRouter builds the default planner used by the CLI and server.
func NewRouter(logger *slog.Logger) *Router {
	return &Router{
		Script:  NewScriptPlanner(logger),
		Keyword: NewKeywordPlanner(logger),
	}
}

// Plan implements Planner.
func (r *Router) Plan(ctx context.Context, request string) ([]command.Command, error) {
	if strings.HasPrefix(strings.TrimSpace(request), "(") {
		return r.Script.Plan(ctx, request)
	}
	return r.Keyword.Plan(ctx, request)
}
