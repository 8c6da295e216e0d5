// Package planner turns free-form design requests into build plans and folds
// those plans into schematics.
package planner

import (
	"context"
	"log/slog"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
)

// Planner maps a natural-language request to an ordered build plan.
// An empty plan is a valid answer.
type Planner interface {
	Plan(ctx context.Context, request string) ([]command.Command, error)
}

// keyword sets that select a canned plan; every keyword must appear
var keywordPlans = []struct {
	keywords []string
	plan     []command.Command
}{
	{
		keywords: []string{"5v", "power supply"},
		plan: []command.Command{
			command.AddRegulator5V,
			command.AddInputCapacitor,
			command.AddOutputCapacitor,
		},
	},
}

// KeywordPlanner is a deterministic Planner driven by substring matches.
type KeywordPlanner struct {
	logger *slog.Logger
}

// NewKeywordPlanner returns a KeywordPlanner. A nil logger uses slog.Default.
func NewKeywordPlanner(logger *slog.Logger) *KeywordPlanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeywordPlanner{logger: logger}
}

// Plan returns the first canned plan whose keywords all occur in request,
// compared case-insensitively.
func (p *KeywordPlanner) Plan(ctx context.Context, request string) ([]command.Command, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := strings.ToLower(request)
	for _, kp := range keywordPlans {
		if containsAll(text, kp.keywords) {
			plan := append([]command.Command(nil), kp.plan...)
			p.logger.DebugContext(ctx, "plan selected", "keywords", kp.keywords, "steps", len(plan))
			return plan, nil
		}
	}

	p.logger.InfoContext(ctx, "no plan for request", "request", request)
	return []command.Command{}, nil
}

func containsAll(text string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(text, kw) {
			return false
		}
	}
	return true
}
