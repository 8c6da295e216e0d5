package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/planner/mocks"
)

func TestScriptPlanner(t *testing.T) {
	p := NewScriptPlanner(quiet)

	plan, err := p.Plan(context.Background(), "(plan add_regulator_5v add_input_capacitor)")
	require.NoError(t, err)
	assert.Equal(t, []command.Command{command.AddRegulator5V, command.AddInputCapacitor}, plan)

	plan, err = p.Plan(context.Background(), "(plan add_output_capacitor)")
	require.NoError(t, err)
	assert.Equal(t, []command.Command{command.AddOutputCapacitor}, plan)

	plan, err = p.Plan(context.Background(), "(plan add_regulator_5v add_input_capacitor add_output_capacitor)")
	require.NoError(t, err)
	assert.Equal(t, standardPlan, plan)
}

func TestScriptPlannerEmptyPlan(t *testing.T) {
	for _, src := range []string{"(plan)", "  ( plan )  "} {
		plan, err := NewScriptPlanner(quiet).Plan(context.Background(), src)
		require.NoError(t, err, src)
		assert.NotNil(t, plan, src)
		assert.Empty(t, plan, src)
	}
}

func TestScriptPlannerUnknownStep(t *testing.T) {
	_, err := NewScriptPlanner(quiet).Plan(context.Background(), "(plan add_regulator_5v add_fuse)")
	require.Error(t, err)
	assert.ErrorIs(t, err, command.ErrUnknownCommand)
	assert.Contains(t, err.Error(), "step 2")
}

func TestScriptPlannerMalformed(t *testing.T) {
	p := NewScriptPlanner(quiet)
	for _, src := range []string{
		"(build add_regulator_5v)",
		"(build)",
		"plan",
		"(plan add_regulator_5v (add_input_capacitor add_output_capacitor))",
		"(plan add_regulator_5v) (plan add_input_capacitor)",
	} {
		_, err := p.Plan(context.Background(), src)
		assert.ErrorIs(t, err, ErrBadScript, src)
	}
}

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	script := mocks.NewMockPlanner(ctrl)
	keyword := mocks.NewMockPlanner(ctrl)
	r := &Router{Script: script, Keyword: keyword}

	script.EXPECT().Plan(gomock.Any(), "  (plan add_regulator_5v)").
		Return([]command.Command{command.AddRegulator5V}, nil)
	keyword.EXPECT().Plan(gomock.Any(), "5v power supply").Return(standardPlan, nil)

	plan, err := r.Plan(context.Background(), "  (plan add_regulator_5v)")
	require.NoError(t, err)
	assert.Len(t, plan, 1)

	plan, err = r.Plan(context.Background(), "5v power supply")
	require.NoError(t, err)
	assert.Equal(t, standardPlan, plan)
}

func TestNewRouter(t *testing.T) {
	plan, err := NewRouter(quiet).Plan(context.Background(), "(plan add_input_capacitor add_output_capacitor)")
	require.NoError(t, err)
	assert.Equal(t, []command.Command{command.AddInputCapacitor, command.AddOutputCapacitor}, plan)
}
