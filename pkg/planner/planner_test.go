package planner

//go:generate mockgen -source=planner.go -destination=mocks/mocks.go -package=mocks Planner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/OpenTraceLab/OpenTraceSynth/pkg/catalog"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/command"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/planner/mocks"
	"github.com/OpenTraceLab/OpenTraceSynth/pkg/requirement"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var standardPlan = []command.Command{
	command.AddRegulator5V,
	command.AddInputCapacitor,
	command.AddOutputCapacitor,
}

func TestKeywordPlanner(t *testing.T) {
	p := NewKeywordPlanner(quiet)
	ctx := context.Background()

	tests := []struct {
		request string
		want    []command.Command
	}{
		{"I need a 5V power supply for my board", standardPlan},
		{"POWER SUPPLY, 5v, 1A", standardPlan},
		{"a 3.3V power supply", []command.Command{}},
		{"5V rail", []command.Command{}},
		{"", []command.Command{}},
	}
	for _, tt := range tests {
		got, err := p.Plan(ctx, tt.request)
		require.NoError(t, err, tt.request)
		assert.Equal(t, tt.want, got, tt.request)
		assert.NotNil(t, got)
	}
}

func TestKeywordPlannerReturnsFreshPlans(t *testing.T) {
	p := NewKeywordPlanner(quiet)

	first, err := p.Plan(context.Background(), "5v power supply")
	require.NoError(t, err)
	first[0] = command.AddOutputCapacitor

	second, err := p.Plan(context.Background(), "5v power supply")
	require.NoError(t, err)
	assert.Equal(t, standardPlan, second)
}

func TestKeywordPlannerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewKeywordPlanner(nil).Plan(ctx, "5v power supply")
	assert.ErrorIs(t, err, context.Canceled)
}

type OrchestratorSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	planner *mocks.MockPlanner
	orch    *Orchestrator
	req     requirement.PowerSupply
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.planner = mocks.NewMockPlanner(s.ctrl)
	exec := command.NewExecutor(catalog.Default(), command.WithLogger(quiet))

	var err error
	s.orch, err = NewOrchestrator(s.planner, exec, WithLogger(quiet))
	s.Require().NoError(err)
	s.req = requirement.NewPowerSupply("Main", 12, 5, 1)
}

func (s *OrchestratorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorSuite) TestNewRequiresCollaborators() {
	_, err := NewOrchestrator(nil, command.NewExecutor(catalog.Default()))
	s.Error(err)

	_, err = NewOrchestrator(s.planner, nil)
	s.Error(err)
}

func (s *OrchestratorSuite) TestCreateFoldsPlan() {
	s.planner.EXPECT().Plan(gomock.Any(), "5v power supply").Return(standardPlan, nil)

	d, err := s.orch.Create(context.Background(), "5v power supply", s.req)
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, d.ID)
	s.Equal("5v power supply", d.Request)
	s.Equal(standardPlan, d.Plan)
	s.Equal("3 components, 3 nets", d.Schematic.Summary())
	s.NoError(d.Schematic.Validate())
}

func (s *OrchestratorSuite) TestCreateWithEmptyPlan() {
	s.planner.EXPECT().Plan(gomock.Any(), gomock.Any()).Return([]command.Command{}, nil)

	d, err := s.orch.Create(context.Background(), "a toaster", s.req)
	s.Require().NoError(err)
	s.True(d.Schematic.IsEmpty())
	s.Empty(d.Plan)
}

func (s *OrchestratorSuite) TestCreatePartialPlan() {
	s.planner.EXPECT().Plan(gomock.Any(), gomock.Any()).
		Return([]command.Command{command.AddInputCapacitor}, nil)

	d, err := s.orch.Create(context.Background(), "just a cap", s.req)
	s.Require().NoError(err)
	s.Len(d.Schematic.Components(), 1)

	_, ok := d.Schematic.FindNet("VOUT_5.0V")
	s.False(ok)
}

func (s *OrchestratorSuite) TestCreateSkipsUnknownSteps() {
	s.planner.EXPECT().Plan(gomock.Any(), gomock.Any()).
		Return([]command.Command{command.Command(99), command.AddRegulator5V}, nil)

	d, err := s.orch.Create(context.Background(), "odd plan", s.req)
	s.Require().NoError(err)
	s.Len(d.Schematic.Components(), 1)
}

func (s *OrchestratorSuite) TestCreatePlannerError() {
	boom := errors.New("model unavailable")
	s.planner.EXPECT().Plan(gomock.Any(), gomock.Any()).Return(nil, boom)

	d, err := s.orch.Create(context.Background(), "5v power supply", s.req)
	s.Nil(d)
	s.ErrorIs(err, boom)
}

func (s *OrchestratorSuite) TestDesignIDsAreUnique() {
	s.planner.EXPECT().Plan(gomock.Any(), gomock.Any()).Return(standardPlan, nil).Times(2)

	a, err := s.orch.Create(context.Background(), "5v power supply", s.req)
	s.Require().NoError(err)
	b, err := s.orch.Create(context.Background(), "5v power supply", s.req)
	s.Require().NoError(err)
	s.NotEqual(a.ID, b.ID)
}

func (s *OrchestratorSuite) TestCreateLogsDesign() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	orch, err := NewOrchestrator(s.planner, command.NewExecutor(catalog.Default(), command.WithLogger(logger)), WithLogger(logger))
	s.Require().NoError(err)
	s.planner.EXPECT().Plan(gomock.Any(), gomock.Any()).Return(standardPlan, nil)

	d, err := orch.Create(context.Background(), "5v power supply", s.req)
	s.Require().NoError(err)
	s.Contains(buf.String(), "design created")
	s.Contains(buf.String(), d.ID.String())
}
