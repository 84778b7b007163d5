package stats

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/founder-srm/foundathon/internal/catalog"
	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	cat := catalog.New([]model.ProblemStatement{
		{ID: "ps-01", Title: "One", Cap: 2},
		{ID: "ps-02", Title: "Two", Cap: 2},
	})
	s.service = New(s.storage, cat)
	s.ctx = context.Background()
}

func (s *ServiceSuite) addTeam(id string, statementID model.StatementID) {
	team := &model.Team{
		ID:          model.TeamID(id),
		Name:        id,
		LeaderID:    model.UserID("u_" + id),
		StatementID: statementID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, team, 2))
}

func (s *ServiceSuite) TestOverviewEmpty() {
	overview, err := s.service.Overview(s.ctx)
	s.Require().NoError(err)

	s.Equal(0, overview.TotalUsers)
	s.Equal(0, overview.TotalTeams)
	s.Equal(0, overview.TotalSubmissions)
	s.Equal(4, overview.TotalCapacity)
	s.Require().Len(overview.Statements, 2)
	for _, st := range overview.Statements {
		s.Equal(0, st.Occupancy)
		s.Equal(2, st.Remaining)
		s.False(st.Full)
	}
}

func (s *ServiceSuite) TestOverviewCounts() {
	for i := 0; i < 3; i++ {
		user := &model.User{
			ID:        model.UserID(fmt.Sprintf("u_%d", i)),
			Email:     fmt.Sprintf("user%d@example.com", i),
			Name:      fmt.Sprintf("User %d", i),
			CreatedAt: time.Now(),
		}
		s.Require().NoError(s.storage.SaveUser(s.ctx, user))
	}
	s.addTeam("t_1", "ps-01")
	s.addTeam("t_2", "ps-01")
	s.addTeam("t_3", "ps-02")
	s.Require().NoError(s.storage.SaveSubmission(s.ctx, &model.Submission{
		TeamID:  "t_1",
		Title:   "Pitch",
		DeckURL: "https://example.com/deck",
	}))

	overview, err := s.service.Overview(s.ctx)
	s.Require().NoError(err)

	s.Equal(3, overview.TotalUsers)
	s.Equal(3, overview.TotalTeams)
	s.Equal(1, overview.TotalSubmissions)

	s.Require().Len(overview.Statements, 2)
	first := overview.Statements[0]
	s.Equal(model.StatementID("ps-01"), first.Statement.ID)
	s.Equal(2, first.Occupancy)
	s.Equal(0, first.Remaining)
	s.InDelta(1.0, first.FillRatio, 0.001)
	s.True(first.Full)

	second := overview.Statements[1]
	s.Equal(1, second.Occupancy)
	s.InDelta(0.5, second.FillRatio, 0.001)
	s.False(second.Full)
}
