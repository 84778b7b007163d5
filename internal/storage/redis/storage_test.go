package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/founder-srm/foundathon/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) makeTeam(id, leader string, statementID model.StatementID) *model.Team {
	return &model.Team{
		ID:          model.TeamID(id),
		Name:        "Team " + id,
		College:     "SRM",
		LeaderID:    model.UserID(leader),
		Members: []model.TeamMember{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "bob@example.com"},
		},
		StatementID: statementID,
		CreatedAt:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

// User operations

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "u_1",
		Email:     "alice@example.com",
		Name:      "Alice",
		CreatedAt: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	got, err := s.storage.GetUser(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)

	byEmail, err := s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u_1"), byEmail.ID)

	count, err := s.storage.CountUsers(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "u_missing")
	s.ErrorIs(err, model.ErrUserNotFound)

	_, err = s.storage.GetUserByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Team operations

func (s *StorageSuite) TestCreateTeamIfUnderCap() {
	err := s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_1", "u_1", "ps-01"), 2)
	s.Require().NoError(err)

	got, err := s.storage.GetTeam(s.ctx, "t_1")
	s.Require().NoError(err)
	s.Equal(model.StatementID("ps-01"), got.StatementID)
	s.Len(got.Members, 2)

	count, err := s.storage.CountTeamsForStatement(s.ctx, "ps-01")
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestCreateTeamAtCapFails() {
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_1", "u_1", "ps-01"), 2))
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_2", "u_2", "ps-01"), 2))

	err := s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_3", "u_3", "ps-01"), 2)
	s.ErrorIs(err, model.ErrStatementFull)

	count, err := s.storage.CountTeamsForStatement(s.ctx, "ps-01")
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *StorageSuite) TestCreateTeamDuplicateLeaderFails() {
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_1", "u_1", "ps-01"), 5))

	err := s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_2", "u_1", "ps-02"), 5)
	s.ErrorIs(err, model.ErrAlreadyRegistered)
}

func (s *StorageSuite) TestGetTeamByLeader() {
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_1", "u_1", "ps-01"), 5))

	team, err := s.storage.GetTeamByLeader(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal(model.TeamID("t_1"), team.ID)

	_, err = s.storage.GetTeamByLeader(s.ctx, "u_nobody")
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *StorageSuite) TestSaveTeamUpdatesWithoutCounting() {
	team := s.makeTeam("t_1", "u_1", "ps-01")
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, team, 5))

	team.Name = "Renamed"
	s.Require().NoError(s.storage.SaveTeam(s.ctx, team))

	got, err := s.storage.GetTeam(s.ctx, "t_1")
	s.Require().NoError(err)
	s.Equal("Renamed", got.Name)

	count, err := s.storage.CountTeamsForStatement(s.ctx, "ps-01")
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestListTeams() {
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_1", "u_1", "ps-01"), 5))
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_2", "u_2", "ps-02"), 5))

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Len(teams, 2)
}

func (s *StorageSuite) TestCountTeamsByStatement() {
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_1", "u_1", "ps-01"), 5))
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_2", "u_2", "ps-01"), 5))
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_3", "u_3", "ps-02"), 5))

	counts, err := s.storage.CountTeamsByStatement(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, counts["ps-01"])
	s.Equal(1, counts["ps-02"])
}

func (s *StorageSuite) TestCountTeamsForStatementEmpty() {
	count, err := s.storage.CountTeamsForStatement(s.ctx, "ps-99")
	s.Require().NoError(err)
	s.Equal(0, count)
}

// Submission operations

func (s *StorageSuite) TestSaveAndGetSubmission() {
	sub := &model.Submission{
		TeamID:      "t_1",
		Title:       "Pitch",
		DeckURL:     "https://example.com/deck",
		SubmittedAt: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.storage.SaveSubmission(s.ctx, sub))

	got, err := s.storage.GetSubmission(s.ctx, "t_1")
	s.Require().NoError(err)
	s.Equal("Pitch", got.Title)

	// Re-saving the same team's submission does not double count
	s.Require().NoError(s.storage.SaveSubmission(s.ctx, sub))
	count, err := s.storage.CountSubmissions(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestGetSubmissionNotFound() {
	_, err := s.storage.GetSubmission(s.ctx, "t_missing")
	s.ErrorIs(err, model.ErrSubmissionNotFound)
}
