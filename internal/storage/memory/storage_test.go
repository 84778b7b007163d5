package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/founder-srm/foundathon/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) makeTeam(id, leader string, statementID model.StatementID) *model.Team {
	return &model.Team{
		ID:          model.TeamID(id),
		Name:        "Team " + id,
		College:     "SRM",
		LeaderID:    model.UserID(leader),
		StatementID: statementID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// User operations

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "u_1",
		Email:     "alice@example.com",
		Name:      "Alice",
		CreatedAt: time.Now(),
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

	count, err := s.storage.CountTeamsForStatement(s.ctx, "ps-01")
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestCreateTeamAtCapFails() {
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_1", "u_1", "ps-01"), 2))
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_2", "u_2", "ps-01"), 2))

	err := s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_3", "u_3", "ps-01"), 2)
	s.ErrorIs(err, model.ErrStatementFull)

	// Other statements are unaffected
	s.NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_4", "u_4", "ps-02"), 2))
}

func (s *StorageSuite) TestCreateTeamDuplicateLeaderFails() {
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_1", "u_1", "ps-01"), 5))

	err := s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_2", "u_1", "ps-02"), 5)
	s.ErrorIs(err, model.ErrAlreadyRegistered)
}

func (s *StorageSuite) TestCreateTeamConcurrentNeverExceedsCap() {
	const capLimit = 5
	const attempts = 40

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			team := s.makeTeam(fmt.Sprintf("t_%d", i), fmt.Sprintf("u_%d", i), "ps-01")
			_ = s.storage.CreateTeamIfUnderCap(s.ctx, team, capLimit)
		}(i)
	}
	wg.Wait()

	count, err := s.storage.CountTeamsForStatement(s.ctx, "ps-01")
	s.Require().NoError(err)
	s.Equal(capLimit, count)
}

func (s *StorageSuite) TestGetTeamByLeader() {
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, s.makeTeam("t_1", "u_1", "ps-01"), 5))

	team, err := s.storage.GetTeamByLeader(s.ctx, "u_1")
	s.Require().NoError(err)
	s.Equal(model.TeamID("t_1"), team.ID)

	_, err = s.storage.GetTeamByLeader(s.ctx, "u_nobody")
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *StorageSuite) TestListTeamsSortedByCreation() {
	first := s.makeTeam("t_1", "u_1", "ps-01")
	first.CreatedAt = time.Now().Add(-time.Hour)
	second := s.makeTeam("t_2", "u_2", "ps-01")

	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, second, 5))
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, first, 5))

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(teams, 2)
	s.Equal(model.TeamID("t_1"), teams[0].ID)
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

// Submission operations

func (s *StorageSuite) TestSaveAndGetSubmission() {
	sub := &model.Submission{
		TeamID:      "t_1",
		Title:       "Pitch",
		DeckURL:     "https://example.com/deck",
		SubmittedAt: time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.Require().NoError(s.storage.SaveSubmission(s.ctx, sub))

	got, err := s.storage.GetSubmission(s.ctx, "t_1")
	s.Require().NoError(err)
	s.Equal("Pitch", got.Title)

	count, err := s.storage.CountSubmissions(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StorageSuite) TestGetSubmissionNotFound() {
	_, err := s.storage.GetSubmission(s.ctx, "t_missing")
	s.ErrorIs(err, model.ErrSubmissionNotFound)
}
