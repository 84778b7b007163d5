package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users       map[model.UserID]*model.User
	emailIndex  map[string]model.UserID
	teams       map[model.TeamID]*model.Team
	leaderIndex map[model.UserID]model.TeamID
	submissions map[model.TeamID]*model.Submission
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:       make(map[model.UserID]*model.User),
		emailIndex:  make(map[string]model.UserID),
		teams:       make(map[model.TeamID]*model.Team),
		leaderIndex: make(map[model.UserID]model.TeamID),
		submissions: make(map[model.TeamID]*model.Submission),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Team operations

// CreateTeamIfUnderCap counts and inserts under a single write lock, so the
// occupancy check and the insert are atomic with respect to other writers.
func (s *Storage) CreateTeamIfUnderCap(ctx context.Context, team *model.Team, cap int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leaderIndex[team.LeaderID]; ok {
		return model.ErrAlreadyRegistered
	}

	occupancy := 0
	for _, t := range s.teams {
		if t.StatementID == team.StatementID {
			occupancy++
		}
	}
	if occupancy >= cap {
		return model.ErrStatementFull
	}

	s.teams[team.ID] = team
	s.leaderIndex[team.LeaderID] = team.ID
	return nil
}

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[team.ID] = team
	s.leaderIndex[team.LeaderID] = team.ID
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}

func (s *Storage) GetTeamByLeader(ctx context.Context, leaderID model.UserID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.leaderIndex[leaderID]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]*model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
	return teams, nil
}

func (s *Storage) CountTeamsForStatement(ctx context.Context, id model.StatementID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, t := range s.teams {
		if t.StatementID == id {
			count++
		}
	}
	return count, nil
}

func (s *Storage) CountTeamsByStatement(ctx context.Context) (map[model.StatementID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[model.StatementID]int)
	for _, t := range s.teams {
		counts[t.StatementID]++
	}
	return counts, nil
}

// Submission operations

func (s *Storage) SaveSubmission(ctx context.Context, sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.TeamID] = sub
	return nil
}

func (s *Storage) GetSubmission(ctx context.Context, teamID model.TeamID) (*model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.submissions[teamID]
	if !ok {
		return nil, model.ErrSubmissionNotFound
	}
	return sub, nil
}

func (s *Storage) CountSubmissions(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.submissions), nil
}
