package storage

import (
	"context"

	"github.com/founder-srm/foundathon/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Team operations
	//
	// CreateTeamIfUnderCap is the one atomic compare-and-insert the lock
	// protocol depends on: the occupancy read and the insert for the team's
	// statement must be atomic with respect to concurrent calls. It returns
	// model.ErrStatementFull when the statement is at cap and
	// model.ErrAlreadyRegistered when the leader already has a team.
	CreateTeamIfUnderCap(ctx context.Context, team *model.Team, cap int) error
	SaveTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	GetTeamByLeader(ctx context.Context, leaderID model.UserID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)
	CountTeamsForStatement(ctx context.Context, id model.StatementID) (int, error)
	CountTeamsByStatement(ctx context.Context) (map[model.StatementID]int, error)

	// Submission operations
	SaveSubmission(ctx context.Context, sub *model.Submission) error
	GetSubmission(ctx context.Context, teamID model.TeamID) (*model.Submission, error)
	CountSubmissions(ctx context.Context) (int, error)
}
