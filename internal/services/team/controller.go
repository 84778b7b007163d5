package team

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/founder-srm/foundathon/internal/catalog"
	"github.com/founder-srm/foundathon/internal/dependencies/clock"
	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/services/lock"
	"github.com/founder-srm/foundathon/internal/storage"
)

// ErrInvalidRegistration is returned for malformed registration fields
var ErrInvalidRegistration = errors.New("invalid team registration")

// RegisterRequest carries the fields of a team-creation request,
// including the lock token obtained from the lock service
type RegisterRequest struct {
	Name        string
	College     string
	Members     []model.TeamMember
	StatementID model.StatementID
	LockToken   string
}

// Controller manages team registration and updates
type Controller struct {
	storage     storage.Storage
	catalog     *catalog.Catalog
	lockService *lock.Service
	clock       clock.Clock
	logger      *slog.Logger
}

// NewController creates a new team Controller
func NewController(
	store storage.Storage,
	cat *catalog.Catalog,
	lockService *lock.Service,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:     store,
		catalog:     cat,
		lockService: lockService,
		clock:       clk,
		logger:      logger,
	}
}

// RegisterTeam commits a team registration for the given leader. The lock
// token is verified against a fresh occupancy read, then the insert happens
// through the storage layer's conditional write, which holds the cap even
// when the verify and the insert race with other registrations.
//
// The statement binding is final: nothing ever updates a team's StatementID
// after this write.
func (c *Controller) RegisterTeam(ctx context.Context, leaderID model.UserID, req RegisterRequest) (*model.Team, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	// A leader may register at most one team
	_, err := c.storage.GetTeamByLeader(ctx, leaderID)
	if err == nil {
		return nil, model.ErrAlreadyRegistered
	}
	if !errors.Is(err, model.ErrTeamNotFound) {
		return nil, err
	}

	statement, err := c.catalog.Get(req.StatementID)
	if err != nil {
		return nil, err
	}

	occupancy, err := c.storage.CountTeamsForStatement(ctx, req.StatementID)
	if err != nil {
		return nil, err
	}

	if err := c.lockService.VerifyLock(req.LockToken, req.StatementID, leaderID, occupancy); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	team := &model.Team{
		ID:          model.TeamID(uuid.New().String()),
		Name:        strings.TrimSpace(req.Name),
		College:     strings.TrimSpace(req.College),
		LeaderID:    leaderID,
		Members:     req.Members,
		StatementID: req.StatementID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storage.CreateTeamIfUnderCap(ctx, team, statement.Cap); err != nil {
		return nil, err
	}

	c.logger.Info("team registered",
		slog.String("team_id", string(team.ID)),
		slog.String("statement_id", string(team.StatementID)),
		slog.String("leader_id", string(leaderID)),
		slog.Int("members", len(team.Members)),
	)

	return team, nil
}

// GetTeam retrieves a team by ID
func (c *Controller) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	return c.storage.GetTeam(ctx, id)
}

// GetTeamForLeader retrieves the team led by the given user
func (c *Controller) GetTeamForLeader(ctx context.Context, leaderID model.UserID) (*model.Team, error) {
	return c.storage.GetTeamByLeader(ctx, leaderID)
}

// ListTeams returns all registered teams in registration order
func (c *Controller) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return c.storage.ListTeams(ctx)
}

// UpdateMembers replaces the member list of the leader's team.
// The leader and the locked statement cannot change.
func (c *Controller) UpdateMembers(ctx context.Context, leaderID model.UserID, members []model.TeamMember) (*model.Team, error) {
	if len(members) < model.MinTeamSize || len(members) > model.MaxTeamSize {
		return nil, model.ErrInvalidTeamSize
	}
	for _, m := range members {
		if strings.TrimSpace(m.Name) == "" {
			return nil, ErrInvalidRegistration
		}
	}

	team, err := c.storage.GetTeamByLeader(ctx, leaderID)
	if err != nil {
		return nil, err
	}

	updated := *team
	updated.Members = members
	updated.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveTeam(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func validateRegistration(req RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.College) == "" {
		return ErrInvalidRegistration
	}
	if len(req.Members) < model.MinTeamSize || len(req.Members) > model.MaxTeamSize {
		return model.ErrInvalidTeamSize
	}
	for _, m := range req.Members {
		if strings.TrimSpace(m.Name) == "" {
			return ErrInvalidRegistration
		}
	}
	return nil
}
