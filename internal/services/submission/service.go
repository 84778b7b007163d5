package submission

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/founder-srm/foundathon/internal/dependencies/clock"
	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/storage"
)

// Service handles presentation deck submissions, one per team
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new submission Service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Submit records or replaces the deck for the team led by leaderID.
// Only the leader may submit, and the deck URL must be https.
func (s *Service) Submit(ctx context.Context, leaderID model.UserID, title, deckURL string) (*model.Submission, error) {
	if err := validateDeckURL(deckURL); err != nil {
		return nil, err
	}

	team, err := s.storage.GetTeamByLeader(ctx, leaderID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sub := &model.Submission{
		TeamID:      team.ID,
		Title:       strings.TrimSpace(title),
		DeckURL:     deckURL,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	// Re-submission keeps the original submission time
	if existing, err := s.storage.GetSubmission(ctx, team.ID); err == nil {
		sub.SubmittedAt = existing.SubmittedAt
	} else if !errors.Is(err, model.ErrSubmissionNotFound) {
		return nil, err
	}

	if err := s.storage.SaveSubmission(ctx, sub); err != nil {
		return nil, err
	}

	s.logger.Info("submission saved",
		slog.String("team_id", string(team.ID)),
		slog.String("deck_url", deckURL),
	)

	return sub, nil
}

// GetForLeader returns the submission of the team led by leaderID
func (s *Service) GetForLeader(ctx context.Context, leaderID model.UserID) (*model.Submission, error) {
	team, err := s.storage.GetTeamByLeader(ctx, leaderID)
	if err != nil {
		return nil, err
	}
	return s.storage.GetSubmission(ctx, team.ID)
}

func validateDeckURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return model.ErrInvalidDeckURL
	}
	return nil
}
