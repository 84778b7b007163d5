package lock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/founder-srm/foundathon/internal/catalog"
	"github.com/founder-srm/foundathon/internal/dependencies/mocks"
	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/storage/memory"
	"github.com/founder-srm/foundathon/internal/testutil"
)

const testCap = 15

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	catalog *catalog.Catalog
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.catalog = catalog.New([]model.ProblemStatement{
		{ID: "ps-01", Title: "One", Summary: "First statement", Cap: testCap},
		{ID: "ps-02", Title: "Two", Summary: "Second statement", Cap: testCap},
	})
	s.clock = mocks.NewMockClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	cfg := Config{Secret: []byte("test-secret"), TTL: 5 * time.Minute}
	s.service = New(s.catalog, s.storage, s.clock, cfg, testutil.NopLogger())
	s.ctx = context.Background()
}

// fillStatement registers n teams against the statement
func (s *ServiceSuite) fillStatement(id model.StatementID, n int) {
	for i := 0; i < n; i++ {
		team := &model.Team{
			ID:          model.TeamID(fmt.Sprintf("t_%s_%d", id, i)),
			Name:        fmt.Sprintf("Team %d", i),
			LeaderID:    model.UserID(fmt.Sprintf("u_%s_%d", id, i)),
			StatementID: id,
			CreatedAt:   s.clock.Now(),
			UpdatedAt:   s.clock.Now(),
		}
		s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, team, testCap))
	}
}

// IssueLock tests

func (s *ServiceSuite) TestIssueLockSucceeds() {
	grant, err := s.service.IssueLock(s.ctx, "ps-01", "u_alice")
	s.Require().NoError(err)

	s.NotEmpty(grant.Token)
	s.Equal(model.StatementID("ps-01"), grant.Statement.ID)
	s.Equal(s.clock.Now(), grant.IssuedAt)
	s.Equal(s.clock.Now().Add(5*time.Minute), grant.ExpiresAt)
}

func (s *ServiceSuite) TestIssueLockTokenNamesStatementAndSubject() {
	grant, err := s.service.IssueLock(s.ctx, "ps-01", "u_alice")
	s.Require().NoError(err)

	claims, err := Decode(grant.Token, []byte("test-secret"))
	s.Require().NoError(err)
	s.Equal(model.StatementID("ps-01"), claims.StatementID)
	s.Equal(model.UserID("u_alice"), claims.SubjectID)
	s.Equal(s.clock.Now().Unix(), claims.IssuedAt)
	s.Equal(grant.ExpiresAt.Unix(), claims.ExpiresAt)
}

func (s *ServiceSuite) TestIssueLockUnknownStatement() {
	_, err := s.service.IssueLock(s.ctx, "ps-99", "u_alice")
	s.ErrorIs(err, model.ErrUnknownStatement)
}

func (s *ServiceSuite) TestIssueLockStatementFull() {
	s.fillStatement("ps-01", testCap)

	_, err := s.service.IssueLock(s.ctx, "ps-01", "u_alice")
	s.ErrorIs(err, model.ErrStatementFull)
}

func (s *ServiceSuite) TestIssueLockOneSlotLeft() {
	s.fillStatement("ps-01", testCap-1)

	grant, err := s.service.IssueLock(s.ctx, "ps-01", "u_alice")
	s.Require().NoError(err)
	s.NotEmpty(grant.Token)
}

func (s *ServiceSuite) TestIssueLockReservesNothing() {
	// Many tokens may be outstanding for the same last slot
	s.fillStatement("ps-01", testCap-1)

	_, err := s.service.IssueLock(s.ctx, "ps-01", "u_alice")
	s.Require().NoError(err)
	_, err = s.service.IssueLock(s.ctx, "ps-01", "u_bob")
	s.Require().NoError(err)

	occupancy, err := s.storage.CountTeamsForStatement(s.ctx, "ps-01")
	s.Require().NoError(err)
	s.Equal(testCap-1, occupancy)
}

// VerifyLock tests

func (s *ServiceSuite) issue(statementID model.StatementID, subjectID model.UserID) *Grant {
	grant, err := s.service.IssueLock(s.ctx, statementID, subjectID)
	s.Require().NoError(err)
	return grant
}

func (s *ServiceSuite) TestVerifyLockSucceeds() {
	grant := s.issue("ps-01", "u_alice")

	err := s.service.VerifyLock(grant.Token, "ps-01", "u_alice", 0)
	s.NoError(err)
}

func (s *ServiceSuite) TestVerifyLockRejectsTamperedToken() {
	grant := s.issue("ps-01", "u_alice")

	tampered := []byte(grant.Token)
	tampered[0] ^= 0x01

	err := s.service.VerifyLock(string(tampered), "ps-01", "u_alice", 0)
	s.ErrorIs(err, model.ErrInvalidSignature)
}

func (s *ServiceSuite) TestVerifyLockRejectsExpired() {
	grant := s.issue("ps-01", "u_alice")

	s.clock.Advance(6 * time.Minute)

	err := s.service.VerifyLock(grant.Token, "ps-01", "u_alice", 0)
	s.ErrorIs(err, model.ErrLockExpired)
}

func (s *ServiceSuite) TestVerifyLockExpiryBoundary() {
	grant := s.issue("ps-01", "u_alice")

	// One second before expiry: still valid
	s.clock.Set(time.Unix(grant.ExpiresAt.Unix()-1, 0))
	s.NoError(s.service.VerifyLock(grant.Token, "ps-01", "u_alice", 0))

	// Exactly at expiry: rejected
	s.clock.Set(time.Unix(grant.ExpiresAt.Unix(), 0))
	s.ErrorIs(s.service.VerifyLock(grant.Token, "ps-01", "u_alice", 0), model.ErrLockExpired)
}

func (s *ServiceSuite) TestVerifyLockRejectsCrossUserReplay() {
	grant := s.issue("ps-01", "u_alice")

	err := s.service.VerifyLock(grant.Token, "ps-01", "u_bob", 0)
	s.ErrorIs(err, model.ErrMismatchedClaim)
}

func (s *ServiceSuite) TestVerifyLockRejectsCrossStatementReplay() {
	grant := s.issue("ps-01", "u_alice")

	err := s.service.VerifyLock(grant.Token, "ps-02", "u_alice", 0)
	s.ErrorIs(err, model.ErrMismatchedClaim)
}

func (s *ServiceSuite) TestVerifyLockRejectsFullStatement() {
	// A perfectly valid token still loses the race when occupancy
	// reached cap during the lock's lifetime
	grant := s.issue("ps-01", "u_alice")

	err := s.service.VerifyLock(grant.Token, "ps-01", "u_alice", testCap)
	s.ErrorIs(err, model.ErrStatementFull)
}

func (s *ServiceSuite) TestVerifyLockSignatureCheckedBeforeExpiry() {
	grant := s.issue("ps-01", "u_alice")
	s.clock.Advance(10 * time.Minute)

	tampered := []byte(grant.Token)
	tampered[0] ^= 0x01

	// Tampered and expired: signature failure wins
	err := s.service.VerifyLock(string(tampered), "ps-01", "u_alice", 0)
	s.ErrorIs(err, model.ErrInvalidSignature)
}

// End-to-end scenarios

func (s *ServiceSuite) TestScenarioLastSlotLockAndVerify() {
	// cap=15, occupancy=14: issue succeeds, immediate verify succeeds
	s.fillStatement("ps-01", testCap-1)

	grant := s.issue("ps-01", "u_alice")

	occupancy, err := s.storage.CountTeamsForStatement(s.ctx, "ps-01")
	s.Require().NoError(err)
	s.NoError(s.service.VerifyLock(grant.Token, "ps-01", "u_alice", occupancy))
}

func (s *ServiceSuite) TestScenarioFullStatementRejectsAtIssue() {
	s.fillStatement("ps-01", testCap)

	_, err := s.service.IssueLock(s.ctx, "ps-01", "u_alice")
	s.ErrorIs(err, model.ErrStatementFull)
}

func (s *ServiceSuite) TestScenarioRaceLoserRejectedAtVerify() {
	// Two tokens issued against the last slot; the first registration
	// lands, the second token fails the occupancy recheck
	s.fillStatement("ps-01", testCap-1)

	first := s.issue("ps-01", "u_alice")
	second := s.issue("ps-01", "u_bob")

	occupancy, err := s.storage.CountTeamsForStatement(s.ctx, "ps-01")
	s.Require().NoError(err)
	s.Require().NoError(s.service.VerifyLock(first.Token, "ps-01", "u_alice", occupancy))

	winner := &model.Team{
		ID:          "t_winner",
		Name:        "Winners",
		LeaderID:    "u_alice",
		StatementID: "ps-01",
		CreatedAt:   s.clock.Now(),
		UpdatedAt:   s.clock.Now(),
	}
	s.Require().NoError(s.storage.CreateTeamIfUnderCap(s.ctx, winner, testCap))

	occupancy, err = s.storage.CountTeamsForStatement(s.ctx, "ps-01")
	s.Require().NoError(err)
	s.Equal(testCap, occupancy)
	s.ErrorIs(s.service.VerifyLock(second.Token, "ps-01", "u_bob", occupancy), model.ErrStatementFull)
}

func (s *ServiceSuite) TestScenarioTTLWindow() {
	// Verify at T0+4min succeeds, at T0+6min fails
	grant := s.issue("ps-01", "u_alice")

	s.clock.Advance(4 * time.Minute)
	s.NoError(s.service.VerifyLock(grant.Token, "ps-01", "u_alice", 0))

	s.clock.Advance(2 * time.Minute)
	s.ErrorIs(s.service.VerifyLock(grant.Token, "ps-01", "u_alice", 0), model.ErrLockExpired)
}
