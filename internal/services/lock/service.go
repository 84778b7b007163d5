package lock

import (
	"context"
	"log/slog"
	"time"

	"github.com/founder-srm/foundathon/internal/catalog"
	"github.com/founder-srm/foundathon/internal/dependencies/clock"
	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/storage"
)

// Config holds configuration for the lock service
type Config struct {
	// Secret keys the token MAC. It must be stable across issuance and
	// verification; rotating it invalidates every outstanding token.
	Secret []byte
	// TTL bounds how long an issued lock stays usable
	TTL time.Duration
}

// DefaultConfig returns default lock configuration (secret must still
// be provided by the caller)
func DefaultConfig() Config {
	return Config{
		TTL: 5 * time.Minute,
	}
}

// Grant is a successfully issued lock: the signed token plus the details
// the client needs to proceed to registration
type Grant struct {
	Token     string
	Statement model.ProblemStatement
	// Occupancy is the registration count observed at issuance; purely
	// informational, nothing is reserved
	Occupancy int
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Service issues and verifies problem statement lock tokens.
//
// Issuance is optimistic: it reads occupancy fresh and signs a short-lived
// token, but reserves nothing. More tokens than remaining slots may be
// outstanding at once; the occupancy recheck at verification plus the
// storage layer's conditional insert are what actually hold the cap.
type Service struct {
	catalog *catalog.Catalog
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	cfg Config
}

// New creates a new lock Service
func New(cat *catalog.Catalog, store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Service{
		catalog: cat,
		storage: store,
		clock:   clk,
		logger:  logger,
		cfg:     cfg,
	}
}

// IssueLock decides whether subjectID may lock statementID and, if so,
// mints a signed time-limited token for exactly that pair.
//
// This is a read-then-sign operation with no persisted side effects:
// abandoning the flow just lets the token expire.
func (s *Service) IssueLock(ctx context.Context, statementID model.StatementID, subjectID model.UserID) (*Grant, error) {
	statement, err := s.catalog.Get(statementID)
	if err != nil {
		return nil, err
	}

	occupancy, err := s.storage.CountTeamsForStatement(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if occupancy >= statement.Cap {
		return nil, model.ErrStatementFull
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.TTL)

	claims := Claims{
		StatementID: statementID,
		SubjectID:   subjectID,
		IssuedAt:    now.Unix(),
		ExpiresAt:   expiresAt.Unix(),
	}

	token, err := Encode(claims, s.cfg.Secret)
	if err != nil {
		return nil, err
	}

	s.logger.Info("lock issued",
		slog.String("statement_id", string(statementID)),
		slog.String("subject_id", string(subjectID)),
		slog.Int("occupancy", occupancy),
		slog.Time("expires_at", expiresAt),
	)

	return &Grant{
		Token:     token,
		Statement: statement,
		Occupancy: occupancy,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyLock gates a registration write on a presented token. Checks run
// fail-fast in a fixed order: signature, expiry, claim match, occupancy.
//
// occupancy must be the count read by the caller as close as possible to
// its insert; the final conditional insert in storage closes the remaining
// window. VerifyLock itself performs no writes.
func (s *Service) VerifyLock(token string, statementID model.StatementID, subjectID model.UserID, occupancy int) error {
	claims, err := Decode(token, s.cfg.Secret)
	if err != nil {
		return err
	}

	// Valid strictly before the expiry instant, never at or after it
	if !s.clock.Now().Before(time.Unix(claims.ExpiresAt, 0)) {
		return model.ErrLockExpired
	}

	if claims.StatementID != statementID || claims.SubjectID != subjectID {
		return model.ErrMismatchedClaim
	}

	statement, err := s.catalog.Get(statementID)
	if err != nil {
		return err
	}
	if occupancy >= statement.Cap {
		return model.ErrStatementFull
	}

	return nil
}
