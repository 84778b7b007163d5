package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/storage"
)

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
	cfg  Config
}

// New creates a new Postgres storage instance and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Storage{pool: pool, cfg: cfg}, nil
}

// NewWithPool creates a Postgres storage with an existing pool (for testing)
func NewWithPool(pool *pgxpool.Pool, cfg Config) *Storage {
	return &Storage{pool: pool, cfg: cfg}
}

// Close closes the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, is_admin, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE
		 SET email = $2, name = $3, password_hash = $4, is_admin = $5`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.IsAdmin, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrEmailExists
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, is_admin, created_at
		 FROM users WHERE id = $1`, id))
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, is_admin, created_at
		 FROM users WHERE email = $1`, email))
}

func (s *Storage) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// Team operations

// CreateTeamIfUnderCap serialises concurrent registrations for a statement
// with a row-level lock on its counter row (SELECT ... FOR UPDATE), so the
// occupancy check and the insert commit atomically.
func (s *Storage) CreateTeamIfUnderCap(ctx context.Context, team *model.Team, cap int) (err error) {
	members, err := json.Marshal(team.Members)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Seed the counter row so FOR UPDATE has something to lock
	_, err = tx.Exec(ctx,
		`INSERT INTO statement_counts (statement_id, team_count)
		 VALUES ($1, 0)
		 ON CONFLICT (statement_id) DO NOTHING`,
		team.StatementID,
	)
	if err != nil {
		return fmt.Errorf("seed statement count: %w", err)
	}

	var occupancy int
	err = tx.QueryRow(ctx,
		`SELECT team_count FROM statement_counts
		 WHERE statement_id = $1
		 FOR UPDATE`,
		team.StatementID,
	).Scan(&occupancy)
	if err != nil {
		return fmt.Errorf("lock statement count: %w", err)
	}

	var leaderTeams int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM teams WHERE leader_id = $1`,
		team.LeaderID,
	).Scan(&leaderTeams)
	if err != nil {
		return fmt.Errorf("check leader: %w", err)
	}
	if leaderTeams > 0 {
		return model.ErrAlreadyRegistered
	}

	if occupancy >= cap {
		return model.ErrStatementFull
	}

	_, err = tx.Exec(ctx,
		`UPDATE statement_counts SET team_count = team_count + 1
		 WHERE statement_id = $1`,
		team.StatementID,
	)
	if err != nil {
		return fmt.Errorf("increment statement count: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO teams (id, name, college, leader_id, statement_id, members, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		team.ID, team.Name, team.College, team.LeaderID, team.StatementID, members,
		team.CreatedAt, team.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.ErrAlreadyRegistered
		}
		return fmt.Errorf("insert team: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	members, err := json.Marshal(team.Members)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE teams SET name = $2, college = $3, members = $4, updated_at = $5
		 WHERE id = $1`,
		team.ID, team.Name, team.College, members, team.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save team: %w", err)
	}
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	return s.scanTeam(s.pool.QueryRow(ctx,
		`SELECT id, name, college, leader_id, statement_id, members, created_at, updated_at
		 FROM teams WHERE id = $1`, id))
}

func (s *Storage) GetTeamByLeader(ctx context.Context, leaderID model.UserID) (*model.Team, error) {
	return s.scanTeam(s.pool.QueryRow(ctx,
		`SELECT id, name, college, leader_id, statement_id, members, created_at, updated_at
		 FROM teams WHERE leader_id = $1`, leaderID))
}

func (s *Storage) scanTeam(row pgx.Row) (*model.Team, error) {
	var t model.Team
	var members []byte
	err := row.Scan(&t.ID, &t.Name, &t.College, &t.LeaderID, &t.StatementID, &members,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrTeamNotFound
		}
		return nil, fmt.Errorf("scan team: %w", err)
	}
	if err := json.Unmarshal(members, &t.Members); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	return &t, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, college, leader_id, statement_id, members, created_at, updated_at
		 FROM teams ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []*model.Team
	for rows.Next() {
		team, err := s.scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *Storage) CountTeamsForStatement(ctx context.Context, id model.StatementID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM teams WHERE statement_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	return count, nil
}

func (s *Storage) CountTeamsByStatement(ctx context.Context) (map[model.StatementID]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT statement_id, COUNT(*) FROM teams GROUP BY statement_id`)
	if err != nil {
		return nil, fmt.Errorf("count teams by statement: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.StatementID]int)
	for rows.Next() {
		var id model.StatementID
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

// Submission operations

func (s *Storage) SaveSubmission(ctx context.Context, sub *model.Submission) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO submissions (team_id, title, deck_url, submitted_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (team_id) DO UPDATE
		 SET title = $2, deck_url = $3, updated_at = $5`,
		sub.TeamID, sub.Title, sub.DeckURL, sub.SubmittedAt, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

func (s *Storage) GetSubmission(ctx context.Context, teamID model.TeamID) (*model.Submission, error) {
	var sub model.Submission
	err := s.pool.QueryRow(ctx,
		`SELECT team_id, title, deck_url, submitted_at, updated_at
		 FROM submissions WHERE team_id = $1`, teamID,
	).Scan(&sub.TeamID, &sub.Title, &sub.DeckURL, &sub.SubmittedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &sub, nil
}

func (s *Storage) CountSubmissions(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return count, nil
}
