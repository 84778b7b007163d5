package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/founder-srm/foundathon/internal/model"
	"github.com/founder-srm/foundathon/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	pipe.SAdd(ctx, usersIndexKey(), string(user.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	userIDStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userIDStr))
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	count, err := s.client.SCard(ctx, usersIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Team operations

// CreateTeamIfUnderCap performs the occupancy check and insert as an
// optimistic WATCH transaction: if another registration for any statement
// commits between the check and EXEC, the transaction aborts and is retried
// against the fresh count.
func (s *Storage) CreateTeamIfUnderCap(ctx context.Context, team *model.Team, cap int) error {
	data, err := json.Marshal(team)
	if err != nil {
		return err
	}

	txn := func(tx *redis.Tx) error {
		// Leader may only register one team
		_, err := tx.Get(ctx, leaderIndexKey(team.LeaderID)).Result()
		if err == nil {
			return model.ErrAlreadyRegistered
		}
		if !errors.Is(err, redis.Nil) {
			return err
		}

		occupancyStr, err := tx.HGet(ctx, statementCountsKey(), string(team.StatementID)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		occupancy := 0
		if err == nil {
			occupancy, err = strconv.Atoi(occupancyStr)
			if err != nil {
				return err
			}
		}
		if occupancy >= cap {
			return model.ErrStatementFull
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, teamKey(team.ID), data, 0)
			pipe.Set(ctx, leaderIndexKey(team.LeaderID), string(team.ID), 0)
			pipe.SAdd(ctx, teamsIndexKey(), string(team.ID))
			pipe.HIncrBy(ctx, statementCountsKey(), string(team.StatementID), 1)
			return nil
		})
		return err
	}

	retries := s.cfg.MaxTxRetries
	if retries <= 0 {
		retries = DefaultConfig().MaxTxRetries
	}

	for i := 0; i < retries; i++ {
		err := s.client.Watch(ctx, txn, statementCountsKey(), leaderIndexKey(team.LeaderID))
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return redis.TxFailedErr
}

// SaveTeam updates an existing team. It does not touch the statement
// counts hash; registration goes through CreateTeamIfUnderCap.
func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	data, err := json.Marshal(team)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, teamKey(team.ID), data, 0)
	pipe.Set(ctx, leaderIndexKey(team.LeaderID), string(team.ID), 0)
	pipe.SAdd(ctx, teamsIndexKey(), string(team.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	data, err := s.client.Get(ctx, teamKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}

	var team model.Team
	if err := json.Unmarshal(data, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Storage) GetTeamByLeader(ctx context.Context, leaderID model.UserID) (*model.Team, error) {
	teamIDStr, err := s.client.Get(ctx, leaderIndexKey(leaderID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTeamNotFound
		}
		return nil, err
	}

	return s.GetTeam(ctx, model.TeamID(teamIDStr))
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	teamIDs, err := s.client.SMembers(ctx, teamsIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	teams := make([]*model.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		team, err := s.GetTeam(ctx, model.TeamID(id))
		if err != nil {
			if errors.Is(err, model.ErrTeamNotFound) {
				continue
			}
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (s *Storage) CountTeamsForStatement(ctx context.Context, id model.StatementID) (int, error) {
	countStr, err := s.client.HGet(ctx, statementCountsKey(), string(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.Atoi(countStr)
}

func (s *Storage) CountTeamsByStatement(ctx context.Context) (map[model.StatementID]int, error) {
	raw, err := s.client.HGetAll(ctx, statementCountsKey()).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[model.StatementID]int, len(raw))
	for id, countStr := range raw {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, err
		}
		counts[model.StatementID(id)] = count
	}
	return counts, nil
}

// Submission operations

func (s *Storage) SaveSubmission(ctx context.Context, sub *model.Submission) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, submissionKey(sub.TeamID), data, 0)
	pipe.SAdd(ctx, submissionsIndexKey(), string(sub.TeamID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSubmission(ctx context.Context, teamID model.TeamID) (*model.Submission, error) {
	data, err := s.client.Get(ctx, submissionKey(teamID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSubmissionNotFound
		}
		return nil, err
	}

	var sub model.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *Storage) CountSubmissions(ctx context.Context) (int, error) {
	count, err := s.client.SCard(ctx, submissionsIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
