package redis

import (
	"fmt"

	"github.com/founder-srm/foundathon/internal/model"
)

// Key prefix for all registration data
const keyPrefix = "foundathon"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// usersIndexKey returns the Redis key for the SET of all user IDs
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// teamKey returns the Redis key for a Team
func teamKey(id model.TeamID) string {
	return fmt.Sprintf("%s:team:%s", keyPrefix, id)
}

// leaderIndexKey returns the Redis key for the leader -> team_id index
func leaderIndexKey(leaderID model.UserID) string {
	return fmt.Sprintf("%s:idx:leader:%s", keyPrefix, leaderID)
}

// teamsIndexKey returns the Redis key for the SET of all team IDs
func teamsIndexKey() string {
	return fmt.Sprintf("%s:idx:teams", keyPrefix)
}

// statementCountsKey returns the Redis key for the HASH of
// statement_id -> registered team count
func statementCountsKey() string {
	return fmt.Sprintf("%s:counts:statements", keyPrefix)
}

// submissionKey returns the Redis key for a team's Submission
func submissionKey(teamID model.TeamID) string {
	return fmt.Sprintf("%s:submission:%s", keyPrefix, teamID)
}

// submissionsIndexKey returns the Redis key for the SET of team IDs
// that have submitted
func submissionsIndexKey() string {
	return fmt.Sprintf("%s:idx:submissions", keyPrefix)
}
