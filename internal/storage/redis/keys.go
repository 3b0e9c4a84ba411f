package redis

import (
	"fmt"

	"github.com/heartquiz/heartgame-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "heartgame"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// scoreRecordsKey returns the Redis key for a user's append-only score log
func scoreRecordsKey(id model.UserID) string {
	return fmt.Sprintf("%s:scores:%s", keyPrefix, id)
}

// aggregateKey returns the Redis key for a UserAggregate
func aggregateKey(id model.UserID) string {
	return fmt.Sprintf("%s:aggregate:%s", keyPrefix, id)
}

// leaderboardKey returns the Redis key for the highest-score sorted set
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}
