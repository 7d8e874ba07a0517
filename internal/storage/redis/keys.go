package redis

import (
	"fmt"

	"github.com/mcoot/ranchgame/internal/model"
)

// Key prefix for all ranch data
const keyPrefix = "ranchgame"

// playerKey returns the Redis key for a player record
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// keyIndexKey returns the Redis key for the player key -> player_id index
func keyIndexKey(key string) string {
	return fmt.Sprintf("%s:idx:key:%s", keyPrefix, key)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// leaderboardKey returns the Redis key for the ZSET of player ids scored by points
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}

// bootstrappedKey returns the Redis key for the bootstrap marker
func bootstrappedKey() string {
	return fmt.Sprintf("%s:bootstrapped", keyPrefix)
}

// tradesKey returns the Redis key for the LIST of trades from one player id to another, newest first
func tradesKey(from, to model.PlayerID) string {
	return fmt.Sprintf("%s:trades:%s:%s", keyPrefix, from, to)
}
