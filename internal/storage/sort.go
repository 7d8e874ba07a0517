package storage

import (
	"sort"

	"github.com/mcoot/ranchgame/internal/model"
)

// SortByPoints orders players for the leaderboard: most points first, ties broken by username then key
func SortByPoints(players []*model.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Username != b.Username {
			return a.Username < b.Username
		}
		return a.Key < b.Key
	})
}
