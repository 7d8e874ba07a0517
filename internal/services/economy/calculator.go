package economy

import (
	"fmt"

	"github.com/mcoot/ranchgame/internal/model"
)

const (
	// TradePoints is the reward for a pair's first trade
	TradePoints = 800
	// TradePointsDivisor divides the previous reward on every repeat trade
	TradePointsDivisor = 2
	// TradePointsMin is the floor the reward never decays below
	TradePointsMin = 50
)

// NextResource computes the resource the next trade awards.
// The amount halves (rounding up) on each repeat trade and bottoms out at TradePointsMin;
// the trait comes from the ranch.
func NextResource(ranch model.Ranch, lastTrade *model.Trade) (model.Resource, error) {
	trait, err := ranch.Trait()
	if err != nil {
		return model.Resource{}, fmt.Errorf("resolve trait for ranch %q: %w", ranch, err)
	}

	amount := TradePoints
	if lastTrade != nil {
		amount = max(ceilDiv(lastTrade.Resource.Amount, TradePointsDivisor), TradePointsMin)
	}

	return model.Resource{Amount: amount, Trait: trait}, nil
}

// ceilDiv divides rounding toward positive infinity
func ceilDiv(a, d int) int {
	q := a / d
	if a%d != 0 && (a > 0) == (d > 0) {
		q++
	}
	return q
}
