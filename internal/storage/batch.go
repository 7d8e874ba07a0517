package storage

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/ranchgame/internal/model"
)

// MaxBatchSize is the hard ceiling on one generated batch, whatever the caller allows
const MaxBatchSize = 1_000_000

// GenerateBatch calls gen for every index in [0, count) and returns the players in index order.
// Indices are generated concurrently; the first error cancels the rest.
func GenerateBatch(ctx context.Context, gen Generator, count int) ([]*model.Player, error) {
	if count <= 0 || count > MaxBatchSize {
		return nil, model.ErrInvalidCount
	}

	players := make([]*model.Player, count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := gen(i)
			if err != nil {
				return fmt.Errorf("generate player %d: %w", i, err)
			}
			players[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return players, nil
}
