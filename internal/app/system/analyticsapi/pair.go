package analyticsapi

import (
	"context"

	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/system/periods"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// PairResult holds both sides of a comparison.
type PairResult struct {
	Current  models.PeriodMetrics
	Previous models.PeriodMetrics
}

// Pair fetches both periods of cmp concurrently. The first failure cancels the other fetch.
func (c *Client) Pair(ctx context.Context, cmp periods.Comparison) (PairResult, error) {
	var res PairResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := c.Period(gctx, cmp.Current)
		res.Current = m
		return err
	})
	g.Go(func() error {
		m, err := c.Period(gctx, cmp.Previous)
		res.Previous = m
		return err
	})

	if err := g.Wait(); err != nil {
		return PairResult{}, err
	}
	return res, nil
}
