package reporting

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Source is anything that serves rows and stats for a set of filters
type Source interface {
	GetRows(ctx context.Context, f Filters) (*RowsResponse, error)
	GetStats(ctx context.Context, f Filters) (*Stats, error)
}

// Fetch requests the rows and the stats for the filters concurrently. The
// first failure cancels the other request.
func Fetch(ctx context.Context, src Source, f Filters) (*RowsResponse, *Stats, error) {
	var rows *RowsResponse
	var stats *Stats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = src.GetStats(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		rows, err = src.GetRows(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rows, stats, nil
}
