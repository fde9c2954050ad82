package rtbhouse

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultStatsConcurrency bounds how many advertisers are queried at once by
// GetStatsForAdvertisers.
const DefaultStatsConcurrency = 10

// AdvertiserStats pairs an advertiser hash with its stats rows.
type AdvertiserStats struct {
	AdvertiserHash string
	Stats          []Stats
}

// GetStatsForAdvertisers fetches RTB stats for several advertisers
// concurrently over the same client. Results keep the order of hashes. The
// first failing call cancels the rest.
func (c *Client) GetStatsForAdvertisers(ctx context.Context, advHashes []string, params StatsParams) ([]AdvertiserStats, error) {
	if len(advHashes) == 0 {
		return nil, nil
	}
	for _, h := range advHashes {
		if err := validateAdvHash(h); err != nil {
			return nil, err
		}
	}
	if err := params.validate(true); err != nil {
		return nil, err
	}

	results := make([]AdvertiserStats, len(advHashes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultStatsConcurrency)

	for i, advHash := range advHashes {
		i, advHash := i, advHash
		g.Go(func() error {
			stats, err := c.GetRTBStats(ctx, advHash, params)
			if err != nil {
				return err
			}
			results[i] = AdvertiserStats{AdvertiserHash: advHash, Stats: stats}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
