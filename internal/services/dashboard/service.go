// Package dashboard aggregates backend data into the gateway's home view.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mwhite-io/meridian/internal/common"
	"github.com/mwhite-io/meridian/internal/interfaces"
)

// Service builds dashboard snapshots and renders chart images. The snapshot
// is cached so the background scheduler, CLI and HTTP surface share one
// backend fetch per interval.
type Service struct {
	client       interfaces.CloudClient
	logger       *common.Logger
	defaultRange string
	ttl          time.Duration

	mu        sync.RWMutex
	snapshot  *interfaces.DashboardSnapshot
	fetchedAt time.Time
}

// NewService creates a dashboard service. ttl bounds how long a cached
// snapshot is served before a fresh fetch.
func NewService(client interfaces.CloudClient, logger *common.Logger, defaultRange string, ttl time.Duration) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{
		client:       client,
		logger:       logger,
		defaultRange: defaultRange,
		ttl:          ttl,
	}
}

// Snapshot returns the aggregated dashboard view. A cached snapshot younger
// than the TTL is returned unless force is set.
func (s *Service) Snapshot(ctx context.Context, force bool) (*interfaces.DashboardSnapshot, error) {
	s.mu.RLock()
	cached, fetchedAt := s.snapshot, s.fetchedAt
	s.mu.RUnlock()

	if !force && cached != nil && time.Since(fetchedAt) < s.ttl {
		return cached, nil
	}

	start := time.Now()

	portfolios, err := s.client.ListPortfolios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	snap := &interfaces.DashboardSnapshot{
		Portfolios:  portfolios,
		RefreshedAt: time.Now().UTC().Format(time.RFC3339),
	}

	// Headline analytics for the first portfolio. Movers and summary are
	// decorations: a failure degrades the view, it doesn't fail it.
	if len(portfolios) > 0 {
		summary, err := s.client.GetAnalyticsSummary(ctx, portfolios[0].ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("portfolio", portfolios[0].ID).Msg("Dashboard: analytics summary unavailable")
		} else {
			snap.Summary = summary
		}
	}

	movers, err := s.client.GetMovers(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Dashboard: movers unavailable")
	} else {
		snap.Movers = movers
	}

	s.mu.Lock()
	s.snapshot = snap
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.logger.Debug().
		Int("portfolios", len(portfolios)).
		Dur("elapsed", time.Since(start)).
		Msg("Dashboard snapshot refreshed")

	return snap, nil
}

// PerformanceChart renders the portfolio value series as a PNG.
func (s *Service) PerformanceChart(ctx context.Context, portfolioID, rng string) ([]byte, error) {
	if rng == "" {
		rng = s.defaultRange
	}
	points, err := s.client.GetPerformance(ctx, portfolioID, rng)
	if err != nil {
		return nil, err
	}
	return RenderPerformanceChart(points)
}

// BenchmarkChart renders the portfolio-vs-benchmark comparison as a PNG.
func (s *Service) BenchmarkChart(ctx context.Context, portfolioID, benchmarkID, rng string) ([]byte, error) {
	if rng == "" {
		rng = s.defaultRange
	}
	cmp, err := s.client.CompareBenchmark(ctx, portfolioID, benchmarkID, rng)
	if err != nil {
		return nil, err
	}
	return RenderBenchmarkChart(cmp)
}

// Ensure Service implements DashboardService
var _ interfaces.DashboardService = (*Service)(nil)
