package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite-io/meridian/internal/interfaces"
	"github.com/mwhite-io/meridian/internal/models"
)

// fakeClient overrides just the CloudClient methods a test exercises.
type fakeClient struct {
	interfaces.CloudClient

	listCalls  int
	portfolios []*models.Portfolio
	listErr    error

	summary *models.AnalyticsSummary
	movers  []models.MarketMover

	performance []models.PerformancePoint
	comparison  *models.BenchmarkComparison
}

func (f *fakeClient) ListPortfolios(ctx context.Context) ([]*models.Portfolio, error) {
	f.listCalls++
	return f.portfolios, f.listErr
}

func (f *fakeClient) GetAnalyticsSummary(ctx context.Context, portfolioID string) (*models.AnalyticsSummary, error) {
	if f.summary == nil {
		return nil, fmt.Errorf("summary unavailable")
	}
	return f.summary, nil
}

func (f *fakeClient) GetMovers(ctx context.Context) ([]models.MarketMover, error) {
	if f.movers == nil {
		return nil, fmt.Errorf("movers unavailable")
	}
	return f.movers, nil
}

func (f *fakeClient) GetPerformance(ctx context.Context, portfolioID, rng string) ([]models.PerformancePoint, error) {
	return f.performance, nil
}

func (f *fakeClient) CompareBenchmark(ctx context.Context, portfolioID, benchmarkID, rng string) (*models.BenchmarkComparison, error) {
	return f.comparison, nil
}

func TestSnapshot_AggregatesBackendData(t *testing.T) {
	client := &fakeClient{
		portfolios: []*models.Portfolio{{ID: "p_1", Name: "Growth"}},
		summary:    &models.AnalyticsSummary{TotalValue: 125000},
		movers:     []models.MarketMover{{Symbol: "BHP", ChangePct: 3.2}},
	}
	svc := NewService(client, nil, "1Y", time.Minute)

	snap, err := svc.Snapshot(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, snap.Portfolios, 1)
	assert.Equal(t, 125000.0, snap.Summary.TotalValue)
	assert.Len(t, snap.Movers, 1)
	assert.NotEmpty(t, snap.RefreshedAt)
}

func TestSnapshot_DegradesWhenDecorationsFail(t *testing.T) {
	client := &fakeClient{
		portfolios: []*models.Portfolio{{ID: "p_1"}},
		// summary and movers unset: both calls fail
	}
	svc := NewService(client, nil, "1Y", time.Minute)

	snap, err := svc.Snapshot(context.Background(), false)
	require.NoError(t, err)
	assert.Nil(t, snap.Summary)
	assert.Nil(t, snap.Movers)
	assert.Len(t, snap.Portfolios, 1)
}

func TestSnapshot_PortfolioFailureIsFatal(t *testing.T) {
	client := &fakeClient{listErr: fmt.Errorf("backend down")}
	svc := NewService(client, nil, "1Y", time.Minute)

	_, err := svc.Snapshot(context.Background(), false)
	assert.ErrorContains(t, err, "failed to list portfolios")
}

func TestSnapshot_CachedWithinTTL(t *testing.T) {
	client := &fakeClient{portfolios: []*models.Portfolio{{ID: "p_1"}}, summary: &models.AnalyticsSummary{}, movers: []models.MarketMover{}}
	svc := NewService(client, nil, "1Y", time.Hour)

	_, err := svc.Snapshot(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.Snapshot(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, client.listCalls, "second call within TTL must hit the cache")

	_, err = svc.Snapshot(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, client.listCalls, "force bypasses the cache")
}

func testPoints(n int) []models.PerformancePoint {
	points := make([]models.PerformancePoint, n)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range points {
		points[i] = models.PerformancePoint{
			Date:  base.AddDate(0, 0, i*7),
			Value: 100000 + float64(i)*1500,
			Cost:  100000,
		}
	}
	return points
}

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestRenderPerformanceChart(t *testing.T) {
	png, err := RenderPerformanceChart(testPoints(12))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader), "output should be a PNG")
}

func TestRenderPerformanceChart_TooFewPoints(t *testing.T) {
	_, err := RenderPerformanceChart(testPoints(1))
	assert.ErrorContains(t, err, "at least 2 data points")
}

func TestRenderBenchmarkChart(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cmp := &models.BenchmarkComparison{
		BenchmarkName: "ASX 200",
		Range:         "1Y",
	}
	for i := 0; i < 10; i++ {
		cmp.Points = append(cmp.Points, models.ComparisonPoint{
			Date:           base.AddDate(0, 0, i*30),
			PortfolioIndex: 100 + float64(i)*2,
			BenchmarkIndex: 100 + float64(i)*1.2,
		})
	}

	png, err := RenderBenchmarkChart(cmp)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader), "output should be a PNG")
}

func TestPerformanceChartService(t *testing.T) {
	client := &fakeClient{performance: testPoints(8)}
	svc := NewService(client, nil, "1Y", time.Minute)

	png, err := svc.PerformanceChart(context.Background(), "p_1", "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}
