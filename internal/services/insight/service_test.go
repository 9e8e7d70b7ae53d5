package insight

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite-io/meridian/internal/interfaces"
	"github.com/mwhite-io/meridian/internal/models"
)

type fakeClient struct {
	interfaces.CloudClient

	insights []*models.Insight
	movers   []models.MarketMover
	listErr  error
}

func (f *fakeClient) ListInsights(ctx context.Context, category string) ([]*models.Insight, error) {
	return f.insights, f.listErr
}

func (f *fakeClient) GetMovers(ctx context.Context) ([]models.MarketMover, error) {
	if f.movers == nil {
		return nil, fmt.Errorf("movers unavailable")
	}
	return f.movers, nil
}

type fakeGemini struct {
	text string
	err  error
}

func (f *fakeGemini) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func (f *fakeGemini) Model() string { return "gemini-test" }
func (f *fakeGemini) Close() error  { return nil }

func sampleData() ([]*models.Insight, []models.MarketMover) {
	insights := []*models.Insight{
		{Title: "Banks rally on rate pause", Category: "sector", Sentiment: "positive"},
		{Title: "Iron ore softens", Category: "market", Sentiment: "negative"},
	}
	movers := []models.MarketMover{
		{Symbol: "CBA", Name: "Commonwealth Bank", ChangePct: 2.4},
		{Symbol: "FMG", Name: "Fortescue", ChangePct: -3.1},
	}
	return insights, movers
}

func TestBriefing_WithGemini(t *testing.T) {
	insights, movers := sampleData()
	client := &fakeClient{insights: insights, movers: movers}
	svc := NewService(client, &fakeGemini{text: "Markets were mixed today."}, nil)

	briefing, err := svc.Briefing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Markets were mixed today.", briefing.Text)
	assert.Equal(t, "gemini-test", briefing.Model)
	assert.False(t, briefing.GeneratedAt.IsZero())
}

func TestBriefing_FallsBackWithoutGemini(t *testing.T) {
	insights, movers := sampleData()
	svc := NewService(&fakeClient{insights: insights, movers: movers}, nil, nil)

	briefing, err := svc.Briefing(context.Background())
	require.NoError(t, err)
	assert.Empty(t, briefing.Model)
	assert.Contains(t, briefing.Text, "Banks rally on rate pause")
	assert.Contains(t, briefing.Text, "CBA +2.40%")
}

func TestBriefing_FallsBackWhenGeminiFails(t *testing.T) {
	insights, movers := sampleData()
	client := &fakeClient{insights: insights, movers: movers}
	svc := NewService(client, &fakeGemini{err: fmt.Errorf("quota exhausted")}, nil)

	briefing, err := svc.Briefing(context.Background())
	require.NoError(t, err)
	assert.Empty(t, briefing.Model)
	assert.Contains(t, briefing.Text, "Iron ore softens")
}

func TestBriefing_InsightFailureIsFatal(t *testing.T) {
	svc := NewService(&fakeClient{listErr: fmt.Errorf("backend down")}, nil, nil)
	_, err := svc.Briefing(context.Background())
	assert.ErrorContains(t, err, "failed to list insights")
}

func TestBriefing_EmptyData(t *testing.T) {
	svc := NewService(&fakeClient{movers: []models.MarketMover{}}, nil, nil)
	briefing, err := svc.Briefing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No market insights available.", briefing.Text)
}

func TestBriefingPrompt_IncludesMaterial(t *testing.T) {
	insights, movers := sampleData()
	prompt := briefingPrompt(insights, movers)
	assert.Contains(t, prompt, "Banks rally on rate pause")
	assert.Contains(t, prompt, "FMG")
	assert.Contains(t, prompt, "-3.10%")
}
