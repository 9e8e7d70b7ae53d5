// Package insight surfaces backend market insights and narrated briefings.
package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mwhite-io/meridian/internal/common"
	"github.com/mwhite-io/meridian/internal/interfaces"
	"github.com/mwhite-io/meridian/internal/models"
)

// Service lists insights and produces briefings. The Gemini client is
// optional; without it briefings fall back to a plain-text digest.
type Service struct {
	client interfaces.CloudClient
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// NewService creates an insight service. gemini may be nil.
func NewService(client interfaces.CloudClient, gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		client: client,
		gemini: gemini,
		logger: logger,
	}
}

// List retrieves insights, optionally filtered by category.
func (s *Service) List(ctx context.Context, category string) ([]*models.Insight, error) {
	return s.client.ListInsights(ctx, category)
}

// Briefing produces a narrated digest of the current insights and movers.
func (s *Service) Briefing(ctx context.Context) (*models.Briefing, error) {
	insights, err := s.client.ListInsights(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}

	movers, err := s.client.GetMovers(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Briefing: movers unavailable")
	}

	if s.gemini == nil {
		return &models.Briefing{
			GeneratedAt: time.Now(),
			Text:        plainDigest(insights, movers),
		}, nil
	}

	text, err := s.gemini.GenerateContent(ctx, briefingPrompt(insights, movers))
	if err != nil {
		s.logger.Warn().Err(err).Msg("Briefing: AI narration failed, falling back to digest")
		return &models.Briefing{
			GeneratedAt: time.Now(),
			Text:        plainDigest(insights, movers),
		}, nil
	}

	return &models.Briefing{
		GeneratedAt: time.Now(),
		Model:       s.gemini.Model(),
		Text:        text,
	}, nil
}

// briefingPrompt builds the narration prompt from the raw material.
func briefingPrompt(insights []*models.Insight, movers []models.MarketMover) string {
	var sb strings.Builder
	sb.WriteString("You are a portfolio assistant. Write a short market briefing (3-5 paragraphs) ")
	sb.WriteString("from the following insights and price moves. Plain prose, no headings, no advice.\n\n")

	sb.WriteString("Insights:\n")
	for _, in := range insights {
		sb.WriteString(fmt.Sprintf("- [%s] %s: %s\n", in.Category, in.Title, in.Body))
	}

	if len(movers) > 0 {
		sb.WriteString("\nNotable moves:\n")
		for _, m := range movers {
			sb.WriteString(fmt.Sprintf("- %s (%s): %+.2f%%\n", m.Symbol, m.Name, m.ChangePct))
		}
	}

	return sb.String()
}

// plainDigest is the no-AI fallback: a readable bullet digest.
func plainDigest(insights []*models.Insight, movers []models.MarketMover) string {
	var sb strings.Builder

	if len(insights) == 0 && len(movers) == 0 {
		return "No market insights available."
	}

	if len(insights) > 0 {
		sb.WriteString("Market insights:\n")
		for _, in := range insights {
			sb.WriteString(fmt.Sprintf("  • %s", in.Title))
			if in.Sentiment != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", in.Sentiment))
			}
			sb.WriteString("\n")
		}
	}

	if len(movers) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Notable moves:\n")
		for _, m := range movers {
			sb.WriteString(fmt.Sprintf("  • %s %+.2f%%\n", m.Symbol, m.ChangePct))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// Ensure Service implements InsightService
var _ interfaces.InsightService = (*Service)(nil)
