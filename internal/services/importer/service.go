// Package importer parses broker exports into transactions and pushes them
// to the backend.
package importer

import (
	"context"
	"fmt"

	"github.com/mwhite-io/meridian/internal/common"
	"github.com/mwhite-io/meridian/internal/interfaces"
	"github.com/mwhite-io/meridian/internal/models"
)

// Service imports transactions from CSV files and broker statement PDFs.
type Service struct {
	client interfaces.CloudClient
	logger *common.Logger
}

// NewService creates an import service.
func NewService(client interfaces.CloudClient, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		client: client,
		logger: logger,
	}
}

// ImportCSV parses a CSV export and records each valid row against the
// portfolio. Bad rows are skipped and reported, not fatal.
func (s *Service) ImportCSV(ctx context.Context, portfolioID string, data []byte) (*interfaces.ImportResult, error) {
	inputs, parseErrors, err := parseCSV(data)
	if err != nil {
		return nil, err
	}
	return s.push(ctx, portfolioID, inputs, parseErrors)
}

// ImportPDF extracts transaction lines from a broker statement PDF and
// records them against the portfolio.
func (s *Service) ImportPDF(ctx context.Context, portfolioID string, path string) (*interfaces.ImportResult, error) {
	text, err := extractPDFText(path)
	if err != nil {
		return nil, err
	}

	inputs, parseErrors := parseStatementText(text)
	if len(inputs) == 0 && len(parseErrors) == 0 {
		return nil, fmt.Errorf("no transaction lines found in %s", path)
	}

	return s.push(ctx, portfolioID, inputs, parseErrors)
}

// push validates and records parsed inputs one at a time, accumulating
// per-row outcomes into the result.
func (s *Service) push(ctx context.Context, portfolioID string, inputs []models.TransactionInput, parseErrors []string) (*interfaces.ImportResult, error) {
	result := &interfaces.ImportResult{
		Skipped: len(parseErrors),
		Errors:  parseErrors,
	}

	for i := range inputs {
		input := &inputs[i]

		if err := input.Validate(); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", input.TradeDate, input.Symbol, err))
			continue
		}

		if _, err := s.client.CreateTransaction(ctx, portfolioID, *input); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s %s: %v", input.TradeDate, input.Symbol, err))
			continue
		}

		result.Imported++
	}

	s.logger.Info().
		Str("portfolio", portfolioID).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("Import complete")

	return result, nil
}

// Ensure Service implements ImportService
var _ interfaces.ImportService = (*Service)(nil)
