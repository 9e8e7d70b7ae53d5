package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/mwhite-io/meridian/internal/models"
)

const maxPDFTextLen = 200000

// extractPDFText extracts the plain text of a broker statement PDF.
func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	totalPages := r.NumPage()

	for i := 1; i <= totalPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")

		if sb.Len() > maxPDFTextLen {
			break
		}
	}

	return sb.String(), nil
}

// Statement line patterns, compiled once.
//
// Trades:    02/05/2025 BUY BHP 100 @ 42.50 Fee 9.95
// Dividends: 15/04/2025 DIV VAS 187.20
var (
	tradeLinePattern = regexp.MustCompile(`(?i)^(\d{2}/\d{2}/\d{4})\s+(BUY|SELL)\s+([A-Z0-9.]+)\s+([\d,]+(?:\.\d+)?)\s*@\s*\$?([\d,]+\.?\d*)(?:\s+Fee\s+\$?([\d,]+\.?\d*))?`)
	divLinePattern   = regexp.MustCompile(`(?i)^(\d{2}/\d{2}/\d{4})\s+DIV(?:IDEND)?\s+([A-Z0-9.]+)\s+\$?([\d,]+\.?\d*)`)
)

// parseStatementText scans statement text for trade and dividend lines.
// Unrecognized lines are ignored; malformed dates on matched lines are
// reported as errors.
func parseStatementText(text string) ([]models.TransactionInput, []string) {
	var inputs []models.TransactionInput
	var errors []string

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		input, matched, err := parseStatementLine(line)
		if err != nil {
			errors = append(errors, err.Error())
			continue
		}
		if !matched {
			continue
		}

		inputs = append(inputs, input)
	}

	return inputs, errors
}

// parseStatementLine parses one statement line. matched is false when the
// line is not a transaction line at all.
func parseStatementLine(line string) (models.TransactionInput, bool, error) {
	if m := tradeLinePattern.FindStringSubmatch(line); m != nil {
		date, err := parseStatementDate(m[1])
		if err != nil {
			return models.TransactionInput{}, false, fmt.Errorf("line %q: %v", line, err)
		}

		units, _ := parseFloatField(m[4])
		price, _ := parseFloatField(m[5])
		fees, _ := parseFloatField(m[6])

		return models.TransactionInput{
			TradeDate: date,
			Type:      strings.ToLower(m[2]),
			Symbol:    strings.ToUpper(m[3]),
			Units:     units,
			Price:     price,
			Fees:      fees,
		}, true, nil
	}

	if m := divLinePattern.FindStringSubmatch(line); m != nil {
		date, err := parseStatementDate(m[1])
		if err != nil {
			return models.TransactionInput{}, false, fmt.Errorf("line %q: %v", line, err)
		}

		amount, _ := parseFloatField(m[3])

		return models.TransactionInput{
			TradeDate: date,
			Type:      models.TxDividend,
			Symbol:    strings.ToUpper(m[2]),
			Amount:    amount,
		}, true, nil
	}

	return models.TransactionInput{}, false, nil
}

// parseStatementDate converts a DD/MM/YYYY statement date to YYYY-MM-DD.
func parseStatementDate(s string) (string, error) {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q", s)
	}
	return t.Format("2006-01-02"), nil
}
