package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite-io/meridian/internal/interfaces"
	"github.com/mwhite-io/meridian/internal/models"
)

type fakeClient struct {
	interfaces.CloudClient

	created []models.TransactionInput
	failOn  string // symbol that triggers a backend error
}

func (f *fakeClient) CreateTransaction(ctx context.Context, portfolioID string, input models.TransactionInput) (*models.Transaction, error) {
	if f.failOn != "" && input.Symbol == f.failOn {
		return nil, fmt.Errorf("backend rejected %s", input.Symbol)
	}
	f.created = append(f.created, input)
	return &models.Transaction{ID: fmt.Sprintf("tx_%d", len(f.created)), PortfolioID: portfolioID}, nil
}

const sampleCSV = `date,type,symbol,units,price,fees,amount,currency,notes
2025-05-02,buy,BHP,100,42.50,9.95,,AUD,
2025-04-15,dividend,VAS,,,,"187.20",AUD,quarterly distribution
2025-03-01,deposit,,,,,5000,AUD,
`

func TestImportCSV(t *testing.T) {
	client := &fakeClient{}
	svc := NewService(client, nil)

	result, err := svc.ImportCSV(context.Background(), "p_1", []byte(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, client.created, 3)
	assert.Equal(t, "BHP", client.created[0].Symbol)
	assert.Equal(t, models.TxBuy, client.created[0].Type)
	assert.Equal(t, 100.0, client.created[0].Units)
	assert.Equal(t, 187.2, client.created[1].Amount)
	assert.Equal(t, models.TxDeposit, client.created[2].Type)
}

func TestImportCSV_SkipsBadRows(t *testing.T) {
	csv := strings.Join([]string{
		"date,type,symbol,units,price,fees,amount",
		"2025-05-02,buy,BHP,100,42.50,9.95,",
		"2025-05-03,buy,,50,10.00,,",      // missing symbol
		"not-a-date,sell,BHP,10,40.00,,",  // bad date
		"2025-05-04,buy,CSL,abc,300.00,,", // bad units
	}, "\n")

	client := &fakeClient{}
	svc := NewService(client, nil)

	result, err := svc.ImportCSV(context.Background(), "p_1", []byte(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	assert.Len(t, result.Errors, 3)
}

func TestImportCSV_BackendErrorsAreSkips(t *testing.T) {
	client := &fakeClient{failOn: "BHP"}
	svc := NewService(client, nil)

	result, err := svc.ImportCSV(context.Background(), "p_1", []byte(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "backend rejected BHP")
}

func TestImportCSV_BadHeader(t *testing.T) {
	svc := NewService(&fakeClient{}, nil)
	_, err := svc.ImportCSV(context.Background(), "p_1", []byte("foo,bar\n1,2\n"))
	assert.ErrorContains(t, err, "unexpected CSV header")
}

func TestImportCSV_Empty(t *testing.T) {
	svc := NewService(&fakeClient{}, nil)
	_, err := svc.ImportCSV(context.Background(), "p_1", nil)
	assert.ErrorContains(t, err, "empty CSV")
}

func TestParseStatementLine_Trade(t *testing.T) {
	input, matched, err := parseStatementLine("02/05/2025 BUY BHP 100 @ 42.50 Fee 9.95")
	require.NoError(t, err)
	require.True(t, matched)
	assert.Equal(t, "2025-05-02", input.TradeDate)
	assert.Equal(t, models.TxBuy, input.Type)
	assert.Equal(t, "BHP", input.Symbol)
	assert.Equal(t, 100.0, input.Units)
	assert.Equal(t, 42.5, input.Price)
	assert.Equal(t, 9.95, input.Fees)
}

func TestParseStatementLine_SellWithoutFee(t *testing.T) {
	input, matched, err := parseStatementLine("28/02/2025 SELL VAS 25 @ $98.10")
	require.NoError(t, err)
	require.True(t, matched)
	assert.Equal(t, models.TxSell, input.Type)
	assert.Equal(t, 25.0, input.Units)
	assert.Equal(t, 98.1, input.Price)
	assert.Zero(t, input.Fees)
}

func TestParseStatementLine_Dividend(t *testing.T) {
	input, matched, err := parseStatementLine("15/04/2025 DIV VAS 187.20")
	require.NoError(t, err)
	require.True(t, matched)
	assert.Equal(t, models.TxDividend, input.Type)
	assert.Equal(t, "VAS", input.Symbol)
	assert.Equal(t, 187.2, input.Amount)
}

func TestParseStatementLine_IgnoresNoise(t *testing.T) {
	for _, line := range []string{
		"STATEMENT OF ACCOUNT",
		"Opening balance 12,000.00",
		"Page 3 of 7",
	} {
		_, matched, err := parseStatementLine(line)
		require.NoError(t, err)
		assert.False(t, matched, "line %q should not match", line)
	}
}

func TestParseStatementText(t *testing.T) {
	text := strings.Join([]string{
		"BROKER STATEMENT MAY 2025",
		"02/05/2025 BUY BHP 100 @ 42.50 Fee 9.95",
		"",
		"15/04/2025 DIV VAS 187.20",
		"Closing balance 18,450.00",
	}, "\n")

	inputs, errs := parseStatementText(text)
	assert.Empty(t, errs)
	require.Len(t, inputs, 2)
	assert.Equal(t, "BHP", inputs[0].Symbol)
	assert.Equal(t, models.TxDividend, inputs[1].Type)
}
