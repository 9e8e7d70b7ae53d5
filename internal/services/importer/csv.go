package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwhite-io/meridian/internal/models"
)

// csvColumns is the expected header. Column order is fixed; trailing columns
// may be omitted per row.
var csvColumns = []string{"date", "type", "symbol", "units", "price", "fees", "amount", "currency", "notes"}

// parseCSV parses a broker CSV export into transaction inputs. Rows that fail
// to parse are reported as errors keyed by line number; parsing continues.
func parseCSV(data []byte) ([]models.TransactionInput, []string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty CSV file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, nil, err
	}

	var inputs []models.TransactionInput
	var errors []string

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			errors = append(errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		input, err := parseCSVRow(record)
		if err != nil {
			errors = append(errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		inputs = append(inputs, input)
	}

	return inputs, errors, nil
}

func checkHeader(header []string) error {
	if len(header) < 3 {
		return fmt.Errorf("unexpected CSV header: want columns %s", strings.Join(csvColumns, ","))
	}
	for i, want := range csvColumns[:3] {
		got := strings.ToLower(strings.TrimSpace(header[i]))
		if got != want {
			return fmt.Errorf("unexpected CSV header: column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func parseCSVRow(record []string) (models.TransactionInput, error) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	input := models.TransactionInput{
		TradeDate: field(0),
		Type:      strings.ToLower(field(1)),
		Symbol:    strings.ToUpper(field(2)),
		Currency:  strings.ToUpper(field(7)),
		Notes:     field(8),
	}

	var err error
	if input.Units, err = parseFloatField(field(3)); err != nil {
		return input, fmt.Errorf("units: %w", err)
	}
	if input.Price, err = parseFloatField(field(4)); err != nil {
		return input, fmt.Errorf("price: %w", err)
	}
	if input.Fees, err = parseFloatField(field(5)); err != nil {
		return input, fmt.Errorf("fees: %w", err)
	}
	if input.Amount, err = parseFloatField(field(6)); err != nil {
		return input, fmt.Errorf("amount: %w", err)
	}

	return input, nil
}

// parseFloatField parses numeric CSV fields, tolerating blanks, currency
// symbols and thousands separators ("$1,234.50").
func parseFloatField(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
