// Package statement reads brokerage transaction exports into model rows.
package statement

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/the-profit-must-flow/internal/common"
	"github.com/Veraticus/the-profit-must-flow/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser implements CSV export parsing.
type Parser struct{}

// NewParser creates a new export parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a headerless export. The first row is a placeholder and is
// discarded. Short rows are padded with empty fields; rows with more than
// model.ColumnCount fields are rejected.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) (model.TransactionSet, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	r := csv.NewReader(bytes.NewReader(content))
	// Column count is checked per row below so the error names the line.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var (
		rows model.TransactionSet
		line int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		line++
		if line == 1 {
			continue
		}
		if len(record) > model.ColumnCount {
			return nil, fmt.Errorf("line %d: %w: expected at most %d, got %d",
				line, common.ErrColumnCount, model.ColumnCount, len(record))
		}
		rows = append(rows, model.RowFromFields(padFields(record)))
	}

	if line == 0 {
		return nil, common.ErrEmptyFile
	}

	slog.Info("Parsed transaction export",
		"rows", len(rows),
		"deposits", len(rows.Deposits()),
		"withdrawals", len(rows.Withdrawals()))

	return rows, nil
}

// padFields fills missing trailing columns with empty values.
func padFields(record []string) []string {
	if len(record) == model.ColumnCount {
		return record
	}
	padded := make([]string, model.ColumnCount)
	copy(padded, record)
	return padded
}
