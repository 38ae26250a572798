package models

import (
	"errors"
	"fmt"
	"time"
)

// Canonical column names of a daily time-series dataset. The upstream
// payload may carry additional columns (Change, Turnover, ...); only
// these are consumed by the analysis layer.
const (
	ColumnDate         = "Date"
	ColumnOpen         = "Open"
	ColumnHigh         = "High"
	ColumnLow          = "Low"
	ColumnClose        = "Close"
	ColumnTradedVolume = "Traded Volume"
)

// ErrColumnNotFound is returned when a requested column is not part of
// the dataset's column_names sequence.
var ErrColumnNotFound = errors.New("column not found")

// SchemaError indicates that the upstream payload did not match the
// expected dataset shape (missing keys, ragged rows, unparsable dates).
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema error: " + e.Reason
}

// dateLayout is the date format used by the time-series API (e.g. "2017-01-02").
const dateLayout = "2006-01-02"

// Row is a single trading day. Date is always present; every other cell
// is optional — the exchange may not report all fields for a day, in
// which case the cell is nil.
//
// Cells is parallel to Dataset.ColumnNames. The Date column's slot in
// Cells stays nil; its value is carried in Date.
type Row struct {
	Date  time.Time
	Cells []*float64
}

// Dataset is one fetched year of daily records for a ticker, rows in
// chronological (ascending) order, plus the parallel column-name
// sequence. It is never mutated after construction.
type Dataset struct {
	Ticker      string
	ColumnNames []string
	Rows        []Row
}

// BuildDataset converts a decoded envelope (ordered column names plus
// the raw row matrix) into a typed Dataset.
//
// Validation:
//   - column_names must be non-empty and contain "Date"
//   - every row must have exactly len(columns) cells
//   - the Date cell must be a parsable YYYY-MM-DD string
//   - every other cell must be a JSON number or null
//
// Any violation returns a *SchemaError.
func BuildDataset(ticker string, columns []string, data [][]any) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, &SchemaError{Reason: "empty column_names"}
	}

	dateIdx := -1
	for i, c := range columns {
		if c == ColumnDate {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return nil, &SchemaError{Reason: fmt.Sprintf("column_names is missing %q", ColumnDate)}
	}

	rows := make([]Row, 0, len(data))
	for i, raw := range data {
		if len(raw) != len(columns) {
			return nil, &SchemaError{Reason: fmt.Sprintf("row %d has %d cells, want %d", i, len(raw), len(columns))}
		}

		cells := make([]*float64, len(columns))
		var date time.Time

		for j, cell := range raw {
			if j == dateIdx {
				s, ok := cell.(string)
				if !ok {
					return nil, &SchemaError{Reason: fmt.Sprintf("row %d: date cell is %T, want string", i, cell)}
				}
				d, err := time.Parse(dateLayout, s)
				if err != nil {
					return nil, &SchemaError{Reason: fmt.Sprintf("row %d: invalid date %q", i, s)}
				}
				date = d
				continue
			}

			switch v := cell.(type) {
			case nil:
				// missing field for that day, cell stays nil
			case float64:
				f := v
				cells[j] = &f
			default:
				return nil, &SchemaError{Reason: fmt.Sprintf("row %d, column %q: unexpected cell type %T", i, columns[j], cell)}
			}
		}

		rows = append(rows, Row{Date: date, Cells: cells})
	}

	return &Dataset{Ticker: ticker, ColumnNames: columns, Rows: rows}, nil
}

// ColumnIndex returns the position of name in ColumnNames.
func (d *Dataset) ColumnIndex(name string) (int, error) {
	for i, c := range d.ColumnNames {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Column extracts one named column as a sequence of optional values,
// preserving row order. A nil entry means the cell was null that day.
func (d *Dataset) Column(name string) ([]*float64, error) {
	idx, err := d.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	col := make([]*float64, len(d.Rows))
	for i, r := range d.Rows {
		col[i] = r.Cells[idx]
	}
	return col, nil
}
