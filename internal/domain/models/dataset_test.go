package models

import (
	"errors"
	"testing"
	"time"
)

var testColumns = []string{"Date", "Open", "High", "Low", "Close", "Change", "Traded Volume", "Turnover"}

func TestBuildDataset_ValidRows(t *testing.T) {
	data := [][]any{
		{"2017-01-02", 34.99, 35.94, 34.99, 35.8, nil, 44700.0, 1590561.0},
		{"2017-01-03", 35.9, nil, 35.34, 35.48, nil, 70618.0, 2515473.0},
	}

	ds, err := BuildDataset("AFX_X", testColumns, data)
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}
	if ds.Ticker != "AFX_X" || len(ds.Rows) != 2 {
		t.Fatalf("unexpected dataset: %+v", ds)
	}

	if !ds.Rows[0].Date.Equal(time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("row 0 date = %v", ds.Rows[0].Date)
	}

	opens, err := ds.Column("Open")
	if err != nil {
		t.Fatalf("Column(Open): %v", err)
	}
	if opens[0] == nil || *opens[0] != 34.99 || opens[1] == nil || *opens[1] != 35.9 {
		t.Fatalf("unexpected opens: %v", opens)
	}

	highs, err := ds.Column("High")
	if err != nil {
		t.Fatalf("Column(High): %v", err)
	}
	if highs[1] != nil {
		t.Fatalf("expected null High in row 1, got %v", *highs[1])
	}
}

func TestBuildDataset_SchemaErrors(t *testing.T) {
	cases := []struct {
		name    string
		columns []string
		data    [][]any
	}{
		{name: "empty columns", columns: nil, data: nil},
		{name: "no date column", columns: []string{"Open", "Close"}, data: nil},
		{name: "ragged row", columns: []string{"Date", "Open"}, data: [][]any{{"2017-01-02"}}},
		{name: "non-string date", columns: []string{"Date", "Open"}, data: [][]any{{17.0, 1.0}}},
		{name: "bad date format", columns: []string{"Date", "Open"}, data: [][]any{{"02/01/2017", 1.0}}},
		{name: "string price cell", columns: []string{"Date", "Open"}, data: [][]any{{"2017-01-02", "34.99"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildDataset("AFX_X", tc.columns, tc.data)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
		})
	}
}

func TestColumn_NotFound(t *testing.T) {
	ds, err := BuildDataset("AFX_X", []string{"Date", "Open"}, [][]any{{"2017-01-02", 1.0}})
	if err != nil {
		t.Fatalf("BuildDataset: %v", err)
	}
	if _, err := ds.Column("Adjusted Close"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}
