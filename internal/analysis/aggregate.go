// Package analysis computes summary statistics over a daily
// time-series dataset.
//
// Cleaning is scoped per computation: each statistic filters out null
// cells only in the columns it needs, so a row missing its High still
// contributes its Open and Volume elsewhere. There is no globally
// cleaned table.
package analysis

import (
	"fmt"
	"sort"

	"github.com/lfreitas/stockpulse/internal/domain/models"
)

// EmptyDataError is returned when a statistic has no usable rows after
// filtering out null cells. It names the statistic so the failure is
// explicit instead of a nil comparison blowing up downstream.
type EmptyDataError struct {
	Stat   string
	Column string
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("%s: no rows with usable %s values", e.Stat, e.Column)
}

// HighestOpening returns the maximum opening price over rows whose Open
// cell is present.
func HighestOpening(d *models.Dataset) (float64, error) {
	return maxOfColumn(d, models.StatHighestOpening, models.ColumnOpen)
}

// LowestOpening returns the minimum opening price over rows whose Open
// cell is present.
func LowestOpening(d *models.Dataset) (float64, error) {
	col, err := d.Column(models.ColumnOpen)
	if err != nil {
		return 0, err
	}

	var min float64
	found := false
	for _, c := range col {
		if c == nil {
			continue
		}
		if !found || *c < min {
			min = *c
			found = true
		}
	}
	if !found {
		return 0, &EmptyDataError{Stat: models.StatLowestOpening, Column: models.ColumnOpen}
	}
	return min, nil
}

// LargestIntradayRange returns the maximum of High-Low, computed per
// row over rows where BOTH cells are present. Rows missing either cell
// are excluded from this computation only.
func LargestIntradayRange(d *models.Dataset) (float64, error) {
	highIdx, err := d.ColumnIndex(models.ColumnHigh)
	if err != nil {
		return 0, err
	}
	lowIdx, err := d.ColumnIndex(models.ColumnLow)
	if err != nil {
		return 0, err
	}

	var max float64
	found := false
	for _, r := range d.Rows {
		h, l := r.Cells[highIdx], r.Cells[lowIdx]
		if h == nil || l == nil {
			continue
		}
		if spread := *h - *l; !found || spread > max {
			max = spread
			found = true
		}
	}
	if !found {
		return 0, &EmptyDataError{Stat: models.StatLargestIntradayRange, Column: "High and Low"}
	}
	return max, nil
}

// LargestInterdayMove returns the maximum SIGNED difference between
// consecutive closing prices. Rows with a null Close are skipped first,
// preserving chronological order, and the differences are taken over
// that filtered sequence.
//
// The maximum is of the signed values, not absolute ones: a large drop
// is only reported when it happens to be the largest signed difference.
func LargestInterdayMove(d *models.Dataset) (float64, error) {
	col, err := d.Column(models.ColumnClose)
	if err != nil {
		return 0, err
	}

	closes := make([]float64, 0, len(col))
	for _, c := range col {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	if len(closes) < 2 {
		return 0, &EmptyDataError{Stat: models.StatLargestInterdayMove, Column: models.ColumnClose}
	}

	max := closes[1] - closes[0]
	for i := 2; i < len(closes); i++ {
		if move := closes[i] - closes[i-1]; move > max {
			max = move
		}
	}
	return max, nil
}

// MeanVolume returns the arithmetic mean of the traded volume over all
// present values. Null volumes, if the exchange ever reports one, are
// excluded from the computation.
func MeanVolume(d *models.Dataset) (float64, error) {
	vols, err := presentColumn(d, models.StatMeanVolume, models.ColumnTradedVolume)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, v := range vols {
		sum += v
	}
	return sum / float64(len(vols)), nil
}

// MedianVolume returns the median of the traded volume over all present
// values. For an even count the two middle values are averaged. Null
// volumes are excluded, same as MeanVolume.
func MedianVolume(d *models.Dataset) (float64, error) {
	vols, err := presentColumn(d, models.StatMedianVolume, models.ColumnTradedVolume)
	if err != nil {
		return 0, err
	}
	sort.Float64s(vols)
	mid := len(vols) / 2
	if len(vols)%2 == 1 {
		return vols[mid], nil
	}
	return (vols[mid-1] + vols[mid]) / 2, nil
}

// Summarize computes all six statistics into a Summary. The dataset is
// read-only throughout, so repeated calls yield identical results.
func Summarize(d *models.Dataset) (*models.Summary, error) {
	s := &models.Summary{Ticker: d.Ticker}

	var err error
	if s.HighestOpening, err = HighestOpening(d); err != nil {
		return nil, err
	}
	if s.LowestOpening, err = LowestOpening(d); err != nil {
		return nil, err
	}
	if s.LargestIntradayRange, err = LargestIntradayRange(d); err != nil {
		return nil, err
	}
	if s.LargestInterdayMove, err = LargestInterdayMove(d); err != nil {
		return nil, err
	}
	if s.MeanVolume, err = MeanVolume(d); err != nil {
		return nil, err
	}
	if s.MedianVolume, err = MedianVolume(d); err != nil {
		return nil, err
	}
	return s, nil
}

// maxOfColumn returns the maximum over present cells of one column.
func maxOfColumn(d *models.Dataset, stat, column string) (float64, error) {
	col, err := d.Column(column)
	if err != nil {
		return 0, err
	}

	var max float64
	found := false
	for _, c := range col {
		if c == nil {
			continue
		}
		if !found || *c > max {
			max = *c
			found = true
		}
	}
	if !found {
		return 0, &EmptyDataError{Stat: stat, Column: column}
	}
	return max, nil
}

// presentColumn extracts the non-null values of one column, preserving
// row order.
func presentColumn(d *models.Dataset, stat, column string) ([]float64, error) {
	col, err := d.Column(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(col))
	for _, c := range col {
		if c != nil {
			out = append(out, *c)
		}
	}
	if len(out) == 0 {
		return nil, &EmptyDataError{Stat: stat, Column: column}
	}
	return out, nil
}
