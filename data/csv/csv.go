// Package csv loads bar series from comma separated files. The expected
// layout is time,open,high,low,close,volume with optional trailing
// volatility, liquidity and volume_ratio columns; a header row is
// detected and skipped.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frictionlabs/backtester/data"
)

const (
	requiredColumns = 6
	maximumColumns  = 9
)

var errInvalidColumnCount = errors.New("csv row has an invalid column count")

var timeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadBars reads an entire CSV file into an ordered bar slice
func LoadBars(path string) ([]data.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read csv data for %v: %w", path, err)
	}
	if len(records) == 0 {
		return nil, data.ErrNoData
	}
	if isHeader(records[0]) {
		records = records[1:]
	}

	bars := make([]data.Bar, 0, len(records))
	for i := range records {
		bar, err := parseRow(records[i])
		if err != nil {
			return nil, fmt.Errorf("row %v: %w", i+1, err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := parseTime(row[0])
	return err != nil
}

func parseRow(row []string) (data.Bar, error) {
	if len(row) < requiredColumns || len(row) > maximumColumns {
		return data.Bar{}, fmt.Errorf("%w: %v", errInvalidColumnCount, len(row))
	}
	t, err := parseTime(row[0])
	if err != nil {
		return data.Bar{}, err
	}
	fields := make([]decimal.Decimal, len(row)-1)
	for i := 1; i < len(row); i++ {
		fields[i-1], err = decimal.NewFromString(strings.TrimSpace(row[i]))
		if err != nil {
			return data.Bar{}, fmt.Errorf("column %v: %w", i, err)
		}
	}
	bar := data.Bar{
		Time:   t,
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}
	if len(fields) > 5 {
		bar.Volatility = fields[5]
	}
	if len(fields) > 6 {
		bar.Liquidity = fields[6]
	}
	if len(fields) > 7 {
		bar.VolumeRatio = fields[7]
	}
	return bar, nil
}

func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for i := range timeFormats {
		if t, err := time.Parse(timeFormats[i], value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse time '%v'", value)
}
