// Package database loads bar series from a SQLite candle store. It is a
// read-only price input; simulation state is never persisted.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// sqlite3 registers the database/sql driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/frictionlabs/backtester/data"
)

const driverName = "sqlite3"

var (
	errNoPath  = errors.New("no database path set")
	errNoAsset = errors.New("no asset identifier set")
)

const candleQuery = `SELECT timestamp, open, high, low, close, volume
FROM candles
WHERE asset = ? AND timestamp >= ? AND timestamp < ?
ORDER BY timestamp ASC`

// LoadBars reads candles for an asset between start and end from the
// candles table of a SQLite database
func LoadBars(ctx context.Context, path, asset string, start, end time.Time) ([]data.Bar, error) {
	if path == "" {
		return nil, errNoPath
	}
	if asset == "" {
		return nil, errNoAsset
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, candleQuery, asset, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("could not query candles for %v: %w", asset, err)
	}
	defer rows.Close()

	var bars []data.Bar
	for rows.Next() {
		var ts int64
		var open, high, low, closePrice, volume float64
		if err = rows.Scan(&ts, &open, &high, &low, &closePrice, &volume); err != nil {
			return nil, err
		}
		bars = append(bars, data.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   decimal.NewFromFloat(open),
			High:   decimal.NewFromFloat(high),
			Low:    decimal.NewFromFloat(low),
			Close:  decimal.NewFromFloat(closePrice),
			Volume: decimal.NewFromFloat(volume),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %v between %v and %v", data.ErrNoData, asset, start, end)
	}
	return bars, nil
}
