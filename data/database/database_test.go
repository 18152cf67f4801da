package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frictionlabs/backtester/data"
)

func seedDatabase(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candles.db")
	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE candles (
		asset TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		open REAL, high REAL, low REAL, close REAL, volume REAL)`)
	require.NoError(t, err)

	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	insert := `INSERT INTO candles VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i := 0; i < 3; i++ {
		_, err = db.Exec(insert, "EURUSD", base+int64(i*86400), 1.0, 1.2, 0.9, 1.1+float64(i)*0.01, 1000)
		require.NoError(t, err)
	}
	_, err = db.Exec(insert, "BTCUSD", base, 20000, 21000, 19000, 20500, 50)
	require.NoError(t, err)
	return path
}

func TestLoadBars(t *testing.T) {
	t.Parallel()
	path := seedDatabase(t)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	bars, err := LoadBars(context.Background(), path, "EURUSD", start, end)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.True(t, bars[0].Close.Equal(decimal.NewFromFloat(1.1)))
	assert.True(t, bars[2].Time.After(bars[0].Time))

	// the range filter excludes the later candles
	bars, err = LoadBars(context.Background(), path, "EURUSD", start, start.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, bars, 1)
}

func TestLoadBarsFiltersByAsset(t *testing.T) {
	t.Parallel()
	path := seedDatabase(t)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	bars, err := LoadBars(context.Background(), path, "BTCUSD", start, start.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.True(t, bars[0].Close.Equal(decimal.NewFromInt(20500)))
}

func TestLoadBarsErrors(t *testing.T) {
	t.Parallel()
	path := seedDatabase(t)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := LoadBars(context.Background(), "", "EURUSD", start, start)
	assert.ErrorIs(t, err, errNoPath)

	_, err = LoadBars(context.Background(), path, "", start, start)
	assert.ErrorIs(t, err, errNoAsset)

	_, err = LoadBars(context.Background(), path, "DOGEUSD", start, start.AddDate(0, 0, 7))
	assert.ErrorIs(t, err, data.ErrNoData)
}
