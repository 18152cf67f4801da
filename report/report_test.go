package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frictionlabs/backtester/common"
	"github.com/frictionlabs/backtester/engine"
	"github.com/frictionlabs/backtester/statistics"
)

func makeReport(t *testing.T) *Report {
	t.Helper()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	res := &engine.Result{
		Asset:          "EURUSD",
		StrategyName:   "buyandhold",
		StartTime:      start,
		EndTime:        start.AddDate(0, 0, 2),
		InitialCapital: decimal.NewFromInt(10000),
		FinalCapital:   decimal.NewFromInt(10500),
		EquityCurve: []engine.EquityPoint{
			{Time: start, Equity: decimal.NewFromInt(10000)},
			{Time: start.AddDate(0, 0, 1), Equity: decimal.NewFromInt(10200)},
			{Time: start.AddDate(0, 0, 2), Equity: decimal.NewFromInt(10500)},
		},
	}
	stats, err := statistics.CalculateResults(res, decimal.NewFromInt(252), decimal.Zero)
	require.NoError(t, err)
	rep, err := New(res, stats)
	require.NoError(t, err)
	return rep
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New(nil, nil)
	assert.Error(t, err)

	rep := makeReport(t)
	assert.False(t, rep.ID.IsNil(), "every report carries a unique identifier")
	assert.False(t, rep.GeneratedAt.IsZero())
}

func TestReportIDsAreUnique(t *testing.T) {
	t.Parallel()
	first := makeReport(t)
	second := makeReport(t)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSerialise(t *testing.T) {
	t.Parallel()
	rep := makeReport(t)
	payload, err := rep.Serialise()
	require.NoError(t, err)

	var roundTrip Report
	require.NoError(t, json.Unmarshal(payload, &roundTrip))
	assert.Equal(t, rep.ID, roundTrip.ID)
	assert.Equal(t, rep.Statistics.Asset, roundTrip.Statistics.Asset)
	assert.True(t, rep.Statistics.TotalReturnPercent.Equal(roundTrip.Statistics.TotalReturnPercent))
}

func TestWriteToFile(t *testing.T) {
	t.Parallel()
	rep := makeReport(t)
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, rep.WriteToFile(path))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	var roundTrip Report
	require.NoError(t, json.Unmarshal(contents, &roundTrip))
	assert.Equal(t, rep.ID, roundTrip.ID)
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()
	rep := makeReport(t)
	assert.ErrorIs(t, rep.PrintSummary(nil), common.ErrNilLogger)
	require.NoError(t, rep.PrintSummary(zap.NewNop()))
}
