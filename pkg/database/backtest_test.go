package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRunKeepsHistory(t *testing.T) {
	backtest := newTestDB(t).Backtest()

	first, err := backtest.RecordRun("600000.SH", "20240101", "20240331", 10, 6, 4, []float64{5.0, -2.0, 3.0})
	require.NoError(t, err)
	second, err := backtest.RecordRun("600000.SH", "20240101", "20240331", 12, 7, 5, []float64{4.0, -1.0})
	require.NoError(t, err)

	// 同一区间重复运行各存一行，run_id不同
	assert.NotEqual(t, first.RunID, second.RunID)

	runs, err := backtest.RunsFor("600000.SH", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.InDelta(t, 0.6, first.WinRate, 1e-9)
	assert.InDelta(t, 5.0, first.MaxReturn, 1e-9)
	assert.InDelta(t, -2.0, first.MaxLoss, 1e-9)
}

func TestRecordRunNoSignals(t *testing.T) {
	backtest := newTestDB(t).Backtest()

	run, err := backtest.RecordRun("000001.SZ", "20240101", "20240331", 0, 0, 0, nil)
	require.NoError(t, err)
	assert.Zero(t, run.WinRate)
	assert.Zero(t, run.AvgReturn)
}
