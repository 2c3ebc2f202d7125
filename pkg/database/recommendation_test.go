package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/pkg/model"
)

func newRec(t *testing.T, tsCode, date, price string) *model.Recommendation {
	t.Helper()
	return &model.Recommendation{
		TsCode:         tsCode,
		Name:           "测试股",
		RecommendDate:  date,
		RecommendPrice: d(t, price),
		RecommendScore: 80,
		RecommendType:  model.RecTypeMainWave,
	}
}

func TestCreateOncePerDay(t *testing.T) {
	recs := newTestDB(t).Recommendation()

	created, err := recs.Create(newRec(t, "600000.SH", "20240101", "10.0"))
	require.NoError(t, err)
	assert.True(t, created)

	// 同一股票同一天第二条不落
	created, err = recs.Create(newRec(t, "600000.SH", "20240101", "10.3"))
	require.NoError(t, err)
	assert.False(t, created)

	pending, err := recs.PendingOlderThan("20240101")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].RecommendPrice.Equal(d(t, "10.0")))
}

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	recs := newTestDB(t).Recommendation()

	_, err := recs.Create(newRec(t, "600000.SH", "20240101", "0"))
	assert.Error(t, err)
	_, err = recs.Create(newRec(t, "600000.SH", "20240101", "-1"))
	assert.Error(t, err)

	pending, err := recs.PendingOlderThan("99999999")
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestVerifyLifecycle(t *testing.T) {
	recs := newTestDB(t).Recommendation()

	rec := newRec(t, "600000.SH", "20240101", "10.0")
	_, err := recs.Create(rec)
	require.NoError(t, err)

	out, err := recs.Verify(rec.ID, "20240104", d(t, "11.0"), model.DefaultVerifyPolicy())
	require.NoError(t, err)
	assert.Equal(t, model.RecommendWin, out.Status)
	assert.True(t, out.ProfitPct.Equal(d(t, "10")), "pct=%s", out.ProfitPct)

	stored, err := recs.ByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RecommendWin, stored.Status)
	assert.Equal(t, "20240104", stored.VerifyDate)
	assert.True(t, stored.VerifyPrice.Decimal.Equal(d(t, "11.0")))
}

func TestVerifyIdempotent(t *testing.T) {
	recs := newTestDB(t).Recommendation()

	rec := newRec(t, "600000.SH", "20240101", "10.0")
	_, err := recs.Create(rec)
	require.NoError(t, err)

	first, err := recs.Verify(rec.ID, "20240104", d(t, "11.0"), model.DefaultVerifyPolicy())
	require.NoError(t, err)
	require.Equal(t, model.RecommendWin, first.Status)

	// 用不同价格再验，返回首次结论且不重算
	second, err := recs.Verify(rec.ID, "20240110", d(t, "9.0"), model.DefaultVerifyPolicy())
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	require.NotNil(t, second)
	assert.Equal(t, model.RecommendWin, second.Status)
	assert.True(t, second.ProfitPct.Equal(d(t, "10")), "pct=%s", second.ProfitPct)
	assert.Equal(t, "20240104", second.VerifyDate)
	assert.True(t, second.VerifyPrice.Equal(d(t, "11.0")))
}

func TestVerifyUnknownID(t *testing.T) {
	recs := newTestDB(t).Recommendation()

	_, err := recs.Verify(12345, "20240104", d(t, "11.0"), model.DefaultVerifyPolicy())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatsByType(t *testing.T) {
	db := newTestDB(t)
	recs := db.Recommendation()

	win := newRec(t, "600000.SH", "20240101", "10.0")
	_, err := recs.Create(win)
	require.NoError(t, err)
	lose := newRec(t, "000001.SZ", "20240101", "20.0")
	lose.RecommendType = model.RecTypeRebound
	_, err = recs.Create(lose)
	require.NoError(t, err)
	_, err = recs.Create(newRec(t, "600519.SH", "20240102", "1700"))
	require.NoError(t, err)

	_, err = recs.Verify(win.ID, "20240104", d(t, "11.0"), model.DefaultVerifyPolicy())
	require.NoError(t, err)
	_, err = recs.Verify(lose.ID, "20240104", d(t, "19.0"), model.DefaultVerifyPolicy())
	require.NoError(t, err)

	stats, err := recs.Stats("20240101")
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 1, stats.Wins)
	assert.EqualValues(t, 1, stats.Loses)
	assert.EqualValues(t, 1, stats.Pending)
	assert.InDelta(t, 50.0, stats.WinRate, 1e-9)
	assert.Len(t, stats.ByType, 2)
}

func TestResolvedSince(t *testing.T) {
	recs := newTestDB(t).Recommendation()

	rec := newRec(t, "600000.SH", "20240101", "10.0")
	_, err := recs.Create(rec)
	require.NoError(t, err)
	_, err = recs.Verify(rec.ID, "20240104", d(t, "11.0"), model.DefaultVerifyPolicy())
	require.NoError(t, err)

	resolved, err := recs.ResolvedSince("20240104")
	require.NoError(t, err)
	assert.Len(t, resolved, 1)

	resolved, err = recs.ResolvedSince("20240105")
	require.NoError(t, err)
	assert.Empty(t, resolved)
}
