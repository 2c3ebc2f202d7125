package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProfitPctLong(t *testing.T) {
	// 10.0 -> 11.0 涨10%
	pct := ProfitPctAt(RecTypeMainWave, d("10.0"), d("11.0"))
	assert.True(t, pct.Equal(d("10")), "pct=%s", pct)

	pct = ProfitPctAt(RecTypeGoldenCross, d("10.0"), d("9.0"))
	assert.True(t, pct.Equal(d("-10")), "pct=%s", pct)
}

func TestProfitPctShortBias(t *testing.T) {
	// 看空推荐跌了算赢，符号反转
	pct := ProfitPctAt(RecTypeAvoid, d("10.0"), d("9.0"))
	assert.True(t, pct.Equal(d("10")), "pct=%s", pct)

	pct = ProfitPctAt(RecTypeAvoid, d("10.0"), d("11.0"))
	assert.True(t, pct.Equal(d("-10")), "pct=%s", pct)
}

func TestProfitPctNonPositivePrice(t *testing.T) {
	// 推荐价为0或负数时不除零，返回0
	assert.True(t, ProfitPctAt(RecTypeMainWave, d("0"), d("11.0")).IsZero())
	assert.True(t, ProfitPctAt(RecTypeMainWave, d("-1"), d("11.0")).IsZero())
}

func TestClassifyDefaultPolicy(t *testing.T) {
	p := DefaultVerifyPolicy()

	assert.Equal(t, RecommendWin, p.Classify(d("10")))
	assert.Equal(t, RecommendWin, p.Classify(d("0.01")))
	// 默认阈值下0不算胜
	assert.Equal(t, RecommendLose, p.Classify(decimal.Zero))
	assert.Equal(t, RecommendLose, p.Classify(d("-3")))
}

func TestClassifyDeadZone(t *testing.T) {
	p := VerifyPolicy{
		WinThreshold:  d("1"),
		LoseThreshold: d("-1"),
	}

	assert.Equal(t, RecommendWin, p.Classify(d("1.5")))
	assert.Equal(t, RecommendLose, p.Classify(d("-1.5")))
	// 阈值之间落入死区
	assert.Equal(t, RecommendFlat, p.Classify(decimal.Zero))
	assert.Equal(t, RecommendFlat, p.Classify(d("1")))
	assert.Equal(t, RecommendFlat, p.Classify(d("-1")))
}

func TestResolved(t *testing.T) {
	rec := &Recommendation{Status: RecommendPending}
	assert.False(t, rec.Resolved())

	rec.Status = RecommendWin
	assert.True(t, rec.Resolved())
}
