package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestApplyBuyWeightedCost(t *testing.T) {
	p := &Position{TsCode: "600000.SH"}

	p.ApplyBuy(d("1000"), d("10.00"), d("5"))
	assert.True(t, p.TotalQty.Equal(d("1000")))
	assert.True(t, p.AvailableQty.Equal(d("1000")))
	// (10000+5)/1000
	assert.True(t, p.CostPrice.Equal(d("10.005")), "cost=%s", p.CostPrice)

	p.ApplyBuy(d("1000"), d("12.00"), d("5"))
	assert.True(t, p.TotalQty.Equal(d("2000")))
	// (10000+5+12000+5)/2000 = 11.005
	assert.True(t, p.CostPrice.Equal(d("11.005")), "cost=%s", p.CostPrice)
}

func TestApplyBuyCommutative(t *testing.T) {
	// 买入顺序不同，最终加权成本一致
	type buy struct{ qty, price, fee string }
	buys := []buy{
		{"300", "8.40", "3"},
		{"1200", "9.15", "6"},
		{"500", "7.80", "2.5"},
	}

	run := func(order []int) decimal.Decimal {
		p := &Position{TsCode: "000001.SZ"}
		for _, i := range order {
			p.ApplyBuy(d(buys[i].qty), d(buys[i].price), d(buys[i].fee))
		}
		return p.CostPrice
	}

	base := run([]int{0, 1, 2})
	for _, order := range [][]int{{2, 1, 0}, {1, 0, 2}, {2, 0, 1}} {
		got := run(order)
		assert.True(t, got.Sub(base).Abs().LessThan(d("0.0000001")),
			"order=%v cost=%s want=%s", order, got, base)
	}
}

func TestApplySellRealizedPnl(t *testing.T) {
	p := &Position{TsCode: "600000.SH"}
	p.ApplyBuy(d("1000"), d("10.00"), d("5"))
	p.ApplyBuy(d("1000"), d("12.00"), d("5"))

	pnl, ok := p.ApplySell(d("500"), d("13.00"), d("2"))
	require.True(t, ok)
	// (13.00-11.005)*500 - 2 = 995.5
	assert.True(t, pnl.Equal(d("995.5")), "pnl=%s", pnl)
	assert.True(t, p.TotalQty.Equal(d("1500")))
	assert.True(t, p.AvailableQty.Equal(d("1500")))
	assert.True(t, p.RealizedPnl.Equal(d("995.5")))
	// 摊薄成本法：卖出不改成本价
	assert.True(t, p.CostPrice.Equal(d("11.005")))
}

func TestApplySellInsufficient(t *testing.T) {
	p := &Position{TsCode: "600000.SH"}
	p.ApplyBuy(d("100"), d("10.00"), d("0"))

	before := *p
	pnl, ok := p.ApplySell(d("200"), d("11.00"), d("0"))
	assert.False(t, ok)
	assert.True(t, pnl.IsZero())
	// 拒绝的卖出不得改变任何字段
	assert.True(t, p.TotalQty.Equal(before.TotalQty))
	assert.True(t, p.AvailableQty.Equal(before.AvailableQty))
	assert.True(t, p.CostPrice.Equal(before.CostPrice))
	assert.True(t, p.RealizedPnl.Equal(before.RealizedPnl))
}

func TestApplySellClearsCostOnFlat(t *testing.T) {
	p := &Position{TsCode: "600000.SH"}
	p.ApplyBuy(d("100"), d("10.00"), d("1"))

	_, ok := p.ApplySell(d("100"), d("10.50"), d("1"))
	require.True(t, ok)
	assert.True(t, p.TotalQty.IsZero())
	assert.True(t, p.CostPrice.IsZero(), "清仓后成本价归零")
}

func TestFloatPnlAndMarketValue(t *testing.T) {
	p := &Position{TsCode: "600000.SH"}
	p.ApplyBuy(d("2000"), d("11.00"), d("10"))

	latest := d("12.50")
	assert.True(t, p.MarketValue(latest).Equal(d("25000")))
	// (12.50 - 11.005) * 2000 = 2990
	assert.True(t, p.FloatPnl(latest).Equal(d("2990")), "float=%s", p.FloatPnl(latest))
}
