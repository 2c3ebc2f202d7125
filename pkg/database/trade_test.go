package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/pkg/model"
)

func buyReq(t *testing.T, qty, price, fee string) TradeRequest {
	t.Helper()
	return TradeRequest{
		TsCode:    "600000.SH",
		Name:      "浦发银行",
		Direction: model.DirectionBuy,
		Qty:       d(t, qty),
		Price:     d(t, price),
		Fee:       d(t, fee),
		TradeDate: "20240101",
	}
}

func TestRecordTradeBuyThenSell(t *testing.T) {
	ledger := newTestDB(t).Ledger()

	_, err := ledger.RecordTrade(buyReq(t, "1000", "10.00", "5"))
	require.NoError(t, err)
	_, err = ledger.RecordTrade(buyReq(t, "1000", "12.00", "5"))
	require.NoError(t, err)

	pos, err := ledger.PositionByCode("600000.SH")
	require.NoError(t, err)
	assert.True(t, pos.TotalQty.Equal(d(t, "2000")))
	// (10000+5+12000+5)/2000 = 11.005
	assert.True(t, pos.CostPrice.Equal(d(t, "11.005")), "cost=%s", pos.CostPrice)

	sell := buyReq(t, "500", "13.00", "2")
	sell.Direction = model.DirectionSell
	trade, err := ledger.RecordTrade(sell)
	require.NoError(t, err)
	// (13.00-11.005)*500 - 2 = 995.5
	assert.True(t, trade.Pnl.Equal(d(t, "995.5")), "pnl=%s", trade.Pnl)

	pos, err = ledger.PositionByCode("600000.SH")
	require.NoError(t, err)
	assert.True(t, pos.AvailableQty.Equal(d(t, "1500")))
	assert.True(t, pos.RealizedPnl.Equal(d(t, "995.5")))
	// 卖出不动成本价
	assert.True(t, pos.CostPrice.Equal(d(t, "11.005")))

	trades, err := ledger.TradeHistory(10)
	require.NoError(t, err)
	assert.Len(t, trades, 3)
}

func TestRecordTradeSellRejectedAtomically(t *testing.T) {
	ledger := newTestDB(t).Ledger()

	_, err := ledger.RecordTrade(buyReq(t, "100", "10.00", "0"))
	require.NoError(t, err)

	sell := buyReq(t, "200", "11.00", "0")
	sell.Direction = model.DirectionSell
	_, err = ledger.RecordTrade(sell)
	assert.ErrorIs(t, err, ErrInsufficientPosition)

	// 拒绝的卖出：流水不追加、持仓不变动
	trades, err := ledger.TradeHistory(10)
	require.NoError(t, err)
	assert.Len(t, trades, 1)

	pos, err := ledger.PositionByCode("600000.SH")
	require.NoError(t, err)
	assert.True(t, pos.TotalQty.Equal(d(t, "100")))
	assert.True(t, pos.AvailableQty.Equal(d(t, "100")))
	assert.True(t, pos.RealizedPnl.IsZero())
}

func TestRecordTradeSellWithoutPosition(t *testing.T) {
	ledger := newTestDB(t).Ledger()

	sell := buyReq(t, "100", "10.00", "0")
	sell.Direction = model.DirectionSell
	_, err := ledger.RecordTrade(sell)
	assert.ErrorIs(t, err, ErrInsufficientPosition)

	trades, err := ledger.TradeHistory(10)
	require.NoError(t, err)
	assert.Empty(t, trades)
	_, err = ledger.PositionByCode("600000.SH")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordTradeRejectsNonPositiveQty(t *testing.T) {
	ledger := newTestDB(t).Ledger()

	_, err := ledger.RecordTrade(buyReq(t, "0", "10.00", "0"))
	assert.Error(t, err)
}

func TestPositionSummary(t *testing.T) {
	ledger := newTestDB(t).Ledger()

	_, err := ledger.RecordTrade(buyReq(t, "100", "10.00", "0"))
	require.NoError(t, err)

	other := buyReq(t, "200", "5.00", "0")
	other.TsCode = "000001.SZ"
	_, err = ledger.RecordTrade(other)
	require.NoError(t, err)

	sell := buyReq(t, "100", "12.00", "0")
	sell.Direction = model.DirectionSell
	_, err = ledger.RecordTrade(sell)
	require.NoError(t, err)

	positions, realized, err := ledger.PositionSummary()
	require.NoError(t, err)
	assert.Len(t, positions, 2)
	assert.True(t, realized.Equal(d(t, "200")), "realized=%s", realized)

	// 清仓后的持仓不出现在持仓列表里
	open, err := ledger.Positions()
	require.NoError(t, err)
	assert.Len(t, open, 1)
	assert.Equal(t, "000001.SZ", open[0].TsCode)
}
