package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeDirection 交易方向
type TradeDirection string

const (
	DirectionBuy  TradeDirection = "BUY"
	DirectionSell TradeDirection = "SELL"
)

// Trade 成交流水，只增不改，是持仓的审计来源
type Trade struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TsCode    string          `gorm:"column:ts_code;type:varchar(20);not null;index" json:"ts_code"`
	Name      string          `gorm:"column:name;type:varchar(50)" json:"name"`
	Direction TradeDirection  `gorm:"column:direction;type:varchar(4);not null" json:"direction"`
	Qty       decimal.Decimal `gorm:"column:qty;type:numeric(20,4);not null" json:"qty"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(20,4);not null" json:"price"`
	Fee       decimal.Decimal `gorm:"column:fee;type:numeric(20,4);not null;default:0" json:"fee"`
	Pnl       decimal.Decimal `gorm:"column:pnl;type:numeric(20,4);not null;default:0" json:"pnl"`
	TradeDate string          `gorm:"column:trade_date;type:varchar(8);not null" json:"trade_date"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Trade) TableName() string {
	return "trades"
}

// Position 每只股票一行持仓，只能由成交流水折算而来
type Position struct {
	TsCode       string          `gorm:"column:ts_code;type:varchar(20);primaryKey" json:"ts_code"`
	Name         string          `gorm:"column:name;type:varchar(50)" json:"name"`
	TotalQty     decimal.Decimal `gorm:"column:total_qty;type:numeric(20,4);not null;default:0" json:"total_qty"`
	AvailableQty decimal.Decimal `gorm:"column:available_qty;type:numeric(20,4);not null;default:0" json:"available_qty"`
	CostPrice    decimal.Decimal `gorm:"column:cost_price;type:numeric(20,8);not null;default:0" json:"cost_price"`
	RealizedPnl  decimal.Decimal `gorm:"column:realized_pnl;type:numeric(20,4);not null;default:0" json:"realized_pnl"`
	LastUpdate   time.Time       `gorm:"column:last_update;autoUpdateTime" json:"last_update"`
}

func (Position) TableName() string {
	return "positions"
}

// ApplyBuy 买入：数量增加，成本价按含费加权平均重算
// new_cost = (old_cost*old_qty + price*qty + fee) / (old_qty+qty)
func (p *Position) ApplyBuy(qty, price, fee decimal.Decimal) {
	oldValue := p.CostPrice.Mul(p.TotalQty)
	newQty := p.TotalQty.Add(qty)
	p.CostPrice = oldValue.Add(price.Mul(qty)).Add(fee).Div(newQty)
	p.TotalQty = newQty
	p.AvailableQty = p.AvailableQty.Add(qty)
}

// ApplySell 卖出：要求可用数量充足，成本价不变（摊薄成本法），
// 返回本笔实现盈亏 (price - cost_price)*qty - fee
func (p *Position) ApplySell(qty, price, fee decimal.Decimal) (decimal.Decimal, bool) {
	if qty.GreaterThan(p.AvailableQty) {
		return decimal.Zero, false
	}
	pnl := price.Sub(p.CostPrice).Mul(qty).Sub(fee)
	p.TotalQty = p.TotalQty.Sub(qty)
	p.AvailableQty = p.AvailableQty.Sub(qty)
	p.RealizedPnl = p.RealizedPnl.Add(pnl)
	if p.TotalQty.IsZero() {
		p.CostPrice = decimal.Zero
	}
	return pnl, true
}

// FloatPnl 浮动盈亏，按调用方提供的最新价即时计算，不落库
func (p *Position) FloatPnl(latest decimal.Decimal) decimal.Decimal {
	return latest.Sub(p.CostPrice).Mul(p.TotalQty)
}

// MarketValue 持仓市值 = 总数量 × 最新价
func (p *Position) MarketValue(latest decimal.Decimal) decimal.Decimal {
	return p.TotalQty.Mul(latest)
}
