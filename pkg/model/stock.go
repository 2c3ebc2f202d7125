package model

import (
	"time"
)

// Stock 股票基础信息，定期全量刷新
type Stock struct {
	TsCode    string    `gorm:"column:ts_code;type:varchar(20);primaryKey" json:"ts_code"`
	Symbol    string    `gorm:"column:symbol;type:varchar(20)" json:"symbol"`
	Name      string    `gorm:"column:name;type:varchar(50);index" json:"name"`
	Industry  string    `gorm:"column:industry;type:varchar(50)" json:"industry"`
	ListDate  string    `gorm:"column:list_date;type:varchar(8)" json:"list_date"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Stock) TableName() string {
	return "stocks"
}

// DailyBar 日线行情，(ts_code, trade_date) 唯一
type DailyBar struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TsCode    string  `gorm:"column:ts_code;type:varchar(20);not null;uniqueIndex:idx_daily_code_date" json:"ts_code"`
	TradeDate string  `gorm:"column:trade_date;type:varchar(8);not null;uniqueIndex:idx_daily_code_date" json:"trade_date"`
	Open      float64 `gorm:"column:open" json:"open"`
	High      float64 `gorm:"column:high" json:"high"`
	Low       float64 `gorm:"column:low" json:"low"`
	Close     float64 `gorm:"column:close" json:"close"`
	PreClose  float64 `gorm:"column:pre_close" json:"pre_close"`
	ChangePct float64 `gorm:"column:change_pct" json:"change_pct"`
	Vol       float64 `gorm:"column:vol" json:"vol"`
	Amount    float64 `gorm:"column:amount" json:"amount"`
}

func (DailyBar) TableName() string {
	return "daily_data"
}

// MoneyFlow 资金流向，按单笔规模分档，(ts_code, trade_date) 唯一
type MoneyFlow struct {
	ID            uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TsCode        string  `gorm:"column:ts_code;type:varchar(20);not null;uniqueIndex:idx_flow_code_date" json:"ts_code"`
	TradeDate     string  `gorm:"column:trade_date;type:varchar(8);not null;uniqueIndex:idx_flow_code_date" json:"trade_date"`
	BuySmAmount   float64 `gorm:"column:buy_sm_amount" json:"buy_sm_amount"`
	BuyMdAmount   float64 `gorm:"column:buy_md_amount" json:"buy_md_amount"`
	BuyLgAmount   float64 `gorm:"column:buy_lg_amount" json:"buy_lg_amount"`
	BuyElgAmount  float64 `gorm:"column:buy_elg_amount" json:"buy_elg_amount"`
	SellSmAmount  float64 `gorm:"column:sell_sm_amount" json:"sell_sm_amount"`
	SellMdAmount  float64 `gorm:"column:sell_md_amount" json:"sell_md_amount"`
	SellLgAmount  float64 `gorm:"column:sell_lg_amount" json:"sell_lg_amount"`
	SellElgAmount float64 `gorm:"column:sell_elg_amount" json:"sell_elg_amount"`
	NetMfAmount   float64 `gorm:"column:net_mf_amount" json:"net_mf_amount"`
	MainNetInflow float64 `gorm:"column:main_net_inflow" json:"main_net_inflow"`
}

func (MoneyFlow) TableName() string {
	return "money_flow"
}

// ComputeMainNetInflow 主力净流入 = 大单+特大单买入 - 大单+特大单卖出
func (m *MoneyFlow) ComputeMainNetInflow() float64 {
	return m.BuyLgAmount + m.BuyElgAmount - m.SellLgAmount - m.SellElgAmount
}

// WatchlistItem 自选股
type WatchlistItem struct {
	TsCode    string    `gorm:"column:ts_code;type:varchar(20);primaryKey" json:"ts_code"`
	Name      string    `gorm:"column:name;type:varchar(50)" json:"name"`
	AddPrice  float64   `gorm:"column:add_price" json:"add_price"`
	AddDate   string    `gorm:"column:add_date;type:varchar(8)" json:"add_date"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WatchlistItem) TableName() string {
	return "watchlist"
}
