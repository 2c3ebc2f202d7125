package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecommendStatus 推荐生命周期状态
type RecommendStatus string

const (
	RecommendPending RecommendStatus = "pending" // 待验证
	RecommendWin     RecommendStatus = "win"     // 验证盈利
	RecommendLose    RecommendStatus = "lose"    // 验证亏损
	RecommendFlat    RecommendStatus = "flat"    // 落在盈亏死区内，不计入胜率
)

// RecommendType 推荐类别
type RecommendType string

const (
	RecTypeMainWave    RecommendType = "main_wave"    // 主升浪
	RecTypeRebound     RecommendType = "rebound"      // 超跌反弹
	RecTypeGoldenCross RecommendType = "golden_cross" // 均线金叉
	RecTypeWashOut     RecommendType = "wash_out"     // 洗盘回踩
	RecTypeAvoid       RecommendType = "avoid"        // 回避信号（看空）
)

// shortBias 看空类别在验证时反转收益率符号：跌了算赢
var shortBias = map[RecommendType]bool{
	RecTypeAvoid: true,
}

// ShortBias 该类别是否为看空推荐
func (t RecommendType) ShortBias() bool {
	return shortBias[t]
}

// Recommendation 推荐记录
// 状态机：pending -> win | lose | flat，只允许迁移一次；
// 验证字段在pending时为空，终态后全部填写且不再变化。
type Recommendation struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	TsCode          string          `gorm:"column:ts_code;type:varchar(20);not null;uniqueIndex:idx_rec_code_date" json:"ts_code"`
	Name            string          `gorm:"column:name;type:varchar(50)" json:"name"`
	RecommendDate   string          `gorm:"column:recommend_date;type:varchar(8);not null;uniqueIndex:idx_rec_code_date;index" json:"recommend_date"`
	RecommendPrice  decimal.Decimal `gorm:"column:recommend_price;type:numeric(20,4);not null" json:"recommend_price"`
	RecommendScore  float64         `gorm:"column:recommend_score" json:"recommend_score"`
	RecommendType   RecommendType   `gorm:"column:recommend_type;type:varchar(20);not null;index" json:"recommend_type"`
	RecommendReason string          `gorm:"column:recommend_reason;type:text" json:"recommend_reason"`
	Status          RecommendStatus `gorm:"column:status;type:varchar(10);not null;default:'pending';index" json:"status"`

	VerifyDate  string              `gorm:"column:verify_date;type:varchar(8)" json:"verify_date,omitempty"`
	VerifyPrice decimal.NullDecimal `gorm:"column:verify_price;type:numeric(20,4)" json:"verify_price,omitempty"`
	ProfitPct   decimal.NullDecimal `gorm:"column:profit_pct;type:numeric(10,4)" json:"profit_pct,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recommendation_history"
}

// Resolved 是否已到达终态
func (r *Recommendation) Resolved() bool {
	return r.Status != RecommendPending
}

// ProfitPctAt 按类别符号约定计算收益率百分比
// 推荐价不为正时无法计算收益率，返回0
func ProfitPctAt(recType RecommendType, recommendPrice, verifyPrice decimal.Decimal) decimal.Decimal {
	if !recommendPrice.IsPositive() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	pct := verifyPrice.Sub(recommendPrice).Div(recommendPrice).Mul(hundred)
	if recType.ShortBias() {
		return pct.Neg()
	}
	return pct
}

// VerifyPolicy 胜负判定阈值，收益率严格大于WinThreshold判胜，
// 严格小于LoseThreshold判负，两者之间为flat死区。
// 两个阈值相等（默认均为0）时退化为 >0 判胜、否则判负。
type VerifyPolicy struct {
	WinThreshold  decimal.Decimal
	LoseThreshold decimal.Decimal
}

// DefaultVerifyPolicy 阈值0，无死区
func DefaultVerifyPolicy() VerifyPolicy {
	return VerifyPolicy{}
}

// Classify 按阈值把收益率映射到终态
func (p VerifyPolicy) Classify(profitPct decimal.Decimal) RecommendStatus {
	if profitPct.GreaterThan(p.WinThreshold) {
		return RecommendWin
	}
	if p.LoseThreshold.GreaterThanOrEqual(p.WinThreshold) || profitPct.LessThan(p.LoseThreshold) {
		return RecommendLose
	}
	return RecommendFlat
}
