package model

import (
	"time"
)

// BacktestResult 回测结果，每次运行写一行，写入后不再更新
type BacktestResult struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID        string    `gorm:"column:run_id;type:varchar(36);not null;uniqueIndex" json:"run_id"`
	TsCode       string    `gorm:"column:ts_code;type:varchar(20);not null;index" json:"ts_code"`
	StartDate    string    `gorm:"column:start_date;type:varchar(8);not null" json:"start_date"`
	EndDate      string    `gorm:"column:end_date;type:varchar(8);not null" json:"end_date"`
	TotalSignals int       `gorm:"column:total_signals;not null" json:"total_signals"`
	WinCount     int       `gorm:"column:win_count;not null" json:"win_count"`
	LoseCount    int       `gorm:"column:lose_count;not null" json:"lose_count"`
	WinRate      float64   `gorm:"column:win_rate;not null" json:"win_rate"`
	AvgReturn    float64   `gorm:"column:avg_return;not null" json:"avg_return"`
	MaxReturn    float64   `gorm:"column:max_return;not null" json:"max_return"`
	MaxLoss      float64   `gorm:"column:max_loss;not null" json:"max_loss"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BacktestResult) TableName() string {
	return "backtest_results"
}

// SummarizeReturns 汇总一次回测的收益序列
// signals为0时胜率取0，不报除零错
func SummarizeReturns(signals, wins, losses int, returns []float64) (winRate, avg, max, min float64) {
	if signals > 0 {
		winRate = float64(wins) / float64(signals)
	}
	if len(returns) == 0 {
		return winRate, 0, 0, 0
	}
	max = returns[0]
	min = returns[0]
	sum := 0.0
	for _, r := range returns {
		sum += r
		if r > max {
			max = r
		}
		if r < min {
			min = r
		}
	}
	avg = sum / float64(len(returns))
	return winRate, avg, max, min
}
