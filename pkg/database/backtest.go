package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"StockSentinel/pkg/model"
)

// BacktestDB 回测结果仓库，纯写入端，不读改写
type BacktestDB struct {
	db *gorm.DB
}

// RecordRun 记录一次回测运行，同一区间重复运行各存一行
func (b *BacktestDB) RecordRun(tsCode, startDate, endDate string, signals, wins, losses int, returns []float64) (*model.BacktestResult, error) {
	winRate, avg, max, min := model.SummarizeReturns(signals, wins, losses, returns)
	result := &model.BacktestResult{
		RunID:        uuid.New().String(),
		TsCode:       tsCode,
		StartDate:    startDate,
		EndDate:      endDate,
		TotalSignals: signals,
		WinCount:     wins,
		LoseCount:    losses,
		WinRate:      winRate,
		AvgReturn:    avg,
		MaxReturn:    max,
		MaxLoss:      min,
	}
	if err := b.db.Create(result).Error; err != nil {
		return nil, fmt.Errorf("保存回测结果失败: %w", err)
	}
	return result, nil
}

// RunsFor 某股票的历次回测结果
func (b *BacktestDB) RunsFor(tsCode string, limit int) ([]*model.BacktestResult, error) {
	if limit <= 0 {
		limit = 20
	}
	var results []*model.BacktestResult
	err := b.db.Where("ts_code = ?", tsCode).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("查询回测结果失败: %w", err)
	}
	return results, nil
}
