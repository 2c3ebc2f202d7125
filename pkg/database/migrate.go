package database

import (
	"fmt"

	"StockSentinel/pkg/model"
)

// AutoMigrate 建表建索引，唯一约束由存储层强制
func (d *DB) AutoMigrate() error {
	err := d.db.AutoMigrate(
		&model.Stock{},
		&model.DailyBar{},
		&model.MoneyFlow{},
		&model.DragonTiger{},
		&model.MarginData{},
		&model.SectorLinkage{},
		&model.WatchlistItem{},
		&model.CacheEntry{},
		&model.Recommendation{},
		&model.Trade{},
		&model.Position{},
		&model.BacktestResult{},
	)
	if err != nil {
		return fmt.Errorf("迁移数据库失败: %w", err)
	}
	return nil
}
