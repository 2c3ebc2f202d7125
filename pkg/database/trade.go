package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"StockSentinel/pkg/model"
)

// LedgerDB 交易与持仓仓库
// 持仓只能由成交折算而来，每笔成交与持仓更新同事务提交
type LedgerDB struct {
	db *gorm.DB
}

// TradeRequest 一笔成交
type TradeRequest struct {
	TsCode    string               `json:"ts_code"`
	Name      string               `json:"name"`
	Direction model.TradeDirection `json:"direction"`
	Qty       decimal.Decimal      `json:"qty"`
	Price     decimal.Decimal      `json:"price"`
	Fee       decimal.Decimal      `json:"fee"`
	TradeDate string               `json:"trade_date"`
}

// RecordTrade 记账：追加一条成交流水并更新对应持仓
// 卖出超过可用数量返回ErrInsufficientPosition，流水与持仓都不落
// 同一股票的持仓行加行锁，保证并发买入下加权成本不串
func (l *LedgerDB) RecordTrade(req TradeRequest) (*model.Trade, error) {
	if !req.Qty.IsPositive() {
		return nil, fmt.Errorf("成交数量必须为正: %s", req.Qty)
	}

	var trade *model.Trade
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var pos model.Position
		err := lockForUpdate(tx).First(&pos, "ts_code = ?", req.TsCode).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return fmt.Errorf("查询持仓失败: %w", err)
		}
		created := err == gorm.ErrRecordNotFound
		if created {
			pos = model.Position{TsCode: req.TsCode, Name: req.Name}
		}

		pnl := decimal.Zero
		switch req.Direction {
		case model.DirectionBuy:
			pos.ApplyBuy(req.Qty, req.Price, req.Fee)
		case model.DirectionSell:
			if created {
				return ErrInsufficientPosition
			}
			var ok bool
			pnl, ok = pos.ApplySell(req.Qty, req.Price, req.Fee)
			if !ok {
				return ErrInsufficientPosition
			}
		default:
			return fmt.Errorf("未知交易方向: %s", req.Direction)
		}

		trade = &model.Trade{
			TsCode:    req.TsCode,
			Name:      pos.Name,
			Direction: req.Direction,
			Qty:       req.Qty,
			Price:     req.Price,
			Fee:       req.Fee,
			Pnl:       pnl,
			TradeDate: req.TradeDate,
		}
		if err := tx.Create(trade).Error; err != nil {
			return fmt.Errorf("保存成交流水失败: %w", err)
		}

		if created {
			if err := tx.Create(&pos).Error; err != nil {
				return fmt.Errorf("创建持仓失败: %w", err)
			}
		} else {
			if err := tx.Save(&pos).Error; err != nil {
				return fmt.Errorf("更新持仓失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trade, nil
}

// PositionByCode 按代码查持仓
func (l *LedgerDB) PositionByCode(tsCode string) (*model.Position, error) {
	var pos model.Position
	err := l.db.First(&pos, "ts_code = ?", tsCode).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询持仓失败: %w", err)
	}
	return &pos, nil
}

// Positions 当前有持仓的股票，按更新时间倒序
func (l *LedgerDB) Positions() ([]*model.Position, error) {
	var positions []*model.Position
	err := l.db.Where("total_qty > 0").
		Order("last_update DESC").
		Find(&positions).Error
	if err != nil {
		return nil, fmt.Errorf("查询持仓列表失败: %w", err)
	}
	return positions, nil
}

// PositionSummary 全部持仓与累计实现盈亏
func (l *LedgerDB) PositionSummary() ([]*model.Position, decimal.Decimal, error) {
	var positions []*model.Position
	if err := l.db.Find(&positions).Error; err != nil {
		return nil, decimal.Zero, fmt.Errorf("查询持仓汇总失败: %w", err)
	}
	total := decimal.Zero
	for _, p := range positions {
		total = total.Add(p.RealizedPnl)
	}
	return positions, total, nil
}

// TradeHistory 最近成交流水
func (l *LedgerDB) TradeHistory(limit int) ([]*model.Trade, error) {
	if limit <= 0 {
		limit = 50
	}
	var trades []*model.Trade
	err := l.db.Order("created_at DESC").
		Limit(limit).
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("查询成交流水失败: %w", err)
	}
	return trades, nil
}
