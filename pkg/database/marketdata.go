package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StockSentinel/pkg/model"
)

// MarketDB 行情时序仓库
// 所有日期为YYYYMMDD文本，按字典序比较，不解析日历
type MarketDB struct {
	db *gorm.DB
}

var (
	barConflict = clause.OnConflict{
		Columns: []clause.Column{{Name: "ts_code"}, {Name: "trade_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"open", "high", "low", "close", "pre_close", "change_pct", "vol", "amount",
		}),
	}
	flowConflict = clause.OnConflict{
		Columns: []clause.Column{{Name: "ts_code"}, {Name: "trade_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"buy_sm_amount", "buy_md_amount", "buy_lg_amount", "buy_elg_amount",
			"sell_sm_amount", "sell_md_amount", "sell_lg_amount", "sell_elg_amount",
			"net_mf_amount", "main_net_inflow",
		}),
	}
)

// UpsertBar 写入或覆盖一根日线，(ts_code, trade_date) 幂等
func (m *MarketDB) UpsertBar(bar *model.DailyBar) error {
	if err := m.db.Clauses(barConflict).Create(bar).Error; err != nil {
		return fmt.Errorf("保存日线数据失败: %w", err)
	}
	return nil
}

// UpsertBars 批量写入日线，批内冲突同样按覆盖处理
func (m *MarketDB) UpsertBars(bars []*model.DailyBar) error {
	if len(bars) == 0 {
		return nil
	}
	if err := m.db.Clauses(barConflict).CreateInBatches(bars, 500).Error; err != nil {
		return fmt.Errorf("批量保存日线数据失败: %w", err)
	}
	return nil
}

// UpsertFlow 写入或覆盖资金流向，主力净流入为空时由分档金额推导
func (m *MarketDB) UpsertFlow(flow *model.MoneyFlow) error {
	if flow.MainNetInflow == 0 {
		flow.MainNetInflow = flow.ComputeMainNetInflow()
	}
	if err := m.db.Clauses(flowConflict).Create(flow).Error; err != nil {
		return fmt.Errorf("保存资金流向失败: %w", err)
	}
	return nil
}

// UpsertFlows 批量写入资金流向
func (m *MarketDB) UpsertFlows(flows []*model.MoneyFlow) error {
	if len(flows) == 0 {
		return nil
	}
	for _, f := range flows {
		if f.MainNetInflow == 0 {
			f.MainNetInflow = f.ComputeMainNetInflow()
		}
	}
	if err := m.db.Clauses(flowConflict).CreateInBatches(flows, 500).Error; err != nil {
		return fmt.Errorf("批量保存资金流向失败: %w", err)
	}
	return nil
}

// UpsertDragonTiger 写入或覆盖龙虎榜，净买入由买卖金额推导
func (m *MarketDB) UpsertDragonTiger(dt *model.DragonTiger) error {
	dt.NetAmount = dt.BuyAmount - dt.SellAmount
	err := m.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ts_code"}, {Name: "trade_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"reason", "buy_amount", "sell_amount", "net_amount", "top_buyers", "top_sellers",
		}),
	}).Create(dt).Error
	if err != nil {
		return fmt.Errorf("保存龙虎榜数据失败: %w", err)
	}
	return nil
}

// UpsertMargin 写入或覆盖融资融券数据
func (m *MarketDB) UpsertMargin(md *model.MarginData) error {
	err := m.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ts_code"}, {Name: "trade_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"rzye", "rzmre", "rzche", "rqye", "rqmcl", "rzrqye",
		}),
	}).Create(md).Error
	if err != nil {
		return fmt.Errorf("保存融资融券数据失败: %w", err)
	}
	return nil
}

// UpsertSectorLinkage 写入或覆盖板块联动，(sector_name, trade_date) 幂等
func (m *MarketDB) UpsertSectorLinkage(sl *model.SectorLinkage) error {
	err := m.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "trade_date"}, {Name: "sector_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sector_pct", "leader_code", "leader_name", "leader_pct", "follower_count",
		}),
	}).Create(sl).Error
	if err != nil {
		return fmt.Errorf("保存板块联动数据失败: %w", err)
	}
	return nil
}

// QueryRange 查询区间内日线，按trade_date升序
func (m *MarketDB) QueryRange(tsCode, dateFrom, dateTo string) ([]*model.DailyBar, error) {
	var bars []*model.DailyBar
	err := m.db.Where("ts_code = ? AND trade_date >= ? AND trade_date <= ?", tsCode, dateFrom, dateTo).
		Order("trade_date ASC").
		Find(&bars).Error
	if err != nil {
		return nil, fmt.Errorf("查询区间日线失败: %w", err)
	}
	return bars, nil
}

// LatestBar 最近一根日线
func (m *MarketDB) LatestBar(tsCode string) (*model.DailyBar, error) {
	var bar model.DailyBar
	err := m.db.Where("ts_code = ?", tsCode).
		Order("trade_date DESC").
		First(&bar).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询最新日线失败: %w", err)
	}
	return &bar, nil
}

// BarOnOrAfter 指定日期当天或之后的第一根日线，验证时跳过停牌日
func (m *MarketDB) BarOnOrAfter(tsCode, date string) (*model.DailyBar, error) {
	var bar model.DailyBar
	err := m.db.Where("ts_code = ? AND trade_date >= ?", tsCode, date).
		Order("trade_date ASC").
		First(&bar).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询验证日线失败: %w", err)
	}
	return &bar, nil
}

// RecentBars 最近N根日线，按trade_date降序
func (m *MarketDB) RecentBars(tsCode string, limit int) ([]*model.DailyBar, error) {
	var bars []*model.DailyBar
	err := m.db.Where("ts_code = ?", tsCode).
		Order("trade_date DESC").
		Limit(limit).
		Find(&bars).Error
	if err != nil {
		return nil, fmt.Errorf("查询历史日线失败: %w", err)
	}
	return bars, nil
}

// RecentFlows 最近N条资金流向，按trade_date降序
func (m *MarketDB) RecentFlows(tsCode string, limit int) ([]*model.MoneyFlow, error) {
	var flows []*model.MoneyFlow
	err := m.db.Where("ts_code = ?", tsCode).
		Order("trade_date DESC").
		Limit(limit).
		Find(&flows).Error
	if err != nil {
		return nil, fmt.Errorf("查询资金流向失败: %w", err)
	}
	return flows, nil
}

// DragonTigerByDate 某日龙虎榜，按净买入降序
func (m *MarketDB) DragonTigerByDate(tradeDate string) ([]*model.DragonTiger, error) {
	var items []*model.DragonTiger
	err := m.db.Where("trade_date = ?", tradeDate).
		Order("net_amount DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询龙虎榜失败: %w", err)
	}
	return items, nil
}

// StockDragonTiger 某股票龙虎榜历史
func (m *MarketDB) StockDragonTiger(tsCode string, limit int) ([]*model.DragonTiger, error) {
	var items []*model.DragonTiger
	err := m.db.Where("ts_code = ?", tsCode).
		Order("trade_date DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询股票龙虎榜失败: %w", err)
	}
	return items, nil
}

// MarginHistory 融资融券历史
func (m *MarketDB) MarginHistory(tsCode string, limit int) ([]*model.MarginData, error) {
	var items []*model.MarginData
	err := m.db.Where("ts_code = ?", tsCode).
		Order("trade_date DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询融资融券数据失败: %w", err)
	}
	return items, nil
}

// SectorLinkageByDate 某日板块联动，按板块涨幅降序
func (m *MarketDB) SectorLinkageByDate(tradeDate string) ([]*model.SectorLinkage, error) {
	var items []*model.SectorLinkage
	err := m.db.Where("trade_date = ?", tradeDate).
		Order("sector_pct DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询板块联动失败: %w", err)
	}
	return items, nil
}

// SaveStocks 全量刷新股票基础信息
func (m *MarketDB) SaveStocks(stocks []*model.Stock) error {
	if len(stocks) == 0 {
		return nil
	}
	err := m.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ts_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"symbol", "name", "industry", "list_date", "updated_at",
		}),
	}).CreateInBatches(stocks, 500).Error
	if err != nil {
		return fmt.Errorf("保存股票信息失败: %w", err)
	}
	return nil
}

// StockByCode 按代码查股票
func (m *MarketDB) StockByCode(tsCode string) (*model.Stock, error) {
	var stock model.Stock
	err := m.db.First(&stock, "ts_code = ?", tsCode).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("获取股票信息失败: %w", err)
	}
	return &stock, nil
}

// SearchByName 按名称模糊查股票
func (m *MarketDB) SearchByName(keyword string, limit int) ([]*model.Stock, error) {
	var stocks []*model.Stock
	err := m.db.Where("name LIKE ?", "%"+keyword+"%").
		Limit(limit).
		Find(&stocks).Error
	if err != nil {
		return nil, fmt.Errorf("搜索股票失败: %w", err)
	}
	return stocks, nil
}

// AllStocks 全部股票，按代码排序
func (m *MarketDB) AllStocks() ([]*model.Stock, error) {
	var stocks []*model.Stock
	err := m.db.Order("ts_code ASC").Find(&stocks).Error
	if err != nil {
		return nil, fmt.Errorf("查询股票列表失败: %w", err)
	}
	return stocks, nil
}

// AddToWatchlist 加入自选，重复加入覆盖加入价
func (m *MarketDB) AddToWatchlist(item *model.WatchlistItem) error {
	err := m.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ts_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "add_price", "add_date"}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("加入自选失败: %w", err)
	}
	return nil
}

// RemoveFromWatchlist 移出自选
func (m *MarketDB) RemoveFromWatchlist(tsCode string) error {
	if err := m.db.Where("ts_code = ?", tsCode).Delete(&model.WatchlistItem{}).Error; err != nil {
		return fmt.Errorf("移出自选失败: %w", err)
	}
	return nil
}

// Watchlist 自选股列表，按加入时间倒序
func (m *MarketDB) Watchlist() ([]*model.WatchlistItem, error) {
	var items []*model.WatchlistItem
	err := m.db.Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("查询自选股失败: %w", err)
	}
	return items, nil
}
