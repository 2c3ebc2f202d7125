package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"StockSentinel/pkg/database"
	"StockSentinel/pkg/model"
)

// Handlers API处理程序
type Handlers struct {
	db *database.DB
}

// NewHandlers 创建新的API处理程序
func NewHandlers(db *database.DB) *Handlers {
	return &Handlers{db: db}
}

// HealthCheck 健康检查处理程序
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ReadinessCheck 就绪检查处理程序
func (h *Handlers) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// GetBars 查询区间日线
func (h *Handlers) GetBars(c *gin.Context) {
	tsCode := c.Query("ts_code")
	if tsCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少ts_code参数"})
		return
	}
	start := c.DefaultQuery("start", "00000000")
	end := c.DefaultQuery("end", "99999999")

	bars, err := h.db.Market().QueryRange(tsCode, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bars, "count": len(bars)})
}

// GetLatestBar 查询最近一根日线
func (h *Handlers) GetLatestBar(c *gin.Context) {
	tsCode := c.Query("ts_code")
	if tsCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少ts_code参数"})
		return
	}
	bar, err := h.db.Market().LatestBar(tsCode)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "行情数据不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bar})
}

// GetFlows 查询资金流向
func (h *Handlers) GetFlows(c *gin.Context) {
	tsCode := c.Query("ts_code")
	if tsCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少ts_code参数"})
		return
	}
	limit := intQuery(c, "limit", 30)

	flows, err := h.db.Market().RecentFlows(tsCode, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": flows, "count": len(flows)})
}

// GetDragonTiger 查询龙虎榜，按日期或按股票
func (h *Handlers) GetDragonTiger(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		items, err := h.db.Market().DragonTigerByDate(date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
		return
	}

	tsCode := c.Query("ts_code")
	if tsCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少date或ts_code参数"})
		return
	}
	items, err := h.db.Market().StockDragonTiger(tsCode, intQuery(c, "limit", 30))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
}

// GetMargin 查询融资融券历史
func (h *Handlers) GetMargin(c *gin.Context) {
	tsCode := c.Query("ts_code")
	if tsCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少ts_code参数"})
		return
	}
	items, err := h.db.Market().MarginHistory(tsCode, intQuery(c, "limit", 30))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
}

// GetSectorLinkage 查询某日板块联动
func (h *Handlers) GetSectorLinkage(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少date参数"})
		return
	}
	items, err := h.db.Market().SectorLinkageByDate(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
}

// SearchStocks 按名称搜索股票
func (h *Handlers) SearchStocks(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		stocks, err := h.db.Market().AllStocks()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": stocks, "count": len(stocks)})
		return
	}
	stocks, err := h.db.Market().SearchByName(keyword, intQuery(c, "limit", 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stocks, "count": len(stocks)})
}

// GetRecommendations 查询某日新建的推荐
func (h *Handlers) GetRecommendations(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少date参数"})
		return
	}
	recs, err := h.db.Recommendation().CreatedOn(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recs, "count": len(recs)})
}

// GetPendingRecommendations 查询待验证推荐
func (h *Handlers) GetPendingRecommendations(c *gin.Context) {
	before := c.DefaultQuery("before", "99999999")
	recs, err := h.db.Recommendation().PendingOlderThan(before)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recs, "count": len(recs)})
}

// GetResolvedRecommendations 查询已验证推荐，供通知方轮询
func (h *Handlers) GetResolvedRecommendations(c *gin.Context) {
	since := c.Query("since")
	if since == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少since参数"})
		return
	}
	recs, err := h.db.Recommendation().ResolvedSince(since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recs, "count": len(recs)})
}

// GetRecommendationStats 推荐命中率统计
func (h *Handlers) GetRecommendationStats(c *gin.Context) {
	since := c.DefaultQuery("since", "00000000")
	stats, err := h.db.Recommendation().Stats(since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPositions 持仓汇总
func (h *Handlers) GetPositions(c *gin.Context) {
	positions, realized, err := h.db.Ledger().PositionSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":         positions,
		"count":        len(positions),
		"realized_pnl": realized,
	})
}

// GetPosition 单只持仓，带latest参数时附带市值与浮动盈亏
func (h *Handlers) GetPosition(c *gin.Context) {
	tsCode := c.Param("ts_code")
	pos, err := h.db.Ledger().PositionByCode(tsCode)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "持仓不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"data": pos}
	if latestStr := c.Query("latest"); latestStr != "" {
		latest, err := decimal.NewFromString(latestStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "latest参数无效"})
			return
		}
		resp["market_value"] = pos.MarketValue(latest)
		resp["float_pnl"] = pos.FloatPnl(latest)
	}
	c.JSON(http.StatusOK, resp)
}

// GetTrades 成交流水
func (h *Handlers) GetTrades(c *gin.Context) {
	trades, err := h.db.Ledger().TradeHistory(intQuery(c, "limit", 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": trades, "count": len(trades)})
}

// GetBacktests 回测结果
func (h *Handlers) GetBacktests(c *gin.Context) {
	tsCode := c.Query("ts_code")
	if tsCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少ts_code参数"})
		return
	}
	results, err := h.db.Backtest().RunsFor(tsCode, intQuery(c, "limit", 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": results, "count": len(results)})
}

// GetWatchlist 自选股列表
func (h *Handlers) GetWatchlist(c *gin.Context) {
	items, err := h.db.Market().Watchlist()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
}

// AddWatchlist 加入自选
func (h *Handlers) AddWatchlist(c *gin.Context) {
	var item model.WatchlistItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体无效"})
		return
	}
	if item.TsCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少ts_code字段"})
		return
	}
	if err := h.db.Market().AddToWatchlist(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// RemoveWatchlist 移出自选
func (h *Handlers) RemoveWatchlist(c *gin.Context) {
	if err := h.db.Market().RemoveFromWatchlist(c.Param("ts_code")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// intQuery 解析整型查询参数，非法取默认值
func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
