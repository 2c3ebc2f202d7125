package messaging

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"StockSentinel/pkg/database"
	"StockSentinel/pkg/model"
)

// IngestWorker 行情入库工作器
// 消费采集端发布的归一化批次，逐批落入时序存储；
// 跨批次去重交给存储层的幂等upsert，这里不做检查
type IngestWorker struct {
	client *NATSClient
	market *database.MarketDB
	logger *zap.Logger
}

// NewIngestWorker 创建入库工作器
func NewIngestWorker(client *NATSClient, market *database.MarketDB, logger *zap.Logger) *IngestWorker {
	return &IngestWorker{
		client: client,
		market: market,
		logger: logger,
	}
}

// Start 订阅全部行情主题
func (w *IngestWorker) Start() error {
	subs := []struct {
		subject string
		durable string
		handler MessageHandler
	}{
		{SubjectDaily, "ingest-daily", w.handleDaily},
		{SubjectFlow, "ingest-flow", w.handleFlow},
		{SubjectDragonTiger, "ingest-dragon-tiger", w.handleDragonTiger},
		{SubjectMargin, "ingest-margin", w.handleMargin},
		{SubjectSector, "ingest-sector", w.handleSector},
		{SubjectStocks, "ingest-stocks", w.handleStocks},
	}

	for _, s := range subs {
		if err := w.client.Subscribe(s.subject, s.durable, s.handler); err != nil {
			return fmt.Errorf("订阅%s失败: %w", s.subject, err)
		}
	}
	return nil
}

func (w *IngestWorker) handleDaily(data []byte) error {
	var bars []*model.DailyBar
	if err := json.Unmarshal(data, &bars); err != nil {
		return fmt.Errorf("解析日线批次失败: %w", err)
	}
	if err := w.market.UpsertBars(bars); err != nil {
		return err
	}
	w.logger.Debug("日线入库", zap.Int("count", len(bars)))
	return nil
}

func (w *IngestWorker) handleFlow(data []byte) error {
	var flows []*model.MoneyFlow
	if err := json.Unmarshal(data, &flows); err != nil {
		return fmt.Errorf("解析资金流向批次失败: %w", err)
	}
	if err := w.market.UpsertFlows(flows); err != nil {
		return err
	}
	w.logger.Debug("资金流向入库", zap.Int("count", len(flows)))
	return nil
}

func (w *IngestWorker) handleDragonTiger(data []byte) error {
	var items []*model.DragonTiger
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("解析龙虎榜批次失败: %w", err)
	}
	for _, dt := range items {
		if err := w.market.UpsertDragonTiger(dt); err != nil {
			return err
		}
	}
	return nil
}

func (w *IngestWorker) handleMargin(data []byte) error {
	var items []*model.MarginData
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("解析融资融券批次失败: %w", err)
	}
	for _, md := range items {
		if err := w.market.UpsertMargin(md); err != nil {
			return err
		}
	}
	return nil
}

func (w *IngestWorker) handleSector(data []byte) error {
	var items []*model.SectorLinkage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("解析板块联动批次失败: %w", err)
	}
	for _, sl := range items {
		if err := w.market.UpsertSectorLinkage(sl); err != nil {
			return err
		}
	}
	return nil
}

func (w *IngestWorker) handleStocks(data []byte) error {
	var stocks []*model.Stock
	if err := json.Unmarshal(data, &stocks); err != nil {
		return fmt.Errorf("解析股票信息批次失败: %w", err)
	}
	return w.market.SaveStocks(stocks)
}
