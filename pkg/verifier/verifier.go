package verifier

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"StockSentinel/pkg/config"
	"StockSentinel/pkg/database"
	"StockSentinel/pkg/model"
)

// Verifier 推荐验证任务：扫描到期的pending推荐，
// 用行情库里的已实现收盘价结算成win/lose
type Verifier struct {
	market  *database.MarketDB
	recs    *database.RecommendationDB
	policy  model.VerifyPolicy
	lagDays int
	logger  *zap.Logger
}

// New 创建验证任务
func New(db *database.DB, cfg *config.Config, logger *zap.Logger) *Verifier {
	return &Verifier{
		market: db.Market(),
		recs:   db.Recommendation(),
		policy: model.VerifyPolicy{
			WinThreshold:  decimal.NewFromFloat(cfg.Verify.WinThresholdPct),
			LoseThreshold: decimal.NewFromFloat(cfg.Verify.LoseThresholdPct),
		},
		lagDays: cfg.Verify.LagDays,
		logger:  logger,
	}
}

// SweepResult 一轮验证的汇总
type SweepResult struct {
	Scanned  int `json:"scanned"`
	Verified int `json:"verified"`
	Skipped  int `json:"skipped"`
}

// Sweep 执行一轮验证
// 结算价取推荐日满lag_days后第一根日线的收盘价；
// 行情缺失（停牌、数据未到）的推荐跳过，留待下一轮
func (v *Verifier) Sweep() (*SweepResult, error) {
	cutoff := time.Now().AddDate(0, 0, -v.lagDays).Format("20060102")
	pending, err := v.recs.PendingOlderThan(cutoff)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Scanned: len(pending)}
	for _, rec := range pending {
		recDay, err := time.Parse("20060102", rec.RecommendDate)
		if err != nil {
			v.logger.Warn("推荐日期非法，跳过",
				zap.Uint64("id", rec.ID),
				zap.String("recommend_date", rec.RecommendDate),
			)
			result.Skipped++
			continue
		}
		target := recDay.AddDate(0, 0, v.lagDays).Format("20060102")

		bar, err := v.market.BarOnOrAfter(rec.TsCode, target)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				result.Skipped++
				continue
			}
			return result, err
		}

		outcome, err := v.recs.Verify(rec.ID, bar.TradeDate, decimal.NewFromFloat(bar.Close), v.policy)
		if err != nil {
			if errors.Is(err, database.ErrAlreadyResolved) {
				continue
			}
			return result, err
		}
		result.Verified++
		v.logger.Info("推荐验证完成",
			zap.Uint64("id", rec.ID),
			zap.String("ts_code", rec.TsCode),
			zap.String("type", string(rec.RecommendType)),
			zap.String("status", string(outcome.Status)),
			zap.String("profit_pct", outcome.ProfitPct.StringFixed(2)),
		)
	}

	v.logger.Info("验证任务结束",
		zap.Int("scanned", result.Scanned),
		zap.Int("verified", result.Verified),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
