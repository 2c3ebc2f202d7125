package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"StockSentinel/pkg/config"
	"StockSentinel/pkg/database"
	"StockSentinel/pkg/verifier"
)

// Scheduler 任务调度器：定时跑推荐验证与缓存清理
type Scheduler struct {
	cron     *cron.Cron
	verifier *verifier.Verifier
	cache    *database.CacheDB
	cfg      *config.Config
	logger   *zap.Logger
}

// NewScheduler 创建任务调度器
func NewScheduler(v *verifier.Verifier, cache *database.CacheDB, cfg *config.Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		verifier: v,
		cache:    cache,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start 启动调度器
func (s *Scheduler) Start() error {
	// 收盘后验证到期推荐
	if _, err := s.cron.AddFunc(s.cfg.Verify.Cron, func() {
		s.logger.Info("开始验证推荐...")
		if _, err := s.verifier.Sweep(); err != nil {
			s.logger.Error("验证推荐失败", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("注册验证任务失败: %w", err)
	}

	// 定期清理过期缓存
	spec := fmt.Sprintf("@every %s", s.cfg.Cache.SweepEvery)
	if _, err := s.cron.AddFunc(spec, func() {
		n, err := s.cache.Sweep()
		if err != nil {
			s.logger.Error("清理缓存失败", zap.Error(err))
			return
		}
		if n > 0 {
			s.logger.Info("清理过期缓存", zap.Int64("deleted", n))
		}
	}); err != nil {
		return fmt.Errorf("注册缓存清理任务失败: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
