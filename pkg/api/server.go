package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"StockSentinel/pkg/config"
)

// Server API服务器
type Server struct {
	router *gin.Engine
	srv    *http.Server
	logger *zap.Logger
}

// NewServer 创建新的API服务器
func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	router := gin.New()

	// 设置中间件
	router.Use(gin.Recovery())

	srv := &http.Server{
		Addr:         ":" + cfg.API.Port,
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	return &Server{
		router: router,
		srv:    srv,
		logger: logger,
	}
}

// SetupRoutes 设置路由，整个接口面是只读查询，
// 供外部通知方轮询推荐结果、供运营端查台账
func (s *Server) SetupRoutes(handlers *Handlers) {
	// 健康检查
	s.router.GET("/health", handlers.HealthCheck)
	s.router.GET("/ready", handlers.ReadinessCheck)

	// API v1 路由组
	v1 := s.router.Group("/api/v1")
	{
		// 行情接口
		v1.GET("/bars", handlers.GetBars)
		v1.GET("/bars/latest", handlers.GetLatestBar)
		v1.GET("/flows", handlers.GetFlows)
		v1.GET("/dragon-tiger", handlers.GetDragonTiger)
		v1.GET("/margin", handlers.GetMargin)
		v1.GET("/sectors", handlers.GetSectorLinkage)
		v1.GET("/stocks", handlers.SearchStocks)

		// 推荐台账接口
		v1.GET("/recommendations", handlers.GetRecommendations)
		v1.GET("/recommendations/pending", handlers.GetPendingRecommendations)
		v1.GET("/recommendations/resolved", handlers.GetResolvedRecommendations)
		v1.GET("/recommendations/stats", handlers.GetRecommendationStats)

		// 持仓与成交接口
		v1.GET("/positions", handlers.GetPositions)
		v1.GET("/positions/:ts_code", handlers.GetPosition)
		v1.GET("/trades", handlers.GetTrades)

		// 回测结果接口
		v1.GET("/backtests", handlers.GetBacktests)

		// 自选股接口
		v1.GET("/watchlist", handlers.GetWatchlist)
		v1.POST("/watchlist", handlers.AddWatchlist)
		v1.DELETE("/watchlist/:ts_code", handlers.RemoveWatchlist)
	}
}

// Start 启动服务器并阻塞到收到退出信号
func (s *Server) Start() {
	// 在goroutine中启动服务器
	go func() {
		s.logger.Info("API服务器启动", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.logger.Info("正在关闭服务器...")

	// 设置超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 优雅关闭
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("关闭服务器失败", zap.Error(err))
	}
}
