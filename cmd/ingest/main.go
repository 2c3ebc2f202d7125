package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"StockSentinel/pkg/config"
	"StockSentinel/pkg/database"
	"StockSentinel/pkg/logger"
	"StockSentinel/pkg/messaging"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v\n", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("初始化日志失败: %v\n", err)
	}
	defer zlog.Sync()

	zlog.Info("启动行情入库服务...")

	// 连接数据库
	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		zlog.Fatal("迁移数据库失败", zap.Error(err))
	}

	// 连接NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS.URL, cfg.NATS.ClientID+"-ingest", zlog)
	if err != nil {
		zlog.Fatal("连接NATS失败", zap.Error(err))
	}
	defer natsClient.Close()

	// 启动入库工作器
	worker := messaging.NewIngestWorker(natsClient, db.Market(), zlog)
	if err := worker.Start(); err != nil {
		zlog.Fatal("启动入库工作器失败", zap.Error(err))
	}

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zlog.Info("正在关闭行情入库服务...")
}
