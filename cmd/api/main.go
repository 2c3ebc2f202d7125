package main

import (
	"log"
	"os"

	"go.uber.org/zap"

	"StockSentinel/pkg/api"
	"StockSentinel/pkg/config"
	"StockSentinel/pkg/database"
	"StockSentinel/pkg/logger"
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

	zlog.Info("启动查询API服务...", zap.String("env", cfg.App.Env))

	// 连接数据库
	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		zlog.Fatal("迁移数据库失败", zap.Error(err))
	}

	// 启动API服务器
	server := api.NewServer(cfg, zlog)
	server.SetupRoutes(api.NewHandlers(db))
	server.Start()

	zlog.Info("查询API服务已退出")
}
