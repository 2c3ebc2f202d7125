package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"StockSentinel/pkg/config"
	"StockSentinel/pkg/database"
	"StockSentinel/pkg/logger"
	"StockSentinel/pkg/scheduler"
	"StockSentinel/pkg/verifier"
)

func main() {
	once := flag.Bool("once", false, "只执行一轮验证后退出")
	flag.Parse()

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

	// 连接数据库
	db, err := database.New(cfg)
	if err != nil {
		zlog.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		zlog.Fatal("迁移数据库失败", zap.Error(err))
	}

	v := verifier.New(db, cfg, zlog)

	if *once {
		if _, err := v.Sweep(); err != nil {
			zlog.Fatal("验证推荐失败", zap.Error(err))
		}
		return
	}

	// 常驻模式：定时验证推荐、清理过期缓存
	zlog.Info("启动验证调度服务...")
	sched := scheduler.NewScheduler(v, db.Cache(), cfg, zlog)
	if err := sched.Start(); err != nil {
		zlog.Fatal("启动调度器失败", zap.Error(err))
	}
	defer sched.Stop()

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zlog.Info("正在关闭验证调度服务...")
}
