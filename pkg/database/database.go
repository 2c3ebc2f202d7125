package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"StockSentinel/pkg/config"
)

// DB 数据库连接，所有实体仓库共享同一个句柄
type DB struct {
	db       *gorm.DB
	cacheTTL time.Duration
}

// New 创建数据库连接
func New(cfg *config.Config) (*DB, error) {
	dbCfg := cfg.Database

	// 构建连接字符串
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.DBName, dbCfg.SSLMode,
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqldb, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接失败: %w", err)
	}

	// 设置连接池参数
	sqldb.SetMaxOpenConns(dbCfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(dbCfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(5 * time.Minute)

	// 测试连接
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("测试数据库连接失败: %w", err)
	}

	return &DB{db: gdb, cacheTTL: cfg.Cache.DefaultTTL}, nil
}

// NewWithGorm 直接注入已有gorm句柄，便于测试fixture并行使用
func NewWithGorm(gdb *gorm.DB) *DB {
	return &DB{db: gdb, cacheTTL: 2 * time.Hour}
}

// Close 关闭数据库连接
func (d *DB) Close() error {
	sqldb, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqldb.Close()
}

// Market 行情时序仓库
func (d *DB) Market() *MarketDB {
	return &MarketDB{db: d.db}
}

// Cache 过期缓存仓库
func (d *DB) Cache() *CacheDB {
	return &CacheDB{db: d.db, defaultTTL: d.cacheTTL}
}

// Recommendation 推荐台账仓库
func (d *DB) Recommendation() *RecommendationDB {
	return &RecommendationDB{db: d.db}
}

// Ledger 交易与持仓仓库
func (d *DB) Ledger() *LedgerDB {
	return &LedgerDB{db: d.db}
}

// Backtest 回测结果仓库
func (d *DB) Backtest() *BacktestDB {
	return &BacktestDB{db: d.db}
}

// lockForUpdate 行级锁。SQLite整库串行写，不支持也不需要FOR UPDATE
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
