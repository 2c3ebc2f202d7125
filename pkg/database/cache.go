package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StockSentinel/pkg/model"
)

// CacheDB 带过期时间的缓存仓库，过期是唯一淘汰策略
type CacheDB struct {
	db         *gorm.DB
	defaultTTL time.Duration
}

// Put 写入缓存，expire_at = now + ttl，同key覆盖
// ttl不为正时取配置的默认TTL
func (c *CacheDB) Put(key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	entry := &model.CacheEntry{
		Key:      key,
		Payload:  payload,
		ExpireAt: time.Now().Add(ttl),
	}
	err := c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expire_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

// Get 读取缓存，过期即未命中并顺手删除过期行
// 未命中返回 (nil, false, nil)，调用方回源取数，不视为错误
func (c *CacheDB) Get(key string) ([]byte, bool, error) {
	var entry model.CacheEntry
	err := c.db.First(&entry, "key = ?", key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("读取缓存失败: %w", err)
	}

	if entry.Expired(time.Now()) {
		// 惰性淘汰，删除失败不影响未命中结论
		c.db.Where("key = ? AND expire_at <= ?", key, time.Now()).Delete(&model.CacheEntry{})
		return nil, false, nil
	}
	return entry.Payload, true, nil
}

// Sweep 清理所有已过期条目，返回删除行数
// 与读写使用各自独立事务，可并发调用
func (c *CacheDB) Sweep() (int64, error) {
	res := c.db.Where("expire_at <= ?", time.Now()).Delete(&model.CacheEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("清理过期缓存失败: %w", res.Error)
	}
	return res.RowsAffected, nil
}
