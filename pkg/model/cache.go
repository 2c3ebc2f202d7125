package model

import (
	"time"
)

// CacheEntry 带过期时间的缓存条目，过期即失效，不做LRU淘汰
type CacheEntry struct {
	Key       string    `gorm:"column:key;type:varchar(200);primaryKey" json:"key"`
	Payload   []byte    `gorm:"column:payload;type:bytea;not null" json:"payload"`
	ExpireAt  time.Time `gorm:"column:expire_at;not null;index" json:"expire_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}

// Expired 过期判断以读取时刻为准，与清理任务是否执行无关
func (e *CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpireAt)
}
