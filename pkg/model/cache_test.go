package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheEntryExpired(t *testing.T) {
	now := time.Now()
	entry := &CacheEntry{
		Key:      "quote:600000.SH",
		Payload:  []byte(`{"close":10.5}`),
		ExpireAt: now.Add(time.Second),
	}

	assert.False(t, entry.Expired(now))
	// 到达expire_at即过期，与清理任务无关
	assert.True(t, entry.Expired(now.Add(time.Second)))
	assert.True(t, entry.Expired(now.Add(2*time.Second)))
}
