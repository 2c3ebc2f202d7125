package database

import (
	"errors"
)

var (
	// ErrNotFound 按键查询无匹配行，写路径上必须显式失败
	ErrNotFound = errors.New("记录不存在")

	// ErrInsufficientPosition 卖出数量超过可用持仓，交易整体拒绝
	ErrInsufficientPosition = errors.New("持仓不足")

	// ErrAlreadyResolved 推荐已验证过，重复验证按幂等处理
	ErrAlreadyResolved = errors.New("推荐已验证")
)
