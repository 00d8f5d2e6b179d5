// Package persistence 提供存档数据的键值存储后端
//
// 上层（BattleSerializer、HighScoreBoard）负责编码，这里只保存不透明的字节数据。
package persistence

import "errors"

// ErrNotFound 指定键不存在
var ErrNotFound = errors.New("persistence: key not found")

// Store 存储后端接口
type Store interface {
	// Put 写入（覆盖）指定键的数据
	Put(key string, data []byte) error
	// Get 读取指定键的数据，不存在时返回 ErrNotFound
	Get(key string) ([]byte, error)
	// Has 检查键是否存在
	Has(key string) bool
	// Delete 删除指定键，不存在时不报错
	Delete(key string) error
	// Close 释放底层资源
	Close() error
}
