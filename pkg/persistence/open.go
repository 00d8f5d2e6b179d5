package persistence

import (
	"fmt"
	"log"
)

// 存储后端名称
const (
	BackendGdata    = "gdata"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Open 按名称打开存储后端
//
// 参数：
//   - backend: "gdata"、"postgres" 或 "memory"
//   - appName: gdata 应用名
//   - dsn: PostgreSQL 连接串（仅 postgres 使用）
func Open(backend, appName, dsn string) (Store, error) {
	switch backend {
	case BackendGdata, "":
		return NewGdataStore(appName)
	case BackendPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("postgres backend requires a DSN")
		}
		return NewPostgresStore(dsn)
	case BackendMemory:
		log.Printf("[Persistence] Using in-memory store, saves will not survive restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
