package persistence

import "sync"

// MemoryStore 内存存储（用于测试和无持久化的降级模式）
type MemoryStore struct {
	mutex sync.RWMutex
	data  map[string][]byte
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Put 写入数据（拷贝一份，调用方后续修改不影响存储内容）
func (ms *MemoryStore) Put(key string, data []byte) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.data[key] = append([]byte(nil), data...)
	return nil
}

// Get 读取数据
func (ms *MemoryStore) Get(key string) ([]byte, error) {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	data, ok := ms.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Has 检查键是否存在
func (ms *MemoryStore) Has(key string) bool {
	ms.mutex.RLock()
	defer ms.mutex.RUnlock()
	_, ok := ms.data[key]
	return ok
}

// Delete 删除键
func (ms *MemoryStore) Delete(key string) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	delete(ms.data, key)
	return nil
}

// Close 内存存储无需释放资源
func (ms *MemoryStore) Close() error {
	return nil
}
