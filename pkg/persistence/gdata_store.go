package persistence

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// savesObject gdata 中存档所在的对象名
const savesObject = "saves"

// GdataStore 基于 quasilyte/gdata 的跨平台本地存储
// 数据保存在用户数据目录下（Linux 为 ~/.local/share/<app>）
type GdataStore struct {
	manager *gdata.Manager
}

// NewGdataStore 打开应用的 gdata 存储
//
// 参数：
//   - appName: 应用名，决定数据目录
//
// 返回：
//   - *GdataStore: 存储实例
//   - error: 数据目录不可用时返回错误
func NewGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage for %s: %w", appName, err)
	}
	return &GdataStore{manager: m}, nil
}

// NewGdataStoreFromManager 使用已打开的 gdata.Manager（与 SettingsManager 共享）
func NewGdataStoreFromManager(m *gdata.Manager) *GdataStore {
	return &GdataStore{manager: m}
}

// Manager 返回底层 gdata.Manager
func (gs *GdataStore) Manager() *gdata.Manager {
	return gs.manager
}

// Put 写入数据
func (gs *GdataStore) Put(key string, data []byte) error {
	if err := gs.manager.SaveObjectProp(savesObject, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Get 读取数据
func (gs *GdataStore) Get(key string) ([]byte, error) {
	if !gs.manager.ObjectPropExists(savesObject, key) {
		return nil, ErrNotFound
	}
	data, err := gs.manager.LoadObjectProp(savesObject, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return data, nil
}

// Has 检查键是否存在
func (gs *GdataStore) Has(key string) bool {
	return gs.manager.ObjectPropExists(savesObject, key)
}

// Delete 删除键
func (gs *GdataStore) Delete(key string) error {
	if !gs.manager.ObjectPropExists(savesObject, key) {
		return nil
	}
	if err := gs.manager.DeleteObjectProp(savesObject, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close gdata 无需释放资源
func (gs *GdataStore) Close() error {
	return nil
}
