package persistence

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore 所有后端共用的行为测试
func exerciseStore(t *testing.T, store Store) {
	t.Helper()

	key := "battle_slot_test"
	_ = store.Delete(key)

	t.Run("不存在的键", func(t *testing.T) {
		assert.False(t, store.Has(key))
		_, err := store.Get(key)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("写入与读取", func(t *testing.T) {
		require.NoError(t, store.Put(key, []byte{1, 2, 3}))
		assert.True(t, store.Has(key))
		data, err := store.Get(key)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, data)
	})

	t.Run("覆盖写入", func(t *testing.T) {
		require.NoError(t, store.Put(key, []byte("second")))
		data, err := store.Get(key)
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, store.Delete(key))
		assert.False(t, store.Has(key))
		assert.NoError(t, store.Delete(key), "重复删除不报错")
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	exerciseStore(t, store)

	t.Run("写入数据被拷贝", func(t *testing.T) {
		buf := []byte("abc")
		require.NoError(t, store.Put("k", buf))
		buf[0] = 'x'
		data, _ := store.Get("k")
		assert.Equal(t, "abc", string(data))
	})
}

func TestGdataStore(t *testing.T) {
	// 使用临时目录作为用户数据目录
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	store, err := NewGdataStore("zombieshot_test")
	if err != nil {
		t.Skipf("gdata not available: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("ZOMBIESHOT_TEST_DSN")
	if dsn == "" {
		t.Skip("ZOMBIESHOT_TEST_DSN not set")
	}

	store, err := NewPostgresStore(dsn)
	require.NoError(t, err)
	defer store.Close()
	exerciseStore(t, store)
}

func TestOpen(t *testing.T) {
	store, err := Open(BackendMemory, "zombieshot_test", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, err = Open(BackendPostgres, "zombieshot_test", "")
	assert.Error(t, err, "postgres 需要 DSN")

	_, err = Open("redis", "zombieshot_test", "")
	assert.Error(t, err)
}
