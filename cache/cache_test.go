package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	ctx := context.Background()

	_, err := kv.Get(ctx, "food-storage.u1")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "food-storage.u1", []byte(`{"meals":[]}`)))
	b, err := kv.Get(ctx, "food-storage.u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"meals":[]}`, string(b))

	require.NoError(t, kv.Set(ctx, "food-storage.u1", []byte(`{"meals":[1]}`)))
	b, _ = kv.Get(ctx, "food-storage.u1")
	assert.JSONEq(t, `{"meals":[1]}`, string(b))

	require.NoError(t, kv.Delete(ctx, "food-storage.u1"))
	require.NoError(t, kv.Delete(ctx, "food-storage.u1"))
	_, err = kv.Get(ctx, "food-storage.u1")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestFileKV(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	exerciseKV(t, kv)
}

func TestFileKVSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	assert.Equal(t, dir+"/goals-storage.a_b.json", kv.path("goals-storage.a/b"))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}
