package redis

import (
	"context"
	"testing"
	"time"

	"venturedeck/pkg/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemoryCache()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", "v", time.Minute))
	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	now = now.Add(2 * time.Minute)
	v, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = m.GetOrError(ctx, "k")
	assert.True(t, errorx.IsNotFound(err))
}

func TestMemoryCacheSets(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemoryCache()
	m.now = func() time.Time { return now }

	require.NoError(t, m.AddToSet(ctx, "s", time.Minute, "a", "b"))
	require.NoError(t, m.AddToSet(ctx, "s", time.Minute, "b"))
	members, err := m.GetSetMembers(ctx, "s")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, members)

	require.NoError(t, m.Delete(ctx, "s"))
	members, _ = m.GetSetMembers(ctx, "s")
	assert.Empty(t, members)
}

func TestMemoryCacheSetExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemoryCache()
	m.now = func() time.Time { return now }

	require.NoError(t, m.AddToSet(ctx, "s", time.Minute, "a"))
	now = now.Add(2 * time.Minute)
	members, err := m.GetSetMembers(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, members)

	// 过期后重新写入不会带回旧成员
	require.NoError(t, m.AddToSet(ctx, "s", time.Minute, "b"))
	members, _ = m.GetSetMembers(ctx, "s")
	assert.Equal(t, []string{"b"}, members)
}

func TestMemoryCacheSubmitTaskRunsInline(t *testing.T) {
	m := NewMemoryCache()
	ran := false
	m.SubmitTask(func() { ran = true })
	assert.True(t, ran)
}
