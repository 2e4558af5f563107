package redis

import (
	"context"
	"sync"
	"time"

	"venturedeck/pkg/errorx"
)

type memoryEntry struct {
	value    string
	expireAt time.Time
}

type memorySet struct {
	members  map[string]struct{}
	expireAt time.Time
}

// MemoryCache 进程内缓存，未配置 Redis 时和测试中使用
// 异步任务同步执行，单实例部署下行为与 RedisCache 一致
type MemoryCache struct {
	mu      sync.Mutex
	strings map[string]memoryEntry
	sets    map[string]*memorySet
	now     func() time.Time
}

// NewMemoryCache 创建进程内缓存
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		strings: make(map[string]memoryEntry),
		sets:    make(map[string]*memorySet),
		now:     time.Now,
	}
}

func (m *MemoryCache) expired(expireAt time.Time) bool {
	return !expireAt.IsZero() && !m.now().Before(expireAt)
}

func (m *MemoryCache) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strings[key] = memoryEntry{value: value, expireAt: m.deadline(ttl)}
	return nil
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.strings[key]
	if !ok {
		return "", nil
	}
	if m.expired(entry.expireAt) {
		delete(m.strings, key)
		return "", nil
	}
	return entry.value, nil
}

func (m *MemoryCache) GetOrError(ctx context.Context, key string) (string, error) {
	value, _ := m.Get(ctx, key)
	if value == "" {
		return "", errorx.Newf(errorx.CodeNotFound, "cache key %s not found", key)
	}
	return value, nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.strings, key)
	delete(m.sets, key)
	return nil
}

func (m *MemoryCache) AddToSet(_ context.Context, key string, ttl time.Duration, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[key]
	if !ok || m.expired(set.expireAt) {
		set = &memorySet{members: make(map[string]struct{})}
		m.sets[key] = set
	}
	for _, member := range members {
		set.members[member] = struct{}{}
	}
	if ttl > 0 {
		set.expireAt = m.deadline(ttl)
	}
	return nil
}

func (m *MemoryCache) GetSetMembers(_ context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[key]
	if !ok {
		return []string{}, nil
	}
	if m.expired(set.expireAt) {
		delete(m.sets, key)
		return []string{}, nil
	}
	members := make([]string, 0, len(set.members))
	for member := range set.members {
		members = append(members, member)
	}
	return members, nil
}

func (m *MemoryCache) SubmitTask(action func()) {
	action()
}

var _ AsyncCacheService = (*MemoryCache)(nil)
