package inmemorycache

import (
	"sync"
	"time"

	"ulascansenturk/watchface-weather/internal/location"
)

var _ location.FixCache = (*PositionCache)(nil)

// PositionCache keeps the last fix per position source. A fix is served only
// while it is younger than the max age the caller asks for.
type PositionCache struct {
	fixes           map[string]location.Fix
	mutex           sync.Mutex
	retention       time.Duration
	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
}

func NewPositionCache(retention, cleanupInterval time.Duration) *PositionCache {
	cache := &PositionCache{
		fixes:           make(map[string]location.Fix),
		retention:       retention,
		cleanupInterval: cleanupInterval,
		stop:            make(chan struct{}),
	}

	go cache.startCleanup()

	return cache
}

func (m *PositionCache) Get(source string, maxAge time.Duration) (location.Fix, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	fix, exists := m.fixes[source]
	if !exists {
		return location.Fix{}, false
	}

	if time.Since(fix.Timestamp) > maxAge {
		return location.Fix{}, false
	}

	return fix, true
}

func (m *PositionCache) Set(source string, fix location.Fix) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.fixes[source] = fix
}

func (m *PositionCache) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})
}

func (m *PositionCache) startCleanup() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.mutex.Lock()
			now := time.Now()
			for k, v := range m.fixes {
				if now.Sub(v.Timestamp) > m.retention {
					delete(m.fixes, k)
				}
			}
			m.mutex.Unlock()
		}
	}
}
