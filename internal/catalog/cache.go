package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
)

// PageCache stores encoded query results by key. Get reports a miss with
// ok == false and a nil error. Implementations namespace the keys.
type PageCache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	// Invalidate drops every cached page.
	Invalidate(ctx context.Context) error
}

func cacheKey(p Params) string {
	return p.values(p.Page).Encode()
}

// flightKey scopes a singleflight call to one cache generation so a query
// started after a write never joins a fill that read the old data.
func flightKey(key string, gen uint64) string {
	return strconv.FormatUint(gen, 10) + "|" + key
}

func (s *Service) cachedPage(ctx context.Context, key string) (PagedResult, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("catalog cache get failed", "key", key, "error", err)
		return PagedResult{}, false
	}
	if !ok {
		return PagedResult{}, false
	}
	var res PagedResult
	if err := json.Unmarshal(data, &res); err != nil {
		s.log.Warn("catalog cache entry unreadable", "key", key, "error", err)
		return PagedResult{}, false
	}
	return res, true
}

// storePage caches res unless a write invalidated the cache after gen was
// read; that result may predate the write.
func (s *Service) storePage(ctx context.Context, key string, gen uint64, res PagedResult) {
	data, err := json.Marshal(res)
	if err != nil {
		s.log.Warn("catalog cache encode failed", "key", key, "error", err)
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheGen != gen {
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.log.Warn("catalog cache set failed", "key", key, "error", err)
	}
}

func (s *Service) generation() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.cacheGen
}

func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cacheGen++
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("catalog cache invalidate failed", "error", err)
	}
}
