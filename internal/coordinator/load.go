package coordinator

import (
	"context"
	"errors"
	"sync"

	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/logging"
	"github.com/kovalyov-valentin/news-reader/internal/metrics"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/samber/lo"
)

// Поднимает из хранилища кеш статей, недавние запросы и закладки.
// Три ключа читаются параллельно, отсутствие или порча одного не мешает остальным.
func (c *Coordinator) LoadCachedData(ctx context.Context) {
	var (
		wg       sync.WaitGroup
		cached   []model.Article
		recent   []string
		marks    []model.Article
		okCached bool
		okRecent bool
		okMarks  bool
	)

	load := func(key string, dst any, ok *bool) {
		defer wg.Done()

		err := kv.GetJSON(ctx, c.store, key, dst)
		switch {
		case err == nil:
			*ok = true
		case errors.Is(err, kv.ErrNotFound):
			logging.Debug().Str("key", key).Msg("nothing cached yet")
		default:
			metrics.StorageErrors.WithLabelValues("get").Inc()
			logging.Error().Err(err).Str("key", key).Msg("failed to load cached data")
		}
	}

	wg.Add(3)
	go load(kv.KeyCachedArticles, &cached, &okCached)
	go load(kv.KeyRecentSearches, &recent, &okRecent)
	go load(kv.KeyBookmarks, &marks, &okMarks)
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Если лента уже успела загрузиться из сети, кеш ее не перетирает
	if okCached && len(cached) > 0 && c.phase == Idle {
		c.cached = cloneArticles(cached)
		head := cached[0]
		c.featured = &head
		c.articles = cloneArticles(cached[1:])
	}

	if okRecent {
		recent = lo.Uniq(recent)
		if len(recent) > maxRecentSearches {
			recent = recent[:maxRecentSearches]
		}
		c.recentSearches = recent
	}

	if okMarks {
		c.bookmarks = lo.UniqBy(marks, func(a model.Article) string {
			return a.URL
		})
	}
}
