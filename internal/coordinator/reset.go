package coordinator

import (
	"context"
	"fmt"

	"github.com/kovalyov-valentin/news-reader/internal/model"
)

// Выход из аккаунта: wipe очищает хранилище, после чего состояние
// возвращается к первому запуску. Все делается под persistMu, чтобы
// ни одна запись не попала в хранилище между его очисткой и сбросом памяти.
// Если wipe вернул ошибку, состояние в памяти не трогается.
func (c *Coordinator) Reset(ctx context.Context, wipe func(ctx context.Context) error) error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	if err := wipe(ctx); err != nil {
		return fmt.Errorf("wipe store: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// fetch, который еще идет, увидит новое поколение и ничего не применит
	c.generation++
	c.phase = Idle
	c.errMsg = ""

	c.articles = nil
	c.featured = nil
	c.category = model.CategoryAll
	c.page = 1
	c.hasMore = true
	c.resetFeatured = false

	c.searchQuery = ""
	c.searchResults = nil
	c.recentSearches = nil

	c.bookmarks = nil
	c.cached = nil

	return nil
}
