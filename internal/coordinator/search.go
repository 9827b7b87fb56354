package coordinator

import (
	"context"
	"strings"

	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/samber/lo"
)

// Ищет по закешированному снимку ленты, в сеть не ходит.
// Пустой запрос просто очищает результаты.
func (c *Coordinator) SearchArticles(ctx context.Context, query string) []model.Article {
	query = strings.TrimSpace(query)

	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	if query == "" {
		c.searchResults = nil
		c.searchQuery = ""
		c.mu.Unlock()
		return nil
	}

	c.recentSearches = pushRecent(c.recentSearches, query)
	recent := cloneStrings(c.recentSearches)

	results := matchArticles(c.cached, query)
	c.searchQuery = query
	c.searchResults = results
	c.mu.Unlock()

	c.persist(ctx, kv.KeyRecentSearches, recent)

	return cloneArticles(results)
}

// Ставит запрос в начало списка, убирает его прежнее вхождение и обрезает до maxRecentSearches
func pushRecent(recent []string, query string) []string {
	updated := append([]string{query}, lo.Filter(recent, func(s string, _ int) bool {
		return s != query
	})...)

	if len(updated) > maxRecentSearches {
		updated = updated[:maxRecentSearches]
	}

	return updated
}

// Статьи, в заголовке или описании которых есть query без учета регистра
func matchArticles(articles []model.Article, query string) []model.Article {
	q := strings.ToLower(query)

	return lo.Filter(articles, func(a model.Article, _ int) bool {
		return strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.Description), q)
	})
}

// Закрывает поиск, недавние запросы остаются
func (c *Coordinator) ClearSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = ""
	c.searchResults = nil
}

func (c *Coordinator) ClearRecentSearches(ctx context.Context) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	c.recentSearches = nil
	c.mu.Unlock()

	c.persist(ctx, kv.KeyRecentSearches, []string{})
}
