package coordinator

import (
	"context"

	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/samber/lo"
)

// Добавляет копию статьи с отметкой времени. Повторное добавление ничего не меняет.
// Возвращает true, если закладка была добавлена.
func (c *Coordinator) AddBookmark(ctx context.Context, article model.Article) bool {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	if containsURL(c.bookmarks, article.URL) {
		c.mu.Unlock()
		return false
	}

	bookmarkedAt := c.now().UTC()
	article.BookmarkedAt = &bookmarkedAt
	c.bookmarks = append(cloneArticles(c.bookmarks), article)
	bookmarks := cloneArticles(c.bookmarks)
	c.mu.Unlock()

	c.persist(ctx, kv.KeyBookmarks, bookmarks)

	return true
}

// Удаляет закладку по URL. Для отсутствующего URL ничего не делает и возвращает false.
func (c *Coordinator) RemoveBookmark(ctx context.Context, url string) bool {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	if !containsURL(c.bookmarks, url) {
		c.mu.Unlock()
		return false
	}

	c.bookmarks = lo.Filter(c.bookmarks, func(a model.Article, _ int) bool {
		return a.URL != url
	})
	bookmarks := cloneArticles(c.bookmarks)
	c.mu.Unlock()

	c.persist(ctx, kv.KeyBookmarks, bookmarks)

	return true
}

func (c *Coordinator) IsBookmarked(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return containsURL(c.bookmarks, url)
}

func (c *Coordinator) Bookmarks() []model.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneArticles(c.bookmarks)
}

// Ищет статью по URL среди ленты, featured, кеша и закладок
func (c *Coordinator) FindArticle(url string) (model.Article, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.featured != nil && c.featured.URL == url {
		return *c.featured, true
	}

	for _, list := range [][]model.Article{c.articles, c.cached, c.searchResults, c.bookmarks} {
		if a, ok := lo.Find(list, func(a model.Article) bool { return a.URL == url }); ok {
			return a, true
		}
	}

	return model.Article{}, false
}

func containsURL(articles []model.Article, url string) bool {
	return lo.ContainsBy(articles, func(a model.Article) bool {
		return a.URL == url
	})
}
