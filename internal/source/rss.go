package source

import (
	"context"
	"strings"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/samber/lo"
	"github.com/tomakado/containers/set"
)

// RSS лента как последний провайдер в цепочке.
// Страниц у RSS нет, поэтому все, что дальше первой страницы, пустое.
type RSSProvider struct {
	// URL откуда забираем ленту
	URL  string
	name string
}

func NewRSSProvider(feedURL string) RSSProvider {
	return RSSProvider{URL: feedURL, name: "rss:" + feedURL}
}

func (s RSSProvider) Name() string {
	return s.name
}

func (s RSSProvider) Fetch(ctx context.Context, q Query) ([]model.Article, error) {
	if q.Page > 1 {
		return nil, nil
	}

	feed, err := s.loadFeed(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	var articles []model.Article
	for _, item := range feed.Items {
		if q.filtered() && !itemMatchesCategory(item, q.Category) {
			continue
		}

		var published string
		if !item.Date.IsZero() {
			published = item.Date.UTC().Format(time.RFC3339)
		}

		articles = append(articles, model.Article{
			URL:         item.Link,
			Title:       item.Title,
			Description: item.Summary,
			PublishedAt: published,
			Source:      model.ArticleSource{Name: feed.Title},
		})

		if q.PageSize > 0 && len(articles) == q.PageSize {
			break
		}
	}

	return articles, nil
}

// Категория совпадает с одной из категорий элемента или встречается в заголовке
func itemMatchesCategory(item *rss.Item, category string) bool {
	c := lower(category)

	categories := set.New(lo.Map(item.Categories, func(ic string, _ int) string {
		return lower(ic)
	})...)

	return categories.Contains(c) || strings.Contains(strings.ToLower(item.Title), c)
}

// rss.Fetch не принимает контекст, поэтому ждем результат в select
func (s RSSProvider) loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	var (
		feedCh = make(chan *rss.Feed, 1)
		errCh  = make(chan error, 1)
	)

	go func() {
		feed, err := rss.Fetch(url)
		if err != nil {
			errCh <- err
			return
		}

		feedCh <- feed
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case feed := <-feedCh:
		return feed, nil
	}
}
