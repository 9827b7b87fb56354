package source

import (
	"strings"

	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/samber/lo"
)

// Заглушка, которую newsapi отдает вместо удаленных статей
const removedPlaceholder = "[Removed]"

// Убирает пустые и удаленные статьи, дубли по URL и статьи со стоп-словами.
// Порядок статей сохраняется.
func cleanup(articles []model.Article, filterKeywords []string) []model.Article {
	articles = lo.Filter(articles, func(a model.Article, _ int) bool {
		return a.URL != "" && a.Title != removedPlaceholder && !articleShouldBeSkipped(a, filterKeywords)
	})

	return lo.UniqBy(articles, func(a model.Article) string {
		return a.URL
	})
}

func articleShouldBeSkipped(a model.Article, filterKeywords []string) bool {
	title := strings.ToLower(a.Title)
	description := strings.ToLower(a.Description)

	for _, keyword := range filterKeywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		if strings.Contains(title, keyword) || strings.Contains(description, keyword) {
			return true
		}
	}

	return false
}
