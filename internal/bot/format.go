package bot

import (
	"fmt"
	"strings"

	"github.com/kovalyov-valentin/news-reader/internal/botkit/markup"
	"github.com/kovalyov-valentin/news-reader/internal/coordinator"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/samber/lo"
)

// Телеграм режет сообщения длиннее 4096 символов, поэтому показываем не всю ленту
const maxArticlesPerMessage = 10

const maxDescriptionRunes = 200

// Одна статья: заголовок-ссылка, источник и короткое описание
func formatArticle(article model.Article) string {
	var b strings.Builder

	b.WriteString("📰 ")
	b.WriteString(markup.Link(markup.Truncate(article.Title, 150), article.URL))

	if article.Source.Name != "" {
		b.WriteString("\n_")
		b.WriteString(markup.EscapeForMarkdown(article.Source.Name))
		b.WriteString("_")
	}

	if article.Description != "" {
		b.WriteString("\n")
		b.WriteString(markup.EscapeForMarkdown(markup.Truncate(article.Description, maxDescriptionRunes)))
	}

	return b.String()
}

func formatArticles(articles []model.Article) string {
	shown := articles
	if len(shown) > maxArticlesPerMessage {
		shown = shown[:maxArticlesPerMessage]
	}

	text := strings.Join(lo.Map(shown, func(a model.Article, _ int) string {
		return formatArticle(a)
	}), "\n\n")

	if rest := len(articles) - len(shown); rest > 0 {
		text += markup.EscapeForMarkdown(fmt.Sprintf("\n\n…и еще %d", rest))
	}

	return text
}

// Лента выбранной категории: главная статья, остальные и строка об ошибке, если она есть
func formatFeed(st coordinator.State) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("*%s*", markup.EscapeForMarkdown(st.SelectedCategory)))

	if st.Error != "" {
		parts = append(parts, "⚠️ "+markup.EscapeForMarkdown(st.Error))
	}

	if st.FeaturedArticle == nil && len(st.Articles) == 0 {
		parts = append(parts, "Статей пока нет")
		return strings.Join(parts, "\n\n")
	}

	if st.FeaturedArticle != nil {
		parts = append(parts, "⭐ "+formatArticle(*st.FeaturedArticle))
	}

	if len(st.Articles) > 0 {
		parts = append(parts, formatArticles(st.Articles))
	}

	if st.HasMore {
		parts = append(parts, "Дальше: /more")
	}

	return strings.Join(parts, "\n\n")
}

func formatBookmarks(bookmarks []model.Article) string {
	if len(bookmarks) == 0 {
		return "Закладок нет"
	}

	return fmt.Sprintf(
		"Закладки \\(всего %d\\):\n\n%s",
		len(bookmarks),
		formatArticles(bookmarks),
	)
}

func formatSearchResults(query string, results []model.Article) string {
	if len(results) == 0 {
		return fmt.Sprintf("По запросу «%s» ничего не найдено", markup.EscapeForMarkdown(query))
	}

	return fmt.Sprintf(
		"Найдено по запросу «%s» \\(%d\\):\n\n%s",
		markup.EscapeForMarkdown(query),
		len(results),
		formatArticles(results),
	)
}

func formatRecentSearches(recent []string) string {
	if len(recent) == 0 {
		return "Недавних запросов нет"
	}

	lines := lo.Map(recent, func(q string, i int) string {
		return fmt.Sprintf("%d\\. `%s`", i+1, markup.EscapeForMarkdown(q))
	})

	return "Недавние запросы:\n\n" + strings.Join(lines, "\n")
}

func formatCategories(selected string) string {
	lines := lo.Map(model.Categories, func(c string, _ int) string {
		if c == selected {
			return "• *" + markup.EscapeForMarkdown(c) + "*"
		}
		return "• " + markup.EscapeForMarkdown(c)
	})

	return "Категории:\n\n" + strings.Join(lines, "\n") + "\n\nВыбрать: /category \\<название\\>"
}
