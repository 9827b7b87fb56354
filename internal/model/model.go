package model

import (
	"strings"
	"time"
)

// Статья в том виде, в котором ее отдают новостные API.
// Ключом статьи в рамках сессии считается URL.
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	URLToImage  string `json:"urlToImage,omitempty"`
	// Дата публикации в источнике, храним как есть строкой
	PublishedAt string        `json:"publishedAt"`
	Source      ArticleSource `json:"source"`
	Author      string        `json:"author,omitempty"`
	// Заполняется только у копии статьи, добавленной в закладки
	BookmarkedAt *time.Time `json:"bookmarkedAt,omitempty"`
}

type ArticleSource struct {
	Name string `json:"name,omitempty"`
}

// Фиксированный набор категорий. All означает "без фильтра".
const CategoryAll = "All"

var Categories = []string{
	CategoryAll,
	"Technology",
	"Sports",
	"Science",
	"Health",
	"Business",
	"Entertainment",
	"Politics",
}

func IsKnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Нормализует ввод пользователя ("technology" -> "Technology").
// Второе значение false, если такой категории нет.
func ParseCategory(raw string) (string, bool) {
	for _, c := range Categories {
		if strings.EqualFold(c, strings.TrimSpace(raw)) {
			return c, true
		}
	}
	return "", false
}

// Тип запроса к языковой модели
type Intent string

const (
	IntentSummary   Intent = "summary"
	IntentDigest    Intent = "digest"
	IntentQuickRead Intent = "quick_read"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentSummary, IntentDigest, IntentQuickRead:
		return true
	}
	return false
}
