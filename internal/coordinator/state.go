package coordinator

import "github.com/kovalyov-valentin/news-reader/internal/model"

// Состояние машины загрузки ленты.
// Новый fetch принимается в любом состоянии, кроме Fetching.
type Phase int

const (
	Idle Phase = iota
	Fetching
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Fetching:
		return "fetching"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Снимок состояния координатора для отрисовки.
// Слайсы копируются, менять их безопасно.
type State struct {
	Articles         []model.Article
	FeaturedArticle  *model.Article
	SelectedCategory string
	Page             int
	HasMore          bool
	Loading          bool
	Phase            Phase
	Error            string

	SearchQuery    string
	SearchResults  []model.Article
	RecentSearches []string

	Bookmarks      []model.Article
	CachedArticles []model.Article
}

// Сообщения, которые показываются пользователю в поле Error
const (
	ErrMsgCachedMode = "Using cached articles (offline mode)"
	ErrMsgNoCache    = "Failed to fetch news and no cached articles available"
	ErrMsgFailed     = "Failed to fetch news"
)

// Если провайдер вернул меньше статей, считаем что дальше страниц нет
const hasMoreThreshold = 10

const maxRecentSearches = 10

func cloneArticles(in []model.Article) []model.Article {
	if in == nil {
		return nil
	}
	out := make([]model.Article, len(in))
	copy(out, in)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
