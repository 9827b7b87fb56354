package coordinator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/logging"
	"github.com/kovalyov-valentin/news-reader/internal/metrics"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/kovalyov-valentin/news-reader/internal/source"
	"github.com/rs/zerolog"
)

// Источник статей, обычно source.Chain
type NewsSource interface {
	Fetch(ctx context.Context, q source.Query) ([]model.Article, error)
}

// Coordinator владеет состоянием ленты, поиска и закладок одного пользователя.
// Все изменения идут через его методы. Ошибки наружу не пробрасываются:
// они логируются и попадают в State.Error, а состояние откатывается к кешу или остается прежним.
type Coordinator struct {
	source   NewsSource
	store    kv.Store
	pageSize int
	now      func() time.Time

	mu sync.Mutex

	articles []model.Article
	featured *model.Article
	category string
	// Номер страницы, которую нужно запросить следующей
	page    int
	hasMore bool
	phase   Phase
	errMsg  string
	// Растет при каждом новом fetch и при смене категории.
	// fetch применяет результат, только если поколение не изменилось.
	generation uint64
	// После смены категории следующий успешный fetch заменит featured
	resetFeatured bool

	searchQuery    string
	searchResults  []model.Article
	recentSearches []string

	bookmarks []model.Article
	cached    []model.Article

	// Сериализует запись в хранилище, чтобы более старый снимок не перезаписал новый
	persistMu sync.Mutex
}

type Option func(*Coordinator)

// Сколько статей просить у провайдера за одну страницу
func WithPageSize(n int) Option {
	return func(c *Coordinator) {
		c.pageSize = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

func New(src NewsSource, store kv.Store, opts ...Option) *Coordinator {
	c := &Coordinator{
		source:   src,
		store:    store,
		pageSize: 20,
		now:      time.Now,
		category: model.CategoryAll,
		page:     1,
		hasMore:  true,
		phase:    Idle,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Загружает ленту категории. Если другой fetch еще выполняется, вызов ничего не делает.
// Возвращает true, если результат (успех, пустой ответ или откат на кеш) был применен.
func (c *Coordinator) Fetch(ctx context.Context, category string, page int, refresh bool) bool {
	fetchID := uuid.NewString()[:8]
	log := logging.With("coordinator").With().Str("fetch_id", fetchID).Str("category", category).Int("page", page).Logger()

	c.mu.Lock()
	if c.phase == Fetching {
		c.mu.Unlock()
		metrics.FeedFetches.WithLabelValues("skipped").Inc()
		log.Debug().Msg("fetch already in flight, skipping")
		return false
	}
	if !model.IsKnownCategory(category) {
		c.mu.Unlock()
		log.Warn().Msg("unknown category, fetch ignored")
		return false
	}

	c.phase = Fetching
	c.errMsg = ""
	c.generation++
	token := c.generation
	if refresh {
		c.page = 1
	}
	c.mu.Unlock()

	// Что бы ни случилось дальше, машина не должна остаться в Fetching
	defer func() {
		c.mu.Lock()
		if c.generation == token && c.phase == Fetching {
			c.phase = Failed
			c.errMsg = ErrMsgFailed
		}
		c.mu.Unlock()
	}()

	articles, err := c.source.Fetch(ctx, source.Query{
		Category: category,
		Page:     page,
		PageSize: c.pageSize,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch news, falling back to cache")
		return c.applyFailure(ctx, token, log)
	}

	if len(articles) == 0 {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation != token {
			metrics.FeedFetches.WithLabelValues("stale").Inc()
			return false
		}
		c.hasMore = false
		c.phase = Succeeded
		metrics.FeedFetches.WithLabelValues("empty").Inc()
		return true
	}

	// Снимок кеша пишется после применения под тем же persistMu,
	// поэтому в хранилище всегда то же, что и в c.cached
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	if c.generation != token {
		c.mu.Unlock()
		metrics.FeedFetches.WithLabelValues("stale").Inc()
		log.Debug().Msg("category changed while fetching, result discarded")
		return false
	}

	c.applySuccess(articles, page, refresh)
	snapshot := cloneArticles(c.cached)
	hasMore := c.hasMore
	c.mu.Unlock()

	c.persist(ctx, kv.KeyCachedArticles, snapshot)

	metrics.FeedFetches.WithLabelValues("succeeded").Inc()
	log.Info().Int("count", len(articles)).Bool("has_more", hasMore).Msg("feed updated")

	return true
}

// Вызывается под mu
func (c *Coordinator) applySuccess(articles []model.Article, page int, refresh bool) {
	head := articles[0]
	tail := articles[1:]

	if refresh || c.featured == nil || c.resetFeatured {
		c.featured = &head
		c.resetFeatured = false
	}

	if refresh {
		c.articles = cloneArticles(tail)
	} else {
		c.articles = appendUnique(c.articles, tail, c.featured)
	}

	c.cached = cloneArticles(articles)
	c.hasMore = len(articles) >= hasMoreThreshold
	c.page = page + 1
	c.phase = Succeeded
}

// Добавляет статьи, пропуская featured и те, что уже есть в ленте
func appendUnique(existing, incoming []model.Article, featured *model.Article) []model.Article {
	seen := make(map[string]struct{}, len(existing)+1)
	for _, a := range existing {
		seen[a.URL] = struct{}{}
	}
	if featured != nil {
		seen[featured.URL] = struct{}{}
	}

	out := cloneArticles(existing)
	for _, a := range incoming {
		if _, ok := seen[a.URL]; ok {
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}

	return out
}

func (c *Coordinator) applyFailure(ctx context.Context, token uint64, log zerolog.Logger) bool {
	var cached []model.Article
	readErr := kv.GetJSON(context.WithoutCancel(ctx), c.store, kv.KeyCachedArticles, &cached)
	if readErr != nil && !errors.Is(readErr, kv.ErrNotFound) {
		metrics.StorageErrors.WithLabelValues("get").Inc()
		log.Error().Err(readErr).Msg("failed to read cached articles")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generation != token {
		metrics.FeedFetches.WithLabelValues("stale").Inc()
		return false
	}

	c.phase = Failed

	switch {
	case readErr == nil && len(cached) > 0:
		c.cached = cloneArticles(cached)
		head := cached[0]
		c.featured = &head
		c.articles = cloneArticles(cached[1:])
		c.errMsg = ErrMsgCachedMode
		metrics.FeedFetches.WithLabelValues("cached").Inc()
	case readErr == nil || errors.Is(readErr, kv.ErrNotFound):
		c.hasMore = false
		c.errMsg = ErrMsgNoCache
		metrics.FeedFetches.WithLabelValues("failed").Inc()
	default:
		c.hasMore = false
		c.errMsg = ErrMsgFailed
		metrics.FeedFetches.WithLabelValues("failed").Inc()
	}

	return true
}

// Перезагружает текущую категорию с первой страницы
func (c *Coordinator) Refresh(ctx context.Context) bool {
	c.mu.Lock()
	category := c.category
	c.mu.Unlock()

	return c.Fetch(ctx, category, 1, true)
}

// Подгружает следующую страницу выбранной категории, если она есть
func (c *Coordinator) LoadMore(ctx context.Context) bool {
	c.mu.Lock()
	if !c.hasMore || c.phase == Fetching {
		c.mu.Unlock()
		return false
	}
	category, page := c.category, c.page
	c.mu.Unlock()

	return c.Fetch(ctx, category, page, false)
}

// Меняет категорию: сбрасывает страницу и список статей, featured остается до следующего fetch.
// Сам fetch не запускает. Fetch предыдущей категории, если он еще идет, будет проигнорирован.
func (c *Coordinator) SetSelectedCategory(category string) bool {
	if !model.IsKnownCategory(category) {
		logging.Warn().Str("category", category).Msg("unknown category")
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.category = category
	c.page = 1
	c.articles = nil
	c.hasMore = true
	c.resetFeatured = true

	if c.phase == Fetching {
		c.generation++
		c.phase = Idle
	}

	return true
}

// Копия текущего состояния
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	var featured *model.Article
	if c.featured != nil {
		f := *c.featured
		featured = &f
	}

	return State{
		Articles:         cloneArticles(c.articles),
		FeaturedArticle:  featured,
		SelectedCategory: c.category,
		Page:             c.page,
		HasMore:          c.hasMore,
		Loading:          c.phase == Fetching,
		Phase:            c.phase,
		Error:            c.errMsg,
		SearchQuery:      c.searchQuery,
		SearchResults:    cloneArticles(c.searchResults),
		RecentSearches:   cloneStrings(c.recentSearches),
		Bookmarks:        cloneArticles(c.bookmarks),
		CachedArticles:   cloneArticles(c.cached),
	}
}

// Пишет значение в хранилище. Ошибка логируется и не пробрасывается.
// Вызывать под persistMu.
func (c *Coordinator) persist(ctx context.Context, key string, value any) {
	if err := kv.SetJSON(context.WithoutCancel(ctx), c.store, key, value); err != nil {
		metrics.StorageErrors.WithLabelValues("set").Inc()
		logging.Error().Err(err).Str("key", key).Msg("failed to persist")
		return
	}
	logging.Debug().Str("key", key).Msg("persisted")
}
