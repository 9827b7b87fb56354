package summary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kovalyov-valentin/news-reader/internal/logging"
	"github.com/kovalyov-valentin/news-reader/internal/metrics"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/samber/lo"
)

const (
	PlaceholderSummary = "Unable to generate summary at this time."
	PlaceholderDigest  = "Unable to generate daily digest at this time."
)

// Тексты короче этого не отправляем в модель, а идем за полной статьей
const minTextLength = 200

type Summarizer interface {
	Summarize(ctx context.Context, text string, intent model.Intent) (string, error)
}

// Результат для экрана, который запросил summary.
// При ошибке Text содержит заглушку, а Err причину.
type Result struct {
	Text        string
	Err         error
	GeneratedAt time.Time
}

func (r Result) Success() bool {
	return r.Err == nil
}

// Собирает текст статьи и отдает его в Summarizer.
// Никак не связан с состоянием ленты, вызывать можно параллельно с fetch.
type Service struct {
	summarizer Summarizer
	client     *http.Client
	now        func() time.Time
}

func NewService(summarizer Summarizer, client *http.Client) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		summarizer: summarizer,
		client:     client,
		now:        time.Now,
	}
}

func (s *Service) Summarize(ctx context.Context, article model.Article, intent model.Intent) Result {
	if !intent.Valid() {
		intent = model.IntentSummary
	}

	text := s.articleText(ctx, article)
	if text == "" {
		return s.fail(intent, PlaceholderSummary, errors.New("article has no text"))
	}

	out, err := s.summarizer.Summarize(ctx, text, intent)
	if err != nil {
		return s.fail(intent, PlaceholderSummary, err)
	}

	metrics.Summaries.WithLabelValues(string(intent), "success").Inc()
	return Result{Text: out, GeneratedAt: s.now()}
}

// Дайджест по нескольким статьям сразу
func (s *Service) Digest(ctx context.Context, articles []model.Article) Result {
	if len(articles) == 0 {
		return s.fail(model.IntentDigest, PlaceholderDigest, errors.New("no articles for digest"))
	}

	text := strings.Join(lo.Map(articles, func(a model.Article, _ int) string {
		description := a.Description
		if description == "" {
			description = "No description"
		}
		source := a.Source.Name
		if source == "" {
			source = "General"
		}
		return fmt.Sprintf("Title: %s\nDescription: %s\nSource: %s", a.Title, description, source)
	}), "\n\n")

	out, err := s.summarizer.Summarize(ctx, text, model.IntentDigest)
	if err != nil {
		return s.fail(model.IntentDigest, PlaceholderDigest, err)
	}

	metrics.Summaries.WithLabelValues(string(model.IntentDigest), "success").Inc()
	return Result{Text: out, GeneratedAt: s.now()}
}

func (s *Service) fail(intent model.Intent, placeholder string, err error) Result {
	metrics.Summaries.WithLabelValues(string(intent), "failure").Inc()
	logging.Warn().Err(err).Str("intent", string(intent)).Msg("failed to generate summary")
	return Result{Text: placeholder, Err: err}
}

// Если у статьи есть достаточно текста, используем его.
// Иначе идем по ссылке и достаем текст страницы через readability.
func (s *Service) articleText(ctx context.Context, article model.Article) string {
	parts := lo.Filter([]string{article.Title, article.Description, article.Content}, func(p string, _ int) bool {
		return strings.TrimSpace(p) != ""
	})
	text := strings.Join(parts, "\n\n")
	if len(text) >= minTextLength || article.URL == "" {
		return text
	}

	page, err := ExtractURL(ctx, s.client, article.URL)
	if err != nil {
		logging.Debug().Err(err).Str("url", article.URL).Msg("failed to extract article page, using short text")
		return text
	}
	if page == "" {
		return text
	}

	return article.Title + "\n\n" + page
}
