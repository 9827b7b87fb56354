package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kovalyov-valentin/news-reader/internal/logging"
	"github.com/kovalyov-valentin/news-reader/internal/metrics"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	gobreaker "github.com/sony/gobreaker/v2"
)

// После стольких ошибок подряд провайдер временно выключается
const breakerConsecutiveFailures = 3

type guardedProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker[[]model.Article]
}

// Упорядоченный список провайдеров. Провайдеры опрашиваются по очереди,
// пока кто-то не вернет непустой список.
type Chain struct {
	providers      []guardedProvider
	filterKeywords []string
}

type ChainOption func(*chainSettings)

type chainSettings struct {
	filterKeywords []string
	breakerTimeout time.Duration
}

// Статьи, у которых в заголовке или описании есть одно из слов, отбрасываются
func WithFilterKeywords(keywords []string) ChainOption {
	return func(s *chainSettings) {
		s.filterKeywords = keywords
	}
}

// Сколько провайдер проводит в открытом состоянии перед пробным запросом
func WithBreakerTimeout(d time.Duration) ChainOption {
	return func(s *chainSettings) {
		s.breakerTimeout = d
	}
}

func NewChain(providers []Provider, opts ...ChainOption) *Chain {
	settings := chainSettings{breakerTimeout: time.Minute}
	for _, opt := range opts {
		opt(&settings)
	}

	c := &Chain{filterKeywords: settings.filterKeywords}
	for _, p := range providers {
		c.providers = append(c.providers, guardedProvider{
			provider: p,
			cb:       newBreaker(p.Name(), settings.breakerTimeout),
		})
	}

	return c
}

func newBreaker(name string, timeout time.Duration) *gobreaker.CircuitBreaker[[]model.Article] {
	metrics.ProviderBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[[]model.Article](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFailures
		},
		// Отмена запроса вызывающим не говорит ничего о здоровье провайдера
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("provider breaker state changed")
			metrics.ProviderBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	})
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Возвращает статьи первого провайдера с непустым ответом.
// Пустой список без ошибки означает, что хотя бы один провайдер ответил, но статей нет.
// ErrAllProvidersFailed означает, что ни один провайдер не ответил успешно.
func (c *Chain) Fetch(ctx context.Context, q Query) ([]model.Article, error) {
	var (
		lastErr   error
		succeeded bool
	)

	for _, gp := range c.providers {
		name := gp.provider.Name()

		articles, err := gp.cb.Execute(func() ([]model.Article, error) {
			return gp.provider.Fetch(ctx, q)
		})
		if err != nil {
			// Прерываемся, только если отменили сам запрос.
			// Таймаут http клиента провайдера это отказ провайдера, идем к следующему.
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}

			result := "failure"
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				result = "rejected"
			}
			metrics.ProviderRequests.WithLabelValues(name, result).Inc()

			logging.Warn().Err(err).Str("provider", name).Str("category", q.Category).Msg("provider fetch failed, trying next")
			lastErr = err
			continue
		}

		succeeded = true

		articles = cleanup(articles, c.filterKeywords)
		if len(articles) == 0 {
			metrics.ProviderRequests.WithLabelValues(name, "empty").Inc()
			continue
		}

		metrics.ProviderRequests.WithLabelValues(name, "success").Inc()
		logging.Debug().Str("provider", name).Int("count", len(articles)).Msg("fetched articles")

		return articles, nil
	}

	if !succeeded {
		if lastErr == nil {
			return nil, ErrAllProvidersFailed
		}
		return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, lastErr)
	}

	return nil, nil
}

// Имена провайдеров в порядке опроса
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, gp := range c.providers {
		names = append(names, gp.provider.Name())
	}
	return names
}
