package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/kovalyov-valentin/news-reader/internal/model"
)

var (
	// Провайдер ответил, но ответ не успешный (status != ok, не 2xx и т.п.)
	ErrBadStatus = errors.New("provider returned unsuccessful response")
	// Ни один провайдер в цепочке не ответил успешно
	ErrAllProvidersFailed = errors.New("all news providers failed")
)

// Параметры запроса ленты
type Query struct {
	// Пустая строка или model.CategoryAll означает без фильтра
	Category string
	Page     int
	PageSize int
}

func (q Query) filtered() bool {
	return q.Category != "" && q.Category != model.CategoryAll
}

// Внешний новостной API
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q Query) ([]model.Article, error)
}

// Общая часть http провайдеров: GET и декодирование json в dst
func getJSON(ctx context.Context, client *http.Client, url string, dst any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	return resp.StatusCode, nil
}

func lower(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
