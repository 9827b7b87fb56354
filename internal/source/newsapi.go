package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kovalyov-valentin/news-reader/internal/model"
)

// Категории, которые top-headlines принимает как есть.
// Остальные (например Politics) уходят в полнотекстовый параметр q.
var newsAPICategories = map[string]bool{
	"business":      true,
	"entertainment": true,
	"general":       true,
	"health":        true,
	"science":       true,
	"sports":        true,
	"technology":    true,
}

// Клиент newsapi.org, основной провайдер
type NewsAPIProvider struct {
	baseURL string
	apiKey  string
	country string
	client  *http.Client
}

func NewNewsAPIProvider(baseURL, apiKey, country string, client *http.Client) *NewsAPIProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &NewsAPIProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		country: country,
		client:  client,
	}
}

func (p *NewsAPIProvider) Name() string {
	return "newsapi"
}

type newsAPIResponse struct {
	Status       string          `json:"status"`
	TotalResults int             `json:"totalResults"`
	Articles     []model.Article `json:"articles"`
	Code         string          `json:"code"`
	Message      string          `json:"message"`
}

func (p *NewsAPIProvider) Fetch(ctx context.Context, q Query) ([]model.Article, error) {
	var resp newsAPIResponse
	if _, err := getJSON(ctx, p.client, p.buildURL(q), &resp); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi: %w: %s %s", ErrBadStatus, resp.Code, resp.Message)
	}

	return resp.Articles, nil
}

func (p *NewsAPIProvider) buildURL(q Query) string {
	params := url.Values{}
	params.Set("apiKey", p.apiKey)
	if p.country != "" {
		params.Set("country", p.country)
	}

	if q.filtered() {
		c := lower(q.Category)
		if newsAPICategories[c] {
			params.Set("category", c)
		} else {
			params.Set("q", c)
		}
	}

	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}

	return p.baseURL + "/top-headlines?" + params.Encode()
}
