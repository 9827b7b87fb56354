package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/samber/lo"
)

var gnewsTopics = map[string]bool{
	"general":       true,
	"world":         true,
	"nation":        true,
	"business":      true,
	"technology":    true,
	"entertainment": true,
	"sports":        true,
	"science":       true,
	"health":        true,
}

// Клиент gnews.io, запасной провайдер
type GNewsProvider struct {
	baseURL string
	apiKey  string
	lang    string
	client  *http.Client
}

func NewGNewsProvider(baseURL, apiKey, lang string, client *http.Client) *GNewsProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &GNewsProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		lang:    lang,
		client:  client,
	}
}

func (p *GNewsProvider) Name() string {
	return "gnews"
}

type gnewsResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      []gnewsArticle `json:"articles"`
	Errors        []string       `json:"errors"`
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

func (p *GNewsProvider) Fetch(ctx context.Context, q Query) ([]model.Article, error) {
	var resp gnewsResponse
	status, err := getJSON(ctx, p.client, p.buildURL(q), &resp)
	if err != nil {
		return nil, fmt.Errorf("gnews: %w", err)
	}

	if status != http.StatusOK || len(resp.Errors) > 0 {
		return nil, fmt.Errorf("gnews: %w: status %d %s", ErrBadStatus, status, strings.Join(resp.Errors, "; "))
	}

	// Ноль статей это пустой результат, а не ошибка
	if resp.TotalArticles == 0 {
		return nil, nil
	}

	return lo.Map(resp.Articles, func(a gnewsArticle, _ int) model.Article {
		return model.Article{
			URL:         a.URL,
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URLToImage:  a.Image,
			PublishedAt: a.PublishedAt,
			Source:      model.ArticleSource{Name: a.Source.Name},
		}
	}), nil
}

func (p *GNewsProvider) buildURL(q Query) string {
	params := url.Values{}
	params.Set("token", p.apiKey)
	if p.lang != "" {
		params.Set("lang", p.lang)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("max", strconv.Itoa(q.PageSize))
	}

	endpoint := "/top-headlines"
	if q.filtered() {
		c := lower(q.Category)
		if gnewsTopics[c] {
			params.Set("topic", c)
		} else {
			// Темы вроде politics у gnews нет, ищем по ключевому слову
			endpoint = "/search"
			params.Set("q", c)
		}
	}

	return p.baseURL + endpoint + "?" + params.Encode()
}
