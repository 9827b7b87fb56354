package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/kovalyov-valentin/news-reader/internal/coordinator"
	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/kovalyov-valentin/news-reader/internal/source"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSource struct {
	articles []model.Article
	queries  []source.Query
}

func (s *stubSource) Fetch(_ context.Context, q source.Query) ([]model.Article, error) {
	s.queries = append(s.queries, q)
	return s.articles, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *coordinator.Coordinator, *stubSource) {
	t.Helper()

	store, err := kv.OpenBadger("")
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	src := &stubSource{articles: []model.Article{
		{URL: "https://news.example/1", Title: "AI chips"},
		{URL: "https://news.example/2", Title: "Football final"},
		{URL: "https://news.example/3", Title: "AI regulation"},
	}}
	c := coordinator.New(src, store)
	c.Refresh(context.Background())

	return NewRouter(c), c, src
}

func do(r *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestGetNews(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/news", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp newsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.FeaturedArticle == nil || resp.FeaturedArticle.URL != "https://news.example/1" {
		t.Errorf("unexpected featured article %+v", resp.FeaturedArticle)
	}
	if len(resp.Articles) != 2 {
		t.Errorf("expected 2 articles, got %d", len(resp.Articles))
	}
	if resp.Category != model.CategoryAll {
		t.Errorf("unexpected category %q", resp.Category)
	}
}

func TestGetNewsSwitchesCategory(t *testing.T) {
	r, c, src := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/news?category=science", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := c.State().SelectedCategory; got != "Science" {
		t.Errorf("expected Science, got %q", got)
	}
	if last := src.queries[len(src.queries)-1]; last.Category != "Science" || last.Page != 1 {
		t.Errorf("unexpected query %+v", last)
	}

	w = do(r, http.MethodGet, "/api/v1/news?category=weather", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown category, got %d", w.Code)
	}
}

func TestSearch(t *testing.T) {
	r, c, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/search?q=ai", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Query   string          `json:"query"`
		Results []model.Article `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Query != "ai" || len(resp.Results) != 2 {
		t.Errorf("unexpected response %+v", resp)
	}
	if recent := c.State().RecentSearches; len(recent) != 1 || recent[0] != "ai" {
		t.Errorf("unexpected recent searches %v", recent)
	}
}

func TestBookmarksLifecycle(t *testing.T) {
	r, _, _ := newTestRouter(t)

	body := []byte(`{"url":"https://news.example/2"}`)
	if w := do(r, http.MethodPost, "/api/v1/bookmarks", body); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/v1/bookmarks", body); w.Code != http.StatusOK {
		t.Errorf("expected 200 on repeated add, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/v1/bookmarks", []byte(`{"url":"https://news.example/404"}`)); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown article, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/v1/bookmarks", []byte(`{}`)); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without url, got %d", w.Code)
	}

	w := do(r, http.MethodGet, "/api/v1/bookmarks", nil)
	var resp struct {
		Bookmarks []model.Article `json:"bookmarks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Bookmarks) != 1 || resp.Bookmarks[0].BookmarkedAt == nil {
		t.Errorf("unexpected bookmarks %+v", resp.Bookmarks)
	}

	if w := do(r, http.MethodDelete, "/api/v1/bookmarks?url=https://news.example/2", nil); w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/v1/bookmarks?url=https://news.example/2", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on repeated delete, got %d", w.Code)
	}
}

func TestLoadMoreWithoutMorePages(t *testing.T) {
	r, c, src := newTestRouter(t)
	calls := len(src.queries)

	// Три статьи меньше порога, дальше страниц нет
	if c.State().HasMore {
		t.Fatal("expected no more pages")
	}

	w := do(r, http.MethodPost, "/api/v1/news/more", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(src.queries) != calls {
		t.Error("load more must not fetch when there are no more pages")
	}
}

func TestMetrics(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "news_reader_feed_fetches_total") {
		t.Error("expected coordinator metrics to be exported")
	}
}

func TestClearSearch(t *testing.T) {
	r, c, _ := newTestRouter(t)

	do(r, http.MethodGet, "/api/v1/search?q=ai", nil)
	if w := do(r, http.MethodDelete, "/api/v1/search", nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	st := c.State()
	if st.SearchQuery != "" || len(st.SearchResults) != 0 {
		t.Errorf("expected search to be cleared, got %+v", st)
	}
	if len(st.RecentSearches) != 1 {
		t.Errorf("recent searches must survive, got %v", st.RecentSearches)
	}
}
