package coordinator

import (
	"context"
	"fmt"
	"testing"

	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/model"
)

func TestSearchArticlesMatchesCache(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{results: [][]model.Article{{
		{URL: "https://news.example/1", Title: "AI breakthrough"},
		{URL: "https://news.example/2", Title: "Sports recap"},
		{URL: "https://news.example/3", Title: "Markets", Description: "Chipmakers rally on new AI demand"},
	}}}
	c := New(src, testStore(t))
	c.Fetch(ctx, model.CategoryAll, 1, true)

	got := c.SearchArticles(ctx, "ai")
	if len(got) != 2 || got[0].Title != "AI breakthrough" || got[1].Title != "Markets" {
		t.Fatalf("unexpected results %+v", got)
	}
	if src.calls() != 1 {
		t.Error("search must not call the news source")
	}

	st := c.State()
	if st.SearchQuery != "ai" || len(st.SearchResults) != 2 {
		t.Errorf("unexpected search state %+v", st)
	}
}

func TestSearchOnlyTitles(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{results: [][]model.Article{{
		{URL: "https://news.example/1", Title: "AI breakthrough"},
		{URL: "https://news.example/2", Title: "Sports recap"},
	}}}
	c := New(src, testStore(t))
	c.Fetch(ctx, model.CategoryAll, 1, true)

	got := c.SearchArticles(ctx, "ai")
	if len(got) != 1 || got[0].Title != "AI breakthrough" {
		t.Fatalf("expected only the AI article, got %+v", got)
	}
}

func TestSearchEmptyQueryClearsResults(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{results: [][]model.Article{makeArticles("A")}}
	c := New(src, testStore(t))
	c.Fetch(ctx, model.CategoryAll, 1, true)

	c.SearchArticles(ctx, "story")
	if len(c.State().SearchResults) != 1 {
		t.Fatal("expected a result before clearing")
	}

	if got := c.SearchArticles(ctx, "   "); got != nil {
		t.Errorf("expected nil results, got %+v", got)
	}

	st := c.State()
	if len(st.SearchResults) != 0 {
		t.Error("expected results to be cleared")
	}
	if len(st.RecentSearches) != 1 {
		t.Errorf("blank query must not be recorded, got %v", st.RecentSearches)
	}
}

func TestRecentSearchesDedupAndCap(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	c := New(&fakeSource{}, store)

	for i := 0; i < 12; i++ {
		c.SearchArticles(ctx, fmt.Sprintf("q%d", i))
	}
	c.SearchArticles(ctx, "q5")

	st := c.State()
	if len(st.RecentSearches) != maxRecentSearches {
		t.Fatalf("expected %d recent searches, got %d", maxRecentSearches, len(st.RecentSearches))
	}
	if st.RecentSearches[0] != "q5" {
		t.Errorf("expected q5 moved to front, got %v", st.RecentSearches)
	}
	seen := map[string]bool{}
	for _, s := range st.RecentSearches {
		if seen[s] {
			t.Errorf("duplicate recent search %q in %v", s, st.RecentSearches)
		}
		seen[s] = true
	}
	if seen["q0"] || seen["q1"] {
		t.Errorf("oldest searches must be dropped, got %v", st.RecentSearches)
	}

	var persisted []string
	if err := kv.GetJSON(ctx, store, kv.KeyRecentSearches, &persisted); err != nil {
		t.Fatalf("recent searches not persisted: %v", err)
	}
	if !equalStrings(persisted, st.RecentSearches) {
		t.Errorf("persisted %v != in-memory %v", persisted, st.RecentSearches)
	}
}

func TestPushRecent(t *testing.T) {
	got := pushRecent([]string{"b", "a", "c"}, "a")
	if !equalStrings(got, []string{"a", "b", "c"}) {
		t.Errorf("unexpected order %v", got)
	}

	got = pushRecent(nil, "x")
	if !equalStrings(got, []string{"x"}) {
		t.Errorf("unexpected result %v", got)
	}
}

func TestClearRecentSearches(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	c := New(&fakeSource{}, store)

	c.SearchArticles(ctx, "elections")
	c.ClearRecentSearches(ctx)

	if len(c.State().RecentSearches) != 0 {
		t.Error("expected recent searches cleared")
	}

	var persisted []string
	if err := kv.GetJSON(ctx, store, kv.KeyRecentSearches, &persisted); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(persisted) != 0 {
		t.Errorf("expected empty persisted list, got %v", persisted)
	}
}

func TestClearSearchKeepsRecent(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{results: [][]model.Article{makeArticles("A")}}
	c := New(src, testStore(t))
	c.Fetch(ctx, model.CategoryAll, 1, true)

	c.SearchArticles(ctx, "story")
	if c.State().SearchQuery != "story" {
		t.Fatal("expected query to be stored")
	}

	c.ClearSearch()
	st := c.State()
	if st.SearchQuery != "" || st.SearchResults != nil {
		t.Errorf("expected cleared search, got %+v", st)
	}
	if !equalStrings(st.RecentSearches, []string{"story"}) {
		t.Errorf("recent searches must survive, got %v", st.RecentSearches)
	}
}
