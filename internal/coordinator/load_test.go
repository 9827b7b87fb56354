package coordinator

import (
	"context"
	"testing"

	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/model"
)

func TestLoadCachedDataFirstRun(t *testing.T) {
	c := New(&fakeSource{}, testStore(t))
	c.LoadCachedData(context.Background())

	st := c.State()
	if st.FeaturedArticle != nil || len(st.Articles) != 0 || len(st.Bookmarks) != 0 || len(st.RecentSearches) != 0 {
		t.Errorf("expected empty state on first run, got %+v", st)
	}
}

func TestLoadCachedDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	src := &fakeSource{results: [][]model.Article{makeArticles("A", "B", "C")}}
	first := New(src, store, WithClock(fixedClock))
	first.Fetch(ctx, model.CategoryAll, 1, true)
	first.SearchArticles(ctx, "story")
	first.SearchArticles(ctx, "other")
	first.AddBookmark(ctx, makeArticles("B")[0])
	before := first.State()

	second := New(&fakeSource{}, store)
	second.LoadCachedData(ctx)
	after := second.State()

	if !equalStrings(urls(after.CachedArticles), urls(before.CachedArticles)) {
		t.Errorf("cache mismatch: %v vs %v", urls(after.CachedArticles), urls(before.CachedArticles))
	}
	if after.FeaturedArticle == nil || after.FeaturedArticle.URL != before.FeaturedArticle.URL {
		t.Errorf("featured mismatch: %+v", after.FeaturedArticle)
	}
	if !equalStrings(urls(after.Articles), urls(before.Articles)) {
		t.Errorf("articles mismatch: %v vs %v", urls(after.Articles), urls(before.Articles))
	}
	if !equalStrings(after.RecentSearches, before.RecentSearches) {
		t.Errorf("recent searches mismatch: %v vs %v", after.RecentSearches, before.RecentSearches)
	}
	if len(after.Bookmarks) != 1 || after.Bookmarks[0].URL != before.Bookmarks[0].URL ||
		!after.Bookmarks[0].BookmarkedAt.Equal(*before.Bookmarks[0].BookmarkedAt) {
		t.Errorf("bookmarks mismatch: %+v vs %+v", after.Bookmarks, before.Bookmarks)
	}
}

func TestLoadCachedDataToleratesCorruptKey(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	if err := store.Set(ctx, kv.KeyCachedArticles, "{broken"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := kv.SetJSON(ctx, store, kv.KeyRecentSearches, []string{"ai"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := kv.SetJSON(ctx, store, kv.KeyBookmarks, makeArticles("A", "A", "B")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	c := New(&fakeSource{}, store)
	c.LoadCachedData(ctx)

	st := c.State()
	if st.FeaturedArticle != nil {
		t.Error("corrupt cache must be treated as absent")
	}
	if !equalStrings(st.RecentSearches, []string{"ai"}) {
		t.Errorf("unexpected recent searches %v", st.RecentSearches)
	}
	if got := urls(st.Bookmarks); !equalStrings(got, []string{"A", "B"}) {
		t.Errorf("expected deduplicated bookmarks, got %v", got)
	}
}

func TestLoadCachedDataDoesNotOverrideFreshFeed(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	if err := kv.SetJSON(ctx, store, kv.KeyCachedArticles, makeArticles("OLD")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	src := &fakeSource{results: [][]model.Article{makeArticles("NEW", "N2")}}
	c := New(src, store)
	c.Fetch(ctx, model.CategoryAll, 1, true)
	c.LoadCachedData(ctx)

	if c.State().FeaturedArticle.URL != "https://news.example/NEW" {
		t.Error("cache must not replace a feed loaded from the network")
	}
}

func TestLoadCachedDataDedupsRecentSearches(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	stored := []string{"ai", "go", "ai", "q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "go"}
	if err := kv.SetJSON(ctx, store, kv.KeyRecentSearches, stored); err != nil {
		t.Fatalf("seed: %v", err)
	}

	c := New(&fakeSource{}, store)
	c.LoadCachedData(ctx)

	want := []string{"ai", "go", "q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8"}
	if got := c.State().RecentSearches; !equalStrings(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
