package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/model"
)

func clearStore(s kv.Store) func(context.Context) error {
	return s.Clear
}

func TestResetClearsStateAndStore(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	src := &fakeSource{results: [][]model.Article{makeArticles("A", "B", "C")}}
	c := New(src, store)

	c.SetSelectedCategory("Science")
	c.Fetch(ctx, "Science", 1, true)
	c.SearchArticles(ctx, "story")
	c.AddBookmark(ctx, makeArticles("B")[0])

	if err := c.Reset(ctx, clearStore(store)); err != nil {
		t.Fatalf("reset: %v", err)
	}

	st := c.State()
	if st.FeaturedArticle != nil || len(st.Articles) != 0 || len(st.CachedArticles) != 0 {
		t.Errorf("feed not cleared: %+v", st)
	}
	if len(st.Bookmarks) != 0 || len(st.RecentSearches) != 0 || len(st.SearchResults) != 0 || st.SearchQuery != "" {
		t.Errorf("search or bookmarks not cleared: %+v", st)
	}
	if st.SelectedCategory != model.CategoryAll || st.Page != 1 || !st.HasMore || st.Phase != Idle {
		t.Errorf("cursor not reset: %+v", st)
	}

	for _, key := range []string{kv.KeyCachedArticles, kv.KeyRecentSearches, kv.KeyBookmarks} {
		if _, err := store.Get(ctx, key); !errors.Is(err, kv.ErrNotFound) {
			t.Errorf("expected %s to be wiped, got %v", key, err)
		}
	}
}

func TestResetDoesNotResurrectClearedData(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	c := New(&fakeSource{}, store)

	c.AddBookmark(ctx, makeArticles("A")[0])
	c.SearchArticles(ctx, "old query")

	if err := c.Reset(ctx, clearStore(store)); err != nil {
		t.Fatalf("reset: %v", err)
	}

	c.AddBookmark(ctx, makeArticles("B")[0])
	c.SearchArticles(ctx, "new query")

	var marks []model.Article
	if err := kv.GetJSON(ctx, store, kv.KeyBookmarks, &marks); err != nil {
		t.Fatalf("get bookmarks: %v", err)
	}
	if got := urls(marks); !equalStrings(got, []string{"B"}) {
		t.Errorf("cleared bookmark written back: %v", got)
	}

	var recent []string
	if err := kv.GetJSON(ctx, store, kv.KeyRecentSearches, &recent); err != nil {
		t.Fatalf("get recent: %v", err)
	}
	if !equalStrings(recent, []string{"new query"}) {
		t.Errorf("cleared search written back: %v", recent)
	}
}

func TestResetKeepsStateWhenWipeFails(t *testing.T) {
	ctx := context.Background()
	c := New(&fakeSource{}, testStore(t))
	c.AddBookmark(ctx, makeArticles("A")[0])

	err := c.Reset(ctx, func(context.Context) error { return errors.New("disk error") })
	if err == nil {
		t.Fatal("expected wipe error")
	}
	if len(c.Bookmarks()) != 1 {
		t.Error("state must survive a failed wipe")
	}
}

func TestResetDiscardsInFlightFetch(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	src := &fakeSource{
		results: [][]model.Article{makeArticles("OLD", "X")},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := New(src, store)

	done := make(chan bool)
	go func() { done <- c.Fetch(ctx, model.CategoryAll, 1, true) }()
	<-src.started

	if err := c.Reset(ctx, clearStore(store)); err != nil {
		t.Fatalf("reset: %v", err)
	}
	close(src.release)

	if <-done {
		t.Error("fetch started before reset must be discarded")
	}
	if st := c.State(); st.FeaturedArticle != nil || st.Phase != Idle {
		t.Errorf("unexpected state after discarded fetch: %+v", st)
	}
	if _, err := store.Get(ctx, kv.KeyCachedArticles); !errors.Is(err, kv.ErrNotFound) {
		t.Errorf("discarded fetch must not write the cache, got %v", err)
	}
}
