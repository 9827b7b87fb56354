package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kovalyov-valentin/news-reader/internal/model"
)

func TestRefresherRefreshesUntilCancelled(t *testing.T) {
	src := &fakeSource{results: [][]model.Article{makeArticles("A"), makeArticles("B"), makeArticles("C")}}
	c := New(src, testStore(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- NewRefresher(c, 10*time.Millisecond).Start(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for src.calls() < 2 {
		select {
		case <-deadline:
			t.Fatal("refresher did not refresh in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	for _, q := range src.queries {
		if q.Page != 1 {
			t.Errorf("refresher must always request the first page, got %+v", q)
		}
	}
}
