package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Сервер, который отвечает дольше, чем готов ждать клиент
func slowServer(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
			w.Write([]byte(`{"status":"ok","articles":[]}`))
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChainFallsBackWhenPrimaryTimesOut(t *testing.T) {
	primarySrv := slowServer(t, 300*time.Millisecond)

	fallbackSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalArticles": 1, "articles": [{"title": "Fallback story", "url": "https://g.example/1"}]}`))
	}))
	defer fallbackSrv.Close()

	client := &http.Client{Timeout: 50 * time.Millisecond}
	chain := NewChain([]Provider{
		NewNewsAPIProvider(primarySrv.URL, "key", "us", client),
		NewGNewsProvider(fallbackSrv.URL, "token", "en", client),
	})

	got, err := chain.Fetch(context.Background(), Query{Category: "Technology", Page: 1})
	if err != nil {
		t.Fatalf("expected fallback to answer, got %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://g.example/1" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestChainFallsBackWhenPrimaryUnreachable(t *testing.T) {
	// Закрытый сервер: соединение отклоняется на транспортном уровне
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	fallback := &fakeProvider{name: "fallback", articles: articles("x")}
	chain := NewChain([]Provider{
		NewNewsAPIProvider(deadURL, "key", "us", &http.Client{Timeout: time.Second}),
		fallback,
	})

	got, err := chain.Fetch(context.Background(), Query{})
	if err != nil {
		t.Fatalf("expected fallback to answer, got %v", err)
	}
	if len(got) != 1 || fallback.calls != 1 {
		t.Errorf("unexpected result %+v, fallback calls %d", got, fallback.calls)
	}
}

func TestChainStopsWhenCallerCancels(t *testing.T) {
	primarySrv := slowServer(t, 2*time.Second)
	fallback := &fakeProvider{name: "fallback", articles: articles("x")}

	chain := NewChain([]Provider{
		NewNewsAPIProvider(primarySrv.URL, "key", "us", &http.Client{Timeout: 5 * time.Second}),
		fallback,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := chain.Fetch(ctx, Query{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected caller deadline error, got %v", err)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback must not be called after the caller gave up, got %d calls", fallback.calls)
	}
}

func TestChainStopsOnCancelledContext(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: context.Canceled}
	fallback := &fakeProvider{name: "fallback", articles: articles("x")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChain([]Provider{primary, fallback}).Fetch(ctx, Query{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback must not be called after cancellation, got %d calls", fallback.calls)
	}
}
