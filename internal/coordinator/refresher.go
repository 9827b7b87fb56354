package coordinator

import (
	"context"
	"time"

	"github.com/kovalyov-valentin/news-reader/internal/logging"
)

// Воркер, который периодически обновляет выбранную категорию
type Refresher struct {
	coordinator *Coordinator
	interval    time.Duration
}

func NewRefresher(c *Coordinator, interval time.Duration) *Refresher {
	return &Refresher{
		coordinator: c,
		interval:    interval,
	}
}

// Блокируется до отмены контекста. Первое обновление происходит через interval,
// начальную загрузку делает вызывающий.
func (r *Refresher) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !r.coordinator.Refresh(ctx) {
				logging.Debug().Msg("background refresh skipped")
			}
		}
	}
}
