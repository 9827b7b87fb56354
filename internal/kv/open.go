package kv

import (
	"context"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Открывает хранилище по имени драйвера. Возвращаемый Closer закрывает соединение.
func Open(ctx context.Context, driver, path, dsn string) (Store, io.Closer, error) {
	switch driver {
	case "", "badger":
		s, err := OpenBadger(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case "postgres":
		db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		s := NewPostgresStore(db)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate kv table: %w", err)
		}
		return s, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
