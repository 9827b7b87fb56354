package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Ключи, под которыми приложение хранит свои данные
const (
	KeyCachedArticles  = "@cached_articles"
	KeyRecentSearches  = "@recent_searches"
	KeyBookmarks       = "@bookmarks"
	KeyTheme           = "@theme"
	KeyProfileImageURL = "@profile_image_url"
)

// Отсутствие ключа это нормальное состояние (первый запуск), а не сбой хранилища
var ErrNotFound = errors.New("kv: key not found")

// Строковое хранилище ключ-значение без транзакций и схемы
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Читает значение и раскладывает json в dst.
// Возвращает ErrNotFound как есть, чтобы вызывающий мог отличить пустое хранилище от битых данных.
func GetJSON(ctx context.Context, s Store, key string, dst any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	return nil
}

func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	return s.Set(ctx, key, string(data))
}
