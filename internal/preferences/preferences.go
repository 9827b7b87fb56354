package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/logging"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

var ErrUnknownTheme = errors.New("unknown theme")

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}

// Пользовательские настройки поверх общего хранилища.
// Отсутствие значения означает настройку по умолчанию.
type Preferences struct {
	store kv.Store
}

func New(store kv.Store) *Preferences {
	return &Preferences{store: store}
}

// Битое или неизвестное значение считается отсутствующим
func (p *Preferences) Theme(ctx context.Context) Theme {
	raw, err := p.store.Get(ctx, kv.KeyTheme)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logging.Error().Err(err).Msg("failed to read theme")
		}
		return ThemeSystem
	}

	theme, err := ParseTheme(raw)
	if err != nil {
		logging.Warn().Str("theme", raw).Msg("stored theme is invalid, using system")
		return ThemeSystem
	}

	return theme
}

func (p *Preferences) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}

	return p.store.Set(ctx, kv.KeyTheme, string(theme))
}

// Пустая строка, если картинка не задана
func (p *Preferences) ProfileImageURL(ctx context.Context) string {
	raw, err := p.store.Get(ctx, kv.KeyProfileImageURL)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logging.Error().Err(err).Msg("failed to read profile image url")
		}
		return ""
	}

	return raw
}

// Пустой url удаляет картинку
func (p *Preferences) SetProfileImageURL(ctx context.Context, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		err := p.store.Remove(ctx, kv.KeyProfileImageURL)
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return err
	}

	return p.store.Set(ctx, kv.KeyProfileImageURL, url)
}

// Стирает все данные приложения, включая кеш ленты и закладки (выход из аккаунта)
func (p *Preferences) ClearAll(ctx context.Context) error {
	if err := p.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}

	logging.Info().Msg("all stored data cleared")

	return nil
}
