package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/news-reader/internal/botkit"
	"github.com/kovalyov-valentin/news-reader/internal/botkit/markup"
	"github.com/kovalyov-valentin/news-reader/internal/preferences"
)

type ThemeStore interface {
	Theme(ctx context.Context) preferences.Theme
	SetTheme(ctx context.Context, theme preferences.Theme) error
}

func ViewCmdTheme(prefs ThemeStore) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		arg := strings.TrimSpace(update.Message.CommandArguments())
		if arg == "" {
			return botkit.Reply(bot, update, fmt.Sprintf("Текущая тема: `%s`", prefs.Theme(ctx)))
		}

		theme, err := preferences.ParseTheme(arg)
		if err != nil {
			return botkit.Reply(bot, update, fmt.Sprintf(
				"Неизвестная тема «%s», доступны light, dark, system",
				markup.EscapeForMarkdown(arg),
			))
		}

		if err := prefs.SetTheme(ctx, theme); err != nil {
			return err
		}

		return botkit.Reply(bot, update, fmt.Sprintf("Тема изменена на `%s`", theme))
	}
}
