package bot

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/news-reader/internal/botkit"
	"github.com/kovalyov-valentin/news-reader/internal/botkit/markup"
)

type ProfileStore interface {
	ProfileImageURL(ctx context.Context) string
	SetProfileImageURL(ctx context.Context, url string) error
}

type Resetter interface {
	Reset(ctx context.Context, wipe func(ctx context.Context) error) error
}

type StoreWiper interface {
	ClearAll(ctx context.Context) error
}

// /profile показывает картинку профиля, /profile <url> ее меняет, /profile clear удаляет
func ViewCmdProfile(profile ProfileStore) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		arg := strings.TrimSpace(update.Message.CommandArguments())

		switch {
		case arg == "":
			current := profile.ProfileImageURL(ctx)
			if current == "" {
				return botkit.Reply(bot, update, "Картинка профиля не задана")
			}
			return botkit.Reply(bot, update, "Картинка профиля: "+markup.Link(current, current))
		case arg == "clear":
			if err := profile.SetProfileImageURL(ctx, ""); err != nil {
				return err
			}
			return botkit.Reply(bot, update, "Картинка профиля удалена")
		case !isImageURL(arg):
			return botkit.Reply(bot, update, fmt.Sprintf(
				"«%s» не похоже на ссылку http\\(s\\)",
				markup.EscapeForMarkdown(arg),
			))
		}

		if err := profile.SetProfileImageURL(ctx, arg); err != nil {
			return err
		}

		return botkit.Reply(bot, update, "Картинка профиля обновлена")
	}
}

func isImageURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Стирает все сохраненные данные и сбрасывает ленту, поиск и закладки
func ViewCmdSignOut(news Resetter, store StoreWiper) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		if err := news.Reset(ctx, store.ClearAll); err != nil {
			return err
		}

		return botkit.Reply(bot, update, "Все данные удалены\\. Начать заново: /news")
	}
}
