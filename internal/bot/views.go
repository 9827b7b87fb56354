package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/news-reader/internal/botkit"
	"github.com/kovalyov-valentin/news-reader/internal/botkit/markup"
	"github.com/kovalyov-valentin/news-reader/internal/coordinator"
	"github.com/kovalyov-valentin/news-reader/internal/model"
)

type Feed interface {
	State() coordinator.State
	Refresh(ctx context.Context) bool
	LoadMore(ctx context.Context) bool
	SetSelectedCategory(category string) bool
}

func ViewCmdStart() botkit.ViewFunc {
	const text = "Привет\\! Я собираю новости из нескольких источников\\.\n\n" +
		"/news \\- лента выбранной категории\n" +
		"/more \\- следующая страница\n" +
		"/refresh \\- обновить ленту\n" +
		"/category \\- выбрать категорию\n" +
		"/search \\<запрос\\> \\- поиск по загруженным статьям\n" +
		"/recent \\- недавние запросы\n" +
		"/bookmark \\<url\\>, /unbookmark \\<url\\>, /bookmarks \\- закладки\n" +
		"/summary \\<url\\> \\[summary\\|digest\\|quick\\_read\\] \\- краткое содержание\n" +
		"/digest \\- дайджест ленты\n" +
		"/theme \\<light\\|dark\\|system\\> \\- тема\n" +
		"/profile \\[url\\|clear\\] \\- картинка профиля\n" +
		"/signout \\- удалить все данные"

	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		return botkit.Reply(bot, update, text)
	}
}

func ViewCmdNews(feed Feed) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		st := feed.State()

		// Первое обращение до фоновой загрузки
		if st.FeaturedArticle == nil && len(st.Articles) == 0 && !st.Loading {
			feed.Refresh(ctx)
			st = feed.State()
		}

		return botkit.Reply(bot, update, formatFeed(st))
	}
}

func ViewCmdRefresh(feed Feed) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		if !feed.Refresh(ctx) {
			return botkit.Reply(bot, update, "Лента уже обновляется, попробуйте чуть позже")
		}

		return botkit.Reply(bot, update, formatFeed(feed.State()))
	}
}

func ViewCmdMore(feed Feed) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		before := len(feed.State().Articles)

		if !feed.LoadMore(ctx) {
			if !feed.State().HasMore {
				return botkit.Reply(bot, update, "Больше статей нет")
			}
			return botkit.Reply(bot, update, "Лента уже обновляется, попробуйте чуть позже")
		}

		st := feed.State()
		if st.Error != "" {
			return botkit.Reply(bot, update, "⚠️ "+markup.EscapeForMarkdown(st.Error))
		}
		if len(st.Articles) <= before {
			return botkit.Reply(bot, update, "Больше статей нет")
		}

		return botkit.Reply(bot, update, formatArticles(st.Articles[before:]))
	}
}

func ViewCmdCategory(feed Feed) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		arg := strings.TrimSpace(update.Message.CommandArguments())
		if arg == "" {
			return botkit.Reply(bot, update, formatCategories(feed.State().SelectedCategory))
		}

		category, ok := model.ParseCategory(arg)
		if !ok {
			return botkit.Reply(bot, update, fmt.Sprintf(
				"Категории «%s» нет\\. Список: /category",
				markup.EscapeForMarkdown(arg),
			))
		}

		feed.SetSelectedCategory(category)
		feed.Refresh(ctx)

		return botkit.Reply(bot, update, formatFeed(feed.State()))
	}
}
