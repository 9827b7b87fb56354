package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/news-reader/internal/botkit"
	"github.com/kovalyov-valentin/news-reader/internal/model"
)

type Bookmarker interface {
	AddBookmark(ctx context.Context, article model.Article) bool
	RemoveBookmark(ctx context.Context, url string) bool
	Bookmarks() []model.Article
	FindArticle(url string) (model.Article, bool)
}

func ViewCmdBookmark(bookmarks Bookmarker) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		url := strings.TrimSpace(update.Message.CommandArguments())
		if url == "" {
			return botkit.Reply(bot, update, "Использование: /bookmark \\<url\\>")
		}

		// В закладки можно положить только статью, которую бот уже показывал
		article, ok := bookmarks.FindArticle(url)
		if !ok {
			return botkit.Reply(bot, update, "Статья не найдена в ленте")
		}

		if !bookmarks.AddBookmark(ctx, article) {
			return botkit.Reply(bot, update, "Статья уже в закладках")
		}

		return botkit.Reply(bot, update, "Добавлено в закладки")
	}
}

func ViewCmdUnbookmark(bookmarks Bookmarker) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		url := strings.TrimSpace(update.Message.CommandArguments())
		if url == "" {
			return botkit.Reply(bot, update, "Использование: /unbookmark \\<url\\>")
		}

		if !bookmarks.RemoveBookmark(ctx, url) {
			return botkit.Reply(bot, update, "Такой закладки нет")
		}

		return botkit.Reply(bot, update, "Закладка удалена")
	}
}

func ViewCmdBookmarks(bookmarks Bookmarker) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		return botkit.Reply(bot, update, formatBookmarks(bookmarks.Bookmarks()))
	}
}
