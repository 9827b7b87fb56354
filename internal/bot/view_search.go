package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/news-reader/internal/botkit"
	"github.com/kovalyov-valentin/news-reader/internal/coordinator"
	"github.com/kovalyov-valentin/news-reader/internal/model"
)

type Searcher interface {
	SearchArticles(ctx context.Context, query string) []model.Article
	ClearRecentSearches(ctx context.Context)
	ClearSearch()
	State() coordinator.State
}

func ViewCmdSearch(searcher Searcher) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		query := strings.TrimSpace(update.Message.CommandArguments())
		// /search без запроса закрывает прошлый поиск
		if query == "" {
			searcher.ClearSearch()
			return botkit.Reply(bot, update, "Использование: /search \\<запрос\\>")
		}

		results := searcher.SearchArticles(ctx, query)

		return botkit.Reply(bot, update, formatSearchResults(query, results))
	}
}

// /recent показывает недавние запросы, /recent clear их очищает
func ViewCmdRecent(searcher Searcher) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		if strings.TrimSpace(update.Message.CommandArguments()) == "clear" {
			searcher.ClearRecentSearches(ctx)
			return botkit.Reply(bot, update, "Недавние запросы очищены")
		}

		return botkit.Reply(bot, update, formatRecentSearches(searcher.State().RecentSearches))
	}
}
