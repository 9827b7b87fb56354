package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/news-reader/internal/botkit"
	"github.com/kovalyov-valentin/news-reader/internal/botkit/markup"
	"github.com/kovalyov-valentin/news-reader/internal/coordinator"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/kovalyov-valentin/news-reader/internal/summary"
)

type ArticleFinder interface {
	FindArticle(url string) (model.Article, bool)
	State() coordinator.State
}

type SummaryService interface {
	Summarize(ctx context.Context, article model.Article, intent model.Intent) summary.Result
	Digest(ctx context.Context, articles []model.Article) summary.Result
}

func ViewCmdSummary(finder ArticleFinder, summaries SummaryService) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		url, rawIntent := botkit.SplitArgs(update.Message.CommandArguments())
		if url == "" {
			return botkit.Reply(bot, update, "Использование: /summary \\<url\\> \\[summary\\|digest\\|quick\\_read\\]")
		}

		intent := model.IntentSummary
		if rawIntent != "" {
			intent = model.Intent(rawIntent)
			if !intent.Valid() {
				return botkit.Reply(bot, update, fmt.Sprintf(
					"Неизвестный режим «%s»",
					markup.EscapeForMarkdown(rawIntent),
				))
			}
		}

		article, ok := finder.FindArticle(url)
		if !ok {
			// Статьи нет в ленте, текст достанем со страницы
			article = model.Article{URL: url}
		}

		result := summaries.Summarize(ctx, article, intent)

		return botkit.Reply(bot, update, formatSummary(article, result))
	}
}

// Дайджест по текущей ленте
func ViewCmdDigest(finder ArticleFinder, summaries SummaryService) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		st := finder.State()

		articles := st.Articles
		if st.FeaturedArticle != nil {
			articles = append([]model.Article{*st.FeaturedArticle}, articles...)
		}
		if len(articles) == 0 {
			return botkit.Reply(bot, update, "Лента пуста, сначала /news")
		}

		result := summaries.Digest(ctx, articles)

		return botkit.Reply(bot, update, "*Дайджест*\n\n"+markup.EscapeForMarkdown(result.Text))
	}
}

func formatSummary(article model.Article, result summary.Result) string {
	title := article.Title
	if title == "" {
		title = article.URL
	}

	return fmt.Sprintf(
		"%s\n\n%s",
		markup.Link(markup.Truncate(title, 150), article.URL),
		markup.EscapeForMarkdown(result.Text),
	)
}
