package middleware

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/news-reader/internal/botkit"
	"github.com/kovalyov-valentin/news-reader/internal/logging"
)

// Бот персональный: лента, поиск и закладки принадлежат одному пользователю.
// ownerID == 0 отключает проверку.
func OwnerOnly(ownerID int64, next botkit.ViewFunc) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		if ownerID == 0 || (update.Message.From != nil && update.Message.From.ID == ownerID) {
			return next(ctx, bot, update)
		}

		var fromID int64
		if update.Message.From != nil {
			fromID = update.Message.From.ID
		}
		logging.Warn().Int64("from", fromID).Msg("command from non-owner rejected")

		if _, err := bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "У вас нет прав для выполнения этой команды")); err != nil {
			return err
		}
		return nil
	}
}
