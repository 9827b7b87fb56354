package botkit

import (
	"context"
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/news-reader/internal/logging"
)

type Bot struct {
	// Инстанс апи телеграма
	api *tgbotapi.BotAPI
	// Команда -> view
	cmdViews map[string]ViewFunc
	// Сколько дается одной view. Загрузка ленты и суммаризация бывают долгими.
	updateTimeout time.Duration
}

// Функция, которая реагирует на определенную команду.
// Update это любой эвент, который приходит от телеграма при взаимодействии пользователя с ботом.
type ViewFunc func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error

func New(api *tgbotapi.BotAPI) *Bot {
	return &Bot{
		api:           api,
		updateTimeout: 30 * time.Second,
	}
}

// Регистрирует view для команды
func (b *Bot) RegisterCmdView(cmd string, view ViewFunc) {
	if b.cmdViews == nil {
		b.cmdViews = make(map[string]ViewFunc)
	}

	b.cmdViews[cmd] = view
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			updateCtx, updateCancel := context.WithTimeout(ctx, b.updateTimeout)
			b.handleUpdate(updateCtx, update)
			updateCancel()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Роутит команду на соответствующую view
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := logging.With("bot")

	// Паника во view не должна ронять бота
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Str("stack", string(debug.Stack())).Msg("panic recovered")
		}
	}()

	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	cmd := update.Message.Command()

	view, ok := b.cmdViews[cmd]
	if !ok {
		return
	}

	if err := view(ctx, b.api, update); err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("failed to handle update")

		if _, err := b.api.Send(
			tgbotapi.NewMessage(update.Message.Chat.ID, "Внутренняя ошибка, попробуйте позже"),
		); err != nil {
			log.Error().Err(err).Msg("failed to send message")
		}
	}
}

// Отправляет сообщение в MarkdownV2 в чат, откуда пришел update
func Reply(bot *tgbotapi.BotAPI, update tgbotapi.Update, text string) error {
	reply := tgbotapi.NewMessage(update.Message.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeMarkdownV2
	reply.DisableWebPagePreview = true

	_, err := bot.Send(reply)
	return err
}
