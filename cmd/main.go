package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/kovalyov-valentin/news-reader/internal/api"
	"github.com/kovalyov-valentin/news-reader/internal/bot"
	"github.com/kovalyov-valentin/news-reader/internal/bot/middleware"
	"github.com/kovalyov-valentin/news-reader/internal/botkit"
	"github.com/kovalyov-valentin/news-reader/internal/config"
	"github.com/kovalyov-valentin/news-reader/internal/coordinator"
	"github.com/kovalyov-valentin/news-reader/internal/kv"
	"github.com/kovalyov-valentin/news-reader/internal/logging"
	"github.com/kovalyov-valentin/news-reader/internal/preferences"
	"github.com/kovalyov-valentin/news-reader/internal/source"
	"github.com/kovalyov-valentin/news-reader/internal/summary"
)

func main() {
	cfg := config.Get()

	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log := logging.With("main")

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, closer, err := kv.Open(ctx, cfg.StorageDriver, cfg.StoragePath, cfg.DatabaseDSN)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
		return
	}
	defer closer.Close()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	providers := buildProviders(cfg, httpClient)
	if len(providers) == 0 {
		log.Warn().Msg("no news providers configured, only cached articles will be available")
	}

	var (
		chain = source.NewChain(
			providers,
			source.WithFilterKeywords(cfg.FilterKeywords),
		)
		news = coordinator.New(
			chain,
			store,
			coordinator.WithPageSize(cfg.PageSize),
		)
		summarizer = summary.NewOpenAISummarizer(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		summaries  = summary.NewService(summarizer, httpClient)
		prefs      = preferences.New(store)
	)

	if !summarizer.Enabled() {
		log.Warn().Msg("openai key is not set, summaries will show a placeholder")
	}

	log.Info().Strs("providers", chain.Providers()).Str("storage", cfg.StorageDriver).Msg("starting news reader")

	// Сначала показываем то, что было сохранено, потом идем в сеть
	news.LoadCachedData(ctx)
	news.Refresh(ctx)

	// Воркер обновления ленты
	if cfg.RefreshInterval > 0 {
		go func(ctx context.Context) {
			if err := coordinator.NewRefresher(news, cfg.RefreshInterval).Start(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Msg("refresher stopped with error")
					return
				}

				log.Info().Msg("refresher stopped")
			}
		}(ctx)
	}

	if cfg.TelegramBotToken != "" {
		go runBot(ctx, cfg, news, summaries, prefs)
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(news),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown http server")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("http server failed")
		return
	}

	log.Info().Msg("http server stopped")
}

// Провайдеры без ключа или без лент пропускаются. Порядок задает приоритет в цепочке.
func buildProviders(cfg config.Config, client *http.Client) []source.Provider {
	var providers []source.Provider

	if cfg.NewsAPIKey != "" {
		providers = append(providers, source.NewNewsAPIProvider(cfg.NewsAPIURL, cfg.NewsAPIKey, cfg.NewsAPICountry, client))
	}
	if cfg.GNewsAPIKey != "" {
		providers = append(providers, source.NewGNewsProvider(cfg.GNewsAPIURL, cfg.GNewsAPIKey, cfg.GNewsLang, client))
	}
	for _, feed := range cfg.RSSFeeds {
		providers = append(providers, source.NewRSSProvider(feed))
	}

	return providers
}

func runBot(
	ctx context.Context,
	cfg config.Config,
	news *coordinator.Coordinator,
	summaries *summary.Service,
	prefs *preferences.Preferences,
) {
	log := logging.With("bot")

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to create bot")
		return
	}

	// Все команды доступны только владельцу
	owner := func(view botkit.ViewFunc) botkit.ViewFunc {
		return middleware.OwnerOnly(cfg.TelegramOwnerID, view)
	}

	newsBot := botkit.New(botAPI)
	newsBot.RegisterCmdView("start", bot.ViewCmdStart())
	newsBot.RegisterCmdView("news", owner(bot.ViewCmdNews(news)))
	newsBot.RegisterCmdView("more", owner(bot.ViewCmdMore(news)))
	newsBot.RegisterCmdView("refresh", owner(bot.ViewCmdRefresh(news)))
	newsBot.RegisterCmdView("category", owner(bot.ViewCmdCategory(news)))
	newsBot.RegisterCmdView("search", owner(bot.ViewCmdSearch(news)))
	newsBot.RegisterCmdView("recent", owner(bot.ViewCmdRecent(news)))
	newsBot.RegisterCmdView("bookmark", owner(bot.ViewCmdBookmark(news)))
	newsBot.RegisterCmdView("unbookmark", owner(bot.ViewCmdUnbookmark(news)))
	newsBot.RegisterCmdView("bookmarks", owner(bot.ViewCmdBookmarks(news)))
	newsBot.RegisterCmdView("summary", owner(bot.ViewCmdSummary(news, summaries)))
	newsBot.RegisterCmdView("digest", owner(bot.ViewCmdDigest(news, summaries)))
	newsBot.RegisterCmdView("theme", owner(bot.ViewCmdTheme(prefs)))
	newsBot.RegisterCmdView("profile", owner(bot.ViewCmdProfile(prefs)))
	newsBot.RegisterCmdView("signout", owner(bot.ViewCmdSignOut(news, prefs)))

	if err := newsBot.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("bot stopped with error")
			return
		}

		log.Info().Msg("bot stopped")
	}
}
