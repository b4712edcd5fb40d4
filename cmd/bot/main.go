package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	mainLogger := logger.Component("main")

	if !cfg.CheckTokens() {
		mainLogger.Fatal("Required environment variables are missing: PRACTICUM_TOKEN, TELEGRAM_TOKEN and TELEGRAM_CHAT_ID must be set")
	}
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, RetryPeriod: %s", cfg.LogLevel, cfg.Environment, cfg.RetryPeriod)

	// Initialize Telegram Bot
	botLogger := logger.Component("telebot")
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			logCtx := botLogger.WithError(err)
			if c != nil && c.Chat() != nil {
				logCtx = logCtx.WithField("chat_id", c.Chat().ID)
			}
			logCtx.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("Could not create Telegram bot: %v", err)
	}
	telegramClient := telegram.NewTelebotAdapter(bot)

	// Initialize Practicum API client
	apiClient := practicum.NewClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		cfg.PracticumEndpoint,
		cfg.PracticumToken,
		logger.Component("practicum"),
	)

	tracker := app.NewStatusTracker(apiClient, telegramClient, cfg.TelegramChatID, logger.Component("tracker"), time.Now())
	mainLogger.Info("Status tracker initialized.")

	telegram.RegisterBotCommands(bot, cfg.TelegramChatID, tracker, logger.Component("commands"))
	mainLogger.Info("Bot command handlers registered.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pollScheduler := scheduler.NewPollScheduler(tracker, logger.Component("scheduler"), cfg.RetryPeriod)
	pollScheduler.Start(ctx)

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()
	mainLogger.Info("Application setup complete. Bot and scheduler are running.")

	// Graceful shutdown
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	pollScheduler.Stop()
	bot.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
