package telegrambot

import (
	"context"
	"fmt"

	"qbench/internal/chat"
	"qbench/internal/config"
	"qbench/internal/generator"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot represents the Telegram assistant bot
type Bot struct {
	api       *tgbotapi.BotAPI
	assistant *chat.Assistant
	pipeline  *generator.Pipeline
	config    *config.Config
	router    *Router
	logger    *zap.Logger
}

// NewBot creates a new bot instance
func NewBot(cfg *config.Config, assistant *chat.Assistant, pipeline *generator.Pipeline, logger *zap.Logger) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}

	bot := &Bot{
		api:       api,
		assistant: assistant,
		pipeline:  pipeline,
		config:    cfg,
		logger:    logger,
	}

	r := NewRouter()
	r.Use(logRequest)
	r.Use(recoverPanic)
	bot.registerRoutes(r)
	bot.router = r

	return bot, nil
}

// Start runs the long-poll update loop until the context is canceled
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Bot started", zap.String("username", b.api.Self.UserName))

	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	if err := b.setCommands(); err != nil {
		b.logger.Error("Failed to set bot commands", zap.Error(err))
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot update loop stopped")
			return nil
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			msgCtx := Context{
				Ctx:      ctx,
				Message:  update.Message,
				UpdateID: update.UpdateID,
				Bot:      b,
			}
			if err := b.router.Dispatch(msgCtx); err != nil {
				b.logger.Error("Handler failed",
					zap.Int("update_id", update.UpdateID), zap.Error(err))
			}
		}
	}
}

// setCommands registers the command list shown by the Telegram client
func (b *Bot) setCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start building a leaderboard"},
		{Command: "help", Description: "Show help"},
		{Command: "new", Description: "Discard the draft and start over"},
		{Command: "review", Description: "Show the current draft"},
		{Command: "generate", Description: "Publish the leaderboard"},
		{Command: "cancel", Description: "Cancel the session"},
		{Command: "status", Description: "Show provider status"},
	}
	_, err := b.api.Request(tgbotapi.NewSetMyCommands(commands...))
	return err
}

// reply sends a plain text message to a chat
func (b *Bot) reply(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// isAdmin reports whether the sender may run privileged commands. An empty
// ADMIN_USERNAME leaves the bot open.
func (b *Bot) isAdmin(message *tgbotapi.Message) bool {
	if b.config.AdminUsername == "" {
		return true
	}
	return message.From != nil && message.From.UserName == b.config.AdminUsername
}
