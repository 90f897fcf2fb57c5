package telegrambot

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const helpText = `I help you publish a new quantum-benchmark leaderboard.

Describe the leaderboard in plain words: what it measures, which columns the
table needs, what the chart axes are and which hardware categories appear.
I will ask for anything that is missing.

Commands:
/new - discard the draft and start over
/review - show the current draft configuration
/generate - validate, render and publish the leaderboard
/status - show which LLM providers are reachable
/cancel - drop the session`

// registerRoutes wires all command handlers
func (b *Bot) registerRoutes(r *Router) {
	r.Handle("start", handleStart)
	r.Handle("help", handleHelp)
	r.Handle("new", handleNew)
	r.Handle("review", handleReview)
	r.Handle("generate", handleGenerate)
	r.Handle("cancel", handleCancel)
	r.Handle("status", handleStatus)
	r.HandleText(handleText)
}

func handleStart(ctx Context) error {
	return ctx.Bot.reply(ctx.Message.Chat.ID,
		"Hi! Tell me about the benchmark leaderboard you want to publish, "+
			"for example: \"a table of quantum volume results per processor\". "+
			"Use /help for details.")
}

func handleHelp(ctx Context) error {
	return ctx.Bot.reply(ctx.Message.Chat.ID, helpText)
}

func handleNew(ctx Context) error {
	ctx.Bot.assistant.Cancel(ctx.Message.Chat.ID)
	return ctx.Bot.reply(ctx.Message.Chat.ID, "Draft discarded. Describe the new leaderboard.")
}

func handleReview(ctx Context) error {
	review, err := ctx.Bot.assistant.Review(ctx.Message.Chat.ID)
	if err != nil {
		return ctx.Bot.reply(ctx.Message.Chat.ID, err.Error())
	}
	return ctx.Bot.reply(ctx.Message.Chat.ID, review)
}

func handleGenerate(ctx Context) error {
	chatID := ctx.Message.Chat.ID

	if !ctx.Bot.isAdmin(ctx.Message) {
		return ctx.Bot.reply(chatID, "Only the site administrator may publish leaderboards.")
	}

	draft, err := ctx.Bot.assistant.Draft(chatID)
	if err != nil {
		return ctx.Bot.reply(chatID, err.Error())
	}

	outcome, err := ctx.Bot.pipeline.Run(draft)
	if err != nil {
		ctx.Bot.logger.Error("Generation failed",
			zap.String("id", draft.ID), zap.Error(err))
		return ctx.Bot.reply(chatID, fmt.Sprintf("Generation failed: %v", err))
	}

	ctx.Bot.assistant.Complete(chatID)

	summary := fmt.Sprintf("Published '%s'.\nPage: %s\nNavigation updated in %d file(s).",
		draft.Title, outcome.Page.OutputPath, len(outcome.Navigation.Updated))
	if len(outcome.Warnings) > 0 {
		summary += "\nWarnings:\n  - " + strings.Join(outcome.Warnings, "\n  - ")
	}
	return ctx.Bot.reply(chatID, summary)
}

func handleCancel(ctx Context) error {
	ctx.Bot.assistant.Cancel(ctx.Message.Chat.ID)
	return ctx.Bot.reply(ctx.Message.Chat.ID, "Session canceled.")
}

func handleStatus(ctx Context) error {
	return ctx.Bot.reply(ctx.Message.Chat.ID, ctx.Bot.assistant.Status(ctx.Ctx))
}

// handleText forwards free-form text to the assistant
func handleText(ctx Context) error {
	text := strings.TrimSpace(ctx.Message.Text)
	if text == "" {
		return nil
	}

	reply, err := ctx.Bot.assistant.HandleMessage(ctx.Ctx, ctx.Message.Chat.ID, text)
	if err != nil {
		ctx.Bot.logger.Error("Assistant failed", zap.Error(err))
		return ctx.Bot.reply(ctx.Message.Chat.ID,
			"The assistant is unavailable right now, please try again later.")
	}
	return ctx.Bot.reply(ctx.Message.Chat.ID, reply)
}
