package telegrambot

import (
	"fmt"

	"go.uber.org/zap"
)

// logRequest logs every dispatched message
func logRequest(ctx Context, next HandlerFunc) error {
	ctx.Bot.logger.Info("Message received",
		zap.Int64("chat_id", ctx.Message.Chat.ID),
		zap.String("command", ctx.Message.Command()),
		zap.Int("update_id", ctx.UpdateID))
	return next(ctx)
}

// recoverPanic converts a handler panic into an error
func recoverPanic(ctx Context, next HandlerFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			ctx.Bot.logger.Error("Handler panic",
				zap.Int("update_id", ctx.UpdateID), zap.Any("panic", r))
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return next(ctx)
}
