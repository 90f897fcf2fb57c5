// Package telegrambot wires the chat assistant to the Telegram Bot API.
package telegrambot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// HandlerFunc handles one incoming message
type HandlerFunc func(ctx Context) error

// Middleware wraps a handler
type Middleware func(ctx Context, next HandlerFunc) error

// Context carries one update through the router
type Context struct {
	Ctx      context.Context
	Message  *tgbotapi.Message
	UpdateID int
	Bot      *Bot
}

// Router manages command routes and middleware
type Router struct {
	routes      map[string]HandlerFunc
	fallback    HandlerFunc
	middlewares []Middleware
}

// NewRouter creates a new Router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]HandlerFunc),
	}
}

// Use adds a middleware to the router
func (r *Router) Use(middleware Middleware) {
	r.middlewares = append(r.middlewares, middleware)
}

// Handle registers a command handler
func (r *Router) Handle(command string, handler HandlerFunc) {
	r.routes[command] = handler
}

// HandleText registers the handler for plain text messages
func (r *Router) HandleText(handler HandlerFunc) {
	r.fallback = handler
}

// Dispatch dispatches a message to its handler through the middleware chain
func (r *Router) Dispatch(ctx Context) error {
	var handler HandlerFunc
	if command := ctx.Message.Command(); command != "" {
		var ok bool
		handler, ok = r.routes[command]
		if !ok {
			ctx.Bot.logger.Warn("Unknown command",
				zap.String("command", command), zap.Int("update_id", ctx.UpdateID))
			return ctx.Bot.reply(ctx.Message.Chat.ID, "Unknown command. Use /help.")
		}
	} else {
		handler = r.fallback
		if handler == nil {
			return nil
		}
	}

	current := handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		mw := r.middlewares[i]
		current = func(h HandlerFunc) HandlerFunc {
			return func(c Context) error {
				return mw(c, h)
			}
		}(current)
	}

	return current(ctx)
}
