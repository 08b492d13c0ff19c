package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/relay/domain"
)

type Credentials struct {
	BotToken string
	ChatID   string
}

func (c Credentials) complete() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// Messenger delivers one text message to a chat.
type Messenger interface {
	SendMessage(ctx context.Context, creds Credentials, text string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, evt domain.Event) error
}
