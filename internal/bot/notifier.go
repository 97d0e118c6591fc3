package bot

import (
	"context"
	"errors"
	"fmt"

	"care-compliance/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Notifier delivers alert text to the configured admin chats.
type Notifier struct {
	sender   Sender
	adminIDs []int64
}

func NewNotifier(sender Sender, adminIDs []int64) *Notifier {
	return &Notifier{sender: sender, adminIDs: adminIDs}
}

func (n *Notifier) Notify(_ context.Context, text string) error {
	if len(n.adminIDs) == 0 {
		return errors.New("no admin chats configured")
	}

	var errs []error
	for _, chatID := range n.adminIDs {
		if _, err := n.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

var _ service.Notifier = (*Notifier)(nil)
