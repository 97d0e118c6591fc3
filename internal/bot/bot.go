package bot

import (
	"context"
	"fmt"
	"sync"

	"care-compliance/internal/models/config"
	"care-compliance/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sender is the part of tgbotapi.BotAPI the handlers and the notifier use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api            *tgbotapi.BotAPI
	sender         Sender
	AlertService   service.AlertService
	DaycareService service.DaycareService
	adminIDs       map[int64]bool
	log            *zap.Logger

	userSessions map[int64]*UserSession // chatID -> session
	mu           sync.RWMutex
}

// NewAPI connects to Telegram. It returns nil without error when no token is
// configured.
func NewAPI(cfg config.BotConfig, log *zap.Logger) (*tgbotapi.BotAPI, error) {
	if !cfg.Enabled() {
		log.Info("telegram bot disabled: BOT_TOKEN is not set")
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = cfg.Debug

	log.Info("bot initialized",
		zap.String("username", api.Self.UserName),
		zap.Bool("debug", cfg.Debug),
		zap.Int64s("admins", cfg.AdminIDs),
	)
	return api, nil
}

func NewBot(
	api *tgbotapi.BotAPI,
	cfg config.BotConfig,
	alertService service.AlertService,
	daycareService service.DaycareService,
	log *zap.Logger,
) *Bot {
	b := newBot(api, cfg.AdminIDs, alertService, daycareService, log.Named("bot"))
	b.api = api
	return b
}

func newBot(s Sender, adminIDs []int64, alertService service.AlertService, daycareService service.DaycareService, log *zap.Logger) *Bot {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &Bot{
		sender:         s,
		AlertService:   alertService,
		DaycareService: daycareService,
		adminIDs:       admins,
		log:            log,
		userSessions:   make(map[int64]*UserSession),
	}
}

// Start polls for updates until ctx is done or Stop is called.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// parseOrganization accepts a bare UUID argument.
func parseOrganization(arg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(arg)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
