package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"care-compliance/internal/ai"
	"care-compliance/internal/bot"
	"care-compliance/internal/logger"
	"care-compliance/internal/models/config"
	"care-compliance/internal/repository/classroom"
	"care-compliance/internal/repository/compliance"
	"care-compliance/internal/repository/credential"
	"care-compliance/internal/repository/goal"
	"care-compliance/internal/repository/note"
	"care-compliance/internal/repository/organization"
	"care-compliance/internal/repository/session"
	"care-compliance/internal/repository/staff"
	"care-compliance/internal/repository/student"
	"care-compliance/internal/service"
	alert_service "care-compliance/internal/service/alert"
	daycare_service "care-compliance/internal/service/daycare"
	notes_service "care-compliance/internal/service/notes"
	report_service "care-compliance/internal/service/report"
	roster_service "care-compliance/internal/service/roster"
	therapy_service "care-compliance/internal/service/therapy"
	"care-compliance/internal/web"
	database "care-compliance/pkg"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	fx.New(
		fx.Supply(config.AppConfig),
		fx.Provide(
			newLogger,
			newClock,
			newDatabase,

			organization.NewOrganizationRepository,
			staff.NewStaffRepository,
			student.NewStudentRepository,
			session.NewSessionRepository,
			note.NewNoteRepository,
			goal.NewGoalRepository,
			classroom.NewClassroomRepository,
			credential.NewCredentialRepository,
			compliance.NewComplianceRepository,

			newSuggester,
			newTelegramAPI,
			newNotifier,

			roster_service.NewRosterService,
			therapy_service.NewTherapyService,
			notes_service.NewNoteService,
			daycare_service.NewDaycareService,
			alert_service.NewAlertService,
			report_service.NewReportService,

			web.NewHandler,
			newHTTPServer,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(*http.Server) {},
			startBot,
		),
	).Run()
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(cfg.Environment)
	if err != nil {
		return nil, err
	}
	l.Info("starting", zap.String("environment", cfg.Environment))
	lc.Append(fx.StopHook(func() { _ = l.Sync() }))
	return l, nil
}

// newClock reads "now" in the configured time zone so calendar-day rules
// follow the organization's local dates.
func newClock(cfg *config.Config) service.Clock {
	loc := cfg.Clock.Location
	return func() time.Time {
		return time.Now().In(loc)
	}
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*sqlx.DB, error) {
	db, err := database.NewPostgres(context.Background(), cfg.Database, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(db.Close))
	return db, nil
}

func newSuggester(cfg *config.Config, log *zap.Logger) service.NoteSuggester {
	if cfg.AI.APIKey == "" {
		log.Info("AI note suggestions disabled: AI_API_KEY is not set, templates only")
	}
	return ai.NewGenerator(ai.NewCompleter(cfg.AI), log.Named("ai"))
}

func newTelegramAPI(cfg *config.Config, log *zap.Logger) (*tgbotapi.BotAPI, error) {
	return bot.NewAPI(cfg.Bot, log)
}

// newNotifier returns nil when the bot is disabled; alert sending then
// reports that delivery is not configured.
func newNotifier(api *tgbotapi.BotAPI, cfg *config.Config) service.Notifier {
	if api == nil {
		return nil
	}
	return bot.NewNotifier(api, cfg.Bot.AdminIDs)
}

func startBot(
	lc fx.Lifecycle,
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	alerts service.AlertService,
	daycare service.DaycareService,
	log *zap.Logger,
) {
	if api == nil {
		return
	}
	b := bot.NewBot(api, cfg.Bot, alerts, daycare, log)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := b.Start(ctx); err != nil {
					log.Error("bot stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			b.Stop()
			return nil
		},
	})
}

func newHTTPServer(lc fx.Lifecycle, cfg *config.Config, h *web.Handler, log *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      h.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
