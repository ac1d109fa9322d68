// Package bot parses bot command flags and composes the Telegram service.
package bot

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/annuaire/internal/auth"
	"github.com/louisbranch/annuaire/internal/dialog"
	"github.com/louisbranch/annuaire/internal/dialog/render"
	dirsqlite "github.com/louisbranch/annuaire/internal/directory/storage/sqlite"
	entrypoint "github.com/louisbranch/annuaire/internal/platform/cmd"
	poolsqlite "github.com/louisbranch/annuaire/internal/pool/storage/sqlite"
	"github.com/louisbranch/annuaire/internal/transport/telegram"
)

// Config holds bot command configuration.
type Config struct {
	Token        string `env:"ANNUAIRE_TELEGRAM_TOKEN"`
	DBPath       string `env:"ANNUAIRE_DB_PATH"       envDefault:"data.db"`
	AllowedUsers string `env:"ANNUAIRE_ALLOWED_USERS"`
	WebhookURL   string `env:"ANNUAIRE_WEBHOOK_URL"`
	HTTPAddr     string `env:"ANNUAIRE_HTTP_ADDR"     envDefault:":10000"`
	Locale       string `env:"ANNUAIRE_LOCALE"        envDefault:"fr"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Token, "token", cfg.Token, "Telegram bot token")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.AllowedUsers, "allowed-users", cfg.AllowedUsers, "comma-separated allowed user IDs (empty allows everyone)")
	fs.StringVar(&cfg.WebhookURL, "webhook-url", cfg.WebhookURL, "public webhook URL (empty uses long polling)")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "webhook HTTP listen address")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "reply language tag")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the bot from its stores and serves updates until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBot, func(ctx context.Context) error {
		if cfg.Token == "" {
			return fmt.Errorf("telegram token is required")
		}

		poolStore, err := poolsqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open pool store: %w", err)
		}
		defer poolStore.Close()

		directoryStore, err := dirsqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open directory store: %w", err)
		}
		defer directoryStore.Close()

		allowed := auth.ParseAllowList(cfg.AllowedUsers)
		if len(allowed) == 0 {
			log.Printf("[WARN] allow-list empty, every user is accepted")
		}

		localizer := render.NewLocalizer(cfg.Locale)
		controller, err := dialog.NewController(dialog.Config{
			Sessions:  dialog.NewMemorySessions(),
			Gate:      auth.NewGate(allowed),
			Pool:      poolStore,
			Directory: directoryStore,
			Localizer: localizer,
			Escape:    telegram.EscapeMarkdownV2,
		})
		if err != nil {
			return fmt.Errorf("build dialog controller: %w", err)
		}

		bot, err := telegram.NewBot(telegram.BotConfig{
			Client:     telegram.NewClient(&http.Client{Timeout: 60 * time.Second}, "", cfg.Token),
			Handler:    controller,
			Localizer:  localizer,
			Token:      cfg.Token,
			WebhookURL: cfg.WebhookURL,
			Addr:       cfg.HTTPAddr,
		})
		if err != nil {
			return fmt.Errorf("build telegram bot: %w", err)
		}

		log.Printf("[BOOT] db=%s webhook=%s", cfg.DBPath, cfg.WebhookURL)
		if err := bot.Run(ctx); err != nil {
			return fmt.Errorf("serve bot: %w", err)
		}
		return nil
	})
}
