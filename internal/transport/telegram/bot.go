package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/annuaire/internal/dialog"
	"github.com/louisbranch/annuaire/internal/dialog/render"
	"github.com/louisbranch/annuaire/internal/platform/id"
)

// Handler consumes one inbound turn and returns the replies to deliver.
type Handler interface {
	Handle(ctx context.Context, in dialog.Inbound) []dialog.Effect
}

// BotConfig wires a Bot together.
type BotConfig struct {
	Client    *Client
	Handler   Handler
	Localizer render.Localizer

	// Token is the bot token, used to derive the webhook listen path.
	Token string

	// WebhookURL switches the bot to webhook mode when non-empty;
	// otherwise it long-polls getUpdates.
	WebhookURL string

	// Addr is the webhook listen address, e.g. ":10000".
	Addr string

	PollTimeout time.Duration
}

// Bot pumps Telegram updates through a dialog handler and delivers the
// resulting effects back to the chat.
type Bot struct {
	client      *Client
	handler     Handler
	loc         render.Localizer
	token       string
	webhookURL  string
	addr        string
	pollTimeout time.Duration
}

func NewBot(cfg BotConfig) (*Bot, error) {
	if cfg.Client == nil {
		return nil, errors.New("telegram: client is required")
	}
	if cfg.Handler == nil {
		return nil, errors.New("telegram: handler is required")
	}
	if cfg.Localizer == nil {
		cfg.Localizer = render.NewLocalizer("")
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 30 * time.Second
	}
	return &Bot{
		client:      cfg.Client,
		handler:     cfg.Handler,
		loc:         cfg.Localizer,
		token:       cfg.Token,
		webhookURL:  strings.TrimRight(cfg.WebhookURL, "/"),
		addr:        cfg.Addr,
		pollTimeout: cfg.PollTimeout,
	}, nil
}

// Run serves updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	me, err := b.client.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	log.Printf("[BOOT] bot account @%s (%d)", me.Username, me.ID)

	if b.webhookURL != "" {
		return b.runWebhook(ctx)
	}
	return b.runPoller(ctx)
}

func (b *Bot) runPoller(ctx context.Context) error {
	if err := b.client.DeleteWebhook(ctx, true); err != nil {
		log.Printf("[WARN] delete webhook: %v", err)
	}

	var offset int64
	for {
		if ctx.Err() != nil {
			return nil
		}
		updates, next, err := b.client.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if IsPollTimeout(err) {
				continue
			}
			log.Printf("[ERROR] get updates: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(3 * time.Second):
			}
			continue
		}
		offset = next
		for _, update := range updates {
			b.handleUpdate(ctx, update)
		}
	}
}

// webhookPath mirrors the public URL: when it ends with the bot token
// the server listens on /<token>, otherwise on the root.
func (b *Bot) webhookPath() string {
	if b.token != "" && strings.HasSuffix(b.webhookURL, b.token) {
		return "/" + b.token
	}
	return "/"
}

func (b *Bot) runWebhook(ctx context.Context) error {
	path := b.webhookPath()
	log.Printf("[BOOT] webhook %s listening on %s%s", b.webhookURL, b.addr, path)

	if err := b.client.SetWebhook(ctx, b.webhookURL, true); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(path, b.serveUpdate)

	server := &http.Server{Addr: b.addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (b *Bot) serveUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	b.handleUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}

func (b *Bot) handleUpdate(ctx context.Context, update Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.From.IsBot || strings.TrimSpace(msg.Text) == "" {
		return
	}
	chatID := msg.From.ID
	if msg.Chat != nil {
		chatID = msg.Chat.ID
	}

	turn, err := id.NewID()
	if err != nil {
		turn = "unidentified"
	}
	effects := b.handler.Handle(ctx, dialog.Inbound{PartyID: msg.From.ID, Text: msg.Text})
	for _, effect := range effects {
		if err := b.deliver(ctx, chatID, effect); err != nil {
			log.Printf("[ERROR] turn %s: deliver to %d: %v", turn, chatID, err)
		}
	}
}

func (b *Bot) deliver(ctx context.Context, chatID int64, effect dialog.Effect) error {
	switch e := effect.(type) {
	case dialog.SendText:
		return b.client.SendMessage(ctx, chatID, e.Body, b.markupFor(e))
	case dialog.SendFile:
		return b.client.SendDocument(ctx, chatID, e.Filename, e.Content, e.Caption)
	default:
		return fmt.Errorf("unsupported effect %T", effect)
	}
}

func (b *Bot) markupFor(e dialog.SendText) any {
	if !e.MenuHint {
		return ReplyKeyboardRemove{RemoveKeyboard: true}
	}
	return ReplyKeyboardMarkup{
		Keyboard: [][]KeyboardButton{
			{
				{Text: b.loc.Sprintf("dialog.menu.draw")},
				{Text: b.loc.Sprintf("dialog.menu.search")},
			},
			{
				{Text: b.loc.Sprintf("dialog.menu.status")},
			},
		},
		ResizeKeyboard: true,
	}
}
