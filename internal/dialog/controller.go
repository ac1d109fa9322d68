package dialog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	dirstorage "github.com/louisbranch/annuaire/internal/directory/storage"
	"github.com/louisbranch/annuaire/internal/dialog/render"
	poolstorage "github.com/louisbranch/annuaire/internal/pool/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Authorizer decides whether a party may use the bot. Checked on every
// turn, not only at session start.
type Authorizer interface {
	Allowed(partyID int64) bool
}

// Config assembles a dialog controller.
type Config struct {
	Sessions  SessionStore
	Gate      Authorizer
	Pool      poolstorage.Store
	Directory dirstorage.Store
	Localizer render.Localizer
	Rules     []Rule
	Escape    render.EscapeFunc
	Now       func() time.Time
}

// Controller interprets inbound messages against each party's state and
// emits reply effects. It is the single recovery boundary for store
// failures: they surface to the party as a generic retry message and
// never end the process.
type Controller struct {
	sessions  SessionStore
	gate      Authorizer
	pool      poolstorage.Store
	directory dirstorage.Store
	loc       render.Localizer
	rules     []Rule
	escape    render.EscapeFunc
	now       func() time.Time
	tracer    trace.Tracer
}

// NewController validates the configuration and applies defaults: an
// in-memory session store, French copy, the stock intent rules, and no
// markup escaping.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Gate == nil {
		return nil, fmt.Errorf("authorizer is required")
	}
	if cfg.Pool == nil {
		return nil, fmt.Errorf("pool store is required")
	}
	if cfg.Directory == nil {
		return nil, fmt.Errorf("directory store is required")
	}
	if cfg.Sessions == nil {
		cfg.Sessions = NewMemorySessions()
	}
	if cfg.Localizer == nil {
		cfg.Localizer = render.NewLocalizer("fr")
	}
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules()
	}
	if cfg.Escape == nil {
		cfg.Escape = func(s string) string { return s }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Controller{
		sessions:  cfg.Sessions,
		gate:      cfg.Gate,
		pool:      cfg.Pool,
		directory: cfg.Directory,
		loc:       cfg.Localizer,
		rules:     cfg.Rules,
		escape:    cfg.Escape,
		now:       cfg.Now,
		tracer:    otel.Tracer("github.com/louisbranch/annuaire/internal/dialog"),
	}, nil
}

// Handle processes one inbound message and returns the replies to send.
// A party without an active session is ignored until it begins one.
func (c *Controller) Handle(ctx context.Context, in Inbound) []Effect {
	ctx, span := c.tracer.Start(ctx, "dialog.turn",
		trace.WithAttributes(attribute.Int64("dialog.party_id", in.PartyID)))
	defer span.End()

	text := strings.TrimSpace(in.Text)

	switch {
	case isCommand(text, "start"):
		return c.handleStart(in.PartyID)
	case isCommand(text, "cancel"):
		c.sessions.Delete(in.PartyID)
		return []Effect{SendText{Body: c.loc.Sprintf("dialog.farewell")}}
	}

	state, ok := c.sessions.Get(in.PartyID)
	if !ok {
		// No active session: the implicit ended state.
		return nil
	}

	if !c.gate.Allowed(in.PartyID) {
		log.Printf("[WARN] party no longer allowed: %d", in.PartyID)
		c.sessions.Delete(in.PartyID)
		return []Effect{SendText{Body: c.loc.Sprintf("dialog.auth.denied_short")}}
	}

	switch state {
	case StateMenu:
		return c.handleMenu(ctx, in.PartyID, text)
	case StateAskCount:
		return c.handleAskCount(ctx, in.PartyID, text)
	case StateAskQuery:
		return c.handleAskQuery(ctx, in.PartyID, text)
	}
	return nil
}

func (c *Controller) handleStart(partyID int64) []Effect {
	if !c.gate.Allowed(partyID) {
		log.Printf("[WARN] party not allowed: %d", partyID)
		// No session is created for denied parties.
		c.sessions.Delete(partyID)
		return []Effect{SendText{Body: c.loc.Sprintf("dialog.auth.denied")}}
	}
	c.sessions.Put(partyID, StateMenu)
	return []Effect{SendText{Body: c.loc.Sprintf("dialog.menu.prompt"), MenuHint: true}}
}

func (c *Controller) handleMenu(ctx context.Context, partyID int64, text string) []Effect {
	switch matchAction(c.rules, text) {
	case ActionWithdraw:
		c.sessions.Put(partyID, StateAskCount)
		return []Effect{SendText{Body: c.loc.Sprintf("dialog.count.prompt")}}
	case ActionSearch:
		c.sessions.Put(partyID, StateAskQuery)
		return []Effect{SendText{Body: c.loc.Sprintf("dialog.query.prompt")}}
	case ActionStatus:
		poolCount, err := c.pool.Count(ctx)
		if err != nil {
			return c.infrastructureFailure("pool count", err)
		}
		recordCount, err := c.directory.Count(ctx)
		if err != nil {
			return c.infrastructureFailure("directory count", err)
		}
		return []Effect{SendText{
			Body:     c.loc.Sprintf("dialog.status", poolCount, recordCount),
			MenuHint: true,
		}}
	}
	return []Effect{SendText{Body: c.loc.Sprintf("dialog.menu.repeat"), MenuHint: true}}
}

func (c *Controller) handleAskCount(ctx context.Context, partyID int64, text string) []Effect {
	n, ok := parseCount(text)
	if !ok {
		return []Effect{SendText{Body: c.loc.Sprintf("dialog.count.invalid")}}
	}

	numbers, err := c.pool.Take(ctx, n)
	if err != nil {
		return c.infrastructureFailure("pool take", err)
	}

	c.sessions.Put(partyID, StateMenu)
	if len(numbers) == 0 {
		return []Effect{SendText{Body: c.loc.Sprintf("dialog.pool.empty"), MenuHint: true}}
	}

	var content strings.Builder
	for _, number := range numbers {
		content.WriteString(number.Value)
		content.WriteByte('\n')
	}
	stamp := c.now().Format("20060102_150405")

	return []Effect{
		SendFile{
			Filename: "export_" + stamp + ".txt",
			Content:  []byte(content.String()),
			Caption:  c.loc.Sprintf("dialog.export.caption", len(numbers)),
		},
		SendText{Body: c.loc.Sprintf("dialog.followup"), MenuHint: true},
	}
}

func (c *Controller) handleAskQuery(ctx context.Context, partyID int64, text string) []Effect {
	records, err := c.directory.Search(ctx, text)
	if err != nil {
		if errors.Is(err, dirstorage.ErrEmptyQuery) {
			return []Effect{SendText{Body: c.loc.Sprintf("dialog.query.empty")}}
		}
		return c.infrastructureFailure("directory search", err)
	}
	if len(records) == 0 {
		return []Effect{SendText{Body: c.loc.Sprintf("dialog.search.none")}}
	}

	effects := make([]Effect, 0, len(records)+1)
	for _, record := range records {
		effects = append(effects, SendText{Body: render.RecordBlock(record, c.escape)})
	}
	effects = append(effects, SendText{
		Body:     c.loc.Sprintf("dialog.search.again"),
		MenuHint: true,
	})
	c.sessions.Put(partyID, StateMenu)
	return effects
}

// infrastructureFailure logs the underlying error and keeps the session
// usable with a generic retry message.
func (c *Controller) infrastructureFailure(op string, err error) []Effect {
	log.Printf("[ERROR] %s: %v", op, err)
	return []Effect{SendText{Body: c.loc.Sprintf("dialog.error.generic")}}
}

// parseCount accepts only unsigned decimal integers greater than zero.
func parseCount(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// isCommand reports whether text invokes the named slash command,
// tolerating the @botname suffix chat clients append.
func isCommand(text, name string) bool {
	lower := strings.ToLower(text)
	cmd := "/" + name
	if lower == cmd {
		return true
	}
	return strings.HasPrefix(lower, cmd+"@") || strings.HasPrefix(lower, cmd+" ")
}
