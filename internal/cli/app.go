package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alexanderramin/tripwise/internal/catalog"
	"github.com/alexanderramin/tripwise/internal/config"
	"github.com/alexanderramin/tripwise/internal/domain"
	"github.com/alexanderramin/tripwise/internal/flow"
	"github.com/alexanderramin/tripwise/internal/handoff"
	"github.com/alexanderramin/tripwise/internal/repository"
)

// App holds everything the commands and the interactive flow work against.
type App struct {
	Engine  *flow.Engine
	Catalog *catalog.Loader
	History repository.HandoffLogRepo

	// Channels maps a channel name (stdout, mailto, smtp) to its transport.
	Channels        map[string]handoff.Channel
	DefaultChannel  string
	Recipient       string
	DispatchOptions []handoff.DispatcherOption

	// Reset wipes the stored draft and the handoff history.
	Reset func(ctx context.Context) error

	Config        *config.Config
	ConfigPath    string
	Logger        *slog.Logger
	IsInteractive bool

	mu          sync.Mutex
	dispatchers map[string]*handoff.Dispatcher
	names       map[domain.EntityKind]map[string]string
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// Dispatcher returns the dispatcher for a channel, creating it on first use.
// An empty name selects the default channel.
func (a *App) Dispatcher(name string) (*handoff.Dispatcher, error) {
	if name == "" {
		name = a.DefaultChannel
	}
	ch, ok := a.Channels[name]
	if !ok {
		return nil, fmt.Errorf("handoff channel %q is not available", name)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if d, ok := a.dispatchers[name]; ok {
		return d, nil
	}
	if a.dispatchers == nil {
		a.dispatchers = make(map[string]*handoff.Dispatcher)
	}
	opts := append([]handoff.DispatcherOption(nil), a.DispatchOptions...)
	if a.History != nil {
		opts = append(opts, handoff.WithRecorder(a.History))
	}
	d := handoff.NewDispatcher(ch, a.logger(), opts...)
	a.dispatchers[name] = d
	return d, nil
}

// ReplaceChannel swaps the transport behind a channel name. Handoffs already
// queued on the old transport finish first.
func (a *App) ReplaceChannel(name string, ch handoff.Channel) {
	a.mu.Lock()
	old := a.dispatchers[name]
	delete(a.dispatchers, name)
	if a.Channels == nil {
		a.Channels = make(map[string]handoff.Channel)
	}
	a.Channels[name] = ch
	a.mu.Unlock()
	if old != nil {
		old.Wait()
	}
}

// Wait blocks until every queued handoff has been delivered or has failed.
func (a *App) Wait() {
	a.mu.Lock()
	ds := make([]*handoff.Dispatcher, 0, len(a.dispatchers))
	for _, d := range a.dispatchers {
		ds = append(ds, d)
	}
	a.mu.Unlock()
	for _, d := range ds {
		d.Wait()
	}
}

// remember caches display names from a catalog load for the summary. Demo
// results share ids with the provider's and never enter the cache.
func (a *App) remember(res catalog.Result) {
	if res.Demo {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.names == nil {
		a.names = make(map[domain.EntityKind]map[string]string)
	}
	m := a.names[res.Kind]
	if m == nil {
		m = make(map[string]string)
		a.names[res.Kind] = m
	}
	for _, e := range res.Entities {
		m[e.ID] = e.Name
	}
}

func (a *App) cachedName(kind domain.EntityKind, id string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	name, ok := a.names[kind][id]
	return name, ok
}

// Resolver returns a name lookup for the selections of d. Names missing from
// the cache are fetched once per kind through the catalog loader.
func (a *App) Resolver(ctx context.Context, d domain.PlanDraft) handoff.Resolver {
	return func(kind domain.EntityKind, id string) string {
		if id == "" {
			return ""
		}
		if name, ok := a.cachedName(kind, id); ok {
			return name
		}
		if a.Catalog == nil {
			return ""
		}
		res := a.Catalog.Load(ctx, kind, catalog.QueryFor(d))
		a.remember(res)
		if name, ok := a.cachedName(kind, id); ok {
			return name
		}
		if e, ok := domain.FindEntity(res.Entities, id); ok {
			return e.Name
		}
		return ""
	}
}

// CachedResolver never fetches: it answers from names already loaded and
// then from the built-in list.
func (a *App) CachedResolver() handoff.Resolver {
	return func(kind domain.EntityKind, id string) string {
		if name, ok := a.cachedName(kind, id); ok {
			return name
		}
		list, _ := catalog.StaticList(kind, catalog.Query{})
		if e, ok := domain.FindEntity(list, id); ok {
			return e.Name
		}
		return ""
	}
}

// LoadCatalog fetches a list and caches its names.
func (a *App) LoadCatalog(ctx context.Context, kind domain.EntityKind, q catalog.Query) catalog.Result {
	res := a.Catalog.Load(ctx, kind, q)
	a.remember(res)
	return res
}

// NeedsRecipient reports whether a channel can only deliver to an address.
func NeedsRecipient(channel string) bool {
	return channel == "mailto" || channel == "smtp"
}

// SendHandoff builds the handoff for the current draft and queues it. It
// fails fast on configuration problems; delivery errors are only logged.
func (a *App) SendHandoff(ctx context.Context, channel, recipient string) (handoff.Handoff, string, error) {
	if channel == "" {
		channel = a.DefaultChannel
	}
	if recipient == "" {
		recipient = a.Recipient
	}
	if NeedsRecipient(channel) && recipient == "" {
		return handoff.Handoff{}, channel, fmt.Errorf("handoff via %s needs a recipient (--to or handoff.recipient)", channel)
	}
	d, err := a.Dispatcher(channel)
	if err != nil {
		return handoff.Handoff{}, channel, err
	}
	draft := a.Engine.Draft()
	h := handoff.New(draft, recipient, a.Resolver(ctx, draft))
	d.Dispatch(ctx, h)
	return h, channel, nil
}
