package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"rgqview/internal/domain"
	"rgqview/internal/eventbus"
	"rgqview/internal/results"
)

// Options configures a Loader
type Options struct {
	Concurrency int           // parallel loads in LoadAll
	Timeout     time.Duration // per section load
}

// Loader fetches section content in the background in response to
// SectionLoadRequested events
type Loader struct {
	ctx         context.Context
	provider    results.Provider
	bus         eventbus.EventBus
	opts        Options
	group       singleflight.Group
	logger      *slog.Logger
	unsubscribe func()
}

// New creates a loader and subscribes it to load requests on the bus.
// Loads are cancelled when ctx is done.
func New(ctx context.Context, provider results.Provider, bus eventbus.EventBus, opts Options, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	l := &Loader{
		ctx:      ctx,
		provider: provider,
		bus:      bus,
		opts:     opts,
		logger:   logger.With("component", "loader"),
	}
	if bus != nil {
		l.unsubscribe = bus.Subscribe(eventbus.EventSectionLoadRequested, l.handleRequest)
	}
	return l
}

// Stop unsubscribes the loader from the bus
func (l *Loader) Stop() {
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
}

// Request publishes a load request for the named section and returns its
// request ID
func (l *Loader) Request(name string) string {
	id := uuid.NewString()
	l.bus.Publish(eventbus.SectionLoadRequestedEvent{RequestID: id, Name: name})
	return id
}

func (l *Loader) handleRequest(e eventbus.DomainEvent) {
	req, ok := e.(eventbus.SectionLoadRequestedEvent)
	if !ok {
		return
	}

	start := time.Now()
	content, err := l.Load(l.ctx, req.Name)
	if err != nil {
		l.logger.Warn("section load failed", "section", req.Name, "request_id", req.RequestID, "error", err)
		l.bus.Publish(eventbus.SectionLoadFailedEvent{RequestID: req.RequestID, Name: req.Name, Err: err})
		return
	}
	l.logger.Debug("section loaded", "section", req.Name, "request_id", req.RequestID,
		"responses", content.ResponseCount(), "elapsed", time.Since(start))
	l.bus.Publish(eventbus.SectionLoadedEvent{RequestID: req.RequestID, Name: req.Name, Content: content})
}

// Load fetches one section. Concurrent loads of the same section share a
// single provider call.
func (l *Loader) Load(ctx context.Context, name string) (*domain.SectionContent, error) {
	v, err, shared := l.group.Do(name, func() (interface{}, error) {
		loadCtx := ctx
		if l.opts.Timeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
			defer cancel()
		}
		return l.provider.LoadSection(loadCtx, name)
	})
	if shared {
		l.logger.Debug("joined in-flight load", "section", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load section %q: %w", name, err)
	}
	return v.(*domain.SectionContent), nil
}

// LoadAll loads the named sections with bounded concurrency. Results are in
// the order of names. The first failure cancels the remaining loads.
func (l *Loader) LoadAll(ctx context.Context, names []string) ([]*domain.SectionContent, error) {
	out := make([]*domain.SectionContent, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Concurrency)

	for i, name := range names {
		g.Go(func() error {
			content, err := l.Load(gctx, name)
			if err != nil {
				return err
			}
			out[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
