package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RenderSink receives every render a poller produces, including the
// initial loading state. Sinks must be safe for concurrent calls.
type RenderSink func(widgetID string, render Render)

// PollerOptions configures a Poller. Fetcher and Endpoints are
// required; everything else has a safe default.
type PollerOptions struct {
	Store     *Store
	Fetcher   Fetcher
	Endpoints EndpointResolver
	Sink      RenderSink
	Logger    *zap.Logger
	Telemetry Telemetry
}

// Poller refreshes widget data on each widget's configured interval.
// Each widget has an independent schedule; one widget failing or
// stalling never blocks another.
type Poller struct {
	store     *Store
	fetcher   Fetcher
	endpoints EndpointResolver
	sink      RenderSink
	log       *zap.Logger
	telemetry Telemetry

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	cron    *cron.Cron
	entries map[string]cron.EntryID
	gens    map[string]uint64
}

// NewPoller builds a poller. Schedules start when Start or StartAll is
// called.
func NewPoller(opts PollerOptions) *Poller {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	sink := opts.Sink
	if sink == nil {
		sink = func(string, Render) {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		store:     opts.Store,
		fetcher:   opts.Fetcher,
		endpoints: opts.Endpoints,
		sink:      sink,
		log:       log,
		telemetry: normalizeTelemetry(opts.Telemetry),
		ctx:       ctx,
		cancel:    cancel,
		cron:      cron.New(),
		entries:   make(map[string]cron.EntryID),
		gens:      make(map[string]uint64),
	}
}

// Start schedules refreshes for the widget and kicks off an immediate
// fetch. Restarting an already-scheduled widget replaces its schedule
// and invalidates any in-flight fetch.
func (p *Poller) Start(w WidgetConfig) {
	meta := w.Meta()
	interval := time.Duration(meta.RefreshInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	widget := w.Clone()

	p.mu.Lock()
	if entry, ok := p.entries[meta.ID]; ok {
		p.cron.Remove(entry)
	}
	p.gens[meta.ID]++
	gen := p.gens[meta.ID]
	p.entries[meta.ID] = p.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		p.poll(widget, gen)
	}))
	p.mu.Unlock()

	p.cron.Start()
	go p.poll(widget, gen)

	p.log.Debug("widget polling started",
		zap.String("widget_id", meta.ID),
		zap.Duration("interval", interval))
}

// Stop removes the widget's schedule and invalidates any fetch still
// in flight. Unknown IDs are a no-op.
func (p *Poller) Stop(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.entries[id]
	if !ok {
		return
	}
	p.cron.Remove(entry)
	delete(p.entries, id)
	p.gens[id]++
}

// StartAll schedules every widget currently in the store.
func (p *Poller) StartAll() {
	for _, w := range p.store.List() {
		p.Start(w)
	}
}

// StopAll cancels every schedule and any in-flight fetches. The poller
// cannot be reused afterward.
func (p *Poller) StopAll() {
	p.mu.Lock()
	for id, entry := range p.entries {
		p.cron.Remove(entry)
		delete(p.entries, id)
		p.gens[id]++
	}
	p.mu.Unlock()
	p.cancel()
	<-p.cron.Stop().Done()
}

func (p *Poller) stale(id string, gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gens[id] != gen
}

func (p *Poller) poll(w WidgetConfig, gen uint64) {
	id := w.Meta().ID
	if p.stale(id, gen) {
		return
	}
	p.sink(id, Render{State: StateLoading})

	render := RunOnce(p.ctx, w, p.fetcher, p.endpoints)

	// A render from a superseded schedule must never clobber the
	// current one.
	if p.stale(id, gen) {
		return
	}
	p.sink(id, render)
	p.telemetry.Record(p.ctx, "finboard.widget.render", map[string]any{
		"widget_id": id,
		"type":      string(w.Type()),
		"state":     string(render.State),
		"code":      string(render.Code),
	})
	if render.State == StateError {
		p.log.Warn("widget refresh failed",
			zap.String("widget_id", id),
			zap.String("code", string(render.Code)),
			zap.String("detail", render.Detail))
	}
}
