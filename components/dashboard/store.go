package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-finboard/pkg/jsonshape"
)

// StoreOptions configures the widget store. Every collaborator is
// injectable so the store stays testable without a real storage layer.
type StoreOptions struct {
	Backend   StorageBackend
	Telemetry Telemetry
	// Seed is used when the backend holds no document. Nil falls back
	// to the built-in example widgets; an empty non-nil slice seeds an
	// empty dashboard.
	Seed  []WidgetConfig
	NewID func() string
	// Validator runs after the variant's own structural checks on Add.
	// Nil disables schema validation.
	Validator ConfigValidator
}

// Store is the single mutable owner of the ordered widget collection.
// Collection order is explicit and drives grid layout. Reads return
// deep copies; callers never observe shared state. Every mutation is
// written through to the backend before it returns.
type Store struct {
	mu        sync.RWMutex
	widgets   []WidgetConfig
	backend   StorageBackend
	telemetry Telemetry
	newID     func() string
	validator ConfigValidator
}

// NewStore builds a store, rehydrating the persisted collection or
// seeding it when the backend holds nothing.
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.Backend == nil {
		opts.Backend = NewMemoryStorage()
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Validator == nil {
		opts.Validator = noopConfigValidator{}
	}
	s := &Store{
		backend:   opts.Backend,
		telemetry: normalizeTelemetry(opts.Telemetry),
		newID:     opts.NewID,
		validator: opts.Validator,
	}
	data, ok, err := opts.Backend.Load()
	if err != nil {
		return nil, fmt.Errorf("dashboard: load widget collection: %w", err)
	}
	if ok {
		widgets, err := UnmarshalWidgets(data)
		if err != nil {
			return nil, err
		}
		s.widgets = widgets
		return s, nil
	}
	seed := opts.Seed
	if seed == nil {
		seed = DefaultSeedWidgets()
	}
	for _, w := range seed {
		clone := w.Clone()
		if clone.Meta().ID == "" {
			clone.Meta().ID = s.newID()
		}
		s.widgets = append(s.widgets, clone)
	}
	s.persist(context.Background())
	return s, nil
}

// Add assigns a fresh unique id, validates the variant, appends the
// widget to the end of the collection, and persists. The input value is
// not retained.
func (s *Store) Add(ctx context.Context, w WidgetConfig) (WidgetConfig, error) {
	clone := w.Clone()
	normalizeWidget(clone)
	clone.Meta().ID = s.newID()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateWidget(clone); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.widgets = append(s.widgets, clone)
	s.mu.Unlock()
	s.persist(ctx)
	s.telemetry.Record(ctx, "finboard.widget.add", map[string]any{
		"widget_id": clone.Meta().ID,
		"type":      string(clone.Type()),
	})
	return clone.Clone(), nil
}

// Remove deletes the widget with the given id, reporting whether it was
// present. Removing an unknown id is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	removed := false
	for i, w := range s.widgets {
		if w.Meta().ID == id {
			s.widgets = append(s.widgets[:i], s.widgets[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if !removed {
		return false
	}
	s.persist(ctx)
	s.telemetry.Record(ctx, "finboard.widget.remove", map[string]any{"widget_id": id})
	return true
}

// WidgetUpdate is a partial mutation. Nil fields are left untouched;
// fields that do not belong to the target variant are ignored. Type and
// id are immutable. The store applies merges unconditionally: keeping
// the merged widget renderable is the edit flow's responsibility.
type WidgetUpdate struct {
	Title           *string
	RefreshInterval *int
	APIURL          *string
	Symbol          *string
	Symbols         []string
	Category        *string
	SelectedFields  []string
	DisplayMode     *DisplayMode
}

// Update merges the given fields into the widget with that id,
// reporting ok=false when the id is unknown.
func (s *Store) Update(ctx context.Context, id string, update WidgetUpdate) (WidgetConfig, bool) {
	s.mu.Lock()
	var updated WidgetConfig
	for _, w := range s.widgets {
		if w.Meta().ID == id {
			applyUpdate(w, update)
			updated = w.Clone()
			break
		}
	}
	s.mu.Unlock()
	if updated == nil {
		return nil, false
	}
	s.persist(ctx)
	s.telemetry.Record(ctx, "finboard.widget.update", map[string]any{"widget_id": id})
	return updated, true
}

func applyUpdate(w WidgetConfig, u WidgetUpdate) {
	meta := w.Meta()
	if u.Title != nil {
		meta.Title = strings.TrimSpace(*u.Title)
	}
	if u.RefreshInterval != nil {
		meta.RefreshInterval = *u.RefreshInterval
	}
	if u.APIURL != nil {
		meta.APIURL = *u.APIURL
	}
	switch v := w.(type) {
	case *CompanyOverviewWidget:
		if u.Symbol != nil {
			v.Symbol = strings.ToUpper(strings.TrimSpace(*u.Symbol))
		}
		if u.SelectedFields != nil {
			v.SelectedFields = append([]string(nil), u.SelectedFields...)
		}
	case *ChartWidget:
		if u.Symbol != nil {
			v.Symbol = strings.ToUpper(strings.TrimSpace(*u.Symbol))
		}
		if u.SelectedFields != nil {
			v.SelectedFields = append([]string(nil), u.SelectedFields...)
		}
	case *TableWidget:
		if u.Symbols != nil {
			v.Symbols = append([]string(nil), u.Symbols...)
		}
		if u.Category != nil {
			v.Category = *u.Category
		}
		if u.SelectedFields != nil {
			v.SelectedFields = append([]string(nil), u.SelectedFields...)
		}
		if u.DisplayMode != nil {
			v.DisplayMode = *u.DisplayMode
		}
	case *FinanceCardWidget:
		if u.Category != nil {
			v.Category = CardCategory(*u.Category)
		}
		if u.SelectedFields != nil {
			v.SelectedFields = append([]string(nil), u.SelectedFields...)
		}
		if u.DisplayMode != nil {
			v.DisplayMode = *u.DisplayMode
		}
	}
}

// Reorder replaces the collection order with the given id permutation.
// The ids must be exactly the current collection's ids; only order may
// change.
func (s *Store) Reorder(ctx context.Context, ids []string) error {
	s.mu.Lock()
	if len(ids) != len(s.widgets) {
		s.mu.Unlock()
		return fmt.Errorf("dashboard: reorder expects %d widget ids, got %d", len(s.widgets), len(ids))
	}
	index := make(map[string]WidgetConfig, len(s.widgets))
	for _, w := range s.widgets {
		index[w.Meta().ID] = w
	}
	next := make([]WidgetConfig, 0, len(ids))
	for _, id := range ids {
		w, ok := index[id]
		if !ok {
			s.mu.Unlock()
			return fmt.Errorf("dashboard: reorder received unknown or duplicate widget id %q", id)
		}
		delete(index, id)
		next = append(next, w)
	}
	s.widgets = next
	s.mu.Unlock()
	s.persist(ctx)
	s.telemetry.Record(ctx, "finboard.widget.reorder", map[string]any{"count": len(ids)})
	return nil
}

// Move relocates one widget by index with drag semantics: the widget is
// removed and reinserted at the target position of the shortened
// collection. Out-of-range indices are clamped.
func (s *Store) Move(ctx context.Context, from, to int) {
	s.mu.Lock()
	s.widgets = jsonshape.Move(s.widgets, from, to)
	s.mu.Unlock()
	s.persist(ctx)
	s.telemetry.Record(ctx, "finboard.widget.move", map[string]any{"from": from, "to": to})
}

// List returns the ordered collection as deep copies.
func (s *Store) List() []WidgetConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]WidgetConfig, len(s.widgets))
	for i, w := range s.widgets {
		out[i] = w.Clone()
	}
	return out
}

// Get returns a copy of the widget with the given id.
func (s *Store) Get(id string) (WidgetConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.widgets {
		if w.Meta().ID == id {
			return w.Clone(), true
		}
	}
	return nil, false
}

// Len reports the collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.widgets)
}

// persist writes the collection through to the backend. Failures are
// recorded, not surfaced: the in-memory collection stays authoritative
// for the session.
func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	data, err := MarshalWidgets(s.widgets)
	s.mu.RUnlock()
	if err == nil {
		err = s.backend.Save(data)
	}
	if err != nil {
		s.telemetry.Record(ctx, "finboard.store.persist_error", map[string]any{"error": err.Error()})
	}
}
