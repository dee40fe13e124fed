package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-finboard/components/dashboard"
)

// AddWidgetInput carries the widget to append to the collection.
type AddWidgetInput struct {
	Widget dashboard.WidgetConfig
}

type addStore interface {
	Add(ctx context.Context, w dashboard.WidgetConfig) (dashboard.WidgetConfig, error)
}

type widgetPoller interface {
	Start(w dashboard.WidgetConfig)
	Stop(id string)
}

// AddWidgetCommand appends a widget and starts its polling schedule.
type AddWidgetCommand struct {
	store     addStore
	poller    widgetPoller
	telemetry Telemetry
}

// NewAddWidgetCommand builds the command. A nil poller skips
// scheduling.
func NewAddWidgetCommand(store addStore, poller widgetPoller, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{store: store, poller: poller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddWidgetInput] = (*AddWidgetCommand)(nil)

// Execute appends the widget to the end of the collection.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetInput) error {
	if c.store == nil {
		return errors.New("add command requires widget store")
	}
	if msg.Widget == nil {
		return errors.New("add command requires a widget")
	}
	added, err := c.store.Add(ctx, msg.Widget)
	if err != nil {
		return err
	}
	if c.poller != nil {
		c.poller.Start(added)
	}
	c.telemetry.Record(ctx, "finboard.command.add", map[string]any{
		"widget_id": added.Meta().ID,
		"type":      string(added.Type()),
	})
	return nil
}
