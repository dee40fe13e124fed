package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
)

// RemoveWidgetInput identifies the widget to remove.
type RemoveWidgetInput struct {
	WidgetID string `json:"widget_id"`
}

type removeStore interface {
	Remove(ctx context.Context, id string) bool
}

// RemoveWidgetCommand removes a widget and cancels its polling
// schedule.
type RemoveWidgetCommand struct {
	store     removeStore
	poller    widgetPoller
	telemetry Telemetry
}

// NewRemoveWidgetCommand builds a command instance.
func NewRemoveWidgetCommand(store removeStore, poller widgetPoller, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{store: store, poller: poller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute removes the widget.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.store == nil {
		return errors.New("remove command requires widget store")
	}
	if msg.WidgetID == "" {
		return errors.New("remove command requires widget id")
	}
	if !c.store.Remove(ctx, msg.WidgetID) {
		return fmt.Errorf("widget %q not found", msg.WidgetID)
	}
	if c.poller != nil {
		c.poller.Stop(msg.WidgetID)
	}
	c.telemetry.Record(ctx, "finboard.command.remove", map[string]any{"widget_id": msg.WidgetID})
	return nil
}
