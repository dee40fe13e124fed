package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-finboard/components/dashboard"
)

// UpdateWidgetInput captures a partial widget mutation.
type UpdateWidgetInput struct {
	WidgetID string `json:"widget_id"`
	Update   dashboard.WidgetUpdate
}

type updateStore interface {
	Update(ctx context.Context, id string, update dashboard.WidgetUpdate) (dashboard.WidgetConfig, bool)
}

// UpdateWidgetCommand merges fields into a widget and restarts its
// polling schedule so interval and source changes take effect.
type UpdateWidgetCommand struct {
	store     updateStore
	poller    widgetPoller
	telemetry Telemetry
}

// NewUpdateWidgetCommand creates the command.
func NewUpdateWidgetCommand(store updateStore, poller widgetPoller, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{store: store, poller: poller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetInput] = (*UpdateWidgetCommand)(nil)

// Execute applies the update.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetInput) error {
	if c.store == nil {
		return errors.New("update command requires widget store")
	}
	if msg.WidgetID == "" {
		return errors.New("update command requires widget id")
	}
	updated, ok := c.store.Update(ctx, msg.WidgetID, msg.Update)
	if !ok {
		return fmt.Errorf("widget %q not found", msg.WidgetID)
	}
	if c.poller != nil {
		c.poller.Start(updated)
	}
	c.telemetry.Record(ctx, "finboard.command.update", map[string]any{"widget_id": msg.WidgetID})
	return nil
}
