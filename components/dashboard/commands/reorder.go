package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ReorderWidgetsInput contains the reorder payload.
type ReorderWidgetsInput struct {
	WidgetIDs []string `json:"widget_ids"`
}

type reorderStore interface {
	Reorder(ctx context.Context, ids []string) error
}

// ReorderWidgetsCommand wraps Store.Reorder.
type ReorderWidgetsCommand struct {
	store     reorderStore
	telemetry Telemetry
}

// NewReorderWidgetsCommand builds the command.
func NewReorderWidgetsCommand(store reorderStore, telemetry Telemetry) *ReorderWidgetsCommand {
	return &ReorderWidgetsCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderWidgetsInput] = (*ReorderWidgetsCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderWidgetsCommand) Execute(ctx context.Context, msg ReorderWidgetsInput) error {
	if c.store == nil {
		return errors.New("reorder command requires widget store")
	}
	if err := c.store.Reorder(ctx, msg.WidgetIDs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "finboard.command.reorder", map[string]any{
		"count": len(msg.WidgetIDs),
	})
	return nil
}
