package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-finboard/components/dashboard"
)

// SeedWidgetsInput controls seeding. An empty CatalogPath seeds the
// built-in starter collection.
type SeedWidgetsInput struct {
	CatalogPath string `json:"catalog_path"`
}

// SeedWidgetsCommand fills an empty store from a catalog file or the
// built-in defaults.
type SeedWidgetsCommand struct {
	store     addStore
	telemetry Telemetry
}

// NewSeedWidgetsCommand wires dependencies.
func NewSeedWidgetsCommand(store addStore, telemetry Telemetry) *SeedWidgetsCommand {
	return &SeedWidgetsCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedWidgetsInput] = (*SeedWidgetsCommand)(nil)

// Execute adds every seed widget to the store.
func (c *SeedWidgetsCommand) Execute(ctx context.Context, msg SeedWidgetsInput) error {
	if c.store == nil {
		return errors.New("seed command requires widget store")
	}
	widgets := dashboard.DefaultSeedWidgets()
	if msg.CatalogPath != "" {
		catalog, err := dashboard.ReadCatalog(msg.CatalogPath)
		if err != nil {
			return err
		}
		widgets, err = catalog.Configs()
		if err != nil {
			return err
		}
	}
	for _, w := range widgets {
		if _, err := c.store.Add(ctx, w); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, "finboard.seed", map[string]any{
		"count":   len(widgets),
		"catalog": msg.CatalogPath,
	})
	return nil
}
