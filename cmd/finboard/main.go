package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/goliatone/go-finboard/components/dashboard"
	"github.com/goliatone/go-finboard/components/dashboard/commands"
	"github.com/goliatone/go-finboard/pkg/marketdata"
)

type cli struct {
	EnvFile string `help:"Env file with provider API keys." type:"path"`
	DataDir string `default:"." help:"Directory holding the persisted widget collection." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Watch   watchCmd   `cmd:"" help:"Poll every widget on its schedule and print renders as they arrive."`
	List    listCmd    `cmd:"" help:"Print the widget collection in order."`
	Add     addCmd     `cmd:"" help:"Add a widget to the end of the collection."`
	Remove  removeCmd  `cmd:"" help:"Remove a widget by id."`
	Reorder reorderCmd `cmd:"" help:"Replace the collection order with the given id list."`
	Seed    seedCmd    `cmd:"" help:"Seed the collection from a catalog file or the built-in defaults."`
	Render  renderCmd  `cmd:"" help:"Fetch one widget once and print its render."`
}

type appEnv struct {
	log       *zap.Logger
	store     *dashboard.Store
	client    *marketdata.Client
	endpoints *marketdata.Endpoints
	telemetry dashboard.Telemetry
}

func main() {
	root := &cli{}
	ctx := kong.Parse(root,
		kong.Description("Configurable financial dashboard runner."),
		kong.UsageOnError(),
	)

	env, err := buildEnv(root)
	ctx.FatalIfErrorf(err)
	defer env.log.Sync() //nolint:errcheck

	err = ctx.Run(env)
	ctx.FatalIfErrorf(err)
}

func buildEnv(root *cli) (*appEnv, error) {
	if root.EnvFile != "" {
		if err := godotenv.Load(root.EnvFile); err != nil {
			return nil, fmt.Errorf("finboard: load env file %s: %w", root.EnvFile, err)
		}
	} else {
		// A missing default .env is fine.
		_ = godotenv.Load()
	}

	var log *zap.Logger
	var err error
	if root.Debug {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("finboard: build logger: %w", err)
	}

	creds := marketdata.CredentialsFromEnv()
	client := marketdata.New(marketdata.Config{
		Credentials: creds,
		Timeout:     30 * time.Second,
	})

	telemetry := dashboard.NewZapTelemetry(log)
	store, err := dashboard.NewStore(dashboard.StoreOptions{
		Backend:   dashboard.NewFileStorage(root.DataDir),
		Telemetry: telemetry,
		Validator: dashboard.NewJSONSchemaValidator(),
	})
	if err != nil {
		return nil, err
	}

	return &appEnv{
		log:       log,
		store:     store,
		client:    client,
		endpoints: marketdata.NewEndpoints(creds),
		telemetry: telemetry,
	}, nil
}

type watchCmd struct{}

func (cmd *watchCmd) Run(env *appEnv) error {
	poller := dashboard.NewPoller(dashboard.PollerOptions{
		Store:     env.store,
		Fetcher:   env.client,
		Endpoints: env.endpoints,
		Logger:    env.log,
		Telemetry: env.telemetry,
		Sink: func(widgetID string, render dashboard.Render) {
			printRender(widgetID, render)
		},
	})
	poller.StartAll()
	defer poller.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	env.log.Info("shutting down")
	return nil
}

type listCmd struct {
	JSON bool `help:"Print the collection as JSON."`
}

func (cmd *listCmd) Run(env *appEnv) error {
	widgets := env.store.List()
	if cmd.JSON {
		data, err := dashboard.MarshalWidgets(widgets)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	for i, w := range widgets {
		meta := w.Meta()
		fmt.Printf("%2d  %-36s  %-16s  %s\n", i+1, meta.ID, w.Type(), meta.Title)
	}
	return nil
}

type addCmd struct {
	Type     string   `required:"" enum:"COMPANY_OVERVIEW,CHART,TABLE,FINANCE_CARD" help:"Widget type."`
	Title    string   `help:"Display title (defaults from type and symbol)."`
	Symbol   string   `help:"Ticker symbol for overview and chart widgets."`
	APIURL   string   `name:"api-url" help:"Explicit data source URL."`
	Refresh  int      `default:"300" help:"Polling interval in seconds."`
	Field    []string `help:"Selected field path (repeatable)."`
	Category string   `help:"Finance card category (watchlist, gainers, performance, financial)."`
	Display  string   `default:"" help:"Display mode for table and card widgets."`
}

func (cmd *addCmd) Run(env *appEnv) error {
	w, err := cmd.widget()
	if err != nil {
		return err
	}
	add := commands.NewAddWidgetCommand(env.store, nil, env.telemetry)
	if err := add.Execute(context.Background(), commands.AddWidgetInput{Widget: w}); err != nil {
		return err
	}
	fmt.Printf("added %s widget %q\n", w.Type(), w.Meta().Title)
	return nil
}

func (cmd *addCmd) widget() (dashboard.WidgetConfig, error) {
	t := dashboard.WidgetType(cmd.Type)
	title := cmd.Title
	if title == "" {
		title = dashboard.DefaultTitle(t, strings.ToUpper(cmd.Symbol))
	}
	meta := dashboard.WidgetMeta{
		Title:           title,
		RefreshInterval: cmd.Refresh,
		APIURL:          cmd.APIURL,
	}
	switch t {
	case dashboard.TypeCompanyOverview:
		return &dashboard.CompanyOverviewWidget{
			WidgetMeta:     meta,
			Symbol:         cmd.Symbol,
			SelectedFields: cmd.Field,
		}, nil
	case dashboard.TypeChart:
		return &dashboard.ChartWidget{
			WidgetMeta: meta,
			Symbol:     cmd.Symbol,
		}, nil
	case dashboard.TypeTable:
		return &dashboard.TableWidget{
			WidgetMeta:     meta,
			SelectedFields: cmd.Field,
			DisplayMode:    dashboard.DisplayTable,
		}, nil
	case dashboard.TypeFinanceCard:
		display := dashboard.DisplayMode(cmd.Display)
		if display == "" {
			display = dashboard.DisplayCard
		}
		return &dashboard.FinanceCardWidget{
			WidgetMeta:     meta,
			Category:       dashboard.CardCategory(cmd.Category),
			SelectedFields: cmd.Field,
			DisplayMode:    display,
		}, nil
	default:
		return nil, fmt.Errorf("finboard: unknown widget type %q", cmd.Type)
	}
}

type removeCmd struct {
	ID string `arg:"" help:"Widget id."`
}

func (cmd *removeCmd) Run(env *appEnv) error {
	remove := commands.NewRemoveWidgetCommand(env.store, nil, env.telemetry)
	if err := remove.Execute(context.Background(), commands.RemoveWidgetInput{WidgetID: cmd.ID}); err != nil {
		return err
	}
	fmt.Printf("removed widget %s\n", cmd.ID)
	return nil
}

type reorderCmd struct {
	IDs []string `arg:"" help:"Every widget id, in the desired order."`
}

func (cmd *reorderCmd) Run(env *appEnv) error {
	reorder := commands.NewReorderWidgetsCommand(env.store, env.telemetry)
	return reorder.Execute(context.Background(), commands.ReorderWidgetsInput{WidgetIDs: cmd.IDs})
}

type seedCmd struct {
	Catalog string `type:"path" help:"Catalog YAML file. Omit to seed the built-in defaults."`
}

func (cmd *seedCmd) Run(env *appEnv) error {
	seed := commands.NewSeedWidgetsCommand(env.store, env.telemetry)
	return seed.Execute(context.Background(), commands.SeedWidgetsInput{CatalogPath: cmd.Catalog})
}

type renderCmd struct {
	ID  string `arg:"" help:"Widget id."`
	Out string `type:"path" help:"Write chart widgets as standalone HTML to this file."`
}

func (cmd *renderCmd) Run(env *appEnv) error {
	w, ok := env.store.Get(cmd.ID)
	if !ok {
		return fmt.Errorf("finboard: widget %q not found", cmd.ID)
	}
	render := dashboard.RunOnce(context.Background(), w, env.client, env.endpoints)

	if chart, ok := w.(*dashboard.ChartWidget); ok && cmd.Out != "" && render.State == dashboard.StateContent {
		html, err := dashboard.NewChartRenderer().RenderSeries(chart, render.Series)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cmd.Out, []byte(html), 0o644); err != nil {
			return fmt.Errorf("finboard: write chart html: %w", err)
		}
		fmt.Printf("wrote %s\n", cmd.Out)
		return nil
	}

	printRender(cmd.ID, render)
	return nil
}

func printRender(widgetID string, render dashboard.Render) {
	data, err := json.MarshalIndent(render, "", "  ")
	if err != nil {
		fmt.Printf("%s: %v\n", widgetID, render.State)
		return
	}
	fmt.Printf("%s:\n%s\n", widgetID, data)
}
