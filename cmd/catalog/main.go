package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/Spok95/decor-catalog/internal/bot"
	"github.com/Spok95/decor-catalog/internal/catalog"
	"github.com/Spok95/decor-catalog/internal/config"
	"github.com/Spok95/decor-catalog/internal/domain/materials"
	"github.com/Spok95/decor-catalog/internal/domain/pricing"
	"github.com/Spok95/decor-catalog/internal/domain/products"
	"github.com/Spok95/decor-catalog/internal/export"
	"github.com/Spok95/decor-catalog/internal/infra/db"
	httpx "github.com/Spok95/decor-catalog/internal/infra/http"
	"github.com/Spok95/decor-catalog/internal/infra/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"
)

const usage = `usage: catalog [--config file] <command> [args]

commands:
  serve            health/metrics endpoint and Telegram bot (default)
  migrate          apply database migrations
  recalc           recompute min_cost of every product
  export <file>    write products and materials to an .xlsx file
  products         print products
  materials        print materials
`

type invocation struct {
	configPath string
	command    string
	args       []string
}

func parseArgs(args []string) (invocation, error) {
	fs := pflag.NewFlagSet("catalog", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfgPath := fs.StringP("config", "c", "config/example.yaml", "path to the YAML config")
	if err := fs.Parse(args); err != nil {
		return invocation{}, err
	}
	inv := invocation{configPath: *cfgPath, command: "serve"}
	if fs.NArg() > 0 {
		inv.command = fs.Arg(0)
		inv.args = fs.Args()[1:]
	}
	switch inv.command {
	case "serve", "migrate", "recalc", "products", "materials":
	case "export":
		if len(inv.args) != 1 {
			return inv, errors.New("export needs an output file")
		}
	default:
		return inv, fmt.Errorf("unknown command %q", inv.command)
	}
	return inv, nil
}

func main() {
	inv, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(inv.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
		time.Local = loc
	}

	log := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, inv, cfg, log, os.Stdout); err != nil {
		log.Error("command failed", "command", inv.command, "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, inv invocation, cfg config.Config, log *slog.Logger, stdout io.Writer) error {
	if inv.command == "migrate" || inv.command == "serve" {
		if err := migrate(ctx, cfg.Postgres.DSN); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied")
		if inv.command == "migrate" {
			return nil
		}
	}

	pool, err := db.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()
	log.Info("db connected")

	catalogSvc := catalog.New(products.NewRepo(pool), materials.NewRepo(pool), log)
	pricingSvc := pricing.NewService(pricing.NewPGStore(pool), log)

	switch inv.command {
	case "recalc":
		res, err := pricingSvc.RecalculateAll(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "run %s: updated %d, skipped %d\n", res.RunID, res.Updated, res.Skipped)
		return nil

	case "export":
		return exportFile(ctx, catalogSvc, inv.args[0])

	case "products":
		list, err := catalogSvc.ListProducts(ctx)
		if err != nil {
			return err
		}
		printProducts(stdout, list)
		return nil

	case "materials":
		list, err := catalogSvc.ListMaterials(ctx)
		if err != nil {
			return err
		}
		printMaterials(stdout, list)
		return nil
	}

	return serve(ctx, cfg, log, pool, catalogSvc, pricingSvc)
}

func migrate(ctx context.Context, dsn string) error {
	sqlDB, err := db.OpenSQL(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return db.Migrate(ctx, sqlDB)
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger, pool *pgxpool.Pool,
	catalogSvc *catalog.Service, pricingSvc *pricing.Service) error {

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool, log)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	if cfg.BotEnabled() {
		api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			return fmt.Errorf("telegram: %w", err)
		}
		log.Info("bot authorized", "username", api.Self.UserName)
		b := bot.New(api, log, cfg.Telegram.AdminChatID, catalogSvc, pricingSvc)
		go func() {
			if err := b.Run(ctx, cfg.Telegram.TimeoutSec); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("bot stopped", "err", err)
			}
		}()
	} else {
		log.Info("telegram token not set, bot disabled")
	}

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
	return nil
}

func exportFile(ctx context.Context, svc *catalog.Service, path string) error {
	prods, err := svc.ListProducts(ctx)
	if err != nil {
		return err
	}
	mats, err := svc.ListMaterials(ctx)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCatalog(f, prods, mats); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printProducts(w io.Writer, list []products.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tARTICUL\tNAME\tMIN_COST\tWIDTH")
	for _, p := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.TypeName, p.Articul, p.Name, p.MinCost.StringFixed(2), p.Width.StringFixed(2))
	}
	_ = tw.Flush()
}

func printMaterials(w io.Writer, list []materials.Material) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tNAME\tUNIT_PRICE\tUNIT\tSTOCK\tMIN\tPACKAGE")
	for _, m := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			m.ID, m.TypeName, m.Name, m.UnitPrice.StringFixed(2), m.Unit.Label(),
			m.StockQuantity, m.MinQuantity, m.PackageQuantity)
	}
	_ = tw.Flush()
}
