package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/solbo-lab/solbo/internal/config"
	"github.com/solbo-lab/solbo/internal/exchange"
	"github.com/solbo-lab/solbo/internal/job"
	"github.com/solbo-lab/solbo/internal/logger"
	"github.com/solbo-lab/solbo/internal/notification"
	"github.com/solbo-lab/solbo/internal/scheduler"
	"github.com/solbo-lab/solbo/internal/storage"
	"github.com/solbo-lab/solbo/internal/types"
)

func main() {
	cmd := &cli.Command{
		Name:  "solbo",
		Usage: "Buy-deep-sell-high trading bot",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run every configured strategy instance on its schedule",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the application config YAML",
						Required: true,
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the per-instance strategy document",
				Action: schemaAction,
			},
			{
				Name:   "exchanges",
				Usage:  "List supported exchanges",
				Action: exchangesAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	appConfig, err := config.LoadAppConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync() //nolint:errcheck

	store, err := config.NewFileStore(appConfig.ConfigDir)
	if err != nil {
		return err
	}

	historyDB, err := storage.OpenDuckDB(appConfig.HistoryDBPath)
	if err != nil {
		return err
	}
	defer historyDB.Close()

	var notifier notification.Notifier = notification.NewLogNotifier(appLogger)
	if appConfig.WebhookURL != "" {
		notifier = notification.NewWebhookNotifier(appConfig.WebhookURL, appLogger)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(appLogger)

	for _, instance := range appConfig.Strategies {
		history, err := storage.NewDuckDBPriceHistoryWithDB(historyDB, instance.Name, appLogger)
		if err != nil {
			return err
		}

		exchanges, err := buildExchanges(instance)
		if err != nil {
			return err
		}

		j := job.NewBuyDeepSellHigh(instance, store, history, exchanges, notifier, appLogger)
		sched.Schedule(ctx, j, instance.TickInterval())

		appLogger.Info("Strategy instance started",
			zap.String("instance", instance.Name),
			zap.Duration("interval", instance.TickInterval()),
		)
	}

	sched.Wait()
	appLogger.Info("All strategy instances drained, shutting down")

	return nil
}

// buildExchanges turns the instance credentials plus the preference list into
// the ordered exchanges the switch rule walks. The primary exchange always
// comes first; duplicates are dropped.
func buildExchanges(instance config.InstanceConfig) ([]exchange.Exchange, error) {
	ordered := append([]types.ExchangeType{instance.Exchange.Type}, instance.ExchangePreference...)
	seen := make(map[types.ExchangeType]bool, len(ordered))
	exchanges := make([]exchange.Exchange, 0, len(ordered))

	for _, exchangeType := range ordered {
		if seen[exchangeType] {
			continue
		}
		seen[exchangeType] = true

		creds := instance.Exchange
		creds.Type = exchangeType

		ex, err := exchange.New(creds)
		if err != nil {
			return nil, err
		}

		exchanges = append(exchanges, ex)
	}

	return exchanges, nil
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := config.DocumentSchema()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func exchangesAction(_ context.Context, _ *cli.Command) error {
	for _, name := range exchange.GetSupportedExchanges() {
		info, err := exchange.GetExchangeInfo(name)
		if err != nil {
			return err
		}

		fmt.Printf("%s\t%s\t%s\n", info.Name, info.DisplayName, info.Description)
	}

	return nil
}
