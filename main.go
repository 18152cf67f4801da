package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/frictionlabs/backtester/config"
	"github.com/frictionlabs/backtester/data"
	"github.com/frictionlabs/backtester/data/csv"
	"github.com/frictionlabs/backtester/data/database"
	"github.com/frictionlabs/backtester/engine"
	"github.com/frictionlabs/backtester/report"
	"github.com/frictionlabs/backtester/statistics"
	"github.com/frictionlabs/backtester/strategies"
)

func main() {
	app := &cli.App{
		Name:  "backtester",
		Usage: "run trading strategies against historical data with realistic costs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the run config `FILE`",
				Value:   "config.json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the full report as JSON to `FILE`",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every position change",
			},
		},
		Action: runBacktest,
		Commands: []*cli.Command{
			{
				Name:   "strategies",
				Usage:  "list the available strategies",
				Action: listStrategies,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBacktest(c *cli.Context) error {
	cfg, err := config.ReadConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}

	log, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	handler, err := loadData(c.Context, cfg)
	if err != nil {
		return err
	}
	strategy, err := strategies.LoadStrategyByName(cfg.Strategy.Name)
	if err != nil {
		return err
	}
	settings, err := cfg.EngineSettings()
	if err != nil {
		return err
	}
	bt, err := engine.New(settings)
	if err != nil {
		return err
	}
	if err = bt.SetLogger(log); err != nil {
		return err
	}

	result, err := bt.Run(handler, strategy)
	if err != nil {
		return err
	}
	stats, err := statistics.CalculateResults(result, cfg.PeriodsPerYear(), cfg.Statistics.RiskFreeRate)
	if err != nil {
		return err
	}
	rep, err := report.New(result, stats)
	if err != nil {
		return err
	}
	if err = rep.PrintSummary(log); err != nil {
		return err
	}
	if output := c.String("output"); output != "" {
		if err = rep.WriteToFile(output); err != nil {
			return err
		}
		log.Info("report written", zap.String("path", output))
	}
	return nil
}

func listStrategies(_ *cli.Context) error {
	for _, s := range strategies.GetStrategies() {
		fmt.Printf("%v: %v\n", s.Name(), s.Description())
	}
	return nil
}

func loadData(ctx context.Context, cfg *config.Config) (*data.Handler, error) {
	var bars []data.Bar
	var err error
	switch cfg.Data.Source {
	case config.DataSourceCSV:
		bars, err = csv.LoadBars(cfg.Data.Path)
	case config.DataSourceDatabase:
		bars, err = database.LoadBars(ctx,
			cfg.Data.Path,
			cfg.Engine.Asset,
			cfg.Data.StartDate,
			cfg.Data.EndDate)
	default:
		err = fmt.Errorf("%w '%v'", config.ErrUnknownDataSource, cfg.Data.Source)
	}
	if err != nil {
		return nil, err
	}
	return data.NewHandler(bars)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}
