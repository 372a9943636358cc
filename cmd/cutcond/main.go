package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ja7ad/cutcond/internal/config"
	"github.com/ja7ad/cutcond/pkg/capacity"
	"github.com/ja7ad/cutcond/pkg/catalog"
	"github.com/ja7ad/cutcond/pkg/condition"
)

type opts struct {
	// data
	catalogPath string
	machinePath string

	// machine envelope and thresholds
	maxPower        float64
	maxTorque       float64
	powerWarning    float64
	torqueWarning   float64
	engagementRatio float64

	// runtime
	workers   int
	logLevel  string
	logFormat string

	// outputs
	pretty   bool
	csvPath  string
	jsonPath string
	htmlPath string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	o := &opts{
		catalogPath:     cfg.CatalogPath,
		machinePath:     cfg.MachinePath,
		maxPower:        cfg.MaxPower,
		maxTorque:       cfg.MaxTorque,
		powerWarning:    cfg.PowerWarning,
		torqueWarning:   cfg.TorqueWarning,
		engagementRatio: cfg.EngagementRatio,
		workers:         cfg.Workers,
		logLevel:        cfg.LogLevel,
		logFormat:       cfg.LogFormat,
	}

	root := &cobra.Command{
		Use:   "cutcond",
		Short: "Cutting conditions calculator",
		Long: `cutcond computes cutting conditions (rotation speed, cutting force, power,
torque, engagement length) for turning, boring and drilling inserts, and checks
them against the machine's speed-dependent power and torque capacity.

Examples:
  cutcond tools
  cutcond calc --tool "CNMG 12 04 08-PM 4325" --vc 250 --ap 3 --d 60
  cutcond calc --tool "R840-1000-30-A0A 1220" --fn 0.12 --csv out/history.csv
  cutcond batch jobs.yaml --html report.html
  cutcond machine --n 3200`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), o.logLevel, o.logFormat)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.catalogPath, "catalog", o.catalogPath, "insert catalogue file (JSON or YAML)")
	pf.StringVar(&o.machinePath, "machine", o.machinePath, "machine capacity curve (JSON n/power/torque records)")
	pf.Float64Var(&o.maxPower, "max-power", o.maxPower, "global machine power in kW")
	pf.Float64Var(&o.maxTorque, "max-torque", o.maxTorque, "global machine torque in Nm")
	pf.Float64Var(&o.powerWarning, "power-warning", o.powerWarning, "fraction of local power reported as near the limit (0,1]")
	pf.Float64Var(&o.torqueWarning, "torque-warning", o.torqueWarning, "fraction of local torque reported as near the limit (0,1]")
	pf.Float64Var(&o.engagementRatio, "engagement-ratio", o.engagementRatio, "maximum engagement length as a fraction of D (0,1]")
	pf.StringVar(&o.logLevel, "log-level", o.logLevel, "log level: debug, info, warn, error")
	pf.StringVar(&o.logFormat, "log-format", o.logFormat, "log format: text or json")

	root.AddCommand(
		newCalcCmd(o),
		newBatchCmd(o),
		newToolsCmd(o),
		newMachineCmd(o),
	)
	return root
}

// addOutputFlags registers the table and export flags on commands that record history.
func addOutputFlags(cmd *cobra.Command, o *opts) {
	cmd.Flags().BoolVar(&o.pretty, "pretty", true, "format output as a table instead of CSV-like lines")
	cmd.Flags().StringVar(&o.csvPath, "csv", "", "write the session history to a CSV file")
	cmd.Flags().StringVar(&o.jsonPath, "json", "", "write the session history to a JSON file")
	cmd.Flags().StringVar(&o.htmlPath, "html", "", "write the session history to an HTML report")
}

func (o *opts) validate() error {
	cfg := config.Config{
		MaxPower:        o.maxPower,
		MaxTorque:       o.maxTorque,
		PowerWarning:    o.powerWarning,
		TorqueWarning:   o.torqueWarning,
		EngagementRatio: o.engagementRatio,
		LogFormat:       o.logFormat,
		Workers:         o.workers,
	}
	return cfg.Validate()
}

func (o *opts) limits() condition.Limits {
	return condition.Limits{
		PowerWarning:    o.powerWarning,
		TorqueWarning:   o.torqueWarning,
		EngagementRatio: o.engagementRatio,
	}
}

func (o *opts) loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Load(o.catalogPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("catalogue loaded", "path", o.catalogPath, "tools", c.Len())
	return c, nil
}

// loadMachine reads the capacity curve. A missing file falls back to the
// global envelope; a malformed one is an error.
func (o *opts) loadMachine() (condition.Machine, error) {
	m := condition.Machine{MaxPower: o.maxPower, MaxTorque: o.maxTorque}
	if o.machinePath == "" {
		return m, nil
	}

	t, err := capacity.Load(o.machinePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("machine capacity curve not found, using global maxima",
			"path", o.machinePath, "max_power_kw", o.maxPower, "max_torque_nm", o.maxTorque)
		return m, nil
	case err != nil:
		return condition.Machine{}, err
	}

	lo, hi, _ := t.Span()
	slog.Debug("machine capacity loaded", "path", o.machinePath, "points", t.Len(), "n_min", lo, "n_max", hi)
	m.Table = t
	return m, nil
}

func (o *opts) lookup(c *catalog.Catalog, id string) (catalog.Tool, error) {
	t, err := c.Lookup(id)
	if err != nil {
		return catalog.Tool{}, fmt.Errorf("%w (see `cutcond tools`)", err)
	}
	return t, nil
}
