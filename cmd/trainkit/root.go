package main

import (
	"github.com/spf13/cobra"

	"github.com/wdm0006/trainkit/pkg/io/datafile"
	"github.com/wdm0006/trainkit/pkg/logger"
)

var version = "dev"

// app carries what the persistent flags configure.
type app struct {
	configPath string
	logLevel   string
	logJSON    bool
	log        logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logger.Nop()}
	root := &cobra.Command{
		Use:           "trainkit",
		Short:         "Prepare tabular data and train classifiers on it",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := logger.DefaultConfig()
			cfg.Level = logger.LogLevel(a.logLevel)
			cfg.JSON = a.logJSON
			cfg.Output = cmd.ErrOrStderr()
			a.log = logger.NewLogger(cfg)
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "Options file (.yaml, .yml, .json or .toml)")
	pf.StringVar(&a.logLevel, "log-level", string(logger.InfoLevel), "Log level (debug, info, warn, error, disabled)")
	pf.BoolVar(&a.logJSON, "log-json", false, "Log as JSON")

	root.AddCommand(
		newTrainCmd(a),
		newEngineerCmd(a),
		newDescribeCmd(a),
		newFeaturesCmd(),
		newModelsCmd(),
		newVersionCmd(),
	)
	return root
}

// inputFlags are shared by every command that reads a data file.
type inputFlags struct {
	path       string
	delimiter  string
	noHeader   bool
	parseDates bool
}

func (in *inputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&in.path, "input", "i", "", "Input file (.csv, .tsv, .jsonl or .parquet, optionally .gz; - for stdin)")
	fs.StringVar(&in.delimiter, "delimiter", "", "CSV delimiter (sniffed when empty)")
	fs.BoolVar(&in.noHeader, "no-header", false, "CSV input has no header row")
	fs.BoolVar(&in.parseDates, "parse-dates", false, "Read date-like text columns as timestamps")
	_ = cmd.MarkFlagRequired("input")
}

func (in *inputFlags) options(dayFirst bool) datafile.ReadOptions {
	opt := datafile.ReadOptions{NoHeader: in.noHeader, ParseDates: in.parseDates, DayFirst: dayFirst}
	switch in.delimiter {
	case "":
	case `\t`:
		opt.Delimiter = '\t'
	default:
		opt.Delimiter = []rune(in.delimiter)[0]
	}
	return opt
}
