package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	"github.com/wdm0006/trainkit/pkg/features"
	"github.com/wdm0006/trainkit/pkg/io/datafile"
	"github.com/wdm0006/trainkit/pkg/options"
	"github.com/wdm0006/trainkit/pkg/runlog"
)

func newEngineerCmd(a *app) *cobra.Command {
	var (
		in         inputFlags
		output     string
		chunkSize  int
		runlogPath string
	)
	d := options.Default()
	cmd := &cobra.Command{
		Use:   "engineer",
		Short: "Run feature engineering methods over a data file",
		Example: `  trainkit engineer -i admissions.csv -o out.parquet --feature_engg_name calculate_total_days
  trainkit engineer -i big.csv.gz -o out.jsonl --chunk-size 50000 --feature_engg_name Calculate_Total_Days`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := options.Load(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if len(o.FeatureEnggName) == 0 {
				return errors.New("no feature engineering method given (available: " + strings.Join(features.Names(), ", ") + ")")
			}
			rl := runlog.New(a.log)
			p := ds.NewPipeline()
			for _, name := range o.FeatureEnggName {
				p.Add(&features.Step{Operation: name, Logger: rl, Options: features.Options{DayFirst: o.DayFirst}})
			}
			ropt := in.options(o.DayFirst)

			if chunkSize > 0 {
				err = engineerStream(cmd, p, in.path, output, ropt, chunkSize)
			} else {
				err = engineerAll(cmd, p, in.path, output, ropt)
			}
			if runlogPath != "" {
				if serr := rl.Save(runlogPath); serr != nil && err == nil {
					err = serr
				}
			}
			return err
		},
	}
	in.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&output, "output", "o", datafile.Stdio, "Output file; the extension picks the format")
	fs.IntVar(&chunkSize, "chunk-size", 0, "Process the input in chunks of this many rows (0 reads it whole)")
	fs.StringVar(&runlogPath, "runlog", "", "Write the run log here (.json, .yaml)")
	fs.StringSlice("feature_engg_name", d.FeatureEnggName, "Feature engineering methods to run ("+strings.Join(features.Names(), ", ")+")")
	fs.Bool("day_first", d.DayFirst, "Parse ambiguous dates day first")
	return cmd
}

func engineerAll(cmd *cobra.Command, p *ds.Pipeline, input, output string, ropt datafile.ReadOptions) error {
	f, err := datafile.Read(input, ropt)
	if err != nil {
		return err
	}
	out, err := p.Run(cmd.Context(), f)
	if err != nil {
		return err
	}
	return datafile.Write(output, out)
}

func engineerStream(cmd *cobra.Command, p *ds.Pipeline, input, output string, ropt datafile.ReadOptions, chunkSize int) error {
	src, err := datafile.OpenSource(input, ropt, chunkSize)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()
	sink, err := datafile.CreateSink(output)
	if err != nil {
		return err
	}
	return ds.RunStream(cmd.Context(), p, src, sink)
}
