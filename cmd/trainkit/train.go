package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wdm0006/trainkit/pkg/io/datafile"
	"github.com/wdm0006/trainkit/pkg/options"
	"github.com/wdm0006/trainkit/pkg/runlog"
	"github.com/wdm0006/trainkit/pkg/train"
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

func newTrainCmd(a *app) *cobra.Command {
	var (
		in          inputFlags
		runlogPath  string
		predictions string
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Preprocess a dataset, train a classifier and evaluate it",
		Example: `  trainkit train -i admissions.csv --parse-dates --feature_engg_name calculate_total_days
  trainkit train -c options.yaml -i admissions.parquet -m KNeighborsClassifier --runlog run.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := options.Load(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			f, err := datafile.Read(in.path, in.options(o.DayFirst))
			if err != nil {
				return err
			}
			rl := runlog.New(a.log)
			a.log.Debug("Run started", "run_id", rl.RunID(), "input", in.path, "rows", f.Rows(), "model", o.ModelName)

			res, runErr := train.Run(cmd.Context(), f, o, rl)
			if runlogPath != "" {
				if err := rl.Save(runlogPath); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}
			printResult(cmd.OutOrStdout(), res)
			if predictions != "" {
				if err := datafile.Write(predictions, res.PredictionFrame()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&runlogPath, "runlog", "", "Write the run log here (.json, .yaml)")
	cmd.Flags().StringVar(&predictions, "predictions", "", "Write test set predictions here")
	options.Flags(cmd.Flags(), options.Default())
	return cmd
}

func printResult(w io.Writer, res *train.Result) {
	fmt.Fprintln(w, titleStyle.Render(res.Model))
	fmt.Fprintf(w, "rows: %d train, %d test\n", res.TrainRows, res.TestRows)
	fmt.Fprintf(w, "features: %s\n", strings.Join(res.Features, ", "))
	fmt.Fprintf(w, "accuracy: %.4f\nmacro f1: %.4f\n", res.Accuracy, res.MacroF1)
	fmt.Fprintln(w, res.Summary)
	if len(res.Importance) == 0 {
		return
	}
	fmt.Fprintln(w, titleStyle.Render("Feature importance"))
	for _, fi := range res.Importance {
		fmt.Fprintf(w, "  %-30s %.4f\n", fi.Feature, fi.Score)
	}
}
