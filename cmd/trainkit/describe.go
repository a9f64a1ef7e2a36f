package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	ds "github.com/wdm0006/trainkit/pkg/dataset"
	"github.com/wdm0006/trainkit/pkg/io/datafile"
	"github.com/wdm0006/trainkit/pkg/profile"
)

func newDescribeCmd(a *app) *cobra.Command {
	var (
		in        inputFlags
		format    string
		topK      int
		chunkSize int
		dayFirst  bool
	)
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Profile the columns of a data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := datafile.OpenSource(in.path, in.options(dayFirst), chunkSize)
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()
			col := profile.NewCollector(src.Schema(), topK)
			if err := ds.RunStream(cmd.Context(), ds.NewPipeline(), src, col); err != nil {
				return err
			}
			rep := col.Report()
			a.log.Debug("Profiled input", "input", in.path, "rows", rep.Rows, "columns", len(rep.Columns))

			var out []byte
			switch format {
			case "text":
				out = []byte(rep.Text())
			case "json":
				out, err = json.MarshalIndent(rep, "", "  ")
				out = append(out, '\n')
			case "yaml":
				out, err = yaml.Marshal(rep)
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	in.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")
	fs.IntVar(&topK, "top", 5, "Most frequent values to keep per text column")
	fs.IntVar(&chunkSize, "chunk-size", 10000, "Rows read per chunk")
	fs.BoolVar(&dayFirst, "day_first", false, "Parse ambiguous dates day first")
	return cmd
}
