package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/wdm0006/trainkit/pkg/features"
	"github.com/wdm0006/trainkit/pkg/options"
	"github.com/wdm0006/trainkit/pkg/train"
)

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the feature engineering methods",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range features.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the accepted model names and whether they can be trained",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			avail := train.Available()
			for _, name := range options.Models {
				state := "not available"
				if slices.Contains(avail, name) {
					state = "available"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", name, state)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "trainkit", version)
		},
	}
}
