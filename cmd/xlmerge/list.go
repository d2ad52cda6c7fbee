package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
)

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "List the parameters of the rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := xlmerge.Parameters(cfg.RulesPath)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newNodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes FILE...",
		Short: "List the nodes whose rules match the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := xlmerge.Nodes(cfg.RulesPath, args)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newTimeRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timerange FILE...",
		Short: "Print the earliest and latest time in the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, last, ok, err := xlmerge.TimeRange(args, cfg.TimeColumn)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("no time values found")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", models.FormatTime(first), models.FormatTime(last))
			return nil
		},
	}
}
