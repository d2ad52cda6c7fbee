package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/output"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/rules"
)

var (
	rangeMin string
	rangeMax string
)

func newRangesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "Show or edit the min/max limits of the rule table",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List target columns with their limits as JSON",
		Args:  cobra.NoArgs,
		RunE:  runRangesList,
	}
	listCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	setCmd := &cobra.Command{
		Use:   "set TARGET",
		Short: "Set the limits of a target column and save the rule table",
		Long: `Set rewrites the min and max cells of every rule row for TARGET. A flag
that is not given keeps the current value; an empty value clears the limit.`,
		Args: cobra.ExactArgs(1),
		RunE: runRangesSet,
	}
	setCmd.Flags().StringVar(&rangeMin, "min", "", "Lower limit")
	setCmd.Flags().StringVar(&rangeMax, "max", "", "Upper limit")

	cmd.AddCommand(listCmd, setCmd)
	return cmd
}

func runRangesList(cmd *cobra.Command, args []string) error {
	rt, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return err
	}
	jsonData, err := output.ToJSON(rt.RangeEntries(), pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func runRangesSet(cmd *cobra.Command, args []string) error {
	target := args[0]
	rt, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return err
	}

	var edit rules.RangeEdit
	found := false
	for _, row := range rt.Rows() {
		if row.TargetColumn == target {
			edit = rules.RangeEdit{Min: row.MinText, Max: row.MaxText}
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown target column %q", target)
	}
	if cmd.Flags().Changed("min") {
		edit.Min = rangeMin
	}
	if cmd.Flags().Changed("max") {
		edit.Max = rangeMax
	}

	if err := rules.SaveRanges(cfg.RulesPath, map[string]rules.RangeEdit{target: edit}); err != nil {
		return err
	}
	logger.Info("limits saved", "target", target, "min", edit.Min, "max", edit.Max)
	return nil
}
