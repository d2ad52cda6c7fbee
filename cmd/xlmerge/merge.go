package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/layout"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/output"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/rules"
)

var (
	outputPath string
	params     []string
	nodes      []string
	startTime  string
	endTime    string
	planPath   string
	pretty     bool
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Merge source files into one annotated workbook",
		Long: `Merge reads every FILE, keeps the columns selected by --param and --node,
aligns them on the time key of the first file and writes an xlsx workbook.
Without --param every parameter of the rule table is selected; without --node
every node whose rules match one of the files is selected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMerge,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (required)")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Parameter to include (repeatable)")
	cmd.Flags().StringArrayVarP(&nodes, "node", "n", nil, "Node to include (repeatable)")
	cmd.Flags().StringVar(&startTime, "start", "", "Keep rows at or after this time (e.g. 2024-01-02 10:00:00)")
	cmd.Flags().StringVar(&endTime, "end", "", "Keep rows at or before this time")
	cmd.Flags().StringVar(&planPath, "plan-json", "", "Also write the merged table and layout plan as JSON")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().String("sheet", "", "Worksheet name of the output")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runMerge(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
	}

	rt, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return err
	}
	sel := xlmerge.DefaultSelection(rt, args)
	if len(params) > 0 {
		sel.Parameters = models.NewSet(params...)
	}
	if len(nodes) > 0 {
		sel.Nodes = models.NewSet(nodes...)
	}
	if sel.Window, err = parseWindow(startTime, endTime); err != nil {
		return err
	}

	opts := xlmerge.Options{
		RulesPath:  cfg.RulesPath,
		TimeColumn: cfg.TimeColumn,
		Selection:  sel,
		Markers:    cfg.Markers,
		Layout: layout.Options{
			MinWidth:   cfg.Output.MinWidth,
			MaxWidth:   cfg.Output.MaxWidth,
			SampleRows: cfg.Output.SampleRows,
		},
		Render: output.Options{
			SheetName:  cfg.Output.SheetName,
			TimeFormat: cfg.Output.TimeFormat,
		},
		Logger: logger,
	}

	res, err := xlmerge.Merge(args, opts)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	if err := res.WriteXLSX(outputPath); err != nil {
		return err
	}
	logger.Info("workbook written", "path", outputPath)

	if planPath != "" {
		jsonData, err := output.ToJSON(res, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		err = output.WriteFileAtomic(planPath, func(w io.Writer) error {
			_, err := w.Write(jsonData)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to write plan: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d columns\n", outputPath, res.Table.RowCount(), len(res.Table.Columns))
	return nil
}

// parseWindow converts the --start/--end flag values; either may be empty.
func parseWindow(start, end string) (models.TimeWindow, error) {
	var w models.TimeWindow
	if start != "" {
		t, ok := models.ParseTime(start)
		if !ok {
			return w, fmt.Errorf("invalid start time: %q", start)
		}
		w.Start = &t
	}
	if end != "" {
		t, ok := models.ParseTime(end)
		if !ok {
			return w, fmt.Errorf("invalid end time: %q", end)
		}
		w.End = &t
	}
	if w.Start != nil && w.End != nil && w.Start.After(*w.End) {
		return w, xlmerge.ErrInvalidWindow
	}
	return w, nil
}
