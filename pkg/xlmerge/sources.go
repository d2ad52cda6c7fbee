package xlmerge

import (
	"runtime"

	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/models"
	"github.com/ukaji3/xlmerge-go/pkg/xlmerge/parser"
	"golang.org/x/sync/errgroup"
)

// readSources parses the files in parallel. Tables and diagnostics keep the
// order of paths; the failure of the earliest failing path is returned as a
// read SourceError.
func readSources(paths []string) ([]models.Table, []models.Diagnostic, error) {
	tables := make([]models.Table, len(paths))
	diags := make([][]models.Diagnostic, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			tbl, d, err := parser.ReadFile(path)
			if err != nil {
				errs[i] = NewSourceError(path, "read", err)
				return nil
			}
			tables[i] = *tbl
			diags[i] = d
			return nil
		})
	}
	g.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}

	var all []models.Diagnostic
	for _, d := range diags {
		all = append(all, d...)
	}
	return tables, all, nil
}
