// cmd/phoneprobe/recover.go
package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"phoneprobe/internal/adapters/output"
	"phoneprobe/internal/catalog"
	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/usecases"
	"phoneprobe/internal/platform/config"
	"phoneprobe/internal/platform/errors"
	"phoneprobe/internal/platform/logx"
)

// ErrNoPartials indica un archivo parcial sin categorías.
var ErrNoPartials = errors.New("partial file has no categories")

type recoverOptions struct {
	catalogFile string
	categories  []string
	file        string
	dir         string
	formats     []string
	noTable     bool
}

// NewRecoverCmd crea el comando recover.
func NewRecoverCmd() *cobra.Command {
	var opts recoverOptions

	cmd := &cobra.Command{
		Use:   "recover <partial-file>",
		Short: "Rebuild a report from the partial file of an interrupted scan",
		Long: `recover reads the NDJSON file left by "scan --stream" when a run is
canceled and writes the report that run would have produced. Categories
missing from the file are reported as not attempted, in catalog order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecover(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalogFile, "catalog", "", "YAML file with extra categories/sources used by the scan")
	cmd.Flags().StringSliceVar(&opts.categories, "categories", nil, "Categories the scan was limited to")
	cmd.Flags().StringVarP(&opts.file, "output", "o", "", "Write the report to this file (format from extension)")
	cmd.Flags().StringVar(&opts.dir, "out-dir", config.DefaultOutputDir, "Output directory for timestamped reports")
	cmd.Flags().StringSliceVar(&opts.formats, "formats", nil, "Timestamped report formats: csv,json,yaml,markdown")
	cmd.Flags().BoolVar(&opts.noTable, "no-table", false, "Do not print the found table")

	return cmd
}

func runRecover(out io.Writer, path string, opts recoverOptions) error {
	partials, err := output.ReadPartials(path)
	if err != nil {
		return withExit(exitConfig, err)
	}
	if len(partials) == 0 {
		return withExit(exitConfig, fmt.Errorf("%s: %w", path, ErrNoPartials))
	}

	cat, err := catalog.FromConfig(opts.catalogFile, opts.categories)
	if err != nil {
		return withExit(exitConfig, err)
	}

	report := usecases.Aggregate(recoveredMeta(partials), usecases.OrderOf(cat), partialResults(partials))

	cfg := config.Config{Output: config.Output{
		Dir:     opts.dir,
		Formats: opts.formats,
		File:    opts.file,
		NoTable: opts.noTable,
	}}
	return withExit(exitRun, writeOutputs(out, cfg, report, logx.NewNop()))
}

// recoveredMeta reconstruye los metadatos de la corrida original. El inicio
// se estima restando a cada línea la duración de su categoría.
func recoveredMeta(partials []output.PartialCategory) domain.RunMeta {
	first := partials[0]
	meta := domain.RunMeta{
		ID:         first.RunID,
		Identifier: first.Identifier,
		Canceled:   true,
	}
	for _, p := range partials {
		started := p.WrittenAt.Add(-p.Result.Duration)
		if meta.StartedAt.IsZero() || started.Before(meta.StartedAt) {
			meta.StartedAt = started
		}
		if p.WrittenAt.After(meta.FinishedAt) {
			meta.FinishedAt = p.WrittenAt
		}
	}
	if meta.FinishedAt.IsZero() {
		meta.FinishedAt = time.Now()
	}
	return meta
}

// partialResults conserva solo las líneas de la corrida de la primera línea.
func partialResults(partials []output.PartialCategory) []domain.CategoryResult {
	runID := partials[0].RunID
	results := make([]domain.CategoryResult, 0, len(partials))
	for _, p := range partials {
		if p.RunID != runID {
			continue
		}
		results = append(results, p.Result)
	}
	return results
}
