// cmd/phoneprobe/scan.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"phoneprobe/internal/adapters/output"
	"phoneprobe/internal/catalog"
	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/core/ports"
	"phoneprobe/internal/core/usecases"
	"phoneprobe/internal/identity"
	"phoneprobe/internal/platform/config"
	"phoneprobe/internal/platform/errors"
	"phoneprobe/internal/platform/httpclient"
	"phoneprobe/internal/platform/logx"
	"phoneprobe/internal/platform/metrics"
	"phoneprobe/internal/platform/ui"
	"phoneprobe/internal/platform/validator"
	"phoneprobe/internal/platform/workerpool"
)

// NewScanCmd crea el comando scan.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scan <phone>",
		Short:   "Probe every catalog endpoint for a phone number",
		Long:    config.LongHelp,
		Example: config.ExampleHelp,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return withExit(exitConfig, fmt.Errorf("configuration load failed: %w", err))
			}
			showMisses, _ := cmd.Flags().GetBool("show-misses")
			return runScan(cmd.OutOrStdout(), cfg, args[0], showMisses)
		},
	}

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().Bool("show-misses", false, "Also print endpoints that were not found")

	return cmd
}

// runScan arma el motor a partir de la configuración y ejecuta una corrida.
func runScan(out io.Writer, cfg config.Config, raw string, showMisses bool) error {
	id, err := domain.NewIdentifier(validator.NormalizePhone(raw))
	if err != nil {
		return withExit(exitConfig, err)
	}

	// 1. Logger compartido
	logger := logx.NewWithOptions(logx.Options{
		Level:       logx.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})
	defer logx.Sync(logger)

	if !validator.IsPhoneLike(id.String()) {
		logger.Warn("identifier does not look like a phone number", "identifier", id.String())
	}
	if cfg.ConfigFile != "" {
		logger.Debug("config loaded", "file", cfg.ConfigFile)
	}

	// 2. Catálogo
	cat, err := catalog.FromConfig(cfg.Catalog.File, cfg.Catalog.Categories)
	if err != nil {
		logger.Err(err, "phase", "catalog")
		return withExit(exitConfig, err)
	}

	// 3. Transporte y prober
	rec := metrics.New()

	client, err := httpclient.New(httpclient.Config{
		InsecureSkipVerify: cfg.HTTP.Insecure,
		ProxyURL:           cfg.HTTP.Proxy,
		Timeout:            cfg.Core.Timeout,
		FollowRedirects:    cfg.HTTP.FollowRedirects,
		RateLimit:          cfg.HTTP.RateLimit,
		RateLimitBurst:     cfg.HTTP.RateBurst,
	}, logger)
	if err != nil {
		logger.Err(err, "phase", "transport")
		return withExit(exitConfig, err)
	}
	defer client.Close()

	prober, err := usecases.NewProber(usecases.ProberOptions{
		Transport:  client,
		Identities: identity.New(),
		Throttle:   client,
		Settings: usecases.ProberSettings{
			Retries:    cfg.Core.Retries,
			Timeout:    cfg.Core.Timeout,
			RetryDelay: cfg.Core.RetryDelay,
		},
		Logger:  logger,
		Metrics: rec,
	})
	if err != nil {
		return withExit(exitConfig, err)
	}

	strategy, err := workerpool.SchedulerByName(cfg.Core.Schedule)
	if err != nil {
		return withExit(exitConfig, err)
	}

	// 4. Notifiers: presenter + escritura incremental opcional
	presenter := ui.New(presenterMode(cfg, out), ui.Options{
		Writer:     out,
		NoBanner:   cfg.UI.NoBanner,
		ShowMisses: showMisses,
	})
	notifiers := ports.MultiNotifier{presenter}
	if cfg.Output.Stream {
		notifiers = append(notifiers, output.NewStreamingWriter(cfg.Output.Dir, id, logger))
	}
	defer func() {
		if err := notifiers.Close(); err != nil {
			logger.Warn("failed to close notifiers", "error", err.Error())
		}
	}()

	scheduler, err := usecases.NewScheduler(usecases.SchedulerOptions{
		Catalog:  cat,
		Prober:   prober,
		Workers:  cfg.Core.Workers,
		Strategy: strategy,
		Notifier: notifiers,
		Logger:   logger,
		Metrics:  rec,
	})
	if err != nil {
		return withExit(exitConfig, err)
	}

	presenter.Banner(ui.RunInfo{
		Identifier: id.String(),
		Categories: cat.Len(),
		Targets:    cat.TargetCount(),
		Workers:    cfg.Core.Workers,
		Timeout:    cfg.Core.Timeout,
		Retries:    cfg.Core.Retries,
		RetryDelay: cfg.Core.RetryDelay,
		Insecure:   cfg.HTTP.Insecure,
		Streaming:  cfg.Output.Stream,
	})

	// 5. Contexto y señales
	ctx, cancel := rootContextWithSignals(cfg.Core.RunTimeout)
	defer cancel()

	start := time.Now()
	report, runErr := scheduler.RunAll(ctx, id)
	if runErr != nil {
		logger.Err(runErr, "phase", "run", "elapsed_ms", time.Since(start).Milliseconds())
	}
	if report == nil {
		return withExit(exitRun, runErr)
	}

	// 6. Salidas; un reporte cancelado también se escribe
	outErr := writeOutputs(out, cfg, report, logger)
	if outErr != nil {
		logger.Err(outErr, "phase", "output")
	}

	if err := rec.WriteTextfile(cfg.Metrics.File); err != nil {
		logger.Warn("failed to write metrics", "file", cfg.Metrics.File, "error", err.Error())
	}

	if runErr != nil {
		return runErr
	}
	return withExit(exitRun, outErr)
}

// writeOutputs escribe los reportes pedidos. Un fallo en un formato no
// impide escribir los demás.
func writeOutputs(out io.Writer, cfg config.Config, report *domain.Report, logger logx.Logger) error {
	var errs []error

	if len(cfg.Output.Formats) > 0 {
		paths, err := output.WriteFiles(cfg.Output.Dir, report, cfg.Output.Formats)
		for _, p := range paths {
			logger.Info("report written", "path", p)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	if cfg.Output.File != "" {
		if err := output.WriteFile(cfg.Output.File, report); err != nil {
			errs = append(errs, err)
		} else {
			logger.Info("report written", "path", cfg.Output.File)
		}
	}

	if !cfg.Output.NoTable {
		table := &output.TableExporter{OnlyFound: true}
		if err := table.Export(out, report); err != nil {
			errs = append(errs, fmt.Errorf("table output: %w", err))
		}
	}

	return errors.Join(errs...)
}

// presenterMode elige la UI: quiet si se pidió, pretty en terminal, raw si no.
func presenterMode(cfg config.Config, out io.Writer) ui.UIMode {
	if cfg.UI.Quiet {
		return ui.UIModeQuiet
	}
	if f, ok := out.(*os.File); ok {
		fd := f.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return ui.UIModePretty
		}
	}
	return ui.UIModeRaw
}

// rootContextWithSignals crea el contexto raíz con límite opcional y
// cancelación por SIGINT/SIGTERM. El cancel devuelto libera todo.
func rootContextWithSignals(timeout time.Duration) (context.Context, context.CancelFunc) {
	var base context.Context
	var baseCancel context.CancelFunc

	if timeout > 0 {
		base, baseCancel = context.WithTimeout(context.Background(), timeout)
	} else {
		base, baseCancel = context.WithCancel(context.Background())
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}

	return base, cleanup
}
