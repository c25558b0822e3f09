// cmd/phoneprobe/root.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"phoneprobe/internal/core/domain"
)

// Códigos de salida del proceso.
const (
	exitOK       = 0
	exitRun      = 1
	exitConfig   = 2
	exitCanceled = 130
)

// NewRootCmd crea el comando raíz de phoneprobe.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phoneprobe",
		Short: "Probe web services for the presence of a phone number",
		Long: `phoneprobe fills a catalog of URL templates with a phone number and
reports, per endpoint, whether it answered HTTP 200 (found), another status
(not found) or never answered (unreachable).

Categories run concurrently in a bounded worker pool; endpoints inside a
category run one after another.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewRecoverCmd())
	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute ejecuta el comando raíz y termina el proceso con el código adecuado.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCode(err))
}

// exitError asocia un código de salida a un error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// withExit envuelve err con un código de salida explícito.
func withExit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCode traduce un error al código de salida del proceso.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, domain.ErrRunCanceled) {
		return exitCanceled
	}
	return exitRun
}
