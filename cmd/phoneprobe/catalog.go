// cmd/phoneprobe/catalog.go
package main

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"phoneprobe/internal/catalog"
)

// NewCatalogCmd crea el comando catalog con sus subcomandos.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate the endpoint catalog",
	}

	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogValidateCmd())

	return cmd
}

func newCatalogListCmd() *cobra.Command {
	var (
		file       string
		categories []string
		asYAML     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories and sources of the effective catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.FromConfig(file, categories)
			if err != nil {
				return withExit(exitConfig, err)
			}
			if asYAML {
				return cat.WriteYAML(cmd.OutOrStdout())
			}

			data := pterm.TableData{{"Category", "Title", "Sources"}}
			total := 0
			for _, c := range cat.Snapshot() {
				data = append(data, []string{c.Name, c.Title, strconv.Itoa(len(c.Sources))})
				total += len(c.Sources)
			}
			rendered, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)
			fmt.Fprintf(cmd.OutOrStdout(), "%d categories, %d sources\n", cat.Len(), total)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "catalog", "", "YAML file with extra categories/sources")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "Only list these categories")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the catalog as YAML")

	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a catalog extension file against the built-in catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := catalog.LoadFile(args[0])
			if err != nil {
				return withExit(exitConfig, err)
			}
			merged, err := catalog.Default().Merge(ext)
			if err != nil {
				return withExit(exitConfig, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d entries, %d categories total)\n",
				args[0], len(ext), merged.Len())
			return nil
		},
	}
}
