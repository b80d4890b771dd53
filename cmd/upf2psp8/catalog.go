// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/upf2psp8/internal/catalog"
	"github.com/pdiddy/upf2psp8/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the conversion catalog",
	Long: `Catalog reads the SQLite database written by --catalog. Each conversion
run records one row per input file with its status and header values.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions, newest first",
	RunE:  runCatalogList,
}

func init() {
	catalogListCmd.Flags().String("db", "", "catalog database (default: the catalog setting)")
	catalogListCmd.Flags().String("symbol", "", "only show this element")
	catalogListCmd.Flags().String("status", "", "only show converted or failed")
	catalogListCmd.Flags().String("run", "", "only show this run ID")
	catalogListCmd.Flags().Int("limit", 0, "maximum rows (default 50)")
	catalogListCmd.Flags().Bool("json", false, "output as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = viper.GetString("catalog")
	}
	if path == "" {
		return fmt.Errorf("no catalog database: pass --db or set catalog in the config file")
	}

	var q catalog.Query
	q.Symbol, _ = cmd.Flags().GetString("symbol")
	status, _ := cmd.Flags().GetString("status")
	q.Status = types.ConversionStatus(status)
	q.RunID, _ = cmd.Flags().GetString("run")
	q.Limit, _ = cmd.Flags().GetInt("limit")

	store, err := catalog.Open(context.Background(), path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), q)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalog(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatCatalog(w io.Writer, entries []catalog.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-6s  %-5s  %-5s  %s\n",
		"Converted", "Status", "Symbol", "XC", "Mmax", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, e := range entries {
		input := e.Input
		if e.Status == types.ConversionFailed && e.Error != "" {
			input += " (" + e.Error + ")"
		}
		fmt.Fprintf(w, "%-20s  %-9s  %-6s  %-5d  %-5d  %s\n",
			e.ConvertedAt.Format("2006-01-02 15:04:05"), e.Status, e.Symbol, e.PspXC, e.Mmax, input)
	}
	return nil
}
