// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the upf2psp8 CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/upf2psp8/internal/catalog"
	"github.com/pdiddy/upf2psp8/internal/convert"
	"github.com/pdiddy/upf2psp8/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE; it stays a no-op until then.
var logger = zap.NewNop()

// rootCmd converts the UPF files named on the command line.
var rootCmd = &cobra.Command{
	Use:   "upf2psp8 [flags] <file>...",
	Short: "Convert UPF pseudopotentials to PSP8",
	Long: `upf2psp8 converts ONCVPSP pseudopotentials from UPF to the PSP8 format
read by ABINIT and other plane-wave codes.

Each output file is written next to its input with the same name and a .psp8
extension. Several files can be given at once; a file that fails to convert
is reported and the remaining files are still converted.

Pseudopotentials with a nonlinear core correction are supported by copying
the tabulated core density; other model core charges are not.`,
	Example: `  upf2psp8 path/to/psp.upf
  upf2psp8 path/to/psp1.upf path/to/psp2.upf path/to/psp3.upf`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./upf2psp8.yaml or ~/.config/upf2psp8/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every conversion step")

	rootCmd.Flags().BoolP("stdout", "s", false, "write to stdout (not supported)")
	rootCmd.Flags().String("extension", types.DefaultExtension, "extension of the converted files")
	rootCmd.Flags().String("report", "", "write a YAML summary of the batch to this file")
	rootCmd.Flags().String("catalog", "", "record every outcome in this SQLite database")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("extension", rootCmd.Flags().Lookup("extension"))
	_ = viper.BindPFlag("report", rootCmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("catalog", rootCmd.Flags().Lookup("catalog"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("upf2psp8")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "upf2psp8"))
		}
	}

	viper.SetEnvPrefix("UPF2PSP8")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogger builds the production logger. Only warnings reach stderr unless
// --verbose is set, so a clean run prints nothing.
func setupLogger(cmd *cobra.Command, args []string) error {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if viper.GetBool("verbose") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	return nil
}

// conversionConfig collects the root command settings from flags, the
// environment, and the config file.
func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		Extension:   viper.GetString("extension"),
		ReportPath:  viper.GetString("report"),
		CatalogPath: viper.GetString("catalog"),
		Verbose:     viper.GetBool("verbose"),
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		fmt.Fprintln(out, "\nupf2psp8: writing to stdout is not supported")
		fmt.Fprint(out, cmd.UsageString())
		return nil
	}
	if len(args) == 0 {
		fmt.Fprintln(out, "\nupf2psp8: please specify upf file(s) to convert")
		fmt.Fprint(out, cmd.UsageString())
		return nil
	}

	cfg := conversionConfig()
	ctx := context.Background()

	var rec convert.Recorder
	if cfg.CatalogPath != "" {
		store, err := catalog.Open(ctx, cfg.CatalogPath)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
		logger.Debug("recording to catalog", zap.String("path", cfg.CatalogPath), zap.String("run_id", store.RunID()))
	}

	result := convert.ConvertBatch(ctx, args, cfg, out, logger, rec)

	if cfg.ReportPath != "" {
		if err := convert.WriteReport(cfg.ReportPath, result); err != nil {
			return err
		}
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
