// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/upf2psp8/internal/convert"
	"github.com/pdiddy/upf2psp8/internal/plot"
	"github.com/pdiddy/upf2psp8/pkg/types"
)

var plotCmd = &cobra.Command{
	Use:   "plot <file.upf>",
	Short: "Plot the projectors and local potential of a UPF file",
	Long: `Plot converts a UPF file in memory and draws its projectors, grouped by
angular momentum, together with the local potential in Hartree. The image
format follows the output extension (png, svg, pdf).`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringP("output", "o", "", "image path (default: input name with .png)")
	plotCmd.Flags().Float64("width", 0, "image width in cm (default 16)")
	plotCmd.Flags().Float64("height", 0, "image height in cm (default 10)")

	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	f, err := convert.Build(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	cfg := types.PlotConfig{}
	cfg.Output, _ = cmd.Flags().GetString("output")
	cfg.Width, _ = cmd.Flags().GetFloat64("width")
	cfg.Height, _ = cmd.Flags().GetFloat64("height")
	if cfg.Output == "" {
		cfg.Output = convert.OutputPath(path, "png")
	}

	if err := plot.Render(f, cfg); err != nil {
		return err
	}
	logger.Debug("plotted", zap.String("input", path), zap.String("output", cfg.Output))
	return nil
}
