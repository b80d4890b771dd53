// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns UPF pseudopotential files into PSP8 files.
//
// Files are converted one at a time. A failure is reported for the file that
// caused it and the batch moves on to the next path.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/upf2psp8/pkg/types"
)

// Recorder receives the outcome of every file in a batch.
type Recorder interface {
	Record(ctx context.Context, o types.Outcome) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int             `yaml:"converted"`
	Failed    int             `yaml:"failed"`
	Outcomes  []types.Outcome `yaml:"outcomes"`
}

// Total returns the number of paths processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath replaces the final extension of path with ext. A path without an
// extension gets ext appended.
func OutputPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

// ConvertFile converts the UPF file at path and writes the PSP8 file next to
// it. The returned outcome describes the result whether or not err is nil.
func ConvertFile(path string, cfg types.ConversionConfig) (types.Outcome, error) {
	o := types.Outcome{
		Input:       path,
		Status:      types.ConversionFailed,
		ConvertedAt: time.Now().UTC(),
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fail(o, fmt.Errorf("can't find %s: %w", path, types.ErrNotFound))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(o, fmt.Errorf("reading %s: %w", path, err))
	}

	f, err := Build(string(data))
	if err != nil {
		return fail(o, err)
	}
	o.Symbol = f.Header.Symbol
	o.Zatom = f.Header.Zatom
	o.Zion = f.Header.Zion
	o.PspXC = int(f.Header.XC)
	o.Mmax = f.Header.Mmax
	o.CoreCorrection = f.Core != nil

	out := OutputPath(path, cfg.OutputExtension())
	if err := os.WriteFile(out, []byte(f.String()), 0o644); err != nil {
		return fail(o, fmt.Errorf("writing %s: %w: %w", out, types.ErrWrite, err))
	}

	o.Output = out
	o.Status = types.ConversionDone
	return o, nil
}

func fail(o types.Outcome, err error) (types.Outcome, error) {
	o.Error = err.Error()
	return o, err
}

// ConvertBatch converts each path in order, printing a line to w for every
// failure. rec may be nil; a recorder error is logged and does not change the
// outcome.
func ConvertBatch(ctx context.Context, paths []string, cfg types.ConversionConfig, w io.Writer, log *zap.Logger, rec Recorder) BatchResult {
	if log == nil {
		log = zap.NewNop()
	}

	var result BatchResult
	for _, p := range paths {
		o, err := ConvertFile(p, cfg)
		if err != nil {
			result.Failed++
			fmt.Fprintf(w, "failed: %s (%v)\n", p, err)
			log.Info("conversion failed", zap.String("input", p), zap.Error(err))
		} else {
			result.Converted++
			log.Info("converted",
				zap.String("input", p),
				zap.String("output", o.Output),
				zap.String("symbol", o.Symbol),
				zap.Int("mmax", o.Mmax),
				zap.Bool("core_correction", o.CoreCorrection),
			)
		}
		result.Outcomes = append(result.Outcomes, o)

		if rec != nil {
			if err := rec.Record(ctx, o); err != nil {
				log.Warn("recording outcome", zap.String("input", p), zap.Error(err))
			}
		}
	}

	if result.HasFailures() {
		fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
			result.Converted, result.Failed, result.Total())
	}
	return result
}
