//go:build mage

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	upfDir  = "pseudos/upf"
	plotDir = "pseudos/plots"
)

// upfFiles returns the UPF files staged under pseudos/upf.
func upfFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(upfDir, "*.upf"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .upf files in %s", upfDir)
	}
	return files, nil
}

// Convert builds the CLI and converts every UPF file in pseudos/upf, writing
// a YAML report and recording the run in pseudos/catalog.db.
func Convert() error {
	mg.Deps(Init, Build)

	files, err := upfFiles()
	if err != nil {
		return err
	}
	args := append([]string{
		"--report", filepath.Join("pseudos", "report.yaml"),
		"--catalog", filepath.Join("pseudos", "catalog.db"),
	}, files...)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Plot draws the projectors and local potential of every UPF file in
// pseudos/upf into pseudos/plots.
func Plot() error {
	mg.Deps(Init, Build)

	files, err := upfFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f)) + ".png"
		if err := sh.RunV(filepath.Join(binDir, binName), "plot", f, "-o", filepath.Join(plotDir, name)); err != nil {
			return fmt.Errorf("plotting %s: %w", f, err)
		}
	}
	return nil
}
