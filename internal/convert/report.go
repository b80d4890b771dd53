// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// report is the YAML document written by WriteReport.
type report struct {
	Total       int `yaml:"total"`
	BatchResult `yaml:",inline"`
}

// WriteReport writes the batch outcomes to path as YAML.
func WriteReport(path string, r BatchResult) error {
	data, err := yaml.Marshal(report{Total: r.Total(), BatchResult: r})
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
