package types

// DefaultExtension is the file extension written for converted pseudopotentials.
const DefaultExtension = "psp8"

// ConversionConfig holds settings for a conversion run.
type ConversionConfig struct {
	// Extension replaces the final extension of each input path (default "psp8").
	Extension string `json:"extension" yaml:"extension"`

	// ReportPath, when set, receives a YAML summary of the batch.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`

	// CatalogPath, when set, is the SQLite database that records every outcome.
	CatalogPath string `json:"catalog,omitempty" yaml:"catalog,omitempty"`

	// Verbose raises logging to debug level.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// OutputExtension returns the configured extension, falling back to
// DefaultExtension when none is set.
func (c ConversionConfig) OutputExtension() string {
	if c.Extension == "" {
		return DefaultExtension
	}
	return c.Extension
}

// PlotConfig holds settings for the plot subcommand.
type PlotConfig struct {
	// Output is the image path; the format follows its extension (png, svg, pdf).
	Output string `json:"output" yaml:"output"`

	// Width and Height are the image size in centimetres.
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}
