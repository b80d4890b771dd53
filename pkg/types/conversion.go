// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the result of converting one input file.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Outcome records what happened to one input path during a batch.
type Outcome struct {
	// Input is the path as given on the command line.
	Input string `json:"input" yaml:"input"`

	// Output is the written PSP8 path; empty when conversion failed.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Status is converted or failed.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Error is the failure message; empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Symbol is the atomic symbol read from the generator record.
	Symbol string `json:"symbol,omitempty" yaml:"symbol,omitempty"`

	// Zatom and Zion are the atomic number and valence charge.
	Zatom float64 `json:"zatom,omitempty" yaml:"zatom,omitempty"`
	Zion  float64 `json:"zion,omitempty" yaml:"zion,omitempty"`

	// PspXC is the output exchange-correlation code.
	PspXC int `json:"pspxc,omitempty" yaml:"pspxc,omitempty"`

	// Mmax is the number of radial grid points written.
	Mmax int `json:"mmax,omitempty" yaml:"mmax,omitempty"`

	// CoreCorrection reports whether a model core charge block was written.
	CoreCorrection bool `json:"core_correction" yaml:"core_correction"`

	// ConvertedAt is when the outcome was recorded.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
