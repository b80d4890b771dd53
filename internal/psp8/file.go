// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package psp8 builds and serializes pseudopotentials in the ABINIT PSP8
// fixed-column format.
//
// A File is assembled from already-converted arrays and rendered section by
// section: header, nonlocal channels, local potential, optional model core
// charge, valence density, and the generator input kept for provenance.
package psp8

import (
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	// pspcod identifies the PSP8 format in the third header line.
	pspcod = 8
	// floorRadiusSq replaces r^2 at r = 0 when dividing the valence density.
	floorRadiusSq = 1e-9
)

// Header holds the six header lines of a PSP8 file.
type Header struct {
	Symbol    string
	Version   string
	CoreRadii []float64
	Zatom     float64
	Zion      float64
	Date      string
	XC        XC
	Lmax      int
	Lloc      int
	Mmax      int
	// Rchrg is the radius beyond which the model core charge is negligible.
	Rchrg float64
	// Fchrg is nonzero when a model core charge block follows the local potential.
	Fchrg float64
	NProj [MaxChannels]int
}

// File is one PSP8 pseudopotential. All radial arrays have Header.Mmax points.
type File struct {
	Header   Header
	Grid     []float64
	Channels []Channel
	// Local is the local potential in Hartree.
	Local []float64
	// Core is the model core charge density; nil when absent.
	Core []float64
	// Valence is the valence density divided by r^2.
	Valence []float64
	// Input is the generator input, reproduced verbatim.
	Input string
}

// LocalPotential converts a local potential from Rydberg to Hartree.
func LocalPotential(vloc []float64) []float64 {
	out := make([]float64, len(vloc))
	for i, v := range vloc {
		out[i] = v / 2
	}
	return out
}

// CoreDensity converts a tabulated core density to PSP8's 4*pi convention.
func CoreDensity(nlcc []float64) []float64 {
	out := make([]float64, len(nlcc))
	for i, v := range nlcc {
		out[i] = v * 4 * math.Pi
	}
	return out
}

// ValenceDensity divides the radial valence density by r^2. At r = 0 the
// divisor is floorRadiusSq, which keeps the value finite.
func ValenceDensity(rho, grid []float64) []float64 {
	out := make([]float64, len(rho))
	for i, v := range rho {
		r := grid[i]
		if r == 0 {
			out[i] = v / floorRadiusSq
			continue
		}
		out[i] = v / (r * r)
	}
	return out
}

type section struct {
	name   string
	render func(b *strings.Builder)
}

func (f *File) sections() []section {
	s := []section{
		{"header", f.renderHeader},
		{"nonlocal", f.renderChannels},
		{"local", f.renderLocal},
	}
	if f.Core != nil {
		s = append(s, section{"core", f.renderCore})
	}
	return append(s,
		section{"valence", f.renderValence},
		section{"input", f.renderInput},
	)
}

// String renders the whole file.
func (f *File) String() string {
	var b strings.Builder
	for _, s := range f.sections() {
		s.render(&b)
	}
	return b.String()
}

// WriteTo writes the rendered file to w in a single write.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, f.String())
	return int64(n), err
}

// SectionNames lists the sections that will be rendered, in order.
func (f *File) SectionNames() []string {
	var names []string
	for _, s := range f.sections() {
		names = append(names, s.name)
	}
	return names
}

func (f *File) renderHeader(b *strings.Builder) {
	h := f.Header
	b.WriteString(h.Symbol + "   ONCVPSP-" + h.Version + "   r_core=")
	for _, rc := range h.CoreRadii {
		b.WriteString("    " + Radius(rc))
	}
	b.WriteString("\n")

	writeHeaderLine(b, "zatom,zion,pspd", Fixed4(h.Zatom), Fixed4(h.Zion), h.Date)
	writeHeaderLine(b, "pspcod,pspxc,lmax,lloc,mmax,r2well",
		strconv.Itoa(pspcod), strconv.Itoa(int(h.XC)), strconv.Itoa(h.Lmax), strconv.Itoa(h.Lloc), strconv.Itoa(h.Mmax), "0")
	writeHeaderLine(b, "rchrg fchrg qchrg", Fixed8(h.Rchrg), Fixed8(h.Fchrg), Fixed8(0))

	nproj := make([]string, MaxChannels)
	for l, n := range h.NProj {
		nproj[l] = strconv.Itoa(n)
	}
	writeHeaderLine(b, "nproj", nproj...)
	writeHeaderLine(b, "extension_switch", "1", "1")
}

// writeHeaderLine writes an indented, space-separated header line ending in
// its label.
func writeHeaderLine(b *strings.Builder, label string, fields ...string) {
	b.WriteString("    ")
	for _, f := range fields {
		b.WriteString(f + "   ")
	}
	b.WriteString(label + "\n")
}

func (f *File) renderChannels(b *strings.Builder) {
	for _, ch := range f.Channels {
		b.WriteString(Marker(ch.L))
		b.WriteString(strings.Repeat(" ", markerPad))
		for _, c := range ch.Coefficients {
			b.WriteString(Sci(c))
		}
		b.WriteString("\n")

		for i, r := range f.Grid {
			b.WriteString(Index(i + 1))
			b.WriteString(Sci(r))
			for _, p := range ch.Projectors {
				b.WriteString(Sci(p[i]))
			}
			b.WriteString("\n")
		}
	}
}

func (f *File) renderLocal(b *strings.Builder) {
	b.WriteString(Marker(f.Header.Lloc) + "\n")
	f.renderColumns(b, f.Local)
}

func (f *File) renderCore(b *strings.Builder) {
	f.renderColumns(b, f.Core)
}

func (f *File) renderValence(b *strings.Builder) {
	// The two trailing columns stand for tail-density terms that are not computed.
	f.renderColumns(b, f.Valence, 0, 0)
}

// renderColumns writes index, radius, and values[i] per grid point, followed
// by any constant columns.
func (f *File) renderColumns(b *strings.Builder, values []float64, constants ...float64) {
	for i, r := range f.Grid {
		b.WriteString(Index(i + 1))
		b.WriteString(Sci(r))
		b.WriteString(Sci(values[i]))
		for _, c := range constants {
			b.WriteString(Sci(c))
		}
		b.WriteString("\n")
	}
}

func (f *File) renderInput(b *strings.Builder) {
	b.WriteString("<INPUT>\n")
	b.WriteString(f.Input)
	b.WriteString("</INPUT>\n")
}
