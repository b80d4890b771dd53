// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"math"

	"github.com/pdiddy/upf2psp8/internal/oncv"
	"github.com/pdiddy/upf2psp8/internal/psp8"
	"github.com/pdiddy/upf2psp8/internal/upf"
	"github.com/pdiddy/upf2psp8/pkg/types"
)

// UPF blocks read during conversion.
const (
	tagInput   = "PP_INPUTFILE"
	tagGrid    = "PP_R"
	tagLocal   = "PP_LOCAL"
	tagBeta    = "PP_BETA.%d"
	tagDij     = "PP_DIJ"
	tagCore    = "PP_NLCC"
	tagValence = "PP_RHOATOM"
)

// Build converts the text of one UPF file into a PSP8 file.
func Build(src string) (*psp8.File, error) {
	input, err := upf.Text(src, tagInput)
	if err != nil {
		return nil, err
	}
	params, err := oncv.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("generator input: %w", err)
	}

	h, nproj, err := buildHeader(src, params)
	if err != nil {
		return nil, err
	}

	nbeta, err := upf.AttrInt(src, "number_of_proj")
	if err != nil {
		return nil, err
	}
	if total := sum(nproj); total != nbeta {
		return nil, types.NewParseError("nproj", 0,
			"generator input declares %d projectors, number_of_proj is %d", total, nbeta)
	}

	grid, err := radial(src, tagGrid, h.Mmax)
	if err != nil {
		return nil, err
	}
	local, err := radial(src, tagLocal, h.Mmax)
	if err != nil {
		return nil, err
	}
	betas := make([][]float64, nbeta)
	for i := range betas {
		if betas[i], err = radial(src, fmt.Sprintf(tagBeta, i+1), h.Mmax); err != nil {
			return nil, err
		}
	}

	dij, err := upf.Floats(src, tagDij)
	if err != nil {
		return nil, err
	}
	coeffs := psp8.NonzeroHalved(dij)
	if len(coeffs) != nbeta {
		return nil, types.NewParseError(tagDij, 0, "%d nonzero coefficients for %d projectors", len(coeffs), nbeta)
	}

	channels, err := psp8.GroupChannels(nproj, coeffs, betas, h.Lmax)
	if err != nil {
		return nil, err
	}

	var core []float64
	if h.Fchrg > 0 {
		nlcc, err := radial(src, tagCore, h.Mmax)
		if err != nil {
			return nil, err
		}
		core = psp8.CoreDensity(nlcc)
	}

	rho, err := radial(src, tagValence, h.Mmax)
	if err != nil {
		return nil, err
	}

	return &psp8.File{
		Header:   h,
		Grid:     grid,
		Channels: channels,
		Local:    psp8.LocalPotential(local),
		Core:     core,
		Valence:  psp8.ValenceDensity(rho, grid),
		Input:    input,
	}, nil
}

// buildHeader collects the header fields from the generator input and the
// UPF attributes. It also returns the per-channel projector counts.
func buildHeader(src string, p oncv.Params) (psp8.Header, []int, error) {
	var h psp8.Header
	var err error

	if h.Symbol, err = p.String("atsym"); err != nil {
		return h, nil, err
	}
	if h.Version, err = upf.Version(src); err != nil {
		return h, nil, err
	}
	if h.CoreRadii, err = p.Floats("rc"); err != nil {
		return h, nil, err
	}
	if h.Zatom, err = p.Float("z"); err != nil {
		return h, nil, err
	}
	if h.Zion, err = upf.AttrFloat(src, "z_valence"); err != nil {
		return h, nil, err
	}
	if h.Date, err = upf.Date(src); err != nil {
		return h, nil, err
	}

	iexc, err := p.Int("iexc")
	if err != nil {
		return h, nil, err
	}
	if h.XC, err = psp8.PspXC(iexc); err != nil {
		return h, nil, err
	}

	if h.Lmax, err = p.Int("lmax"); err != nil {
		return h, nil, err
	}
	if h.Lloc, err = p.Int("lloc"); err != nil {
		return h, nil, err
	}

	rlmax, err := p.Float("rlmax")
	if err != nil {
		return h, nil, err
	}
	drl, err := p.Float("drl")
	if err != nil {
		return h, nil, err
	}
	if drl <= 0 {
		return h, nil, types.NewParseError("drl", 0, "grid step must be positive, got %v", drl)
	}
	h.Mmax = int(math.Floor(rlmax / drl))
	if h.Mmax < 1 {
		return h, nil, types.NewParseError("rlmax", 0, "grid of %v / %v has no points", rlmax, drl)
	}
	h.Rchrg = rlmax - drl

	icmod, err := p.Int("icmod")
	if err != nil {
		return h, nil, err
	}
	if icmod != 0 {
		h.Fchrg = 1
	}

	nproj, err := p.Ints("nproj")
	if err != nil {
		return h, nil, err
	}
	if len(nproj) > psp8.MaxChannels {
		return h, nil, types.NewParseError("nproj", 0, "%d channels, at most %d supported", len(nproj), psp8.MaxChannels)
	}
	h.NProj = psp8.Counts(nproj)

	return h, nproj, nil
}

// radial reads a numeric block and keeps its first mmax points.
func radial(src, tag string, mmax int) ([]float64, error) {
	v, err := upf.Floats(src, tag)
	if err != nil {
		return nil, err
	}
	if len(v) < mmax {
		return nil, types.NewParseError(tag, 0, "%d points, grid needs %d", len(v), mmax)
	}
	return v[:mmax:mmax], nil
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
