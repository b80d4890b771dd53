// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/upf2psp8/internal/upf"
	"github.com/pdiddy/upf2psp8/pkg/types"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(data)
}

func TestBuildMatchesGolden(t *testing.T) {
	for _, name := range []string{"si", "si_nlcc"} {
		t.Run(name, func(t *testing.T) {
			f, err := Build(readFixture(t, name+".upf"))
			require.NoError(t, err)
			assert.Equal(t, readFixture(t, name+".psp8.golden"), f.String())
		})
	}
}

func TestBuildInvariants(t *testing.T) {
	src := readFixture(t, "si_nlcc.upf")
	f, err := Build(src)
	require.NoError(t, err)

	// mmax = floor(1.00 / 0.25)
	require.Equal(t, 4, f.Header.Mmax)
	assert.Len(t, f.Grid, f.Header.Mmax)
	assert.Len(t, f.Local, f.Header.Mmax)
	assert.Len(t, f.Core, f.Header.Mmax)
	assert.Len(t, f.Valence, f.Header.Mmax)

	nbeta, err := upf.AttrInt(src, "number_of_proj")
	require.NoError(t, err)
	total := 0
	var coeffs []float64
	for _, ch := range f.Channels {
		assert.Len(t, ch.Coefficients, f.Header.NProj[ch.L])
		assert.Len(t, ch.Projectors, f.Header.NProj[ch.L])
		for _, p := range ch.Projectors {
			assert.Len(t, p, f.Header.Mmax)
		}
		total += len(ch.Projectors)
		coeffs = append(coeffs, ch.Coefficients...)
	}
	assert.Equal(t, nbeta, total)
	assert.Equal(t, []float64{-1.5, 0.75, 1.0}, coeffs)

	local, err := upf.Floats(src, "PP_LOCAL")
	require.NoError(t, err)
	for i := range f.Local {
		assert.Equal(t, local[i]/2, f.Local[i])
	}

	nlcc, err := upf.Floats(src, "PP_NLCC")
	require.NoError(t, err)
	for i := range f.Core {
		assert.Equal(t, nlcc[i]*4*math.Pi, f.Core[i])
	}

	rho, err := upf.Floats(src, "PP_RHOATOM")
	require.NoError(t, err)
	for i, r := range f.Grid {
		assert.False(t, math.IsInf(f.Valence[i], 0) || math.IsNaN(f.Valence[i]))
		if r != 0 {
			assert.Equal(t, rho[i]/(r*r), f.Valence[i])
		}
	}
}

func TestBuildCoreBlockFollowsFlag(t *testing.T) {
	f, err := Build(readFixture(t, "si.upf"))
	require.NoError(t, err)
	assert.Nil(t, f.Core)
	assert.Zero(t, f.Header.Fchrg)
	assert.NotContains(t, f.SectionNames(), "core")

	f, err = Build(readFixture(t, "si_nlcc.upf"))
	require.NoError(t, err)
	assert.NotNil(t, f.Core)
	assert.Equal(t, 1.0, f.Header.Fchrg)
	assert.Contains(t, f.SectionNames(), "core")
}

func TestBuildErrors(t *testing.T) {
	base := readFixture(t, "si_nlcc.upf")
	tests := []struct {
		name    string
		edit    func(string) string
		wantErr error
	}{
		{
			name:    "missing coefficient matrix",
			edit:    func(s string) string { return strings.ReplaceAll(s, "PP_DIJ", "PP_XIJ") },
			wantErr: types.ErrParse,
		},
		{
			name:    "missing generator input",
			edit:    func(s string) string { return strings.ReplaceAll(s, "PP_INPUTFILE", "PP_OTHER") },
			wantErr: types.ErrParse,
		},
		{
			name:    "unsupported exchange-correlation code",
			edit:    func(s string) string { return strings.Replace(s, "       4      upf", "       5      upf", 1) },
			wantErr: types.ErrUnsupported,
		},
		{
			name:    "missing core density when flag is set",
			edit:    func(s string) string { return strings.ReplaceAll(s, "PP_NLCC", "PP_NOPE") },
			wantErr: types.ErrParse,
		},
		{
			name:    "projector count disagrees with header",
			edit:    func(s string) string { return strings.Replace(s, `number_of_proj="3"`, `number_of_proj="4"`, 1) },
			wantErr: types.ErrParse,
		},
		{
			name:    "missing projector block",
			edit:    func(s string) string { return strings.ReplaceAll(s, "PP_BETA.3", "PP_BETA.9") },
			wantErr: types.ErrParse,
		},
		{
			name:    "non-numeric local potential",
			edit:    func(s string) string { return strings.Replace(s, "-8.00000000000E+00", "-8.0XE+00", 1) },
			wantErr: types.ErrParse,
		},
		{
			name:    "grid shorter than mmax",
			edit:    func(s string) string { return strings.Replace(s, "    1.00    0.25\n", "    2.00    0.25\n", 1) },
			wantErr: types.ErrParse,
		},
		{
			name:    "bad date stamp",
			edit:    func(s string) string { return strings.Replace(s, `date="170816"`, `date="2017-08-16"`, 1) },
			wantErr: types.ErrParse,
		},
		{
			name: "extra nonzero coefficient",
			edit: func(s string) string {
				return strings.Replace(s, fmt.Sprintf("%s %s", sciUPF(-3), sciUPF(0)), fmt.Sprintf("%s %s", sciUPF(-3), sciUPF(1)), 1)
			},
			wantErr: types.ErrParse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.edit(base)
			require.NotEqual(t, base, src, "edit did not apply")
			_, err := Build(src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// sciUPF formats a value the way the fixtures write array entries.
func sciUPF(x float64) string {
	return fmt.Sprintf("% .11E", x)
}
