// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package psp8

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hydrogen() *File {
	return &File{
		Header: Header{
			Symbol:    "H",
			Version:   "3.3.1",
			CoreRadii: []float64{1.0},
			Zatom:     1,
			Zion:      1,
			Date:      "170816",
			XC:        XCPBE,
			Lmax:      1,
			Lloc:      4,
			Mmax:      2,
			Rchrg:     0.75,
			NProj:     Counts([]int{1, 1}),
		},
		Grid: []float64{0, 0.5},
		Channels: []Channel{
			{L: 0, Coefficients: []float64{-1.25}, Projectors: [][]float64{{0, 0.25}}},
			{L: 1, Coefficients: []float64{2.5}, Projectors: [][]float64{{0, -0.125}}},
		},
		Local:   []float64{-1, -0.5},
		Valence: []float64{0, 4},
		Input:   "# lmax\n1\n",
	}
}

const hydrogenPSP8 = `H   ONCVPSP-3.3.1   r_core=    1.00000
    1.0000   1.0000   170816   zatom,zion,pspd
    8   11   1   4   2   0   pspcod,pspxc,lmax,lloc,mmax,r2well
    0.75000000   0.00000000   0.00000000   rchrg fchrg qchrg
    1   1   0   0   0   nproj
    1   1   extension_switch
   0                        -1.2500000000000E+00
     1  0.0000000000000E+00  0.0000000000000E+00
     2  5.0000000000000E-01  2.5000000000000E-01
   1                         2.5000000000000E+00
     1  0.0000000000000E+00  0.0000000000000E+00
     2  5.0000000000000E-01 -1.2500000000000E-01
   4
     1  0.0000000000000E+00 -1.0000000000000E+00
     2  5.0000000000000E-01 -5.0000000000000E-01
     1  0.0000000000000E+00  0.0000000000000E+00  0.0000000000000E+00  0.0000000000000E+00
     2  5.0000000000000E-01  4.0000000000000E+00  0.0000000000000E+00  0.0000000000000E+00
<INPUT>
# lmax
1
</INPUT>
`

func TestFileString(t *testing.T) {
	assert.Equal(t, hydrogenPSP8, hydrogen().String())
}

func TestFileWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := hydrogen().WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(hydrogenPSP8)), n)
	assert.Equal(t, hydrogenPSP8, buf.String())
}

func TestFileCoreSection(t *testing.T) {
	f := hydrogen()
	assert.Equal(t, []string{"header", "nonlocal", "local", "valence", "input"}, f.SectionNames())

	f.Header.Fchrg = 1
	f.Core = []float64{3, 2}
	assert.Equal(t, []string{"header", "nonlocal", "local", "core", "valence", "input"}, f.SectionNames())

	out := f.String()
	assert.Contains(t, out, "    0.75000000   1.00000000   0.00000000   rchrg fchrg qchrg\n")
	core := "     1  0.0000000000000E+00  3.0000000000000E+00\n" +
		"     2  5.0000000000000E-01  2.0000000000000E+00\n"
	local := "     2  5.0000000000000E-01 -5.0000000000000E-01\n"
	assert.Contains(t, out, local+core)
}

func TestHeaderCoreRadii(t *testing.T) {
	f := hydrogen()
	f.Header.CoreRadii = []float64{1.2, 1.6}
	first := strings.SplitN(f.String(), "\n", 2)[0]
	assert.Equal(t, "H   ONCVPSP-3.3.1   r_core=    1.20000    1.60000", first)
}

func TestBlockLengthsMatchGrid(t *testing.T) {
	f := hydrogen()
	perPoint := 0
	for _, l := range strings.Split(f.String(), "\n") {
		if len(l) < 27 || !strings.Contains(l[6:27], "E") {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(l[:6])); err == nil {
			perPoint++
		}
	}
	// Two channels, local, and valence blocks of Mmax lines each.
	assert.Equal(t, 4*f.Header.Mmax, perPoint)
}

func TestUnitConversions(t *testing.T) {
	assert.Equal(t, []float64{-1, 0.25}, LocalPotential([]float64{-2, 0.5}))

	core := CoreDensity([]float64{1, 0.5})
	assert.Equal(t, 4*math.Pi, core[0])
	assert.Equal(t, 0.5*4*math.Pi, core[1])

	rho := ValenceDensity([]float64{2e-12, 8}, []float64{0, 2})
	assert.Equal(t, 2e-12/1e-9, rho[0])
	assert.Equal(t, 2.0, rho[1])
	assert.False(t, math.IsInf(rho[0], 0) || math.IsNaN(rho[0]))

	rho = ValenceDensity([]float64{1}, []float64{0})
	assert.False(t, math.IsInf(rho[0], 0))
	assert.Equal(t, 1e9, rho[0])
}
