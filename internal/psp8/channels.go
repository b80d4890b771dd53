// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package psp8

import (
	"github.com/pdiddy/upf2psp8/pkg/types"
)

// MaxChannels is the number of angular-momentum channels PSP8 can describe (l = 0..4).
const MaxChannels = 5

// Channel holds the projectors of one angular-momentum channel.
type Channel struct {
	L            int
	Coefficients []float64
	// Projectors[k][i] is projector k at grid point i.
	Projectors [][]float64
}

// NonzeroHalved drops the zero entries of a flattened coefficient matrix and
// halves the rest, converting Rydberg to Hartree.
func NonzeroHalved(dij []float64) []float64 {
	var out []float64
	for _, x := range dij {
		if x != 0 {
			out = append(out, x/2)
		}
	}
	return out
}

// GroupChannels slices flat coefficient and projector lists into channels
// 0..lmax. counts[l] is the number of projectors of channel l; missing
// channels count as zero. Both lists are ordered channel by channel. A channel
// without projectors is still returned, with empty slices.
func GroupChannels(counts []int, coeffs []float64, projectors [][]float64, lmax int) ([]Channel, error) {
	if len(counts) > MaxChannels {
		return nil, types.NewParseError("nproj", 0, "%d channels given, at most %d supported", len(counts), MaxChannels)
	}
	if lmax < 0 || lmax >= MaxChannels {
		return nil, types.NewParseError("lmax", 0, "lmax %d outside 0..%d", lmax, MaxChannels-1)
	}

	var padded [MaxChannels]int
	for l, n := range counts {
		if n < 0 {
			return nil, types.NewParseError("nproj", 0, "negative projector count %d for l=%d", n, l)
		}
		padded[l] = n
	}

	channels := make([]Channel, 0, lmax+1)
	lo := 0
	for l := 0; l <= lmax; l++ {
		hi := lo + padded[l]
		if hi > len(coeffs) {
			return nil, types.NewParseError("PP_DIJ", 0, "channel %d needs coefficients %d..%d, have %d", l, lo, hi, len(coeffs))
		}
		if hi > len(projectors) {
			return nil, types.NewParseError("PP_BETA", 0, "channel %d needs projectors %d..%d, have %d", l, lo, hi, len(projectors))
		}
		channels = append(channels, Channel{
			L:            l,
			Coefficients: coeffs[lo:hi:hi],
			Projectors:   projectors[lo:hi:hi],
		})
		lo = hi
	}
	return channels, nil
}

// Counts pads per-channel projector counts to MaxChannels entries.
func Counts(nproj []int) [MaxChannels]int {
	var out [MaxChannels]int
	copy(out[:], nproj)
	return out
}
