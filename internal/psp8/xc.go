// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package psp8

import (
	"fmt"

	"github.com/pdiddy/upf2psp8/pkg/types"
)

// XC is a PSP8 exchange-correlation code (pspxc).
type XC int

const (
	// XCUnsupported is returned for generator codes without a PSP8 equivalent.
	XCUnsupported XC = 0
	// XCPerdewWang is LDA, Perdew-Wang 92 (ONCVPSP iexc 3).
	XCPerdewWang XC = 2
	// XCPBE is GGA, Perdew-Burke-Ernzerhof (ONCVPSP iexc 4).
	XCPBE XC = 11
)

var xcTable = map[int]XC{
	3: XCPerdewWang,
	4: XCPBE,
}

// LookupXC maps an ONCVPSP iexc code to its PSP8 code, returning
// XCUnsupported for codes outside the table.
func LookupXC(iexc int) XC {
	if xc, ok := xcTable[iexc]; ok {
		return xc
	}
	return XCUnsupported
}

// PspXC is LookupXC returning an ErrUnsupported error for unknown codes.
func PspXC(iexc int) (XC, error) {
	xc := LookupXC(iexc)
	if xc == XCUnsupported {
		return xc, fmt.Errorf("exchange-correlation code iexc=%d: %w", iexc, types.ErrUnsupported)
	}
	return xc, nil
}
