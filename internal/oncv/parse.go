// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package oncv parses the ONCVPSP generator input that a UPF file carries in
// its PP_INPUTFILE block.
//
// The record is a sequence of '#'-introduced sections. Each section has a
// header line naming its fields and one or more data lines. Fields known to
// the arity table take a fixed shape; unknown fields are shaped by line
// count: several data lines are read column-wise, one data line gives one
// scalar per field.
package oncv

import (
	"regexp"
	"strings"

	"github.com/pdiddy/upf2psp8/pkg/types"
)

const (
	sectionDelim   = "#"
	terminalMarker = "TEST CONFIGURATIONS"
)

var keyRe = regexp.MustCompile(`[A-Za-z0-9()]+`)

// stateKeys replaces a header starting with "n": the core/valence state rows
// are fixed-format "n l f" records whose header also names an energy column
// that never carries data.
var stateKeys = []string{"nn", "ll", "ff"}

// arity describes the shape of a known field.
type arity int

const (
	inferred arity = iota
	scalar
	perRow
)

type fieldSpec struct {
	arity    arity
	optional bool
}

var fieldTable = map[string]fieldSpec{
	"atsym":  {arity: scalar},
	"z":      {arity: scalar},
	"nc":     {arity: scalar},
	"nv":     {arity: scalar},
	"iexc":   {arity: scalar},
	"psfile": {arity: scalar},
	"lmax":   {arity: scalar},
	"lloc":   {arity: scalar},
	"lpopt":  {arity: scalar},
	"rc(5)":  {arity: scalar},
	"dvloc0": {arity: scalar},
	"icmod":  {arity: scalar},
	"fcfact": {arity: scalar, optional: true},
	"rcfact": {arity: scalar, optional: true},
	"epsh1":  {arity: scalar},
	"epsh2":  {arity: scalar},
	"depsh":  {arity: scalar},
	"rlmax":  {arity: scalar},
	"drl":    {arity: scalar},
	"ncnf":   {arity: scalar},
	"nvcnf":  {arity: scalar},

	"nn":    {arity: perRow},
	"ll":    {arity: perRow},
	"ff":    {arity: perRow},
	"l":     {arity: perRow},
	"rc":    {arity: perRow},
	"ep":    {arity: perRow},
	"ncon":  {arity: perRow},
	"nbas":  {arity: perRow},
	"qcut":  {arity: perRow},
	"nproj": {arity: perRow},
	"debl":  {arity: perRow},
}

// Parse reads a generator record into a flat mapping. Sections after the
// TEST CONFIGURATIONS marker are ignored, and a field set by a later section
// replaces the earlier value.
func Parse(text string) (Params, error) {
	params := make(Params)
	line := 1
	for _, section := range strings.Split(text, sectionDelim) {
		startLine := line
		line += strings.Count(section, "\n")

		lines := strings.Split(strings.TrimSpace(section), "\n")
		header := strings.TrimSpace(lines[0])
		if header == terminalMarker {
			break
		}

		var rows [][]string
		for _, l := range lines[1:] {
			if f := strings.Fields(l); len(f) > 0 {
				rows = append(rows, f)
			}
		}
		if len(rows) == 0 {
			continue
		}

		keys := keyRe.FindAllString(header, -1)
		if len(keys) == 0 {
			return nil, types.NewParseError("generator input", startLine, "data without field names under %q", header)
		}
		if keys[0] == "n" {
			keys = stateKeys
		}

		if err := parseSection(params, keys, rows, startLine); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func parseSection(params Params, keys []string, rows [][]string, line int) error {
	if len(rows) == 1 {
		return parseRow(params, keys, rows[0], line)
	}

	for _, k := range keys {
		if fieldTable[k].arity == scalar {
			return types.NewParseError(k, line, "single-valued field has %d data rows", len(rows))
		}
	}

	need := requiredColumns(keys)
	for i, r := range rows {
		if len(r) < need {
			return types.NewParseError(strings.Join(keys, ","), line+i+1,
				"header names %d fields but row has %d columns", need, len(r))
		}
	}

	for i, k := range keys {
		if i >= len(rows[0]) {
			break
		}
		v := Value{Seq: true}
		for _, r := range rows {
			if i < len(r) {
				v.Items = append(v.Items, newScalar(r[i]))
			}
		}
		params[k] = v
	}
	return nil
}

func parseRow(params Params, keys, row []string, line int) error {
	need := requiredColumns(keys)
	if len(row) < need {
		return types.NewParseError(strings.Join(keys, ","), line+1,
			"header names %d fields but data has %d columns", need, len(row))
	}

	for i, k := range keys {
		if i >= len(row) {
			break
		}
		last := i == len(keys)-1
		if last && len(row) > len(keys) {
			v := Value{Seq: true}
			for _, tok := range row[i:] {
				v.Items = append(v.Items, newScalar(tok))
			}
			if fieldTable[k].arity == scalar {
				return types.NewParseError(k, line+1, "single-valued field has %d values", len(v.Items))
			}
			params[k] = v
			break
		}
		params[k] = Value{
			Items: []Scalar{newScalar(row[i])},
			Seq:   fieldTable[k].arity == perRow,
		}
	}
	return nil
}

// requiredColumns is the key count less any trailing optional keys.
func requiredColumns(keys []string) int {
	n := len(keys)
	for n > 0 && fieldTable[keys[n-1]].optional {
		n--
	}
	return n
}
