// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package oncv

import (
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/upf2psp8/pkg/types"
)

// Scalar is one token of the generator record, numeric when it parses as a float.
type Scalar struct {
	Text    string
	Num     float64
	Numeric bool
}

func newScalar(tok string) Scalar {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return Scalar{Text: tok}
	}
	return Scalar{Text: tok, Num: v, Numeric: true}
}

// Value is a field's parsed value: a single scalar or an ordered sequence.
type Value struct {
	Items []Scalar
	Seq   bool
}

// String renders the value for diagnostics: a bare token or a bracketed list.
func (v Value) String() string {
	parts := make([]string, len(v.Items))
	for i, s := range v.Items {
		parts[i] = s.Text
	}
	if v.Seq {
		return "[" + strings.Join(parts, " ") + "]"
	}
	return strings.Join(parts, " ")
}

// Params is the flat field-name to value mapping of a generator record.
type Params map[string]Value

// Has reports whether key was set.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p Params) scalar(key string) (Scalar, error) {
	v, ok := p[key]
	if !ok {
		return Scalar{}, types.NewParseError(key, 0, "missing generator input field")
	}
	if v.Seq || len(v.Items) != 1 {
		return Scalar{}, types.NewParseError(key, 0, "want a single value, got %s", v)
	}
	return v.Items[0], nil
}

// String returns a scalar field as text.
func (p Params) String(key string) (string, error) {
	s, err := p.scalar(key)
	if err != nil {
		return "", err
	}
	return s.Text, nil
}

// Float returns a numeric scalar field.
func (p Params) Float(key string) (float64, error) {
	s, err := p.scalar(key)
	if err != nil {
		return 0, err
	}
	if !s.Numeric {
		return 0, types.NewParseError(key, 0, "non-numeric value %q", s.Text)
	}
	return s.Num, nil
}

// Int returns a numeric scalar field that holds a whole number.
func (p Params) Int(key string) (int, error) {
	f, err := p.Float(key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, types.NewParseError(key, 0, "want an integer, got %v", f)
	}
	return int(f), nil
}

// Floats returns a field as a numeric sequence. A scalar becomes a
// one-element sequence.
func (p Params) Floats(key string) ([]float64, error) {
	v, ok := p[key]
	if !ok {
		return nil, types.NewParseError(key, 0, "missing generator input field")
	}
	out := make([]float64, len(v.Items))
	for i, s := range v.Items {
		if !s.Numeric {
			return nil, types.NewParseError(key, 0, "non-numeric value %q", s.Text)
		}
		out[i] = s.Num
	}
	return out, nil
}

// Ints is Floats restricted to whole numbers.
func (p Params) Ints(key string) ([]int, error) {
	fs, err := p.Floats(key)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		if f != math.Trunc(f) {
			return nil, types.NewParseError(key, 0, "want integers, got %v", f)
		}
		out[i] = int(f)
	}
	return out, nil
}
