// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/upf2psp8/pkg/types"
)

const sample = `<UPF version="2.0.1">
  <PP_INFO>
    Generated using ONCVPSP code by D. R. Hamann
    scalar-relativistic version 3.3.1 08/16/2017
  </PP_INFO>
  <PP_HEADER
     element="Si"
     z_valence="    4.00000000000E+00"
     core_correction="F"
     number_of_proj="3"
     date="170816"/>
  <PP_MESH>
    <PP_R type="real" size="4" columns="4">
 0.0000000000E+00 1.0000000000E-02 2.0000000000E-02 3.0000000000E-02
    </PP_R>
    <PP_RAB type="real" size="4">
 1.0D-02 1.0D-02 1.0D-02 1.0D-02
    </PP_RAB>
  </PP_MESH>
  <PP_RHOATOM type="real" size="4">
 0.0 1.5 2.5 3.5
  </PP_RHOATOM>
  <PP_NOTE comment="a > b">
text
  </PP_NOTE>
  <PP_EMPTY/>
  <PP_BAD type="real">
 1.0 oops 3.0
  </PP_BAD>
</UPF>
`

func TestText(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want string
	}{
		{name: "skips attribute text and leading line break", tag: "PP_NOTE", want: "text\n  "},
		{name: "self-closing tag is empty", tag: "PP_EMPTY", want: ""},
		{name: "nested block", tag: "PP_MESH", want: "    <PP_R type=\"real\" size=\"4\" columns=\"4\">\n 0.0000000000E+00 1.0000000000E-02 2.0000000000E-02 3.0000000000E-02\n    </PP_R>\n    <PP_RAB type=\"real\" size=\"4\">\n 1.0D-02 1.0D-02 1.0D-02 1.0D-02\n    </PP_RAB>\n  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(sample, tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tag    string
		reason string
	}{
		{name: "missing block", src: sample, tag: "PP_DIJ", reason: "missing block"},
		{name: "unterminated block", src: "<PP_DIJ>\n1.0 2.0\n", tag: "PP_DIJ", reason: "unterminated block"},
		{name: "unterminated opening tag", src: "<PP_DIJ size=\"2\"\n1.0", tag: "PP_DIJ", reason: "unterminated opening tag"},
		{name: "quoted > does not close tag", src: "<PP_DIJ note=\"x>y", tag: "PP_DIJ", reason: "unterminated opening tag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Text(tt.src, tt.tag)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrParse))
			var pe *types.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.tag, pe.Tag)
			assert.Contains(t, pe.Reason, tt.reason)
		})
	}
}

func TestTextDoesNotMatchTagPrefix(t *testing.T) {
	src := "<PP_RHOATOM>\n9.0\n</PP_RHOATOM>\n<PP_R>\n1.0\n</PP_R>\n"
	got, err := Floats(src, "PP_R")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0}, got)
}

func TestFloats(t *testing.T) {
	got, err := Floats(sample, "PP_R")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.01, 0.02, 0.03}, got)

	rab, err := Floats(sample, "PP_RAB")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.01, 0.01, 0.01, 0.01}, rab)
}

func TestFloatsNonNumeric(t *testing.T) {
	_, err := Floats(sample, "PP_BAD")
	require.Error(t, err)
	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Reason, `"oops"`)
	assert.Equal(t, 28, pe.Line)
}

func TestAttributes(t *testing.T) {
	zion, err := AttrFloat(sample, "z_valence")
	require.NoError(t, err)
	assert.Equal(t, 4.0, zion)

	n, err := AttrInt(sample, "number_of_proj")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	date, err := Date(sample)
	require.NoError(t, err)
	assert.Equal(t, "170816", date)

	v, err := Version(sample)
	require.NoError(t, err)
	assert.Equal(t, "3.3.1", v)

	cc, err := Attr(sample, "core_correction")
	require.NoError(t, err)
	assert.Equal(t, "F", cc)
}

func TestAttributeErrors(t *testing.T) {
	_, err := Attr(sample, "mesh_size")
	assert.ErrorIs(t, err, types.ErrParse)

	_, err = AttrInt(sample, "element")
	assert.ErrorIs(t, err, types.ErrParse)

	_, err = Date(`date="2017"`)
	assert.ErrorIs(t, err, types.ErrParse)

	_, err = Version("no generator info")
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestParseFloat(t *testing.T) {
	tests := map[string]float64{
		"1.5":       1.5,
		"-2.0E-03":  -0.002,
		"1.0D+02":   100,
		"  3.25d0 ": 3.25,
	}
	for in, want := range tests {
		got, err := ParseFloat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
