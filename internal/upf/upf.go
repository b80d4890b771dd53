// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upf reads blocks and attributes out of a UPF pseudopotential file.
//
// UPF is XML-like but not reliably well-formed (free text inside PP_INFO and
// PP_INPUTFILE routinely contains '<' and '&'), so blocks are located with a
// small scanner rather than an XML decoder.
package upf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/upf2psp8/pkg/types"
)

// Text returns the content of the first <tag ...> ... </tag> block in src.
// Attribute text in the opening tag is skipped, including quoted values that
// contain '>'. When the opening tag ends a line, that line break is not part
// of the content. A self-closing tag yields "".
func Text(src, tag string) (string, error) {
	body, _, err := block(src, tag)
	return body, err
}

// Floats returns the whitespace-separated numbers inside the tag block.
func Floats(src, tag string) ([]float64, error) {
	body, offset, err := block(src, tag)
	if err != nil {
		return nil, err
	}
	var out []float64
	pos := 0
	for _, f := range strings.Fields(body) {
		pos += strings.Index(body[pos:], f)
		v, err := ParseFloat(f)
		if err != nil {
			return nil, types.NewParseError(tag, lineAt(src, offset+pos), "non-numeric token %q", f)
		}
		out = append(out, v)
		pos += len(f)
	}
	return out, nil
}

// block locates the tag's content and returns it with its offset in src.
func block(src, tag string) (string, int, error) {
	start, err := findOpen(src, tag)
	if err != nil {
		return "", 0, err
	}

	end, selfClosing, ok := skipAttributes(src, start+1+len(tag))
	if !ok {
		return "", 0, types.NewParseError(tag, lineAt(src, start), "unterminated opening tag")
	}
	if selfClosing {
		return "", end, nil
	}

	body := end
	if strings.HasPrefix(src[body:], "\r\n") {
		body += 2
	} else if strings.HasPrefix(src[body:], "\n") {
		body++
	}

	closeAt := findClose(src, tag, end)
	if closeAt < 0 {
		return "", 0, types.NewParseError(tag, lineAt(src, start), "unterminated block: no </%s>", tag)
	}
	if closeAt < body {
		return "", end, nil
	}
	return src[body:closeAt], body, nil
}

// ParseFloat parses a number as written by Fortran codes, accepting 'D'
// exponents alongside 'E'.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "dD") {
		s = strings.NewReplacer("d", "e", "D", "E").Replace(s)
	}
	return strconv.ParseFloat(s, 64)
}

// findOpen returns the offset of the '<' that opens the first block named tag.
// The name must be followed by whitespace, '>' or '/', so PP_R never matches
// PP_RHOATOM.
func findOpen(src, tag string) (int, error) {
	needle := "<" + tag
	from := 0
	for {
		i := strings.Index(src[from:], needle)
		if i < 0 {
			return 0, types.NewParseError(tag, 0, "missing block")
		}
		at := from + i
		next := at + len(needle)
		if next >= len(src) {
			return 0, types.NewParseError(tag, lineAt(src, at), "unterminated opening tag")
		}
		if isNameEnd(src[next]) {
			return at, nil
		}
		from = next
	}
}

func isNameEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '>', '/':
		return true
	}
	return false
}

// skipAttributes scans from just past the tag name to the closing '>' of the
// opening tag and returns the offset after it.
func skipAttributes(src string, i int) (end int, selfClosing, ok bool) {
	var quote byte
	for ; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1, src[i-1] == '/', true
		}
	}
	return 0, false, false
}

// findClose returns the offset of the first </tag> at or after from, or -1.
func findClose(src, tag string, from int) int {
	needle := "</" + tag
	for from <= len(src) {
		i := strings.Index(src[from:], needle)
		if i < 0 {
			return -1
		}
		at := from + i
		rest := strings.TrimLeft(src[at+len(needle):], " \t\r\n")
		if strings.HasPrefix(rest, ">") {
			return at
		}
		from = at + len(needle)
	}
	return -1
}

func lineAt(src string, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return strings.Count(src[:offset], "\n") + 1
}

var (
	versionRe = regexp.MustCompile(`version\s+(\d+\.\d+\.\d+)`)
	dateRe    = regexp.MustCompile(`^\d{6}$`)
)

// Attr returns the trimmed value of the first name="value" pair in src.
func Attr(src, name string) (string, error) {
	re, err := regexp.Compile(`(?:^|[\s<])` + regexp.QuoteMeta(name) + `\s*=\s*"([^"]*)"`)
	if err != nil {
		return "", types.NewParseError(name, 0, "bad attribute name")
	}
	m := re.FindStringSubmatchIndex(src)
	if m == nil {
		return "", types.NewParseError(name, 0, "missing attribute")
	}
	return strings.TrimSpace(src[m[2]:m[3]]), nil
}

// AttrFloat returns the attribute value parsed as a float.
func AttrFloat(src, name string) (float64, error) {
	s, err := Attr(src, name)
	if err != nil {
		return 0, err
	}
	v, err := ParseFloat(s)
	if err != nil {
		return 0, types.NewParseError(name, 0, "non-numeric value %q", s)
	}
	return v, nil
}

// AttrInt returns the attribute value parsed as an integer.
func AttrInt(src, name string) (int, error) {
	s, err := Attr(src, name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, types.NewParseError(name, 0, "non-integer value %q", s)
	}
	return v, nil
}

// Date returns the 6-digit date stamp from the date attribute.
func Date(src string) (string, error) {
	s, err := Attr(src, "date")
	if err != nil {
		return "", err
	}
	if !dateRe.MatchString(s) {
		return "", types.NewParseError("date", 0, "want 6 digits, got %q", s)
	}
	return s, nil
}

// Version returns the generator version, e.g. "3.3.1", from the first
// "version X.Y.Z" phrase in src.
func Version(src string) (string, error) {
	m := versionRe.FindStringSubmatch(src)
	if m == nil {
		return "", types.NewParseError("version", 0, "no generator version string")
	}
	return m[1], nil
}
