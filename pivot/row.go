package pivot

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownValue replaces a missing dimension value in group keys and output rows
const UnknownValue = "Unknown"

// Row is a single flat record as returned by the reporting API
type Row map[string]interface{}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// FieldCandidates returns the keys tried when resolving a field on a row:
// the exact name, its lower-case form and its camel-case form.
func FieldCandidates(field string) []string {
	candidates := []string{field}

	add := func(s string) {
		for _, c := range candidates {
			if c == s {
				return
			}
		}
		candidates = append(candidates, s)
	}

	add(strings.ToLower(field))
	add(lowerFirst(field))

	return candidates
}

// Lookup resolves a field on the row, tolerating case variants. The
// candidates from FieldCandidates are tried first, then any key equal to the
// field under case folding; when several keys fold equal the smallest wins.
// A key that is present but holds nil counts as absent.
func Lookup(row Row, field string) (interface{}, bool) {
	for _, key := range FieldCandidates(field) {
		if v, ok := row[key]; ok && v != nil {
			return v, true
		}
	}

	var match string
	var value interface{}
	for key, v := range row {
		if v == nil || !strings.EqualFold(key, field) {
			continue
		}
		if value == nil || key < match {
			match, value = key, v
		}
	}
	return value, value != nil
}

// FirstPresent returns the value of the first field, left to right, that
// resolves on the row.
func FirstPresent(row Row, fields ...string) (interface{}, bool) {
	for _, f := range fields {
		if v, ok := Lookup(row, f); ok {
			return v, true
		}
	}
	return nil, false
}

// DimensionValue returns the string form of a field for use in a group key,
// or UnknownValue when the row does not carry it.
func DimensionValue(row Row, field string) string {
	v, ok := Lookup(row, field)
	if !ok {
		return UnknownValue
	}
	s := FormatValue(v)
	if s == "" {
		return UnknownValue
	}
	return s
}

// FormatValue renders a scalar row value as a string
func FormatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ParseNumber converts a row value to a float. Missing values are 0. Strings
// parse their longest leading numeric prefix; anything unparseable is 0.
func ParseNumber(v interface{}) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		return parseNumericString(t.String())
	case string:
		return parseNumericString(t)
	default:
		return 0
	}
}

func parseNumericString(s string) float64 {
	prefix := numericPrefix.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
