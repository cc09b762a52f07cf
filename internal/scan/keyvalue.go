package scan

import (
	"errors"
	"strings"
)

// ErrNoMatch reports that the requested key or structure is absent from the
// remaining input. It is control flow rather than failure: record loops stop
// on it and optional-field lookups ignore it. IO errors never wrap it.
var ErrNoMatch = errors.New("no match in remaining input")

// RawField is a single key/value pair as it appears on disk, untyped.
type RawField struct {
	Key   string
	Value string
}

// QuotedValue locates the next `"key"` occurrence and returns its quoted
// value, as in the pseudo-JSON and VDF files Steam and Heroic write:
//
//	"installdir"		"Celeste"
//
// The value keeps embedded newlines and backslashes verbatim.
func QuotedValue(text, key string) (value, rest string, err error) {
	after, ok := SkipPast(text, `"`+key+`"`)
	if !ok {
		return "", text, ErrNoMatch
	}
	value, rest, ok = Quoted(after)
	if !ok {
		return "", text, ErrNoMatch
	}
	return value, rest, nil
}

// UnquotedValue locates the next `"key"` occurrence and returns the bare
// alphanumeric token that follows it, for fields like `"is_installed": false`.
func UnquotedValue(text, key string) (value, rest string, err error) {
	after, ok := SkipPast(text, `"`+key+`"`)
	if !ok {
		return "", text, ErrNoMatch
	}
	after = SkipWhile(after, func(c byte) bool { return !IsAlphanumeric(c) })
	value, rest = TakeWhile(after, IsAlphanumeric)
	if value == "" {
		return "", text, ErrNoMatch
	}
	return value, rest, nil
}

// ColonValue locates the next `key:` occurrence and returns the remainder of
// that line, trimmed, as in the pseudo-YAML files Bottles writes.
func ColonValue(text, key string) (value, rest string, err error) {
	after, ok := SkipPast(text, key+":")
	if !ok {
		return "", text, ErrNoMatch
	}
	line, rest := Line(after)
	return strings.TrimSpace(line), rest, nil
}

// ColonValueFolded behaves like ColonValue but re-joins wrapped continuation
// lines with single spaces. A following line is a continuation when it is
// indented and contains no colon; the first line containing a colon is taken
// to start the next key and ends the value. The colon test is a heuristic: a
// continuation whose own text contains a colon ends the value early.
func ColonValueFolded(text, key string) (value, rest string, err error) {
	value, rest, err = ColonValue(text, key)
	if err != nil {
		return "", text, err
	}
	parts := []string{value}
	for strings.HasPrefix(rest, "\n") {
		line, after := Line(rest[1:])
		if len(line) == 0 || !IsSpace(line[0]) || strings.ContainsRune(line, ':') {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		parts = append(parts, trimmed)
		rest = after
	}
	return strings.Join(parts, " "), rest, nil
}

// EqualsValue locates the next `key=` occurrence and returns the remainder of
// that line verbatim, as in Prism's prismlauncher.cfg.
func EqualsValue(text, key string) (value, rest string, err error) {
	after, ok := SkipPast(text, key+"=")
	if !ok {
		return "", text, ErrNoMatch
	}
	value, rest = Line(after)
	return value, rest, nil
}

// Block locates the quoted tag and returns the body of the brace block that
// follows it. Brace depth is tracked so a nested block does not end the span
// at the wrong close-brace.
func Block(text, tag string) (body, rest string, err error) {
	after, ok := SkipPast(text, `"`+tag+`"`)
	if !ok {
		return "", text, ErrNoMatch
	}
	open := strings.IndexByte(after, '{')
	if open < 0 {
		return "", text, ErrNoMatch
	}
	depth := 1
	for i := open + 1; i < len(after); i++ {
		switch after[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return after[open+1 : i], after[i+1:], nil
			}
		}
	}
	return "", text, ErrNoMatch
}

// QuotedPair returns the next two double-quoted spans as a RawField. Used to
// walk the bodies returned by Block, where keys and values are both quoted.
func QuotedPair(text string) (RawField, string, error) {
	key, rest, ok := Quoted(text)
	if !ok {
		return RawField{}, text, ErrNoMatch
	}
	value, rest, ok := Quoted(rest)
	if !ok {
		return RawField{}, text, ErrNoMatch
	}
	return RawField{Key: key, Value: value}, rest, nil
}
