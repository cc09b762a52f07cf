// Package scan extracts named fields from launcher catalogue files without
// fully parsing them. The files involved only look like JSON, YAML, CFG or
// VDF; real parsers reject them, so everything here works on a remaining-text
// cursor and pulls out just the spans the caller asks for.
package scan

import "strings"

// SkipPast advances past the next occurrence of literal and returns the text
// that follows it. ok is false when the literal does not occur, leaving text
// unchanged.
func SkipPast(text, literal string) (rest string, ok bool) {
	i := strings.Index(text, literal)
	if i < 0 {
		return text, false
	}
	return text[i+len(literal):], true
}

// Quoted returns the contents of the next double-quoted span. The span may
// cross newlines and backslashes pass through untouched. ok is false when no
// complete span remains.
func Quoted(text string) (value, rest string, ok bool) {
	open := strings.IndexByte(text, '"')
	if open < 0 {
		return "", text, false
	}
	closing := strings.IndexByte(text[open+1:], '"')
	if closing < 0 {
		return "", text, false
	}
	start := open + 1
	return text[start : start+closing], text[start+closing+1:], true
}

// Line consumes up to but not including the next newline. When no newline
// remains the whole text is the line and rest is empty. A trailing carriage
// return is stripped from the line.
func Line(text string) (line, rest string) {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return strings.TrimSuffix(text[:i], "\r"), text[i:]
	}
	return strings.TrimSuffix(text, "\r"), ""
}

// TakeWhile consumes the leading run of bytes satisfying pred.
func TakeWhile(text string, pred func(byte) bool) (run, rest string) {
	i := 0
	for i < len(text) && pred(text[i]) {
		i++
	}
	return text[:i], text[i:]
}

// SkipWhile drops the leading run of bytes satisfying pred.
func SkipWhile(text string, pred func(byte) bool) string {
	_, rest := TakeWhile(text, pred)
	return rest
}

// IsAlphanumeric reports whether c is an ASCII letter or digit.
func IsAlphanumeric(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// IsSpace reports whether c is ASCII whitespace.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
