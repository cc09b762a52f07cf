package scan

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Side names which input of a Reconcile call wins a field conflict.
type Side int

const (
	// PrimarySide keeps the primary record's value.
	PrimarySide Side = iota
	// SecondarySide keeps the secondary record's value.
	SecondarySide
)

// MergePolicy declares, per field, which side is authoritative when both
// records carry a non-empty value. Fields not listed fall back to Default.
type MergePolicy struct {
	Default Side
	Fields  map[string]Side
}

func (p MergePolicy) side(field string) Side {
	if s, ok := p.Fields[field]; ok {
		return s
	}
	return p.Default
}

// KeyFunc extracts the join key from a record. An empty key means the record
// cannot participate in a join.
type KeyFunc func(Record) string

// Reconcile inner-joins two record slices by key equality. Each primary
// record is merged with the first secondary record whose key matches it;
// primaries without a match are dropped, as are unmatched secondaries.
// Catalogues where the newest duplicate should win are handled by the caller
// reversing the secondary slice first (see Reverse).
func Reconcile(primary, secondary []Record, keyOf KeyFunc, policy MergePolicy) []Record {
	var merged []Record
	for _, p := range primary {
		key := keyOf(p)
		if key == "" {
			continue
		}
		for _, s := range secondary {
			if keyOf(s) != key {
				continue
			}
			merged = append(merged, merge(p, s, policy))
			break
		}
	}
	return merged
}

func merge(primary, secondary Record, policy MergePolicy) Record {
	out := make(Record, len(primary)+len(secondary))
	for field, v := range primary {
		out[field] = v
	}
	for field, v := range secondary {
		if v == "" {
			continue
		}
		if cur, ok := out[field]; ok && cur != "" && policy.side(field) == PrimarySide {
			continue
		}
		out[field] = v
	}
	return out
}

// Reverse returns a reversed copy of records. Adapters reading append-only
// catalogues pass the reversed slice to Reconcile so the most recent entry
// for a duplicated key wins.
func Reverse(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

// TitleFromSlug derives a display title from a hyphenated slug:
// "sky-factory" becomes "Sky factory".
func TitleFromSlug(slug string) string {
	s := strings.ReplaceAll(slug, "-", " ")
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// TitleFromPath derives a display title from the last segment of an install
// path, with trademark glyphs stripped. Empty when the path has no usable
// segment.
func TitleFromPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return CleanTitle(base)
}

// CleanTitle strips the trademark glyphs some stores leave in display names.
func CleanTitle(title string) string {
	return strings.NewReplacer("™", "", "®", "").Replace(title)
}
