package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idTitleStep(text string) (Record, string, error) {
	id, rest, err := QuotedValue(text, "id")
	if err != nil {
		return nil, text, err
	}
	title, rest, err := QuotedValue(rest, "title")
	if err != nil {
		return nil, text, err
	}
	return Record{"id": id, "title": title}, rest, nil
}

func TestScanAllEnumeratesEachEntryOnce(t *testing.T) {
	content := `[
		{"id": "a1", "title": "First"},
		{"id": "b2", "title": "Second"},
		{"id": "c3", "title": "Third"}
	]`

	got := ScanAll(content, idTitleStep)
	want := []Record{
		{"id": "a1", "title": "First"},
		{"id": "b2", "title": "Second"},
		{"id": "c3", "title": "Third"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestScanAllEmptyAndTrailingGarbage(t *testing.T) {
	assert.Empty(t, ScanAll("", idTitleStep))
	assert.Empty(t, ScanAll("no records here", idTitleStep))

	got := ScanAll(`{"id": "a1", "title": "Only"} trailing junk "id" alone`, idTitleStep)
	require.Len(t, got, 1)
	assert.Equal(t, "Only", got[0]["title"])
}

func TestScanAllDropsMalformedEntryAndContinues(t *testing.T) {
	errSkip := errors.New("entry skipped")

	// A step that rejects flagged entries but still advances past them, so
	// one bad entry cannot take the rest of the file with it.
	step := func(text string) (Record, string, error) {
		id, rest, err := QuotedValue(text, "id")
		if err != nil {
			return nil, text, err
		}
		flag, rest, err := UnquotedValue(rest, "ok")
		if err != nil {
			return nil, text, err
		}
		if flag != "true" {
			return nil, rest, errSkip
		}
		return Record{"id": id}, rest, nil
	}

	content := `
		{"id": "keep1", "ok": true},
		{"id": "drop", "ok": false},
		{"id": "keep2", "ok": true},
	`
	got := ScanAll(content, step)
	want := []Record{{"id": "keep1"}, {"id": "keep2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestScanAllStopsWhenStepDoesNotAdvance(t *testing.T) {
	step := func(text string) (Record, string, error) {
		return Record{"stuck": "yes"}, text, nil
	}
	got := ScanAll("anything", step)
	assert.Len(t, got, 1)
}

func TestScanFile(t *testing.T) {
	t.Run("reads and scans", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id": "x", "title": "X"}`), 0o644))

		records, err := ScanFile(path, idTitleStep)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "X", records[0]["title"])
	})

	t.Run("missing file is an IO error, not a no-match", func(t *testing.T) {
		_, err := ScanFile(filepath.Join(t.TempDir(), "absent.json"), idTitleStep)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoMatch)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
