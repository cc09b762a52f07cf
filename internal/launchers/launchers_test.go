package launchers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamescout/internal/detect"
)

func TestAllCoversEverySource(t *testing.T) {
	dirs := detect.Dirs{Home: t.TempDir(), Config: t.TempDir(), Cache: t.TempDir(), Data: t.TempDir()}

	all := All(dirs, Options{})
	require.Len(t, all, len(detect.Sources()))

	seen := make(map[detect.Source]bool)
	for _, l := range all {
		seen[l.Kind()] = true
	}
	for _, src := range detect.Sources() {
		assert.True(t, seen[src], "missing adapter for %s", src)
	}

	// nothing installed in empty roots
	for _, l := range all {
		assert.False(t, l.Detected(), "%s detected in empty roots", l.Kind())
	}
}

func TestAllDisabledSources(t *testing.T) {
	dirs := detect.Dirs{Home: t.TempDir(), Config: t.TempDir(), Cache: t.TempDir(), Data: t.TempDir()}

	all := All(dirs, Options{Disabled: []detect.Source{detect.Steam, detect.Itch}})
	assert.Len(t, all, len(detect.Sources())-2)
	for _, l := range all {
		assert.NotEqual(t, detect.Steam, l.Kind())
		assert.NotEqual(t, detect.Itch, l.Kind())
	}
}

func TestNewDetector(t *testing.T) {
	dirs := detect.Dirs{Home: t.TempDir(), Config: t.TempDir(), Cache: t.TempDir(), Data: t.TempDir()}
	d := NewDetector(dirs, Options{})
	assert.Len(t, d.Launchers(), len(detect.Sources()))
	assert.Empty(t, d.AllGames())
}
