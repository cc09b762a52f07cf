// Package launchers contains one adapter per supported game launcher. Each
// adapter reads the launcher's on-disk catalogue and reports the games it
// finds; none of them touch the network or spawn processes.
package launchers

import (
	"errors"
	"slices"

	"go.uber.org/zap"

	"gamescout/internal/detect"
	"gamescout/internal/paths"
)

// errEntrySkipped marks a catalogue entry that parsed but should not become
// a game (not installed, no usable title). Record loops drop it and move on.
var errEntrySkipped = errors.New("catalogue entry skipped")

// Options tunes how the adapter set is built.
type Options struct {
	Log *zap.Logger
	// SteamLibraries adds library roots on top of those listed in
	// libraryfolders.vdf.
	SteamLibraries []string
	// Disabled removes sources from the set entirely.
	Disabled []detect.Source
}

// All builds every supported adapter against the given directory roots.
func All(dirs detect.Dirs, opts Options) []detect.Launcher {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	all := []detect.Launcher{
		NewSteam(dirs, opts.SteamLibraries, log),
		NewSteamShortcuts(dirs, log),
		NewHeroicGOG(dirs, log),
		NewHeroicEpic(dirs, log),
		NewHeroicAmazon(dirs, log),
		NewHeroicSideload(dirs, log),
		NewLutris(dirs, log),
		NewBottles(dirs, log),
		NewItch(dirs, log),
		NewMinecraftPrism(dirs, log),
		NewMinecraftAT(dirs, log),
	}
	if len(opts.Disabled) == 0 {
		return all
	}

	kept := all[:0]
	for _, l := range all {
		if !slices.Contains(opts.Disabled, l.Kind()) {
			kept = append(kept, l)
		}
	}
	return kept
}

// NewDetector builds a Detector over All.
func NewDetector(dirs detect.Dirs, opts Options) *detect.Detector {
	return detect.NewDetector(opts.Log, All(dirs, opts)...)
}

// fallbackDir returns native when it is an existing directory, otherwise the
// flatpak location. The flatpak path is returned even when it does not exist
// either; Detected probes handle the miss.
func fallbackDir(native, flatpak string) (dir string, usingFlatpak bool) {
	if paths.IfDir(native) != "" {
		return native, false
	}
	return flatpak, true
}
