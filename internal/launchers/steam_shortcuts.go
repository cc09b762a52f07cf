package launchers

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"gamescout/internal/detect"
	"gamescout/internal/paths"
	"gamescout/internal/scan"
)

// userdataFiles are the per-user files needed to detect non-Steam games.
type userdataFiles struct {
	shortcuts   string
	screenshots string
	gridDir     string
}

// SteamShortcuts detects non-Steam games added to Steam as shortcuts. The
// shortcut titles come from the binary shortcuts.vdf, but the app ids Steam
// actually launches them by only appear in screenshots.vdf, so the two files
// are joined on title.
type SteamShortcuts struct {
	userdataDir string
	flatpak     bool
	log         *zap.Logger
}

// NewSteamShortcuts builds the non-Steam-games adapter.
func NewSteamShortcuts(dirs detect.Dirs, log *zap.Logger) *SteamShortcuts {
	root, flatpak := steamRoot(dirs)
	return &SteamShortcuts{
		userdataDir: filepath.Join(root, "userdata"),
		flatpak:     flatpak,
		log:         log,
	}
}

func (s *SteamShortcuts) Kind() detect.Source { return detect.SteamShortcuts }

func (s *SteamShortcuts) Detected() bool { return paths.IfDir(s.userdataDir) != "" }

func (s *SteamShortcuts) Root() string { return s.userdataDir }

// findUserdataFiles returns the first user directory carrying all three
// shortcut artifacts. There is no way to tell which user is logged in, so
// the first complete set wins.
func (s *SteamShortcuts) findUserdataFiles() (userdataFiles, error) {
	entries, err := os.ReadDir(s.userdataDir)
	if err != nil {
		return userdataFiles{}, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		userDir := filepath.Join(s.userdataDir, entry.Name())
		files := userdataFiles{
			shortcuts:   paths.IfFile(filepath.Join(userDir, "config", "shortcuts.vdf")),
			screenshots: paths.IfFile(filepath.Join(userDir, "760", "screenshots.vdf")),
			gridDir:     paths.IfDir(filepath.Join(userDir, "config", "grid")),
		}
		if files.shortcuts != "" && files.screenshots != "" && files.gridDir != "" {
			return files, nil
		}
	}
	return userdataFiles{}, fmt.Errorf("no shortcuts found under %s", s.userdataDir)
}

var (
	appidMarker = []byte("\x02appid\x00")
	// Steam has written both spellings over the years.
	appNameMarkers = [][]byte{[]byte("\x01AppName\x00"), []byte("\x01appname\x00")}
)

// parseShortcutsVDF walks the binary shortcuts.vdf and pulls out each
// entry's appid (little-endian u32, used for box art filenames) and display
// name. Everything else in the entry is skipped over.
func parseShortcutsVDF(data []byte) []scan.Record {
	var records []scan.Record
	for {
		i := bytes.Index(data, appidMarker)
		if i < 0 || i+len(appidMarker)+4 > len(data) {
			return records
		}
		data = data[i+len(appidMarker):]
		id := binary.LittleEndian.Uint32(data[:4])
		data = data[4:]

		// Bound the name search to this entry.
		entry := data
		if next := bytes.Index(data, appidMarker); next >= 0 {
			entry = data[:next]
		}
		name := ""
		for _, marker := range appNameMarkers {
			j := bytes.Index(entry, marker)
			if j < 0 {
				continue
			}
			value := entry[j+len(marker):]
			if end := bytes.IndexByte(value, 0); end >= 0 {
				name = string(value[:end])
			}
			break
		}
		if name == "" {
			continue
		}
		records = append(records, scan.Record{
			"title":      name,
			"box_art_id": strconv.FormatUint(uint64(id), 10),
		})
	}
}

// screenshotNames collects the quoted id/title pairs of the shortcutnames
// block in file order.
func screenshotNames(content string) []scan.Record {
	body, _, err := scan.Block(content, "shortcutnames")
	if err != nil {
		return nil
	}
	return scan.ScanAll(body, func(text string) (scan.Record, string, error) {
		pair, rest, err := scan.QuotedPair(text)
		if err != nil {
			return nil, text, err
		}
		return scan.Record{"app_id": pair.Key, "title": pair.Value}, rest, nil
	})
}

func (s *SteamShortcuts) Games() ([]detect.Game, error) {
	files, err := s.findUserdataFiles()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(files.shortcuts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", files.shortcuts, err)
	}
	shortcuts := parseShortcutsVDF(raw)

	content, err := os.ReadFile(files.screenshots)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", files.screenshots, err)
	}
	// screenshots.vdf is append-only and never reset, so the newest entry
	// for a title is the last one; reverse to make it the match.
	names := scan.Reverse(screenshotNames(string(content)))

	keyByTitle := func(r scan.Record) string { return r["title"] }
	combined := scan.Reconcile(shortcuts, names, keyByTitle, scan.MergePolicy{})
	if len(combined) == 0 {
		s.log.Warn("no valid steam shortcuts found",
			zap.String("shortcuts", files.shortcuts))
	}

	games := make([]detect.Game, 0, len(combined))
	for _, rec := range combined {
		// Native Steam appends a "p" to shortcut grid image names, the
		// flathub build does not.
		boxArt := paths.FirstImage(files.gridDir, rec["box_art_id"]+"p")
		if boxArt == "" {
			boxArt = paths.FirstImage(files.gridDir, rec["box_art_id"])
		}
		games = append(games, detect.Game{
			Title:  scan.CleanTitle(rec["title"]),
			Source: detect.SteamShortcuts,
			BoxArt: boxArt,
			Launch: steamLaunch(rec["app_id"], s.flatpak),
		})
	}
	return games, nil
}
