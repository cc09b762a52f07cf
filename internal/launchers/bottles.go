package launchers

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"gamescout/internal/detect"
	"gamescout/internal/paths"
	"gamescout/internal/scan"
)

const bottlesFlatpakID = "com.usebottles.bottles"

// Bottles reads wine prefixes managed by Bottles. Game metadata is split
// between the global library.yml and each bottle's own bottle.yml; the two
// are joined on the game id.
type Bottles struct {
	bottlesDir string
	library    string
	flatpak    bool
	log        *zap.Logger
}

// NewBottles builds the Bottles adapter.
func NewBottles(dirs detect.Dirs, log *zap.Logger) *Bottles {
	data, flatpak := fallbackDir(
		filepath.Join(dirs.Data, "bottles"),
		filepath.Join(dirs.Home, ".var/app", bottlesFlatpakID, "data/bottles"),
	)
	return &Bottles{
		bottlesDir: filepath.Join(data, "bottles"),
		library:    filepath.Join(data, "library.yml"),
		flatpak:    flatpak,
		log:        log,
	}
}

func (b *Bottles) Kind() detect.Source { return detect.Bottles }

func (b *Bottles) Detected() bool { return paths.IfFile(b.library) != "" }

func (b *Bottles) Root() string { return filepath.Dir(b.library) }

// libraryStep extracts one entry from library.yml. Field order follows the
// file: bottle name and subdir, icon (possibly wrapped over two lines), game
// id, display title, then the thumbnail reference.
func libraryStep(text string) (scan.Record, string, error) {
	bottle, rest, err := scan.ColonValue(text, "name")
	if err != nil {
		return nil, text, err
	}
	subdir, rest, err := scan.ColonValue(rest, "path")
	if err != nil {
		return nil, text, err
	}
	icon, rest, err := scan.ColonValueFolded(rest, "icon")
	if err != nil {
		return nil, text, err
	}
	id, rest, err := scan.ColonValue(rest, "id")
	if err != nil {
		return nil, text, err
	}
	title, rest, err := scan.ColonValue(rest, "name")
	if err != nil {
		return nil, text, err
	}
	thumbnail, rest, err := scan.ColonValue(rest, "thumbnail")
	if err != nil {
		return nil, text, err
	}
	rec := scan.Record{
		"id":     id,
		"title":  scan.CleanTitle(title),
		"bottle": bottle,
		"subdir": subdir,
		"icon":   icon,
	}
	// Only grid-backed thumbnails name a local file.
	if art, ok := strings.CutPrefix(thumbnail, "grid:"); ok {
		rec["box_art"] = art
	}
	return rec, rest, nil
}

// bottleYmlStep extracts one program entry from a bottle.yml: the install
// folder (wrapped paths are re-joined) and the game id.
func bottleYmlStep(text string) (scan.Record, string, error) {
	dir, rest, err := scan.ColonValueFolded(text, "folder")
	if err != nil {
		return nil, text, err
	}
	id, rest, err := scan.ColonValue(rest, "id")
	if err != nil {
		return nil, text, err
	}
	return scan.Record{"id": id, "dir": dir}, rest, nil
}

// allBottles scans every bottle's bottle.yml under the bottles directory.
func (b *Bottles) allBottles() ([]scan.Record, error) {
	entries, err := os.ReadDir(b.bottlesDir)
	if err != nil {
		return nil, err
	}
	var records []scan.Record
	for _, entry := range entries {
		yml := filepath.Join(b.bottlesDir, entry.Name(), "bottle.yml")
		recs, err := scan.ScanFile(yml, bottleYmlStep)
		if err != nil {
			b.log.Debug("skipping bottle without readable bottle.yml",
				zap.String("path", yml), zap.Error(err))
			continue
		}
		records = append(records, recs...)
	}
	return records, nil
}

func (b *Bottles) Games() ([]detect.Game, error) {
	library, err := scan.ScanFile(b.library, libraryStep)
	if err != nil {
		return nil, err
	}
	bottles, err := b.allBottles()
	if err != nil {
		return nil, err
	}

	keyByID := func(r scan.Record) string { return r["id"] }
	// library.yml owns titles and artwork; bottle.yml only contributes the
	// install folder.
	combined := scan.Reconcile(library, bottles, keyByID, scan.MergePolicy{})
	if len(combined) == 0 {
		b.log.Warn("no games found in bottles library", zap.String("library", b.library))
	}

	games := make([]detect.Game, 0, len(combined))
	for _, rec := range combined {
		args := []string{"run", "-p", rec["title"], "-b", rec["bottle"]}
		var launch detect.LaunchSpec
		if b.flatpak {
			launch = detect.FlatpakCommand(bottlesFlatpakID, []string{"--command=bottles-cli"}, args, nil)
		} else {
			launch = detect.Command("bottles-cli", args, nil)
		}

		var boxArt string
		if rec["box_art"] != "" {
			boxArt = paths.IfFile(filepath.Join(b.bottlesDir, rec["subdir"], "grids", rec["box_art"]))
		}

		games = append(games, detect.Game{
			Title:      rec["title"],
			Source:     detect.Bottles,
			InstallDir: paths.IfDir(rec["dir"]),
			Icon:       paths.IfFile(rec["icon"]),
			BoxArt:     boxArt,
			Launch:     launch,
		})
	}
	return games, nil
}
