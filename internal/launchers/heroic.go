package launchers

import (
	"path/filepath"

	"go.uber.org/zap"

	"gamescout/internal/detect"
	"gamescout/internal/paths"
	"gamescout/internal/scan"
)

const heroicFlatpakID = "com.heroicgameslauncher.hgl"

// heroicConfigDir resolves the Heroic config root, preferring the native
// install over the flatpak one.
func heroicConfigDir(dirs detect.Dirs) (string, bool) {
	return fallbackDir(
		filepath.Join(dirs.Config, "heroic"),
		filepath.Join(dirs.Home, ".var/app", heroicFlatpakID, "config/heroic"),
	)
}

func heroicLaunch(runner, appID string, flatpak bool) detect.LaunchSpec {
	uri := "heroic://launch/" + runner + "/" + appID
	if flatpak {
		return detect.FlatpakCommand(heroicFlatpakID, nil, []string{uri}, nil)
	}
	return detect.Command("xdg-open", []string{uri}, nil)
}

// storeLibraryStep extracts one installed game from a Heroic store cache
// file (legendary_library.json, nile_library.json). The is_installed flag
// comes after the install info in these files, so the install fields are
// re-scanned from just after the id.
func storeLibraryStep(text string) (scan.Record, string, error) {
	id, afterID, err := scan.QuotedValue(text, "app_name")
	if err != nil {
		return nil, text, err
	}
	installed, afterInstalled, err := scan.UnquotedValue(afterID, "is_installed")
	if err != nil {
		return nil, text, err
	}
	if installed == "false" {
		return nil, afterInstalled, errEntrySkipped
	}
	dir, rest, err := scan.QuotedValue(afterID, "install_path")
	if err != nil {
		return nil, text, err
	}
	title, rest, err := scan.QuotedValue(rest, "title")
	if err != nil {
		return nil, text, err
	}
	return scan.Record{"id": id, "title": scan.CleanTitle(title), "dir": dir}, rest, nil
}

// sideloadLibraryStep is the sideload_apps/library.json variant: the title
// precedes the folder field and the folder key differs.
func sideloadLibraryStep(text string) (scan.Record, string, error) {
	id, afterID, err := scan.QuotedValue(text, "app_name")
	if err != nil {
		return nil, text, err
	}
	installed, afterInstalled, err := scan.UnquotedValue(afterID, "is_installed")
	if err != nil {
		return nil, text, err
	}
	if installed == "false" {
		return nil, afterInstalled, errEntrySkipped
	}
	title, rest, err := scan.QuotedValue(afterID, "title")
	if err != nil {
		return nil, text, err
	}
	dir, rest, err := scan.QuotedValue(rest, "folder_name")
	if err != nil {
		return nil, text, err
	}
	return scan.Record{"id": id, "title": scan.CleanTitle(title), "dir": dir}, rest, nil
}

// gogInstalledStep extracts one game from gog_store/installed.json. GOG's
// file carries no title, so it is derived from the install path; entries
// without a usable path segment are skipped.
func gogInstalledStep(text string) (scan.Record, string, error) {
	dir, rest, err := scan.QuotedValue(text, "install_path")
	if err != nil {
		return nil, text, err
	}
	id, rest, err := scan.QuotedValue(rest, "appName")
	if err != nil {
		return nil, text, err
	}
	title := scan.TitleFromPath(dir)
	if title == "" {
		return nil, rest, errEntrySkipped
	}
	return scan.Record{"id": id, "title": title, "dir": dir}, rest, nil
}

// heroic is the shared adapter behind the four Heroic-managed sources. The
// variants differ only in catalogue file, runner name and artwork layout.
type heroic struct {
	kind    detect.Source
	library string
	icons   string
	runner  string
	flatpak bool
	step    scan.StepFunc
	// GOG ships a per-game icon png; the other stores ship box art jpgs.
	iconArt bool
	log     *zap.Logger
}

// NewHeroicGOG reads GOG games installed through Heroic.
func NewHeroicGOG(dirs detect.Dirs, log *zap.Logger) detect.Launcher {
	return newHeroic(dirs, log, detect.HeroicGOG, "gog_store/installed.json", "gog", gogInstalledStep, true)
}

// NewHeroicEpic reads Epic games installed through Heroic's legendary runner.
func NewHeroicEpic(dirs detect.Dirs, log *zap.Logger) detect.Launcher {
	return newHeroic(dirs, log, detect.HeroicEpic, "store_cache/legendary_library.json", "legendary", storeLibraryStep, false)
}

// NewHeroicAmazon reads Amazon games installed through Heroic's nile runner.
func NewHeroicAmazon(dirs detect.Dirs, log *zap.Logger) detect.Launcher {
	return newHeroic(dirs, log, detect.HeroicAmazon, "store_cache/nile_library.json", "nile", storeLibraryStep, false)
}

// NewHeroicSideload reads apps sideloaded into Heroic.
func NewHeroicSideload(dirs detect.Dirs, log *zap.Logger) detect.Launcher {
	return newHeroic(dirs, log, detect.HeroicSideload, "sideload_apps/library.json", "sideload", sideloadLibraryStep, false)
}

func newHeroic(dirs detect.Dirs, log *zap.Logger, kind detect.Source, libraryRel, runner string, step scan.StepFunc, iconArt bool) *heroic {
	configDir, flatpak := heroicConfigDir(dirs)
	return &heroic{
		kind:    kind,
		library: filepath.Join(configDir, libraryRel),
		icons:   filepath.Join(configDir, "icons"),
		runner:  runner,
		flatpak: flatpak,
		step:    step,
		iconArt: iconArt,
		log:     log,
	}
}

func (h *heroic) Kind() detect.Source { return h.kind }

func (h *heroic) Detected() bool { return paths.IfFile(h.library) != "" }

func (h *heroic) Root() string { return filepath.Dir(h.library) }

func (h *heroic) Games() ([]detect.Game, error) {
	records, err := scan.ScanFile(h.library, h.step)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		h.log.Warn("no games parsed from library",
			zap.Stringer("source", h.kind),
			zap.String("library", h.library))
	}

	games := make([]detect.Game, 0, len(records))
	for _, rec := range records {
		id := rec["id"]
		game := detect.Game{
			Title:      rec["title"],
			Source:     h.kind,
			InstallDir: paths.IfDir(rec["dir"]),
			Launch:     heroicLaunch(h.runner, id, h.flatpak),
		}
		if h.iconArt {
			game.Icon = paths.IfFile(filepath.Join(h.icons, id+".png"))
		} else {
			game.BoxArt = paths.IfFile(filepath.Join(h.icons, id+".jpg"))
		}
		games = append(games, game)
	}
	return games, nil
}
