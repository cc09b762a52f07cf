package launchers

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"gamescout/internal/detect"
	"gamescout/internal/paths"
	"gamescout/internal/scan"
)

const steamFlatpakID = "com.valvesoftware.Steam"

func steamRoot(dirs detect.Dirs) (string, bool) {
	return fallbackDir(
		filepath.Join(dirs.Data, "Steam"),
		filepath.Join(dirs.Home, ".var/app", steamFlatpakID, "data/Steam"),
	)
}

// steamappsIn returns the steamapps directory under parent, preferring the
// capitalised spelling some installs use.
func steamappsIn(parent string) string {
	if p := paths.IfDir(filepath.Join(parent, "Steamapps")); p != "" {
		return p
	}
	return filepath.Join(parent, "steamapps")
}

// isManifestFilename reports whether name is exactly appmanifest_<id>.acf.
// Editors and Steam itself leave tmp copies next to the real manifests.
func isManifestFilename(name string) bool {
	id, ok := strings.CutPrefix(name, "appmanifest_")
	if !ok {
		return false
	}
	id, ok = strings.CutSuffix(id, ".acf")
	if !ok || id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		if !scan.IsAlphanumeric(id[i]) {
			return false
		}
	}
	return true
}

func manifestStep(text string) (scan.Record, string, error) {
	id, rest, err := scan.QuotedValue(text, "appid")
	if err != nil {
		return nil, text, err
	}
	title, rest, err := scan.QuotedValue(rest, "name")
	if err != nil {
		return nil, text, err
	}
	dir, rest, err := scan.QuotedValue(rest, "installdir")
	if err != nil {
		return nil, text, err
	}
	return scan.Record{"id": id, "title": scan.CleanTitle(title), "installdir": dir}, rest, nil
}

func steamLaunch(appID string, flatpak bool) detect.LaunchSpec {
	arg := "steam://rungameid/" + appID
	if flatpak {
		return detect.FlatpakCommand(steamFlatpakID, nil, []string{arg}, nil)
	}
	return detect.Command("steam", []string{arg}, nil)
}

// Steam reads app manifests from every library listed in libraryfolders.vdf.
type Steam struct {
	steamDir       string
	extraLibraries []string
	flatpak        bool
	log            *zap.Logger
}

// NewSteam builds the Steam adapter. extraLibraries adds library roots on
// top of those found in libraryfolders.vdf.
func NewSteam(dirs detect.Dirs, extraLibraries []string, log *zap.Logger) *Steam {
	root, flatpak := steamRoot(dirs)
	return &Steam{
		steamDir:       root,
		extraLibraries: extraLibraries,
		flatpak:        flatpak,
		log:            log,
	}
}

func (s *Steam) Kind() detect.Source { return detect.Steam }

func (s *Steam) Detected() bool { return paths.IfDir(s.steamDir) != "" }

func (s *Steam) Root() string { return s.steamDir }

// libraries collects every library root named in libraryfolders.vdf, plus
// the configured extras.
func (s *Steam) libraries() ([]string, error) {
	vdf := filepath.Join(steamappsIn(s.steamDir), "libraryfolders.vdf")
	f, err := os.Open(vdf)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var libraries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if path, _, err := scan.QuotedValue(scanner.Text(), "path"); err == nil {
			libraries = append(libraries, path)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return append(libraries, s.extraLibraries...), nil
}

// images finds box art and icon for an app id, checking the flat legacy
// librarycache layout first and then the per-app subdirectory layout.
func (s *Steam) images(appID string) (boxArt, icon string) {
	cache := filepath.Join(s.steamDir, "appcache", "librarycache")
	boxArt = paths.IfFile(filepath.Join(cache, appID+"_library_600x900.jpg"))
	icon = paths.IfFile(filepath.Join(cache, appID+"_icon.jpg"))

	root := filepath.Join(cache, appID)
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}
		if d.IsDir() {
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil || strings.Count(rel, string(filepath.Separator)) >= 1 {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		switch {
		case name == "library_600x900.jpg" || name == "library_capsule.jpg":
			boxArt = p
		// Icon filenames in the new layout are bare sha1 hex names, so
		// length is the only usable signal.
		case len(name) == 44 && strings.HasSuffix(name, ".jpg"):
			icon = p
		}
		return nil
	})
	return boxArt, icon
}

func (s *Steam) gamesInLibrary(library string) []detect.Game {
	apps := steamappsIn(library)
	entries, err := os.ReadDir(apps)
	if err != nil {
		s.log.Warn("unreadable steam library, skipping",
			zap.String("library", library), zap.Error(err))
		return nil
	}

	var games []detect.Game
	for _, entry := range entries {
		if !isManifestFilename(entry.Name()) {
			continue
		}
		manifest := filepath.Join(apps, entry.Name())
		records, err := scan.ScanFile(manifest, manifestStep)
		if err != nil || len(records) == 0 {
			s.log.Warn("unparsable app manifest, skipping",
				zap.String("manifest", manifest), zap.Error(err))
			continue
		}
		rec := records[0]

		boxArt, icon := s.images(rec["id"])
		// Entries without box art are runtimes, redistributables and other
		// non-games.
		if boxArt == "" {
			continue
		}

		games = append(games, detect.Game{
			Title:      rec["title"],
			Source:     detect.Steam,
			InstallDir: paths.IfDir(filepath.Join(apps, "common", rec["installdir"])),
			Icon:       icon,
			BoxArt:     boxArt,
			Launch:     steamLaunch(rec["id"], s.flatpak),
		})
	}
	return games
}

func (s *Steam) Games() ([]detect.Game, error) {
	libraries, err := s.libraries()
	if err != nil {
		return nil, err
	}
	if len(libraries) == 0 {
		s.log.Warn("no steam libraries found", zap.String("steam_dir", s.steamDir))
		return nil, nil
	}

	var games []detect.Game
	for _, library := range libraries {
		games = append(games, s.gamesInLibrary(library)...)
	}
	if len(games) == 0 {
		s.log.Warn("no steam games detected")
	}
	return games, nil
}
