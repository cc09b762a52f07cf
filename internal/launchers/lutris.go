package launchers

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"gamescout/internal/detect"
	"gamescout/internal/paths"
	"gamescout/internal/scan"
)

const lutrisFlatpakID = "net.lutris.Lutris"

const pgaQuery = `SELECT id, name, slug, installer_slug, directory FROM games`

// Lutris reads the pga.db sqlite database Lutris keeps its library in.
type Lutris struct {
	pgaDB     string
	boxArtDir string
	iconsDir  string
	flatpak   bool
	log       *zap.Logger
}

// NewLutris builds the Lutris adapter. Lutris spreads its files over the
// data, config and cache roots and moved the cover art directory between
// releases, hence the fallback chain.
func NewLutris(dirs detect.Dirs, log *zap.Logger) *Lutris {
	configDir := filepath.Join(dirs.Config, "lutris")
	cacheDir := filepath.Join(dirs.Cache, "lutris")
	dataDir := filepath.Join(dirs.Data, "lutris")

	boxArtDir := filepath.Join(dataDir, "coverart")
	pgaDB := filepath.Join(dataDir, "pga.db")
	iconsDir := filepath.Join(dataDir, "icons/hicolor/128x128/apps")

	flatpak := false
	if paths.IfDir(configDir) == "" && (paths.IfDir(cacheDir) == "" || paths.IfDir(dataDir) == "") {
		flatpak = true
		flatpakData := filepath.Join(dirs.Home, ".var/app", lutrisFlatpakID, "data")
		iconsDir = filepath.Join(flatpakData, "icons/hicolor/128x128/apps")
		boxArtDir = filepath.Join(flatpakData, "lutris/coverart")
		pgaDB = filepath.Join(flatpakData, "lutris/pga.db")
	}

	// Older releases kept cover art under config or cache.
	if paths.IfDir(configDir) != "" && paths.IfDir(boxArtDir) == "" {
		boxArtDir = filepath.Join(configDir, "coverart")
	}
	if paths.IfDir(cacheDir) != "" && paths.IfDir(boxArtDir) == "" {
		boxArtDir = filepath.Join(cacheDir, "coverart")
	}

	return &Lutris{
		pgaDB:     pgaDB,
		boxArtDir: boxArtDir,
		iconsDir:  iconsDir,
		flatpak:   flatpak,
		log:       log,
	}
}

func (l *Lutris) Kind() detect.Source { return detect.Lutris }

func (l *Lutris) Detected() bool {
	return paths.IfFile(l.pgaDB) != "" && paths.IfDir(l.boxArtDir) != ""
}

func (l *Lutris) Root() string { return filepath.Dir(l.pgaDB) }

func (l *Lutris) Games() ([]detect.Game, error) {
	db, err := sql.Open("sqlite", "file:"+l.pgaDB+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening pga.db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(pgaQuery)
	if err != nil {
		return nil, fmt.Errorf("querying pga.db: %w", err)
	}
	defer rows.Close()

	var games []detect.Game
	for rows.Next() {
		var id int64
		var name, slug, installerSlug, directory sql.NullString
		if err := rows.Scan(&id, &name, &slug, &installerSlug, &directory); err != nil {
			return nil, fmt.Errorf("reading pga.db row: %w", err)
		}

		runID := strconv.FormatInt(id, 10)
		title := scan.CleanTitle(name.String)
		if title == "" {
			title = scan.TitleFromSlug(slug.String)
		}

		// Artwork is keyed by installer slug when one exists, else by slug.
		var boxArt, icon string
		if installerSlug.String != "" {
			boxArt = paths.FirstImage(l.boxArtDir, installerSlug.String)
			icon = paths.FirstImage(l.iconsDir, "lutris_"+installerSlug.String)
		}
		if boxArt == "" {
			boxArt = paths.FirstImage(l.boxArtDir, slug.String)
		}
		if icon == "" {
			icon = paths.FirstImage(l.iconsDir, "lutris_"+slug.String)
		}

		env := []string{"LUTRIS_SKIP_INIT=1"}
		args := []string{"lutris:rungameid/" + runID}
		var launch detect.LaunchSpec
		if l.flatpak {
			launch = detect.FlatpakCommand(lutrisFlatpakID, nil, args, env)
		} else {
			launch = detect.Command("lutris", args, env)
		}

		games = append(games, detect.Game{
			Title:      title,
			Source:     detect.Lutris,
			InstallDir: paths.IfDir(directory.String),
			Icon:       icon,
			BoxArt:     boxArt,
			Launch:     launch,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pga.db rows: %w", err)
	}
	if len(games) == 0 {
		l.log.Warn("no games found in pga.db", zap.String("db", l.pgaDB))
	}
	return games, nil
}
