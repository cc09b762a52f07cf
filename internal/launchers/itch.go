package launchers

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"gamescout/internal/detect"
	"gamescout/internal/paths"
	"gamescout/internal/scan"
)

const itchFlatpakID = "io.itch.itch"

const butlerQuery = `
	SELECT g.title, il.path AS base_path, c.verdict
	FROM caves c, games g, install_locations il
	WHERE g.id = c.game_id AND il.id = c.install_location_id`

// Itch reads the butler.db sqlite database the itch app maintains. The
// install verdict is a JSON blob; only three fields are needed from it, so
// it goes through the key scanner rather than a JSON decoder.
type Itch struct {
	butlerDB string
	flatpak  bool
	log      *zap.Logger
}

// NewItch builds the itch adapter.
func NewItch(dirs detect.Dirs, log *zap.Logger) *Itch {
	configDir, flatpak := fallbackDir(
		filepath.Join(dirs.Config, "itch"),
		filepath.Join(dirs.Home, ".var/app", itchFlatpakID, "config/itch"),
	)
	return &Itch{
		butlerDB: filepath.Join(configDir, "db", "butler.db"),
		flatpak:  flatpak,
		log:      log,
	}
}

func (i *Itch) Kind() detect.Source { return detect.Itch }

func (i *Itch) Detected() bool { return paths.IfFile(i.butlerDB) != "" }

func (i *Itch) Root() string { return filepath.Dir(i.butlerDB) }

// parseVerdict pulls the install directory, executable and optional script
// interpreter out of a cave's verdict JSON.
func parseVerdict(verdict string) (dir, bin, interpreter string, err error) {
	dir, rest, err := scan.QuotedValue(verdict, "basePath")
	if err != nil {
		return "", "", "", fmt.Errorf("verdict without basePath: %w", err)
	}
	bin, rest, err = scan.QuotedValue(rest, "path")
	if err != nil {
		return "", "", "", fmt.Errorf("verdict without candidate path: %w", err)
	}
	// Script candidates carry their interpreter; binaries do not.
	if v, _, ierr := scan.QuotedValue(rest, "interpreter"); ierr == nil {
		interpreter = v
	}
	return dir, bin, interpreter, nil
}

func (i *Itch) Games() ([]detect.Game, error) {
	db, err := sql.Open("sqlite", "file:"+i.butlerDB+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening butler.db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(butlerQuery)
	if err != nil {
		return nil, fmt.Errorf("querying butler.db: %w", err)
	}
	defer rows.Close()

	var games []detect.Game
	for rows.Next() {
		var title, basePath, verdict sql.NullString
		if err := rows.Scan(&title, &basePath, &verdict); err != nil {
			return nil, fmt.Errorf("reading butler.db row: %w", err)
		}

		dir, bin, interpreter, err := parseVerdict(verdict.String)
		if err != nil {
			i.log.Warn("skipping cave with unparsable verdict",
				zap.String("title", title.String), zap.Error(err))
			continue
		}

		binPath := filepath.Join(dir, bin)
		var launch detect.LaunchSpec
		if interpreter != "" {
			launch = detect.Command(interpreter, []string{binPath}, nil)
		} else {
			launch = detect.Command(binPath, nil, nil)
		}

		games = append(games, detect.Game{
			Title:      scan.CleanTitle(title.String),
			Source:     detect.Itch,
			InstallDir: dir,
			Launch:     launch,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating butler.db rows: %w", err)
	}
	return games, nil
}
