package launchers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamescout/internal/detect"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestHeroicEpic(t *testing.T) {
	dirs := detect.Dirs{Home: t.TempDir(), Config: t.TempDir()}
	heroicDir := filepath.Join(dirs.Config, "heroic")
	installDir := filepath.Join(t.TempDir(), "FallGuys")
	require.NoError(t, os.MkdirAll(installDir, 0o755))

	writeFile(t, filepath.Join(heroicDir, "store_cache", "legendary_library.json"), `{
	  "library": [
	    {
	      "app_name": "fallguys01",
	      "install_path": "`+installDir+`",
	      "title": "Fall Guys™",
	      "is_installed": true
	    },
	    {
	      "app_name": "rocket02",
	      "install_path": "/nowhere",
	      "title": "Rocket League",
	      "is_installed": false
	    },
	    {
	      "app_name": "hades03",
	      "install_path": "/also/nowhere",
	      "title": "Hades",
	      "is_installed": true
	    }
	  ]
	}`)
	writeFile(t, filepath.Join(heroicDir, "icons", "fallguys01.jpg"), "jpg")

	launcher := NewHeroicEpic(dirs, zap.NewNop())
	require.True(t, launcher.Detected())
	assert.Equal(t, detect.HeroicEpic, launcher.Kind())

	games, err := launcher.Games()
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "Fall Guys", games[0].Title)
	assert.Equal(t, installDir, games[0].InstallDir)
	assert.Equal(t, filepath.Join(heroicDir, "icons", "fallguys01.jpg"), games[0].BoxArt)
	assert.Equal(t, []string{"xdg-open", "heroic://launch/legendary/fallguys01"}, games[0].Launch.Args)

	assert.Equal(t, "Hades", games[1].Title)
	assert.Empty(t, games[1].InstallDir)
	assert.Empty(t, games[1].BoxArt)
}

func TestHeroicGOGDerivesTitleFromInstallPath(t *testing.T) {
	dirs := detect.Dirs{Home: t.TempDir(), Config: t.TempDir()}
	heroicDir := filepath.Join(dirs.Config, "heroic")

	writeFile(t, filepath.Join(heroicDir, "gog_store", "installed.json"), `{
	  "installed": [
	    {
	      "install_path": "/games/Bread & Fred Demo",
	      "appName": "1234567890"
	    }
	  ]
	}`)
	writeFile(t, filepath.Join(heroicDir, "icons", "1234567890.png"), "png")

	launcher := NewHeroicGOG(dirs, zap.NewNop())
	require.True(t, launcher.Detected())

	games, err := launcher.Games()
	require.NoError(t, err)
	require.Len(t, games, 1)

	assert.Equal(t, "Bread & Fred Demo", games[0].Title)
	assert.Equal(t, filepath.Join(heroicDir, "icons", "1234567890.png"), games[0].Icon)
	assert.Empty(t, games[0].BoxArt)
	assert.Equal(t, []string{"xdg-open", "heroic://launch/gog/1234567890"}, games[0].Launch.Args)
}

func TestHeroicSideloadFieldOrder(t *testing.T) {
	dirs := detect.Dirs{Home: t.TempDir(), Config: t.TempDir()}
	heroicDir := filepath.Join(dirs.Config, "heroic")

	writeFile(t, filepath.Join(heroicDir, "sideload_apps", "library.json"), `{
	  "games": [
	    {
	      "app_name": "rfom",
	      "title": "Resistance - Fall of Man™",
	      "folder_name": "/emu/rpcs3/rfom",
	      "is_installed": true
	    }
	  ]
	}`)

	launcher := NewHeroicSideload(dirs, zap.NewNop())
	require.True(t, launcher.Detected())

	games, err := launcher.Games()
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Resistance - Fall of Man", games[0].Title)
	assert.Equal(t, []string{"xdg-open", "heroic://launch/sideload/rfom"}, games[0].Launch.Args)
}

func TestHeroicFlatpakFallback(t *testing.T) {
	dirs := detect.Dirs{
		Home:   t.TempDir(),
		Config: "/does/not/exist",
	}
	heroicDir := filepath.Join(dirs.Home, ".var/app", heroicFlatpakID, "config/heroic")
	writeFile(t, filepath.Join(heroicDir, "store_cache", "nile_library.json"), `{
	  "library": [
	    {
	      "app_name": "slug01",
	      "install_path": "/games/metal-slug",
	      "title": "Metal Slug",
	      "is_installed": true
	    }
	  ]
	}`)

	launcher := NewHeroicAmazon(dirs, zap.NewNop())
	require.True(t, launcher.Detected())

	games, err := launcher.Games()
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "flatpak", games[0].Launch.Args[0])
	assert.Contains(t, games[0].Launch.Args, "heroic://launch/nile/slug01")
}

func TestHeroicNotDetectedWithoutLibrary(t *testing.T) {
	dirs := detect.Dirs{Home: t.TempDir(), Config: t.TempDir()}
	assert.False(t, NewHeroicEpic(dirs, zap.NewNop()).Detected())
}
