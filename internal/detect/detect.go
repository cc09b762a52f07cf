// Package detect defines the data model for detected games and the
// aggregator that runs source adapters.
package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source identifies a supported game launcher.
type Source int

const (
	Steam Source = iota
	SteamShortcuts
	HeroicGOG
	HeroicEpic
	HeroicAmazon
	HeroicSideload
	Lutris
	Bottles
	Itch
	MinecraftPrism
	MinecraftAT
)

// Sources lists every supported source in display order.
func Sources() []Source {
	return []Source{
		Steam, SteamShortcuts,
		HeroicGOG, HeroicEpic, HeroicAmazon, HeroicSideload,
		Lutris, Bottles, Itch,
		MinecraftPrism, MinecraftAT,
	}
}

var sourceNames = map[Source]string{
	Steam:          "Steam",
	SteamShortcuts: "Steam (non-Steam games)",
	HeroicGOG:      "Heroic Games Launcher (GOG)",
	HeroicEpic:     "Heroic Games Launcher (Epic Games)",
	HeroicAmazon:   "Heroic Games Launcher (Amazon Games)",
	HeroicSideload: "Heroic Games Launcher (sideloaded)",
	Lutris:         "Lutris",
	Bottles:        "Bottles",
	Itch:           "itch",
	MinecraftPrism: "Minecraft (Prism Launcher)",
	MinecraftAT:    "Minecraft (ATLauncher)",
}

var sourceSlugs = map[Source]string{
	Steam:          "steam",
	SteamShortcuts: "steam-shortcuts",
	HeroicGOG:      "heroic-gog",
	HeroicEpic:     "heroic-epic",
	HeroicAmazon:   "heroic-amazon",
	HeroicSideload: "heroic-sideload",
	Lutris:         "lutris",
	Bottles:        "bottles",
	Itch:           "itch",
	MinecraftPrism: "minecraft-prism",
	MinecraftAT:    "minecraft-atlauncher",
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// Slug returns the stable machine-readable name used in config files and on
// the command line.
func (s Source) Slug() string {
	return sourceSlugs[s]
}

// MarshalJSON encodes the source as its slug.
func (s Source) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.Slug() + `"`), nil
}

// ParseSource resolves a slug back to its Source.
func ParseSource(slug string) (Source, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for src, candidate := range sourceSlugs {
		if candidate == slug {
			return src, nil
		}
	}
	return 0, fmt.Errorf("unknown source %q", slug)
}

// LaunchSpec holds the argv and extra environment needed to start a game.
// It is data only; nothing in this module spawns processes.
type LaunchSpec struct {
	Args []string `json:"args"`
	Env  []string `json:"env,omitempty"`
}

// Command builds a LaunchSpec for a plain executable.
func Command(name string, args []string, env []string) LaunchSpec {
	return LaunchSpec{Args: append([]string{name}, args...), Env: env}
}

// FlatpakCommand builds a LaunchSpec that runs appID through flatpak.
func FlatpakCommand(appID string, flatpakArgs, args []string, env []string) LaunchSpec {
	argv := append([]string{"flatpak", "run"}, flatpakArgs...)
	argv = append(argv, appID)
	argv = append(argv, args...)
	return LaunchSpec{Args: argv, Env: env}
}

// Game is one detected title. Path fields are empty when the launcher does
// not provide them or the file is missing on disk.
type Game struct {
	Title      string     `json:"title"`
	Source     Source     `json:"source"`
	InstallDir string     `json:"install_dir,omitempty"`
	Icon       string     `json:"icon,omitempty"`
	BoxArt     string     `json:"box_art,omitempty"`
	Launch     LaunchSpec `json:"launch"`
}

// Launcher is implemented by each source adapter. Detected is a cheap
// existence probe; Games does the actual catalogue work and may fail without
// affecting other sources.
type Launcher interface {
	Kind() Source
	Detected() bool
	Games() ([]Game, error)
}

// RootReporter is implemented by adapters that can name the directory their
// catalogue lives under, for watch mode.
type RootReporter interface {
	Root() string
}

// Dirs carries the environment roots adapters search. Passing them in
// explicitly keeps detection deterministic under test.
type Dirs struct {
	Home   string
	Config string
	Cache  string
	Data   string
}

// DefaultDirs resolves the XDG base directories for the current user.
func DefaultDirs() (Dirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Dirs{}, fmt.Errorf("resolving home directory: %w", err)
	}
	return Dirs{
		Home:   home,
		Config: envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config")),
		Cache:  envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache")),
		Data:   envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share")),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
