package launchers

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"gamescout/internal/detect"
	"gamescout/internal/paths"
	"gamescout/internal/scan"
)

const (
	prismFlatpakID = "org.prismlauncher.PrismLauncher"
	atFlatpakID    = "com.atlauncher.ATLauncher"
)

// minecraftTitle prefixes an instance name so modpack entries are
// recognisable next to regular games.
func minecraftTitle(instance string) string {
	return "Minecraft: " + instance
}

// MinecraftPrism reads Prism Launcher instances. The instances directory is
// named in prismlauncher.cfg and may be relative to the launcher root.
type MinecraftPrism struct {
	root    string
	config  string
	flatpak bool
	log     *zap.Logger
}

// NewMinecraftPrism builds the Prism Launcher adapter.
func NewMinecraftPrism(dirs detect.Dirs, log *zap.Logger) *MinecraftPrism {
	root, flatpak := fallbackDir(
		filepath.Join(dirs.Data, "PrismLauncher"),
		filepath.Join(dirs.Home, ".var/app", prismFlatpakID, "data/PrismLauncher"),
	)
	return &MinecraftPrism{
		root:    root,
		config:  filepath.Join(root, "prismlauncher.cfg"),
		flatpak: flatpak,
		log:     log,
	}
}

func (m *MinecraftPrism) Kind() detect.Source { return detect.MinecraftPrism }

func (m *MinecraftPrism) Detected() bool { return paths.IfFile(m.config) != "" }

func (m *MinecraftPrism) Root() string { return m.root }

func (m *MinecraftPrism) instancesDir() (string, error) {
	content, err := os.ReadFile(m.config)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", m.config, err)
	}
	dir, _, err := scan.EqualsValue(string(content), "InstanceDir")
	if err != nil {
		return "", fmt.Errorf("no InstanceDir in %s: %w", m.config, err)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(m.root, dir)
	}
	return dir, nil
}

func (m *MinecraftPrism) Games() ([]detect.Game, error) {
	instances, err := m.instancesDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(instances)
	if err != nil {
		return nil, err
	}

	var games []detect.Game
	for _, entry := range entries {
		name := entry.Name()
		instanceDir := filepath.Join(instances, name)
		if !entry.IsDir() || paths.IfFile(filepath.Join(instanceDir, "instance.cfg")) == "" {
			continue
		}

		args := []string{"--launch", name}
		var launch detect.LaunchSpec
		if m.flatpak {
			launch = detect.FlatpakCommand(prismFlatpakID, nil, args, nil)
		} else {
			launch = detect.Command("prismlauncher", args, nil)
		}

		games = append(games, detect.Game{
			Title:      minecraftTitle(name),
			Source:     detect.MinecraftPrism,
			InstallDir: instanceDir,
			Icon:       prismInstanceIcon(instanceDir),
			Launch:     launch,
		})
	}
	if len(games) == 0 {
		m.log.Warn("no prism instances found", zap.String("instances", instances))
	}
	return games, nil
}

// prismInstanceIcon probes the icon locations different Prism versions and
// loader setups use.
func prismInstanceIcon(instanceDir string) string {
	candidates := []string{
		instanceDir,
		filepath.Join(instanceDir, "minecraft"),
		filepath.Join(instanceDir, ".minecraft"),
	}
	return paths.Resolve(candidates, "icon.png", paths.File)
}

// MinecraftAT reads ATLauncher instances from their instance.json files.
type MinecraftAT struct {
	instances string
	flatpak   bool
	log       *zap.Logger
}

// NewMinecraftAT builds the ATLauncher adapter.
func NewMinecraftAT(dirs detect.Dirs, log *zap.Logger) *MinecraftAT {
	root, flatpak := fallbackDir(
		filepath.Join(dirs.Data, "atlauncher"),
		filepath.Join(dirs.Home, ".var/app", atFlatpakID, "data"),
	)
	return &MinecraftAT{
		instances: filepath.Join(root, "instances"),
		flatpak:   flatpak,
		log:       log,
	}
}

func (m *MinecraftAT) Kind() detect.Source { return detect.MinecraftAT }

func (m *MinecraftAT) Detected() bool { return paths.IfDir(m.instances) != "" }

func (m *MinecraftAT) Root() string { return m.instances }

func (m *MinecraftAT) Games() ([]detect.Game, error) {
	entries, err := os.ReadDir(m.instances)
	if err != nil {
		return nil, err
	}

	var games []detect.Game
	for _, entry := range entries {
		instanceDir := filepath.Join(m.instances, entry.Name())
		config := filepath.Join(instanceDir, "instance.json")
		if paths.IfFile(config) == "" {
			continue
		}

		content, err := os.ReadFile(config)
		if err != nil {
			m.log.Warn("unreadable instance.json, skipping",
				zap.String("path", config), zap.Error(err))
			continue
		}
		name, _, err := scan.QuotedValue(string(content), "name")
		if err != nil {
			m.log.Warn("instance.json without a name, skipping",
				zap.String("path", config))
			continue
		}

		args := []string{"--launch", name}
		var launch detect.LaunchSpec
		if m.flatpak {
			launch = detect.FlatpakCommand(atFlatpakID, nil, args, nil)
		} else {
			launch = detect.Command("atlauncher", args, nil)
		}

		games = append(games, detect.Game{
			Title:      minecraftTitle(name),
			Source:     detect.MinecraftAT,
			InstallDir: instanceDir,
			Icon:       paths.FirstImage(instanceDir, "instance"),
			Launch:     launch,
		})
	}
	if len(games) == 0 {
		m.log.Warn("no atlauncher instances found", zap.String("instances", m.instances))
	}
	return games, nil
}
