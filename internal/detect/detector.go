package detect

import (
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Detector aggregates a set of source adapters and answers queries over
// everything they find.
type Detector struct {
	launchers []Launcher
	log       *zap.Logger
}

// SourceGames pairs one source with the games it reported.
type SourceGames struct {
	Source Source `json:"source"`
	Games  []Game `json:"games"`
}

// NewDetector wraps the given adapters. A nil logger is replaced with a nop.
func NewDetector(log *zap.Logger, launchers ...Launcher) *Detector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Detector{launchers: launchers, log: log}
}

// Launchers returns every registered adapter, detected or not.
func (d *Detector) Launchers() []Launcher {
	return d.launchers
}

// Detected returns the adapters whose on-disk roots exist.
func (d *Detector) Detected() []Launcher {
	var out []Launcher
	for _, l := range d.launchers {
		if l.Detected() {
			out = append(out, l)
		}
	}
	return out
}

// AllGames runs every detected adapter and concatenates the results in
// registration order. Adapters run concurrently; one failing source is
// logged and contributes nothing rather than failing the whole pass.
func (d *Detector) AllGames() []Game {
	detected := d.Detected()
	results := make([][]Game, len(detected))

	var g errgroup.Group
	for i, l := range detected {
		g.Go(func() error {
			games, err := l.Games()
			if err != nil {
				d.log.Warn("source failed, skipping",
					zap.Stringer("source", l.Kind()),
					zap.Error(err))
				return nil
			}
			results[i] = games
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	var all []Game
	for _, games := range results {
		all = append(all, games...)
	}
	return all
}

// GamesWithBoxArt returns only the detected games that have box art on disk.
func (d *Detector) GamesWithBoxArt() []Game {
	var out []Game
	for _, game := range d.AllGames() {
		if game.BoxArt != "" {
			out = append(out, game)
		}
	}
	return out
}

// GamesBySource groups every detected game under its source, detected
// sources only, in registration order.
func (d *Detector) GamesBySource() []SourceGames {
	var out []SourceGames
	for _, l := range d.Detected() {
		games, err := l.Games()
		if err != nil {
			d.log.Warn("source failed, skipping",
				zap.Stringer("source", l.Kind()),
				zap.Error(err))
			continue
		}
		out = append(out, SourceGames{Source: l.Kind(), Games: games})
	}
	return out
}

// GamesFor returns the games of a single source. ok is false when the source
// is not registered or not detected.
func (d *Detector) GamesFor(src Source) (games []Game, ok bool) {
	for _, l := range d.launchers {
		if l.Kind() != src || !l.Detected() {
			continue
		}
		games, err := l.Games()
		if err != nil {
			d.log.Warn("source failed",
				zap.Stringer("source", src),
				zap.Error(err))
			return nil, false
		}
		return games, true
	}
	return nil, false
}

// WatchRoots collects the catalogue roots of every detected adapter that
// reports one.
func (d *Detector) WatchRoots() []string {
	var roots []string
	for _, l := range d.Detected() {
		if r, ok := l.(RootReporter); ok {
			if root := r.Root(); root != "" {
				roots = append(roots, root)
			}
		}
	}
	return roots
}
