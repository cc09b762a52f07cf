package detect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeLauncher struct {
	kind     Source
	detected bool
	games    []Game
	err      error
	root     string
}

func (f *fakeLauncher) Kind() Source           { return f.kind }
func (f *fakeLauncher) Detected() bool         { return f.detected }
func (f *fakeLauncher) Games() ([]Game, error) { return f.games, f.err }
func (f *fakeLauncher) Root() string           { return f.root }

func game(title string, src Source) Game {
	return Game{Title: title, Source: src}
}

func TestDetectorDetected(t *testing.T) {
	steam := &fakeLauncher{kind: Steam, detected: true}
	lutris := &fakeLauncher{kind: Lutris, detected: false}

	d := NewDetector(nil, steam, lutris)
	detected := d.Detected()
	require.Len(t, detected, 1)
	assert.Equal(t, Steam, detected[0].Kind())
	assert.Len(t, d.Launchers(), 2)
}

func TestDetectorAllGames(t *testing.T) {
	d := NewDetector(nil,
		&fakeLauncher{kind: Steam, detected: true, games: []Game{game("A", Steam), game("B", Steam)}},
		&fakeLauncher{kind: Lutris, detected: false, games: []Game{game("hidden", Lutris)}},
		&fakeLauncher{kind: Bottles, detected: true, games: []Game{game("C", Bottles)}},
	)

	games := d.AllGames()
	require.Len(t, games, 3)
	// concatenation preserves registration order even though sources run
	// concurrently
	assert.Equal(t, "A", games[0].Title)
	assert.Equal(t, "B", games[1].Title)
	assert.Equal(t, "C", games[2].Title)
}

func TestDetectorAllGamesBestEffort(t *testing.T) {
	d := NewDetector(nil,
		&fakeLauncher{kind: Steam, detected: true, err: errors.New("corrupt manifest")},
		&fakeLauncher{kind: Bottles, detected: true, games: []Game{game("C", Bottles)}},
	)

	games := d.AllGames()
	require.Len(t, games, 1)
	assert.Equal(t, "C", games[0].Title)
}

func TestDetectorGamesWithBoxArt(t *testing.T) {
	withArt := Game{Title: "A", Source: Steam, BoxArt: "/art/a.jpg"}
	d := NewDetector(nil,
		&fakeLauncher{kind: Steam, detected: true, games: []Game{withArt, game("B", Steam)}},
	)

	games := d.GamesWithBoxArt()
	require.Len(t, games, 1)
	assert.Equal(t, "A", games[0].Title)
}

func TestDetectorGamesBySource(t *testing.T) {
	d := NewDetector(nil,
		&fakeLauncher{kind: Steam, detected: true, games: []Game{game("A", Steam)}},
		&fakeLauncher{kind: Lutris, detected: true, err: errors.New("boom")},
		&fakeLauncher{kind: Bottles, detected: true, games: []Game{game("C", Bottles)}},
	)

	groups := d.GamesBySource()
	require.Len(t, groups, 2)
	assert.Equal(t, Steam, groups[0].Source)
	assert.Equal(t, Bottles, groups[1].Source)
}

func TestDetectorGamesFor(t *testing.T) {
	d := NewDetector(nil,
		&fakeLauncher{kind: Steam, detected: true, games: []Game{game("A", Steam)}},
		&fakeLauncher{kind: Lutris, detected: false},
	)

	games, ok := d.GamesFor(Steam)
	require.True(t, ok)
	require.Len(t, games, 1)

	_, ok = d.GamesFor(Lutris)
	assert.False(t, ok)
	_, ok = d.GamesFor(Itch)
	assert.False(t, ok)
}

func TestDetectorWatchRoots(t *testing.T) {
	d := NewDetector(nil,
		&fakeLauncher{kind: Steam, detected: true, root: "/data/Steam"},
		&fakeLauncher{kind: Lutris, detected: false, root: "/ignored"},
		&fakeLauncher{kind: Bottles, detected: true},
	)

	assert.Equal(t, []string{"/data/Steam"}, d.WatchRoots())
}

func TestParseSource(t *testing.T) {
	for _, src := range Sources() {
		parsed, err := ParseSource(src.Slug())
		require.NoError(t, err)
		assert.Equal(t, src, parsed)
	}

	parsed, err := ParseSource(" Steam ")
	require.NoError(t, err)
	assert.Equal(t, Steam, parsed)

	_, err = ParseSource("gamecube")
	assert.Error(t, err)
}

func TestSourceJSON(t *testing.T) {
	b, err := Steam.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"steam"`, string(b))
}
