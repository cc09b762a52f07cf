package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresWatchableRoot(t *testing.T) {
	_, err := New([]string{"/does/not/exist"}, time.Millisecond, nil)
	assert.Error(t, err)

	w, err := New([]string{"/does/not/exist", t.TempDir()}, time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestRunCoalescesEvents(t *testing.T) {
	root := t.TempDir()
	w, err := New([]string{root}, 50*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func() { fired <- struct{}{} })
	}()

	// a burst of writes should collapse into one callback
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "library.json"), []byte("x"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no change callback after filesystem activity")
	}

	// quiet period: no second callback pending
	select {
	case <-fired:
		t.Fatal("burst was not coalesced")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
