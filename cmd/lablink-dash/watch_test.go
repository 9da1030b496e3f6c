package main

import (
	"path/filepath"
	"testing"
	"time"
)

func TestWatchLinkDirMissingDir(t *testing.T) {
	if cmd := watchLinkDir(filepath.Join(t.TempDir(), "nope")); cmd != nil {
		t.Error("watchLinkDir returned a command for a missing directory")
	}
}

func TestInitWatcherExistingDir(t *testing.T) {
	w := initWatcher(t.TempDir())
	if w == nil {
		t.Skip("fsnotify unavailable on this platform")
	}
	_ = w.Close()
}

func TestDebounceTimerStartsStopped(t *testing.T) {
	timer := newDebounceTimer()
	defer timer.Stop()

	select {
	case <-timer.C:
		t.Error("debounce timer fired before reset")
	case <-time.After(10 * time.Millisecond):
	}

	resetDebounceTimer(timer)
	select {
	case <-timer.C:
	case <-time.After(time.Second):
		t.Error("debounce timer did not fire after reset")
	}
}
