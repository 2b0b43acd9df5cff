package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// HotReloader watches the running binary and reports when a newer build
// replaces it, so a development session can offer to restart.
type HotReloader struct {
	execPath    string
	startupTime time.Time
	interval    time.Duration
	stopCh      chan struct{}

	onTick      func()
	onNewBinary func()
}

// NewHotReloader creates a reloader that polls the current executable
// at the given interval. Returns nil if the executable path cannot be
// determined.
func NewHotReloader(interval time.Duration) *HotReloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	if real, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = real
	}

	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}

	return &HotReloader{
		execPath:    execPath,
		startupTime: info.ModTime(),
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// ExecPath returns the watched executable path.
func (h *HotReloader) ExecPath() string {
	return h.execPath
}

// StartupTime returns the binary's modification time at startup.
func (h *HotReloader) StartupTime() time.Time {
	return h.startupTime
}

// OnTick registers a callback invoked on every poll.
func (h *HotReloader) OnTick(fn func()) {
	h.onTick = fn
}

// OnNewBinary registers a callback invoked once when a newer binary is
// detected, then starts the polling loop.
func (h *HotReloader) OnNewBinary(fn func()) {
	h.onNewBinary = fn
	go h.watch()
}

// Stop ends the polling loop.
func (h *HotReloader) Stop() {
	close(h.stopCh)
}

func (h *HotReloader) watch() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			if h.onTick != nil {
				h.onTick()
			}
			info, err := os.Stat(h.execPath)
			if err != nil {
				continue
			}
			if info.ModTime().After(h.startupTime) {
				if h.onNewBinary != nil {
					h.onNewBinary()
				}
				return
			}
		}
	}
}

// Restart replaces the current process with a fresh copy of the binary.
func (h *HotReloader) Restart() error {
	cmd := exec.Command(h.execPath, os.Args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return err
	}
	os.Exit(0)
	return nil
}
