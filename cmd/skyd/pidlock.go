package main

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const pidFileName = ".sky_pid"

// pidLock holds an exclusive flock on the process's pid file for the
// lifetime of the server; a second instance started against the same
// working directory fails to acquire it and exits immediately rather
// than racing the first instance's on-disk state.
type pidLock struct {
	f *os.File
}

// acquirePIDLock creates (or reuses) .sky_pid in dir, takes a
// non-blocking exclusive lock on it, and writes the current PID. The
// lock is released automatically if the process dies, unlike a bare
// O_EXCL create which would leave a stale file behind.
func acquirePIDLock(dir string) (*pidLock, error) {
	path := filepath.Join(dir, pidFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("pidlock: open %s: %w", path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("pidlock: another instance is already running against %s", dir)
	}
	if err := f.Truncate(0); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.WriteString(fmt.Sprintf("%d\n", os.Getpid())); err != nil {
		f.Close()
		return nil, err
	}
	return &pidLock{f: f}, nil
}

func (l *pidLock) release() {
	unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	l.f.Close()
}
