package main

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/skytable/skyd/pkg/config"
	"github.com/skytable/skyd/pkg/log"
)

// checkRlimit compares the process's RLIMIT_NOFILE soft limit against
// maxcon. Each connection holds one file descriptor, plus a handful
// more for listeners and open table files, so a soft limit at or below
// maxcon means the process cannot actually reach its configured
// ceiling. Development mode only warns; production mode refuses to
// start.
func checkRlimit(mode config.Mode, maxcon int) error {
	var rlim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rlim); err != nil {
		return fmt.Errorf("rlimit: failed to read RLIMIT_NOFILE: %w", err)
	}
	if rlim.Cur > uint64(maxcon) {
		return nil
	}
	msg := fmt.Sprintf("RLIMIT_NOFILE soft limit (%d) does not comfortably exceed maxcon (%d)", rlim.Cur, maxcon)
	if mode == config.ModeProd {
		return fmt.Errorf("rlimit: %s", msg)
	}
	log.Warn(msg)
	return nil
}
