package persist

import (
	"errors"
	"fmt"
)

// ErrDuplicateSnapshotTimestamp is returned when the snapshot scheduler
// would create a directory name identical to one that already exists,
// meaning the server clock moved backward since the last snapshot.
var ErrDuplicateSnapshotTimestamp = errors.New("persist: duplicate snapshot timestamp (server clock moved back)")

// ErrRemoteSnapshotExists is returned when a caller-supplied remote
// snapshot name collides with one already in flight or already taken.
var ErrRemoteSnapshotExists = errors.New("persist: remote snapshot name already in use")

// ErrInvalidSnapshotName is returned when a caller-supplied remote
// snapshot name isn't a plain path segment, so it can't be used to
// build a path under the remote snapshot directory.
var ErrInvalidSnapshotName = errors.New("persist: invalid snapshot name")

// ErrBadEndianMark is returned when a PRELOAD file's leading byte isn't
// one of the two recognized endian marks.
var ErrBadEndianMark = errors.New("persist: unrecognized endian mark")

// MalformedFileError wraps a decode failure with the offending path so
// startup recovery can report exactly which file is broken.
type MalformedFileError struct {
	Path string
	Err  error
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("persist: malformed file %s: %v", e.Path, e.Err)
}

func (e *MalformedFileError) Unwrap() error { return e.Err }

func malformed(path string, err error) error {
	return &MalformedFileError{Path: path, Err: err}
}

var errTruncated = errors.New("unexpected end of file")
