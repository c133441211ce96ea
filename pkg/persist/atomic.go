package persist

import (
	"os"
)

// writeAtomic writes data to "<path>_", fsyncs,
// and renames over path. A failure at any step leaves the original
// file (if any) untouched.
func writeAtomic(path string, data []byte) error {
	tmp := path + "_"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
