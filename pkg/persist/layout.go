package persist

import "path/filepath"

// Directory and file names of the on-disk tree, rooted at a
// configurable data directory (conventionally "data/"):
//
//	<root>/
//	  ks/
//	    PRELOAD
//	    <ksid>/
//	      PARTMAP
//	      <tblid>
//	  snaps/<timestamp>/...
//	  rsnap/<name>/...
//	  backups/
const (
	ksDirName      = "ks"
	preloadName    = "PRELOAD"
	partmapName    = "PARTMAP"
	snapsDirName   = "snaps"
	rsnapDirName   = "rsnap"
	backupsDirName = "backups"
)

// Layout resolves every path the flush/recovery procedures touch,
// relative to a root data directory.
type Layout struct {
	Root string
}

// NewLayout constructs a Layout rooted at root.
func NewLayout(root string) *Layout { return &Layout{Root: root} }

func (l *Layout) KsDir() string { return filepath.Join(l.Root, ksDirName) }

func (l *Layout) PreloadPath() string { return filepath.Join(l.KsDir(), preloadName) }

func (l *Layout) KeyspaceDir(ksID string) string { return filepath.Join(l.KsDir(), ksID) }

func (l *Layout) PartmapPath(ksID string) string {
	return filepath.Join(l.KeyspaceDir(ksID), partmapName)
}

func (l *Layout) TablePath(ksID, tblID string) string {
	return filepath.Join(l.KeyspaceDir(ksID), tblID)
}

func (l *Layout) SnapsDir() string { return filepath.Join(l.Root, snapsDirName) }

func (l *Layout) SnapshotDir(name string) string { return filepath.Join(l.SnapsDir(), name) }

func (l *Layout) RSnapDir() string { return filepath.Join(l.Root, rsnapDirName) }

func (l *Layout) RemoteSnapshotDir(name string) string { return filepath.Join(l.RSnapDir(), name) }

func (l *Layout) BackupsDir() string { return filepath.Join(l.Root, backupsDirName) }
