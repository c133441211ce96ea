package engine

import (
	"errors"
	"strconv"
	"strings"

	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/persist"
	"github.com/skytable/skyd/pkg/protocol"
)

// adminMkSnap implements `MKSNAP` (local, timestamped) and `MKSNAP
// name` (remote, named). Both go through the same SnapshotScheduler
// flush path; a duplicate timestamp or name is reported as
// duplicate-snapshot rather than a generic action-error.
func adminMkSnap(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if e.reg.Snapshots == nil {
		w.Code(protocol.RespSnapshotDisabled)
		return
	}
	if len(args) > 1 {
		w.Code(protocol.RespActionError)
		return
	}

	var err error
	if len(args) == 1 {
		err = e.reg.Snapshots.CreateRemote(args[0].String())
	} else {
		err = e.reg.Snapshots.CreateLocal()
	}
	if err != nil {
		switch {
		case errors.Is(err, persist.ErrDuplicateSnapshotTimestamp), errors.Is(err, persist.ErrRemoteSnapshotExists):
			w.Code(protocol.RespDuplicateSnapshot)
		case errors.Is(err, persist.ErrInvalidSnapshotName):
			w.Code(protocol.RespInvalidSnapshotName)
		default:
			w.Code(protocol.RespServerError)
		}
		return
	}
	w.Code(protocol.RespOkay)
}

// adminSys implements `SYS INFO` (basic server status) and `SYS
// METRIC` (a small set of live counters); anything else is an unknown
// DDL-style query since SYS shares the admin namespace with MKSNAP
// rather than the data verb namespace.
func adminSys(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	switch strings.ToUpper(args[0].String()) {
	case "INFO":
		okay := "1"
		if !e.reg.StateOkay() {
			okay = "0"
		}
		w.StrArray([]string{okay, strconv.Itoa(len(e.reg.Memstore.KeyspaceIDs()))})
	case "METRIC":
		n := 0
		e.reg.Memstore.Range(func(_ string, ref *model.KeyspaceRef) bool {
			n += ref.Keyspace.Len()
			return true
		})
		w.StrArray([]string{strconv.Itoa(n)})
	default:
		w.Code(protocol.RespUnknownDDLQuery)
	}
}
