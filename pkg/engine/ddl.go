package engine

import (
	"sort"
	"strings"

	"github.com/skytable/skyd/pkg/log"
	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/protocol"
)

// parseModelSpec parses a `keymap(k,v)` token into the ModelCode it
// names. k is one of binstr/str; v is one of binstr/str/list<binstr>/
// list<str>. list<*> as a key is rejected by construction: the key
// grammar simply has no list form.
func parseModelSpec(spec string) (model.ModelCode, error) {
	const prefix, suffix = "keymap(", ")"
	if !strings.HasPrefix(spec, prefix) || !strings.HasSuffix(spec, suffix) || len(spec) <= len(prefix)+len(suffix)-1 {
		return 0, errBadModelSpec
	}
	inner := spec[len(prefix) : len(spec)-len(suffix)]
	parts := strings.SplitN(inner, ",", 2)
	if len(parts) != 2 {
		return 0, errBadModelSpec
	}
	k, v := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	var kEnc bool
	switch k {
	case "binstr":
		kEnc = false
	case "str":
		kEnc = true
	default:
		return 0, errBadModelSpec
	}

	var kind model.TableModel
	var vEnc bool
	switch v {
	case "binstr":
		kind, vEnc = model.ModelKV, false
	case "str":
		kind, vEnc = model.ModelKV, true
	case "list<binstr>":
		kind, vEnc = model.ModelKVList, false
	case "list<str>":
		kind, vEnc = model.ModelKVList, true
	default:
		return 0, errBadModelSpec
	}

	return model.ModelCodeFor(kind, kEnc, vEnc)
}

func ddlCreate(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) < 2 {
		w.Code(protocol.RespActionError)
		return
	}
	switch strings.ToUpper(args[0].String()) {
	case "TABLE":
		ddlCreateTable(e, sess, args[1:], w)
	case "KEYSPACE":
		ddlCreateKeyspace(e, sess, args[1:], w)
	default:
		w.Code(protocol.RespUnknownDDLQuery)
	}
}

func ddlCreateTable(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) < 2 || len(args) > 3 {
		w.Code(protocol.RespActionError)
		return
	}
	ksPart, tblID, err := parseEntity(args[0].String())
	if err != nil {
		writeErr(w, err)
		return
	}
	mc, err := parseModelSpec(args[1].String())
	if err != nil {
		w.Code(protocol.RespUnknownModel)
		return
	}
	storage := model.StoragePersistent
	if len(args) == 3 {
		if strings.ToUpper(args[2].String()) != "VOLATILE" {
			w.Code(protocol.RespActionError)
			return
		}
		storage = model.StorageVolatile
	}

	e.reg.LockFlush()
	defer e.reg.UnlockFlush()

	ksRef, err := e.resolveKeyspaceRef(sess, ksPart)
	if err != nil {
		writeErr(w, err)
		return
	}
	if ksRef.Keyspace.ID == model.SystemKeyspace {
		writeErr(w, model.ErrProtectedObject)
		return
	}
	tbl, err := model.NewTable(tblID, mc, storage)
	if err != nil {
		w.Code(protocol.RespUnknownModel)
		return
	}
	if err := ksRef.Keyspace.CreateTable(model.NewTableRef(tbl)); err != nil {
		writeErr(w, err)
		return
	}
	e.reg.PreloadTrip.Set()
	log.WithTable(tblID).Info().Str("keyspace", ksRef.Keyspace.ID).Msg("table created")
	w.Code(protocol.RespOkay)
}

func ddlCreateKeyspace(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	id := args[0].String()
	if err := model.ValidateKeyspaceID(id); err != nil {
		w.Code(protocol.RespBadContainerName)
		return
	}

	e.reg.LockFlush()
	defer e.reg.UnlockFlush()

	if err := e.reg.Memstore.CreateKeyspace(id); err != nil {
		writeErr(w, err)
		return
	}
	e.reg.PreloadTrip.Set()
	log.WithKeyspace(id).Info().Msg("keyspace created")
	w.Code(protocol.RespOkay)
}

func ddlDrop(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) < 2 {
		w.Code(protocol.RespActionError)
		return
	}
	switch strings.ToUpper(args[0].String()) {
	case "TABLE":
		ddlDropTable(e, sess, args[1:], w)
	case "KEYSPACE":
		ddlDropKeyspace(e, sess, args[1:], w)
	default:
		w.Code(protocol.RespUnknownDDLQuery)
	}
}

func ddlDropTable(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	ksPart, tblID, err := parseEntity(args[0].String())
	if err != nil {
		writeErr(w, err)
		return
	}

	e.reg.LockFlush()
	defer e.reg.UnlockFlush()

	ksRef, err := e.resolveKeyspaceRef(sess, ksPart)
	if err != nil {
		writeErr(w, err)
		return
	}
	if ksRef.Keyspace.ID == model.SystemKeyspace {
		writeErr(w, model.ErrProtectedObject)
		return
	}
	if err := ksRef.Keyspace.DropTable(tblID); err != nil {
		writeErr(w, err)
		return
	}
	e.reg.CleanupTrip.Set()
	w.Code(protocol.RespOkay)
}

func ddlDropKeyspace(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) < 1 || len(args) > 2 {
		w.Code(protocol.RespActionError)
		return
	}
	force := false
	if len(args) == 2 {
		if strings.ToUpper(args[1].String()) != "FORCE" {
			w.Code(protocol.RespActionError)
			return
		}
		force = true
	}

	e.reg.LockFlush()
	defer e.reg.UnlockFlush()

	if err := e.reg.Memstore.DropKeyspace(args[0].String(), force); err != nil {
		writeErr(w, err)
		return
	}
	e.reg.CleanupTrip.Set()
	w.Code(protocol.RespOkay)
}

// ddlUse rebinds the connection's entity state. A bare name (no colon)
// switches the current keyspace only, clearing the table binding; a
// leading-colon form (":tbl") rebinds just the table within the
// current keyspace; the full "ks:tbl" form rebinds both.
func ddlUse(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	raw := args[0].String()
	if raw == "" {
		w.Code(protocol.RespBadContainerName)
		return
	}

	if i := strings.IndexByte(raw, ':'); i >= 0 {
		ksPart, tblPart := raw[:i], raw[i+1:]
		if tblPart == "" || model.ValidateTableID(tblPart) != nil {
			w.Code(protocol.RespBadContainerName)
			return
		}
		if ksPart == "" {
			if sess.ks == nil {
				w.Code(protocol.RespDefaultContainerUnset)
				return
			}
			tref, ok := sess.ks.Keyspace.GetTable(tblPart)
			if !ok {
				w.Code(protocol.RespContainerNotFound)
				return
			}
			sess.useTable(tref)
			w.Code(protocol.RespOkay)
			return
		}
		if model.ValidateKeyspaceID(ksPart) != nil {
			w.Code(protocol.RespBadContainerName)
			return
		}
		ksRef, ok := e.reg.Memstore.GetKeyspace(ksPart)
		if !ok {
			w.Code(protocol.RespContainerNotFound)
			return
		}
		tref, ok := ksRef.Keyspace.GetTable(tblPart)
		if !ok {
			w.Code(protocol.RespContainerNotFound)
			return
		}
		sess.useKeyspace(ksRef, ksPart)
		sess.useTable(tref)
		w.Code(protocol.RespOkay)
		return
	}

	if model.ValidateKeyspaceID(raw) != nil {
		w.Code(protocol.RespBadContainerName)
		return
	}
	ksRef, ok := e.reg.Memstore.GetKeyspace(raw)
	if !ok {
		w.Code(protocol.RespContainerNotFound)
		return
	}
	sess.useKeyspace(ksRef, raw)
	w.Code(protocol.RespOkay)
}

func ddlInspect(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	switch strings.ToUpper(args[0].String()) {
	case "KEYSPACES":
		if len(args) != 1 {
			w.Code(protocol.RespActionError)
			return
		}
		ids := e.reg.Memstore.KeyspaceIDs()
		sort.Strings(ids)
		w.StrArray(ids)

	case "KEYSPACE":
		if len(args) > 2 {
			w.Code(protocol.RespActionError)
			return
		}
		var ksRef *model.KeyspaceRef
		if len(args) == 2 {
			ref, ok := e.reg.Memstore.GetKeyspace(args[1].String())
			if !ok {
				w.Code(protocol.RespContainerNotFound)
				return
			}
			ksRef = ref
		} else {
			// No keyspace bound falls through to a DDL error rather
			// than a protocol error.
			if sess.ks == nil {
				w.Code(protocol.RespDefaultContainerUnset)
				return
			}
			ksRef = sess.ks
		}
		ids := ksRef.Keyspace.TableIDs()
		sort.Strings(ids)
		w.StrArray(ids)

	case "TABLE":
		if len(args) > 2 {
			w.Code(protocol.RespActionError)
			return
		}
		var tref *model.TableRef
		if len(args) == 2 {
			ref, err := e.resolveTable(sess, args[1].String())
			if err != nil {
				writeErr(w, err)
				return
			}
			tref = ref
		} else {
			if sess.tbl == nil {
				w.Code(protocol.RespDefaultContainerUnset)
				return
			}
			tref = sess.tbl
		}
		w.StrArray([]string{tref.Table.ID, modelSpecString(tref.Table.Model), storageString(tref.Table.Storage)})

	default:
		w.Code(protocol.RespUnknownInspectQuery)
	}
}

// ddlWhereAmI reports the connection's current binding as a flat
// 3-element array: keyspace id, table id, effective user id (both ids
// empty when unbound; the user slot reads "anonymous" when auth is
// disabled and no login has occurred).
func ddlWhereAmI(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 0 {
		w.Code(protocol.RespActionError)
		return
	}
	user := sess.Auth.UserID()
	if user == "" && !e.reg.Auth.Enabled() {
		user = "anonymous"
	}
	w.StrArray([]string{sess.KeyspaceID(), sess.TableID(), user})
}

func modelSpecString(mc model.ModelCode) string {
	kind, kEnc, vEnc, ok := mc.Describe()
	if !ok {
		return "unknown"
	}
	k := "binstr"
	if kEnc {
		k = "str"
	}
	var v string
	switch {
	case kind == model.ModelKV && !vEnc:
		v = "binstr"
	case kind == model.ModelKV && vEnc:
		v = "str"
	case kind == model.ModelKVList && !vEnc:
		v = "list<binstr>"
	case kind == model.ModelKVList && vEnc:
		v = "list<str>"
	}
	return "keymap(" + k + "," + v + ")"
}

func storageString(sc model.StorageCode) string {
	if sc.IsVolatile() {
		return "volatile"
	}
	return "persistent"
}
