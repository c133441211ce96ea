package engine

import (
	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/protocol"
	"github.com/skytable/skyd/pkg/store"
)

// currentKV resolves sess's bound table as a KVEngine, writing
// default-container-unset or wrong-model if it can't.
func currentKV(sess *Session, w *protocol.Encoder) (*store.KVEngine, bool) {
	if sess.tbl == nil {
		w.Code(protocol.RespDefaultContainerUnset)
		return nil, false
	}
	kv, ok := sess.tbl.Table.KV()
	if !ok {
		w.Code(protocol.RespWrongModel)
		return nil, false
	}
	return kv, true
}

func actionGet(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	v, found, err := kv.Get(args[0])
	if err != nil {
		writeErr(w, err)
		return
	}
	if !found {
		w.Code(protocol.RespNil)
		return
	}
	w.Binary(v.Bytes())
}

func actionSet(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) != 2 {
		w.Code(protocol.RespActionError)
		return
	}
	inserted, err := kv.Set(args[0], args[1])
	if err != nil {
		writeErr(w, err)
		return
	}
	if !inserted {
		w.Code(protocol.RespOverwriteError)
		return
	}
	w.Code(protocol.RespOkay)
}

func actionUpdate(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) != 2 {
		w.Code(protocol.RespActionError)
		return
	}
	updated, err := kv.Update(args[0], args[1])
	if err != nil {
		writeErr(w, err)
		return
	}
	if !updated {
		w.Code(protocol.RespNil)
		return
	}
	w.Code(protocol.RespOkay)
}

func actionDel(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	n, err := kv.Del(args)
	if err != nil {
		writeErr(w, err)
		return
	}
	w.Int(int64(n))
}

func actionExists(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	n := 0
	for _, k := range args {
		ok, err := kv.Exists(k)
		if err != nil {
			writeErr(w, err)
			return
		}
		if ok {
			n++
		}
	}
	w.Int(int64(n))
}

func actionHeya(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) == 0 {
		w.Str("HEY!")
		return
	}
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	w.Str(args[0].String())
}

func actionMGet(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	vals, found, err := kv.MGet(args)
	if err != nil {
		writeErr(w, err)
		return
	}
	w.TypedArrayHeader(len(vals))
	for i, v := range vals {
		if !found[i] {
			w.Code(protocol.RespNil)
			continue
		}
		w.Binary(v.Bytes())
	}
}

// splitPairs validates an even-length args slice and splits it into
// keys/values, writing too-many-args-shaped action-error on mismatch.
func splitPairs(args []model.Data, w *protocol.Encoder) (keys, vals []model.Data, ok bool) {
	if len(args) == 0 || len(args)%2 != 0 {
		w.Code(protocol.RespActionError)
		return nil, nil, false
	}
	n := len(args) / 2
	keys = make([]model.Data, n)
	vals = make([]model.Data, n)
	for i := 0; i < n; i++ {
		keys[i] = args[2*i]
		vals[i] = args[2*i+1]
	}
	return keys, vals, true
}

func actionMSet(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	keys, vals, ok := splitPairs(args, w)
	if !ok {
		return
	}
	inserted, err := kv.MSet(keys, vals)
	if err != nil {
		writeErr(w, err)
		return
	}
	n := 0
	for _, v := range inserted {
		if v {
			n++
		}
	}
	w.Int(int64(n))
}

func actionMUpdate(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	keys, vals, ok := splitPairs(args, w)
	if !ok {
		return
	}
	updated, err := kv.MUpdate(keys, vals)
	if err != nil {
		writeErr(w, err)
		return
	}
	n := 0
	for _, v := range updated {
		if v {
			n++
		}
	}
	w.Int(int64(n))
}

func actionUSet(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	keys, vals, ok := splitPairs(args, w)
	if !ok {
		return
	}
	if err := kv.USet(keys, vals); err != nil {
		writeErr(w, err)
		return
	}
	w.Int(int64(len(keys)))
}

func actionSSet(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	keys, vals, ok := splitPairs(args, w)
	if !ok {
		return
	}
	if err := kv.SSet(keys, vals); err != nil {
		writeErr(w, err)
		return
	}
	w.Code(protocol.RespOkay)
}

func actionSUpdate(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	keys, vals, ok := splitPairs(args, w)
	if !ok {
		return
	}
	applied, err := kv.SUpdate(keys, vals)
	if err != nil {
		writeErr(w, err)
		return
	}
	if !applied {
		w.Code(protocol.RespNil)
		return
	}
	w.Code(protocol.RespOkay)
}

func actionSDel(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	applied, err := kv.SDel(args)
	if err != nil {
		writeErr(w, err)
		return
	}
	if !applied {
		w.Code(protocol.RespNil)
		return
	}
	w.Code(protocol.RespOkay)
}

func actionDBSize(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if sess.tbl == nil {
		w.Code(protocol.RespDefaultContainerUnset)
		return
	}
	if len(args) != 0 {
		w.Code(protocol.RespActionError)
		return
	}
	w.Int(int64(sess.tbl.Table.Len()))
}

func actionFlushDB(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if sess.tbl == nil {
		w.Code(protocol.RespDefaultContainerUnset)
		return
	}
	if len(args) != 0 {
		w.Code(protocol.RespActionError)
		return
	}
	if kv, ok := sess.tbl.Table.KV(); ok {
		kv.Clear()
	} else if le, ok := sess.tbl.Table.List(); ok {
		le.Clear()
	}
	w.Code(protocol.RespOkay)
}

func actionKeyLen(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	v, found, err := kv.Get(args[0])
	if err != nil {
		writeErr(w, err)
		return
	}
	if !found {
		w.Code(protocol.RespNil)
		return
	}
	w.Int(int64(v.Len()))
}

func actionPop(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	v, found, err := kv.Pop(args[0])
	if err != nil {
		writeErr(w, err)
		return
	}
	if !found {
		w.Code(protocol.RespNil)
		return
	}
	w.Binary(v.Bytes())
}

func actionMPop(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	kv, ok := currentKV(sess, w)
	if !ok {
		return
	}
	if len(args) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	vals, found, err := kv.MPop(args)
	if err != nil {
		writeErr(w, err)
		return
	}
	w.TypedArrayHeader(len(vals))
	for i, v := range vals {
		if !found[i] {
			w.Code(protocol.RespNil)
			continue
		}
		w.Binary(v.Bytes())
	}
}
