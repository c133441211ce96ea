package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/protocol"
	"github.com/skytable/skyd/pkg/store"
)

// defaultLSKeysCount bounds LSKEYS when no count argument is given.
const defaultLSKeysCount = 10

func currentList(sess *Session, w *protocol.Encoder) (*store.ListEngine, bool) {
	if sess.tbl == nil {
		w.Code(protocol.RespDefaultContainerUnset)
		return nil, false
	}
	le, ok := sess.tbl.Table.List()
	if !ok {
		w.Code(protocol.RespWrongModel)
		return nil, false
	}
	return le, true
}

func actionLSet(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	le, ok := currentList(sess, w)
	if !ok {
		return
	}
	if len(args) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	if err := le.LSet(args[0], args[1:]); err != nil {
		writeErr(w, err)
		return
	}
	w.Code(protocol.RespOkay)
}

func actionLGet(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	le, ok := currentList(sess, w)
	if !ok {
		return
	}
	if len(args) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	name := args[0]
	rest := args[1:]

	if len(rest) == 0 {
		vals, found, err := le.LGetAll(name)
		writeListOrErr(w, vals, found, err)
		return
	}

	sub := strings.ToUpper(rest[0].String())
	switch sub {
	case "LEN":
		n, found, err := le.LLen(name)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !found {
			w.Code(protocol.RespNil)
			return
		}
		w.Int(int64(n))
	case "LIMIT":
		n, ok := parseUintArg(rest[1:], w)
		if !ok {
			return
		}
		vals, found, err := le.LLimit(name, n)
		writeListOrErr(w, vals, found, err)
	case "VALUEAT":
		i, ok := parseUintArg(rest[1:], w)
		if !ok {
			return
		}
		v, found, err := le.LValueAt(name, i)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !found {
			w.Code(protocol.RespNil)
			return
		}
		w.Binary(v.Bytes())
	case "FIRST":
		v, found, err := le.LFirst(name)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !found {
			w.Code(protocol.RespNil)
			return
		}
		w.Binary(v.Bytes())
	case "LAST":
		v, found, err := le.LLast(name)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !found {
			w.Code(protocol.RespNil)
			return
		}
		w.Binary(v.Bytes())
	case "RANGE":
		if len(rest) < 2 || len(rest) > 3 {
			w.Code(protocol.RespActionError)
			return
		}
		start, ok := parseUintArg(rest[1:2], w)
		if !ok {
			return
		}
		stop := -1
		if len(rest) == 3 {
			stop, ok = parseUintArg(rest[2:3], w)
			if !ok {
				return
			}
		}
		vals, found, err := le.LRange(name, start, stop)
		writeListOrErr(w, vals, found, err)
	default:
		w.Code(protocol.RespActionError)
	}
}

func actionLMod(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	le, ok := currentList(sess, w)
	if !ok {
		return
	}
	if len(args) < 2 {
		w.Code(protocol.RespActionError)
		return
	}
	name := args[0]
	sub := strings.ToUpper(args[1].String())
	rest := args[2:]

	switch sub {
	case "PUSH":
		if len(rest) == 0 {
			w.Code(protocol.RespActionError)
			return
		}
		found, err := le.LPush(name, rest)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !found {
			w.Code(protocol.RespNil)
			return
		}
		w.Code(protocol.RespOkay)
	case "POP":
		i := -1
		if len(rest) == 1 {
			var ok bool
			i, ok = parseUintArg(rest, w)
			if !ok {
				return
			}
		} else if len(rest) != 0 {
			w.Code(protocol.RespActionError)
			return
		}
		v, found, err := le.LPop(name, i)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !found {
			w.Code(protocol.RespNil)
			return
		}
		w.Binary(v.Bytes())
	case "INSERT":
		if len(rest) != 2 {
			w.Code(protocol.RespActionError)
			return
		}
		i, ok := parseUintArg(rest[:1], w)
		if !ok {
			return
		}
		found, err := le.LInsert(name, i, rest[1])
		if err != nil {
			writeErr(w, err)
			return
		}
		if !found {
			w.Code(protocol.RespNil)
			return
		}
		w.Code(protocol.RespOkay)
	case "REMOVE":
		if len(rest) != 1 {
			w.Code(protocol.RespActionError)
			return
		}
		i, ok := parseUintArg(rest, w)
		if !ok {
			return
		}
		found, err := le.LRemove(name, i)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !found {
			w.Code(protocol.RespNil)
			return
		}
		w.Code(protocol.RespOkay)
	case "CLEAR":
		if len(rest) != 0 {
			w.Code(protocol.RespActionError)
			return
		}
		found, err := le.LClear(name)
		if err != nil {
			writeErr(w, err)
			return
		}
		if !found {
			w.Code(protocol.RespNil)
			return
		}
		w.Code(protocol.RespOkay)
	default:
		w.Code(protocol.RespActionError)
	}
}

// actionLSKeys implements LSKEYS [entity] [count]'s overloaded
// grammar: when exactly one argument is given, a leading ASCII digit
// on its first byte means "this is a count, use the current table";
// otherwise it's an entity name and the count defaults.
func actionLSKeys(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	var tbl *model.TableRef
	count := defaultLSKeysCount

	switch len(args) {
	case 0:
		tbl = sess.tbl
	case 1:
		if looksLikeCount(args[0]) {
			tbl = sess.tbl
			n, ok := parseUintArg(args, w)
			if !ok {
				return
			}
			count = n
		} else {
			ref, err := e.resolveTable(sess, args[0].String())
			if err != nil {
				writeErr(w, err)
				return
			}
			tbl = ref
		}
	case 2:
		ref, err := e.resolveTable(sess, args[0].String())
		if err != nil {
			writeErr(w, err)
			return
		}
		tbl = ref
		n, ok := parseUintArg(args[1:], w)
		if !ok {
			return
		}
		count = n
	default:
		w.Code(protocol.RespActionError)
		return
	}

	if tbl == nil {
		w.Code(protocol.RespDefaultContainerUnset)
		return
	}
	le, ok := tbl.Table.List()
	if !ok {
		w.Code(protocol.RespWrongModel)
		return
	}
	keys := le.Keys()
	sort.Strings(keys)
	if count < len(keys) {
		keys = keys[:count]
	}
	w.FlatArrayHeader(len(keys))
	for _, k := range keys {
		w.Str(k)
	}
}

// looksLikeCount applies the preserved leading-digit heuristic: the
// first byte of the argument is an ASCII digit.
func looksLikeCount(d model.Data) bool {
	b := d.Bytes()
	return len(b) > 0 && b[0] >= '0' && b[0] <= '9'
}

func parseUintArg(args []model.Data, w *protocol.Encoder) (int, bool) {
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return 0, false
	}
	n, err := strconv.Atoi(args[0].String())
	if err != nil || n < 0 {
		w.Code(protocol.RespActionError)
		return 0, false
	}
	return n, true
}

func writeListOrErr(w *protocol.Encoder, vals []model.Data, found bool, err error) {
	if err != nil {
		writeErr(w, err)
		return
	}
	if !found {
		w.Code(protocol.RespNil)
		return
	}
	w.TypedArrayHeader(len(vals))
	for _, v := range vals {
		w.Binary(v.Bytes())
	}
}
