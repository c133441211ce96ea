package engine

import (
	"strings"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/protocol"
)

// handlerFunc executes one dispatched verb's arguments (elements[1:])
// against sess, writing exactly one response unit to w.
type handlerFunc func(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder)

// Engine is the per-listener dispatcher. It holds no connection state
// of its own; every call takes the calling connection's *Session.
type Engine struct {
	reg *Registry
}

// New constructs an Engine bound to reg.
func New(reg *Registry) *Engine { return &Engine{reg: reg} }

// Registry returns the engine's backing Registry, for callers (the
// server's admission/shutdown path, persistence schedulers) that need
// to reach the same poison flag and trip switches.
func (e *Engine) Registry() *Registry { return e.reg }

var dispatchTable = map[string]handlerFunc{
	"GET":      actionGet,
	"SET":      actionSet,
	"UPDATE":   actionUpdate,
	"DEL":      actionDel,
	"EXISTS":   actionExists,
	"HEYA":     actionHeya,
	"MGET":     actionMGet,
	"MSET":     actionMSet,
	"MUPDATE":  actionMUpdate,
	"SSET":     actionSSet,
	"SUPDATE":  actionSUpdate,
	"SDEL":     actionSDel,
	"DBSIZE":   actionDBSize,
	"FLUSHDB":  actionFlushDB,
	"USET":     actionUSet,
	"KEYLEN":   actionKeyLen,
	"POP":      actionPop,
	"MPOP":     actionMPop,
	"LSET":     actionLSet,
	"LGET":     actionLGet,
	"LMOD":     actionLMod,
	"LSKEYS":   actionLSKeys,
	"CREATE":   ddlCreate,
	"DROP":     ddlDrop,
	"USE":      ddlUse,
	"INSPECT":  ddlInspect,
	"WHEREAMI": ddlWhereAmI,
	"MKSNAP":   adminMkSnap,
	"SYS":      adminSys,
	"AUTH":     authDispatch,
}

// mutatingVerbs names the verbs gated off while the store is poisoned;
// everything else (reads, AUTH, INSPECT, WHEREAMI, HEYA) keeps working.
var mutatingVerbs = map[string]bool{
	"SET": true, "UPDATE": true, "DEL": true, "MSET": true, "MUPDATE": true,
	"SSET": true, "SUPDATE": true, "SDEL": true, "FLUSHDB": true, "USET": true,
	"POP": true, "MPOP": true, "LSET": true, "LMOD": true,
	"CREATE": true, "DROP": true, "MKSNAP": true,
}

// Execute dispatches one simple query (elements already split out of
// its protocol.Query) and writes its response to w.
func (e *Engine) Execute(sess *Session, elements []model.Data, w *protocol.Encoder) {
	if len(elements) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	verb := strings.ToUpper(elements[0].String())
	h, ok := dispatchTable[verb]
	if !ok {
		w.Code(protocol.RespUnknownAction)
		return
	}

	if !e.authorized(sess, verb, elements) {
		w.Code(protocol.RespInsufficientPerms)
		return
	}

	if mutatingVerbs[verb] && !e.reg.StateOkay() {
		w.Code(protocol.RespServerError)
		return
	}

	h(e, sess, elements[1:], w)
}

// ExecutePipeline runs every sub-query of a pipelined query in
// sequence, concatenating each sub-query's response in order. Per
// sub-query action-errors are written into the stream without
// aborting the rest of the pipeline.
func (e *Engine) ExecutePipeline(sess *Session, pipeline [][]model.Data, w *protocol.Encoder) {
	for _, q := range pipeline {
		e.Execute(sess, q, w)
	}
}

// authorized reports whether verb may run given sess's current login
// state. Before a valid user id is bound, only the pre-auth AUTH
// subcommands are allowed; everything else is refused outright. Once
// auth is disabled entirely (no origin key configured), every
// connection is root-equivalent and this always returns true.
func (e *Engine) authorized(sess *Session, verb string, elements []model.Data) bool {
	if !e.reg.Auth.Enabled() {
		return true
	}
	if sess.Auth.LoggedIn() {
		return true
	}
	if verb != "AUTH" {
		return false
	}
	if len(elements) < 2 {
		return false
	}
	return auth.PreAuthAllowed(strings.ToUpper(elements[1].String()))
}
