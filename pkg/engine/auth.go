package engine

import (
	"errors"
	"strings"

	authpkg "github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/protocol"
)

func authDispatch(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) == 0 {
		w.Code(protocol.RespActionError)
		return
	}
	sub := strings.ToUpper(args[0].String())
	rest := args[1:]
	switch sub {
	case "CLAIM":
		authClaim(e, sess, rest, w)
	case "LOGIN":
		authLogin(e, sess, rest, w)
	case "LOGOUT":
		authLogout(e, sess, rest, w)
	case "ADDUSER":
		authAddUser(e, sess, rest, w)
	case "DELUSER":
		authDelUser(e, sess, rest, w)
	case "RESTORE":
		authRestore(e, sess, rest, w)
	case "LISTUSER":
		authListUser(e, sess, rest, w)
	case "WHOAMI":
		authWhoAmI(e, sess, rest, w)
	default:
		w.Code(protocol.RespUnknownAction)
	}
}

func authCode(err error) protocol.ResponseCode {
	switch {
	case errors.Is(err, authpkg.ErrAuthDisabled):
		return protocol.RespAuthDisabled
	case errors.Is(err, authpkg.ErrAlreadyClaimed):
		return protocol.RespAuthAlreadyClaimed
	case errors.Is(err, authpkg.ErrBadOrigin), errors.Is(err, authpkg.ErrBadCredentials):
		return protocol.RespAuthBadCredentials
	case errors.Is(err, authpkg.ErrUnknownUser):
		return protocol.RespAuthUnknownUser
	case errors.Is(err, authpkg.ErrUserExists):
		return protocol.RespAlreadyExists
	case errors.Is(err, authpkg.ErrCannotDeleteRoot):
		return protocol.RespAuthCannotDeleteRoot
	case errors.Is(err, authpkg.ErrNotLoggedIn):
		return protocol.RespAuthNotLoggedIn
	default:
		return protocol.RespActionError
	}
}

// authClaim creates the root user and logs the calling connection in as
// root on success — the operator who holds the origin key is trusted
// to bootstrap the store from the same connection.
func authClaim(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	token, err := e.reg.Auth.Claim(args[0].String())
	if err != nil {
		w.Code(authCode(err))
		return
	}
	sess.Auth.Bind(authpkg.RootUser)
	w.Str(token)
}

func authLogin(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 2 {
		w.Code(protocol.RespActionError)
		return
	}
	id, token := args[0].String(), args[1].String()
	if err := e.reg.Auth.Login(id, token); err != nil {
		w.Code(authCode(err))
		return
	}
	sess.Auth.Bind(id)
	w.Code(protocol.RespOkay)
}

func authLogout(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 0 {
		w.Code(protocol.RespActionError)
		return
	}
	sess.Auth.Logout()
	w.Code(protocol.RespOkay)
}

func authAddUser(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	if !sess.Auth.IsRoot() {
		w.Code(protocol.RespAuthPermissionDenied)
		return
	}
	if err := model.ValidateUserID(args[0].String()); err != nil {
		w.Code(protocol.RespBadContainerName)
		return
	}
	token, err := e.reg.Auth.AddUser(args[0].String())
	if err != nil {
		w.Code(authCode(err))
		return
	}
	w.Str(token)
}

func authDelUser(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 1 {
		w.Code(protocol.RespActionError)
		return
	}
	if !sess.Auth.IsRoot() {
		w.Code(protocol.RespAuthPermissionDenied)
		return
	}
	if err := e.reg.Auth.DelUser(args[0].String()); err != nil {
		w.Code(authCode(err))
		return
	}
	w.Code(protocol.RespOkay)
}

// authRestore supports both forms: `AUTH RESTORE origin id` usable
// pre-login (root bootstrap recovery when the token was lost), and
// `AUTH RESTORE id` usable only by an already-logged-in root.
func authRestore(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	var origin, id string
	switch len(args) {
	case 2:
		origin, id = args[0].String(), args[1].String()
	case 1:
		if !sess.Auth.IsRoot() {
			w.Code(protocol.RespAuthPermissionDenied)
			return
		}
		id = args[0].String()
	default:
		w.Code(protocol.RespActionError)
		return
	}
	token, err := e.reg.Auth.Restore(origin, id)
	if err != nil {
		w.Code(authCode(err))
		return
	}
	w.Str(token)
}

func authListUser(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 0 {
		w.Code(protocol.RespActionError)
		return
	}
	if !sess.Auth.IsRoot() {
		w.Code(protocol.RespAuthPermissionDenied)
		return
	}
	ids := e.reg.Auth.ListUsers()
	w.StrArray(ids)
}

func authWhoAmI(e *Engine, sess *Session, args []model.Data, w *protocol.Encoder) {
	if len(args) != 0 {
		w.Code(protocol.RespActionError)
		return
	}
	user := sess.Auth.EffectiveUser(e.reg.Auth.Enabled())
	if user == "" {
		w.Code(protocol.RespAuthNotLoggedIn)
		return
	}
	w.Str(user)
}
