package engine

import (
	"errors"

	"github.com/skytable/skyd/pkg/model"
	"github.com/skytable/skyd/pkg/protocol"
	"github.com/skytable/skyd/pkg/store"
)

// errBadModelSpec is returned by parseModelSpec for a keymap() token
// that doesn't match the grammar; callers map it straight to
// unknown-model rather than routing it through codeFor.
var errBadModelSpec = errors.New("bad model spec")

// writeErr maps a model/store sentinel error (or this package's own
// parse errors) to its wire response code. Anything unrecognized is
// reported as a generic action-error rather than leaking internals.
func writeErr(w *protocol.Encoder, err error) {
	w.Code(codeFor(err))
}

func codeFor(err error) protocol.ResponseCode {
	switch {
	case errors.Is(err, model.ErrAlreadyExists):
		return protocol.RespAlreadyExists
	case errors.Is(err, model.ErrContainerNotFound):
		return protocol.RespContainerNotFound
	case errors.Is(err, model.ErrStillInUse):
		return protocol.RespStillInUse
	case errors.Is(err, model.ErrProtectedObject):
		return protocol.RespProtectedObject
	case errors.Is(err, model.ErrWrongModel):
		return protocol.RespWrongModel
	case errors.Is(err, model.ErrKeyspaceNotEmpty):
		return protocol.RespKeyspaceNotEmpty
	case errors.Is(err, model.ErrDefaultUnset):
		return protocol.RespDefaultContainerUnset
	case errors.Is(err, store.ErrEncoding):
		return protocol.RespEncodingError
	case errors.Is(err, store.ErrOverwrite):
		return protocol.RespOverwriteError
	case errors.Is(err, store.ErrBadListIndex):
		return protocol.RespBadListIndex
	case errors.Is(err, store.ErrListEmpty):
		return protocol.RespListIsEmpty
	case errors.Is(err, ErrMalformedEntity):
		return protocol.RespBadContainerName
	default:
		return protocol.RespActionError
	}
}
