package model

import "errors"

// These sentinel errors map 1:1 onto the named response strings of the
// wire protocol. pkg/engine translates them to wire response codes; the
// model layer itself never encodes a protocol response.
var (
	ErrAlreadyExists     = errors.New("err-already-exists")
	ErrContainerNotFound = errors.New("container-not-found")
	ErrStillInUse        = errors.New("still-in-use")
	ErrProtectedObject   = errors.New("err-protected-object")
	ErrWrongModel        = errors.New("wrong-model")
	ErrKeyspaceNotEmpty  = errors.New("keyspace-not-empty")
	ErrDefaultUnset      = errors.New("default-container-unset")
)
