package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skytable/skyd/pkg/model"
)

// ErrMalformedEntity is returned when an entity argument is empty, has
// an empty table half after its colon, or fails identifier validation.
var ErrMalformedEntity = errors.New("malformed entity")

// parseEntity splits a DDL entity argument into its keyspace and table
// halves: "ks:tbl" gives both explicitly; ":tbl" and the bare "tbl"
// both give an empty keyspace half, meaning "the currently bound
// keyspace" to the caller.
func parseEntity(raw string) (ks, tbl string, err error) {
	if raw == "" {
		return "", "", ErrMalformedEntity
	}
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		ks, tbl = raw[:i], raw[i+1:]
		if tbl == "" {
			return "", "", ErrMalformedEntity
		}
		if ks != "" {
			if err := model.ValidateKeyspaceID(ks); err != nil {
				return "", "", fmt.Errorf("%w: %v", ErrMalformedEntity, err)
			}
		}
		if err := model.ValidateTableID(tbl); err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrMalformedEntity, err)
		}
		return ks, tbl, nil
	}
	if err := model.ValidateTableID(raw); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedEntity, err)
	}
	return "", raw, nil
}

// resolveTable resolves a DDL entity argument against sess's current
// keyspace binding (when the entity's keyspace half is empty) or
// against the named keyspace.
func (e *Engine) resolveTable(sess *Session, raw string) (*model.TableRef, error) {
	ksPart, tblPart, err := parseEntity(raw)
	if err != nil {
		return nil, err
	}
	ksRef, err := e.resolveKeyspaceRef(sess, ksPart)
	if err != nil {
		return nil, err
	}
	tref, ok := ksRef.Keyspace.GetTable(tblPart)
	if !ok {
		return nil, model.ErrContainerNotFound
	}
	return tref, nil
}

// resolveKeyspaceRef resolves an explicit keyspace id, or falls back
// to sess's current binding when id is empty.
func (e *Engine) resolveKeyspaceRef(sess *Session, id string) (*model.KeyspaceRef, error) {
	if id == "" {
		if sess.ks == nil {
			return nil, model.ErrDefaultUnset
		}
		return sess.ks, nil
	}
	ref, ok := e.reg.Memstore.GetKeyspace(id)
	if !ok {
		return nil, model.ErrContainerNotFound
	}
	return ref, nil
}
