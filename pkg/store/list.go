package store

import (
	"sync"

	"github.com/skytable/skyd/pkg/containers"
	"github.com/skytable/skyd/pkg/model"
)

// list is a single key's ordered sequence of values, guarded by its own
// read/write lock.
type list struct {
	mu     sync.RWMutex
	values []model.Data
}

// ListEngine is the KV-list data model: key -> ordered list of blobs,
// keyed by list name.
type ListEngine struct {
	m          *containers.Map[*list]
	keyEncoded bool
	valEncoded bool
}

// NewListEngine constructs an empty ListEngine with the given encoding
// flags.
func NewListEngine(keyEncoded, valEncoded bool) *ListEngine {
	return &ListEngine{m: containers.NewMap[*list](), keyEncoded: keyEncoded, valEncoded: valEncoded}
}

func (e *ListEngine) checkKey(k model.Data) error { return validate(k, e.keyEncoded) }
func (e *ListEngine) checkVal(v model.Data) error { return validate(v, e.valEncoded) }

func (e *ListEngine) checkVals(vs []model.Data) error {
	for _, v := range vs {
		if err := e.checkVal(v); err != nil {
			return err
		}
	}
	return nil
}

// LSet creates listName with the given values; fails with
// ErrOverwrite if the list already exists.
func (e *ListEngine) LSet(listName model.Data, values []model.Data) error {
	if err := e.checkKey(listName); err != nil {
		return err
	}
	if err := e.checkVals(values); err != nil {
		return err
	}
	cp := make([]model.Data, len(values))
	copy(cp, values)
	inserted := e.m.Insert(listName.String(), &list{values: cp})
	if !inserted {
		return ErrOverwrite
	}
	return nil
}

// get returns the *list for listName, or nil if absent.
func (e *ListEngine) get(listName model.Data) (*list, bool, error) {
	if err := e.checkKey(listName); err != nil {
		return nil, false, err
	}
	l, ok := e.m.Get(listName.String())
	return l, ok, nil
}

// LGetAll returns a copy of the full list, or ok=false if absent.
func (e *ListEngine) LGetAll(listName model.Data) ([]model.Data, bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return nil, ok, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Data, len(l.values))
	copy(out, l.values)
	return out, true, nil
}

// LLen returns the list's length, or ok=false if absent.
func (e *ListEngine) LLen(listName model.Data) (int, bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return 0, ok, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.values), true, nil
}

// LLimit returns up to n leading elements.
func (e *ListEngine) LLimit(listName model.Data, n int) ([]model.Data, bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return nil, ok, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n > len(l.values) {
		n = len(l.values)
	}
	if n < 0 {
		n = 0
	}
	out := make([]model.Data, n)
	copy(out, l.values[:n])
	return out, true, nil
}

// LValueAt returns the element at index i. Returns ErrBadListIndex if
// the list exists but i is out of range.
func (e *ListEngine) LValueAt(listName model.Data, i int) (model.Data, bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return model.Data{}, ok, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.values) {
		return model.Data{}, true, ErrBadListIndex
	}
	return l.values[i], true, nil
}

// LFirst returns the first element. Returns ErrListEmpty if the list
// exists but is empty.
func (e *ListEngine) LFirst(listName model.Data) (model.Data, bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return model.Data{}, ok, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.values) == 0 {
		return model.Data{}, true, ErrListEmpty
	}
	return l.values[0], true, nil
}

// LLast returns the last element. Returns ErrListEmpty if the list
// exists but is empty.
func (e *ListEngine) LLast(listName model.Data) (model.Data, bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return model.Data{}, ok, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.values) == 0 {
		return model.Data{}, true, ErrListEmpty
	}
	return l.values[len(l.values)-1], true, nil
}

// LRange returns values in [start, stop); stop == -1 means "to the end".
// Out-of-range bounds return ErrBadListIndex.
func (e *ListEngine) LRange(listName model.Data, start, stop int) ([]model.Data, bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return nil, ok, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if stop < 0 {
		stop = len(l.values)
	}
	if start < 0 || start > len(l.values) || stop > len(l.values) || start > stop {
		return nil, true, ErrBadListIndex
	}
	out := make([]model.Data, stop-start)
	copy(out, l.values[start:stop])
	return out, true, nil
}

// LPush appends values to the list. Returns ok=false if the list is
// absent (LMOD requires an existing list).
func (e *ListEngine) LPush(listName model.Data, values []model.Data) (bool, error) {
	if err := e.checkVals(values); err != nil {
		return false, err
	}
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return ok, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values = append(l.values, values...)
	return true, nil
}

// LPop removes and returns the element at index i (or the last element
// if i < 0).
func (e *ListEngine) LPop(listName model.Data, i int) (model.Data, bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return model.Data{}, ok, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.values) == 0 {
		return model.Data{}, true, ErrListEmpty
	}
	if i < 0 {
		i = len(l.values) - 1
	}
	if i >= len(l.values) {
		return model.Data{}, true, ErrBadListIndex
	}
	v := l.values[i]
	l.values = append(l.values[:i], l.values[i+1:]...)
	return v, true, nil
}

// LInsert inserts v at index i, shifting later elements right.
func (e *ListEngine) LInsert(listName model.Data, i int, v model.Data) (bool, error) {
	if err := e.checkVal(v); err != nil {
		return false, err
	}
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return ok, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i > len(l.values) {
		return true, ErrBadListIndex
	}
	l.values = append(l.values, model.Data{})
	copy(l.values[i+1:], l.values[i:])
	l.values[i] = v
	return true, nil
}

// LRemove removes the element at index i, shifting later elements left.
func (e *ListEngine) LRemove(listName model.Data, i int) (bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return ok, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.values) {
		return true, ErrBadListIndex
	}
	l.values = append(l.values[:i], l.values[i+1:]...)
	return true, nil
}

// LClear empties the list without removing the key itself.
func (e *ListEngine) LClear(listName model.Data) (bool, error) {
	l, ok, err := e.get(listName)
	if err != nil || !ok {
		return ok, err
	}
	l.mu.Lock()
	l.values = l.values[:0]
	l.mu.Unlock()
	return true, nil
}

// Len reports the number of lists (keys) currently stored.
func (e *ListEngine) Len() int { return e.m.Len() }

// Range calls fn for every list key and a snapshot of its values.
// Used by persistence to serialize the full table.
func (e *ListEngine) Range(fn func(key model.Data, values []model.Data) bool) {
	e.m.Range(func(k string, l *list) bool {
		l.mu.RLock()
		cp := make([]model.Data, len(l.values))
		copy(cp, l.values)
		l.mu.RUnlock()
		return fn(model.NewDataFromString(k), cp)
	})
}

// LoadList inserts a pre-built list verbatim (used by unflush recovery
// to reconstruct a table without re-running encoding validation on
// trusted on-disk data).
func (e *ListEngine) LoadList(listName model.Data, values []model.Data) {
	cp := make([]model.Data, len(values))
	copy(cp, values)
	e.m.Upsert(listName.String(), &list{values: cp})
}

// Clear removes every list, used by FLUSHDB.
func (e *ListEngine) Clear() {
	keys := e.m.Keys()
	for _, k := range keys {
		e.m.Remove(k)
	}
}

// Keys returns a snapshot of every list name currently stored, for
// LSKEYS.
func (e *ListEngine) Keys() []string { return e.m.Keys() }
