package model

import "fmt"

// TableModel distinguishes the two data models a Table may hold.
type TableModel uint8

const (
	ModelKV     TableModel = 0
	ModelKVList TableModel = 1
)

// ModelCode is the single byte (0..7) compressing (model, key-enc,
// value-enc). It is immutable for a table's lifetime.
type ModelCode uint8

const (
	MC_KV_NN       ModelCode = 0 // KV,     key: no,  value: no
	MC_KV_NY       ModelCode = 1 // KV,     key: no,  value: yes
	MC_KV_YY       ModelCode = 2 // KV,     key: yes, value: yes
	MC_KV_YN       ModelCode = 3 // KV,     key: yes, value: no
	MC_KVList_NN   ModelCode = 4 // KVList, key: no,  value: no
	MC_KVList_NY   ModelCode = 5 // KVList, key: no,  value: yes
	MC_KVList_YN   ModelCode = 6 // KVList, key: yes, value: no
	MC_KVList_YY   ModelCode = 7 // KVList, key: yes, value: yes
	modelCodeCount           = 8
)

type codeDescriptor struct {
	model TableModel
	kEnc  bool
	vEnc  bool
}

// modelLUT replaces per-table virtual dispatch with a flat array
// indexed by ModelCode, avoiding a branch per lookup.
var modelLUT = [modelCodeCount]codeDescriptor{
	MC_KV_NN:     {ModelKV, false, false},
	MC_KV_NY:     {ModelKV, false, true},
	MC_KV_YY:     {ModelKV, true, true},
	MC_KV_YN:     {ModelKV, true, false},
	MC_KVList_NN: {ModelKVList, false, false},
	MC_KVList_NY: {ModelKVList, false, true},
	MC_KVList_YN: {ModelKVList, true, false},
	MC_KVList_YY: {ModelKVList, true, true},
}

// Describe reports the model and encoding flags a ModelCode stands for.
// The bool return is false for an out-of-range code.
func (c ModelCode) Describe() (model TableModel, keyEnc bool, valEnc bool, ok bool) {
	if int(c) >= modelCodeCount {
		return 0, false, false, false
	}
	d := modelLUT[c]
	return d.model, d.kEnc, d.vEnc, true
}

// ModelCodeFor resolves the model code for a given (model, k-enc, v-enc)
// combination, or an error if no such combination is defined (e.g.
// list<*> as a key is rejected at a higher layer, not here).
func ModelCodeFor(m TableModel, kEnc, vEnc bool) (ModelCode, error) {
	for i := 0; i < modelCodeCount; i++ {
		d := modelLUT[i]
		if d.model == m && d.kEnc == kEnc && d.vEnc == vEnc {
			return ModelCode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown model: model=%v kEnc=%v vEnc=%v", m, kEnc, vEnc)
}

// StorageCode is a single byte: 0 persistent, 1 volatile. Immutable for
// a table's lifetime.
type StorageCode uint8

const (
	StoragePersistent StorageCode = 0
	StorageVolatile   StorageCode = 1
)

// IsVolatile reports whether tables of this storage code are excluded
// from flush.
func (s StorageCode) IsVolatile() bool { return s == StorageVolatile }
