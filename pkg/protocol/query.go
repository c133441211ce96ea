package protocol

import "github.com/skytable/skyd/pkg/model"

// QueryKind distinguishes a simple query from a pipelined one.
type QueryKind int

const (
	QuerySimple QueryKind = iota
	QueryPipelined
)

// Query is the parsed result of one protocol frame: either a single
// simple query (a flat element list) or a pipeline of simple queries
// executed in sequence.
type Query struct {
	Kind     QueryKind
	Elements []model.Data   // populated when Kind == QuerySimple
	Pipeline [][]model.Data // populated when Kind == QueryPipelined
}
