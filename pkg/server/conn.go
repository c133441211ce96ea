package server

import (
	"bytes"
	"errors"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/skytable/skyd/pkg/engine"
	"github.com/skytable/skyd/pkg/metrics"
	"github.com/skytable/skyd/pkg/protocol"
)

// maxQueryBytes bounds how large an unparsed buffer is allowed to grow
// before a connection is dropped, so a peer that never completes a
// frame (or lies about its length) cannot exhaust server memory.
const maxQueryBytes = 64 << 20

const connIdleTimeout = 5 * time.Minute

// connTask owns one accepted connection end to end: reading bytes,
// handing them to the parser, dispatching complete queries, and
// writing responses back.
type connTask struct {
	conn    net.Conn
	version protocol.Version
	engine  *engine.Engine
	sess    *engine.Session
	log     zerolog.Logger

	buf []byte
}

func (t *connTask) run() {
	t.log.Debug().Msg("connection accepted")
	for {
		q, n, err := protocol.Parse(t.buf, t.version)
		if err == nil {
			t.buf = t.buf[n:]
			t.dispatch(q)
			continue
		}
		if !errors.Is(err, protocol.ErrNeedMore) {
			t.writeProtocolError(err)
			return
		}
		if len(t.buf) >= maxQueryBytes {
			t.log.Warn().Int("buffered", len(t.buf)).Msg("query exceeded max buffer, closing connection")
			return
		}
		if !t.fill() {
			return
		}
	}
}

// fill reads more bytes from the connection into t.buf, returning false
// once the connection is done (EOF, reset, or timed out idle).
func (t *connTask) fill() bool {
	t.conn.SetReadDeadline(time.Now().Add(connIdleTimeout))
	chunk := make([]byte, 32*1024)
	n, err := t.conn.Read(chunk)
	if n > 0 {
		t.buf = append(t.buf, chunk[:n]...)
	}
	if err != nil {
		if !errors.Is(err, io.EOF) {
			t.log.Debug().Err(err).Msg("connection read error")
		}
		return false
	}
	return true
}

func (t *connTask) dispatch(q *protocol.Query) {
	w := protocol.NewEncoder(t.version)
	timer := metrics.NewTimer()

	switch q.Kind {
	case protocol.QuerySimple:
		verb := "UNKNOWN"
		if len(q.Elements) > 0 {
			verb = q.Elements[0].String()
		}
		t.engine.Execute(t.sess, q.Elements, w)
		timer.ObserveDurationVec(metrics.QueryDuration, verb)
		metrics.QueriesTotal.WithLabelValues(verb, responseOutcome(w.Bytes())).Inc()
	case protocol.QueryPipelined:
		t.engine.ExecutePipeline(t.sess, q.Pipeline, w)
	}

	if _, err := t.conn.Write(w.Bytes()); err != nil {
		t.log.Debug().Err(err).Msg("connection write error")
	}
}

// responseOutcome classifies a single response unit as "okay" or
// "error" for the queries-by-outcome counter: a code frame body of
// "0" (RespOkay) or anything not under the '!' tsymbol counts as okay.
func responseOutcome(b []byte) string {
	if len(b) == 0 || b[0] != '!' {
		return "okay"
	}
	nl := bytes.IndexByte(b, '\n')
	if nl < 0 {
		return "okay"
	}
	body := b[nl+1:]
	if bytes.HasPrefix(body, []byte("0")) {
		return "okay"
	}
	return "error"
}

// writeProtocolError reports a parse failure under the tsymbol the
// wire protocol uses for out-of-band errors, then lets the connection
// close: a caller whose framing is wrong cannot be trusted to resync.
func (t *connTask) writeProtocolError(err error) {
	w := protocol.NewEncoder(t.version)
	switch {
	case errors.Is(err, protocol.ErrUnexpectedByte), errors.Is(err, protocol.ErrDatatypeParse):
		w.Code(protocol.RespPacketError)
	case errors.Is(err, protocol.ErrBadPacket):
		w.Code(protocol.RespPacketError)
	default:
		w.Code(protocol.RespServerError)
	}
	t.conn.Write(w.Bytes())
	t.log.Debug().Err(err).Msg("closing connection after protocol error")
}
