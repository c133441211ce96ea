package server

import (
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/skytable/skyd/pkg/config"
	"github.com/skytable/skyd/pkg/engine"
	"github.com/skytable/skyd/pkg/log"
	"github.com/skytable/skyd/pkg/metrics"
	"github.com/skytable/skyd/pkg/protocol"
)

const (
	minAcceptBackoff = time.Second
	maxAcceptBackoff = 64 * time.Second
)

// Server accepts connections on one listener and dispatches queries
// from each into an Engine. One Server speaks exactly one protocol
// version; running both Skyhash 1 and Skyhash 2 means starting two
// Servers against two ports.
type Server struct {
	addr     string
	version  protocol.Version
	engine   *engine.Engine
	sem      *semaphore.Weighted
	tlsConf  *tls.Config
	shutdown chan struct{}
	lis      net.Listener
}

// New constructs a Server. tlsConf may be nil for a plaintext listener.
func New(cfg *config.ConfigurationSet, e *engine.Engine, tlsConf *tls.Config) *Server {
	v := protocol.SkyhashV2
	if cfg.Protocol == config.ProtocolV1 {
		v = protocol.SkyhashV1
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	if tlsConf != nil {
		addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.TLS.Port)
	}
	return &Server{
		addr:     addr,
		version:  v,
		engine:   e,
		sem:      semaphore.NewWeighted(int64(cfg.MaxCon)),
		tlsConf:  tlsConf,
		shutdown: make(chan struct{}),
	}
}

// LoadTLSConfig builds a tls.Config from a TLSConfig's cert/key pair.
// skyd does not verify client certificates; it only terminates TLS.
func LoadTLSConfig(tc *config.TLSConfig) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(tc.Chain, tc.Key)
	if err != nil {
		return nil, fmt.Errorf("server: failed to load tls keypair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// Serve binds the listener and accepts connections until Stop is
// called or the listener errors unrecoverably.
func (s *Server) Serve() error {
	var lis net.Listener
	var err error
	if s.tlsConf != nil {
		lis, err = tls.Listen("tcp", s.addr, s.tlsConf)
	} else {
		lis, err = net.Listen("tcp", s.addr)
	}
	if err != nil {
		return fmt.Errorf("server: failed to listen on %s: %w", s.addr, err)
	}
	s.lis = lis
	log.Logger.Info().Str("addr", s.addr).Int("protocol", int(s.version)).Msg("server listening")

	backoff := minAcceptBackoff
	for {
		conn, err := lis.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return nil
			default:
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				time.Sleep(backoff)
				backoff *= 2
				if backoff > maxAcceptBackoff {
					backoff = maxAcceptBackoff
				}
				continue
			}
			return fmt.Errorf("server: accept failed: %w", err)
		}
		backoff = minAcceptBackoff

		if !s.sem.TryAcquire(1) {
			metrics.ConnectionsRejectedTotal.Inc()
			conn.Close()
			continue
		}
		metrics.ConnectionsAcceptedTotal.Inc()
		metrics.ConnectionsOpen.Inc()
		go s.handleConn(conn)
	}
}

// Stop closes the listener, unblocking Serve. In-flight connections
// are left to finish on their own; callers coordinate a grace period
// above this call.
func (s *Server) Stop() {
	close(s.shutdown)
	if s.lis != nil {
		s.lis.Close()
	}
}

func (s *Server) handleConn(conn net.Conn) {
	connID := uuid.New().String()
	clog := log.WithConn(connID)
	defer func() {
		conn.Close()
		s.sem.Release(1)
		metrics.ConnectionsOpen.Dec()
	}()

	sess := engine.NewSession(s.engine.Registry())
	defer sess.Close()

	task := &connTask{
		conn:    conn,
		version: s.version,
		engine:  s.engine,
		sess:    sess,
		log:     clog,
	}
	task.run()
}
