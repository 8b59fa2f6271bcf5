// Package server implements the cachemir-core TCP front end: it accepts
// connections, frames requests and responses per pkg/protocol, and
// dispatches each parsed request to a pkg/store.Store.
//
// Architecture:
//   - One goroutine per accepted connection (Go's netpoller stands in for
//     the non-blocking readiness loop a single-threaded event loop would
//     otherwise need)
//   - One background goroutine running the store's TTL sweep
//   - Per-connection read/write deadlines guard against stalled peers
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/cachemir/cachemir-core/pkg/protocol"
	"github.com/cachemir/cachemir-core/pkg/store"
)

// Server accepts TCP connections and dispatches framed requests against a
// Store. All fields except listener are fixed for the server's lifetime.
type Server struct {
	store *store.Store

	host string
	port int

	readTimeout   time.Duration
	writeTimeout  time.Duration
	sweepInterval time.Duration

	listener net.Listener
}

// New creates a Server that will listen on host:port and run a TTL sweep
// every sweepInterval. The server is not started until Start is called.
func New(host string, port int, readTimeout, writeTimeout, sweepInterval time.Duration, rehashSteps int) *Server {
	return &Server{
		store:         store.NewWithRehashSteps(rehashSteps),
		host:          host,
		port:          port,
		readTimeout:   readTimeout,
		writeTimeout:  writeTimeout,
		sweepInterval: sweepInterval,
	}
}

// Start binds the listener, launches the TTL sweeper, and accepts
// connections until ctx is cancelled or the listener fails. It blocks for
// the lifetime of the server.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	log.Printf("cachemir-core server listening on %s", addr)

	go s.store.RunSweeper(ctx, s.sweepInterval)

	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("failed to accept connection: %v", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

// handleConnection reads and dispatches every request frame on conn in
// arrival order, writing each response before reading the next frame. A
// protocol error, oversized frame, or I/O error closes the connection;
// a semantically unknown command never does.
func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("error closing connection: %v", err)
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.readTimeout)); err != nil {
			log.Printf("error setting read deadline: %v", err)
			return
		}

		req, err := protocol.ReadRequest(conn)
		if err != nil {
			if err != io.EOF {
				log.Printf("failed to read request: %v", err)
			}
			return
		}

		resp := s.dispatch(req)

		if err := conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			log.Printf("error setting write deadline: %v", err)
			return
		}
		if err := protocol.WriteResponse(conn, resp); err != nil {
			log.Printf("failed to write response: %v", err)
			return
		}
	}
}

// dispatch maps one parsed request to a Store operation per the command
// grammar. Any shape not recognized here yields ERR with an empty payload.
func (s *Server) dispatch(req *protocol.Request) *protocol.Response {
	args := req.Args
	if len(args) == 0 {
		return errResponse()
	}

	switch {
	case len(args) == 2 && args[0] == "get":
		value, status := s.store.Get(args[1])
		if status != protocol.StatusOK {
			return &protocol.Response{Status: status}
		}
		return &protocol.Response{Status: status, Payload: value}

	case len(args) == 3 && args[0] == "set":
		status := s.store.Set(args[1], []byte(args[2]))
		return &protocol.Response{Status: status}

	case len(args) == 5 && args[0] == "set" && args[1] == "ex":
		seconds, err := strconv.ParseInt(args[4], 10, 64)
		if err != nil || seconds < 0 {
			return errResponse()
		}
		status := s.store.SetEx(args[2], []byte(args[3]), seconds)
		return &protocol.Response{Status: status}

	case len(args) == 2 && args[0] == "del":
		status := s.store.Del(args[1])
		return &protocol.Response{Status: status}

	case len(args) == 2 && args[0] == "ttl":
		payload, status := s.store.TTL(args[1])
		return &protocol.Response{Status: status, Payload: payload}

	case len(args) == 1 && args[0] == "lru_evict":
		status := s.store.LRUEvict()
		return &protocol.Response{Status: status}

	case len(args) == 1 && args[0] == "lfu_evict":
		status := s.store.LFUEvict()
		return &protocol.Response{Status: status}

	default:
		return errResponse()
	}
}

func errResponse() *protocol.Response {
	return &protocol.Response{Status: protocol.StatusErr}
}
