package client

import (
	"context"
	"net"
	"testing"

	"github.com/cachemir/cachemir-core/pkg/config"
	"github.com/cachemir/cachemir-core/pkg/protocol"
	"github.com/cachemir/cachemir-core/pkg/store"
)

// fakeServer is a minimal stand-in for internal/server.Server: just enough
// request/response plumbing over a real listener to exercise the client's
// wire handling without importing the server package.
type fakeServer struct {
	store *store.Store
}

func (f *fakeServer) serve(listener net.Listener) {
	for {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeServer) handle(conn net.Conn) {
	defer conn.Close()
	for {
		req, err := protocol.ReadRequest(conn)
		if err != nil {
			return
		}

		var resp *protocol.Response
		switch {
		case len(req.Args) == 2 && req.Args[0] == "get":
			val, status := f.store.Get(req.Args[1])
			resp = &protocol.Response{Status: status, Payload: val}
		case len(req.Args) == 3 && req.Args[0] == "set":
			resp = &protocol.Response{Status: f.store.Set(req.Args[1], []byte(req.Args[2]))}
		case len(req.Args) == 2 && req.Args[0] == "del":
			resp = &protocol.Response{Status: f.store.Del(req.Args[1])}
		case len(req.Args) == 2 && req.Args[0] == "ttl":
			payload, status := f.store.TTL(req.Args[1])
			resp = &protocol.Response{Status: status, Payload: payload}
		default:
			resp = &protocol.Response{Status: protocol.StatusErr}
		}

		if err := protocol.WriteResponse(conn, resp); err != nil {
			return
		}
	}
}

func startFakeServer(t *testing.T) string {
	t.Helper()

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	fs := &fakeServer{store: store.New()}
	go fs.serve(listener)
	t.Cleanup(func() { listener.Close() })

	return listener.Addr().String()
}

func TestClientSetGetDel(t *testing.T) {
	addr := startFakeServer(t)
	c := New(addr)
	defer c.Close()

	if err := c.Set("foo", []byte("bar")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	val, err := c.Get("foo")
	if err != nil || string(val) != "bar" {
		t.Fatalf("Get() = %q, %v; want bar, nil", val, err)
	}

	if err := c.Del("foo"); err != nil {
		t.Fatalf("Del() error = %v", err)
	}

	if _, err := c.Get("foo"); err != ErrNotFound {
		t.Fatalf("Get() after Del() error = %v; want ErrNotFound", err)
	}
}

func TestClientTTLErrorsForNonTTLKey(t *testing.T) {
	addr := startFakeServer(t)
	c := New(addr)
	defer c.Close()

	if err := c.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := c.TTL("k"); err != ErrCommand {
		t.Fatalf("TTL() on non-TTL key error = %v; want ErrCommand", err)
	}
}

func TestConnectionPoolReusesConnections(t *testing.T) {
	addr := startFakeServer(t)
	c := New(addr)
	defer c.Close()

	for i := 0; i < 5; i++ {
		if err := c.Set("k", []byte("v")); err != nil {
			t.Fatalf("Set() iteration %d error = %v", i, err)
		}
	}

	if c.pool.created != 1 {
		t.Fatalf("created %d connections for 5 sequential calls; want 1 reused connection", c.pool.created)
	}
}

func TestNewWithConfigPanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on invalid config")
		}
	}()
	NewWithConfig(&config.ClientConfig{Addr: "no-colon-here"})
}
