// Package client provides a high-level client SDK for connecting to a
// cachemir-core cache server.
//
// The client pools connections to the server and speaks the fixed-width
// binary protocol directly, exposing the same seven operations the store
// implements: Get, Set, SetEx, Del, TTL, LRUEvict, LFUEvict.
//
// Basic usage:
//
//	c := client.New("localhost:2203")
//	defer c.Close()
//
//	if err := c.Set("user:123", []byte("john_doe")); err != nil {
//		log.Fatal(err)
//	}
//	value, err := c.Get("user:123")
package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/cachemir/cachemir-core/pkg/config"
	"github.com/cachemir/cachemir-core/pkg/protocol"
)

// ErrNotFound is returned by Get and TTL when the key is absent or expired.
var ErrNotFound = errors.New("cachemir: key not found")

// ErrCommand is returned when the server responds ERR to an otherwise
// well-formed request (e.g. TTL on a key without a TTL).
var ErrCommand = errors.New("cachemir: command error")

// Client provides a high-level interface to a single cachemir-core server.
// It maintains a pool of connections for efficient reuse and is safe for
// concurrent use.
type Client struct {
	cfg  *config.ClientConfig
	pool *ConnectionPool
}

// ConnectionPool manages a pool of connections to the server. It creates
// connections on demand up to a configured maximum and reuses existing
// connections when available.
type ConnectionPool struct {
	connections chan net.Conn
	address     string
	connTimeout time.Duration
	mu          sync.Mutex
	maxConns    int
	created     int
}

// New creates a Client connected to addr using default configuration.
func New(addr string) *Client {
	cfg := config.LoadClientConfig()
	cfg.Addr = addr
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Client using the provided configuration. It
// panics if cfg fails validation, mirroring the store server's fail-fast
// treatment of misconfiguration.
func NewWithConfig(cfg *config.ClientConfig) *Client {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid client config: %v", err))
	}

	return &Client{
		cfg: cfg,
		pool: &ConnectionPool{
			address:     cfg.Addr,
			connections: make(chan net.Conn, cfg.MaxConns),
			maxConns:    cfg.MaxConns,
			connTimeout: time.Duration(cfg.ConnTimeoutSecs) * time.Second,
		},
	}
}

// call sends args as one request frame and returns the parsed response,
// returning the connection to the pool on success and discarding it on
// any I/O error.
func (c *Client) call(args []string) (*protocol.Response, error) {
	conn, err := c.pool.Get()
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(time.Duration(c.cfg.WriteTimeoutSecs) * time.Second)
	if err := conn.SetWriteDeadline(deadline); err != nil {
		conn.Close()
		return nil, err
	}
	if err := protocol.WriteRequest(conn, &protocol.Request{Args: args}); err != nil {
		conn.Close()
		return nil, err
	}

	readDeadline := time.Now().Add(time.Duration(c.cfg.ReadTimeoutSecs) * time.Second)
	if err := conn.SetReadDeadline(readDeadline); err != nil {
		conn.Close()
		return nil, err
	}
	resp, err := protocol.ReadResponse(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	c.pool.Put(conn)
	return resp, nil
}

// Get retrieves the value stored at key. It returns ErrNotFound if the key
// is absent or expired.
func (c *Client) Get(key string) ([]byte, error) {
	resp, err := c.call([]string{"get", key})
	if err != nil {
		return nil, err
	}
	if resp.Status == protocol.StatusNX {
		return nil, ErrNotFound
	}
	return resp.Payload, nil
}

// Set stores value at key with no expiration, replacing any prior entry.
func (c *Client) Set(key string, value []byte) error {
	_, err := c.call([]string{"set", key, string(value)})
	return err
}

// SetEx stores value at key with a TTL of ttlSeconds seconds.
func (c *Client) SetEx(key string, value []byte, ttlSeconds int64) error {
	resp, err := c.call([]string{"set", "ex", key, string(value), strconv.FormatInt(ttlSeconds, 10)})
	if err != nil {
		return err
	}
	if resp.Status == protocol.StatusErr {
		return ErrCommand
	}
	return nil
}

// Del removes key. Deleting an absent key is not an error.
func (c *Client) Del(key string) error {
	_, err := c.call([]string{"del", key})
	return err
}

// TTL returns the remaining whole seconds on key's expiration. It returns
// ErrNotFound if the key is absent or expired, and ErrCommand if the key
// exists without a TTL.
func (c *Client) TTL(key string) (int64, error) {
	resp, err := c.call([]string{"ttl", key})
	if err != nil {
		return 0, err
	}
	switch resp.Status {
	case protocol.StatusNX:
		return 0, ErrNotFound
	case protocol.StatusErr:
		return 0, ErrCommand
	}
	return strconv.ParseInt(string(resp.Payload), 10, 64)
}

// LRUEvict drops the least-recently-used key. It returns ErrCommand if the
// store is empty.
func (c *Client) LRUEvict() error {
	resp, err := c.call([]string{"lru_evict"})
	if err != nil {
		return err
	}
	if resp.Status == protocol.StatusErr {
		return ErrCommand
	}
	return nil
}

// LFUEvict drops the oldest key in the lowest-frequency bucket. It returns
// ErrCommand if the store is empty.
func (c *Client) LFUEvict() error {
	resp, err := c.call([]string{"lfu_evict"})
	if err != nil {
		return err
	}
	if resp.Status == protocol.StatusErr {
		return ErrCommand
	}
	return nil
}

// Close shuts down the client's connection pool.
func (c *Client) Close() error {
	c.pool.Close()
	return nil
}

// Get obtains a connection from the pool, dialing a new one if the pool
// has not yet reached its configured maximum.
func (cp *ConnectionPool) Get() (net.Conn, error) {
	select {
	case conn := <-cp.connections:
		return conn, nil
	default:
		cp.mu.Lock()
		if cp.created < cp.maxConns {
			cp.created++
			cp.mu.Unlock()

			dialer := &net.Dialer{Timeout: cp.connTimeout}
			conn, err := dialer.DialContext(context.Background(), "tcp", cp.address)
			if err != nil {
				cp.mu.Lock()
				cp.created--
				cp.mu.Unlock()
				return nil, err
			}
			return conn, nil
		}
		cp.mu.Unlock()

		select {
		case conn := <-cp.connections:
			return conn, nil
		case <-time.After(cp.connTimeout):
			return nil, fmt.Errorf("connection pool timeout")
		}
	}
}

// Put returns a connection to the pool for reuse. If the pool is full, the
// connection is closed instead of being stored.
func (cp *ConnectionPool) Put(conn net.Conn) {
	select {
	case cp.connections <- conn:
	default:
		if err := conn.Close(); err != nil {
			log.Printf("error closing connection: %v", err)
		}
		cp.mu.Lock()
		cp.created--
		cp.mu.Unlock()
	}
}

// Close shuts down the connection pool by closing all pooled connections.
func (cp *ConnectionPool) Close() {
	close(cp.connections)
	for conn := range cp.connections {
		if err := conn.Close(); err != nil {
			log.Printf("error closing connection: %v", err)
		}
	}
}
