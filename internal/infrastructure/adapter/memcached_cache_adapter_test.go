package adapter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memcachedServer speaks the subset of the memcached text protocol the
// adapter uses. Expiration times are ignored.
type memcachedServer struct {
	listener net.Listener

	mu    sync.Mutex
	items map[string][]byte
}

func startMemcachedServer(t *testing.T) *memcachedServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &memcachedServer{listener: listener, items: make(map[string][]byte)}
	go s.serve()
	t.Cleanup(func() { _ = listener.Close() })
	return s
}

func (s *memcachedServer) addr() string {
	return s.listener.Addr().String()
}

func (s *memcachedServer) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	return string(v), ok
}

func (s *memcachedServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *memcachedServer) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var reply string
		switch fields[0] {
		case "get", "gets":
			reply = s.get(fields[1:])
		case "set", "add":
			size, err := strconv.Atoi(fields[4])
			if err != nil {
				return
			}
			data := make([]byte, size+2)
			if _, err := io.ReadFull(reader, data); err != nil {
				return
			}
			reply = s.store(fields[0], fields[1], data[:size])
		case "delete":
			reply = s.delete(fields[1])
		case "incr":
			delta, _ := strconv.ParseUint(fields[2], 10, 64)
			reply = s.incr(fields[1], delta)
		case "version":
			reply = "VERSION 1.6.0\r\n"
		default:
			reply = "ERROR\r\n"
		}

		if _, err := conn.Write([]byte(reply)); err != nil {
			return
		}
	}
}

func (s *memcachedServer) get(keys []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, key := range keys {
		if v, ok := s.items[key]; ok {
			fmt.Fprintf(&b, "VALUE %s 0 %d 1\r\n%s\r\n", key, len(v), v)
		}
	}
	b.WriteString("END\r\n")
	return b.String()
}

func (s *memcachedServer) store(verb, key string, value []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; exists && verb == "add" {
		return "NOT_STORED\r\n"
	}
	s.items[key] = value
	return "STORED\r\n"
}

func (s *memcachedServer) delete(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[key]; !exists {
		return "NOT_FOUND\r\n"
	}
	delete(s.items, key)
	return "DELETED\r\n"
}

func (s *memcachedServer) incr(key string, delta uint64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.items[key]
	if !exists {
		return "NOT_FOUND\r\n"
	}
	n, err := strconv.ParseUint(string(v), 10, 64)
	if err != nil {
		return "CLIENT_ERROR cannot increment or decrement non-numeric value\r\n"
	}
	n += delta
	s.items[key] = []byte(strconv.FormatUint(n, 10))
	return fmt.Sprintf("%d\r\n", n)
}

func TestMemcachedCacheAdapter_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	server := startMemcachedServer(t)
	cache := NewMemcachedCacheAdapter([]string{server.addr()}, discardLogger())

	_, err := cache.Get(ctx, "rooms:1:20")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	require.NoError(t, cache.Set(ctx, "rooms:1:20", []byte(`[{"id":1}]`), 20*time.Minute))

	stored, ok := server.value("hotel:1:rooms:1:20")
	require.True(t, ok, "keys live under the current generation")
	assert.Equal(t, `[{"id":1}]`, stored)

	got, err := cache.Get(ctx, "rooms:1:20")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	require.NoError(t, cache.Delete(ctx, "rooms:1:20"))
	require.NoError(t, cache.Delete(ctx, "rooms:1:20"), "deleting a missing key is not an error")

	_, err = cache.Get(ctx, "rooms:1:20")
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestMemcachedCacheAdapter_DeletePatternBumpsGeneration(t *testing.T) {
	ctx := context.Background()
	server := startMemcachedServer(t)
	cache := NewMemcachedCacheAdapter([]string{server.addr()}, discardLogger())

	require.NoError(t, cache.Set(ctx, "rooms:1:20", []byte("old"), time.Minute))
	require.NoError(t, cache.Set(ctx, "facilities", []byte("old"), time.Minute))

	require.NoError(t, cache.DeletePattern(ctx, "rooms*"))

	generation, ok := server.value("hotel:generation")
	require.True(t, ok)
	assert.Equal(t, "2", generation)

	for _, key := range []string{"rooms:1:20", "facilities"} {
		_, err := cache.Get(ctx, key)
		assert.True(t, errors.Is(err, ErrCacheMiss), "key %s belongs to the old generation", key)
	}

	require.NoError(t, cache.Set(ctx, "rooms:1:20", []byte("new"), time.Minute))
	got, err := cache.Get(ctx, "rooms:1:20")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	_, ok = server.value("hotel:2:rooms:1:20")
	assert.True(t, ok)
}

func TestMemcachedCacheAdapter_DeletePatternBeforeAnyWrite(t *testing.T) {
	ctx := context.Background()
	server := startMemcachedServer(t)
	cache := NewMemcachedCacheAdapter([]string{server.addr()}, discardLogger())

	require.NoError(t, cache.DeletePattern(ctx, "rooms*"))

	require.NoError(t, cache.Set(ctx, "rooms:1:20", []byte("x"), time.Minute))
	_, ok := server.value("hotel:1:rooms:1:20")
	assert.True(t, ok)
}

func TestMemcachedCacheAdapter_Ping(t *testing.T) {
	server := startMemcachedServer(t)
	cache := NewMemcachedCacheAdapter([]string{server.addr()}, discardLogger())

	assert.NoError(t, cache.Ping(context.Background()))
}
