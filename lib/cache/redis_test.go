package cache

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeRedis implements just enough of the server side of RESP to exercise
// the client: AUTH, SELECT, GET, SET (with EX), DEL.
type fakeRedis struct {
	listener net.Listener

	mu       sync.Mutex
	values   map[string]string
	password string
	commands []string
}

func newFakeRedis(t *testing.T, password string) *fakeRedis {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	f := &fakeRedis{
		listener: listener,
		values:   map[string]string{},
		password: password,
	}
	go f.serve()
	t.Cleanup(func() { listener.Close() })
	return f
}

func (f *fakeRedis) serve() {
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeRedis) handle(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)

	for {
		args, err := readCommandArgs(reader)
		if err != nil {
			return
		}
		if len(args) == 0 {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, strings.Join(args, " "))
		f.mu.Unlock()

		switch strings.ToUpper(args[0]) {
		case "AUTH":
			if args[len(args)-1] == f.password {
				conn.Write([]byte("+OK\r\n"))
			} else {
				conn.Write([]byte("-ERR invalid password\r\n"))
			}
		case "SELECT":
			conn.Write([]byte("+OK\r\n"))
		case "SET":
			f.mu.Lock()
			f.values[args[1]] = args[2]
			f.mu.Unlock()
			conn.Write([]byte("+OK\r\n"))
		case "GET":
			f.mu.Lock()
			value, ok := f.values[args[1]]
			f.mu.Unlock()
			if !ok {
				conn.Write([]byte("$-1\r\n"))
				break
			}
			conn.Write([]byte("$" + strconv.Itoa(len(value)) + "\r\n" + value + "\r\n"))
		case "DEL":
			deleted := 0
			f.mu.Lock()
			for _, key := range args[1:] {
				if _, ok := f.values[key]; ok {
					delete(f.values, key)
					deleted++
				}
			}
			f.mu.Unlock()
			conn.Write([]byte(":" + strconv.Itoa(deleted) + "\r\n"))
		default:
			conn.Write([]byte("-ERR unknown command\r\n"))
		}
	}
}

func readCommandArgs(r *bufio.Reader) ([]string, error) {
	header, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(header, "*")))
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, count)
	for i := 0; i < count; i++ {
		sizeLine, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(sizeLine, "$")))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		for read := 0; read < len(buf); {
			n, err := r.Read(buf[read:])
			if err != nil {
				return nil, err
			}
			read += n
		}
		args = append(args, string(buf[:size]))
	}
	return args, nil
}

func TestRedisStoreRoundTrip(t *testing.T) {
	fake := newFakeRedis(t, "")
	store, err := NewRedisStore(RedisConfig{Address: fake.listener.Addr().String()})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, hit, err := store.Get(ctx, "@COLLEGE_LIST/CACHE")
	require.NoError(t, err)
	require.False(t, hit)

	require.NoError(t, store.Set(ctx, "@COLLEGE_LIST/CACHE", []byte(`[{"name":"x"}]`), 24*time.Hour))

	value, hit, err := store.Get(ctx, "@COLLEGE_LIST/CACHE")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, `[{"name":"x"}]`, string(value))

	require.NoError(t, store.Delete(ctx, "@COLLEGE_LIST/CACHE"))
	_, hit, err = store.Get(ctx, "@COLLEGE_LIST/CACHE")
	require.NoError(t, err)
	require.False(t, hit)
}

func TestRedisStoreSetCarriesTTLSeconds(t *testing.T) {
	fake := newFakeRedis(t, "")
	store, err := NewRedisStore(RedisConfig{Address: fake.listener.Addr().String()})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", []byte("v"), 86400*time.Second))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Contains(t, fake.commands, "SET k v EX 86400")
}

func TestRedisStoreAuth(t *testing.T) {
	fake := newFakeRedis(t, "hunter2")

	_, err := NewRedisStore(RedisConfig{Address: fake.listener.Addr().String(), Password: "wrong"})
	require.Error(t, err)

	store, err := NewRedisStore(RedisConfig{Address: fake.listener.Addr().String(), Password: "hunter2"})
	require.NoError(t, err)
	store.Close()
}

func TestRedisStoreRequiresAddress(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{})
	require.Error(t, err)
}
