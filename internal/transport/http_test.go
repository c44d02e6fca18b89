package transport

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/Ne02ptzero/pistache/internal/http/header"
	"github.com/Ne02ptzero/pistache/internal/http/message"
	"github.com/Ne02ptzero/pistache/internal/http/stream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pong = stream.HandlerFunc(func(req *message.Request, peer stream.Peer) {
	_ = peer.Respond(message.NewResponse(message.OK, "pong"))
})

const pongResponse = "HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\npong"

func TestNewHTTPServer(t *testing.T) {
	registry := header.NewRegistry()
	port := "8080"

	srv := NewHTTPServer(port, registry, pong, Options{ReadBufferSize: 4096}, zap.NewNop())
	assert.NotNil(t, srv)

	httpSrv, ok := srv.(*httpServer)
	assert.True(t, ok)
	assert.Equal(t, port, httpSrv.port)
	assert.Equal(t, registry, httpSrv.handler.registry)
	assert.Equal(t, 4096, httpSrv.handler.opts.ReadBufferSize)
	assert.NotNil(t, httpSrv.handler.opts.Stream.Logger)
}

func TestNewHTTPServer_Defaults(t *testing.T) {
	srv := NewHTTPServer("0", header.NewRegistry(), pong, Options{}, nil)

	httpSrv := srv.(*httpServer)
	assert.NotNil(t, httpSrv.logger)
	assert.Equal(t, DefaultReadBufferSize, httpSrv.handler.opts.ReadBufferSize)
}

func TestHTTPServer_Listen(t *testing.T) {
	srv := NewHTTPServer("0", header.NewRegistry(), pong, Options{}, zap.NewNop())

	listener, err := srv.Listen()
	assert.NoError(t, err)
	assert.NotNil(t, listener)
	listener.Close()
}

func TestHTTPServer_Serve(t *testing.T) {
	srv := NewHTTPServer("0", header.NewRegistry(), pong, Options{}, zap.NewNop())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		listener.Close()
	}()

	err = srv.Serve(listener)
	assert.True(t, errors.Is(err, net.ErrClosed))
}

func TestHTTPServer_Serve_AcceptError(t *testing.T) {
	srv := NewHTTPServer("0", header.NewRegistry(), pong, Options{}, zap.NewNop())

	ml := new(mockListener)
	ml.On("Accept").Return(nil, errors.New("accept error")).Once()
	ml.On("Accept").Return(nil, net.ErrClosed).Once()

	err := srv.Serve(ml)
	assert.True(t, errors.Is(err, net.ErrClosed))
	ml.AssertExpectations(t)
}

func TestHTTPServer_Serve_Success(t *testing.T) {
	srv := NewHTTPServer("0", header.NewRegistry(), pong, Options{}, zap.NewNop())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		_ = srv.Serve(listener)
	}()

	conn, err := net.Dial("tcp", listener.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET /ping HTTP/1.1\r\nHost: localhost\r\nConnection: close\r\n\r\n"))
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	got, err := io.ReadAll(conn)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\nConnection: close\r\nContent-Length: 4\r\n\r\npong", string(got))
}

type mockListener struct {
	mock.Mock
}

func (m *mockListener) Accept() (net.Conn, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(net.Conn), args.Error(1)
}

func (m *mockListener) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockListener) Addr() net.Addr {
	args := m.Called()
	return args.Get(0).(net.Addr)
}
