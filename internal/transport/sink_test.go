package transport

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/lineship/internal/domain"
)

func endpointOf(t *testing.T, addr net.Addr) domain.Endpoint {
	t.Helper()
	switch a := addr.(type) {
	case *net.TCPAddr:
		return domain.Endpoint{IP: a.IP, Port: a.Port}
	case *net.UDPAddr:
		return domain.Endpoint{IP: a.IP, Port: a.Port}
	}
	t.Fatalf("unexpected addr type %T", addr)
	return domain.Endpoint{}
}

// acceptAll returns a channel that receives everything the first client sends until EOF.
func acceptAll(t *testing.T, ln net.Listener) <-chan string {
	t.Helper()
	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			out <- "accept: " + err.Error()
			return
		}
		defer conn.Close()
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		b, _ := io.ReadAll(conn)
		out <- string(b)
	}()
	return out
}

func TestStreamSink_SendsAllFrames(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	received := acceptAll(t, ln)

	sink, err := DialStream(context.Background(), endpointOf(t, ln.Addr()), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, StateConnected, sink.State())
	assert.Equal(t, domain.TransportStream, sink.Kind())

	require.NoError(t, sink.Send(context.Background(), domain.Frame("a\nb\n")))
	require.NoError(t, sink.Send(context.Background(), domain.Frame("c\n")))
	require.NoError(t, sink.Close())
	assert.Equal(t, StateClosed, sink.State())

	select {
	case got := <-received:
		assert.Equal(t, "a\nb\nc\n", got)
	case <-time.After(5 * time.Second):
		t.Fatal("receiver did not finish")
	}
}

func TestStreamSink_LargeFrame(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	received := acceptAll(t, ln)

	sink, err := DialStream(context.Background(), endpointOf(t, ln.Addr()), DefaultOptions())
	require.NoError(t, err)

	big := strings.Repeat(strings.Repeat("x", 1023)+"\n", 4096) // 4MB
	require.NoError(t, sink.Send(context.Background(), domain.Frame(big)))
	require.NoError(t, sink.Close())

	got := <-received
	assert.Equal(t, len(big), len(got))
}

func TestStreamSink_SendAfterClose(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	acceptAll(t, ln)

	sink, err := DialStream(context.Background(), endpointOf(t, ln.Addr()), DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close(), "second Close must be a no-op")

	err = sink.Send(context.Background(), domain.Frame("late\n"))
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

func TestDialStream_Refused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ep := endpointOf(t, ln.Addr())
	ln.Close()

	_, err = DialStream(context.Background(), ep, DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestDatagramSink_OneDatagramPerFrame(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	sink, err := DialDatagram(context.Background(), endpointOf(t, pc.LocalAddr()), DefaultOptions())
	require.NoError(t, err)
	defer sink.Close()
	assert.Equal(t, domain.TransportDatagram, sink.Kind())

	frames := []string{"1\n2\n", "3\n4\n", "5\n"}
	for _, f := range frames {
		require.NoError(t, sink.Send(context.Background(), domain.Frame(f)))
	}

	buf := make([]byte, MaxDatagramSize)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	for _, want := range frames {
		n, _, err := pc.ReadFrom(buf)
		require.NoError(t, err)
		assert.Equal(t, want, string(buf[:n]))
	}
}

func TestDatagramSink_RejectsOversizedFrame(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	opts := DefaultOptions()
	opts.MaxDatagramSize = 16
	sink, err := DialDatagram(context.Background(), endpointOf(t, pc.LocalAddr()), opts)
	require.NoError(t, err)
	defer sink.Close()

	err = sink.Send(context.Background(), domain.Frame(strings.Repeat("x", 17)))
	assert.ErrorIs(t, err, domain.ErrTransport)

	require.NoError(t, sink.Close())
	assert.ErrorIs(t, sink.Send(context.Background(), domain.Frame("x\n")), domain.ErrSessionClosed)
}

func TestOpen_SelectsVariant(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	sink, err := Open(context.Background(), domain.TransportDatagram, endpointOf(t, pc.LocalAddr()), Options{})
	require.NoError(t, err)
	defer sink.Close()
	assert.IsType(t, &DatagramSink{}, sink)

	_, err = Open(context.Background(), domain.TransportKind(7), endpointOf(t, pc.LocalAddr()), Options{})
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestDatagramSink_IgnoresUnreachablePeer(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	ep := endpointOf(t, pc.LocalAddr())
	require.NoError(t, pc.Close())

	sink, err := DialDatagram(context.Background(), ep, DefaultOptions())
	require.NoError(t, err)
	defer sink.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, sink.Send(context.Background(), domain.Frame("x\n")), "send %d", i+1)
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDatagramSink_IPv6Loopback(t *testing.T) {
	pc, err := net.ListenPacket("udp6", "[::1]:0")
	if err != nil {
		t.Skipf("ipv6 loopback unavailable: %v", err)
	}
	defer pc.Close()

	sink, err := DialDatagram(context.Background(), endpointOf(t, pc.LocalAddr()), DefaultOptions())
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Send(context.Background(), domain.Frame("v6\n")))

	buf := make([]byte, 64)
	require.NoError(t, pc.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, "v6\n", string(buf[:n]))
}
