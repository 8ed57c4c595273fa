package transport

import (
	"net"
	"testing"
	"time"

	httperrors "github.com/tinyhttpc/tinyhttpc/errors"
)

func setupTcpTestServer(t *testing.T, serverLogic func(net.Conn)) (string, int, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test server: %v", err)
	}

	addr := listener.Addr().(*net.TCPAddr)

	done := make(chan struct{})
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		serverLogic(conn)
		conn.Close()
		close(done)
	}()

	cleanup := func() {
		listener.Close()
		<-done
	}

	return addr.IP.String(), addr.Port, cleanup
}

func newTcpTransportOrSkip(t *testing.T) *TcpTransport {
	t.Helper()

	trans, err := NewTcpTransport()
	if err != nil {
		t.Skipf("io_uring unavailable: %v", err)
	}
	return trans
}

func assertTransportError(t *testing.T, err error, want httperrors.TransportError) {
	t.Helper()

	if err == nil {
		t.Fatal("Expected transport error, got nil")
	}
	httpErr, ok := err.(*httperrors.HttpError)
	if !ok {
		t.Fatalf("Expected *httperrors.HttpError, got %T", err)
	}
	if httpErr.Type != httperrors.ErrorTransport {
		t.Fatalf("Expected transport error type, got %v", httpErr.Type)
	}
	if httpErr.TransportErr != want {
		t.Errorf("Expected transport error code %d, got %d", want, httpErr.TransportErr)
	}
}

func TestTcpTransport_Construction(t *testing.T) {
	trans := newTcpTransportOrSkip(t)
	defer trans.Destroy()

	if trans.Connected() {
		t.Error("New transport should not report connected")
	}
}

func TestTcpTransport_Connect_Success(t *testing.T) {
	host, port, cleanup := setupTcpTestServer(t, func(conn net.Conn) {})
	defer cleanup()

	trans := newTcpTransportOrSkip(t)
	defer trans.Destroy()

	if err := trans.Connect(host, port); err != nil {
		t.Errorf("Connect failed: %v", err)
	}

	if !trans.Connected() {
		t.Error("Transport should report connected after successful connect")
	}

	trans.Close()
}

func TestTcpTransport_Connect_Failure_DnsError(t *testing.T) {
	trans := newTcpTransportOrSkip(t)
	defer trans.Destroy()

	err := trans.Connect("this-is-not-a-real-domain.invalid", 80)
	assertTransportError(t, err, httperrors.TransportErrorDnsFailure)
}

func TestTcpTransport_Connect_Failure_ConnectionRefused(t *testing.T) {
	trans := newTcpTransportOrSkip(t)
	defer trans.Destroy()

	// Use a port that's likely not listening
	err := trans.Connect("127.0.0.1", 65531)
	assertTransportError(t, err, httperrors.TransportErrorSocketConnectFailure)
}

func TestTcpTransport_WriteRead_Success(t *testing.T) {
	messageToSend := "hello server"
	messageFromServer := "hello client"
	received := make(chan string, 1)

	host, port, cleanup := setupTcpTestServer(t, func(conn net.Conn) {
		buf := make([]byte, 1024)
		n, _ := conn.Read(buf)
		received <- string(buf[:n])
		conn.Write([]byte(messageFromServer))
	})
	defer cleanup()

	trans := newTcpTransportOrSkip(t)
	defer trans.Destroy()

	if err := trans.Connect(host, port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer trans.Close()

	n, err := trans.Write([]byte(messageToSend))
	if err != nil {
		t.Errorf("Write failed: %v", err)
	}
	if n != len(messageToSend) {
		t.Errorf("Expected to write %d bytes, wrote %d", len(messageToSend), n)
	}

	select {
	case msg := <-received:
		if msg != messageToSend {
			t.Errorf("Expected %q, got %q", messageToSend, msg)
		}
	case <-time.After(time.Second):
		t.Error("Timeout waiting for message")
	}

	buf := make([]byte, 1024)
	n, err = trans.Read(buf)
	if err != nil {
		t.Errorf("Read failed: %v", err)
	}
	if string(buf[:n]) != messageFromServer {
		t.Errorf("Expected %q, got %q", messageFromServer, string(buf[:n]))
	}
}

func TestTcpTransport_Read_Failure_ConnectionClosed(t *testing.T) {
	host, port, cleanup := setupTcpTestServer(t, func(conn net.Conn) {
		// Server immediately closes
	})
	defer cleanup()

	trans := newTcpTransportOrSkip(t)
	defer trans.Destroy()

	if err := trans.Connect(host, port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer trans.Close()

	// Give server time to close
	time.Sleep(50 * time.Millisecond)

	buf := make([]byte, 1024)
	_, err := trans.Read(buf)
	assertTransportError(t, err, httperrors.TransportErrorConnectionClosed)
}

func TestTcpTransport_Close_Idempotent(t *testing.T) {
	host, port, cleanup := setupTcpTestServer(t, func(conn net.Conn) {})
	defer cleanup()

	trans := newTcpTransportOrSkip(t)
	defer trans.Destroy()

	if err := trans.Connect(host, port); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := trans.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if trans.Connected() {
		t.Error("Transport should not report connected after close")
	}

	// Second close should also succeed
	if err := trans.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

func TestTcpTransport_Write_Failure_NoConnection(t *testing.T) {
	trans := newTcpTransportOrSkip(t)
	defer trans.Destroy()

	_, err := trans.Write([]byte("test"))
	assertTransportError(t, err, httperrors.TransportErrorSocketWriteFailure)
}

func TestTcpTransport_Read_Failure_NoConnection(t *testing.T) {
	trans := newTcpTransportOrSkip(t)
	defer trans.Destroy()

	buf := make([]byte, 1024)
	_, err := trans.Read(buf)
	assertTransportError(t, err, httperrors.TransportErrorSocketReadFailure)
}
