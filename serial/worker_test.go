package serial

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// rawRead retries a non-blocking read against fd until it has read
// want bytes, sees an error other than EAGAIN, or the deadline passes.
func rawRead(t *testing.T, fd int, want int, deadline time.Duration) []byte {
	t.Helper()
	buf := make([]byte, want)
	got := 0
	end := time.Now().Add(deadline)
	for got < want && time.Now().Before(end) {
		n, err := unix.Read(fd, buf[got:])
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				time.Sleep(2 * time.Millisecond)
				continue
			}
			t.Fatalf("rawRead: %v", err)
		}
		got += n
	}
	require.Equal(t, want, got, "rawRead timed out with %d/%d bytes", got, want)
	return buf
}

func rawWrite(t *testing.T, fd int, data []byte) {
	t.Helper()
	n, err := unix.Write(fd, data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
}

// TestLoopbackRoundTrip exercises the full Opened -> Configured ->
// Running -> Stopped cycle over a pty pair: the master Port's worker
// observes bytes written on the slave side via OnData, and bytes
// written through the master Port's Write arrive readable on the
// slave side.
func TestLoopbackRoundTrip(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer master.Close()
	defer slave.Close()

	cfg := DefaultConfig()
	cfg.FlowControl = FlowNone
	require.NoError(t, master.Configure(cfg))

	var (
		mu      sync.Mutex
		got     []byte
		gotCond = make(chan struct{}, 1)
	)
	cb := Callbacks{
		OnData: func(data []byte) {
			mu.Lock()
			got = append(got, data...)
			mu.Unlock()
			select {
			case gotCond <- struct{}{}:
			default:
			}
		},
	}
	require.NoError(t, master.Start(cb))
	defer master.Stop()

	payload := []byte("hello core\x00")
	rawWrite(t, slave.Fd(), payload)

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= len(payload) {
			break
		}
		select {
		case <-gotCond:
		case <-deadline:
			t.Fatalf("timed out waiting for OnData, have %d/%d bytes", n, len(payload))
		}
	}
	mu.Lock()
	require.Equal(t, payload, got)
	mu.Unlock()

	reply := []byte("hello device\x00")
	n, err := master.Write(reply)
	require.NoError(t, err)
	require.Equal(t, len(reply), n)

	echoed := rawRead(t, slave.Fd(), len(reply), 2*time.Second)
	require.Equal(t, reply, echoed)

	require.NoError(t, master.Stop())
	require.NoError(t, master.Close())
}

func TestStartIsIdempotent(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer master.Close()
	defer slave.Close()

	require.NoError(t, master.Configure(DefaultConfig()))
	require.NoError(t, master.Start(Callbacks{}))
	require.NoError(t, master.Start(Callbacks{}))
	require.NoError(t, master.Stop())
}

func TestStopIsIdempotent(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer master.Close()
	defer slave.Close()

	require.NoError(t, master.Configure(DefaultConfig()))
	require.NoError(t, master.Start(Callbacks{}))
	require.NoError(t, master.Stop())
	require.NoError(t, master.Stop())
}

func TestCloseIsIdempotent(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer slave.Close()

	require.NoError(t, master.Configure(DefaultConfig()))
	require.NoError(t, master.Close())
	require.NoError(t, master.Close())
}

func TestConfigureRejectsWhileRunning(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer master.Close()
	defer slave.Close()

	require.NoError(t, master.Configure(DefaultConfig()))
	require.NoError(t, master.Start(Callbacks{}))
	defer master.Stop()

	err = master.Configure(DefaultConfig())
	require.ErrorIs(t, err, ErrBusy)
}
