package ring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRoundsCapacityUp(t *testing.T) {
	cases := map[int]int{
		0:    2,
		1:    2,
		2:    2,
		3:    4,
		4:    4,
		5:    8,
		1000: 1024,
		1024: 1024,
		1025: 2048,
	}
	for in, want := range cases {
		b := New(in)
		require.Equal(t, want, b.Cap(), "New(%d)", in)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	b := New(16) // usable capacity 15
	n := b.Write([]byte("hello"))
	require.Equal(t, 5, n)
	require.Equal(t, 5, b.Len())

	out := make([]byte, 5)
	n = b.Read(out)
	require.Equal(t, 5, n)
	require.Equal(t, "hello", string(out))
	require.Equal(t, 0, b.Len())
}

func TestWriteShortCountWhenFull(t *testing.T) {
	b := New(4) // capacity 4, usable 3
	n := b.Write([]byte{1, 2, 3, 4, 5})
	require.Equal(t, 3, n)
	require.Equal(t, 3, b.Len())

	// Buffer is full; further writes return 0.
	require.Equal(t, 0, b.Write([]byte{6}))
}

func TestReadShortCountWhenEmpty(t *testing.T) {
	b := New(8)
	out := make([]byte, 4)
	require.Equal(t, 0, b.Read(out))

	b.Write([]byte{1, 2})
	require.Equal(t, 2, b.Read(out))
	require.Equal(t, 0, b.Read(out))
}

func TestWrapAroundPreservesOrder(t *testing.T) {
	b := New(8) // usable capacity 7
	buf := make([]byte, 4)

	for round := 0; round < 100; round++ {
		chunk := []byte{byte(round), byte(round + 1), byte(round + 2)}
		require.Equal(t, len(chunk), b.Write(chunk))
		n := b.Read(buf)
		require.Equal(t, len(chunk), n)
		require.Equal(t, chunk, buf[:n])
	}
}

func TestConcurrentProducerConsumerFIFO(t *testing.T) {
	const total = 1_000_000
	b := New(4096)

	produced := make([]byte, total)
	rand.New(rand.NewSource(1)).Read(produced)

	consumed := make([]byte, 0, total)
	done := make(chan struct{})

	go func() {
		buf := make([]byte, 4096)
		for len(consumed) < total {
			n := b.Read(buf)
			if n > 0 {
				consumed = append(consumed, buf[:n]...)
			}
		}
		close(done)
	}()

	r := rand.New(rand.NewSource(2))
	offset := 0
	for offset < total {
		chunkSize := 1 + r.Intn(256)
		if offset+chunkSize > total {
			chunkSize = total - offset
		}
		written := 0
		for written < chunkSize {
			n := b.Write(produced[offset+written : offset+chunkSize])
			written += n
		}
		offset += chunkSize
	}
	<-done

	require.Equal(t, produced, consumed)
}
