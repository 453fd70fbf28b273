package serial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteBeforeConfigureFailsWithPipe(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer master.Close()
	defer slave.Close()

	_, err = master.Write([]byte("x"))
	require.ErrorIs(t, err, ErrPipe)
}

func TestWriteEmptyIsInvalid(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer master.Close()
	defer slave.Close()

	require.NoError(t, master.Configure(DefaultConfig()))
	_, err = master.Write(nil)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestWriteAfterCloseFailsWithClosed(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer slave.Close()

	require.NoError(t, master.Configure(DefaultConfig()))
	require.NoError(t, master.Close())

	_, err = master.Write([]byte("x"))
	require.ErrorIs(t, err, ErrClosed)
}

func TestConfigureAfterCloseFailsWithClosed(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer slave.Close()

	require.NoError(t, master.Close())
	err = master.Configure(DefaultConfig())
	require.ErrorIs(t, err, ErrClosed)
}

func TestFdReturnsMinusOneAfterClose(t *testing.T) {
	master, slave, err := OpenPTY()
	require.NoError(t, err)
	defer slave.Close()

	require.NotEqual(t, -1, master.Fd())
	require.NoError(t, master.Close())
	require.Equal(t, -1, master.Fd())
}

func TestErrorIsMatchesByKind(t *testing.T) {
	e := newError("configure", KindInvalid, "bad baud rate")
	require.True(t, errors.Is(e, ErrInvalid))
	require.False(t, errors.Is(e, ErrPipe))
}
