package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	defer SetLevel(LevelInfo)
	defer SetOutput(new(bytes.Buffer))

	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelWarn)

	Info("dropped")
	require.Empty(t, buf.String())

	Warn("kept %d", 1)
	require.Contains(t, buf.String(), "[MicroSerial][WARN] kept 1")
}
