package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerbosef(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)

	l.Verbosef("hidden %d", 1)
	assert.Empty(t, buf.String())

	l.SetVerbose(true)
	l.Verbosef("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miner.log")
	l := NewFile(path)
	l.Printf("hello %s", "file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

func TestDiscardClose(t *testing.T) {
	l := Discard()
	l.Printf("nothing")
	assert.NoError(t, l.Close())
}
