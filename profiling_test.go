package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginPGOCaptureWritesProfile(t *testing.T) {
	t.Chdir(t.TempDir())

	stop, err := beginPGOCapture()
	require.NoError(t, err)
	stop()
	stop()

	info, err := os.Stat(pgoProfilePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
