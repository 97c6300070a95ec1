package outwriter

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	err := writeWithFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "report body\n")
		return err
	}, "Wrote report")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report body\n", string(content))
}

func TestWriteWithFilePropagatesWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	boom := errors.New("render failed")

	err := writeWithFile(path, func(io.Writer) error { return boom }, "Wrote report")
	assert.ErrorIs(t, err, boom)
}

func TestWriteWithFileBadPath(t *testing.T) {
	err := writeWithFile(filepath.Join(t.TempDir(), "missing", "report.txt"),
		func(io.Writer) error { return nil }, "Wrote report")
	assert.Error(t, err)
}

func TestMaxNameWidthBounds(t *testing.T) {
	width := maxNameWidth()
	assert.GreaterOrEqual(t, width, 15)
	assert.LessOrEqual(t, width, 60)
}
