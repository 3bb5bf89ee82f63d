package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverwriteRedrawsInPlace(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterScreen(&buf)

	s.Overwrite("first")
	s.Overwrite("second")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\rfirst"))
	assert.Contains(t, out, "\rsecond")
	assert.NotContains(t, out, "\n")
}

func TestClearLineParksAtColumnOne(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterScreen(&buf)

	s.Overwrite("spinner line")
	s.ClearLine()

	assert.Contains(t, buf.String(), "\r\x1b[2K")
}

func TestCursorVisibility(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterScreen(&buf)

	s.HideCursor()
	s.ShowCursor()

	assert.Contains(t, buf.String(), "\x1b[?25l")
	assert.Contains(t, buf.String(), "\x1b[?25h")
}

func TestCursorRepositioning(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterScreen(&buf)

	s.SaveCursor()
	s.CursorUp(4)
	s.RestoreCursor()

	out := buf.String()
	assert.Contains(t, out, "\x1b[s")
	assert.Contains(t, out, "\x1b[4A")
	assert.Contains(t, out, "\x1b[u")
}

func TestWriterScreenDefaults(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriterScreen(&buf)

	assert.False(t, s.IsTerminal())
	assert.Equal(t, 80, s.Width())
}
