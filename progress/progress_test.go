package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicker-sh/flicker/term"
)

func newBufferRenderer() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewWithScreen(term.NewWriterScreen(&buf)), &buf
}

func TestFormatContract(t *testing.T) {
	line := Format(3, 10, "install", 10)
	assert.Equal(t, "install [███░░░░░░░]  30% (03/10)", line)
}

func TestFormatFilledAndPercent(t *testing.T) {
	cases := []struct {
		current, total, width int
		filled                int
		percent               string
	}{
		{0, 4, 8, 0, "  0%"},
		{1, 3, 9, 3, " 33%"},
		{2, 3, 9, 6, " 66%"},
		{5, 5, 20, 20, "100%"},
	}
	for _, tc := range cases {
		line := Format(tc.current, tc.total, "x", tc.width)
		assert.Equal(t, tc.filled, strings.Count(line, filledGlyph),
			"filled glyphs for %d/%d", tc.current, tc.total)
		assert.Equal(t, tc.width-tc.filled, strings.Count(line, emptyGlyph),
			"empty glyphs for %d/%d", tc.current, tc.total)
		assert.Contains(t, line, tc.percent)
	}
}

func TestFormatZeroPadsCounter(t *testing.T) {
	assert.Contains(t, Format(7, 100, "dl", 10), "(007/100)")
	assert.Contains(t, Format(7, 9, "dl", 10), "(7/9)")
}

func TestRenderNewlineOnlyAtCompletion(t *testing.T) {
	r, buf := newBufferRenderer()
	require.NoError(t, r.Render(2, 5, Options{Label: "copy", Width: 10}))
	assert.NotContains(t, buf.String(), "\n")

	r, buf = newBufferRenderer()
	require.NoError(t, r.Render(5, 5, Options{Label: "copy", Width: 10}))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestRenderIdempotent(t *testing.T) {
	r1, buf1 := newBufferRenderer()
	r2, buf2 := newBufferRenderer()

	opts := Options{Label: "sync", Width: 12}
	require.NoError(t, r1.Render(4, 9, opts))
	require.NoError(t, r2.Render(4, 9, opts))
	assert.Equal(t, buf1.Bytes(), buf2.Bytes())

	// Repeated calls redraw the identical line in place.
	require.NoError(t, r1.Render(4, 9, opts))
	assert.Equal(t, buf1.String(), buf2.String()+buf2.String())
}

func TestRenderValidation(t *testing.T) {
	r, buf := newBufferRenderer()

	err := r.Render(11, 10, Options{Label: "x", Width: 10})
	assert.ErrorIs(t, err, ErrRange)

	err = r.Render(1, 0, Options{Label: "x", Width: 10})
	assert.ErrorIs(t, err, ErrRange)

	err = r.Render(1, 10, Options{Label: "x", Width: 0})
	assert.ErrorIs(t, err, ErrRange)

	err = r.Render(-1, 10, Options{Label: "x", Width: 10})
	assert.ErrorIs(t, err, ErrArgument)

	err = r.Render(1, 10, Options{Label: "x", Width: 10, LinesAbove: -2})
	assert.ErrorIs(t, err, ErrArgument)

	assert.Empty(t, buf.String(), "validation failures must not draw")
}

func TestRenderPinned(t *testing.T) {
	r, buf := newBufferRenderer()
	require.NoError(t, r.Render(1, 4, Options{Label: "all", Width: 8, LinesAbove: 3}))

	out := buf.String()
	assert.Contains(t, out, "\x1b[3A", "cursor moves up before drawing")
	assert.Contains(t, out, "\x1b[s", "cursor position saved")
	assert.Contains(t, out, "\x1b[u", "cursor position restored")
	assert.Contains(t, out, "all [")
}
