package flicker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicker-sh/flicker/style"
)

func TestConfigApply(t *testing.T) {
	origStyle, origInterval := style.Default, style.Interval
	defer func() {
		style.Default = origStyle
		style.Interval = origInterval
		Flags.Style = origStyle
		Flags.Interval = origInterval
	}()

	cfg := Config{Style: "clock", Interval: "80ms"}
	require.NoError(t, cfg.Apply())

	assert.Equal(t, "clock", style.Default)
	assert.Equal(t, 80*time.Millisecond, style.Interval)
}

func TestConfigApplyRejectsUnknownStyle(t *testing.T) {
	cfg := Config{Style: "laser"}
	assert.ErrorIs(t, cfg.Apply(), style.ErrUnknown)
}

func TestConfigApplyRejectsBadInterval(t *testing.T) {
	assert.Error(t, Config{Interval: "soonish"}.Apply())
	assert.Error(t, Config{Interval: "-5ms"}.Apply())
}

func TestConfigApplyEmptyIsNoop(t *testing.T) {
	origStyle, origInterval := style.Default, style.Interval

	require.NoError(t, Config{}.Apply())

	assert.Equal(t, origStyle, style.Default)
	assert.Equal(t, origInterval, style.Interval)
}
