package proc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAndWaitSuccess(t *testing.T) {
	h, err := Start("true")
	require.NoError(t, err)
	require.NotZero(t, h.PID())

	assert.Equal(t, 0, h.Wait())
}

func TestWaitPreservesExitCode(t *testing.T) {
	h, err := Startf("exit 7")
	require.NoError(t, err)

	assert.Equal(t, 7, h.Wait())
}

func TestAliveTransitions(t *testing.T) {
	h, err := Start("sleep", "0.3")
	require.NoError(t, err)

	assert.True(t, h.Alive())
	h.Wait()
	assert.False(t, h.Alive())
}

func TestAliveIsNonDestructive(t *testing.T) {
	h, err := Start("true")
	require.NoError(t, err)

	// Polling liveness must not consume the handle.
	for i := 0; i < 5; i++ {
		h.Alive()
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, Known(h))
	assert.Equal(t, 0, h.Wait())
}

func TestWaitConsumesHandle(t *testing.T) {
	h, err := Start("true")
	require.NoError(t, err)

	assert.True(t, Known(h))
	assert.NotNil(t, Lookup(h.PID()))

	h.Wait()
	assert.False(t, Known(h))
	assert.Nil(t, Lookup(h.PID()))
}

func TestTerminate(t *testing.T) {
	h, err := Start("sleep", "10")
	require.NoError(t, err)

	require.NoError(t, h.Terminate())
	code := h.Wait()
	assert.Equal(t, 143, code, "SIGTERM death reports 128+15")
}

func TestTerminateFinishedProcess(t *testing.T) {
	h, err := Start("true")
	require.NoError(t, err)
	h.Wait()

	assert.Error(t, h.Terminate())
}

func TestStartUnknownProgram(t *testing.T) {
	_, err := Start("definitely-not-a-real-binary-ff1a")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestStartfRunsShellLine(t *testing.T) {
	h, err := Startf("exit %d", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, h.Wait())
}
