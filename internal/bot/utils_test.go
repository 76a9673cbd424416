package bot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbodj/fablab-bot/internal/dialog"
)

func TestLastStepMID(t *testing.T) {
	mid, ok := lastStepMID(dialog.Payload{"last_mid": float64(42)})
	require.True(t, ok)
	require.Equal(t, 42, mid)

	_, ok = lastStepMID(nil)
	require.False(t, ok)

	_, ok = lastStepMID(dialog.Payload{})
	require.False(t, ok)

	// a payload that never went through JSON must not panic
	_, ok = lastStepMID(dialog.Payload{"last_mid": "oops"})
	require.False(t, ok)
}
