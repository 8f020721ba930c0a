package baud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHappyPathHandshake(t *testing.T) {
	n := New()
	require := assert.New(t)

	require.True(n.Begin(230400, 115200))
	require.Equal(StateChanging, n.State())

	action, rate := n.OnTxDrained()
	require.Equal(ActionReinitToPending, action)
	require.Equal(uint32(230400), rate)
	require.Equal(StateWaitingConfirmation, n.State())

	confirmed, failed := n.ConfirmOrFail(true, 230400)
	require.True(confirmed)
	require.False(failed)
	require.Equal(StateIdle, n.State())
}

func TestMismatchedConfirmationFails(t *testing.T) {
	n := New()
	n.Begin(230400, 115200)
	n.OnTxDrained()

	confirmed, failed := n.ConfirmOrFail(true, 9600)
	assert.False(t, confirmed)
	assert.True(t, failed)
	assert.Equal(t, StateResetting, n.State())

	action, rate := n.OnTxDrained()
	assert.Equal(t, ActionReinitToPrevious, action)
	assert.Equal(t, uint32(115200), rate)
	assert.Equal(t, StateIdle, n.State())
}

func TestUnrelatedCommandFailsHandshake(t *testing.T) {
	n := New()
	n.Begin(230400, 115200)
	n.OnTxDrained()

	confirmed, failed := n.ConfirmOrFail(false, 0)
	assert.False(t, confirmed)
	assert.True(t, failed)
	assert.Equal(t, StateResetting, n.State())
}

func TestByteCapWithoutDelimiterFailsHandshake(t *testing.T) {
	n := New()
	n.Begin(230400, 115200)
	n.OnTxDrained()
	require := assert.New(t)
	require.Equal(StateWaitingConfirmation, n.State())

	// NoteRxByte takes the staged length *before* the byte just fed to the
	// framer was appended, so bytes 1..11 (pre-append counts 0..10) must
	// all append cleanly; only the 12th byte (pre-append count 11) trips
	// the cap, matching the reference's pre-increment `rx_ptr > 10` check.
	for preLen := 0; preLen <= ByteCapWithoutDelimiter; preLen++ {
		assert.False(t, n.NoteRxByte(preLen), "pre-append len %d should not yet exceed the cap", preLen)
	}
	assert.True(t, n.NoteRxByte(ByteCapWithoutDelimiter+1))
	assert.Equal(t, StateResetting, n.State())
}

func TestBeginIsNoOpWhenNotIdle(t *testing.T) {
	n := New()
	n.Begin(230400, 115200)
	assert.False(t, n.Begin(9600, 115200))
	assert.Equal(t, StateChanging, n.State())
}
