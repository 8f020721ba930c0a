package framer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openenterprise/tockboot/protocol"
)

// encode mirrors respbuilder's escaping rule for building test inputs:
// every literal Esc byte is doubled, followed by an unescaped Esc and cmd.
func encode(payload []byte, cmd byte) []byte {
	out := make([]byte, 0, len(payload)+2)
	for _, b := range payload {
		if b == protocol.Esc {
			out = append(out, protocol.Esc, protocol.Esc)
		} else {
			out = append(out, b)
		}
	}
	return append(out, protocol.Esc, cmd)
}

func feedAll(f *Framer, bytes []byte) []Result {
	results := make([]Result, 0, len(bytes))
	for _, b := range bytes {
		results = append(results, f.Feed(b))
	}
	return results
}

func TestFramingRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		{0x00, 0x01, 0x02},
		{protocol.Esc},
		{protocol.Esc, protocol.Esc},
		{0x00, protocol.Esc, 0x01},
		{0xAB, 0xCD, protocol.Esc, 0xEF, protocol.Esc, protocol.Esc},
	}
	for _, p := range payloads {
		f := New()
		wire := encode(p, 0x07)
		results := feedAll(f, wire)

		last := results[len(results)-1]
		require.Equal(t, EventDispatch, last.Event)
		assert.Equal(t, protocol.Command(0x07), last.Cmd)
		assert.Equal(t, p, f.RxBytes())
	}
}

func TestFramerSeedPing(t *testing.T) {
	f := New()
	results := feedAll(f, []byte{protocol.Esc, 0x01})
	require.Equal(t, EventDispatch, results[1].Event)
	assert.Equal(t, protocol.Command(0x01), results[1].Cmd)
	assert.Equal(t, 0, f.RxLen())
}

func TestFramerSeedCRCRXScenario(t *testing.T) {
	// 0x00, ESC ESC (literal), 0x01, ESC, 0x10 -> RxBuf = {0x00, 0xFC, 0x01}
	f := New()
	wire := []byte{0x00, protocol.Esc, protocol.Esc, 0x01, protocol.Esc, 0x10}
	results := feedAll(f, wire)
	last := results[len(results)-1]
	require.Equal(t, EventDispatch, last.Event)
	assert.Equal(t, protocol.Command(0x10), last.Cmd)
	assert.Equal(t, []byte{0x00, protocol.Esc, 0x01}, f.RxBytes())
}

func TestFramerOverflow(t *testing.T) {
	f := New()
	var got Result
	for i := 0; i < protocol.RxCap; i++ {
		got = f.Feed(0x41)
	}
	assert.Equal(t, EventNone, got.Event)
	assert.Equal(t, protocol.RxCap, f.RxLen())

	overflowResult := f.Feed(0x42)
	assert.Equal(t, EventOverflow, overflowResult.Event)
	assert.Equal(t, 0, f.RxLen())

	// Subsequent bytes are discarded until the framer resumes.
	discarded := f.Feed(0x55)
	assert.Equal(t, EventNone, discarded.Event)
	assert.Equal(t, 0, f.RxLen())

	f.Resume()
	resumed := f.Feed(0x01)
	assert.Equal(t, EventNone, resumed.Event)
	assert.Equal(t, 1, f.RxLen())
}

func TestFramerResetPreservesFramerButClearsCursor(t *testing.T) {
	f := New()
	feedAll(f, []byte{0xAA, 0xBB})
	require.Equal(t, 2, f.RxLen())
	f.Reset()
	assert.Equal(t, 0, f.RxLen())
}
