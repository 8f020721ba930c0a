package respbuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openenterprise/tockboot/protocol"
)

func drain(b *Builder) []byte {
	out := make([]byte, 0)
	for b.Pending() {
		out = append(out, b.NextByte())
	}
	return out
}

func TestEmitPingPong(t *testing.T) {
	b := New()
	b.Emit(protocol.RespPong, nil)
	assert.Equal(t, []byte{protocol.Esc, byte(protocol.RespPong)}, drain(b))
}

func TestEmitCRCRXEmpty(t *testing.T) {
	b := New()
	b.Emit(protocol.RespCRCRX, []byte{0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF})
	want := []byte{protocol.Esc, byte(protocol.RespCRCRX), 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}
	assert.Equal(t, want, drain(b))
}

func TestEscapeSymmetry(t *testing.T) {
	payloads := [][]byte{
		nil,
		{0x01, 0x02, 0x03},
		{protocol.Esc},
		{protocol.Esc, 0x00, protocol.Esc, protocol.Esc},
	}
	for _, p := range payloads {
		b := New()
		b.Emit(protocol.RespGAttr, p)
		framed := drain(b)

		code, payload, ok := Decode(framed)
		require.True(t, ok)
		assert.Equal(t, protocol.RespGAttr, code)
		assert.Equal(t, p, payload)
	}
}

func TestEmitRawIsUnframed(t *testing.T) {
	b := New()
	b.EmitRaw(protocol.RespOverflow)
	assert.Equal(t, []byte{byte(protocol.RespOverflow)}, drain(b))
}

func TestEmitStopsCleanlyAtBufferLimit(t *testing.T) {
	b := New()
	huge := make([]byte, protocol.TxCap)
	for i := range huge {
		huge[i] = protocol.Esc // worst case: every byte needs doubling
	}
	b.Emit(protocol.RespRRange, huge)
	out := drain(b)
	assert.LessOrEqual(t, len(out), protocol.TxCap)
}
