package attrstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openenterprise/tockboot/boardcfg"
	"openenterprise/tockboot/internal/simulator"
)

func newStore() *Store {
	flash := simulator.NewFlash(boardcfg.Hail.Regions)
	return New(boardcfg.Hail.Regions, flash)
}

func TestAttributeRoundTrip(t *testing.T) {
	s := newStore()
	key := [8]byte{'b', 'o', 'a', 'r', 'd', 0, 0, 0}
	value := []byte("hail")

	require.Equal(t, OutcomeOK, s.Set(0, key, value))

	got, outcome := s.Get(0)
	require.Equal(t, OutcomeOK, outcome)
	assert.Equal(t, key[:], got[0:8])
	assert.Equal(t, byte(len(value)), got[8])
	assert.Equal(t, value, got[9:9+len(value)])
}

func TestAttributeSeedScenario(t *testing.T) {
	// Set preserves slot bytes past the value, so start from the board's
	// baked attribute image (zeroed padding) rather than erased 0xFF flash.
	s := New(boardcfg.Hail.Regions, simulator.NewFlashForBoard(boardcfg.Hail))
	key := [8]byte{'b', 'o', 'a', 'r', 'd', 0, 0, 0}
	require.Equal(t, OutcomeOK, s.Set(0, key, []byte("hail")))

	got, outcome := s.Get(0)
	require.Equal(t, OutcomeOK, outcome)

	want := []byte{0x62, 0x6F, 0x61, 0x72, 0x64, 0x00, 0x00, 0x00, 0x04, 0x68, 0x61, 0x69, 0x6C}
	assert.Equal(t, want, got[:len(want)])
	for _, b := range got[len(want):] {
		assert.Equal(t, byte(0), b)
	}
}

func TestAttributeNonInterference(t *testing.T) {
	s := newStore()

	for i := 0; i < 16; i++ {
		key := [8]byte{byte('a' + i)}
		require.Equal(t, OutcomeOK, s.Set(i, key, []byte{byte(i)}))
	}

	snapshots := make([][]byte, 16)
	for i := 0; i < 16; i++ {
		data, outcome := s.Get(i)
		require.Equal(t, OutcomeOK, outcome)
		snapshots[i] = append([]byte{}, data...)
	}

	// Overwriting slot 3 must not disturb any other slot on its page.
	newKey := [8]byte{'z'}
	require.Equal(t, OutcomeOK, s.Set(3, newKey, []byte{0xFF, 0xEE}))

	for i := 0; i < 16; i++ {
		data, outcome := s.Get(i)
		require.Equal(t, OutcomeOK, outcome)
		if i == 3 {
			assert.NotEqual(t, snapshots[i], data)
			continue
		}
		assert.Equal(t, snapshots[i], data, "slot %d should be unchanged", i)
	}
}

func TestBadArgs(t *testing.T) {
	s := newStore()
	var key [8]byte

	_, outcome := s.Get(16)
	assert.Equal(t, OutcomeBadArgs, outcome)

	assert.Equal(t, OutcomeBadArgs, s.Set(16, key, nil))

	longValue := make([]byte, MaxValueSize)
	assert.Equal(t, OutcomeBadArgs, s.Set(0, key, longValue))
}
