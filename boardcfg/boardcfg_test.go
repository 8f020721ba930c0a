package boardcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeImageMagicAndVersion(t *testing.T) {
	img := Hail.AttributeImage()
	require.Equal(t, "TOCKBOOTLOADER", string(img[0:14]))
	assert.Equal(t, "0.5.0\x00\x00\x00", string(img[14:22]))
	for _, b := range img[22:512] {
		assert.Equal(t, byte(0), b)
	}
}

func TestAttributeImageSlotsFromDefaults(t *testing.T) {
	img := Hail.AttributeImage()

	slot0 := img[512 : 512+64]
	assert.Equal(t, "board\x00\x00\x00", string(slot0[0:8]))
	assert.Equal(t, byte(len("hail")), slot0[8])
	assert.Equal(t, "hail", string(slot0[9:9+len("hail")]))

	slot1 := img[512+64 : 512+128]
	assert.Equal(t, "arch\x00\x00\x00\x00", string(slot1[0:8]))
	assert.Equal(t, "cortex-m4", string(slot1[9:9+len("cortex-m4")]))

	slot2 := img[512+128 : 512+192]
	assert.Equal(t, "appaddr\x00", string(slot2[0:8]))
	assert.Equal(t, "0x10000", string(slot2[9:9+len("0x10000")]))

	for i := 3; i < 16; i++ {
		off := 512 + i*64
		slot := img[off : off+64]
		for _, b := range slot {
			assert.Equal(t, byte(0), b, "unset slot %d should be all zero", i)
		}
	}
}

func TestJustJumpHasNoDefaultAttrs(t *testing.T) {
	img := JustJump.AttributeImage()
	require.Equal(t, "TOCKBOOTLOADER", string(img[0:14]))
	for i := 0; i < 16; i++ {
		off := 512 + i*64
		slot := img[off : off+64]
		for _, b := range slot {
			assert.Equal(t, byte(0), b, "slot %d should be all zero", i)
		}
	}
}

func TestHeaderFloorPrecedesAttrFloorByOnePage(t *testing.T) {
	assert.Equal(t, Hail.Regions.AttrFloor-512, Hail.Regions.HeaderFloor())
	assert.Equal(t, JustJump.Regions.AttrFloor-512, JustJump.Regions.HeaderFloor())
}

func TestAttributeImageSizeMatchesTwoAttrPages(t *testing.T) {
	// 512 bytes of header plus the two 512-byte attribute pages.
	assert.Equal(t, 3*512, AttributeImageSize)
}
