package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncoderArgs(t *testing.T) {
	in, out := encoderArgs(800, 600, 30, "car.mp4")
	assert.Equal(t, "rawvideo", in["f"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "800x600", in["s"])
	assert.Equal(t, 30, in["framerate"])
	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "libx264", out["c:v"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])

	_, out = encoderArgs(800, 600, 30, "spiral.GIF")
	assert.NotContains(t, out, "c:v")
	assert.NotContains(t, out, "pix_fmt")

	_, out = encoderArgs(800, 600, 30, "spiral.webm")
	assert.Equal(t, "libvpx-vp9", out["c:v"])
}
