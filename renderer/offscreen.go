package renderer

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshapes/options"
	"github.com/schollz/progressbar/v3"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame is a single rendered frame's pixels, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// OffscreenRenderer is an RGBA8 framebuffer scenes are drawn into when
// recording.
type OffscreenRenderer struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
}

// numBuffers is how many frames may wait for the encoder before rendering
// blocks.
const numBuffers = 3

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{
		width:  width,
		height: height,
	}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		or.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete (status 0x%x)", status)
	}
	log.Printf("Offscreen FBO: %dx%d RGBA8", width, height)
	return or, nil
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
}

// readPixels returns the framebuffer contents, bottom row first.
func (or *OffscreenRenderer) readPixels() []byte {
	pixels := make([]byte, or.width*or.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return pixels
}

// encoderArgs returns the ffmpeg input and output arguments for raw RGBA
// frames of the given size. GL reads rows bottom up, so the output is
// flipped.
func encoderArgs(width, height, fps int, outputFile string) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}

	outputArgs = ffmpeg.KwArgs{"vf": "vflip"}
	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".gif", ".png", ".apng":
	case ".webm":
		outputArgs["c:v"] = "libvpx-vp9"
		outputArgs["pix_fmt"] = "yuv420p"
	default:
		outputArgs["c:v"] = "libx264"
		outputArgs["pix_fmt"] = "yuv420p"
	}
	return
}

// runEncoder is the consumer. It starts ffmpeg and pipes every frame from
// frameChan into it, reporting ffmpeg's exit on doneChan.
func (r *Renderer) runEncoder(opts *options.Options, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := encoderArgs(r.width, r.height, *opts.FPS, *opts.OutputFile)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the writer if ffmpeg exits early.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	for frame := range frameChan {
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to FFmpeg: %v", frame.PTS, err)
			// Drain so the producer never blocks on a dead encoder.
			for range frameChan {
			}
			break
		}
	}
	pipeWriter.Close()
	doneChan <- <-errc
}

// RunOffscreen is the producer. It renders opts.Frames frames of the current
// scene and sends them to the encoder, returning once ffmpeg has exited.
func (r *Renderer) RunOffscreen(opts *options.Options) error {
	if r.offscreenRenderer == nil {
		return fmt.Errorf("renderer was not created for recording")
	}
	log.Printf("Recording %d frames at %d fps to %s", *opts.Frames, *opts.FPS, *opts.OutputFile)

	frameChan := make(chan *Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)

	go r.runEncoder(opts, frameChan, encoderDoneChan)

	bar := progressbar.Default(int64(*opts.Frames), "recording")
	for i := 0; i < *opts.Frames; i++ {
		r.RenderFrame()
		frameChan <- &Frame{Pixels: r.offscreenRenderer.readPixels(), PTS: int64(i)}
		bar.Add(1)
	}
	bar.Finish()

	close(frameChan)
	if err := <-encoderDoneChan; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
