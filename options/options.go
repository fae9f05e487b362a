package options

import (
	"fmt"
	"strings"
)

// Options holds the command-line configuration. Fields are flag pointers so
// cmd can hand the flag set's storage straight through.
type Options struct {
	Exercise   *string
	ConfigFile *string
	List       *bool
	Dump       *bool // Print the selected exercise as YAML and exit
	Help       *bool
	Width      *int
	Height     *int
	Title      *string
	Translate  *bool    // Translate ES 3.0 shader sources for the active context instead of using the built-in per-API sources
	OutputFile *string  // Record to this file instead of opening an interactive window
	Frames     *int     // Number of frames to record
	FPS        *int     // Recording frame rate
	FFMPEGPath *string  // Path to the ffmpeg executable, PATH lookup when empty
	Headless   *bool    // Record through an EGL pbuffer instead of a hidden GLFW window (Linux only)
	LineWidth  *float64 // Line width used by wireframe passes
}

// Recording reports whether the options ask for offscreen recording.
func (o *Options) Recording() bool {
	return o.OutputFile != nil && *o.OutputFile != ""
}

// Validate checks the numeric options for values the renderer cannot use.
func (o *Options) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", *o.Width, *o.Height)
	}
	if o.Recording() {
		if *o.Frames <= 0 {
			return fmt.Errorf("frame count %d must be positive when recording", *o.Frames)
		}
		if *o.FPS <= 0 {
			return fmt.Errorf("fps %d must be positive when recording", *o.FPS)
		}
		if strings.TrimSpace(*o.OutputFile) != *o.OutputFile {
			return fmt.Errorf("output file %q has surrounding whitespace", *o.OutputFile)
		}
	}
	if *o.Headless && !o.Recording() {
		return fmt.Errorf("-headless only applies when recording with -record")
	}
	return nil
}
