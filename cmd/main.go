package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goshapes/exercise"
	"github.com/richinsley/goshapes/glfwcontext"
	"github.com/richinsley/goshapes/graphics"
	"github.com/richinsley/goshapes/headless"
	"github.com/richinsley/goshapes/options"
	"github.com/richinsley/goshapes/renderer"
)

func init() {
	runtime.LockOSThread()
}

func loadExercise(opts *options.Options) (*exercise.Exercise, error) {
	if *opts.ConfigFile != "" {
		return exercise.Load(*opts.ConfigFile)
	}
	return exercise.Get(*opts.Exercise)
}

func runShapes(opts *options.Options, ex *exercise.Exercise) {
	title := *opts.Title
	if title == "" {
		title = ex.Title
	}

	var ctx graphics.Context
	var err error
	if *opts.Headless {
		ctx, err = headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			log.Fatalf("Failed to create headless context: %v", err)
		}
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			log.Fatalf("Failed to initialize GLFW: %v", err)
		}
		defer glfwcontext.TerminateGraphics()

		// If recording, the window stays hidden.
		win, err := glfwcontext.New(opts, title, !opts.Recording())
		if err != nil {
			log.Fatalf("Failed to create window: %v", err)
		}
		win.RegisterKeyCallback(glfw.KeyEnter, func() {
			if win.Title() == title {
				win.SetTitle(fmt.Sprintf("%s [%s]", title, ex.Name))
			} else {
				win.SetTitle(title)
			}
		})
		ctx = win
	}
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(opts, ctx)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	if err := r.LoadScene(ex); err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	if opts.Recording() {
		log.Println("Starting offscreen render loop...")
		if err := r.RunOffscreen(opts); err != nil {
			log.Fatalf("Offscreen rendering failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
	} else {
		log.Println("Starting interactive render loop...")
		r.Run()
	}
}

func main() {
	opts := &options.Options{
		Exercise:   flag.String("exercise", "car", "Built-in exercise to draw (see -list)"),
		ConfigFile: flag.String("config", "", "YAML exercise file to draw instead of a built-in"),
		List:       flag.Bool("list", false, "List the built-in exercises and exit"),
		Dump:       flag.Bool("dump", false, "Print the selected exercise as YAML and exit"),
		Help:       flag.Bool("help", false, "Show help message"),
		Width:      flag.Int("width", 800, "Width of the window or recording"),
		Height:     flag.Int("height", 600, "Height of the window or recording"),
		Title:      flag.String("title", "", "Window title (defaults to the exercise title)"),
		Translate:  flag.Bool("translate", false, "Compile shaders through the ES 3.0 translator"),
		LineWidth:  flag.Float64("linewidth", 1, "Line width for wireframe passes that do not set one"),

		// Recording flags
		OutputFile: flag.String("record", "", "Record to this file instead of opening a window"),
		Frames:     flag.Int("frames", 60, "Number of frames to record"),
		FPS:        flag.Int("fps", 30, "Frames per second for recording"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Headless:   flag.Bool("headless", false, "Record through EGL without a window (Linux only)"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Parametric 2D shape viewer/recorder")
		flag.PrintDefaults()
		return
	}

	if *opts.List {
		for _, e := range exercise.List() {
			fmt.Printf("%-16s %s\n", e.Name, e.Title)
		}
		return
	}

	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	ex, err := loadExercise(opts)
	if err != nil {
		log.Fatalf("Error loading exercise: %v", err)
	}

	if *opts.Dump {
		data, err := exercise.Marshal(ex)
		if err != nil {
			log.Fatalf("Error encoding exercise: %v", err)
		}
		os.Stdout.Write(data)
		return
	}

	log.Printf("Drawing exercise: %s", ex.Name)
	runShapes(opts, ex)
}
