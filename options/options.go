package options

import "flag"

// Options holds the command-line settings shared by the exercise programs.
// Fields are pointers wired to the flag set, so the struct can be handed to
// other packages before flag.Parse has run.
type Options struct {
	Width     *int
	Height    *int
	Title     *string
	Wireframe *bool

	// Capture settings, used only by exercises that render offscreen.
	Record   *bool
	Output   *string
	FPS      *int
	Duration *float64

	// Path to an image file for textured exercises. When empty, a
	// procedural checkerboard is used instead.
	Image *string
}

// RegisterFlags declares the common flags on the default flag set and
// returns the Options wired to them. Call flag.Parse afterwards.
func RegisterFlags(title string) *Options {
	return &Options{
		Width:     flag.Int("width", 800, "Width of the window"),
		Height:    flag.Int("height", 600, "Height of the window"),
		Title:     flag.String("title", title, "Window title"),
		Wireframe: flag.Bool("wireframe", false, "Draw in wireframe mode"),
		Record:    flag.Bool("record", false, "Enable recording mode"),
		Output:    flag.String("output", "output.mp4", "Output file name for recording"),
		FPS:       flag.Int("fps", 60, "Frames per second for recording"),
		Duration:  flag.Float64("duration", 5.0, "Duration to record in seconds"),
		Image:     flag.String("image", "", "Image file to use as a texture"),
	}
}
