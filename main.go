package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jsheldon/rray/pkg/loaders"
	"github.com/jsheldon/rray/pkg/renderer"
)

func main() {
	width := flag.Int("width", 800, "Output image width in pixels")
	height := flag.Int("height", 600, "Output image height in pixels")
	scenePath := flag.String("scene", "", "Scene file (YAML or JSON)")
	output := flag.String("output", "output.png", "Output image path (.png or .webp)")
	aa := flag.Int("aa", 1, "Anti-aliasing grid size, 1-5")
	workers := flag.Int("workers", 0, "Worker goroutines, 0 for one per CPU")
	preview := flag.Int("preview", 0, "Also write a preview downscaled to this size")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("rray - recursive ray tracer")
		fmt.Println("Usage: rray --scene scene.yaml [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --scene is required")
		os.Exit(1)
	}

	// Build phase: parse the scene, compose transforms, freeze bounding boxes
	w, camera, err := loaders.BuildScene(*scenePath, *width, *height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scene: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendering %s at %dx%d (aa=%d)...\n", *scenePath, *width, *height, *aa)

	r := renderer.NewRenderer(camera, w, renderer.Options{AA: *aa, Workers: *workers})
	canvas, stats, err := r.Render()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v (%d pixels, %d workers)\n",
		stats.Duration, stats.Pixels, stats.Workers)

	if err := canvas.WriteFile(*output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", *output)

	if *preview > 0 {
		path, err := canvas.WritePreview(*output, *preview)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing preview: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preview saved as %s\n", path)
	}
}
