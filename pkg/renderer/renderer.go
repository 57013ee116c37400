// Package renderer generates primary rays and drives the parallel render
// loop. The scene is immutable once rendering starts, so workers share it
// without locks; each work unit is a scanline and distinct workers write
// disjoint rows of the canvas.
package renderer

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/jsheldon/rray/pkg/core"
	"github.com/jsheldon/rray/pkg/world"
)

// ErrCanceled is returned when a render is aborted before completion
var ErrCanceled = errors.New("render canceled")

// Options configures a render pass
type Options struct {
	AA       int // supersampling grid size per pixel, clamped to [1, 5]
	Workers  int // worker goroutines; 0 means NumCPU
	MaxDepth int // reflection/refraction bound; 0 means world.MaxDepth
}

// RenderStats summarizes a completed render
type RenderStats struct {
	Pixels   int
	Workers  int
	Duration time.Duration
}

// Renderer renders a world through a camera
type Renderer struct {
	camera *Camera
	world  *world.World
	opts   Options

	cancel chan struct{}
	once   sync.Once
}

// NewRenderer creates a renderer, normalizing the options
func NewRenderer(camera *Camera, w *world.World, opts Options) *Renderer {
	if opts.AA < 1 {
		opts.AA = 1
	}
	if opts.AA > 5 {
		opts.AA = 5
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = world.MaxDepth
	}
	return &Renderer{
		camera: camera,
		world:  w,
		opts:   opts,
		cancel: make(chan struct{}),
	}
}

// Cancel aborts the render. Workers stop between scanlines; the partial
// canvas is discarded.
func (r *Renderer) Cancel() {
	r.once.Do(func() { close(r.cancel) })
}

// Render traces every pixel and returns the finished canvas. Scanline tasks
// are pulled from a shared channel by the worker pool; pixel values depend
// only on the frozen scene and their own coordinates, so the result is
// deterministic regardless of scheduling.
func (r *Renderer) Render() (*Canvas, RenderStats, error) {
	start := time.Now()
	canvas := NewCanvas(r.camera.HSize, r.camera.VSize)

	rows := make(chan int, r.camera.VSize)
	for y := 0; y < r.camera.VSize; y++ {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go r.renderRows(rows, canvas, &wg)
	}
	wg.Wait()

	select {
	case <-r.cancel:
		return nil, RenderStats{}, ErrCanceled
	default:
	}

	stats := RenderStats{
		Pixels:   r.camera.HSize * r.camera.VSize,
		Workers:  r.opts.Workers,
		Duration: time.Since(start),
	}
	return canvas, stats, nil
}

// renderRows is the worker loop. Rows are disjoint, so writing to the shared
// canvas needs no synchronization.
func (r *Renderer) renderRows(rows <-chan int, canvas *Canvas, wg *sync.WaitGroup) {
	defer wg.Done()
	for y := range rows {
		select {
		case <-r.cancel:
			return
		default:
		}
		for x := 0; x < r.camera.HSize; x++ {
			canvas.WritePixel(x, y, r.renderPixel(x, y))
		}
	}
}

// renderPixel traces the pixel, averaging a fixed AA x AA subgrid when
// supersampling is enabled. The grid offsets are fixed so output is
// deterministic.
func (r *Renderer) renderPixel(x, y int) core.Color {
	if r.opts.AA == 1 {
		return r.world.ColorAt(r.camera.RayForPixel(x, y), r.opts.MaxDepth)
	}

	sum := core.Black()
	for sy := 0; sy < r.opts.AA; sy++ {
		for sx := 0; sx < r.opts.AA; sx++ {
			ray := r.camera.RayForSubpixel(x, y, sx, sy, r.opts.AA)
			sum = sum.Add(r.world.ColorAt(ray, r.opts.MaxDepth))
		}
	}
	return sum.Scale(1 / float64(r.opts.AA*r.opts.AA))
}
