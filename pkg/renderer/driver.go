package renderer

import (
	"runtime"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/integrator"
	"github.com/windlorne/luxtracer/pkg/scene"
)

// Image is a flat row-major buffer of linear RGB32F pixels.
type Image struct {
	Width, Height int
	Pixels        []core.Vec3
}

// At returns the pixel at (x, y).
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// DriverConfig carries the per-pixel stratified sampling tunables: image
// dimensions and sqrt_spp. NumWorkers defaults to runtime.NumCPU() when
// zero.
type DriverConfig struct {
	Width, Height int
	SqrtSPP       int
	NumWorkers    int
}

// Driver renders a Scene into an Image by issuing one independent task per
// pixel to a bounded worker pool. No synchronization is needed because
// every pixel writes a disjoint slot.
type Driver struct {
	config     DriverConfig
	integrator *integrator.PathTracer
	camera     *Camera
}

// NewDriver builds a driver for config, rendering through camera with the
// given path-tracing integrator.
func NewDriver(config DriverConfig, camera *Camera, pt *integrator.PathTracer) *Driver {
	if config.SqrtSPP <= 0 {
		config.SqrtSPP = 1
	}
	return &Driver{config: config, integrator: pt, camera: camera}
}

// Render drives scn to completion and returns the accumulated image plus
// summary statistics. scn.Build must already have been called.
func (d *Driver) Render(scn *scene.Scene, logger core.Logger) (*Image, RenderStats) {
	if logger == nil {
		logger = core.NopLogger{}
	}

	start := time.Now()

	numWorkers := d.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	img := &Image{
		Width:  d.config.Width,
		Height: d.config.Height,
		Pixels: make([]core.Vec3, d.config.Width*d.config.Height),
	}

	logger.Printf("rendering %dx%d at %d^2 samples/pixel with %d workers", d.config.Width, d.config.Height, d.config.SqrtSPP, numWorkers)

	pool := pond.NewPool(numWorkers)
	totalPixels := d.config.Width * d.config.Height
	for i := 0; i < totalPixels; i++ {
		pixelIndex := i
		pool.Submit(func() {
			img.Pixels[pixelIndex] = d.renderPixel(pixelIndex, scn)
		})
	}
	pool.StopAndWait()

	stats := RenderStats{
		Width:              d.config.Width,
		Height:             d.config.Height,
		SqrtSPP:            d.config.SqrtSPP,
		TotalSamples:       int64(totalPixels) * int64(d.config.SqrtSPP*d.config.SqrtSPP),
		ElapsedNanoseconds: time.Since(start).Nanoseconds(),
	}
	logger.Printf("render complete in %s", time.Since(start))

	return img, stats
}

// renderPixel runs the per-pixel stratified loop: seed a PRNG with
// pixelIndex+42, jitter within an N x N grid of stratified cells, and
// average N^2 path samples.
func (d *Driver) renderPixel(pixelIndex int, scn *scene.Scene) core.Vec3 {
	x := pixelIndex % d.config.Width
	y := pixelIndex / d.config.Width

	sampler := core.NewPixelSampler(pixelIndex)
	n := d.config.SqrtSPP

	accum := core.Vec3{}
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			sp := (float64(u) + sampler.Uniform01()) / float64(n)
			sq := (float64(v) + sampler.Uniform01()) / float64(n)
			p := (float64(x) + sp) / float64(d.config.Width)
			q := (float64(y) + sq) / float64(d.config.Height)

			ray := d.camera.GetRay(p, q, sampler)
			accum = accum.Add(d.integrator.Li(ray, scn, sampler))
		}
	}

	return accum.Multiply(1 / float64(n*n))
}

// RenderTiles renders only the pixels within tile (tileX, tileY) of a
// tileSize x tileSize grid over the image, leaving every other pixel at
// its zero value. Useful for a distributed-rendering split (one process
// per tile, results composited afterwards); the default entry point is
// Render, which covers the whole image.
func (d *Driver) RenderTiles(scn *scene.Scene, tileSize, tileX, tileY int, logger core.Logger) (*Image, RenderStats) {
	if logger == nil {
		logger = core.NopLogger{}
	}

	start := time.Now()
	img := &Image{
		Width:  d.config.Width,
		Height: d.config.Height,
		Pixels: make([]core.Vec3, d.config.Width*d.config.Height),
	}

	samples := int64(0)
	for y := tileY * tileSize; y < (tileY+1)*tileSize && y < d.config.Height; y++ {
		for x := tileX * tileSize; x < (tileX+1)*tileSize && x < d.config.Width; x++ {
			pixelIndex := y*d.config.Width + x
			img.Pixels[pixelIndex] = d.renderPixel(pixelIndex, scn)
			samples += int64(d.config.SqrtSPP * d.config.SqrtSPP)
		}
	}

	stats := RenderStats{
		Width: d.config.Width, Height: d.config.Height, SqrtSPP: d.config.SqrtSPP,
		TotalSamples: samples, ElapsedNanoseconds: time.Since(start).Nanoseconds(),
	}
	logger.Printf("tile (%d,%d) of size %d rendered in %s", tileX, tileY, tileSize, time.Since(start))
	return img, stats
}
