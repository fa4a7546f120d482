// Command luxtracer is a thin driver that wires pkg/config, pkg/logging,
// pkg/scene's demo scenes, and pkg/renderer together. The OBJ importer,
// HDR/LDR image writers, and tone-mapping pipeline live outside this
// module; this command only clamps and gamma-encodes the linear result so
// a render is visible at all, via the standard library's PNG encoder.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/windlorne/luxtracer/pkg/config"
	"github.com/windlorne/luxtracer/pkg/integrator"
	"github.com/windlorne/luxtracer/pkg/logging"
	"github.com/windlorne/luxtracer/pkg/renderer"
	"github.com/windlorne/luxtracer/pkg/scene"
)

func main() {
	configPath := flag.String("config", "", "path to a render.yaml config file")
	sceneName := flag.String("scene", "", "built-in demo scene (overrides config): furnace, cornell, caustic, mirrors, motion-blur")
	output := flag.String("output", "", "output PNG path (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "luxtracer: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	if *output != "" {
		cfg.Output = *output
	}

	logger, err := logging.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "luxtracer: logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	sceneObj, hint, err := buildScene(cfg.Scene)
	if err != nil {
		logger.Printf("scene build failed: %v", err)
		os.Exit(1)
	}

	if err := sceneObj.Build(logger); err != nil {
		logger.Printf("BVH build failed: %v", err)
		os.Exit(1)
	}

	hint.Aspect = float64(cfg.Width) / float64(cfg.Height)
	camera := renderer.NewCamera(renderer.CameraConfig{
		Center: hint.Center, LookAt: hint.LookAt, Up: hint.Up,
		VFov: hint.VFov, Aspect: hint.Aspect,
		Aperture: hint.Aperture, FocusDistance: hint.FocusDistance,
		TimeStart: sceneObj.TimeStart, TimeEnd: sceneObj.TimeEnd,
	})

	pt := integrator.NewPathTracerWithConfig(integrator.Config{
		MaxSegments:               cfg.MaxSegments,
		MinHit:                    cfg.MinHit,
		RussianRouletteMinSegment: cfg.RussianRouletteMinSegment,
		RussianRouletteMaxQ:       cfg.RussianRouletteMaxQ,
	})
	driver := renderer.NewDriver(renderer.DriverConfig{
		Width: cfg.Width, Height: cfg.Height, SqrtSPP: cfg.SqrtSPP, NumWorkers: cfg.Workers,
	}, camera, pt)

	img, stats := driver.Render(sceneObj, logger)
	logger.Printf("rendered %d samples in %.2fs", stats.TotalSamples, float64(stats.ElapsedNanoseconds)/1e9)

	if err := writePNG(img, cfg.Output); err != nil {
		logger.Printf("writing output failed: %v", err)
		os.Exit(1)
	}
}

func buildScene(name string) (*scene.Scene, scene.CameraHint, error) {
	switch name {
	case "furnace":
		s, hint := scene.NewFurnaceScene()
		return s, hint, nil
	case "cornell":
		s, hint := scene.NewCornellBoxScene()
		return s, hint, nil
	case "caustic":
		s, hint := scene.NewGlassCausticScene()
		return s, hint, nil
	case "mirrors":
		s, hint := scene.NewMirrorReciprocityScene()
		return s, hint, nil
	case "motion-blur":
		s, hint := scene.NewMotionBlurSphereScene()
		return s, hint, nil
	default:
		return nil, scene.CameraHint{}, fmt.Errorf("unknown scene %q", name)
	}
}

// writePNG clamps each linear pixel to [0,1], gamma-encodes with γ = 2.2,
// and writes an 8-bit PNG. This is not a tone-mapping pipeline (no
// exposure control, no filmic curve) -- it is the minimum needed to look
// at a render at all.
func writePNG(img *renderer.Image, path string) error {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			// Pixel row 0 is the frame bottom; PNG rows run top to bottom.
			c := img.At(x, img.Height-1-y)
			out.Set(x, y, color.RGBA{
				R: toByte(c.X),
				G: toByte(c.Y),
				B: toByte(c.Z),
				A: 255,
			})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, out)
}

func toByte(linear float64) uint8 {
	if math.IsNaN(linear) {
		linear = 0
	}
	clamped := math.Min(1, math.Max(0, linear))
	encoded := math.Pow(clamped, 1/2.2)
	return uint8(math.Round(encoded * 255))
}
