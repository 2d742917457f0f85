package main

import (
	"bufio"
	"flag"
	"fmt"
	"go-raytracing/rt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Profiling flags
	enableProfile := flag.Bool("profile", false, "Enable profiling (CPU, memory)")
	cpuProfile := flag.Bool("cpu-profile", true, "Enable CPU profiling (requires -profile)")
	memProfile := flag.Bool("mem-profile", true, "Enable memory profiling (requires -profile)")
	traceProfile := flag.Bool("trace", false, "Enable execution tracing (requires -profile)")
	blockProfile := flag.Bool("block-profile", false, "Enable block profiling (requires -profile)")
	profileDir := flag.String("profile-dir", "profiles", "Directory to save profile files")
	showMemStats := flag.Bool("mem-stats", false, "Show memory statistics after render")
	sceneName := flag.String("scene", "cornell", "Scene to render (e.g. cornell, random, cornell-smoke, point-light, hdri-test)")
	window := flag.Bool("window", false, "Open the live preview window instead of emitting PPM (P3) to stdout")

	flag.Parse()

	// Configure profiler
	profileConfig := &rt.ProfileConfig{
		Enabled:      *enableProfile,
		CPUProfile:   *cpuProfile,
		MemProfile:   *memProfile,
		TraceEnabled: *traceProfile,
		BlockProfile: *blockProfile,
		OutputDir:    *profileDir,
		SampleRate:   100,
	}

	profiler := rt.NewProfiler(profileConfig)

	// Start profiling if enabled
	if *enableProfile {
		fmt.Println("Profiling enabled")
		if err := profiler.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start profiler: %v\n", err)
			os.Exit(1)
		}

		// Handle graceful shutdown for profiling
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			fmt.Println("\nInterrupt received, saving profiles...")
			profiler.Stop()
			profiler.PrintTimingReport()
			if *showMemStats {
				rt.PrintMemStats()
			}
			os.Exit(0)
		}()
	}

	// Reset render stats
	rt.ResetRenderStats()

	// Time BVH construction
	bvhTimer := rt.NewTimer("BVH Construction")
	world, camera, lights, sceneErr := loadScene(*sceneName)
	if sceneErr != nil {
		fmt.Fprintf(os.Stderr, "Unknown scene '%s'. Use -help for options.\n", *sceneName)
		os.Exit(1)
	}
	bvh := rt.NewBVHNodeFromList(world)
	bvhTime := bvhTimer.Stop()
	rt.GlobalRenderStats.BVHConstructTime = bvhTime

	camera.Initialize()
	rt.PrintRenderSettings(camera, len(world.Objects))

	if !*window {
		out := bufio.NewWriter(os.Stdout)
		if err := rt.RenderToPPM(out, camera, bvh, lights); err != nil {
			fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
			os.Exit(1)
		}
		if err := out.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "flush failed: %v\n", err)
			os.Exit(1)
		}

		if *enableProfile {
			profiler.Stop()
			profiler.PrintTimingReport()
		}
		if *showMemStats {
			rt.PrintMemStats()
		}
		return
	}

	bucketSize := 32
	numWorkers := runtime.NumCPU()

	renderer := rt.NewBucketRenderer(camera, bvh, lights, bucketSize, numWorkers)

	ebiten.SetWindowSize(camera.ImageWidth, camera.ImageHeight)
	ebiten.SetWindowTitle("Go Raytracer")

	if err := ebiten.RunGame(renderer); err != nil {
		panic(err)
	}

	// Stop profiling and print reports
	if *enableProfile {
		profiler.Stop()
		profiler.PrintTimingReport()
	}

	if *showMemStats {
		rt.PrintMemStats()
	}
}

func loadScene(name string) (*rt.HittableList, *rt.Camera, *rt.HittableList, error) {
	switch strings.ToLower(name) {
	case "random", "randomscene":
		w, c, l := rt.RandomScene()
		return w, c, l, nil
	case "checkered", "checker", "checkered-spheres":
		w, c, l := rt.CheckeredSpheresScene()
		return w, c, l, nil
	case "simple", "simple-scene":
		w, c, l := rt.SimpleScene()
		return w, c, l, nil
	case "point-light", "point-light-sphere", "simple-light-scene":
		w, c, l := rt.PointLightSphereScene()
		return w, c, l, nil
	case "perlin", "perlin-spheres":
		w, c, l := rt.PerlinSpheresScene()
		return w, c, l, nil
	case "earth", "earth-scene":
		w, c, l := rt.EarthScene()
		return w, c, l, nil
	case "cornell", "cornell-box":
		w, c, l := rt.CornellBoxScene()
		return w, c, l, nil
	case "cornell-glossy":
		w, c, l := rt.CornellBoxGlossyScene()
		return w, c, l, nil
	case "cornell-smoke", "cornell-fog":
		w, c, l := rt.CornellSmokeScene()
		return w, c, l, nil
	case "iridescent", "iridescent-bubble", "bubble":
		w, c, l := rt.IridescentBubbleScene()
		return w, c, l, nil
	case "primitives", "primitives-scene":
		w, c, l := rt.PrimitivesScene()
		return w, c, l, nil
	case "hdri", "hdri-test", "hdr":
		w, c, l := rt.HDRITestScene()
		return w, c, l, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown scene: %s", name)
	}
}
