package rt

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Render partitions the image plane into contiguous row chunks, one per
// hardware thread, and drives the integrator over every pixel. Workers
// communicate only through the shared pixel grid (each cell exclusively
// owned by one worker) and an atomic scanlines-completed counter.
func Render(cam *Camera, world, lights Hittable) []Color {
	width := cam.ImageWidth
	height := cam.ImageHeight
	pixels := make([]Color, width*height)

	numWorkers := runtime.NumCPU()
	chunkSize := (height + numWorkers - 1) / numWorkers

	var scanlinesDone atomic.Int32
	done := make(chan struct{})

	progressStopped := make(chan struct{})
	go func() {
		reportProgress(&scanlinesDone, height, done)
		close(progressStopped)
	}()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > height {
			end = height
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(rowStart, rowEnd int) {
			defer wg.Done()
			renderRows(cam, world, lights, pixels, rowStart, rowEnd, &scanlinesDone)
		}(start, end)
	}

	wg.Wait()
	close(done)
	<-progressStopped

	return pixels
}

func renderRows(cam *Camera, world, lights Hittable, pixels []Color, rowStart, rowEnd int, scanlinesDone *atomic.Int32) {
	width := cam.ImageWidth
	scale := cam.PixelSamplesScale()
	background := cam.BackgroundSource()

	for j := rowStart; j < rowEnd; j++ {
		for i := 0; i < width; i++ {
			pixelColor := Color{}
			for sj := 0; sj < cam.SqrtSPP; sj++ {
				for si := 0; si < cam.SqrtSPP; si++ {
					r := cam.GetRay(i, j, si, sj)
					pixelColor = pixelColor.Add(RayColor(r, cam.MaxDepth, cam.MaxDepth, world, lights, background))
					GlobalRenderStats.SamplesComputed.Add(1)
				}
			}
			pixels[j*width+i] = pixelColor.Scale(scale)
			GlobalRenderStats.PixelsRendered.Add(1)
		}
		scanlinesDone.Add(1)
	}
}

// reportProgress serializes progress-log writes on stderr: "\rScanlines
// remaining: <N> " until done fires, then a terminal "\rDone.\n".
func reportProgress(scanlinesDone *atomic.Int32, height int, done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			fmt.Fprint(os.Stderr, "\rDone.\n")
			return
		case <-ticker.C:
			remaining := height - int(scanlinesDone.Load())
			fmt.Fprintf(os.Stderr, "\rScanlines remaining: %d ", remaining)
		}
	}
}

// RenderToPPM renders the scene and encodes the result as PPM (P3) to w.
func RenderToPPM(w io.Writer, cam *Camera, world, lights Hittable) error {
	cam.Initialize()
	pixels := Render(cam, world, lights)
	return WritePPM(w, cam.ImageWidth, cam.ImageHeight, pixels)
}
