package rt

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Bucket represents a tile/region of the image to render
type Bucket struct {
	X      int // Starting X coordinate
	Y      int // Starting Y coordinate
	Width  int // Bucket width
	Height int // Bucket height
}

// BucketRenderer is the ebiten-driven live preview: a tile-based,
// multi-pass progressive renderer that refines the same offline
// RayColor estimator used by the PPM output path. It is a viewing
// convenience, not an alternate integrator.
type BucketRenderer struct {
	framebuffer    *image.RGBA
	camera         *Camera
	world          Hittable
	lights         Hittable
	buckets        []Bucket
	completedCount atomic.Int32
	totalBuckets   int
	bucketSize     int
	completed      bool
	renderStart    time.Time
	renderEnd      time.Time
	numWorkers     int
	renderStarted  bool
	currentPass    int
	totalPasses    int
	passComplete   atomic.Bool
	mu             sync.Mutex // Protects framebuffer writes
}

func NewBucketRenderer(camera *Camera, world, lights Hittable, bucketSize int, numWorkers int) *BucketRenderer {
	framebuffer := image.NewRGBA(image.Rect(0, 0, camera.ImageWidth, camera.ImageHeight))

	buckets := generateBuckets(camera.ImageWidth, camera.ImageHeight, bucketSize)

	return &BucketRenderer{
		framebuffer:   framebuffer,
		camera:        camera,
		world:         world,
		lights:        lights,
		buckets:       buckets,
		totalBuckets:  len(buckets),
		bucketSize:    bucketSize,
		completed:     false,
		renderStart:   time.Now(),
		numWorkers:    numWorkers,
		renderStarted: false,
		currentPass:   0,
		totalPasses:   3, // Preview (1 SPP) + Medium (SPP/4) + Final (full SPP)
	}
}

// generateBuckets creates a grid of buckets ordered center-outward, by the
// distance of each bucket's center from the image center
func generateBuckets(width, height, bucketSize int) []Bucket {
	var buckets []Bucket

	for y := 0; y < height; y += bucketSize {
		for x := 0; x < width; x += bucketSize {
			bw := min(bucketSize, width-x)
			bh := min(bucketSize, height-y)
			buckets = append(buckets, Bucket{
				X:      x,
				Y:      y,
				Width:  bw,
				Height: bh,
			})
		}
	}

	centerX := width / 2
	centerY := height / 2

	type bucketDist struct {
		bucket Bucket
		dist   float64
	}

	bucketDistances := make([]bucketDist, len(buckets))
	for i, b := range buckets {
		bx := b.X + b.Width/2
		by := b.Y + b.Height/2
		dx := float64(bx - centerX)
		dy := float64(by - centerY)
		dist := dx*dx + dy*dy
		bucketDistances[i] = bucketDist{bucket: b, dist: dist}
	}

	sort.Slice(bucketDistances, func(i, j int) bool {
		return bucketDistances[i].dist < bucketDistances[j].dist
	})

	sortedBuckets := make([]Bucket, len(buckets))
	for i, bd := range bucketDistances {
		sortedBuckets[i] = bd.bucket
	}

	return sortedBuckets
}

func (r *BucketRenderer) Update() error {
	if r.completed {
		return nil
	}

	r.mu.Lock()
	if !r.renderStarted {
		r.renderStarted = true
		r.mu.Unlock()
		go r.renderMultiPass()
	} else {
		r.mu.Unlock()
	}

	if r.passComplete.Load() && r.currentPass < r.totalPasses {
		r.passComplete.Store(false)
		r.completedCount.Store(0)
		r.currentPass++

		if r.currentPass < r.totalPasses {
			go r.renderPass()
		} else {
			r.completed = true
			r.renderEnd = time.Now()
			r.drawStatsToFramebuffer()
			_ = r.SaveImage("image.png")

			renderDuration := r.renderEnd.Sub(r.renderStart)
			PrintRenderStatsReport(GlobalRenderStats, renderDuration)
		}
	}

	return nil
}

func (r *BucketRenderer) renderMultiPass() {
	r.renderPass()
}

func (r *BucketRenderer) renderPass() {
	var samplesForPass int
	var depthForPass int

	switch r.currentPass {
	case 0:
		samplesForPass = 1
		depthForPass = 3
	case 1:
		samplesForPass = max(1, r.camera.SamplesPerPixel/4)
		depthForPass = max(3, r.camera.MaxDepth/2)
	case 2:
		samplesForPass = r.camera.SamplesPerPixel
		depthForPass = r.camera.MaxDepth
	default:
		samplesForPass = r.camera.SamplesPerPixel
		depthForPass = r.camera.MaxDepth
	}

	bucketChan := make(chan Bucket, r.numWorkers*2)

	var wg sync.WaitGroup
	for i := 0; i < r.numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r.workerMultiPass(bucketChan, samplesForPass, depthForPass)
		}(i)
	}

	for _, bucket := range r.buckets {
		bucketChan <- bucket
	}
	close(bucketChan)

	wg.Wait()
	r.passComplete.Store(true)
}

func (r *BucketRenderer) workerMultiPass(buckets <-chan Bucket, samplesPerPixel int, maxDepth int) {
	for bucket := range buckets {
		r.renderBucketWithQuality(bucket, samplesPerPixel, maxDepth)
		r.completedCount.Add(1)
	}
}

func (r *BucketRenderer) renderBucketWithQuality(bucket Bucket, samplesPerPixel int, maxDepth int) {
	bucketBuffer := make([]color.RGBA, bucket.Width*bucket.Height)
	sqrtSPP := max(1, int(math.Sqrt(float64(samplesPerPixel))))
	background := r.camera.BackgroundSource()

	for localY := 0; localY < bucket.Height; localY++ {
		for localX := 0; localX < bucket.Width; localX++ {
			globalX := bucket.X + localX
			globalY := bucket.Y + localY

			pixelColor := Color{X: 0, Y: 0, Z: 0}

			sample := 0
			for sj := 0; sj < sqrtSPP && sample < samplesPerPixel; sj++ {
				for si := 0; si < sqrtSPP && sample < samplesPerPixel; si++ {
					ray := r.camera.GetRay(globalX, globalY, si, sj)
					pixelColor = pixelColor.Add(RayColor(ray, maxDepth, maxDepth, r.world, r.lights, background))
					GlobalRenderStats.SamplesComputed.Add(1)
					sample++
				}
			}

			scale := 1.0 / float64(sample)
			pixelColor = pixelColor.Scale(scale)

			intensity := NewInterval(0.0, 0.999)
			bucketBuffer[localY*bucket.Width+localX] = color.RGBA{
				R: uint8(256 * intensity.Clamp(LinearToGamma(pixelColor.X))),
				G: uint8(256 * intensity.Clamp(LinearToGamma(pixelColor.Y))),
				B: uint8(256 * intensity.Clamp(LinearToGamma(pixelColor.Z))),
				A: 255,
			}

			GlobalRenderStats.PixelsRendered.Add(1)
		}
	}

	r.mu.Lock()
	for localY := 0; localY < bucket.Height; localY++ {
		for localX := 0; localX < bucket.Width; localX++ {
			globalX := bucket.X + localX
			globalY := bucket.Y + localY
			r.framebuffer.Set(globalX, globalY, bucketBuffer[localY*bucket.Width+localX])
		}
	}
	r.mu.Unlock()
}

func (r *BucketRenderer) Draw(screen *ebiten.Image) {
	r.mu.Lock()
	screen.WritePixels(r.framebuffer.Pix)
	r.mu.Unlock()

	r.drawRenderSettings(screen)
}

func (r *BucketRenderer) drawRenderSettings(screen *ebiten.Image) {
	completedBuckets := int(r.completedCount.Load())
	progress := float64(completedBuckets) / float64(r.totalBuckets) * 100.0
	if r.completed {
		progress = 100.0
	}

	var elapsed time.Duration
	if r.completed {
		elapsed = r.renderEnd.Sub(r.renderStart)
	} else {
		elapsed = time.Since(r.renderStart)
	}

	barHeight := 30
	barY := r.camera.ImageHeight - barHeight
	bgColor := color.RGBA{R: 0, G: 0, B: 0, A: 255}

	r.mu.Lock()
	for py := barY; py < r.camera.ImageHeight; py++ {
		for px := 0; px < r.camera.ImageWidth; px++ {
			r.framebuffer.Set(px, py, bgColor)
		}
	}
	r.mu.Unlock()

	textY := barY + 10
	spacing := 15

	var status string
	var passName string

	switch r.currentPass {
	case 0:
		passName = "PREVIEW"
	case 1:
		passName = "REFINING"
	case 2:
		passName = "FINAL"
	default:
		passName = "RENDERING"
	}

	if r.completed {
		status = "COMPLETED"
	} else {
		status = fmt.Sprintf("%s | Buckets: %d/%d", passName, completedBuckets, r.totalBuckets)
	}

	statsText := fmt.Sprintf("%dx%d | SPP:%d | Depth:%d | Pass:%d/%d | %.1f%% | %s | %s",
		r.camera.ImageWidth,
		r.camera.ImageHeight,
		r.camera.SamplesPerPixel,
		r.camera.MaxDepth,
		min(r.currentPass+1, r.totalPasses),
		r.totalPasses,
		progress,
		FormatDuration(elapsed),
		status,
	)

	ebitenutil.DebugPrintAt(screen, statsText, spacing, textY)
}

func (r *BucketRenderer) drawStatsToFramebuffer() {
	elapsed := r.renderEnd.Sub(r.renderStart)

	barHeight := 30
	barY := r.camera.ImageHeight - barHeight
	bgColor := color.RGBA{R: 0, G: 0, B: 0, A: 255}

	for py := barY; py < r.camera.ImageHeight; py++ {
		for px := 0; px < r.camera.ImageWidth; px++ {
			r.framebuffer.Set(px, py, bgColor)
		}
	}

	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	face := text.NewGoXFace(basicfont.Face7x13)

	statsText := fmt.Sprintf("%dx%d | SPP:%d | Depth:%d | 100.0%% | %s | Workers: %d",
		r.camera.ImageWidth,
		r.camera.ImageHeight,
		r.camera.SamplesPerPixel,
		r.camera.MaxDepth,
		FormatDuration(elapsed),
		r.numWorkers,
	)

	tempImg := ebiten.NewImageFromImage(r.framebuffer)
	opts := &text.DrawOptions{}
	opts.GeoM.Translate(15, float64(barY+10))
	opts.ColorScale.ScaleWithColor(textColor)
	text.Draw(tempImg, statsText, face, opts)
	tempImg.ReadPixels(r.framebuffer.Pix)
}

func (r *BucketRenderer) Layout(w, h int) (int, int) {
	return r.camera.ImageWidth, r.camera.ImageHeight
}

func (r *BucketRenderer) SaveImage(filename string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating image file: %w", err)
	}
	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Could not close file '%s': %v\n", filename, err)
		}
	}(file)

	if err := png.Encode(file, r.framebuffer); err != nil {
		return fmt.Errorf("error encoding PNG: %w", err)
	}

	fmt.Printf("\nImage saved to %s\n", filename)
	return nil
}

func (r *BucketRenderer) IsCompleted() bool {
	return r.completed
}

func (r *BucketRenderer) GetRenderDuration() time.Duration {
	if r.completed {
		return r.renderEnd.Sub(r.renderStart)
	}
	return time.Since(r.renderStart)
}
