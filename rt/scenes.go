//TODO: add cameras that corresspond with each scene.

package rt

import (
	"math/rand"
)

type SceneConfig struct {
	GroundColor      Color
	SphereGridBounds struct{ MinA, MaxA, MinB, MaxB int }
	MovingSphereProb float64
	LambertProb      float64
	DielectricProb   float64
	MetalProb        float64
	LargeSpheresY    float64
}

func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		GroundColor: Color{X: 0.5, Y: 0.5, Z: 0.5},
		SphereGridBounds: struct {
			MinA int
			MaxA int
			MinB int
			MaxB int
		}{-10, 10, -10, 10},
		MovingSphereProb: 0,
		LambertProb:      0.3,
		DielectricProb:   0.3,
		MetalProb:        0.3,
		LargeSpheresY:    1.0,
	}
}

// collectLights walks a flat world list and gathers every object whose
// material emits, for use as the integrator's importance-sampling target.
// Run before BVH construction, against the original HittableList.
func collectLights(world *HittableList) *HittableList {
	lights := NewHittableList()
	for _, obj := range world.Objects {
		var mat Material
		switch o := obj.(type) {
		case *Sphere:
			mat = o.Mat
		case *Quad:
			mat = o.Mat()
		default:
			continue
		}
		if _, ok := mat.(*DiffuseLight); ok {
			lights.Add(obj)
		}
	}
	return lights
}

// RandomScene builds the classic book-1 grid of random spheres around three
// large feature spheres, standing on a checkered ground plane.
func RandomScene() (*HittableList, *Camera, *HittableList) {
	world := RandomSceneWithConfig(DefaultSceneConfig())
	cam := NewCameraBuilder().
		SetResolution(800, 16.0/9.0).
		SetQuality(100, 50).
		SetPosition(Point3{X: 13, Y: 2, Z: 3}, Point3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}).
		SetLens(20, 0.6, 10.0).
		SetBackground(BackgroundSkyColor).
		Build()
	return world, cam, collectLights(world)
}

func RandomSceneWithConfig(config SceneConfig) *HittableList {
	world := NewHittableList()
	groundChecker := NewCheckerTextureFromColors(
		0.32,
		config.GroundColor,
		Color{X: 0.9, Y: 0.9, Z: 0.9},
	)
	groundMaterial := NewLambertianTexture(groundChecker)
	world.Add(NewPlane(Point3{X: 0, Y: 0, Z: -1}, Vec3{X: 0, Y: 1, Z: 0}, groundMaterial))

	for a := config.SphereGridBounds.MinA; a < config.SphereGridBounds.MaxA; a++ {
		for b := config.SphereGridBounds.MinB; b < config.SphereGridBounds.MaxB; b++ {
			chooseMat := rand.Float64()
			center := Point3{
				X: float64(a) + 0.9*rand.Float64(),
				Y: 0.2,
				Z: float64(b) + 0.9*rand.Float64(),
			}

			if center.Sub(Point3{X: 4, Y: 0.2, Z: 0}).Len() > 0.9 {
				addRandomSphere(world, center, chooseMat, config)
			}
		}
	}
	addLargeSpheres(world, config.LargeSpheresY)

	return world
}

func addRandomSphere(world *HittableList, center Point3, chooseMat float64, config SceneConfig) {
	var sphereMaterial Material

	lambertThreshold := config.LambertProb
	metalThreshold := config.MetalProb + lambertThreshold
	dielectricThreshold := config.DielectricProb + metalThreshold

	if chooseMat < lambertThreshold {
		albedo := Color{
			X: rand.Float64() * rand.Float64(),
			Y: rand.Float64() * rand.Float64(),
			Z: rand.Float64() * rand.Float64(),
		}
		sphereMaterial = NewLambertian(albedo)
		center2 := center.Add(Vec3{X: 0, Y: RandomDoubleRange(0, 0.5), Z: 0})
		world.Add(NewMovingSphere(center, center2, 0.2, sphereMaterial))
	} else if chooseMat < metalThreshold {

		albedo := Color{
			X: 0.5 + rand.Float64()*0.5,
			Y: 0.5 + rand.Float64()*0.5,
			Z: 0.5 + rand.Float64()*0.5,
		}
		fuzz := rand.Float64() * 0.5
		sphereMaterial = NewMetal(albedo, fuzz)
		world.Add(NewSphere(center, 0.2, sphereMaterial))
	} else if chooseMat < dielectricThreshold {

		sphereMaterial = NewDielectric(1.5)
		world.Add(NewSphere(center, 0.2, sphereMaterial))
	}
}

func addLargeSpheres(world *HittableList, y float64) {
	// Glass sphere (center)
	material1 := NewDielectric(1.5)
	world.Add(NewSphere(Point3{X: 0, Y: y, Z: 0}, 1.0, material1))

	// Diffuse sphere (left)
	material2 := NewLambertian(Color{X: 0.4, Y: 0.2, Z: 0.1})
	world.Add(NewSphere(Point3{X: -4, Y: y, Z: 0}, 1.0, material2))

	// Metal sphere (right)
	material3 := NewMetal(Color{X: 0.7, Y: 0.6, Z: 0.5}, 0.0)
	world.Add(NewSphere(Point3{X: 4, Y: y, Z: 0}, 1.0, material3))
}

func CheckeredSpheresScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()

	checker := NewCheckerTextureFromColors(
		0.32,
		Color{X: 0.2, Y: 0.3, Z: 0.1},
		Color{X: 0.9, Y: 0.9, Z: 0.9},
	)

	checkerMaterial := NewLambertianTexture(checker)

	// Bottom sphere (at y=-10)
	world.Add(NewSphere(Point3{X: 0, Y: -10, Z: 0}, 10, checkerMaterial))

	// Top sphere (at y=10)
	world.Add(NewSphere(Point3{X: 0, Y: 10, Z: 0}, 10, checkerMaterial))

	cam := NewCameraBuilder().
		SetResolution(800, 16.0/9.0).
		SetQuality(100, 50).
		SetPosition(Point3{X: 13, Y: 2, Z: 3}, Point3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}).
		SetLens(20, 0, 10.0).
		SetBackground(BackgroundSkyColor).
		Build()
	return world, cam, collectLights(world)
}

func SimpleScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()

	materialGround := NewLambertian(Color{X: 0.8, Y: 0.8, Z: 0.0})
	materialCenter := NewLambertian(Color{X: 0.1, Y: 0.2, Z: 0.5})
	materialLeft := NewDielectric(1.5)
	materialBubble := NewDielectric(1.0 / 1.5)
	materialRight := NewMetal(Color{X: 0.8, Y: 0.6, Z: 0.2}, 0.0)

	world.Add(NewPlane(Point3{X: 0, Y: -0.5, Z: -1}, Vec3{X: 0, Y: 1, Z: 0}, materialGround))
	world.Add(NewSphere(Point3{X: 0, Y: 0, Z: -1}, 0.5, materialCenter))
	world.Add(NewSphere(Point3{X: -1, Y: 0, Z: -1}, 0.5, materialLeft))
	world.Add(NewSphere(Point3{X: -1, Y: 0, Z: -1}, 0.4, materialBubble))
	world.Add(NewSphere(Point3{X: 1, Y: 0, Z: -1}, 0.5, materialRight))

	cam := NewCameraBuilder().
		SetResolution(400, 16.0/9.0).
		SetQuality(100, 50).
		SetPosition(Point3{X: 0, Y: 0, Z: 2}, Point3{X: 0, Y: 0, Z: -1}, Vec3{X: 0, Y: 1, Z: 0}).
		SetLens(40, 0, 10.0).
		SetBackground(BackgroundSkyColor).
		Build()
	return world, cam, collectLights(world)
}

// PointLightSphereScene is spec §8 scenario 1: a matte red sphere and a
// grey ground sphere lit by a single small emissive sphere, with background
// black so the light is the only source of illumination. The camera sits at
// (5,3,7) looking at (0,1,0), vfov 45°, 16:9, 600px wide, spp=10, depth=50.
// Parameters taken verbatim from simple_scene() in the original C++ source.
func PointLightSphereScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()

	ground := NewLambertian(Color{X: 0.5, Y: 0.5, Z: 0.5})
	world.Add(NewSphere(Point3{X: 0, Y: -1000, Z: 0}, 1000, ground))

	lightMat := NewDiffuseLightColor(Color{X: 15, Y: 15, Z: 13})
	lightSphere := NewSphere(Point3{X: -2, Y: 4, Z: 5}, 1, lightMat)
	world.Add(lightSphere)

	diffuse := NewLambertian(Color{X: 0.8, Y: 0.3, Z: 0.3})
	world.Add(NewSphere(Point3{X: 0, Y: 1.5, Z: 0}, 1.5, diffuse))

	lights := NewHittableList()
	lights.Add(lightSphere)

	cam := NewCameraBuilder().
		SetResolution(600, 16.0/9.0).
		SetQuality(10, 50).
		SetPosition(Point3{X: 5, Y: 3, Z: 7}, Point3{X: 0, Y: 1, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}).
		SetLens(45, 0, 10.0).
		SetBackground(Color{X: 0, Y: 0, Z: 0}).
		Build()

	return world, cam, lights
}

func EarthScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()

	earthTexture := NewImageTexture("earthmap.jpg")
	earthSurface := NewLambertianTexture(earthTexture)
	globe := NewSphere(Point3{X: 0, Y: 0, Z: 0}, 2, earthSurface)

	world.Add(globe)

	cam := EarthCamera()
	return world, cam, collectLights(world)
}

func EarthCamera() *Camera {
	camera := NewCamera()
	camera.AspectRatio = 16.0 / 9.0
	camera.ImageWidth = 800
	camera.SamplesPerPixel = 100
	camera.MaxDepth = 50
	camera.Vfov = 20
	camera.LookFrom = Point3{X: 0, Y: 0, Z: 12}
	camera.LookAt = Point3{X: 0, Y: 0, Z: 0}
	camera.Vup = Vec3{X: 0, Y: 1, Z: 0}
	camera.DefocusAngle = 0
	camera.Background = BackgroundSkyColor
	camera.Initialize()

	return camera
}

func PerlinSpheresScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()

	pertext := NewNoiseTexture(4.0)

	world.Add(NewSphere(Point3{X: 0, Y: 2, Z: 0}, 2, NewLambertianTexture(pertext)))

	world.Add(NewPlane(Point3{X: 0, Y: 0, Z: -1}, Vec3{X: 0, Y: 1, Z: 0}, NewLambertianTexture(pertext)))

	cam := PerlinSpheresCamera()
	return world, cam, collectLights(world)
}

// PerlinSpheresCamera returns the camera configuration for the Perlin spheres scene
func PerlinSpheresCamera() *Camera {
	camera := NewCamera()
	camera.AspectRatio = 16.0 / 9.0
	camera.ImageWidth = 600
	camera.SamplesPerPixel = 100
	camera.MaxDepth = 50
	camera.Vfov = 20
	camera.LookFrom = Point3{X: 13, Y: 2, Z: -10}
	camera.LookAt = Point3{X: 0, Y: 1.5, Z: 0}
	camera.Vup = Vec3{X: 0, Y: 1, Z: 0}
	camera.DefocusAngle = 0
	camera.Background = BackgroundSkyColor
	camera.Initialize()

	return camera
}

// cornellWalls builds the five enclosing quads shared by every Cornell-box
// variant: red left wall, green right wall, white back/floor/ceiling, plus
// a white ceiling light centered overhead.
func cornellWalls(world *HittableList) {
	red := NewLambertian(Color{X: 0.65, Y: 0.05, Z: 0.05})
	white := NewLambertian(Color{X: 0.73, Y: 0.73, Z: 0.73})
	green := NewLambertian(Color{X: 0.12, Y: 0.45, Z: 0.15})
	light := NewDiffuseLightColor(Color{X: 15, Y: 15, Z: 15})

	world.Add(NewQuad(Point3{X: 555, Y: 0, Z: 0}, Vec3{X: 0, Y: 555, Z: 0}, Vec3{X: 0, Y: 0, Z: 555}, green))
	world.Add(NewQuad(Point3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 555, Z: 0}, Vec3{X: 0, Y: 0, Z: 555}, red))
	world.Add(NewQuad(Point3{X: 343, Y: 554, Z: 332}, Vec3{X: -130, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: -105}, light))
	world.Add(NewQuad(Point3{X: 0, Y: 0, Z: 0}, Vec3{X: 555, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 555}, white))
	world.Add(NewQuad(Point3{X: 555, Y: 555, Z: 555}, Vec3{X: -555, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: -555}, white))
	world.Add(NewQuad(Point3{X: 0, Y: 0, Z: 555}, Vec3{X: 555, Y: 0, Z: 0}, Vec3{X: 0, Y: 555, Z: 0}, white))
}

// cornellCamera is the standard box-filling view shared by every variant,
// parameterized on sample count since scenario spp diverges (200 for the
// plain box, 1000 for the glossy-sphere variant per spec §8 scenario 2).
func cornellCamera(spp int) *Camera {
	return NewCameraBuilder().
		SetResolution(600, 1.0).
		SetQuality(spp, 50).
		SetPosition(Point3{X: 278, Y: 278, Z: -800}, Point3{X: 278, Y: 278, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}).
		SetLens(40, 0, 10.0).
		SetBackground(BackgroundBlack).
		Build()
}

// CornellBoxScene is the canonical two-box Cornell box.
func CornellBoxScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()
	cornellWalls(world)

	white := NewLambertian(Color{X: 0.73, Y: 0.73, Z: 0.73})

	box1 := Box(Point3{X: 0, Y: 0, Z: 0}, Point3{X: 165, Y: 330, Z: 165}, white)
	box1 = Ry(box1, 15)
	box1 = NewTranslate(box1, Vec3{X: 265, Y: 0, Z: 295})
	world.Add(box1)

	box2 := Box(Point3{X: 0, Y: 0, Z: 0}, Point3{X: 165, Y: 165, Z: 165}, white)
	box2 = Ry(box2, -18)
	box2 = NewTranslate(box2, Vec3{X: 130, Y: 0, Z: 65})
	world.Add(box2)

	return world, cornellCamera(200), collectLights(world)
}

// CornellBoxGlossyScene is spec §8 scenario 2: Cornell walls, the tall
// rotated box, and a GGX glossy sphere (albedo (0.8,0.8,0.8), roughness 0.3,
// metallic 1.0) at (190,90,190) r=90 in place of the short box, rendered at
// spp=1000 so the mirror-like wall reflections resolve cleanly. Matches
// cornell_box() in the original C++ source.
func CornellBoxGlossyScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()
	cornellWalls(world)

	white := NewLambertian(Color{X: 0.73, Y: 0.73, Z: 0.73})

	tall := Box(Point3{X: 0, Y: 0, Z: 0}, Point3{X: 165, Y: 330, Z: 165}, white)
	tall = Ry(tall, 15)
	tall = NewTranslate(tall, Vec3{X: 265, Y: 0, Z: 295})
	world.Add(tall)

	glossySphere := NewSphere(Point3{X: 190, Y: 90, Z: 190}, 90, NewGlossy(Color{X: 0.8, Y: 0.8, Z: 0.8}, 0.3, 1.0))
	world.Add(glossySphere)

	return world, cornellCamera(1000), collectLights(world)
}

// IridescentBubbleScene is spec §8 scenario 3: a single iridescent-wrapped
// glass sphere against a flat sky background, with deliberately empty
// lights — the integrator must detect that and skip the light-sampling
// mixture rather than build one against a dead PDF. Matches bubble() in the
// original C++ source.
func IridescentBubbleScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()

	bubble := NewIridescent(NewDielectric(1.5), 0.6)
	world.Add(NewSphere(Point3{}, 2, bubble))

	cam := NewCameraBuilder().
		SetResolution(600, 16.0/9.0).
		SetQuality(100, 50).
		SetPosition(Point3{X: 0, Y: 0, Z: 12}, Point3{}, Vec3{X: 0, Y: 1, Z: 0}).
		SetLens(20, 0, 10.0).
		SetBackground(Color{X: 0.47, Y: 0.57, Z: 0.74}).
		Build()

	return world, cam, NewHittableList()
}

// CornellSmokeScene swaps the two Cornell boxes for constant-density smoke
// and fog volumes, exercising ConstantMedium's exponential free-path
// sampling (§4.2) inside an otherwise ordinary emitter-lit box.
func CornellSmokeScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()
	cornellWalls(world)

	white := NewLambertian(Color{X: 0.73, Y: 0.73, Z: 0.73})

	box1 := Box(Point3{X: 0, Y: 0, Z: 0}, Point3{X: 165, Y: 330, Z: 165}, white)
	box1 = Ry(box1, 15)
	box1 = NewTranslate(box1, Vec3{X: 265, Y: 0, Z: 295})

	box2 := Box(Point3{X: 0, Y: 0, Z: 0}, Point3{X: 165, Y: 165, Z: 165}, white)
	box2 = Ry(box2, -18)
	box2 = NewTranslate(box2, Vec3{X: 130, Y: 0, Z: 65})

	world.Add(NewConstantMediumFromColor(box1, 0.01, Color{X: 0, Y: 0, Z: 0}))
	world.Add(NewConstantMediumFromColor(box2, 0.01, Color{X: 1, Y: 1, Z: 1}))

	return world, cornellCamera(200), collectLights(world)
}

// PrimitivesScene exercises the bonus instance primitives (Circle, Plane,
// Pyramid) plus the experimental SDFGroup acceleration structure as an
// alternative to the BVH, side by side in one frame.
func PrimitivesScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()

	ground := NewLambertian(Color{X: 0.5, Y: 0.5, Z: 0.5})
	world.Add(NewPlane(Point3{X: 0, Y: -1, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}, ground))

	glassCircle := NewDielectric(1.5)
	world.Add(NewCircle(Point3{X: -2.5, Y: 0.75, Z: 0}, Vec3{X: 0, Y: 0, Z: -1}, 0.75, glassCircle))

	world.Add(Pyramid(Point3{X: 0, Y: -1, Z: 0}, 1.5, 2.0, NewMetal(Color{X: 0.7, Y: 0.6, Z: 0.5}, 0.1)))

	sdf := NewSDFGroup([]SDFPrimitive{
		{Center: Point3{X: 3, Y: 0.5, Z: 0}, Radius: 0.6, Mat: NewLambertian(Color{X: 0.9, Y: 0.2, Z: 0.2})},
		{Center: Point3{X: 3.7, Y: 0.3, Z: 0.3}, Radius: 0.4, Mat: NewLambertian(Color{X: 0.9, Y: 0.2, Z: 0.2})},
	})
	world.Add(sdf)

	light := NewDiffuseLightColor(Color{X: 6, Y: 6, Z: 6})
	world.Add(NewQuad(Point3{X: -2, Y: 5, Z: -2}, Vec3{X: 4, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 4}, light))

	cam := NewCameraBuilder().
		SetResolution(800, 16.0/9.0).
		SetQuality(100, 50).
		SetPosition(Point3{X: 0, Y: 2, Z: 9}, Point3{X: 0.5, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}).
		SetLens(30, 0, 10.0).
		SetBackground(BackgroundBlack).
		Build()

	return world, cam, collectLights(world)
}

// HDRITestScene showcases the equirectangular environment-map background
// (hdri.go) as the integrator's miss color, lit entirely by the map instead
// of an explicit emitter, with a glossy sphere to show the GGX reflection
// picking up the environment's detail.
func HDRITestScene() (*HittableList, *Camera, *HittableList) {
	world := NewHittableList()

	world.Add(NewSphere(Point3{X: 0, Y: 0, Z: 0}, 1.0, NewGlossy(Color{X: 0.9, Y: 0.9, Z: 0.9}, 0.15, 1.0)))
	world.Add(NewSphere(Point3{X: -2.2, Y: 0, Z: 0}, 1.0, NewMetal(Color{X: 0.8, Y: 0.8, Z: 0.8}, 0.0)))
	world.Add(NewSphere(Point3{X: 2.2, Y: 0, Z: 0}, 1.0, NewLambertian(Color{X: 0.6, Y: 0.2, Z: 0.2})))
	world.Add(NewPlane(Point3{X: 0, Y: -1, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}, NewLambertian(Color{X: 0.4, Y: 0.4, Z: 0.4})))

	env := NewHDRIEnvironment("studio.hdr")

	cam := NewCameraBuilder().
		SetResolution(800, 16.0/9.0).
		SetQuality(200, 50).
		SetPosition(Point3{X: 0, Y: 1.5, Z: 7}, Point3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0}).
		SetLens(35, 0, 10.0).
		Build()
	cam.SetEnvironment(env)

	return world, cam, collectLights(world)
}
