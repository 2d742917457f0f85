package rt

import "math"

// LuminanceClampMax is the firefly-suppression ceiling applied to a
// scattered sample's luminance before Russian-roulette division, per §4.7.
const LuminanceClampMax = 0.6

// RussianRouletteGuaranteedBounces is the number of leading bounces that
// always continue unconditionally, regardless of the BRDF's roulette weight.
const RussianRouletteGuaranteedBounces = 3

// Background supplies the miss color for a given ray direction. A plain
// camera background color and a direction-dependent environment map both
// satisfy it, so the integrator's miss branch never needs to know which
// one it has.
type Background interface {
	At(dir Vec3) Color
}

// SolidBackground is a direction-independent miss color, the spec's
// default "camera's configured miss color".
type SolidBackground Color

func (c SolidBackground) At(dir Vec3) Color { return Color(c) }

// RayColor is the recursive light-transport estimator: for a camera or
// scattered ray it returns a Monte Carlo estimate of incoming radiance,
// mixing BSDF and emitter-area sampling via MIS, applying a
// ratio-preserving luminance clamp, and terminating paths with Russian
// roulette after the first few guaranteed bounces.
func RayColor(r Ray, depth, maxDepth int, world, lights Hittable, background Background) Color {
	if depth <= 0 {
		return Color{}
	}

	GlobalRenderStats.RayCount.Add(1)

	rec := &HitRecord{}
	if !world.Hit(r, NewInterval(0.001, math.Inf(1)), rec) {
		return background.At(r.Direction())
	}

	emit := rec.Mat.Emitted(r, rec, rec.U, rec.V, rec.P)

	srec, scattered := rec.Mat.Scatter(r, rec)
	if !scattered {
		return emit
	}

	if srec.SkipPDF {
		continuation := RayColor(srec.SkipPDFRay, depth-1, maxDepth, world, lights, background)
		return emit.Add(srec.Attenuation.Mult(continuation))
	}

	var p PDF
	if rec.Mat.UseLightSampling() && !lightsEmpty(lights) {
		p = NewMixturePDF(NewHittablePDF(lights, rec.P), srec.PDF)
	} else {
		p = srec.PDF
	}

	omega := p.Generate()
	scatteredRay := NewRay(rec.P, omega, r.Time())
	pdfValue := p.Value(omega)
	if pdfValue <= 0 {
		return emit
	}

	// SkipPDF materials returned above, so EvalBRDF is only consulted for
	// materials whose continuation is sampled through a PDF.
	brdf := rec.Mat.EvalBRDF(r, rec, scatteredRay)
	lIn := RayColor(scatteredRay, depth-1, maxDepth, world, lights, background)
	lScatter := brdf.Mult(lIn).Scale(1.0 / pdfValue)

	lScatter = ClampLuminance(lScatter, LuminanceClampMax)

	q := math.Max(brdf.X, math.Max(brdf.Y, brdf.Z))
	if depth > maxDepth-RussianRouletteGuaranteedBounces {
		return emit.Add(lScatter)
	}

	if RandomDouble() < q {
		return emit.Add(lScatter.Scale(1.0 / q))
	}
	return Color{}
}

// ClampLuminance scales c toward the origin so its brightest channel never
// exceeds m, preserving hue. Idempotent: clamping an already-clamped color
// is a no-op.
func ClampLuminance(c Color, m float64) Color {
	peak := math.Max(c.X, math.Max(c.Y, c.Z))
	if peak > m {
		return c.Scale(m / peak)
	}
	return c
}

// lightsEmpty reports whether lights has no importance-sampling targets.
// A nil Hittable or an empty HittableList both count as empty; the spec
// requires the mixture be skipped rather than built against a dead PDF.
func lightsEmpty(lights Hittable) bool {
	if lights == nil {
		return true
	}
	if hl, ok := lights.(*HittableList); ok {
		return len(hl.Objects) == 0
	}
	return false
}
