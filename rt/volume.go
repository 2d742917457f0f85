package rt

import (
	"math"
	"math/rand"
)

// ConstantMedium is a probabilistic volume (fog, smoke, mist). Given a
// boundary hittable and density d, each ray segment inside the boundary
// scatters at a distance drawn from an exponential distribution with rate d.
type ConstantMedium struct {
	NonEmitter
	boundary      Hittable
	negInvDensity float64
	phaseFunction Material
}

// NewConstantMedium creates a volume with a texture-driven phase function.
func NewConstantMedium(boundary Hittable, density float64, tex Texture) *ConstantMedium {
	return &ConstantMedium{
		boundary:      boundary,
		negInvDensity: -1.0 / density,
		phaseFunction: NewIsotropic(tex),
	}
}

// NewConstantMediumFromColor creates a volume with a solid-color phase function.
func NewConstantMediumFromColor(boundary Hittable, density float64, albedo Color) *ConstantMedium {
	return &ConstantMedium{
		boundary:      boundary,
		negInvDensity: -1.0 / density,
		phaseFunction: NewIsotropicFromColor(albedo),
	}
}

// Hit determines if a ray hits the volume.
func (v *ConstantMedium) Hit(r Ray, rayT Interval, rec *HitRecord) bool {
	rec1 := &HitRecord{}
	rec2 := &HitRecord{}

	if !v.boundary.Hit(r, UniverseInterval, rec1) {
		return false
	}

	if !v.boundary.Hit(r, NewInterval(rec1.T+0.0001, math.Inf(1)), rec2) {
		return false
	}

	if rec1.T < rayT.Min {
		rec1.T = rayT.Min
	}
	if rec2.T > rayT.Max {
		rec2.T = rayT.Max
	}

	if rec1.T >= rec2.T {
		return false
	}

	if rec1.T < 0 {
		rec1.T = 0
	}

	rayLength := r.Direction().Len()
	distanceInsideBoundary := (rec2.T - rec1.T) * rayLength
	hitDistance := v.negInvDensity * math.Log(rand.Float64())

	if hitDistance > distanceInsideBoundary {
		return false
	}

	rec.T = rec1.T + hitDistance/rayLength
	rec.P = r.At(rec.T)
	rec.Normal = Vec3{X: 1, Y: 0, Z: 0} // arbitrary: isotropic phase function ignores it
	rec.FrontFace = true
	rec.Mat = v.phaseFunction

	return true
}

// BoundingBox returns the bounding box of the boundary.
func (v *ConstantMedium) BoundingBox() AABB {
	return v.boundary.BoundingBox()
}
