package rt

// HitRecord stores information about a ray-object intersection
type HitRecord struct {
	P         Point3
	Normal    Vec3
	Mat       Material
	U         float64
	V         float64
	T         float64 // Parameter t where intersection occurs
	FrontFace bool
}

// Hittable is the capability bundle every intersectable object implements:
// a hit query, a bounding box, and the two emitter-sampling queries used to
// importance-sample this object as a light. Non-emitting geometry embeds
// NonEmitter to satisfy the latter two with the spec's defined defaults.
type Hittable interface {
	Hit(r Ray, rayT Interval, rec *HitRecord) bool
	BoundingBox() AABB
	// PDFValue returns the solid-angle density of sampling a direction
	// toward this object from origin. Zero for non-emitters.
	PDFValue(origin Point3, direction Vec3) float64
	// Random returns a direction from origin toward a random point on this
	// object, usable as an emitter importance-sampling draw.
	Random(origin Point3) Vec3
}

// NonEmitter implements the Hittable emitter-sampling defaults for geometry
// that never serves as an importance-sampling target.
type NonEmitter struct{}

func (NonEmitter) PDFValue(origin Point3, direction Vec3) float64 { return 0 }
func (NonEmitter) Random(origin Point3) Vec3                      { return Vec3{X: 1, Y: 0, Z: 0} }

func (rec *HitRecord) SetFaceNormal(r Ray, outwardNormal Vec3) {
	// Determine if ray is hitting from outside or inside
	rec.FrontFace = Dot(r.Direction(), outwardNormal) < 0

	// Normal always points against the ray direction
	if rec.FrontFace {
		rec.Normal = outwardNormal
	} else {
		rec.Normal = outwardNormal.Neg()
	}
}
