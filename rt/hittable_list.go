package rt

// HittableList represents a collection of hittable objects
type HittableList struct {
	Objects []Hittable
	bbox    AABB
}

// NewHittableList creates a new empty hittable list
func NewHittableList() *HittableList {
	return &HittableList{
		Objects: make([]Hittable, 0),
		bbox:    NewAABB(),
	}
}

// Add adds a hittable object to the list and grows the combined bounding box.
func (hl *HittableList) Add(object Hittable) {
	hl.Objects = append(hl.Objects, object)
	hl.bbox = NewAABBFromBoxes(hl.bbox, object.BoundingBox())
}

// Clear removes all objects from the list
func (hl *HittableList) Clear() {
	hl.Objects = hl.Objects[:0]
	hl.bbox = NewAABB()
}

// Hit finds the closest hit among all objects in the list within rayT.
func (hl *HittableList) Hit(r Ray, rayT Interval, rec *HitRecord) bool {
	tempRec := &HitRecord{}
	hitAnything := false
	closestSoFar := rayT.Max

	for _, object := range hl.Objects {
		if object.Hit(r, NewInterval(rayT.Min, closestSoFar), tempRec) {
			hitAnything = true
			closestSoFar = tempRec.T
			*rec = *tempRec
		}
	}

	return hitAnything
}

func (hl *HittableList) BoundingBox() AABB {
	return hl.bbox
}

// PDFValue picks uniformly among members, per spec §4.1: the simple list
// used as lights weighs each member equally.
func (hl *HittableList) PDFValue(origin Point3, direction Vec3) float64 {
	if len(hl.Objects) == 0 {
		return 0
	}
	weight := 1.0 / float64(len(hl.Objects))
	sum := 0.0
	for _, object := range hl.Objects {
		sum += weight * object.PDFValue(origin, direction)
	}
	return sum
}

// Random returns a direction toward a uniformly chosen member.
func (hl *HittableList) Random(origin Point3) Vec3 {
	if len(hl.Objects) == 0 {
		return Vec3{X: 1, Y: 0, Z: 0}
	}
	idx := RandomInt(0, len(hl.Objects)-1)
	return hl.Objects[idx].Random(origin)
}
