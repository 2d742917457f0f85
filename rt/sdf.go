package rt

// SDFGroup is an experimental alternative to the BVH: a set of analytic
// sphere signed-distance fields combined by a smooth-min blend, intersected
// by sphere tracing instead of closed-form roots.
type SDFGroup struct {
	NonEmitter
	Spheres []SDFPrimitive
	bbox    AABB
}

// SDFPrimitive is one analytic sphere contributing to the blended field.
type SDFPrimitive struct {
	Center Point3
	Radius float64
	Mat    Material
}

const (
	sdfSmoothK   = 0.1
	sdfMaxSteps  = 100
	sdfEpsilon   = 1e-3
	sdfMaxDist   = 100.0
	sdfNormalH   = 1e-4
)

func NewSDFGroup(spheres []SDFPrimitive) *SDFGroup {
	g := &SDFGroup{Spheres: spheres}
	if len(spheres) == 0 {
		g.bbox = NewAABB()
		return g
	}
	margin := Vec3{X: sdfSmoothK * 4, Y: sdfSmoothK * 4, Z: sdfSmoothK * 4}
	bbox := sphereBounds(spheres[0], margin)
	for _, s := range spheres[1:] {
		bbox = NewAABBFromBoxes(bbox, sphereBounds(s, margin))
	}
	g.bbox = bbox
	return g
}

func sphereBounds(s SDFPrimitive, margin Vec3) AABB {
	rvec := Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}.Add(margin)
	return NewAABBFromPoints(s.Center.Sub(rvec), s.Center.Add(rvec))
}

func (g *SDFGroup) BoundingBox() AABB {
	return g.bbox
}

func distToSphere(p Point3, s SDFPrimitive) float64 {
	return p.Sub(s.Center).Len() - s.Radius
}

// smoothMin is IQ's polynomial smooth minimum with blend radius k.
func smoothMin(a, b, k float64) float64 {
	h := Clamp(0.5+0.5*(b-a)/k, 0, 1)
	return b*(1-h) + a*h - k*h*(1-h)
}

// sceneDistance returns the blended field distance at p, plus the index of
// the sphere whose unblended distance is smallest (for material/UV lookup
// at convergence).
func (g *SDFGroup) sceneDistance(p Point3) (float64, int) {
	closestIdx := 0
	closestDist := distToSphere(p, g.Spheres[0])
	blended := closestDist

	for i := 1; i < len(g.Spheres); i++ {
		d := distToSphere(p, g.Spheres[i])
		blended = smoothMin(blended, d, sdfSmoothK)
		if d < closestDist {
			closestDist = d
			closestIdx = i
		}
	}
	return blended, closestIdx
}

func (g *SDFGroup) normalAt(p Point3) Vec3 {
	dx := Vec3{X: sdfNormalH}
	dy := Vec3{Y: sdfNormalH}
	dz := Vec3{Z: sdfNormalH}

	dPlusX, _ := g.sceneDistance(p.Add(dx))
	dMinusX, _ := g.sceneDistance(p.Sub(dx))
	dPlusY, _ := g.sceneDistance(p.Add(dy))
	dMinusY, _ := g.sceneDistance(p.Sub(dy))
	dPlusZ, _ := g.sceneDistance(p.Add(dz))
	dMinusZ, _ := g.sceneDistance(p.Sub(dz))

	return Vec3{
		X: dPlusX - dMinusX,
		Y: dPlusY - dMinusY,
		Z: dPlusZ - dMinusZ,
	}.Unit()
}

// Hit sphere-traces the blended field. Fails (no hit) if steps exhaust,
// distance exceeds sdfMaxDist, or no sphere is closest at convergence.
func (g *SDFGroup) Hit(r Ray, rayT Interval, rec *HitRecord) bool {
	dirLen := r.Direction().Len()
	if len(g.Spheres) == 0 || dirLen == 0 {
		return false
	}

	// s is the marched distance along the unit direction; t = s/dirLen is
	// the ray parameter that rayT bounds and rec.T records.
	dir := r.Direction().Div(dirLen)
	s := rayT.Min * dirLen

	for step := 0; step < sdfMaxSteps; step++ {
		t := s / dirLen
		if t > rayT.Max || s > sdfMaxDist {
			return false
		}

		p := r.Origin().Add(dir.Scale(s))
		dist, closestIdx := g.sceneDistance(p)

		if dist < sdfEpsilon {
			if !rayT.Contains(t) {
				return false
			}
			rec.T = t
			rec.P = p
			normal := g.normalAt(p)
			rec.SetFaceNormal(r, normal)

			sph := g.Spheres[closestIdx]
			rec.Mat = sph.Mat
			rec.U, rec.V = sphereUV(p.Sub(sph.Center).Div(sph.Radius))
			return true
		}

		s += dist
	}
	return false
}
