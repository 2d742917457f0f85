package rt

import "math"

// Triangle is a flat triangle primitive with optional per-vertex UVs. When
// all three vertex UVs are equal (the NewTriangle constructor's default),
// the raw Möller–Trumbore barycentric (u,v) is returned instead, per §4.2.
type Triangle struct {
	NonEmitter
	v0, v1, v2    Point3
	uv0, uv1, uv2 Vec2
	rawBarycentricUV bool
	normal        Vec3
	mat           Material
	bbox          AABB
}

// NewTriangle creates a triangle with no per-vertex UVs; Hit returns the raw
// barycentric (u,v).
func NewTriangle(v0, v1, v2 Point3, mat Material) *Triangle {
	return NewTriangleUV(v0, v1, v2, Vec2{}, Vec2{}, Vec2{}, mat)
}

// NewTriangleUV creates a triangle with per-vertex UV coordinates,
// interpolated barycentrically at the hit point. If all three UVs are
// equal, the triangle falls back to raw barycentric (u,v) (§4.2).
func NewTriangleUV(v0, v1, v2 Point3, uv0, uv1, uv2 Vec2, mat Material) *Triangle {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	normal := Cross(edge1, edge2).Unit()

	tri := &Triangle{
		v0: v0, v1: v1, v2: v2,
		uv0: uv0, uv1: uv1, uv2: uv2,
		rawBarycentricUV: uv0 == uv1 && uv1 == uv2,
		normal:           normal,
		mat:              mat,
	}

	minX := math.Min(v0.X, math.Min(v1.X, v2.X))
	maxX := math.Max(v0.X, math.Max(v1.X, v2.X))
	minY := math.Min(v0.Y, math.Min(v1.Y, v2.Y))
	maxY := math.Max(v0.Y, math.Max(v1.Y, v2.Y))
	minZ := math.Min(v0.Z, math.Min(v1.Z, v2.Z))
	maxZ := math.Max(v0.Z, math.Max(v1.Z, v2.Z))

	tri.bbox = NewAABBFromPoints(
		Point3{X: minX, Y: minY, Z: minZ},
		Point3{X: maxX, Y: maxY, Z: maxZ},
	)

	return tri
}

func (t *Triangle) BoundingBox() AABB {
	return t.bbox
}

// Hit uses the Möller-Trumbore algorithm for ray-triangle intersection.
// Rejects exactly those barycentric (u,v) with u<0, v<0, or u+v>1.
func (t *Triangle) Hit(r Ray, rayT Interval, rec *HitRecord) bool {
	edge1 := t.v1.Sub(t.v0)
	edge2 := t.v2.Sub(t.v0)

	h := Cross(r.Direction(), edge2)
	a := Dot(edge1, h)

	// Ray is parallel to triangle
	if math.Abs(a) < 1e-8 {
		return false
	}

	f := 1.0 / a
	s := r.Origin().Sub(t.v0)
	u := f * Dot(s, h)

	if u < 0.0 || u > 1.0 {
		return false
	}

	q := Cross(s, edge1)
	v := f * Dot(r.Direction(), q)

	if v < 0.0 || u+v > 1.0 {
		return false
	}

	hitT := f * Dot(edge2, q)

	if !rayT.Contains(hitT) {
		return false
	}

	rec.T = hitT
	rec.P = r.At(hitT)
	rec.Mat = t.mat
	rec.SetFaceNormal(r, t.normal)

	if t.rawBarycentricUV {
		rec.U = u
		rec.V = v
	} else {
		w := 1 - u - v
		interp := t.uv0.U*w + t.uv1.U*u + t.uv2.U*v
		interpV := t.uv0.V*w + t.uv1.V*u + t.uv2.V*v
		rec.U = interp
		rec.V = interpV
	}

	return true
}
