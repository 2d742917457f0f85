package rt

import "math"

// ONB is an orthonormal basis built from a surface normal. Axis[2] is the
// normal itself; Axis[0]/Axis[1] span the tangent plane.
type ONB struct {
	axis [3]Vec3
}

// NewONB builds a basis around n. The auxiliary axis is picked to avoid
// near-parallel degeneracy with n, then the basis is completed with two
// cross products.
func NewONB(n Vec3) ONB {
	unitN := n.Unit()

	var a Vec3
	if math.Abs(unitN.X) > 0.9 {
		a = Vec3{X: 0, Y: 1, Z: 0}
	} else {
		a = Vec3{X: 1, Y: 0, Z: 0}
	}

	v := Cross(unitN, a).Unit()
	u := Cross(unitN, v)

	return ONB{axis: [3]Vec3{u, v, unitN}}
}

func (b ONB) U() Vec3 { return b.axis[0] }
func (b ONB) V() Vec3 { return b.axis[1] }
func (b ONB) W() Vec3 { return b.axis[2] }

// Local transforms a world-space vector into the basis's local frame.
func (b ONB) Local(v Vec3) Vec3 {
	return Vec3{
		X: Dot(v, b.axis[0]),
		Y: Dot(v, b.axis[1]),
		Z: Dot(v, b.axis[2]),
	}
}

// World transforms a local-frame vector into world space.
func (b ONB) World(v Vec3) Vec3 {
	return b.axis[0].Scale(v.X).Add(b.axis[1].Scale(v.Y)).Add(b.axis[2].Scale(v.Z))
}

// RandomCosineDirection draws a direction from a cosine-weighted hemisphere
// centered on +Z in local coordinates.
func RandomCosineDirection() Vec3 {
	r1 := RandomDouble()
	r2 := RandomDouble()

	phi := 2 * Pi * r1
	x := math.Cos(phi) * math.Sqrt(r2)
	y := math.Sin(phi) * math.Sqrt(r2)
	z := math.Sqrt(1 - r2)

	return Vec3{X: x, Y: y, Z: z}
}
