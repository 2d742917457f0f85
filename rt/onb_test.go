package rt

import (
	"math"
	"testing"
)

func TestONBWorldLocalRoundTrip(t *testing.T) {
	normals := []Vec3{
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: 0.93, Y: 0.01, Z: -0.2},
	}

	for _, n := range normals {
		b := NewONB(n)
		for i := 0; i < 100; i++ {
			v := RandomUnitVector()
			got := b.World(b.Local(v))
			if d := got.Sub(v).Len(); d > 1e-9 {
				t.Fatalf("world(local(v)) = %v, want %v (diff %g) for normal %v", got, v, d, n)
			}
		}
	}
}

func TestONBAxisOrthonormal(t *testing.T) {
	b := NewONB(Vec3{X: 0.4, Y: 0.6, Z: -0.3})

	if math.Abs(Dot(b.U(), b.V())) > 1e-12 {
		t.Errorf("U, V not orthogonal: dot=%g", Dot(b.U(), b.V()))
	}
	if math.Abs(Dot(b.U(), b.W())) > 1e-12 {
		t.Errorf("U, W not orthogonal: dot=%g", Dot(b.U(), b.W()))
	}
	if math.Abs(Dot(b.V(), b.W())) > 1e-12 {
		t.Errorf("V, W not orthogonal: dot=%g", Dot(b.V(), b.W()))
	}
	for _, axis := range []Vec3{b.U(), b.V(), b.W()} {
		if math.Abs(axis.Len()-1) > 1e-12 {
			t.Errorf("axis %v not unit length: %g", axis, axis.Len())
		}
	}
}
