package rt

import (
	"math"
	"testing"
)

// estimateSphereIntegral estimates ∫ value(ω) dω over the full sphere by
// uniform Monte Carlo sampling: E[value(ω)/uniformPDF(ω)] = ∫ value dω.
func estimateSphereIntegral(t *testing.T, value func(Vec3) float64, n int) float64 {
	t.Helper()
	const uniformPDF = 1.0 / (4.0 * Pi)
	sum := 0.0
	for i := 0; i < n; i++ {
		dir := RandomUnitVector()
		sum += value(dir) / uniformPDF
	}
	return sum / float64(n)
}

func TestUniformSpherePDFIntegratesToOne(t *testing.T) {
	p := NewUniformSpherePDF()
	got := estimateSphereIntegral(t, p.Value, 2_000_000)
	if math.Abs(got-1) > 0.01 {
		t.Errorf("uniform sphere PDF integral = %f, want ~1", got)
	}
}

func TestCosinePDFIntegratesToOne(t *testing.T) {
	p := NewCosinePDF(Vec3{X: 0, Y: 1, Z: 0})
	got := estimateSphereIntegral(t, p.Value, 2_000_000)
	if math.Abs(got-1) > 0.01 {
		t.Errorf("cosine PDF integral = %f, want ~1", got)
	}
}

func TestGGXVNDFPDFIntegratesToOne(t *testing.T) {
	normal := Vec3{X: 0, Y: 1, Z: 0}
	incoming := Vec3{X: 0.3, Y: -1, Z: 0.1}
	p := NewGGXVNDFPdf(normal, incoming, 0.3, 0.3)
	got := estimateSphereIntegral(t, p.Value, 2_000_000)
	if math.Abs(got-1) > 0.05 {
		t.Errorf("GGX-VNDF PDF integral = %f, want ~1", got)
	}
}

func TestMixturePDFIntegratesToOne(t *testing.T) {
	p0 := NewUniformSpherePDF()
	p1 := NewCosinePDF(Vec3{X: 0, Y: 1, Z: 0})
	m := NewMixturePDF(p0, p1)
	got := estimateSphereIntegral(t, m.Value, 2_000_000)
	if math.Abs(got-1) > 0.01 {
		t.Errorf("mixture PDF integral = %f, want ~1", got)
	}
}

// TestPDFSampleConsistency checks that every non-delta PDF in the family
// assigns strictly positive density to its own samples.
func TestPDFSampleConsistency(t *testing.T) {
	pdfs := map[string]PDF{
		"uniform-sphere": NewUniformSpherePDF(),
		"cosine":         NewCosinePDF(Vec3{X: 0, Y: 1, Z: 0}),
		"ggx-vndf":       NewGGXVNDFPdf(Vec3{X: 0, Y: 1, Z: 0}, Vec3{X: 0.2, Y: -1, Z: 0}, 0.4, 0.4),
	}

	for name, p := range pdfs {
		for i := 0; i < 1000; i++ {
			sample := p.Generate()
			if v := p.Value(sample); v <= 0 {
				t.Fatalf("%s: value(generate()) = %f, want > 0 (sample %v)", name, v, sample)
			}
		}
	}
}

func TestCosinePDFRejectsBelowHorizon(t *testing.T) {
	p := NewCosinePDF(Vec3{X: 0, Y: 1, Z: 0})
	below := Vec3{X: 0, Y: -1, Z: 0}
	if v := p.Value(below); v != 0 {
		t.Errorf("cosine PDF below horizon = %f, want 0", v)
	}
}

func TestHittablePDFDelegatesToQuad(t *testing.T) {
	quad := NewQuad(Point3{X: -1, Y: 2, Z: -1}, Vec3{X: 2, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 2}, NewDiffuseLightColor(Color{X: 1, Y: 1, Z: 1}))
	origin := Point3{X: 0, Y: 0, Z: 0}
	p := NewHittablePDF(quad, origin)

	dir := p.Generate()
	if dir.Len2() == 0 {
		t.Fatal("generated direction is zero vector")
	}
	if v := p.Value(dir); v <= 0 {
		t.Errorf("HittablePDF.Value(generate()) = %f, want > 0", v)
	}
	if got := quad.PDFValue(origin, dir); got != p.Value(dir) {
		t.Errorf("HittablePDF.Value diverges from quad.PDFValue: %f vs %f", p.Value(dir), got)
	}
}
