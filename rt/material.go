package rt

import "math"

// ScatterRecord is populated by a material's Scatter call. For materials
// whose scattering is a delta distribution (perfect mirror, refraction),
// SkipPDF is true, PDF is nil, and SkipPDFRay carries the pre-constructed
// continuation ray directly — the integrator must not consult PDF or run
// Russian roulette on that path.
type ScatterRecord struct {
	Attenuation Color
	PDF         PDF
	SkipPDF     bool
	SkipPDFRay  Ray
}

// Material is the capability bundle every surface/volume shader implements.
type Material interface {
	Emitted(rIn Ray, rec *HitRecord, u, v float64, p Point3) Color
	Scatter(rIn Ray, rec *HitRecord) (ScatterRecord, bool)
	ScatteringPDF(rIn Ray, rec *HitRecord, scattered Ray) float64
	EvalBRDF(rIn Ray, rec *HitRecord, scattered Ray) Color
	UseLightSampling() bool
}

// =============================================================================
// LAMBERTIAN (DIFFUSE)
// =============================================================================

type Lambertian struct {
	tex Texture
}

func NewLambertian(albedo Color) *Lambertian {
	return &Lambertian{tex: NewSolidColor(albedo)}
}

func NewLambertianTexture(tex Texture) *Lambertian {
	return &Lambertian{tex: tex}
}

func (l *Lambertian) Scatter(rIn Ray, rec *HitRecord) (ScatterRecord, bool) {
	return ScatterRecord{
		Attenuation: l.tex.Value(rec.U, rec.V, rec.P),
		PDF:         NewCosinePDF(rec.Normal),
	}, true
}

func (l *Lambertian) ScatteringPDF(rIn Ray, rec *HitRecord, scattered Ray) float64 {
	cosine := Dot(rec.Normal, scattered.Direction().Unit())
	return math.Max(0, cosine/Pi)
}

func (l *Lambertian) EvalBRDF(rIn Ray, rec *HitRecord, scattered Ray) Color {
	return l.tex.Value(rec.U, rec.V, rec.P).Scale(l.ScatteringPDF(rIn, rec, scattered))
}

func (l *Lambertian) UseLightSampling() bool { return true }

func (l *Lambertian) Emitted(rIn Ray, rec *HitRecord, u, v float64, p Point3) Color {
	return Color{}
}

// =============================================================================
// METAL (REFLECTIVE)
// =============================================================================

type Metal struct {
	Albedo Color
	Fuzz   float64
}

func NewMetal(albedo Color, fuzz float64) *Metal {
	if fuzz > 1 {
		fuzz = 1
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

func (m *Metal) Scatter(rIn Ray, rec *HitRecord) (ScatterRecord, bool) {
	reflected := Reflect(rIn.Direction().Unit(), rec.Normal).Add(RandomUnitVector().Scale(m.Fuzz))
	ray := NewRay(rec.P, reflected, rIn.Time())
	ok := Dot(ray.Direction(), rec.Normal) > 0
	return ScatterRecord{
		Attenuation: m.Albedo,
		SkipPDF:     true,
		SkipPDFRay:  ray,
	}, ok
}

func (m *Metal) ScatteringPDF(rIn Ray, rec *HitRecord, scattered Ray) float64 { return 0 }

func (m *Metal) EvalBRDF(rIn Ray, rec *HitRecord, scattered Ray) Color { return Color{} }

func (m *Metal) UseLightSampling() bool { return false }

func (m *Metal) Emitted(rIn Ray, rec *HitRecord, u, v float64, p Point3) Color {
	return Color{}
}

// =============================================================================
// DIELECTRIC (GLASS/REFRACTIVE)
// =============================================================================

type Dielectric struct {
	RefractionIndex float64
}

func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

func (d *Dielectric) Scatter(rIn Ray, rec *HitRecord) (ScatterRecord, bool) {
	var ri float64
	if rec.FrontFace {
		ri = 1.0 / d.RefractionIndex
	} else {
		ri = d.RefractionIndex
	}

	unitDirection := rIn.Direction().Unit()
	cosTheta := math.Min(Dot(unitDirection.Neg(), rec.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	cannotRefract := ri*sinTheta > 1.0

	var direction Vec3
	if cannotRefract || reflectance(cosTheta, ri) > RandomDouble() {
		direction = Reflect(unitDirection, rec.Normal)
	} else {
		direction = Refract(unitDirection, rec.Normal, ri)
	}

	return ScatterRecord{
		Attenuation: Color{X: 1, Y: 1, Z: 1},
		SkipPDF:     true,
		SkipPDFRay:  NewRay(rec.P, direction, rIn.Time()),
	}, true
}

func (d *Dielectric) ScatteringPDF(rIn Ray, rec *HitRecord, scattered Ray) float64 { return 0 }

func (d *Dielectric) EvalBRDF(rIn Ray, rec *HitRecord, scattered Ray) Color { return Color{} }

func (d *Dielectric) UseLightSampling() bool { return false }

func (d *Dielectric) Emitted(rIn Ray, rec *HitRecord, u, v float64, p Point3) Color {
	return Color{}
}

func reflectance(cosine, refractionIndex float64) float64 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// =============================================================================
// DIFFUSE LIGHT (EMISSIVE)
// =============================================================================

type DiffuseLight struct {
	tex Texture
}

func NewDiffuseLight(tex Texture) *DiffuseLight {
	return &DiffuseLight{tex: tex}
}

func NewDiffuseLightColor(emit Color) *DiffuseLight {
	return &DiffuseLight{tex: NewSolidColor(emit)}
}

func (dl *DiffuseLight) Scatter(rIn Ray, rec *HitRecord) (ScatterRecord, bool) {
	return ScatterRecord{}, false
}

func (dl *DiffuseLight) ScatteringPDF(rIn Ray, rec *HitRecord, scattered Ray) float64 { return 0 }

func (dl *DiffuseLight) EvalBRDF(rIn Ray, rec *HitRecord, scattered Ray) Color { return Color{} }

func (dl *DiffuseLight) UseLightSampling() bool { return false }

func (dl *DiffuseLight) Emitted(rIn Ray, rec *HitRecord, u, v float64, p Point3) Color {
	if !rec.FrontFace {
		return Color{}
	}
	return dl.tex.Value(u, v, p)
}

// =============================================================================
// ISOTROPIC (FOR VOLUMES)
// =============================================================================

// Isotropic scatters uniformly over the sphere, the phase function used by
// ConstantMedium.
type Isotropic struct {
	tex Texture
}

func NewIsotropic(tex Texture) *Isotropic {
	return &Isotropic{tex: tex}
}

func NewIsotropicFromColor(albedo Color) *Isotropic {
	return &Isotropic{tex: NewSolidColor(albedo)}
}

func (i *Isotropic) Scatter(rIn Ray, rec *HitRecord) (ScatterRecord, bool) {
	return ScatterRecord{
		Attenuation: i.tex.Value(rec.U, rec.V, rec.P),
		PDF:         NewUniformSpherePDF(),
	}, true
}

func (i *Isotropic) ScatteringPDF(rIn Ray, rec *HitRecord, scattered Ray) float64 {
	return 1.0 / (4.0 * Pi)
}

func (i *Isotropic) EvalBRDF(rIn Ray, rec *HitRecord, scattered Ray) Color {
	return i.tex.Value(rec.U, rec.V, rec.P).Scale(i.ScatteringPDF(rIn, rec, scattered))
}

func (i *Isotropic) UseLightSampling() bool { return false }

func (i *Isotropic) Emitted(rIn Ray, rec *HitRecord, u, v float64, p Point3) Color {
	return Color{}
}

// =============================================================================
// IRIDESCENT (THIN-FILM WRAPPER)
// =============================================================================

// Iridescent wraps a base material and blends its attenuation/BRDF toward a
// view-angle-dependent thin-film tint, per a Schlick-style phase-shift model.
type Iridescent struct {
	base     Material
	strength float64
}

func NewIridescent(base Material, strength float64) *Iridescent {
	return &Iridescent{base: base, strength: strength}
}

var iridescentPhaseCoeffs = [3]float64{1.0, 1.3, 1.7}

func iridescentTint(rIn Ray, normal Vec3) Color {
	cosTheta := Dot(rIn.Direction().Unit().Neg(), normal)
	x := 1 - cosTheta
	phase := 6 * x
	return Color{
		X: 0.5 * (1 + math.Cos(iridescentPhaseCoeffs[0]*phase)),
		Y: 0.5 * (1 + math.Cos(iridescentPhaseCoeffs[1]*phase)),
		Z: 0.5 * (1 + math.Cos(iridescentPhaseCoeffs[2]*phase)),
	}
}

func (ir *Iridescent) Scatter(rIn Ray, rec *HitRecord) (ScatterRecord, bool) {
	srec, ok := ir.base.Scatter(rIn, rec)
	if !ok {
		return srec, false
	}
	tint := iridescentTint(rIn, rec.Normal)
	s := ir.strength
	srec.Attenuation = srec.Attenuation.Scale(1 - s).Add(tint.Scale(s))
	return srec, true
}

func (ir *Iridescent) ScatteringPDF(rIn Ray, rec *HitRecord, scattered Ray) float64 {
	return ir.base.ScatteringPDF(rIn, rec, scattered)
}

func (ir *Iridescent) EvalBRDF(rIn Ray, rec *HitRecord, scattered Ray) Color {
	base := ir.base.EvalBRDF(rIn, rec, scattered)
	tint := iridescentTint(rIn, rec.Normal)
	s := ir.strength
	return base.Scale(1 - s).Add(tint.Scale(s))
}

func (ir *Iridescent) UseLightSampling() bool { return ir.base.UseLightSampling() }

func (ir *Iridescent) Emitted(rIn Ray, rec *HitRecord, u, v float64, p Point3) Color {
	return ir.base.Emitted(rIn, rec, u, v, p)
}

// =============================================================================
// GLOSSY (GGX MICROFACET, COOK-TORRANCE)
// =============================================================================

// Glossy is a GGX microfacet surface with Cook-Torrance evaluation and
// Heitz-2018 visible-normal sampling. Roughness is perceptual; the GGX
// distribution's alpha is roughness².
type Glossy struct {
	Albedo    Color
	Roughness float64
	Metallic  float64
}

func NewGlossy(albedo Color, roughness, metallic float64) *Glossy {
	return &Glossy{Albedo: albedo, Roughness: roughness, Metallic: metallic}
}

func (g *Glossy) alpha() float64 {
	return g.Roughness * g.Roughness
}

func (g *Glossy) Scatter(rIn Ray, rec *HitRecord) (ScatterRecord, bool) {
	a := g.alpha()
	return ScatterRecord{
		Attenuation: g.Albedo,
		PDF:         NewGGXVNDFPdf(rec.Normal, rIn.Direction(), a, a),
	}, true
}

func (g *Glossy) ScatteringPDF(rIn Ray, rec *HitRecord, scattered Ray) float64 {
	a := g.alpha()
	return NewGGXVNDFPdf(rec.Normal, rIn.Direction(), a, a).Value(scattered.Direction())
}

func (g *Glossy) EvalBRDF(rIn Ray, rec *HitRecord, scattered Ray) Color {
	const eps = 1e-6
	a := g.alpha()

	uvw := NewONB(rec.Normal)
	wi := uvw.Local(rIn.Direction().Neg().Unit())
	wo := uvw.Local(scattered.Direction().Unit())

	if wi.Z <= 0 || wo.Z <= 0 {
		return Color{}
	}

	h := wi.Add(wo)
	if h.Len2() < 1e-16 {
		return Color{}
	}
	h = h.Unit()
	if h.Z <= 0 {
		return Color{}
	}

	wih := Dot(wi, h)
	if wih <= 0 {
		return Color{}
	}

	f0 := Color{X: 0.04, Y: 0.04, Z: 0.04}.Scale(1 - g.Metallic).Add(g.Albedo.Scale(g.Metallic))
	fresnel := f0.Add(Color{X: 1, Y: 1, Z: 1}.Sub(f0).Scale(math.Pow(1-wih, 5)))

	d := ggxD(h, a, a)
	shadowMask := ggxG1(wi, a, a) * ggxG1(wo, a, a)
	denom := 4 * math.Max(wi.Z, eps) * math.Max(wo.Z, eps)

	result := fresnel.Scale(d * shadowMask / denom)

	if g.Metallic < 1 {
		kd := Color{X: 1, Y: 1, Z: 1}.Sub(fresnel).Scale(1 - g.Metallic)
		diffuse := kd.Mult(g.Albedo).Scale(1 / Pi)
		result = result.Add(diffuse)
	}

	return result
}

func (g *Glossy) UseLightSampling() bool { return false }

func (g *Glossy) Emitted(rIn Ray, rec *HitRecord, u, v float64, p Point3) Color {
	return Color{}
}
