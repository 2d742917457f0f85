package rt

import "math"

// PDF is an abstract distribution over directions, with density taken with
// respect to solid angle in world coordinates.
type PDF interface {
	Value(direction Vec3) float64
	Generate() Vec3
}

// UniformSpherePDF samples uniformly over the full sphere of directions.
type UniformSpherePDF struct{}

func NewUniformSpherePDF() UniformSpherePDF { return UniformSpherePDF{} }

func (UniformSpherePDF) Value(direction Vec3) float64 { return 1.0 / (4.0 * Pi) }
func (UniformSpherePDF) Generate() Vec3                { return RandomUnitVector() }

// CosinePDF samples a cosine-weighted hemisphere around a surface normal.
type CosinePDF struct {
	uvw ONB
}

func NewCosinePDF(w Vec3) *CosinePDF {
	return &CosinePDF{uvw: NewONB(w)}
}

func (p *CosinePDF) Value(direction Vec3) float64 {
	cosineTheta := Dot(direction.Unit(), p.uvw.W())
	return math.Max(0, cosineTheta/Pi)
}

func (p *CosinePDF) Generate() Vec3 {
	return p.uvw.World(RandomCosineDirection())
}

// HittablePDF delegates to a Hittable's emitter-sampling queries, letting an
// arbitrary light shape serve as an importance-sampling distribution.
type HittablePDF struct {
	objects Hittable
	origin  Point3
}

func NewHittablePDF(objects Hittable, origin Point3) *HittablePDF {
	return &HittablePDF{objects: objects, origin: origin}
}

func (p *HittablePDF) Value(direction Vec3) float64 {
	return p.objects.PDFValue(p.origin, direction)
}

func (p *HittablePDF) Generate() Vec3 {
	return p.objects.Random(p.origin)
}

// MixturePDF combines two distributions with equal 50/50 weight, the
// standard way to blend BSDF and light-emitter sampling.
type MixturePDF struct {
	p0, p1 PDF
}

func NewMixturePDF(p0, p1 PDF) *MixturePDF {
	return &MixturePDF{p0: p0, p1: p1}
}

func (p *MixturePDF) Value(direction Vec3) float64 {
	return 0.5*p.p0.Value(direction) + 0.5*p.p1.Value(direction)
}

func (p *MixturePDF) Generate() Vec3 {
	if RandomDouble() < 0.5 {
		return p.p0.Generate()
	}
	return p.p1.Generate()
}

// GGXVNDFPdf implements Heitz 2018 visible-normal sampling for an
// anisotropic GGX microfacet distribution.
type GGXVNDFPdf struct {
	uvw      ONB
	wiLocal  Vec3
	alphaX   float64
	alphaY   float64
}

// NewGGXVNDFPdf builds the sampler state: the tangent frame around the
// surface normal, the incoming direction transformed into that local frame,
// and the anisotropic roughness pair.
func NewGGXVNDFPdf(normal, incoming Vec3, alphaX, alphaY float64) *GGXVNDFPdf {
	uvw := NewONB(normal)
	return &GGXVNDFPdf{
		uvw:     uvw,
		wiLocal: uvw.Local(incoming.Neg().Unit()),
		alphaX:  math.Max(alphaX, 1e-4),
		alphaY:  math.Max(alphaY, 1e-4),
	}
}

func ggxD(h Vec3, alphaX, alphaY float64) float64 {
	hx := h.X / alphaX
	hy := h.Y / alphaY
	denom := hx*hx + hy*hy + h.Z*h.Z
	return 1.0 / (Pi * alphaX * alphaY * denom * denom)
}

func ggxLambda(v Vec3, alphaX, alphaY float64) float64 {
	if v.Z <= 0 {
		return math.Inf(1)
	}
	vx2 := alphaX * alphaX * v.X * v.X
	vy2 := alphaY * alphaY * v.Y * v.Y
	return (-1 + math.Sqrt(1+(vx2+vy2)/(v.Z*v.Z))) / 2
}

func ggxG1(v Vec3, alphaX, alphaY float64) float64 {
	if v.Z <= 0 {
		return 0
	}
	return 1.0 / (1.0 + ggxLambda(v, alphaX, alphaY))
}

// sampleGGXVNDF draws a visible half-vector in local space, following
// Heitz's "Sampling the GGX Distribution of Visible Normals" (2018).
func sampleGGXVNDF(wiLocal Vec3, alphaX, alphaY float64) Vec3 {
	vh := Vec3{X: alphaX * wiLocal.X, Y: alphaY * wiLocal.Y, Z: wiLocal.Z}.Unit()

	lenSq := vh.X*vh.X + vh.Y*vh.Y
	var t1 Vec3
	if lenSq > 0 {
		t1 = Vec3{X: -vh.Y, Y: vh.X, Z: 0}.Scale(1.0 / math.Sqrt(lenSq))
	} else {
		t1 = Vec3{X: 1, Y: 0, Z: 0}
	}
	t2 := Cross(vh, t1)

	r1 := RandomDouble()
	r2 := RandomDouble()
	r := math.Sqrt(r1)
	phi := 2 * Pi * r2
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1 + vh.Z)
	p2 = (1-s)*math.Sqrt(1-p1*p1) + s*p2

	nh := t1.Scale(p1).Add(t2.Scale(p2)).Add(vh.Scale(math.Sqrt(math.Max(0, 1-p1*p1-p2*p2))))

	hLocal := Vec3{
		X: alphaX * nh.X,
		Y: alphaY * nh.Y,
		Z: math.Max(1e-6, nh.Z),
	}.Unit()
	return hLocal
}

func (p *GGXVNDFPdf) Value(direction Vec3) float64 {
	woLocal := p.uvw.Local(direction.Unit())
	hLocal := p.wiLocal.Add(woLocal)
	if hLocal.Len2() < 1e-16 {
		return 0
	}
	hLocal = hLocal.Unit()

	woh := Dot(p.wiLocal, hLocal)
	if woh <= 0 {
		return 0
	}

	d := ggxD(hLocal, p.alphaX, p.alphaY)
	g1 := ggxG1(p.wiLocal, p.alphaX, p.alphaY)
	pdf := d * g1 / (4 * woh * woh)
	if pdf < 0 {
		return 0
	}
	return pdf
}

func (p *GGXVNDFPdf) Generate() Vec3 {
	hLocal := sampleGGXVNDF(p.wiLocal, p.alphaX, p.alphaY)
	woLocal := Reflect(p.wiLocal.Neg(), hLocal)
	return p.uvw.World(woLocal)
}
