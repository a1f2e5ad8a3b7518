package mathsinterp

import "math"

// Point is one sampled (x, y) pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Domain is a sampling range. NaN marks a field as unset.
type Domain struct {
	Min, Max, Step float64
}

// Auto returns a domain whose bounds and step are all inferred.
func Auto() Domain { return Domain{Min: math.NaN(), Max: math.NaN(), Step: math.NaN()} }

// Range returns a domain over [lo, hi] with the given step. A non-positive step is
// inferred.
func Range(lo, hi, step float64) Domain { return Domain{Min: lo, Max: hi, Step: step} }

func (d Domain) hasBounds() bool {
	return isFinite(d.Min) && isFinite(d.Max) && d.Min < d.Max && isFinite(d.Max-d.Min)
}

func (d Domain) hasStep() bool { return isFinite(d.Step) && d.Step > 0 }

// SampleOptions tunes range and step inference.
type SampleOptions struct {
	// Samples is the number of intervals used when the step is inferred.
	Samples int `yaml:"samples"`
	// MaxSamples caps the number of intervals; a finer step is widened to fit.
	MaxSamples int `yaml:"max_samples"`
	// ProbeMin and ProbeMax bound the window searched for roots and extrema, and are the
	// fallback window when none are found.
	ProbeMin float64 `yaml:"probe_min"`
	ProbeMax float64 `yaml:"probe_max"`
	// ProbeSamples is the number of probe intervals.
	ProbeSamples int `yaml:"probe_samples"`
	// Margin pads the span of detected features on each side.
	Margin float64 `yaml:"margin"`
}

// DefaultSampleOptions returns the inference defaults.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{
		Samples:      200,
		MaxSamples:   10000,
		ProbeMin:     -10,
		ProbeMax:     10,
		ProbeSamples: 400,
		Margin:       5,
	}
}

func (o SampleOptions) withDefaults() SampleOptions {
	def := DefaultSampleOptions()
	if o.Samples <= 0 {
		o.Samples = def.Samples
	}
	if o.MaxSamples <= 0 {
		o.MaxSamples = def.MaxSamples
	}
	if o.ProbeSamples <= 0 {
		o.ProbeSamples = def.ProbeSamples
	}
	if !(o.ProbeMin < o.ProbeMax) || !isFinite(o.ProbeMax-o.ProbeMin) {
		o.ProbeMin, o.ProbeMax = def.ProbeMin, def.ProbeMax
	}
	if o.Margin <= 0 {
		o.Margin = def.Margin
	}
	return o
}

// Resolve fills in the unset parts of d.
//
// Bounds: finite Min < Max with a finite width are kept. Otherwise expr is probed over
// [ProbeMin, ProbeMax]; probe points where y is zero, changes sign, or is a strict local
// extremum are features, and the window is centered between the outermost features with
// half-width (right-left)/2 + Margin. With no features the probe window is used.
//
// Step: a finite positive step is kept, otherwise width/Samples. A step yielding more than
// MaxSamples intervals is widened to width/MaxSamples.
func (d Domain) Resolve(expr Expr, variable string, env Env, opts SampleOptions) Domain {
	opts = opts.withDefaults()
	out := d
	if !d.hasBounds() {
		out.Min, out.Max = inferWindow(expr, variable, env, opts)
	}
	width := out.Max - out.Min
	if !d.hasStep() {
		out.Step = width / float64(opts.Samples)
	}
	if width/out.Step > float64(opts.MaxSamples) {
		out.Step = width / float64(opts.MaxSamples)
	}
	return out
}

func inferWindow(expr Expr, variable string, env Env, opts SampleOptions) (float64, float64) {
	lo, hi := opts.ProbeMin, opts.ProbeMax
	n := opts.ProbeSamples
	step := (hi - lo) / float64(n)

	ys := make([]float64, n+1)
	ok := make([]bool, n+1)
	for i := 0; i <= n; i++ {
		ys[i], ok[i] = evalAt(expr, variable, env, lo+float64(i)*step)
	}

	left, right := math.Inf(1), math.Inf(-1)
	mark := func(i int) {
		x := lo + float64(i)*step
		left = math.Min(left, x)
		right = math.Max(right, x)
	}
	for i := 0; i <= n; i++ {
		if !ok[i] {
			continue
		}
		if ys[i] == 0 {
			mark(i)
		}
		if i == 0 || !ok[i-1] {
			continue
		}
		if ys[i-1]*ys[i] < 0 {
			mark(i - 1)
			mark(i)
		}
		if i < n && ok[i+1] {
			prev, cur, next := ys[i-1], ys[i], ys[i+1]
			if (cur > prev && cur > next) || (cur < prev && cur < next) {
				mark(i)
			}
		}
	}
	if left > right {
		return lo, hi
	}
	center := (left + right) / 2
	half := (right-left)/2 + opts.Margin
	return center - half, center + half
}

// Sample evaluates expr at evenly spaced values of variable across the resolved domain.
// Each point is computed in a transient scope over env, so env is never modified. Points
// whose evaluation fails or is not finite are skipped.
func Sample(expr Expr, variable string, d Domain, env Env, opts SampleOptions) []Point {
	r := d.Resolve(expr, variable, env, opts)
	count := math.Floor((r.Max-r.Min)/r.Step + 1e-9)
	if !(count >= 0) {
		return []Point{}
	}
	n := int(count)
	points := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		// Accumulated rounding must not step past Max.
		x := math.Min(r.Min+float64(i)*r.Step, r.Max)
		if y, ok := evalAt(expr, variable, env, x); ok {
			points = append(points, Point{X: x, Y: y})
		}
	}
	return points
}

func evalAt(expr Expr, variable string, env Env, x float64) (float64, bool) {
	y, err := Eval(expr, With(env, variable, x))
	if err != nil || !isFinite(y) {
		return 0, false
	}
	return y, true
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// ============================================================
// Tangent lines
// ============================================================

// Tangent is the line y = Slope*x + Intercept touching a curve at (X0, Y0).
type Tangent struct {
	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At returns the line's value at x.
func (t Tangent) At(x float64) float64 { return t.Slope*x + t.Intercept }

// Line returns the tangent as an expression in variable, suitable for Sample.
func (t Tangent) Line(variable string) Expr {
	return Simplify(AddOf(MulOf(N(t.Slope), S(variable)), N(t.Intercept)))
}

// TangentLine returns the tangent to expr at variable = x0.
func TangentLine(expr Expr, variable string, x0 float64, env Env) (Tangent, error) {
	scope := With(env, variable, x0)
	y0, err := Eval(expr, scope)
	if err != nil {
		return Tangent{}, err
	}
	d, err := Derive(expr, variable)
	if err != nil {
		return Tangent{}, err
	}
	slope, err := Eval(d, scope)
	if err != nil {
		return Tangent{}, err
	}
	intercept := y0 - slope*x0
	if !isFinite(intercept) {
		return Tangent{}, evalErr(ErrNonFinite, variable)
	}
	return Tangent{X0: x0, Y0: y0, Slope: slope, Intercept: intercept}, nil
}
