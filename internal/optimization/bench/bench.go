// Package bench provides standard benchmark functions for exercising the
// optimization engine, drawn from the usual test-function catalogs for
// global optimization.
package bench

import (
	"math"
	"sort"

	"github.com/simplexopt/simplexopt/internal/optimization"
)

// Func is a benchmark objective with a box-bounded domain and a known
// global minimum.
type Func interface {
	Name() string
	Eval(x []float64) float64
	Bounds() [][2]float64
	// Optimum returns the global minimum of the function over its bounds.
	Optimum() optimization.Solution
}

var registry = map[string]Func{}

func register(fns ...Func) {
	for _, fn := range fns {
		registry[fn.Name()] = fn
	}
}

func init() {
	register(
		Sphere{NDim: 2},
		Rosenbrock{NDim: 2},
		Eggholder{},
		StyblinskiTang{NDim: 2},
	)
}

// ByName returns the registered benchmark function with the given name.
func ByName(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, optimization.NewErrorf("unknown benchmark function %q (have %v)", name, Names()).
			WithComponent("bench")
	}
	return fn, nil
}

// Names lists the registered benchmark functions in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sphere is the n-dimensional sum of squares, minimal at the origin.
type Sphere struct {
	NDim int
}

func (fn Sphere) Name() string { return "sphere" }

func (fn Sphere) Eval(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return sum
}

func (fn Sphere) Bounds() [][2]float64 {
	bounds := make([][2]float64, fn.NDim)
	for i := range bounds {
		bounds[i] = [2]float64{-5.12, 5.12}
	}
	return bounds
}

func (fn Sphere) Optimum() optimization.Solution {
	return optimization.Solution{Parameters: make([]float64, fn.NDim), Value: 0}
}

// Rosenbrock is the classic banana-valley function, minimal at (1, ..., 1).
type Rosenbrock struct {
	NDim int
}

func (fn Rosenbrock) Name() string { return "rosenbrock" }

func (fn Rosenbrock) Eval(x []float64) float64 {
	sum := 0.0
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1 - x[i]
		sum += 100*a*a + b*b
	}
	return sum
}

func (fn Rosenbrock) Bounds() [][2]float64 {
	bounds := make([][2]float64, fn.NDim)
	for i := range bounds {
		bounds[i] = [2]float64{-2.048, 2.048}
	}
	return bounds
}

func (fn Rosenbrock) Optimum() optimization.Solution {
	params := make([]float64, fn.NDim)
	for i := range params {
		params[i] = 1
	}
	return optimization.Solution{Parameters: params, Value: 0}
}

// Eggholder is a heavily multimodal 2-D function with its global minimum
// near the boundary of the domain.
type Eggholder struct{}

func (fn Eggholder) Name() string { return "eggholder" }

func (fn Eggholder) Eval(x []float64) float64 {
	a := x[1] + 47
	return -a*math.Sin(math.Sqrt(math.Abs(x[0]/2+a))) -
		x[0]*math.Sin(math.Sqrt(math.Abs(x[0]-a)))
}

func (fn Eggholder) Bounds() [][2]float64 {
	return [][2]float64{{-512, 512}, {-512, 512}}
}

func (fn Eggholder) Optimum() optimization.Solution {
	return optimization.Solution{
		Parameters: []float64{512, 404.2319},
		Value:      -959.6407,
	}
}

// StyblinskiTang is a separable multimodal function whose global minimum sits
// at roughly -39.166*n with every coordinate near -2.9035.
type StyblinskiTang struct {
	NDim int
}

func (fn StyblinskiTang) Name() string { return "styblinski-tang" }

func (fn StyblinskiTang) Eval(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += math.Pow(v, 4) - 16*v*v + 5*v
	}
	return sum / 2
}

func (fn StyblinskiTang) Bounds() [][2]float64 {
	bounds := make([][2]float64, fn.NDim)
	for i := range bounds {
		bounds[i] = [2]float64{-5, 5}
	}
	return bounds
}

func (fn StyblinskiTang) Optimum() optimization.Solution {
	params := make([]float64, fn.NDim)
	for i := range params {
		params[i] = -2.903534
	}
	return optimization.Solution{Parameters: params, Value: -39.16617 * float64(fn.NDim)}
}
