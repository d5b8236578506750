package main

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/simplexopt/simplexopt/internal/optimization"
	"github.com/simplexopt/simplexopt/internal/optimization/bench"
	"github.com/simplexopt/simplexopt/internal/optimization/simplex"
)

var (
	funcName   string
	specPath   string
	iterations int
	depth      int
	compare    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Minimize a benchmark function",
	Long: `Runs the simplex-partitioning optimizer against a built-in benchmark
function, or against a problem described by a YAML file.`,
	RunE: runOptimization,
}

func init() {
	runCmd.Flags().StringVar(&funcName, "func", "sphere", "Benchmark function to minimize")
	runCmd.Flags().StringVar(&specPath, "spec", "", "YAML problem description (overrides --func defaults)")
	runCmd.Flags().IntVar(&iterations, "iters", 200, "Total evaluations, bootstrap included")
	runCmd.Flags().IntVar(&depth, "depth", 5, "Exploration depth (0 explores, larger exploits)")
	runCmd.Flags().BoolVar(&compare, "compare", false, "Also run gonum Nelder-Mead for reference")
	rootCmd.AddCommand(runCmd)
}

// problemSpec is the YAML description accepted by --spec.
type problemSpec struct {
	Function         string       `yaml:"function"`
	Bounds           [][2]float64 `yaml:"bounds"`
	Iterations       int          `yaml:"iterations"`
	ExplorationDepth *int         `yaml:"exploration_depth"`
}

func runOptimization(cmd *cobra.Command, args []string) error {
	name := funcName
	bounds := [][2]float64(nil)
	iters := iterations

	if specPath != "" {
		data, err := os.ReadFile(specPath)
		if err != nil {
			return fmt.Errorf("reading problem spec: %w", err)
		}
		var spec problemSpec
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return fmt.Errorf("parsing problem spec: %w", err)
		}
		if spec.Function != "" {
			name = spec.Function
		}
		bounds = spec.Bounds
		if spec.Iterations > 0 {
			iters = spec.Iterations
		}
		if spec.ExplorationDepth != nil {
			depth = *spec.ExplorationDepth
		}
	}

	fn, err := bench.ByName(name)
	if err != nil {
		return err
	}
	if bounds == nil {
		bounds = fn.Bounds()
	}

	opt, err := simplex.New(bounds, true)
	if err != nil {
		return err
	}
	opt.SetExplorationDepth(depth)

	logger.Info("starting search",
		zap.String("function", fn.Name()),
		zap.Int("dimensions", len(bounds)),
		zap.Int("iterations", iters),
		zap.Int("exploration_depth", depth),
	)

	objective := func(x []float64) (float64, error) {
		value := fn.Eval(x)
		logger.Debug("evaluated", zap.Float64s("x", x), zap.Float64("value", value))
		return value, nil
	}

	best, err := optimization.Run(context.Background(), opt, objective, iters)
	if err != nil {
		return err
	}

	optimum := fn.Optimum()
	logger.Info("search finished",
		zap.Float64("best_value", best.Value),
		zap.Float64s("best_point", best.Parameters),
		zap.Float64("known_optimum", optimum.Value),
		zap.Int("queued_simplices", opt.QueueLen()),
	)

	if compare {
		refValue, refPoint, err := runNelderMead(fn, bounds)
		if err != nil {
			logger.Warn("reference run failed", zap.Error(err))
		} else {
			logger.Info("nelder-mead reference",
				zap.Float64("best_value", refValue),
				zap.Float64s("best_point", refPoint),
			)
		}
	}

	fmt.Printf("%s: best %.6f at %v (known optimum %.6f)\n",
		fn.Name(), best.Value, best.Parameters, optimum.Value)
	return nil
}

// runNelderMead minimizes the same objective with gonum's derivative-free
// Nelder-Mead method, started from the domain center and clamped to bounds,
// as a point of comparison for the partitioning search.
func runNelderMead(fn bench.Func, bounds [][2]float64) (float64, []float64, error) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			for i := range x {
				x[i] = math.Max(bounds[i][0], math.Min(x[i], bounds[i][1]))
			}
			return fn.Eval(x)
		},
	}

	start := make([]float64, len(bounds))
	for i, b := range bounds {
		start[i] = (b[0] + b[1]) / 2
	}

	result, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
	if err != nil {
		return 0, nil, err
	}
	return result.F, result.X, nil
}
