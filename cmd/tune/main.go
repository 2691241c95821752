// Command tune fits the spread damping of a ripple variant with Nelder-Mead so
// that its light diverges from shadow casting by a chosen amount on generated
// terrain.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/sense"
)

// EvalRecord is one row of tune_log.csv.
type EvalRecord struct {
	Eval       int     `csv:"eval"`
	Fitness    float64 `csv:"fitness"`
	Divergence float64 `csv:"divergence"`
	Damping    float64 `csv:"damping"`
	Tolerance  float64 `csv:"tolerance"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	algoName := flag.String("algorithm", "ripple", "Ripple variant to fit")
	target := flag.Float64("target", 0.05, "Target mean divergence from shadow casting")
	radius := flag.Float64("radius", 8, "Light radius used for probing")
	shapeName := flag.String("shape", "circle", "Light radius shape")
	seeds := flag.Int("seeds", 3, "Number of generated maps")
	origins := flag.Int("origins", 12, "Light origins sampled per map")
	maxEvals := flag.Int("max-evals", 80, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for the evaluation log (empty = none)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	algo, err := sense.ParseAlgorithm(*algoName)
	if err != nil {
		log.Fatal(err)
	}
	shape, err := geom.ParseRadius(*shapeName)
	if err != nil {
		log.Fatal(err)
	}

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator, err := NewEvaluator(cfg, algo, *radius, shape, *target, evalSeeds, *origins)
	if err != nil {
		log.Fatal(err)
	}

	start, ok := cfg.Derived.Profiles[algo]
	if !ok {
		start = sense.DefaultProfile(algo)
	}
	params := NewParamVector(start)

	var records []EvalRecord
	best := EvalRecord{Fitness: 1e9}
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			profile := params.Profile(raw)
			d, err := evaluator.Evaluate(profile)
			fitness := evaluator.Fitness(d, err)
			if err != nil {
				log.Printf("eval %d: %v", len(records)+1, err)
			}

			rec := EvalRecord{
				Eval:       len(records) + 1,
				Fitness:    fitness,
				Divergence: d,
				Damping:    profile.Damping,
				Tolerance:  profile.Tolerance,
			}
			records = append(records, rec)
			if fitness < best.Fitness {
				best = rec
			}
			fmt.Printf("Eval %d/%d: damping=%.3f tolerance=%.3f divergence=%.4f (best=%.4f) | elapsed: %s\n",
				rec.Eval, *maxEvals, rec.Damping, rec.Tolerance, d, best.Divergence,
				time.Since(startTime).Round(time.Millisecond))
			return fitness
		},
	}
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}

	fmt.Printf("Fitting %s towards divergence %.3f on %d maps x %d origins\n", algo, *target, *seeds, *origins)
	if _, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, &optimize.NelderMead{}); err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if len(records) == 0 {
		log.Fatal("no evaluations ran")
	}

	fmt.Printf("\nBest after %d evaluations: damping=%.4f tolerance=%.4f divergence=%.4f\n",
		len(records), best.Damping, best.Tolerance, best.Divergence)

	snippet, err := yaml.Marshal(map[string]any{
		"sense": map[string]any{
			"ripple": map[string]sense.RippleProfile{
				algo.String(): {Damping: best.Damping, Tolerance: best.Tolerance},
			},
		},
	})
	if err != nil {
		log.Fatalf("failed to marshal snippet: %v", err)
	}
	fmt.Printf("\n%s", snippet)

	if *outputDir != "" {
		if err := writeLog(*outputDir, records); err != nil {
			log.Fatal(err)
		}
	}
}

func writeLog(dir string, records []EvalRecord) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, "tune_log.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&records, f); err != nil {
		return fmt.Errorf("writing log: %w", err)
	}
	fmt.Printf("Evaluation log saved to: %s\n", path)
	return nil
}
