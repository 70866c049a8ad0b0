package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/snowfall/config"
	"github.com/pthm-cable/snowfall/game"
	"github.com/pthm-cable/snowfall/telemetry"
)

// Score component weights.
const (
	weightCover     = 0.5
	weightBalance   = 0.3
	weightStability = 0.2

	warmupWindows = 2 // skip the first windows while cover builds up
)

// FitnessEvaluator runs headless simulations and scores their snow cover.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []uint64
	baseConfig  *config.Config
	statsWindow float64

	// TargetCover is the desired landed share of the population.
	TargetCover float64

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []uint64, baseCfg *config.Config, targetCover float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 5.0,
		TargetCover: targetCover,
	}
}

// LastQuality returns the mean quality of the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	quality := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			quality[idx] = fe.Score(fe.runSimulation(x, s))
		}(i, seed)
	}
	wg.Wait()

	mean := stat.Mean(quality, nil)
	fe.mu.Lock()
	fe.lastQuality = mean
	fe.mu.Unlock()
	return -mean
}

// runSimulation executes one headless run and returns its stats windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed uint64) []telemetry.WindowStats {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	var windows []telemetry.WindowStats
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		Config:         &cfg,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// Score rates a run in [0, 1]. It rewards a landed share near TargetCover,
// landings balanced by melts, and a steady landed count.
func (fe *FitnessEvaluator) Score(windows []telemetry.WindowStats) float64 {
	if len(windows) <= warmupWindows {
		return 0
	}
	valid := windows[warmupWindows:]

	var coverSum, balanceSum float64
	landed := make([]float64, 0, len(valid))
	for _, w := range valid {
		total := w.Falling + w.Landed
		if total == 0 {
			continue
		}
		share := float64(w.Landed) / float64(total)
		coverSum += gaussian(share-fe.TargetCover, 0.1)

		// A zero ratio means nothing melted, which is only steady when
		// nothing landed either.
		if w.AccumulationRatio > 0 {
			logErr := math.Log(w.AccumulationRatio)
			balanceSum += math.Exp(-logErr * logErr)
		} else if w.Landings == 0 {
			balanceSum++
		}
		landed = append(landed, float64(w.Landed))
	}
	if len(landed) == 0 {
		return 0
	}
	n := float64(len(landed))

	stability := 0.0
	if len(landed) >= 2 {
		if mean, std := stat.PopMeanStdDev(landed, nil); mean > 0 {
			cv := std / mean
			stability = math.Exp(-cv * cv)
		}
	}

	q := weightCover*coverSum/n + weightBalance*balanceSum/n + weightStability*stability
	return min(max(q, 0), 1)
}

func gaussian(d, sigma float64) float64 {
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}
