// Package telemetry provides snowfall statistics, bookmarking, and snapshots.
package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Falling int `csv:"falling"`
	Landed  int `csv:"landed"`

	// Transitions during window
	Landings int `csv:"landings"`
	Melts    int `csv:"melts"`
	Slides   int `csv:"slides"`
	Exits    int `csv:"exits"`
	Spawns   int `csv:"spawns"`

	// Surfaces at window end
	Surfaces     int `csv:"surfaces"`
	Accumulating int `csv:"accumulating"`
	Captures     int `csv:"captures"`

	// Remaining life of landed particles
	LifeMean float64 `csv:"life_mean"`
	LifeP10  float64 `csv:"life_p10"`
	LifeP50  float64 `csv:"life_p50"`
	LifeP90  float64 `csv:"life_p90"`

	// Falling particle size
	SizeMean float64 `csv:"size_mean"`
	SizeStd  float64 `csv:"size_std"`
	SizeP50  float64 `csv:"size_p50"`

	// Share of landings per melt; above 1 means snow is piling up.
	AccumulationRatio float64 `csv:"accumulation_ratio"`
}

// Distribution summarises a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Describe computes mean, standard deviation and percentiles of values.
// values is not modified. An empty sample yields the zero Distribution.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.LinInterp, sorted, nil),
		P50:  stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P90:  stat.Quantile(0.90, stat.LinInterp, sorted, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("falling", s.Falling),
		slog.Int("landed", s.Landed),
		slog.Int("landings", s.Landings),
		slog.Int("melts", s.Melts),
		slog.Int("slides", s.Slides),
		slog.Int("exits", s.Exits),
		slog.Int("spawns", s.Spawns),
		slog.Int("surfaces", s.Surfaces),
		slog.Int("accumulating", s.Accumulating),
		slog.Int("captures", s.Captures),
		slog.Float64("life_mean", s.LifeMean),
		slog.Float64("life_p50", s.LifeP50),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("accumulation_ratio", s.AccumulationRatio),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"falling", s.Falling,
		"landed", s.Landed,
		"landings", s.Landings,
		"melts", s.Melts,
		"slides", s.Slides,
		"exits", s.Exits,
		"spawns", s.Spawns,
		"surfaces", s.Surfaces,
		"accumulating", s.Accumulating,
		"life_p10", s.LifeP10,
		"life_p50", s.LifeP50,
		"life_p90", s.LifeP90,
		"size_mean", s.SizeMean,
		"size_std", s.SizeStd,
		"accumulation_ratio", s.AccumulationRatio,
	)
}
