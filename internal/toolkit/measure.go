// AngelaMos | 2026
// measure.go

package toolkit

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
)

// metres per unit
var distanceUnits = map[string]float64{
	"m":   1,
	"km":  1000,
	"mi":  1609.344,
	"nmi": 1852,
	"ft":  0.3048,
}

// metres per second per unit
var speedUnits = map[string]float64{
	"m/s":  1,
	"km/h": 1000.0 / 3600,
	"mph":  1609.344 / 3600,
	"kn":   1852.0 / 3600,
}

type ETARequest struct {
	Distance     float64    `json:"distance"      validate:"gt=0"`
	DistanceUnit string     `json:"distance_unit" validate:"omitempty,oneof=m km mi nmi ft"`
	Speed        float64    `json:"speed"         validate:"gt=0"`
	SpeedUnit    string     `json:"speed_unit"    validate:"omitempty,oneof=m/s km/h mph kn"`
	Start        *time.Time `json:"start"`
}

type ETAResult struct {
	DurationSeconds float64   `json:"duration_seconds"`
	Duration        string    `json:"duration"`
	Start           time.Time `json:"start"`
	ETA             time.Time `json:"eta"`
	Relative        string    `json:"relative"`
}

func ETACalculator() Widget {
	return etaCalculator(time.Now)
}

func etaCalculator(now func() time.Time) Widget {
	return Typed(func(_ context.Context, req ETARequest) (any, error) {
		distUnit := cmp.Or(req.DistanceUnit, "km")
		speedUnit := cmp.Or(req.SpeedUnit, "km/h")

		seconds := req.Distance * distanceUnits[distUnit] / (req.Speed * speedUnits[speedUnit])
		if math.IsInf(seconds, 0) || seconds > float64(math.MaxInt64/int64(time.Second)) {
			return nil, badInput("travel time is too large")
		}

		start := now()
		if req.Start != nil {
			start = *req.Start
		}
		d := time.Duration(seconds * float64(time.Second))
		eta := start.Add(d)

		return ETAResult{
			DurationSeconds: round(seconds, 3),
			Duration:        d.Round(time.Second).String(),
			Start:           start,
			ETA:             eta,
			Relative:        humanize.RelTime(start, eta, "ago", "from start"),
		}, nil
	})
}

type ChronometerRequest struct {
	LapsMillis []int64 `json:"laps_ms" validate:"required,min=1,max=1000,dive,gte=0"`
}

type Lap struct {
	Label      string `json:"label"`
	LapMillis  int64  `json:"lap_ms"`
	Lap        string `json:"lap"`
	SplitMilli int64  `json:"split_ms"`
	Split      string `json:"split"`
}

type ChronometerResult struct {
	Laps    []Lap  `json:"laps"`
	Total   string `json:"total"`
	Fastest int    `json:"fastest_lap"`
	Slowest int    `json:"slowest_lap"`
	Average string `json:"average"`
}

func Chronometer() Widget {
	return Typed(func(_ context.Context, req ChronometerRequest) (any, error) {
		res := ChronometerResult{Laps: make([]Lap, 0, len(req.LapsMillis))}

		var split int64
		fastest, slowest := 0, 0
		for i, ms := range req.LapsMillis {
			split += ms
			res.Laps = append(res.Laps, Lap{
				Label:      humanize.Ordinal(i+1) + " lap",
				LapMillis:  ms,
				Lap:        FormatStopwatch(ms),
				SplitMilli: split,
				Split:      FormatStopwatch(split),
			})
			if ms < req.LapsMillis[fastest] {
				fastest = i
			}
			if ms > req.LapsMillis[slowest] {
				slowest = i
			}
		}

		res.Total = FormatStopwatch(split)
		res.Fastest = fastest + 1
		res.Slowest = slowest + 1
		res.Average = FormatStopwatch(split / int64(len(req.LapsMillis)))
		return res, nil
	})
}

// FormatStopwatch renders milliseconds as HH:MM:SS.mmm.
func FormatStopwatch(ms int64) string {
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}

type BenchmarkSuite struct {
	Name   string    `json:"name"   validate:"required,max=128"`
	Values []float64 `json:"values" validate:"required,min=1,max=10000"`
}

type BenchmarkRequest struct {
	Unit   string           `json:"unit"   validate:"max=16"`
	Suites []BenchmarkSuite `json:"suites" validate:"required,min=1,max=50,dive"`
}

type SuiteStats struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Samples    int     `json:"samples"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Summary    string  `json:"summary"`
	Comparison string  `json:"comparison"`
}

func BenchmarkBuilder() Widget {
	return Typed(func(_ context.Context, req BenchmarkRequest) (any, error) {
		stats := make([]SuiteStats, 0, len(req.Suites))
		for _, suite := range req.Suites {
			stats = append(stats, Summarize(suite.Name, suite.Values))
		}

		slices.SortStableFunc(stats, func(a, b SuiteStats) int {
			return cmp.Compare(a.Mean, b.Mean)
		})

		best := stats[0].Mean
		for i := range stats {
			s := &stats[i]
			s.Rank = i + 1
			s.Summary = fmt.Sprintf(
				"%s %s ± %s",
				humanize.FormatFloat("#,###.###", s.Mean), req.Unit,
				humanize.FormatFloat("#,###.###", s.StdDev),
			)
			switch {
			case i == 0:
				s.Comparison = "fastest"
			case best == 0:
				s.Comparison = "slower"
			default:
				s.Comparison = fmt.Sprintf("%.2fx slower", s.Mean/best)
			}
		}
		return stats, nil
	})
}

// Summarize computes population statistics over values, which must be
// non-empty.
func Summarize(name string, values []float64) SuiteStats {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	n := float64(len(sorted))
	mean := sum / n

	var sq float64
	for _, v := range sorted {
		sq += (v - mean) * (v - mean)
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return SuiteStats{
		Name:    name,
		Samples: len(sorted),
		Mean:    round(mean, 6),
		Median:  round(median, 6),
		StdDev:  round(math.Sqrt(sq/n), 6),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
	}
}
