package services

import (
	"math"
	"sort"
	"time"

	"github.com/ochairo/packwright/internal/domain/entities"
)

// ComputeStats aggregates per-round wall-clock durations into seconds-based statistics.
// Quartiles follow the pytest-benchmark definitions so reports stay comparable.
func ComputeStats(durations []time.Duration) entities.BenchmarkStats {
	rounds := len(durations)
	stats := entities.BenchmarkStats{Rounds: rounds, Data: make([]float64, rounds)}
	if rounds == 0 {
		return stats
	}

	for i, d := range durations {
		stats.Data[i] = d.Seconds()
		stats.Total += stats.Data[i]
	}

	sorted := append([]float64(nil), stats.Data...)
	sort.Float64s(sorted)

	stats.Min = sorted[0]
	stats.Max = sorted[rounds-1]
	stats.Mean = stats.Total / float64(rounds)
	stats.Median = median(sorted)
	stats.Q1 = lowerQuartile(sorted)
	stats.Q3 = upperQuartile(sorted)
	stats.IQR = stats.Q3 - stats.Q1

	if rounds > 1 {
		var sum float64
		for _, v := range sorted {
			sum += (v - stats.Mean) * (v - stats.Mean)
		}
		stats.StdDev = math.Sqrt(sum / float64(rounds-1))
	}
	if stats.Mean > 0 {
		stats.Ops = 1 / stats.Mean
	}

	return stats
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func lowerQuartile(data []float64) float64 {
	rounds := len(data)
	switch {
	case rounds == 1:
		return data[0]
	case rounds%2 == 1:
		n, q := rounds/4, rounds%4
		if q == 1 {
			return 0.25*data[n-1] + 0.75*data[n]
		}
		return 0.75*data[n] + 0.25*data[n+1]
	default:
		return median(data[:rounds/2])
	}
}

func upperQuartile(data []float64) float64 {
	rounds := len(data)
	switch {
	case rounds == 1:
		return data[0]
	case rounds%2 == 1:
		n, q := rounds/4, rounds%4
		if q == 1 {
			return 0.75*data[3*n] + 0.25*data[3*n+1]
		}
		return 0.25*data[3*n+1] + 0.75*data[3*n+2]
	default:
		return median(data[rounds/2:])
	}
}
