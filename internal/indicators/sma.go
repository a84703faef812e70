// Package indicators provides rolling technical indicators over price
// series. All functions return a slice aligned 1:1 with the input; warm-up
// positions where the indicator is not yet defined hold NaN, never zero.
package indicators

import "math"

// SMA computes the trailing simple moving average over exactly `window`
// observations. The first window-1 positions are NaN.
func SMA(values []float64, window int) []float64 {
	if window <= 0 {
		return nil
	}
	out := make([]float64, len(values))
	var sum float64
	for i := range values {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

// ROC computes the trailing rate of change over `window` days:
// values[i]/values[i-window] - 1. The first window positions are NaN.
func ROC(values []float64, window int) []float64 {
	if window <= 0 {
		return nil
	}
	out := make([]float64, len(values))
	for i := range values {
		if i < window || values[i-window] == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = values[i]/values[i-window] - 1
	}
	return out
}

// Defined reports whether the indicator value at index i exists (is not a
// warm-up NaN).
func Defined(v float64) bool {
	return !math.IsNaN(v)
}
