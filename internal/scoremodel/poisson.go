// Package scoremodel builds the per-period joint score distributions the
// pricing engine enumerates. Tables are immutable once built.
package scoremodel

import "math"

// maxCachedGoals bounds the precomputed log-factorial table. Poisson mass at
// goal counts beyond it is truncated to zero rather than treated as an error.
const maxCachedGoals = 64

var logFactorial = buildLogFactorials()

func buildLogFactorials() [maxCachedGoals + 1]float64 {
	var table [maxCachedGoals + 1]float64
	for n := 2; n <= maxCachedGoals; n++ {
		table[n] = table[n-1] + math.Log(float64(n))
	}
	return table
}

// Poisson returns P(X = k) for X ~ Poisson(lambda).
func Poisson(k int, lambda float64) float64 {
	if k < 0 || k > maxCachedGoals {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	logP := float64(k)*math.Log(lambda) - lambda - logFactorial[k]
	return math.Exp(logP)
}

// PoissonCDF returns P(X <= k) for X ~ Poisson(lambda).
func PoissonCDF(k int, lambda float64) float64 {
	var sum float64
	for i := 0; i <= k && i <= maxCachedGoals; i++ {
		sum += Poisson(i, lambda)
	}
	return sum
}
