// Package devig converts quoted bookmaker prices into vig-free probabilities.
package devig

import (
	"fmt"
	"math"

	"github.com/yourusername/fairline/internal/models"
)

// Fair2 strips the bookmaker overround from two-way decimal odds by dividing
// each implied probability by their sum.
func Fair2(a, b float64) (float64, float64, error) {
	probs, err := proportional([]float64{a, b})
	if err != nil {
		return 0, 0, err
	}
	return probs[0], probs[1], nil
}

// Fair3 strips the bookmaker overround from three-way decimal odds.
func Fair3(a, b, c float64) (models.ResultProbs, error) {
	probs, err := proportional([]float64{a, b, c})
	if err != nil {
		return models.ResultProbs{}, err
	}
	return models.ResultProbs{Home: probs[0], Draw: probs[1], Away: probs[2]}, nil
}

// Power2 removes the overround with the power method: each implied
// probability is raised to an exponent k chosen so the adjusted set sums to 1.
// Compared to proportional removal this shifts more margin onto longshots.
func Power2(a, b float64) (float64, float64, error) {
	probs, err := power([]float64{a, b})
	if err != nil {
		return 0, 0, err
	}
	return probs[0], probs[1], nil
}

// Power3 is the three-way power-method de-vig.
func Power3(a, b, c float64) (models.ResultProbs, error) {
	probs, err := power([]float64{a, b, c})
	if err != nil {
		return models.ResultProbs{}, err
	}
	return models.ResultProbs{Home: probs[0], Draw: probs[1], Away: probs[2]}, nil
}

func implied(prices []float64) ([]float64, error) {
	out := make([]float64, len(prices))
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 1 {
			return nil, fmt.Errorf("price %v: %w", p, models.ErrInvalidOdds)
		}
		out[i] = 1 / p
	}
	return out, nil
}

func proportional(prices []float64) ([]float64, error) {
	raw, err := implied(prices)
	if err != nil {
		return nil, err
	}
	var sum float64
	for _, p := range raw {
		sum += p
	}
	if sum <= 0 {
		return nil, fmt.Errorf("overround %v: %w", sum, models.ErrInvalidOdds)
	}
	for i := range raw {
		raw[i] /= sum
	}
	return raw, nil
}

// power solves for the exponent k with sum((1/o_i)^k) = 1 by bisection. The
// sum is strictly decreasing in k, so the bracket below always contains the
// root for any realistic overround.
func power(prices []float64) ([]float64, error) {
	raw, err := implied(prices)
	if err != nil {
		return nil, err
	}
	adjustedSum := func(k float64) float64 {
		var sum float64
		for _, p := range raw {
			sum += math.Pow(p, k)
		}
		return sum
	}

	lo, hi := 0.1, 10.0
	if adjustedSum(lo) < 1 || adjustedSum(hi) > 1 {
		return nil, fmt.Errorf("power de-vig bracket: %w", models.ErrInvalidOdds)
	}
	for i := 0; i < 80; i++ {
		mid := (lo + hi) / 2
		if adjustedSum(mid) > 1 {
			lo = mid
		} else {
			hi = mid
		}
	}
	k := (lo + hi) / 2

	out := make([]float64, len(raw))
	var sum float64
	for i, p := range raw {
		out[i] = math.Pow(p, k)
		sum += out[i]
	}
	// residual bisection error is renormalized away
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}
