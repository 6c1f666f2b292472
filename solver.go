/*
Copyright © 2026 the IsoCor authors.
This file is part of IsoCor.

IsoCor is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

IsoCor is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with IsoCor.  If not, see <http://www.gnu.org/licenses/>.
*/

package isocor

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// MaxSolverIterations is the compile-time cap on the solver's outer
// iterations (spec.md §4.4).
const MaxSolverIterations = 200

// GradientTolerance is the stationarity threshold of spec.md §4.4: the
// solver stops once no zero-constrained coefficient j has a dual component
// (A^T (v - A x))_j above it.
const GradientTolerance = 1e-10

// ObjectiveTolerance is the relative-objective-change convergence
// tolerance of spec.md §4.4.
const ObjectiveTolerance = 1e-12

// SolveResult carries the solver's output coefficient vector alongside
// diagnostics, so a SolverDidNotConverge error can still be reported with
// the best-effort x, per spec.md §4.4 and §7.
type SolveResult struct {
	X         []float64
	Iters     int
	Converged bool
}

// solveNNLS fits x >= 0 minimizing ||v - A x||^2 using the Lawson-Hanson
// active-set algorithm (spec.md §9's "minimal, testable path"). At each
// iteration the passive-set least-squares subproblem is solved with
// gonum/mat's QR-based Dense.Solve, the same matrix library
// emissions/slca/bea/matrix.go uses for its economic input-output solves.
//
// ctx is checked between outer iterations, honoring spec.md §5's
// cooperative-cancellation contract; on cancellation the function returns
// Cancelled with no partial commitment.
func solveNNLS(ctx context.Context, a *mat.Dense, v []float64) (*SolveResult, error) {
	m, n := a.Dims()
	b := mat.NewVecDense(m, v)

	x := make([]float64, n)
	passive := make([]bool, n) // true if column j is in the passive (unconstrained) set

	atb := mat.NewVecDense(n, nil)
	atb.MulVec(a.T(), b)

	residual := mat.NewVecDense(m, nil)
	axVec := mat.NewVecDense(m, nil)
	w := mat.NewVecDense(n, nil)

	computeGradientDual := func() {
		axVec.MulVec(a, mat.NewVecDense(n, x))
		residual.SubVec(b, axVec)
		w.MulVec(a.T(), residual)
	}
	computeGradientDual()

	lastObjective := squaredNorm(residual)

	iters := 0
	for iters < MaxSolverIterations {
		select {
		case <-ctx.Done():
			return nil, newError(Cancelled, "solver cancelled after %d iterations", iters)
		default:
		}

		// Find the most-violated inactive (zero-constrained) index.
		best := -1
		bestW := GradientTolerance
		for j := 0; j < n; j++ {
			if passive[j] {
				continue
			}
			if w.AtVec(j) > bestW {
				bestW = w.AtVec(j)
				best = j
			}
		}
		if best == -1 {
			// Stationarity holds for every active index: done.
			return &SolveResult{X: x, Iters: iters, Converged: true}, nil
		}
		passive[best] = true

		for {
			select {
			case <-ctx.Done():
				return nil, newError(Cancelled, "solver cancelled after %d iterations", iters)
			default:
			}

			z, cols, err := solvePassiveLeastSquares(a, b, passive)
			if err != nil {
				// A singular passive-set subproblem: stop advancing this
				// column and report the best x found so far.
				return &SolveResult{X: x, Iters: iters, Converged: false}, nil
			}

			allPositive := true
			for _, zv := range z {
				if zv <= 0 {
					allPositive = false
					break
				}
			}
			if allPositive {
				for i, c := range cols {
					x[c] = z[i]
				}
				for j := 0; j < n; j++ {
					if passive[j] && x[j] == 0 {
						passive[j] = false
					}
				}
				break
			}

			alpha := 1.0
			for i, c := range cols {
				if z[i] <= 0 {
					denom := x[c] - z[i]
					if denom > 0 {
						candidate := x[c] / denom
						if candidate < alpha {
							alpha = candidate
						}
					}
				}
			}
			for i, c := range cols {
				x[c] += alpha * (z[i] - x[c])
			}
			for j := 0; j < n; j++ {
				if passive[j] && x[j] <= 1e-12 {
					x[j] = 0
					passive[j] = false
				}
			}
		}

		computeGradientDual()
		iters++

		objective := squaredNorm(residual)
		if lastObjective > 0 {
			relChange := (lastObjective - objective) / lastObjective
			if relChange >= 0 && relChange <= ObjectiveTolerance {
				return &SolveResult{X: x, Iters: iters, Converged: true}, nil
			}
		}
		lastObjective = objective
	}
	return &SolveResult{X: x, Iters: iters, Converged: false}, nil
}

// solvePassiveLeastSquares solves the unconstrained least squares problem
// restricted to the columns where passive[j] is true, returning the
// solution values and the column indices they correspond to.
func solvePassiveLeastSquares(a *mat.Dense, b *mat.VecDense, passive []bool) ([]float64, []int, error) {
	m, n := a.Dims()
	var cols []int
	for j := 0; j < n; j++ {
		if passive[j] {
			cols = append(cols, j)
		}
	}
	sub := mat.NewDense(m, len(cols), nil)
	for i, c := range cols {
		sub.SetCol(i, mat.Col(nil, c, a))
	}

	var z mat.Dense
	if err := z.Solve(sub, b); err != nil {
		return nil, nil, err
	}
	out := make([]float64, len(cols))
	for i := range cols {
		out[i] = z.At(i, 0)
	}
	return out, cols, nil
}

func squaredNorm(v *mat.VecDense) float64 {
	n := v.Len()
	sum := 0.0
	for i := 0; i < n; i++ {
		x := v.AtVec(i)
		sum += x * x
	}
	return sum
}
