package cluster

import "math"

// hungarian solves the rectangular minimum-cost assignment problem via the
// Kuhn-Munkres primal-dual algorithm (O(n^2*m) for n rows <= m columns).
// No assignment-problem library appears anywhere in the example pack (see
// DESIGN.md); this hand-written routine mirrors the teacher's own practice
// of hand-writing dense numeric algorithms (matrix/ops/*).
//
// Returns assignment[i] = the column index paired with row i. Requires
// len(cost) (rows) <= len(cost[0]) (cols); cost must be rectangular.
func hungarian(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])

	const inf = math.MaxFloat64 / 2

	// 1-indexed internal state, per the classical formulation.
	u := make([]float64, n+1)
	v := make([]float64, m+1)
	p := make([]int, m+1) // p[j] = row (1-indexed) assigned to column j
	way := make([]int, m+1)

	a := func(i, j int) float64 { return cost[i-1][j-1] } // 1-indexed accessor

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := 0; j <= m; j++ {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1

			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := a(i0, j) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for j := 1; j <= m; j++ {
		if p[j] != 0 {
			assignment[p[j]-1] = j - 1
		}
	}

	return assignment
}
