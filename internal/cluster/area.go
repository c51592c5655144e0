package cluster

import (
	"math"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/transitrepair/engine/internal/geoutil"
)

// unionFind is a minimal disjoint-set structure for AreaComponents.
type unionFind struct{ parent []int }

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}

	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

// metersPerDegreeLon is a conservative meters-per-degree-of-longitude scale
// at latDeg, used to turn a meters radius into a degree radius wide enough
// that an rtree range query at that radius cannot miss a true match.
func metersPerDegreeLon(latDeg float64) float64 {
	const metersPerDegreeLat = geoutil.EarthRadiusM * math.Pi / 180
	scale := metersPerDegreeLat * math.Cos(latDeg*math.Pi/180)
	if scale < 1 {
		return 1
	}
	return scale
}

// AreaComponents groups feature indices whose pairwise distance is within
// searchRadiusM. Rather than the O(n^2) pairwise scan of a brute-force
// implementation, each point queries a tidwall/rtree range box sized to
// guarantee every true neighbor falls inside it, and only the rtree hits
// are haversine-confirmed before being unioned.
func AreaComponents(points []geoutil.Point, searchRadiusM float64) [][]int {
	n := len(points)
	uf := newUnionFind(n)

	var tree rtree.RTreeG[int]
	for i, p := range points {
		tree.Insert([2]float64{p.Lon, p.Lat}, [2]float64{p.Lon, p.Lat}, i)
	}

	for i, p := range points {
		radiusDeg := searchRadiusM / metersPerDegreeLon(p.Lat)

		tree.Search(
			[2]float64{p.Lon - radiusDeg, p.Lat - radiusDeg},
			[2]float64{p.Lon + radiusDeg, p.Lat + radiusDeg},
			func(min, max [2]float64, j int) bool {
				if j <= i {
					return true
				}
				if geoutil.Haversine(p, points[j], false) <= searchRadiusM {
					uf.union(i, j)
				}
				return true
			},
		)
	}

	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}

	out := make([][]int, 0, len(groups))
	for _, g := range groups {
		sort.Ints(g)
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })

	return out
}
