package cluster

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/transitrepair/engine/internal/domain"
)

// NameGroup is a set of stop features sharing a normalized group name.
type NameGroup struct {
	Key      string
	Features []domain.StopFeature
}

// GroupByName buckets area-component members by NormalizeGroupName(name),
// dropping the unnamed bucket ("") when at least one named bucket exists.
func GroupByName(features []domain.StopFeature, groupNameOf func(domain.StopFeature) string) []*NameGroup {
	byKey := make(map[string]*NameGroup)
	var order []string
	for _, f := range features {
		key := groupNameOf(f)
		g, ok := byKey[key]
		if !ok {
			g = &NameGroup{Key: key}
			byKey[key] = g
			order = append(order, key)
		}
		g.Features = append(g.Features, f)
	}

	if len(byKey) > 1 {
		delete(byKey, "")
	}

	out := make([]*NameGroup, 0, len(byKey))
	for _, key := range order {
		if g, ok := byKey[key]; ok {
			out = append(out, g)
		}
	}

	return out
}

func ptKindsOf(g *NameGroup) map[domain.PublicTransportKind]struct{} {
	kinds := make(map[domain.PublicTransportKind]struct{})
	for _, f := range g.Features {
		kinds[f.PTKind] = struct{}{}
	}

	return kinds
}

// tokenSetRatio approximates rapidfuzz's token_ratio using normalized
// Levenshtein similarity over sorted, deduplicated tokens — the
// comparison is symmetric and insensitive to token order, matching the
// "token-set" semantics spec.md §4.C requires. Returns 0..100.
func tokenSetRatio(a, b string) float64 {
	sortedTokens := func(s string) string {
		toks := strings.Fields(s)
		sort.Strings(toks)

		return strings.Join(toks, " ")
	}

	sa, sb := sortedTokens(a), sortedTokens(b)
	if sa == "" && sb == "" {
		return 100
	}

	return levenshtein.Similarity(sa, sb, levenshtein.NewParams()) * 100
}

// ExpandGroups merges short-name groups into long-name groups when their
// normalized keys fuzzy-match (token-set similarity >= 89) and their
// number sets agree (or the short side has none), provided the two
// groups do not already share a public-transport kind. Mutates and
// returns a pruned slice; groups whose key was absorbed are removed.
func ExpandGroups(groups []*NameGroup) []*NameGroup {
	if len(groups) <= 1 {
		return groups
	}

	byKey := make(map[string]*NameGroup, len(groups))
	for _, g := range groups {
		byKey[g.Key] = g
	}

	type candidate struct {
		key   string
		score float64
	}

	expandOrder := make([]string, 0, len(groups))
	scoreSum := make(map[string]float64, len(groups))
	for _, g := range groups {
		var sum float64
		for _, other := range groups {
			if other.Key == g.Key {
				continue
			}
			sum += tokenSetRatio(g.Key, other.Key)
		}
		scoreSum[g.Key] = sum
		expandOrder = append(expandOrder, g.Key)
	}
	// Process expand candidates by (total affinity desc, key length desc)
	// — mirrors the source's sort before iterating expand_data.
	sort.Slice(expandOrder, func(i, j int) bool {
		si, sj := scoreSum[expandOrder[i]], scoreSum[expandOrder[j]]
		if si != sj {
			return si > sj
		}

		return len(expandOrder[i]) > len(expandOrder[j])
	})

	absorbed := make(map[string]bool)
	for _, expandKey := range expandOrder {
		expandGroup, ok := byKey[expandKey]
		if !ok || absorbed[expandKey] {
			continue
		}
		expandNums := ExtractNumbers(expandKey)
		expandKinds := ptKindsOf(expandGroup)

		var candidates []candidate
		for _, other := range groups {
			if other.Key == expandKey || absorbed[other.Key] {
				continue
			}
			score := tokenSetRatio(expandKey, other.Key)
			if score >= 89 {
				candidates = append(candidates, candidate{key: other.Key, score: score})
			}
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

		expandedInto := false
		for _, c := range candidates {
			targetGroup, ok := byKey[c.key]
			if !ok || absorbed[c.key] {
				continue
			}
			targetNums := ExtractNumbers(c.key)
			if len(expandNums) > 0 && !numbersEqual(expandNums, targetNums) {
				continue
			}

			shared := false
			for k := range expandKinds {
				if _, ok := ptKindsOf(targetGroup)[k]; ok {
					shared = true
					break
				}
			}
			if shared {
				continue
			}

			targetGroup.Features = append(targetGroup.Features, expandGroup.Features...)
			expandedInto = true
		}
		if expandedInto {
			absorbed[expandKey] = true
		}
	}

	out := make([]*NameGroup, 0, len(groups))
	for _, g := range groups {
		if !absorbed[g.Key] {
			out = append(out, g)
		}
	}

	return out
}
