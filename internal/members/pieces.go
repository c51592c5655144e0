package members

import "github.com/transitrepair/engine/internal/domain"

// SimplifyPieceIDs collapses a run of consecutive split pieces
// (K=1..N, same Native, encountered in order) back into a single whole
// PieceID — the route happens to traverse every fragment of that native way
// in order, so there's no need to keep it split in the final relation. A
// run that doesn't fully and consecutively cover 1..N, or that is
// interrupted by another piece's id, is left split (returned unchanged, one
// entry per piece) so the caller can still resolve each fragment to its own
// real way id.
func SimplifyPieceIDs(pieces []domain.PieceID) []domain.PieceID {
	blacklist := make(map[domain.NativeID]struct{})

	runComplete := func(i int) bool {
		p := pieces[i]
		if p.K != 1 && p.K != p.N {
			return false
		}
		lastI := i + p.N - 1
		if lastI >= len(pieces) {
			return false
		}
		for j := i + 1; j <= lastI; j++ {
			if pieces[j].Native != p.Native {
				return false
			}
		}
		return true
	}

	// pass 1: blacklist any native id whose run doesn't cleanly simplify.
	for i := 0; i < len(pieces); {
		p := pieces[i]
		if p.K == 1 || (p.K != 0 && p.K == p.N) {
			if runComplete(i) {
				i += p.N
				continue
			}
			blacklist[p.Native] = struct{}{}
		}
		i++
	}

	var result []domain.PieceID
	for i := 0; i < len(pieces); {
		p := pieces[i]
		if _, blocked := blacklist[p.Native]; !blocked {
			if p.K == 1 || (p.K != 0 && p.K == p.N) {
				if runComplete(i) {
					result = append(result, domain.PieceID{Native: p.Native})
					i += p.N
					continue
				}
			}
		}
		result = append(result, p)
		i++
	}

	return result
}
