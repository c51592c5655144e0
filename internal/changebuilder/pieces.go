package changebuilder

import "github.com/transitrepair/engine/internal/domain"

// PieceResolution is the outcome of ResolvePieces: which real (or
// placeholder) id a piece maps to, and whether it needs a "create" (new
// way) or "modify" (existing way, first fragment) changeset entry.
type PieceResolution struct {
	ID     domain.NativeID
	Create bool
}

// ResolvePieces assigns real/placeholder ids to every split piece touched
// by pieces. A whole piece (K==0) always resolves to its own native id with
// no changeset entry of its own. Within a split run, the K==1 fragment
// keeps the native id (modified in place); K==2..N fragments get descending
// negative placeholder ids, mirroring the original's next_unique_id
// countdown.
func ResolvePieces(pieces []domain.PieceID) map[domain.PieceID]PieceResolution {
	out := make(map[domain.PieceID]PieceResolution, len(pieces))
	nextPlaceholder := domain.NativeID(-1)

	for _, p := range pieces {
		if p.Whole() {
			continue
		}
		if _, ok := out[p]; ok {
			continue
		}
		if p.K == 1 {
			out[p] = PieceResolution{ID: p.Native, Create: false}
		} else {
			out[p] = PieceResolution{ID: nextPlaceholder, Create: true}
			nextPlaceholder--
		}
	}

	return out
}

// Resolver returns the real/placeholder id a synthesized member's PieceID
// should reference, suitable for members.Synthesize's resolve parameter.
func Resolver(resolutions map[domain.PieceID]PieceResolution) func(domain.PieceID) domain.NativeID {
	return func(p domain.PieceID) domain.NativeID {
		if p.Whole() {
			return p.Native
		}
		if r, ok := resolutions[p]; ok {
			return r.ID
		}
		return p.Native
	}
}
