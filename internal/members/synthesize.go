package members

import (
	"github.com/transitrepair/engine/internal/domain"
	"github.com/transitrepair/engine/internal/finalize"
)

// Synthesize builds the final ordered member list for route, preferring an
// existing member's role when it already begins with the freshly computed
// base role (e.g. a stop already tagged "stop_entry_only" keeps that exact
// value rather than being recomputed to plain "stop"). resolve maps a
// (possibly still-split) PieceID to the real way id the change builder will
// reference it by; a whole PieceID trivially resolves to its Native id.
func Synthesize(route finalize.Route, existing map[domain.NativeID]domain.RouteMember, resolve func(domain.PieceID) domain.NativeID) []domain.RouteMember {
	var out []domain.RouteMember

	for i, collection := range route.Stops {
		isFirst := i == 0
		isLast := i == len(route.Stops)-1

		if collection.Stop != nil {
			role := roleWithSuffix(domain.RoleStop, isFirst, isLast)
			role = preferExisting(existing, collection.Stop.ID, role)
			out = append(out, domain.RouteMember{ElementID: collection.Stop.ID, Kind: collection.Stop.Kind, Role: role})
		}

		if collection.Platform != nil {
			role := roleWithSuffix(domain.RolePlatform, isFirst, isLast)
			role = preferExisting(existing, collection.Platform.ID, role)
			out = append(out, domain.RouteMember{ElementID: collection.Platform.ID, Kind: collection.Platform.Kind, Role: role})
		}
	}

	pieces := make([]domain.PieceID, 0, len(route.Legs))
	for _, leg := range route.Legs {
		pieces = append(pieces, leg.Piece)
	}

	for _, piece := range SimplifyPieceIDs(pieces) {
		wayID := resolve(piece)
		role := domain.RoleNone
		if member, ok := existing[wayID]; ok && member.Role != domain.RoleRoute && member.Role != domain.RoleForward && member.Role != domain.RoleBackward {
			role = member.Role
		}
		out = append(out, domain.RouteMember{ElementID: wayID, Kind: domain.KindWay, Role: role})
	}

	return out
}

func roleWithSuffix(base domain.RouteMemberRole, isFirst, isLast bool) domain.RouteMemberRole {
	switch {
	case base == domain.RoleStop && isFirst:
		return domain.RoleStopEntryOnly
	case base == domain.RoleStop && isLast:
		return domain.RoleStopExitOnly
	case base == domain.RolePlatform && isFirst:
		return domain.RolePlatformEntry
	case base == domain.RolePlatform && isLast:
		return domain.RolePlatformExit
	default:
		return base
	}
}

func preferExisting(existing map[domain.NativeID]domain.RouteMember, id domain.NativeID, computed domain.RouteMemberRole) domain.RouteMemberRole {
	member, ok := existing[id]
	if !ok {
		return computed
	}
	if hasPrefix(string(member.Role), string(computed)) {
		return member.Role
	}
	return computed
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
