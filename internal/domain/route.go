package domain

// GraphKey identifies one directed traversal state: a piece plus which
// endpoint the traversal is leaving from.
type GraphKey struct {
	Piece PieceID
	AtEnd bool // false = leaving from start endpoint, true = leaving from end endpoint
}

// GraphValue is the successor set reachable from a GraphKey, plus the
// canonical intersection id of the endpoint it departs from.
type GraphValue struct {
	IntersectionID int
	Successors     []GraphKey
}

// RouteMemberRole enumerates the role strings spec.md §3 defines.
type RouteMemberRole string

const (
	RoleNone          RouteMemberRole = ""
	RoleStop          RouteMemberRole = "stop"
	RoleStopEntryOnly RouteMemberRole = "stop_entry_only"
	RoleStopExitOnly  RouteMemberRole = "stop_exit_only"
	RolePlatform      RouteMemberRole = "platform"
	RolePlatformEntry RouteMemberRole = "platform_entry_only"
	RolePlatformExit  RouteMemberRole = "platform_exit_only"
	RoleRoute         RouteMemberRole = "route"
	RoleForward       RouteMemberRole = "forward"
	RoleBackward      RouteMemberRole = "backward"
)

// RouteMember is one entry of a relation's member list.
type RouteMember struct {
	ElementID NativeID
	Kind      ElementKind
	Role      RouteMemberRole
}
