package shared

// Casting agency permissions carried in the token "permissions" claim.
const (
	PermActorsView   = "get:actors"
	PermActorsCreate = "post:actors"
	PermActorsEdit   = "patch:actors"
	PermActorsDelete = "delete:actors"

	PermMoviesView   = "get:movies"
	PermMoviesCreate = "post:movies"
	PermMoviesEdit   = "patch:movies"
	PermMoviesDelete = "delete:movies"
)

// Role names configured at the identity provider.
const (
	RoleCastingAssistant  = "casting_assistant"
	RoleCastingDirector   = "casting_director"
	RoleExecutiveProducer = "executive_producer"
)

// CastingScopes lists every permission understood by the API.
func CastingScopes() []string {
	return []string{
		PermActorsView,
		PermActorsCreate,
		PermActorsEdit,
		PermActorsDelete,
		PermMoviesView,
		PermMoviesCreate,
		PermMoviesEdit,
		PermMoviesDelete,
	}
}

// RoleScopes returns the permissions granted to a role, or nil for unknown roles.
func RoleScopes(role string) []string {
	switch role {
	case RoleCastingAssistant:
		return []string{PermActorsView, PermMoviesView}
	case RoleCastingDirector:
		return []string{
			PermActorsView,
			PermMoviesView,
			PermActorsCreate,
			PermActorsEdit,
			PermActorsDelete,
			PermMoviesEdit,
		}
	case RoleExecutiveProducer:
		return CastingScopes()
	default:
		return nil
	}
}
