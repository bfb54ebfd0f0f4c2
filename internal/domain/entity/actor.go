package entity

// Actor is the authenticated principal a request runs as.
// Resolved by the auth middleware before any action is dispatched.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
