package services

// Actor is the capability object every mutating catalog call must carry.
// It is built from the gateway-supplied user context (X-User-ID / X-User-Roles)
// rather than any ambient session state, so role checks are explicit at the
// call site.
type Actor struct {
	UserID string
	Roles  []string
}

const RoleAdmin = "admin"

func (a Actor) IsAdmin() bool {
	for _, r := range a.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
