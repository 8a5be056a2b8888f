package domain

// Principal is the actor behind a request: a user id plus the admin flag.
// The zero value is the anonymous principal.
type Principal struct {
	ID    string
	Admin bool
}

// Anonymous reports whether the principal is unauthenticated.
func (p Principal) Anonymous() bool {
	return p.ID == ""
}

// Ownable is anything with an owner set and a privacy flag. Audio and
// Playlist both implement it; the access predicates below are written once
// against this interface.
type Ownable interface {
	OwnerIDs() []string
	Private() bool
}

// IsOwnerOrAdmin reports whether the principal is an admin or appears in
// the entity's current owner set. The owner set must be freshly loaded;
// ownership can change between request arrival and handling.
func IsOwnerOrAdmin(p Principal, o Ownable) bool {
	if p.Admin {
		return true
	}
	if p.Anonymous() {
		return false
	}
	for _, id := range o.OwnerIDs() {
		if id == p.ID {
			return true
		}
	}
	return false
}

// CanView reports whether the principal may read or stream the entity.
func CanView(p Principal, o Ownable) bool {
	if !o.Private() {
		return true
	}
	return IsOwnerOrAdmin(p, o)
}

// CanMutate reports whether the principal may modify the entity. Public
// visibility alone never grants mutation rights.
func CanMutate(p Principal, o Ownable) bool {
	return IsOwnerOrAdmin(p, o)
}
