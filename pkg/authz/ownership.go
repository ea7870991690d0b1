package authz

import (
	"github.com/toolcrib/toolcrib/pkg/principal"
	"github.com/toolcrib/toolcrib/pkg/resource"
)

// Owns reports whether the principal may treat the resource as its own.
// Admins own everything.
func Owns(p *principal.Principal, r *resource.Resource) bool {
	if p == nil || r == nil {
		return false
	}
	return p.Admin || p.ID == r.OwnerID
}

// ShouldFilterByOwner reports whether listings and lookups for this
// principal must be constrained to resources it owns. Both the mutation
// and the change feed paths apply the same rule.
func ShouldFilterByOwner(p *principal.Principal) bool {
	return p == nil || !p.Admin
}
