package authz

import (
	"slices"

	"github.com/toolcrib/toolcrib/pkg/principal"
	"github.com/toolcrib/toolcrib/pkg/resource"
	"github.com/toolcrib/toolcrib/pkg/scopes"
)

// TagAllowed reports whether a key restricted to keyTags may reach a
// resource carrying resourceTags. An unrestricted key (no tags) reaches
// everything; an untagged resource is reachable by every key; otherwise
// the two sets must share at least one tag.
func TagAllowed(keyTags, resourceTags []string) bool {
	if len(keyTags) == 0 {
		return true
	}
	if len(resourceTags) == 0 {
		return true
	}
	for _, t := range keyTags {
		if slices.Contains(resourceTags, t) {
			return true
		}
	}
	return false
}

// TagWriteAllowed reports whether every tag being written is individually
// covered by the key's tags. A single uncovered tag rejects the whole set;
// tags are never silently dropped.
func TagWriteAllowed(keyTags, newTags []string) bool {
	if len(keyTags) == 0 {
		return true
	}
	for _, t := range newTags {
		if !slices.Contains(keyTags, t) {
			return false
		}
	}
	return true
}

// TagScopeAllowed combines scope-level bypasses with the tag intersection
// check. Session users are not tag-restricted; ownership already gates
// them. API keys bypass tags with "admin:*", or with the pair
// "{action}:all" + "{action}:{kind}".
func TagScopeAllowed(p *principal.Principal, resourceTags []string, kind resource.Kind, action Action) bool {
	if tagBypass(p, kind, action) {
		return true
	}
	return TagAllowed(p.Tags, resourceTags)
}

func tagBypass(p *principal.Principal, kind resource.Kind, action Action) bool {
	if p == nil {
		return false
	}
	if !p.IsAPIKey() {
		return true
	}
	if scopes.HasScope(p.Scopes, scopes.AdminWildcard) {
		return true
	}
	return scopes.HasScope(p.Scopes, action.allScope()) &&
		scopes.HasScope(p.Scopes, action.Scope(kind))
}
