package principal

import "slices"

// Kind distinguishes the two principal variants.
type Kind int

const (
	KindUser Kind = iota + 1
	KindAPIKey
)

// String returns the canonical name of the principal kind.
func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindAPIKey:
		return "api_key"
	default:
		return "unknown"
	}
}

// Principal is the authenticated caller.
//
// For KindUser, Scopes and Tags are always nil: session users are gated by
// ownership alone. For KindAPIKey, Scopes is the key's explicit grant set
// and Tags its restriction set; KeyID identifies the key itself while ID is
// the owning user.
type Principal struct {
	ID     string
	Kind   Kind
	Admin  bool
	Scopes []string
	Tags   []string
	KeyID  string
}

// IsAPIKey reports whether the principal authenticated with an API key.
func (p Principal) IsAPIKey() bool {
	return p.Kind == KindAPIKey
}

// Clone returns a copy with independent slices.
func (p Principal) Clone() Principal {
	p.Scopes = slices.Clone(p.Scopes)
	p.Tags = slices.Clone(p.Tags)
	return p
}

// User is an account in the injected user directory.
type User struct {
	ID     string
	Email  string
	Admin  bool
	Active bool
}
