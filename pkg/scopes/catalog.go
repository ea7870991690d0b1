package scopes

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Catalog bounds the universe of scopes that may be granted to an API key.
// It is consulted when keys are minted, not on the per-request hot path.
type Catalog struct {
	allowed []string
}

// NewCatalog builds a catalog from an explicit allow-list.
func NewCatalog(allowed []string) *Catalog {
	return &Catalog{allowed: NormalizeScopes(allowed)}
}

// catalogFile is the YAML shape:
//
//	scopes:
//	  - read
//	  - write:tool_items
//	  - admin:*
type catalogFile struct {
	Scopes []string `yaml:"scopes"`
}

// LoadCatalog reads a YAML allow-list from r.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scopes: read catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scopes: parse catalog: %w", err)
	}
	if len(f.Scopes) == 0 {
		return nil, fmt.Errorf("%w: catalog defines no scopes", ErrInvalidScope)
	}

	for _, s := range f.Scopes {
		if _, err := Parse(s); err != nil {
			return nil, err
		}
	}

	return NewCatalog(f.Scopes), nil
}

// Allowed returns the catalog's allow-list, normalized.
func (c *Catalog) Allowed() []string {
	out := make([]string, len(c.allowed))
	copy(out, c.allowed)
	return out
}

// Validate checks that every requested scope is present in the allow-list.
// Wildcard entries in the allow-list cover their action ("write:*" covers
// "write:tool_items"); the requested scopes themselves are matched literally
// unless the list carries "admin:*".
func (c *Catalog) Validate(requested []string) error {
	for _, req := range requested {
		if _, err := Parse(req); err != nil {
			return err
		}
		if !HasScope(c.allowed, req) {
			return fmt.Errorf("%w: %q", ErrScopeNotAllowed, req)
		}
	}
	return nil
}
