package resource

import "fmt"

// Kind identifies one of the six mutable entity kinds. The set is closed:
// new kinds require a new constant, a String case and a ParseKind case.
type Kind int

const (
	KindInvalid Kind = iota
	KindToolItem
	KindToolAssembly
	KindToolInstance
	KindToolPreset
	KindToolSet
	KindToolUsage
)

var kindNames = map[Kind]string{
	KindToolItem:     "tool_items",
	KindToolAssembly: "tool_assemblies",
	KindToolInstance: "tool_instances",
	KindToolPreset:   "tool_presets",
	KindToolSet:      "tool_sets",
	KindToolUsage:    "tool_usage",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

// requiredAttrs lists the attributes a resource of each kind must carry at
// creation time. Mirrors the per-entity validation of the API layer.
var requiredAttrs = map[Kind][]string{
	KindToolItem:     {"type"},
	KindToolAssembly: {"name", "components"},
	KindToolInstance: {"assembly_id"},
	KindToolPreset:   {"machine_id", "tool_number"},
	KindToolSet:      {"name", "type", "members"},
	KindToolUsage:    {"preset_id", "start_time"},
}

// ParseKind converts an entity-type string ("tool_items", ...) into a Kind.
// Unknown strings fail with ErrInvalidKind naming the valid set.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindByName[s]; ok {
		return k, nil
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// String returns the canonical entity-type string.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k names a known entity kind.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// RequiredAttrs returns the attribute names a new resource of this kind
// must provide.
func (k Kind) RequiredAttrs() []string {
	attrs := requiredAttrs[k]
	out := make([]string, len(attrs))
	copy(out, attrs)
	return out
}

// Kinds returns all known kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindToolItem,
		KindToolAssembly,
		KindToolInstance,
		KindToolPreset,
		KindToolSet,
		KindToolUsage,
	}
}
