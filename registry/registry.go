// Package registry owns the schema catalog: every declared type,
// directive, the implements relation and the root operation type names.
// A Registry is built once at schema construction and is read-only
// afterwards, so arbitrarily many executions may share it without
// locking.
package registry

import (
	"github.com/veldt-io/graphql/types"
)

type Registry struct {
	Types      map[string]types.Type
	Directives map[string]*types.Directive
	// Implements maps a type name to the set of interface names it
	// implements.
	Implements map[string]map[string]struct{}

	QueryType        string
	MutationType     string
	SubscriptionType string
}

// New returns a registry preloaded with the built-in scalars and the
// skip/include/deprecated directives.
func New() *Registry {
	r := &Registry{
		Types:      make(map[string]types.Type),
		Directives: make(map[string]*types.Directive),
		Implements: make(map[string]map[string]struct{}),
		QueryType:  "Query",
	}
	registerBuiltins(r)
	return r
}

// RegisterType inserts the type produced by build under name.
//
// Field types may reference their own declaring type, or mutually
// recursive types that have not finished building. To break such cycles
// a placeholder object is inserted under name before build runs, so any
// nested registration that looks the name up finds a non-missing entry;
// the placeholder is replaced once build returns. Registration is
// idempotent: once a name is present, later calls are no-ops.
func (r *Registry) RegisterType(name string, build func(*Registry) types.Type) string {
	if _, ok := r.Types[name]; !ok {
		r.Types[name] = &types.Object{Name: name}
		r.Types[name] = build(r)
	}
	return name
}

func (r *Registry) AddDirective(d *types.Directive) {
	r.Directives[d.Name] = d
}

// AddImplements records that type ty implements interface iface.
func (r *Registry) AddImplements(ty, iface string) {
	set, ok := r.Implements[ty]
	if !ok {
		set = make(map[string]struct{})
		r.Implements[ty] = set
	}
	set[iface] = struct{}{}
}

// AddKeys appends a federation key field set to ty. Types without key
// support (anything but objects and interfaces) are silently ignored.
func (r *Registry) AddKeys(ty, keys string) {
	switch t := r.Types[ty].(type) {
	case *types.Object:
		t.Keys = append(t.Keys, keys)
	case *types.Interface:
		t.Keys = append(t.Keys, keys)
	}
}

// ConcreteType resolves a bare name or wrapped type reference to its
// declared type.
func (r *Registry) ConcreteType(ref string) (types.Type, bool) {
	name, err := types.ConcreteName(ref)
	if err != nil {
		return nil, false
	}
	t, ok := r.Types[name]
	return t, ok
}

// TypeOverlap reports whether a and b can share a runtime value:
// identical types always overlap, and an abstract type overlaps
// anything intersecting its possible-type set.
func (r *Registry) TypeOverlap(a, b types.Type) bool {
	if a == b {
		return true
	}
	switch {
	case types.IsAbstract(a) && types.IsAbstract(b):
		for name := range types.PossibleTypesOf(a) {
			if types.IsPossibleType(b, name) {
				return true
			}
		}
		return false
	case types.IsAbstract(a):
		return types.IsPossibleType(a, b.TypeName())
	case types.IsAbstract(b):
		return types.IsPossibleType(b, a.TypeName())
	default:
		return false
	}
}
