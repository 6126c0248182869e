package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/veldt-io/graphql/types"
)

// Reserved query-root fields: a root carrying exactly these and nothing
// else is an empty root and is left out of the projected SDL.
var reservedRootFields = map[string]struct{}{
	"__schema":  {},
	"__type":    {},
	"_service":  {},
	"_entities": {},
}

// HasEntities reports whether any object or interface carries a
// federation key.
func (r *Registry) HasEntities() bool {
	for _, ty := range r.Types {
		if len(types.KeysOf(ty)) > 0 {
			return true
		}
	}
	return false
}

// FederationSDL projects the registry as the reduced schema document
// exchanged with a federation gateway: one block per object and
// interface, with @key, @external, @requires and @provides applied
// where the metadata is present. Introspection and federation-internal
// machinery is left out.
func (r *Registry) FederationSDL() string {
	names := make([]string, 0, len(r.Types))
	for name := range r.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	var sdl strings.Builder
	for _, name := range names {
		r.writeFederationType(&sdl, r.Types[name])
	}
	return sdl.String()
}

func (r *Registry) writeFederationType(sdl *strings.Builder, ty types.Type) {
	name := ty.TypeName()
	if strings.HasPrefix(name, "__") || name == "_Service" {
		return
	}

	var keyword string
	var extends bool
	switch t := ty.(type) {
	case *types.Object:
		if name == r.QueryType && isEmptyQueryRoot(t.Fields) {
			return
		}
		keyword, extends = "type", t.Extends
	case *types.Interface:
		keyword, extends = "interface", t.Extends
	default:
		return
	}

	if extends {
		sdl.WriteString("extend ")
	}
	fmt.Fprintf(sdl, "%s %s ", keyword, name)
	for _, key := range types.KeysOf(ty) {
		fmt.Fprintf(sdl, "@key(fields: %q) ", key)
	}
	sdl.WriteString("{\n")
	writeFederationFields(sdl, types.FieldsOf(ty))
	sdl.WriteString("}\n")
}

func writeFederationFields(sdl *strings.Builder, fields map[string]*types.Field) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.HasPrefix(name, "__") || name == "_service" || name == "_entities" {
			continue
		}
		field := fields[name]
		fmt.Fprintf(sdl, "\t%s: %s", field.Name, field.Type)
		if field.External {
			sdl.WriteString(" @external")
		}
		if field.Requires != "" {
			fmt.Fprintf(sdl, " @requires(fields: %q)", field.Requires)
		}
		if field.Provides != "" {
			fmt.Fprintf(sdl, " @provides(fields: %q)", field.Provides)
		}
		sdl.WriteString("\n")
	}
}

// isEmptyQueryRoot detects a query root whose only fields are the four
// reserved introspection and federation entries.
func isEmptyQueryRoot(fields map[string]*types.Field) bool {
	if len(fields) != len(reservedRootFields) {
		return false
	}
	for name := range fields {
		if _, ok := reservedRootFields[name]; !ok {
			return false
		}
	}
	return true
}

// EnableFederation injects the synthetic federation surface: the _Any
// scalar, the _Service object, the _Entity union over every keyed type,
// and the _service/_entities fields on the query root. It is a no-op
// unless at least one type carries a key.
func (r *Registry) EnableFederation() {
	if !r.HasEntities() {
		return
	}

	r.RegisterType("_Any", func(*Registry) types.Type {
		return &types.Scalar{
			Name:    "_Any",
			Desc:    "An opaque entity representation.",
			IsValid: func(interface{}) bool { return true },
		}
	})
	r.RegisterType("_Service", func(*Registry) types.Type {
		return &types.Object{
			Name: "_Service",
			Fields: map[string]*types.Field{
				"sdl": {Name: "sdl", Type: "String"},
			},
			CacheControl: types.DefaultCacheControl(),
		}
	})

	possible := make(map[string]struct{})
	for name, ty := range r.Types {
		if len(types.KeysOf(ty)) > 0 {
			possible[name] = struct{}{}
		}
	}
	r.Types["_Entity"] = &types.Union{
		Name:          "_Entity",
		PossibleTypes: possible,
	}

	root, ok := r.Types[r.QueryType].(*types.Object)
	if !ok {
		return
	}
	if root.Fields == nil {
		root.Fields = make(map[string]*types.Field)
	}
	root.Fields["_service"] = &types.Field{
		Name:         "_service",
		Type:         "_Service!",
		CacheControl: types.DefaultCacheControl(),
	}
	root.Fields["_entities"] = &types.Field{
		Name: "_entities",
		Args: map[string]*types.InputValue{
			"representations": {Name: "representations", Type: "[_Any!]!"},
		},
		Type:         "[_Entity]!",
		CacheControl: types.DefaultCacheControl(),
	}
}
