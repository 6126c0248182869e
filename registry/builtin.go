package registry

import (
	"math"

	"github.com/veldt-io/graphql/types"
)

func registerBuiltins(r *Registry) {
	r.RegisterType("Int", func(*Registry) types.Type {
		return &types.Scalar{Name: "Int", Desc: "32-bit signed integer", IsValid: isValidInt}
	})
	r.RegisterType("Float", func(*Registry) types.Type {
		return &types.Scalar{Name: "Float", Desc: "IEEE-754 double", IsValid: isValidFloat}
	})
	r.RegisterType("String", func(*Registry) types.Type {
		return &types.Scalar{Name: "String", Desc: "UTF-8 string", IsValid: isValidString}
	})
	r.RegisterType("Boolean", func(*Registry) types.Type {
		return &types.Scalar{Name: "Boolean", IsValid: isValidBoolean}
	})
	r.RegisterType("ID", func(*Registry) types.Type {
		return &types.Scalar{Name: "ID", Desc: "unique identifier, serialized as a string", IsValid: isValidID}
	})

	ifArg := func() map[string]*types.InputValue {
		return map[string]*types.InputValue{
			"if": {Name: "if", Type: "Boolean!", Desc: "condition"},
		}
	}
	r.AddDirective(&types.Directive{
		Name: "skip",
		Desc: "Directs the executor to skip this field or fragment when the `if` argument is true.",
		Locations: []types.DirectiveLocation{
			types.LocationField, types.LocationFragmentSpread, types.LocationInlineFragment,
		},
		Args: ifArg(),
	})
	r.AddDirective(&types.Directive{
		Name: "include",
		Desc: "Directs the executor to include this field or fragment only when the `if` argument is true.",
		Locations: []types.DirectiveLocation{
			types.LocationField, types.LocationFragmentSpread, types.LocationInlineFragment,
		},
		Args: ifArg(),
	})
	r.AddDirective(&types.Directive{
		Name:      "deprecated",
		Desc:      "Marks an element of a GraphQL schema as no longer supported.",
		Locations: []types.DirectiveLocation{types.LocationFieldDefinition, types.LocationEnumValue},
		Args: map[string]*types.InputValue{
			"reason": {Name: "reason", Type: "String", Default: "No longer supported"},
		},
	})
}

func isValidInt(value interface{}) bool {
	switch value := value.(type) {
	case int:
		return value >= math.MinInt32 && value <= math.MaxInt32
	case int32:
		return true
	case int64:
		return value >= math.MinInt32 && value <= math.MaxInt32
	case float64:
		return value == math.Trunc(value) && value >= math.MinInt32 && value <= math.MaxInt32
	}
	return false
}

func isValidFloat(value interface{}) bool {
	switch value.(type) {
	case int, int32, int64, float32, float64:
		return true
	}
	return false
}

func isValidString(value interface{}) bool {
	_, ok := value.(string)
	return ok
}

func isValidBoolean(value interface{}) bool {
	_, ok := value.(bool)
	return ok
}

func isValidID(value interface{}) bool {
	switch value.(type) {
	case string, int, int32, int64:
		return true
	}
	return false
}
