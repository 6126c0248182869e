// Package validation checks literal input values against declared input
// types. Failures are human-readable strings carrying the query path
// trail; the first failure found wins and no aggregation is attempted.
package validation

import (
	"fmt"

	"github.com/veldt-io/graphql/ast"
	"github.com/veldt-io/graphql/errors"
	"github.com/veldt-io/graphql/registry"
	"github.com/veldt-io/graphql/types"
)

// IsValidValue reports why value does not conform to the type reference
// typeRef, or "" when it does. A variable reference is always accepted
// here; its bound value is checked after substitution.
func IsValidValue(reg *registry.Registry, typeRef string, value interface{}, node *errors.PathNode) string {
	if _, ok := value.(ast.Variable); ok {
		return ""
	}

	parsed, err := types.ParseTypeRef(typeRef)
	if err != nil {
		return validError(node, fmt.Sprintf("malformed type reference %q", typeRef))
	}

	switch parsed.Kind {
	case types.NonNull:
		if value == nil {
			return validError(node, fmt.Sprintf("expected type %q", parsed.Of))
		}
		return IsValidValue(reg, parsed.Of, value, node)

	case types.List:
		elems, ok := value.([]interface{})
		if !ok {
			// A single value coerces to a one-element list.
			return IsValidValue(reg, parsed.Of, value, node)
		}
		for idx, elem := range elems {
			if reason := IsValidValue(reg, parsed.Of, elem, node.WithIndex(idx)); reason != "" {
				return reason
			}
		}
		return ""

	default:
		if value == nil {
			return ""
		}
		ty, ok := reg.Types[parsed.Of]
		if !ok {
			return validError(node, fmt.Sprintf("unknown type %q", parsed.Of))
		}
		return isValidNamed(reg, ty, value, node)
	}
}

func isValidNamed(reg *registry.Registry, ty types.Type, value interface{}, node *errors.PathNode) string {
	switch ty := ty.(type) {
	case *types.Scalar:
		if ty.IsValid != nil && !ty.IsValid(value) {
			return validError(node, fmt.Sprintf("expected type %q", ty.Name))
		}
		return ""

	case *types.Enum:
		name, ok := value.(ast.EnumLiteral)
		if !ok {
			return validError(node, fmt.Sprintf("expected type %q", ty.Name))
		}
		if _, ok := ty.Values[string(name)]; !ok {
			return validError(node, fmt.Sprintf(
				"enumeration type %q does not contain the value %q", ty.Name, string(name)))
		}
		return ""

	case *types.InputObject:
		return isValidInputObject(reg, ty, value, node)
	}
	return ""
}

func isValidInputObject(reg *registry.Registry, ty *types.InputObject, value interface{}, node *errors.PathNode) string {
	values, ok := value.(map[string]interface{})
	if !ok {
		return ""
	}

	unknown := make(map[string]struct{}, len(values))
	for name := range values {
		unknown[name] = struct{}{}
	}

	for _, field := range ty.InputFields {
		delete(unknown, field.Name)
		fieldValue, present := values[field.Name]
		if !present {
			if types.IsNonNull(field.Type) && field.Default == nil {
				return validError(node, fmt.Sprintf(
					"field %q of type %q is required but not provided", field.Name, ty.Name))
			}
			continue
		}
		if field.Validator != nil {
			if reason := field.Validator.Validate(fieldValue); reason != "" {
				return validError(node.WithName(field.Name), reason)
			}
		}
		if reason := IsValidValue(reg, field.Type, fieldValue, node.WithName(field.Name)); reason != "" {
			return reason
		}
	}

	for name := range unknown {
		return validError(node, fmt.Sprintf("unknown field %q of type %q", name, ty.Name))
	}
	return ""
}

func validError(node *errors.PathNode, msg string) string {
	return fmt.Sprintf("%q, %s", node.String(), msg)
}
