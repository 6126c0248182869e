package ast

// Argument and directive values are JSON-like: nil, bool, int64,
// float64, string, []interface{} and map[string]interface{}, plus the
// two literal kinds below that JSON cannot express.

// Variable is an unresolved variable reference ($name, stored without
// the dollar sign). Variables are bound at execution time from the
// request's variable map.
type Variable string

// EnumLiteral is an unquoted enum name appearing literally in a
// document. It is distinct from a string so enum membership can be
// checked during validation.
type EnumLiteral string

// ResolveValue substitutes variable references in value from vars,
// recursing through lists and objects. Unbound variables resolve to nil.
func ResolveValue(value interface{}, vars map[string]interface{}) interface{} {
	switch value := value.(type) {
	case Variable:
		return vars[string(value)]
	case []interface{}:
		resolved := make([]interface{}, len(value))
		for i, elem := range value {
			resolved[i] = ResolveValue(elem, vars)
		}
		return resolved
	case map[string]interface{}:
		resolved := make(map[string]interface{}, len(value))
		for k, v := range value {
			resolved[k] = ResolveValue(v, vars)
		}
		return resolved
	default:
		return value
	}
}
