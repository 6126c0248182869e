package errors

import "fmt"

// Kind classifies a GraphQLError. Resolution errors carry one of the
// structured kinds below; validation errors stay free-text and use
// KindValidation only so callers can tell the two layers apart.
type Kind string

const (
	KindEmptySelection    Kind = "EMPTY_SELECTION"
	KindFieldNotFound     Kind = "FIELD_NOT_FOUND"
	KindUnknownFragment   Kind = "UNKNOWN_FRAGMENT"
	KindFieldError        Kind = "FIELD_ERROR"
	KindValidation        Kind = "VALIDATION_FAILURE"
	KindMalformedTypeRef  Kind = "MALFORMED_TYPE_REF"
	KindMalformedDocument Kind = "MALFORMED_DOCUMENT"
)

type GraphQLError struct {
	Message       string                 `json:"message"`
	Locations     []Location             `json:"locations,omitempty"`
	Path          []interface{}          `json:"path,omitempty"`
	Kind          Kind                   `json:"-"`
	Rule          string                 `json:"-"`
	ResolverError error                  `json:"-"`
	Extensions    map[string]interface{} `json:"extensions,omitempty"`
}

func (err *GraphQLError) Error() string {
	if err == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("graphql: %s", err.Message)
	for _, loc := range err.Locations {
		str += fmt.Sprintf(" (%d:%d)", loc.Line, loc.Column)
	}
	if err.Path != nil {
		str += fmt.Sprintf(" path: %v", err.Path)
	}
	return str
}

func (err *GraphQLError) Unwrap() error {
	if err == nil {
		return nil
	}
	return err.ResolverError
}

type MultiError []*GraphQLError

func (m MultiError) Error() string {
	var res string
	for _, err := range m {
		res += err.Error() + "\n"
	}
	return res
}

var _ error = (*GraphQLError)(nil)

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (a Location) Before(b Location) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Column < b.Column)
}

func New(format string, arg ...interface{}) *GraphQLError {
	return &GraphQLError{
		Message: fmt.Sprintf(format, arg...),
	}
}

// EmptySelection reports a selection on composite type object with no subfields.
func EmptySelection(object string) *GraphQLError {
	return &GraphQLError{
		Kind:    KindEmptySelection,
		Message: fmt.Sprintf("object %q must have a selection of subfields", object),
	}
}

// FieldNotFound reports a queried field absent from the schema type.
func FieldNotFound(field, object string) *GraphQLError {
	return &GraphQLError{
		Kind:    KindFieldNotFound,
		Message: fmt.Sprintf("unknown field %q on type %q", field, object),
	}
}

// UnknownFragment reports a spread referencing an undeclared fragment name.
func UnknownFragment(name string) *GraphQLError {
	return &GraphQLError{
		Kind:    KindUnknownFragment,
		Message: fmt.Sprintf("unknown fragment %q", name),
	}
}

// FieldError wraps a resolver-level failure for the field at node.
func FieldError(node *PathNode, err error) *GraphQLError {
	if gqlErr, ok := err.(*GraphQLError); ok {
		if gqlErr.Path == nil {
			gqlErr.Path = node.Path()
		}
		return gqlErr
	}
	return &GraphQLError{
		Kind:          KindFieldError,
		Message:       err.Error(),
		ResolverError: err,
		Path:          node.Path(),
	}
}

// ValidationFailure carries the free-text, path-qualified message produced
// by input value validation.
func ValidationFailure(node *PathNode, reason string) *GraphQLError {
	return &GraphQLError{
		Kind:    KindValidation,
		Message: reason,
		Path:    node.Path(),
	}
}

// MalformedTypeRef reports a type reference string that does not parse.
func MalformedTypeRef(ref string) *GraphQLError {
	return &GraphQLError{
		Kind:    KindMalformedTypeRef,
		Message: fmt.Sprintf("malformed type reference %q", ref),
	}
}
