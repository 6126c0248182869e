package types

// Type is one schema type definition. The closed set of implementations
// is Scalar, Object, Interface, Union, Enum and InputObject; all are
// created during schema build and immutable afterwards.
type Type interface {
	TypeName() string
	isType()
}

var (
	_ Type = (*Scalar)(nil)
	_ Type = (*Object)(nil)
	_ Type = (*Interface)(nil)
	_ Type = (*Union)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*InputObject)(nil)
)

type Scalar struct {
	Name string
	Desc string
	// IsValid decides whether a literal value conforms to the scalar.
	IsValid func(value interface{}) bool
}

type Object struct {
	Name         string
	Desc         string
	Fields       map[string]*Field
	CacheControl CacheControl
	// Extends marks an entity extension declared in another service.
	Extends bool
	// Keys holds the federation @key field sets, empty for non-entities.
	Keys []string
}

type Interface struct {
	Name          string
	Desc          string
	Fields        map[string]*Field
	PossibleTypes map[string]struct{}
	Extends       bool
	Keys          []string
}

type Union struct {
	Name          string
	Desc          string
	PossibleTypes map[string]struct{}
}

type Enum struct {
	Name   string
	Desc   string
	Values map[string]*EnumValue
}

type InputObject struct {
	Name        string
	Desc        string
	InputFields map[string]*InputValue
}

func (t *Scalar) TypeName() string      { return t.Name }
func (t *Object) TypeName() string      { return t.Name }
func (t *Interface) TypeName() string   { return t.Name }
func (t *Union) TypeName() string       { return t.Name }
func (t *Enum) TypeName() string        { return t.Name }
func (t *InputObject) TypeName() string { return t.Name }

func (*Scalar) isType()      {}
func (*Object) isType()      {}
func (*Interface) isType()   {}
func (*Union) isType()       {}
func (*Enum) isType()        {}
func (*InputObject) isType() {}

// Field is one object or interface field descriptor.
type Field struct {
	Name         string
	Desc         string
	Args         map[string]*InputValue
	Type         string // type reference of the return type
	Deprecation  string
	CacheControl CacheControl
	// Federation markers.
	External bool
	Requires string
	Provides string
}

// InputValue is one argument or input-object field descriptor.
type InputValue struct {
	Name string
	Desc string
	Type string // type reference
	// Default is the literal used when the value is absent; nil means
	// no default.
	Default interface{}
	// Validator is the optional per-value constraint capability, run
	// before recursive type validation.
	Validator InputValueValidator
}

// InputValueValidator checks a single input value against a custom
// constraint. The returned reason is "" when the value is acceptable.
type InputValueValidator interface {
	Validate(value interface{}) string
}

type EnumValue struct {
	Name        string
	Desc        string
	Deprecation string
}

// FieldsOf returns the field map for object and interface types, nil
// for everything else.
func FieldsOf(t Type) map[string]*Field {
	switch t := t.(type) {
	case *Object:
		return t.Fields
	case *Interface:
		return t.Fields
	}
	return nil
}

// FieldByName looks a field up on object and interface types.
func FieldByName(t Type, name string) *Field {
	return FieldsOf(t)[name]
}

// IsAbstract reports whether t resolves to concrete types at runtime.
func IsAbstract(t Type) bool {
	switch t.(type) {
	case *Interface, *Union:
		return true
	}
	return false
}

// IsComposite reports whether t has sub-selections.
func IsComposite(t Type) bool {
	switch t.(type) {
	case *Object, *Interface, *Union:
		return true
	}
	return false
}

// IsLeaf reports whether t terminates a selection.
func IsLeaf(t Type) bool {
	switch t.(type) {
	case *Scalar, *Enum:
		return true
	}
	return false
}

// IsInput reports whether t may appear in input position.
func IsInput(t Type) bool {
	switch t.(type) {
	case *Scalar, *Enum, *InputObject:
		return true
	}
	return false
}

// IsPossibleType reports whether typeName is a runtime identity of t:
// membership for abstract types, name equality for objects.
func IsPossibleType(t Type, typeName string) bool {
	switch t := t.(type) {
	case *Interface:
		_, ok := t.PossibleTypes[typeName]
		return ok
	case *Union:
		_, ok := t.PossibleTypes[typeName]
		return ok
	case *Object:
		return t.Name == typeName
	}
	return false
}

// PossibleTypesOf returns the possible-type set of an abstract type,
// nil otherwise.
func PossibleTypesOf(t Type) map[string]struct{} {
	switch t := t.(type) {
	case *Interface:
		return t.PossibleTypes
	case *Union:
		return t.PossibleTypes
	}
	return nil
}

// KeysOf returns the federation key sets of keyed types.
func KeysOf(t Type) []string {
	switch t := t.(type) {
	case *Object:
		return t.Keys
	case *Interface:
		return t.Keys
	}
	return nil
}
