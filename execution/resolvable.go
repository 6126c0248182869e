package execution

// Resolvable is the capability set a schema type's resolver
// implementation provides to the engine. It is implemented once per
// concrete schema type; dispatch is dynamic only across that closed set.
type Resolvable interface {
	// TypeName reports the runtime type name, used for __typename and
	// inline fragment narrowing.
	TypeName() string
	// ResolveField produces the value for one requested field. ctx is
	// the field's child context: its Items are the field's
	// sub-selection and its Context carries cancellation.
	ResolveField(ctx *Context, field string, args map[string]interface{}) (interface{}, error)
	// CollectInline narrows the value against an inline fragment's
	// type condition, appending the fragment's field tasks when the
	// condition matches the runtime type. A non-matching condition
	// appends nothing and is not an error.
	CollectInline(typeCondition string, ctx *Context, tasks *TaskList) error
}

// CollectObjectInline is the narrowing behavior shared by plain object
// values: the condition matches the object's own type name or an
// interface it implements.
func CollectObjectInline(root Resolvable, typeCondition string, ctx *Context, tasks *TaskList) error {
	if typeCondition != root.TypeName() {
		if _, ok := ctx.Registry.Implements[root.TypeName()][typeCondition]; !ok {
			return nil
		}
	}
	// Field lookup inside the fragment happens against the condition's
	// type, not the enclosing (possibly abstract) parent type.
	return CollectFields(ctx.WithParentType(typeCondition), root, tasks)
}
