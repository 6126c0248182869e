package execution

import "github.com/veldt-io/graphql/errors"

// ResolveInfo describes one field resolution to extensions.
type ResolveInfo struct {
	// ResolveID is unique per field resolution within one query.
	ResolveID  int64
	PathNode   *errors.PathNode
	ParentType string
	// ReturnType is the field's declared type reference.
	ReturnType string
}

// Extension hooks are invoked synchronously around every field
// resolution. Implementations must return promptly; a panic inside a
// hook is treated as that field's failure.
type Extension interface {
	ResolveFieldStart(info *ResolveInfo)
	ResolveFieldEnd(resolveID int64)
}
