// Package execution turns a selection tree into a concurrently resolved,
// order-preserving result object. It keeps no state of its own: all
// per-query state lives in the Context tree, and the schema catalog it
// reads is immutable.
package execution

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/veldt-io/graphql/ast"
	"github.com/veldt-io/graphql/errors"
	"github.com/veldt-io/graphql/registry"
	"github.com/veldt-io/graphql/types"
)

// Context is the per-query, per-subtree resolution state. A new context
// is derived for every field or fragment descent; the parent is never
// mutated, so sibling branches can run concurrently without locking.
type Context struct {
	context.Context

	Registry *registry.Registry
	// Items are the selection items at the current nesting level.
	Items []ast.Selection
	// ParentType is the declared type name the items select on.
	ParentType string
	Fragments  map[string]*ast.FragmentDefinition
	Variables  map[string]interface{}
	PathNode   *errors.PathNode
	Extensions []Extension

	resolveID *int64
	cache     *cacheState
}

type cacheState struct {
	mu   sync.Mutex
	hint types.CacheControl
}

// NewContext builds the root context for one query execution.
func NewContext(ctx context.Context, reg *registry.Registry, parentType string,
	set *ast.SelectionSet, fragments map[string]*ast.FragmentDefinition,
	variables map[string]interface{}, extensions []Extension) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if fragments == nil {
		fragments = make(map[string]*ast.FragmentDefinition)
	}
	if variables == nil {
		variables = make(map[string]interface{})
	}
	c := &Context{
		Context:    ctx,
		Registry:   reg,
		ParentType: parentType,
		Fragments:  fragments,
		Variables:  variables,
		Extensions: extensions,
		resolveID:  new(int64),
		cache:      &cacheState{hint: types.DefaultCacheControl()},
	}
	if set != nil {
		c.Items = set.Selections
	}
	return c
}

// WithSelectionSet derives a context over a different selection set,
// keeping the current path position.
func (c *Context) WithSelectionSet(set *ast.SelectionSet, parentType string) *Context {
	child := *c
	child.Items = nil
	if set != nil {
		child.Items = set.Selections
	}
	child.ParentType = parentType
	return &child
}

// WithField derives the child context for a field descent: the field's
// sub-selection becomes the item list, the path gains the field's
// result key, and parentType is the concrete name of the field's
// return type.
func (c *Context) WithField(field *ast.Field, parentType string) *Context {
	child := c.WithSelectionSet(field.SelectionSet, parentType)
	child.PathNode = c.PathNode.WithName(field.ResultKey())
	return child
}

// WithParentType derives a context over the same items narrowed to a
// different static parent type.
func (c *Context) WithParentType(parentType string) *Context {
	child := *c
	child.ParentType = parentType
	return &child
}

// WithIndex derives the context for one list element.
func (c *Context) WithIndex(idx int) *Context {
	child := *c
	child.PathNode = c.PathNode.WithIndex(idx)
	return &child
}

func (c *Context) withStdContext(ctx context.Context) *Context {
	child := *c
	child.Context = ctx
	return &child
}

func (c *Context) nextResolveID() int64 {
	return atomic.AddInt64(c.resolveID, 1)
}

// MergeCacheControl folds a hint into the query-wide accumulator.
func (c *Context) MergeCacheControl(hint types.CacheControl) {
	c.cache.mu.Lock()
	c.cache.hint = c.cache.hint.Merge(hint)
	c.cache.mu.Unlock()
}

// CacheControl returns the hint accumulated so far across every
// resolved field.
func (c *Context) CacheControl() types.CacheControl {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	return c.cache.hint
}

// ResolveValue substitutes variable references in value from the
// query's variable bindings.
func (c *Context) ResolveValue(value interface{}) interface{} {
	return ast.ResolveValue(value, c.Variables)
}

// Arguments returns the field's argument values with variables bound.
func (c *Context) Arguments(field *ast.Field) map[string]interface{} {
	if len(field.Arguments) == 0 {
		return nil
	}
	args := make(map[string]interface{}, len(field.Arguments))
	for name, value := range field.Arguments {
		args[name] = c.ResolveValue(value)
	}
	return args
}

func findDirective(directives []*ast.Directive, name string) *ast.Directive {
	for _, d := range directives {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// shouldInclude evaluates @skip and @include against the bound
// variables. @skip wins over @include.
func (c *Context) shouldInclude(directives []*ast.Directive) (bool, error) {
	parseIf := func(d *ast.Directive) (bool, error) {
		value := c.ResolveValue(d.Arguments["if"])
		if value == nil {
			return false, errors.New("required argument not provided: if")
		}
		b, ok := value.(bool)
		if !ok {
			return false, errors.New("expected type Boolean, found %v", value)
		}
		return b, nil
	}

	if skip := findDirective(directives, "skip"); skip != nil {
		b, err := parseIf(skip)
		if err != nil {
			return false, err
		}
		if b {
			return false, nil
		}
	}
	if include := findDirective(directives, "include"); include != nil {
		return parseIf(include)
	}
	return true, nil
}
