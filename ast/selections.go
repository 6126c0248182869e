// Package ast is the selection-tree model consumed by the resolution
// engine. It is the simplified, execution-facing view of a parsed query:
// fields, fragment spreads and inline fragments in declaration order,
// with argument and directive values kept as JSON-like literals.
package ast

import "github.com/veldt-io/graphql/errors"

// SelectionSet is the list of selections requested at one nesting level,
// in declaration order.
type SelectionSet struct {
	Selections []Selection
	Loc        errors.Location
}

// Selection is one requested item: a Field, a FragmentSpread or an
// InlineFragment.
type Selection interface {
	isSelection()
}

var (
	_ Selection = (*Field)(nil)
	_ Selection = (*FragmentSpread)(nil)
	_ Selection = (*InlineFragment)(nil)
)

type Field struct {
	Alias        string
	Name         string
	Arguments    map[string]interface{}
	Directives   []*Directive
	SelectionSet *SelectionSet
	Loc          errors.Location
}

// ResultKey is the key the field's value appears under in the result
// object: the alias when given, the field name otherwise.
func (f *Field) ResultKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

type FragmentSpread struct {
	Name       string
	Directives []*Directive
	Loc        errors.Location
}

type InlineFragment struct {
	// TypeCondition is empty for an unconditional fragment.
	TypeCondition string
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           errors.Location
}

func (*Field) isSelection()          {}
func (*FragmentSpread) isSelection() {}
func (*InlineFragment) isSelection() {}

// FragmentDefinition is a named, reusable selection set scoped to a
// type condition.
type FragmentDefinition struct {
	Name         string
	On           string
	SelectionSet *SelectionSet
	Loc          errors.Location
}

// Directive is a directive application on a selection, with its
// argument values.
type Directive struct {
	Name      string
	Arguments map[string]interface{}
	Loc       errors.Location
}
