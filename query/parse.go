// Package query adapts parsed GraphQL documents to the execution-facing
// selection model. The heavy lifting of lexing and grammar belongs to
// gqlparser; this package only reshapes its AST into ordered selection
// items with JSON-like literal values.
package query

import (
	"strconv"

	gqlast "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/veldt-io/graphql/ast"
	"github.com/veldt-io/graphql/errors"
)

type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

// Operation is one executable operation of a document.
type Operation struct {
	Type         OperationType
	Name         string
	SelectionSet *ast.SelectionSet
	// VariableDefaults carries the operation's variable default
	// literals, applied for variables the request leaves unbound.
	VariableDefaults map[string]interface{}
}

// Document is the execution-ready view of a parsed query document.
type Document struct {
	Operations []*Operation
	Fragments  map[string]*ast.FragmentDefinition
}

// Parse converts query text into a Document.
func Parse(source string) (*Document, *errors.GraphQLError) {
	parsed, err := parser.ParseQuery(&gqlast.Source{Input: source})
	if err != nil {
		gqlErr := errors.New("%s", err.Error())
		gqlErr.Kind = errors.KindMalformedDocument
		return nil, gqlErr
	}

	doc := &Document{Fragments: make(map[string]*ast.FragmentDefinition, len(parsed.Fragments))}
	for _, fragment := range parsed.Fragments {
		if _, ok := doc.Fragments[fragment.Name]; ok {
			return nil, errors.New("duplicate fragment %q", fragment.Name)
		}
		doc.Fragments[fragment.Name] = &ast.FragmentDefinition{
			Name:         fragment.Name,
			On:           fragment.TypeCondition,
			SelectionSet: convertSelectionSet(fragment.SelectionSet),
			Loc:          convertPosition(fragment.Position),
		}
	}

	for _, op := range parsed.Operations {
		operation := &Operation{
			Type:         OperationType(op.Operation),
			Name:         op.Name,
			SelectionSet: convertSelectionSet(op.SelectionSet),
		}
		for _, def := range op.VariableDefinitions {
			if def.DefaultValue == nil {
				continue
			}
			if operation.VariableDefaults == nil {
				operation.VariableDefaults = make(map[string]interface{})
			}
			operation.VariableDefaults[def.Variable] = convertValue(def.DefaultValue)
		}
		doc.Operations = append(doc.Operations, operation)
	}
	return doc, nil
}

// Operation selects the named operation, or the one and only operation
// when name is empty.
func (d *Document) Operation(name string) (*Operation, *errors.GraphQLError) {
	if len(d.Operations) == 0 {
		return nil, errors.New("no operations in query document")
	}
	if name == "" {
		if len(d.Operations) > 1 {
			return nil, errors.New("more than one operation in query document and no operation name given")
		}
		return d.Operations[0], nil
	}
	for _, op := range d.Operations {
		if op.Name == name {
			return op, nil
		}
	}
	return nil, errors.New("no operation with name %q", name)
}

func convertSelectionSet(set gqlast.SelectionSet) *ast.SelectionSet {
	if set == nil {
		return nil
	}
	out := &ast.SelectionSet{Selections: make([]ast.Selection, 0, len(set))}
	for _, sel := range set {
		switch sel := sel.(type) {
		case *gqlast.Field:
			field := &ast.Field{
				Name:         sel.Name,
				Arguments:    convertArguments(sel.Arguments),
				Directives:   convertDirectives(sel.Directives),
				SelectionSet: convertSelectionSet(sel.SelectionSet),
				Loc:          convertPosition(sel.Position),
			}
			if sel.Alias != sel.Name {
				field.Alias = sel.Alias
			}
			out.Selections = append(out.Selections, field)
		case *gqlast.FragmentSpread:
			out.Selections = append(out.Selections, &ast.FragmentSpread{
				Name:       sel.Name,
				Directives: convertDirectives(sel.Directives),
				Loc:        convertPosition(sel.Position),
			})
		case *gqlast.InlineFragment:
			out.Selections = append(out.Selections, &ast.InlineFragment{
				TypeCondition: sel.TypeCondition,
				Directives:    convertDirectives(sel.Directives),
				SelectionSet:  convertSelectionSet(sel.SelectionSet),
				Loc:           convertPosition(sel.Position),
			})
		}
	}
	return out
}

func convertArguments(args gqlast.ArgumentList) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(args))
	for _, arg := range args {
		out[arg.Name] = convertValue(arg.Value)
	}
	return out
}

func convertDirectives(directives gqlast.DirectiveList) []*ast.Directive {
	if len(directives) == 0 {
		return nil
	}
	out := make([]*ast.Directive, 0, len(directives))
	for _, d := range directives {
		out = append(out, &ast.Directive{
			Name:      d.Name,
			Arguments: convertArguments(d.Arguments),
			Loc:       convertPosition(d.Position),
		})
	}
	return out
}

// convertValue maps a parsed value to the engine's literal model.
// Variables stay symbolic; they are bound at execution time.
func convertValue(value *gqlast.Value) interface{} {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case gqlast.Variable:
		return ast.Variable(value.Raw)
	case gqlast.IntValue:
		n, err := strconv.ParseInt(value.Raw, 10, 64)
		if err != nil {
			return value.Raw
		}
		return n
	case gqlast.FloatValue:
		f, err := strconv.ParseFloat(value.Raw, 64)
		if err != nil {
			return value.Raw
		}
		return f
	case gqlast.StringValue, gqlast.BlockValue:
		return value.Raw
	case gqlast.BooleanValue:
		return value.Raw == "true"
	case gqlast.NullValue:
		return nil
	case gqlast.EnumValue:
		return ast.EnumLiteral(value.Raw)
	case gqlast.ListValue:
		out := make([]interface{}, 0, len(value.Children))
		for _, child := range value.Children {
			out = append(out, convertValue(child.Value))
		}
		return out
	case gqlast.ObjectValue:
		out := make(map[string]interface{}, len(value.Children))
		for _, child := range value.Children {
			out[child.Name] = convertValue(child.Value)
		}
		return out
	}
	return nil
}

func convertPosition(pos *gqlast.Position) errors.Location {
	if pos == nil {
		return errors.Location{}
	}
	return errors.Location{Line: pos.Line, Column: pos.Column}
}
