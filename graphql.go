// Package graphql assembles the schema catalog and the resolution
// engine into an executable schema.
package graphql

import (
	"context"

	"github.com/veldt-io/graphql/errors"
	"github.com/veldt-io/graphql/execution"
	"github.com/veldt-io/graphql/query"
	"github.com/veldt-io/graphql/registry"
	"github.com/veldt-io/graphql/types"
)

// Schema owns a registry and the execution options applied to every
// query. The registry is built once; Resolve never mutates it.
type Schema struct {
	registry   *registry.Registry
	extensions []execution.Extension
}

type Option func(*Schema)

// WithExtension attaches an extension invoked around every field
// resolution.
func WithExtension(ext execution.Extension) Option {
	return func(s *Schema) {
		s.extensions = append(s.extensions, ext)
	}
}

func NewSchema(opts ...Option) *Schema {
	s := &Schema{registry: registry.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry exposes the catalog for type declarations during schema
// build. Mutating it after the first Resolve is not supported.
func (s *Schema) Registry() *registry.Registry {
	return s.registry
}

// EnableFederation injects the federation surface into the registry.
// Call it after all entity types are declared.
func (s *Schema) EnableFederation() {
	s.registry.EnableFederation()
}

// Params is one query request.
type Params struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	Context       context.Context        `json:"-"`
}

// Response represents a typical response of a GraphQL server. It may be
// encoded to JSON directly or further processed into a custom response
// type.
type Response struct {
	Errors       errors.MultiError      `json:"errors,omitempty"`
	Data         interface{}            `json:"data,omitempty"`
	Extensions   map[string]interface{} `json:"extensions,omitempty"`
	CacheControl types.CacheControl     `json:"-"`
}

// Resolve parses, binds and executes one request against root. The
// result is either a complete ordered object or the single error that
// aborted execution.
func (s *Schema) Resolve(params Params, root execution.Resolvable) *Response {
	doc, parseErr := query.Parse(params.Query)
	if parseErr != nil {
		return &Response{Errors: errors.MultiError{parseErr}}
	}
	op, opErr := doc.Operation(params.OperationName)
	if opErr != nil {
		return &Response{Errors: errors.MultiError{opErr}}
	}

	parentType, typeErr := s.rootType(op.Type)
	if typeErr != nil {
		return &Response{Errors: errors.MultiError{typeErr}}
	}

	variables := make(map[string]interface{}, len(params.Variables))
	for name, value := range params.Variables {
		variables[name] = value
	}
	for name, value := range op.VariableDefaults {
		if _, bound := variables[name]; !bound {
			variables[name] = value
		}
	}

	ctx := execution.NewContext(params.Context, s.registry, parentType,
		op.SelectionSet, doc.Fragments, variables, s.extensions)
	data, err := execution.Resolve(ctx, root)
	resp := &Response{CacheControl: ctx.CacheControl()}
	if err != nil {
		if gqlErr, ok := err.(*errors.GraphQLError); ok {
			resp.Errors = errors.MultiError{gqlErr}
		} else {
			resp.Errors = errors.MultiError{errors.New("%s", err.Error())}
		}
		return resp
	}
	resp.Data = data
	return resp
}

func (s *Schema) rootType(op query.OperationType) (string, *errors.GraphQLError) {
	switch op {
	case query.Query:
		return s.registry.QueryType, nil
	case query.Mutation:
		if s.registry.MutationType == "" {
			return "", errors.New("schema does not support mutation operations")
		}
		return s.registry.MutationType, nil
	case query.Subscription:
		if s.registry.SubscriptionType == "" {
			return "", errors.New("schema does not support subscription operations")
		}
		return s.registry.SubscriptionType, nil
	}
	return "", errors.New("unknown operation type %q", string(op))
}
