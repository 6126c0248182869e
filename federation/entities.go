// Package federation wires the registry's federation projection into
// the resolution engine: the _service SDL document and the synthetic
// _entities resolver that lets a gateway resolve keyed types by
// reference.
package federation

import (
	"github.com/veldt-io/graphql/errors"
	"github.com/veldt-io/graphql/execution"
	"github.com/veldt-io/graphql/registry"
	"github.com/veldt-io/graphql/types"
)

// ReferenceResolver turns one entity representation (the key fields a
// remote service sends, plus __typename) into the resolvable entity.
type ReferenceResolver func(ctx *execution.Context, representation map[string]interface{}) (execution.Resolvable, error)

// EntityResolver dispatches _entities representations to per-typename
// reference resolvers.
type EntityResolver struct {
	registry  *registry.Registry
	resolvers map[string]ReferenceResolver
}

func NewEntityResolver(reg *registry.Registry) *EntityResolver {
	return &EntityResolver{
		registry:  reg,
		resolvers: make(map[string]ReferenceResolver),
	}
}

// Register installs the reference resolver for one keyed type.
func (e *EntityResolver) Register(typename string, resolver ReferenceResolver) {
	e.resolvers[typename] = resolver
}

// ResolveEntities resolves every representation against the _entities
// sub-selection carried by ctx. A failing item (unknown typename,
// reference lookup failure) becomes an error value at its position in
// the list; it never fails the surrounding request.
func (e *EntityResolver) ResolveEntities(ctx *execution.Context, representations []interface{}) []interface{} {
	items := make([]interface{}, len(representations))
	for i, rep := range representations {
		items[i] = e.resolveEntity(ctx.WithIndex(i), rep)
	}
	return items
}

func (e *EntityResolver) resolveEntity(ctx *execution.Context, representation interface{}) interface{} {
	rep, ok := ctx.ResolveValue(representation).(map[string]interface{})
	if !ok {
		return errors.FieldError(ctx.PathNode, errors.New("entity representation must be an object"))
	}
	typename, ok := rep["__typename"].(string)
	if !ok {
		return errors.FieldError(ctx.PathNode, errors.New("entity representation is missing __typename"))
	}

	ty, declared := e.registry.Types[typename]
	if !declared || len(types.KeysOf(ty)) == 0 {
		return errors.FieldError(ctx.PathNode, errors.New("unknown entity type %q", typename))
	}
	resolver, ok := e.resolvers[typename]
	if !ok {
		return errors.FieldError(ctx.PathNode, errors.New("no reference resolver for type %q", typename))
	}

	entity, err := resolver(ctx, rep)
	if err != nil {
		return errors.FieldError(ctx.PathNode, err)
	}
	result, err := execution.Resolve(ctx.WithParentType(typename), entity)
	if err != nil {
		if gqlErr, ok := err.(*errors.GraphQLError); ok {
			return gqlErr
		}
		return errors.FieldError(ctx.PathNode, err)
	}
	return result
}

// Service resolves the synthetic _service object.
type Service struct {
	Registry *registry.Registry
}

func (s Service) TypeName() string {
	return "_Service"
}

func (s Service) ResolveField(ctx *execution.Context, field string, args map[string]interface{}) (interface{}, error) {
	switch field {
	case "sdl":
		return s.Registry.FederationSDL(), nil
	}
	return nil, errors.FieldNotFound(field, "_Service")
}

func (s Service) CollectInline(typeCondition string, ctx *execution.Context, tasks *execution.TaskList) error {
	return execution.CollectObjectInline(s, typeCondition, ctx, tasks)
}

var _ execution.Resolvable = Service{}
