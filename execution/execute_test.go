package execution_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-io/graphql/ast"
	"github.com/veldt-io/graphql/errors"
	"github.com/veldt-io/graphql/execution"
	"github.com/veldt-io/graphql/query"
	"github.com/veldt-io/graphql/registry"
	"github.com/veldt-io/graphql/types"
	"github.com/veldt-io/graphql/validation"
)

type resolverFunc func(ctx *execution.Context, args map[string]interface{}) (interface{}, error)

// testObject backs one schema type with a map of field resolvers.
type testObject struct {
	name   string
	fields map[string]resolverFunc
}

func (o *testObject) TypeName() string { return o.name }

func (o *testObject) ResolveField(ctx *execution.Context, field string, args map[string]interface{}) (interface{}, error) {
	fn, ok := o.fields[field]
	if !ok {
		return nil, fmt.Errorf("no resolver for %s.%s", o.name, field)
	}
	return fn(ctx, args)
}

func (o *testObject) CollectInline(typeCondition string, ctx *execution.Context, tasks *execution.TaskList) error {
	return execution.CollectObjectInline(o, typeCondition, ctx, tasks)
}

func value(v interface{}) resolverFunc {
	return func(*execution.Context, map[string]interface{}) (interface{}, error) { return v, nil }
}

func character(name string, friends ...interface{}) *testObject {
	return &testObject{name: "Character", fields: map[string]resolverFunc{
		"name":    value(name),
		"friends": value(friends),
	}}
}

func testRegistry() *registry.Registry {
	reg := registry.New()
	stringField := func(name string) *types.Field {
		return &types.Field{Name: name, Type: "String", CacheControl: types.DefaultCacheControl()}
	}
	reg.RegisterType("Character", func(r *registry.Registry) types.Type {
		return &types.Object{
			Name: "Character",
			Fields: map[string]*types.Field{
				"name":    stringField("name"),
				"friends": {Name: "friends", Type: "[Character]", CacheControl: types.DefaultCacheControl()},
			},
			CacheControl: types.DefaultCacheControl(),
		}
	})
	reg.RegisterType("Named", func(r *registry.Registry) types.Type {
		return &types.Interface{
			Name:          "Named",
			Fields:        map[string]*types.Field{"name": stringField("name")},
			PossibleTypes: map[string]struct{}{"Character": {}},
		}
	})
	reg.AddImplements("Character", "Named")
	reg.RegisterType("Cat", func(r *registry.Registry) types.Type {
		return &types.Object{
			Name:         "Cat",
			Fields:       map[string]*types.Field{"meows": {Name: "meows", Type: "Boolean"}},
			CacheControl: types.DefaultCacheControl(),
		}
	})
	reg.RegisterType("Dog", func(r *registry.Registry) types.Type {
		return &types.Object{
			Name:         "Dog",
			Fields:       map[string]*types.Field{"barks": {Name: "barks", Type: "Boolean"}},
			CacheControl: types.DefaultCacheControl(),
		}
	})
	reg.RegisterType("Pet", func(r *registry.Registry) types.Type {
		return &types.Union{Name: "Pet", PossibleTypes: map[string]struct{}{"Cat": {}, "Dog": {}}}
	})
	reg.RegisterType("Query", func(r *registry.Registry) types.Type {
		return &types.Object{
			Name: "Query",
			Fields: map[string]*types.Field{
				"a":    stringField("a"),
				"b":    stringField("b"),
				"c":    stringField("c"),
				"slow": stringField("slow"),
				"fail": stringField("fail"),
				"boom": stringField("boom"),
				"echo": {
					Name: "echo", Type: "String",
					Args: map[string]*types.InputValue{
						"msg": {Name: "msg", Type: "String!"},
					},
					CacheControl: types.DefaultCacheControl(),
				},
				"pick": {
					Name: "pick", Type: "Int",
					Args: map[string]*types.InputValue{
						"n": {Name: "n", Type: "Int!", Validator: validation.IntRange(1, 5)},
					},
					CacheControl: types.DefaultCacheControl(),
				},
				"hero":    {Name: "hero", Type: "Character", CacheControl: types.DefaultCacheControl()},
				"pet":     {Name: "pet", Type: "Pet", CacheControl: types.DefaultCacheControl()},
				"missing": {Name: "missing", Type: "Character", CacheControl: types.DefaultCacheControl()},
				"cached":  {Name: "cached", Type: "String", CacheControl: types.CacheControl{Public: true, MaxAge: 60}},
				"secret":  {Name: "secret", Type: "String", CacheControl: types.CacheControl{Public: false, MaxAge: 30}},
			},
			CacheControl: types.DefaultCacheControl(),
		}
	})
	return reg
}

func queryRoot(extra map[string]resolverFunc) *testObject {
	fields := map[string]resolverFunc{
		"a":      value("A"),
		"b":      value("B"),
		"c":      value("C"),
		"cached": value("fresh"),
		"secret": value("hidden"),
		"echo": func(_ *execution.Context, args map[string]interface{}) (interface{}, error) {
			return args["msg"], nil
		},
		"pick": func(_ *execution.Context, args map[string]interface{}) (interface{}, error) {
			return args["n"], nil
		},
		"hero": value(character("R2-D2", character("Luke"), character("Leia"))),
		"pet": value(&testObject{name: "Cat", fields: map[string]resolverFunc{
			"meows": value(true),
		}}),
		"missing": value((*testObject)(nil)),
		"fail": func(*execution.Context, map[string]interface{}) (interface{}, error) {
			return nil, fmt.Errorf("deliberate failure")
		},
		"boom": func(*execution.Context, map[string]interface{}) (interface{}, error) {
			panic("resolver exploded")
		},
	}
	for name, fn := range extra {
		fields[name] = fn
	}
	return &testObject{name: "Query", fields: fields}
}

func execute(t *testing.T, source string, vars map[string]interface{}, root *testObject) (*execution.OrderedMap, *execution.Context, error) {
	t.Helper()
	doc, err := query.Parse(source)
	require.Nil(t, err)
	op, opErr := doc.Operation("")
	require.Nil(t, opErr)
	ctx := execution.NewContext(context.Background(), testRegistry(), "Query",
		op.SelectionSet, doc.Fragments, vars, nil)
	out, resolveErr := execution.Resolve(ctx, root)
	return out, ctx, resolveErr
}

func TestResolveKeepsDeclarationOrder(t *testing.T) {
	root := queryRoot(map[string]resolverFunc{
		"b": func(*execution.Context, map[string]interface{}) (interface{}, error) {
			time.Sleep(30 * time.Millisecond)
			return "B", nil
		},
	})

	out, _, err := execute(t, `{ a b c }`, nil, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, out.Keys())

	data, jsonErr := json.Marshal(out)
	require.NoError(t, jsonErr)
	assert.Equal(t, `{"a":"A","b":"B","c":"C"}`, string(data))
}

func TestResolveFlattensFragments(t *testing.T) {
	out, _, err := execute(t, `
		{ a ...rest c }
		fragment rest on Query { b }
	`, nil, queryRoot(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, out.Keys())
}

func TestResolveAlias(t *testing.T) {
	out, _, err := execute(t, `{ first: a a }`, nil, queryRoot(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "a"}, out.Keys())
	v, _ := out.Get("first")
	assert.Equal(t, "A", v)
}

func TestResolveTypenameBypassesDispatch(t *testing.T) {
	// Every resolver would fail, but __typename never reaches dispatch.
	root := &testObject{name: "Query", fields: map[string]resolverFunc{}}

	out, _, err := execute(t, `{ __typename }`, nil, root)
	require.NoError(t, err)
	v, _ := out.Get("__typename")
	assert.Equal(t, "Query", v)
}

func TestResolveEmptySelection(t *testing.T) {
	ctx := execution.NewContext(context.Background(), testRegistry(), "Query",
		&ast.SelectionSet{}, nil, nil, nil)

	_, err := execution.Resolve(ctx, queryRoot(nil))
	require.Error(t, err)
	gqlErr, ok := err.(*errors.GraphQLError)
	require.True(t, ok)
	assert.Equal(t, errors.KindEmptySelection, gqlErr.Kind)
	assert.Contains(t, gqlErr.Message, `"Query"`)
}

func TestResolveFailFastCancelsSiblings(t *testing.T) {
	var completed int32
	root := queryRoot(map[string]resolverFunc{
		"slow": func(ctx *execution.Context, _ map[string]interface{}) (interface{}, error) {
			select {
			case <-time.After(2 * time.Second):
				atomic.AddInt32(&completed, 1)
				return "too late", nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	})

	start := time.Now()
	_, _, err := execute(t, `{ slow fail }`, nil, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.Equal(t, int32(0), atomic.LoadInt32(&completed))
	assert.Less(t, time.Since(start), time.Second)
}

func TestResolvePanicIsFieldError(t *testing.T) {
	_, _, err := execute(t, `{ boom }`, nil, queryRoot(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
	assert.Contains(t, err.Error(), "resolver exploded")
}

func TestResolveSkipAndInclude(t *testing.T) {
	out, _, err := execute(t,
		`query ($sk: Boolean!, $inc: Boolean!) { a @skip(if: $sk) b @include(if: $inc) c }`,
		map[string]interface{}{"sk": true, "inc": true}, queryRoot(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, out.Keys())
}

func TestResolveSkipWinsOverInclude(t *testing.T) {
	out, _, err := execute(t, `{ a @skip(if: true) @include(if: true) b }`, nil, queryRoot(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, out.Keys())
}

func TestResolveSkipOnFragmentSpread(t *testing.T) {
	out, _, err := execute(t, `
		{ a ...rest @skip(if: true) }
		fragment rest on Query { b }
	`, nil, queryRoot(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out.Keys())
}

func TestResolveDirectiveRequiresBoolean(t *testing.T) {
	_, _, err := execute(t, `{ a @skip(if: $unbound) }`, nil, queryRoot(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required argument not provided")
}

func TestResolveUnknownFragment(t *testing.T) {
	_, _, err := execute(t, `{ ...nope }`, nil, queryRoot(nil))
	require.Error(t, err)
	gqlErr := err.(*errors.GraphQLError)
	assert.Equal(t, errors.KindUnknownFragment, gqlErr.Kind)
}

func TestResolveFieldNotFound(t *testing.T) {
	_, _, err := execute(t, `{ a zzz }`, nil, queryRoot(nil))
	require.Error(t, err)
	gqlErr := err.(*errors.GraphQLError)
	assert.Equal(t, errors.KindFieldNotFound, gqlErr.Kind)
	assert.Contains(t, gqlErr.Message, `unknown field "zzz" on type "Query"`)
	assert.Equal(t, []interface{}{"zzz"}, gqlErr.Path)
	assert.NotZero(t, gqlErr.Locations[0].Line)
}

func TestResolveArguments(t *testing.T) {
	out, _, err := execute(t, `{ echo(msg: "hello") }`, nil, queryRoot(nil))
	require.NoError(t, err)
	v, _ := out.Get("echo")
	assert.Equal(t, "hello", v)
}

func TestResolveVariableBinding(t *testing.T) {
	out, _, err := execute(t, `query ($m: String!) { echo(msg: $m) }`,
		map[string]interface{}{"m": "bound"}, queryRoot(nil))
	require.NoError(t, err)
	v, _ := out.Get("echo")
	assert.Equal(t, "bound", v)
}

func TestResolveArgumentTypeMismatch(t *testing.T) {
	_, _, err := execute(t, `{ echo(msg: 3) }`, nil, queryRoot(nil))
	require.Error(t, err)
	gqlErr := err.(*errors.GraphQLError)
	assert.Equal(t, errors.KindValidation, gqlErr.Kind)
	assert.Contains(t, gqlErr.Message, `expected type "String"`)
}

func TestResolveArgumentConstraint(t *testing.T) {
	_, _, err := execute(t, `{ pick(n: 9) }`, nil, queryRoot(nil))
	require.Error(t, err)
	gqlErr := err.(*errors.GraphQLError)
	assert.Equal(t, errors.KindValidation, gqlErr.Kind)
	assert.Contains(t, gqlErr.Message, "constraint")

	out, _, err := execute(t, `{ pick(n: 3) }`, nil, queryRoot(nil))
	require.NoError(t, err)
	v, _ := out.Get("pick")
	assert.Equal(t, int64(3), v)
}

func TestResolveNestedObjectsAndLists(t *testing.T) {
	out, _, err := execute(t, `{ hero { name friends { name } } }`, nil, queryRoot(nil))
	require.NoError(t, err)

	data, jsonErr := json.Marshal(out)
	require.NoError(t, jsonErr)
	assert.JSONEq(t, `{
		"hero": {
			"name": "R2-D2",
			"friends": [{"name": "Luke"}, {"name": "Leia"}]
		}
	}`, string(data))
}

func TestResolveNilObject(t *testing.T) {
	out, _, err := execute(t, `{ missing { name } }`, nil, queryRoot(nil))
	require.NoError(t, err)
	v, ok := out.Get("missing")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestResolveInlineFragmentNarrowing(t *testing.T) {
	out, _, err := execute(t, `{
		pet {
			__typename
			... on Cat { meows }
			... on Dog { barks }
		}
	}`, nil, queryRoot(nil))
	require.NoError(t, err)

	pet, _ := out.Get("pet")
	petMap := pet.(*execution.OrderedMap)
	assert.Equal(t, []string{"__typename", "meows"}, petMap.Keys())
	typename, _ := petMap.Get("__typename")
	assert.Equal(t, "Cat", typename)
}

func TestResolveInlineFragmentOnInterface(t *testing.T) {
	out, _, err := execute(t, `{ hero { ... on Named { name } } }`, nil, queryRoot(nil))
	require.NoError(t, err)

	hero, _ := out.Get("hero")
	name, _ := hero.(*execution.OrderedMap).Get("name")
	assert.Equal(t, "R2-D2", name)
}

func TestResolveCacheControlAccumulates(t *testing.T) {
	_, ctx, err := execute(t, `{ cached secret }`, nil, queryRoot(nil))
	require.NoError(t, err)

	hint := ctx.CacheControl()
	assert.Equal(t, types.CacheControl{Public: false, MaxAge: 30}, hint)
	assert.Equal(t, "max-age=30, private", hint.Value())
}

func TestResolveFieldErrorCarriesPath(t *testing.T) {
	root := queryRoot(map[string]resolverFunc{
		"hero": value(&testObject{name: "Character", fields: map[string]resolverFunc{
			"name": func(*execution.Context, map[string]interface{}) (interface{}, error) {
				return nil, fmt.Errorf("name store offline")
			},
			"friends": value(nil),
		}}),
	})

	_, _, err := execute(t, `{ hero { name } }`, nil, root)
	require.Error(t, err)
	gqlErr := err.(*errors.GraphQLError)
	assert.Equal(t, []interface{}{"hero", "name"}, gqlErr.Path)
	assert.Contains(t, gqlErr.Message, "name store offline")
}

func TestOrderedMapReSetKeepsPosition(t *testing.T) {
	m := execution.NewOrderedMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())
}
