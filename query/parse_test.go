package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-io/graphql/ast"
	"github.com/veldt-io/graphql/errors"
)

func TestParseSelectionOrder(t *testing.T) {
	doc, err := Parse(`{ c a ...F b } fragment F on Query { x }`)
	require.Nil(t, err)

	op, err := doc.Operation("")
	require.Nil(t, err)

	sels := op.SelectionSet.Selections
	require.Len(t, sels, 4)
	assert.Equal(t, "c", sels[0].(*ast.Field).Name)
	assert.Equal(t, "a", sels[1].(*ast.Field).Name)
	assert.Equal(t, "F", sels[2].(*ast.FragmentSpread).Name)
	assert.Equal(t, "b", sels[3].(*ast.Field).Name)
}

func TestParseAlias(t *testing.T) {
	doc, err := Parse(`{ hero { shown: name name } }`)
	require.Nil(t, err)

	op, _ := doc.Operation("")
	hero := op.SelectionSet.Selections[0].(*ast.Field)
	aliased := hero.SelectionSet.Selections[0].(*ast.Field)
	plain := hero.SelectionSet.Selections[1].(*ast.Field)

	assert.Equal(t, "name", aliased.Name)
	assert.Equal(t, "shown", aliased.Alias)
	assert.Equal(t, "shown", aliased.ResultKey())
	assert.Empty(t, plain.Alias)
	assert.Equal(t, "name", plain.ResultKey())
}

func TestParseArgumentValues(t *testing.T) {
	doc, err := Parse(`{
		f(i: 3, fl: 1.5, s: "x", b: true, n: null, e: RED,
		  l: [1, 2], o: {a: 1, v: $v}, v: $v)
	}`)
	require.Nil(t, err)

	op, _ := doc.Operation("")
	args := op.SelectionSet.Selections[0].(*ast.Field).Arguments

	assert.Equal(t, int64(3), args["i"])
	assert.Equal(t, 1.5, args["fl"])
	assert.Equal(t, "x", args["s"])
	assert.Equal(t, true, args["b"])
	assert.Nil(t, args["n"])
	assert.Equal(t, ast.EnumLiteral("RED"), args["e"])
	assert.Equal(t, []interface{}{int64(1), int64(2)}, args["l"])
	assert.Equal(t, map[string]interface{}{"a": int64(1), "v": ast.Variable("v")}, args["o"])
	assert.Equal(t, ast.Variable("v"), args["v"])
}

func TestParseDirectives(t *testing.T) {
	doc, err := Parse(`query ($sk: Boolean!) { a @skip(if: $sk) b @include(if: true) }`)
	require.Nil(t, err)

	op, _ := doc.Operation("")
	a := op.SelectionSet.Selections[0].(*ast.Field)
	b := op.SelectionSet.Selections[1].(*ast.Field)

	require.Len(t, a.Directives, 1)
	assert.Equal(t, "skip", a.Directives[0].Name)
	assert.Equal(t, ast.Variable("sk"), a.Directives[0].Arguments["if"])
	require.Len(t, b.Directives, 1)
	assert.Equal(t, true, b.Directives[0].Arguments["if"])
}

func TestParseFragments(t *testing.T) {
	doc, err := Parse(`
		query { hero { ...names ... on Droid { primaryFunction } } }
		fragment names on Character { name }
	`)
	require.Nil(t, err)

	require.Contains(t, doc.Fragments, "names")
	frag := doc.Fragments["names"]
	assert.Equal(t, "Character", frag.On)
	require.Len(t, frag.SelectionSet.Selections, 1)

	op, _ := doc.Operation("")
	hero := op.SelectionSet.Selections[0].(*ast.Field)
	inline := hero.SelectionSet.Selections[1].(*ast.InlineFragment)
	assert.Equal(t, "Droid", inline.TypeCondition)
}

func TestParseDuplicateFragment(t *testing.T) {
	_, err := Parse(`
		{ a }
		fragment F on Query { a }
		fragment F on Query { b }
	`)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, `duplicate fragment "F"`)
}

func TestParseVariableDefaults(t *testing.T) {
	doc, err := Parse(`query ($n: Int = 10, $s: String) { f(n: $n, s: $s) }`)
	require.Nil(t, err)

	op, _ := doc.Operation("")
	assert.Equal(t, map[string]interface{}{"n": int64(10)}, op.VariableDefaults)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(`{ unterminated`)
	require.NotNil(t, err)
	assert.Equal(t, errors.KindMalformedDocument, err.Kind)
}

func TestOperationSelection(t *testing.T) {
	doc, err := Parse(`
		query First { a }
		query Second { b }
	`)
	require.Nil(t, err)

	op, opErr := doc.Operation("Second")
	require.Nil(t, opErr)
	assert.Equal(t, "Second", op.Name)
	assert.Equal(t, Query, op.Type)

	_, opErr = doc.Operation("")
	require.NotNil(t, opErr)
	assert.Contains(t, opErr.Message, "more than one operation")

	_, opErr = doc.Operation("Third")
	require.NotNil(t, opErr)
}

func TestOperationSingleAnonymous(t *testing.T) {
	doc, err := Parse(`mutation { save }`)
	require.Nil(t, err)

	op, opErr := doc.Operation("")
	require.Nil(t, opErr)
	assert.Equal(t, Mutation, op.Type)
}

func TestParsePositions(t *testing.T) {
	doc, err := Parse("{\n  a\n}")
	require.Nil(t, err)

	op, _ := doc.Operation("")
	field := op.SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, 2, field.Loc.Line)
}
